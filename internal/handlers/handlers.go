package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pressquote/pressquote/internal/currency"
	"github.com/pressquote/pressquote/internal/logging"
	"github.com/pressquote/pressquote/internal/services"
)

const maxRequestBodyBytes = 1 << 20 // 1 MB

type pinger interface {
	Ping(ctx context.Context) error
}

type quoteComparer interface {
	Compare(ctx context.Context, input services.CompareInput) (*services.Comparison, error)
	CurrentRates() (*currency.Table, bool)
}

// Handlers serves the quote comparison API.
type Handlers struct {
	db           pinger
	quoteService quoteComparer
	logger       *slog.Logger
}

type Dependencies struct {
	// DB is only set when the catalogue lives in PostgreSQL.
	DB           *pgxpool.Pool
	QuoteService *services.QuoteService
	Logger       *slog.Logger
}

func New(deps Dependencies) (*Handlers, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if deps.QuoteService == nil {
		return nil, fmt.Errorf("handlers dependencies: quoteService is required")
	}

	h := &Handlers{
		quoteService: deps.QuoteService,
		logger:       logger.With("component", "handlers"),
	}
	if deps.DB != nil {
		h.db = deps.DB
	}
	return h, nil
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.loggerFromContext(ctx)

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			logger.Error("database health check failed", "error", err)
			writeError(w, logger, http.StatusServiceUnavailable, "database unhealthy")
			return
		}
	}

	writeJSON(w, logger, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *Handlers) loggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, h.logger)
}

type errorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, message string, fields ...string) {
	writeJSON(w, logger, status, errorResponse{Error: message, Fields: fields})
}
