package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/pressquote/pressquote/internal/config"
	"github.com/pressquote/pressquote/internal/handlers"
)

const shutdownTimeout = 30 * time.Second

type Server struct {
	logger     *slog.Logger
	httpServer *http.Server
}

func New(cfg *config.Config, logger *slog.Logger, h *handlers.Handlers) (*Server, error) {
	switch {
	case cfg == nil:
		return nil, fmt.Errorf("config is required")
	case logger == nil:
		return nil, fmt.Errorf("logger is required")
	case h == nil:
		return nil, fmt.Errorf("handlers are required")
	}

	return &Server{
		logger: logger,
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           newRouter(h),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      20 * time.Second,
			IdleTimeout:       90 * time.Second,
			MaxHeaderBytes:    64 << 10,
		},
	}, nil
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until ctx is cancelled or the listener fails, then drains
// in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	listenErr := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.httpServer.Addr)
		listenErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-listenErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	s.logger.Info("draining connections", "timeout", shutdownTimeout)
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

func newRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()
	r.Use(h.RequestLogger, h.MetricsContext, h.SecurityHeaders)

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet).Name("health")
	r.HandleFunc("/rates", h.Rates).Methods(http.MethodGet).Name("rates")
	r.Handle("/quotes", h.RequireJSON(http.HandlerFunc(h.Quotes))).Methods(http.MethodPost).Name("quotes.compare")

	r.NotFoundHandler = http.HandlerFunc(notFound)
	return r
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`{"error":"not found"}` + "\n"))
}
