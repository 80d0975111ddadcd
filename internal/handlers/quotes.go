package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/getsentry/sentry-go/attribute"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/pressquote/pressquote/internal/observability"
	"github.com/pressquote/pressquote/internal/quote"
	"github.com/pressquote/pressquote/internal/services"
)

type quoteRequest struct {
	Quantity    *int   `json:"quantity" validate:"required"`
	Size        string `json:"size" validate:"required,pressing_size"`
	Format      string `json:"format" validate:"required,pressing_format"`
	Weight      string `json:"weight" validate:"required"`
	Colour      string `json:"colour" validate:"required"`
	InnerSleeve string `json:"inner_sleeve" validate:"required"`
	Jacket      string `json:"jacket" validate:"required"`
	Inserts     string `json:"inserts" validate:"required"`
	ShrinkWrap  string `json:"shrink_wrap" validate:"required"`

	Currency  string `json:"currency" validate:"omitempty,len=3,alpha"`
	Sort      string `json:"sort" validate:"omitempty,oneof=price rating turnaround"`
	ValidOnly bool   `json:"valid_only"`
}

// specification assumes the request passed requestValidator.
func (r quoteRequest) specification() quote.Specification {
	size, _ := quote.ParseSize(r.Size)
	format, _ := quote.ParseFormat(r.Format)
	return quote.Specification{
		Quantity:    *r.Quantity,
		Size:        size,
		Format:      format,
		Weight:      strings.TrimSpace(r.Weight),
		Colour:      strings.TrimSpace(r.Colour),
		InnerSleeve: r.InnerSleeve,
		Jacket:      r.Jacket,
		Inserts:     r.Inserts,
		ShrinkWrap:  r.ShrinkWrap,
	}
}

var requestValidator = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("pressing_size", func(fl validator.FieldLevel) bool {
		_, ok := quote.ParseSize(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("pressing_format", func(fl validator.FieldLevel) bool {
		_, ok := quote.ParseFormat(fl.Field().String())
		return ok
	})
	return v
}

type quoteResponse struct {
	BaseCurrency   string             `json:"base_currency"`
	Currency       string             `json:"currency"`
	RatesAvailable bool               `json:"rates_available"`
	RatesFetchedAt *time.Time         `json:"rates_fetched_at,omitempty"`
	Sort           string             `json:"sort"`
	Quotes         []quoteRowResponse `json:"quotes"`
}

type quoteRowResponse struct {
	PlantID         string            `json:"plant_id"`
	PlantName       string            `json:"plant_name"`
	Location        string            `json:"location,omitempty"`
	Rating          float64           `json:"rating"`
	TurnaroundWeeks int               `json:"turnaround_weeks"`
	Valid           bool              `json:"valid"`
	Failures        []string          `json:"failures,omitempty"`
	Messages        []string          `json:"messages,omitempty"`
	Base            *amountsResponse  `json:"base,omitempty"`
	Display         *amountsResponse  `json:"display,omitempty"`
	Packaging       map[string]string `json:"packaging,omitempty"`
}

type amountsResponse struct {
	VinylUnitCost     string `json:"vinyl_unit_cost"`
	PackagingUnitCost string `json:"packaging_unit_cost"`
	PerUnitCost       string `json:"per_unit_cost"`
	Total             string `json:"total"`
}

type ratesResponse struct {
	Base      string                     `json:"base"`
	FetchedAt time.Time                  `json:"fetched_at"`
	Rates     map[string]decimal.Decimal `json:"rates"`
}

// Quotes compares the posted specification across every plant.
func (h *Handlers) Quotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.loggerFromContext(ctx)
	meter := observability.MeterFromContext(ctx)
	meter.SetAttributes(attribute.String("component", "handlers.quotes"))

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req quoteRequest
	if err := decoder.Decode(&req); err != nil {
		observability.CountReason(meter, "quote.request.rejected", "invalid_json")
		logger.Warn("invalid quote request body", "error", err)
		writeError(w, logger, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := requestValidator.Struct(req); err != nil {
		observability.CountReason(meter, "quote.request.rejected", "validation")
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			fields := make([]string, 0, len(validationErrs))
			for _, fieldErr := range validationErrs {
				fields = append(fields, fieldErr.Field())
			}
			writeError(w, logger, http.StatusBadRequest, "invalid quote request", fields...)
			return
		}
		writeError(w, logger, http.StatusBadRequest, "invalid quote request")
		return
	}

	comparison, err := h.quoteService.Compare(ctx, services.CompareInput{
		Spec:      req.specification(),
		Currency:  req.Currency,
		Sort:      req.Sort,
		ValidOnly: req.ValidOnly,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQuoteInvalidSort):
			writeError(w, logger, http.StatusBadRequest, "unsupported sort", "sort")
		case errors.Is(err, services.ErrQuoteCatalogueUnavailable):
			writeError(w, logger, http.StatusServiceUnavailable, "catalogue unavailable")
		default:
			logger.Error("failed to compare quotes", "error", err)
			writeError(w, logger, http.StatusInternalServerError, "failed to compute quotes")
		}
		return
	}

	writeJSON(w, logger, http.StatusOK, newQuoteResponse(comparison))
}

// Rates returns the active rate snapshot.
func (h *Handlers) Rates(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerFromContext(r.Context())

	table, ok := h.quoteService.CurrentRates()
	if !ok {
		writeError(w, logger, http.StatusServiceUnavailable, "exchange rates not loaded")
		return
	}

	writeJSON(w, logger, http.StatusOK, ratesResponse{
		Base:      table.Base,
		FetchedAt: table.FetchedAt,
		Rates:     table.Rates,
	})
}

func newQuoteResponse(c *services.Comparison) quoteResponse {
	resp := quoteResponse{
		BaseCurrency:   c.BaseCurrency,
		Currency:       c.Currency,
		RatesAvailable: c.RatesAvailable,
		Sort:           string(c.Sort),
		Quotes:         make([]quoteRowResponse, 0, len(c.Rows)),
	}
	if !c.RatesFetchedAt.IsZero() {
		fetchedAt := c.RatesFetchedAt
		resp.RatesFetchedAt = &fetchedAt
	}

	for _, row := range c.Rows {
		item := quoteRowResponse{
			PlantID:         row.Plant.ID,
			PlantName:       row.Plant.Name,
			Location:        row.Plant.Location,
			Rating:          row.Plant.Rating,
			TurnaroundWeeks: row.Plant.TurnaroundWeeks,
			Valid:           row.Valid,
			Failures:        row.Failures,
			Messages:        row.Messages,
		}
		if row.Valid {
			item.Base = &amountsResponse{
				VinylUnitCost:     row.VinylUnitCost.String(),
				PackagingUnitCost: row.PackagingUnitCost.String(),
				PerUnitCost:       row.PerUnitCost.String(),
				Total:             row.Total.String(),
			}
			item.Display = &amountsResponse{
				VinylUnitCost:     row.Display.VinylUnitCost,
				PackagingUnitCost: row.Display.PackagingUnitCost,
				PerUnitCost:       row.Display.PerUnitCost,
				Total:             row.Display.Total,
			}
			item.Packaging = make(map[string]string, len(row.Packaging))
			for t, price := range row.Packaging {
				item.Packaging[string(t)] = price.String()
			}
		}
		resp.Quotes = append(resp.Quotes, item)
	}

	return resp
}
