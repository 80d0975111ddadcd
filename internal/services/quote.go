package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/getsentry/sentry-go/attribute"
	"github.com/shopspring/decimal"

	"github.com/pressquote/pressquote/internal/currency"
	"github.com/pressquote/pressquote/internal/logging"
	"github.com/pressquote/pressquote/internal/observability"
	"github.com/pressquote/pressquote/internal/quote"
)

var (
	ErrQuoteInvalidSort          = errors.New("unsupported sort key")
	ErrQuoteCatalogueUnavailable = errors.New("catalogue unavailable")
	ErrQuoteComputation          = errors.New("quote computation failed")
)

type catalogueLoader interface {
	Load(ctx context.Context) (*quote.Catalogue, error)
}

type rateSource interface {
	Load() *currency.Table
}

type QuoteService struct {
	catalogue    catalogueLoader
	engine       *quote.Engine
	rates        rateSource
	baseCurrency string
	logger       *slog.Logger
}

func NewQuoteService(catalogue catalogueLoader, engine *quote.Engine, rates rateSource, baseCurrency string, logger *slog.Logger) *QuoteService {
	if engine == nil {
		engine = quote.NewEngine(quote.DefaultPolicy())
	}
	return &QuoteService{
		catalogue:    catalogue,
		engine:       engine,
		rates:        rates,
		baseCurrency: currency.NormalizeCode(baseCurrency),
		logger:       logger,
	}
}

func (s *QuoteService) loggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, s.logger)
}

type CompareInput struct {
	Spec      quote.Specification
	Currency  string
	Sort      string
	ValidOnly bool
}

// Comparison is one specification quoted against every plant.
type Comparison struct {
	BaseCurrency string
	// Currency is the currency of the display amounts. It falls back to
	// BaseCurrency when no rate is known for the requested one.
	Currency       string
	RatesAvailable bool
	RatesFetchedAt time.Time
	Sort           quote.SortKey
	Rows           []QuoteRow
}

type QuoteRow struct {
	Plant    quote.Plant
	Valid    bool
	Failures []string
	Messages []string

	// Base currency amounts, unrounded.
	VinylUnitCost     decimal.Decimal
	PackagingUnitCost decimal.Decimal
	PerUnitCost       decimal.Decimal
	Total             decimal.Decimal
	Packaging         map[quote.PackagingType]decimal.Decimal

	Display DisplayAmounts
}

// DisplayAmounts are converted and rounded to two decimal places.
type DisplayAmounts struct {
	VinylUnitCost     string
	PackagingUnitCost string
	PerUnitCost       string
	Total             string
}

func (s *QuoteService) Compare(ctx context.Context, input CompareInput) (*Comparison, error) {
	span := sentry.StartSpan(
		ctx,
		"service.quote.compare",
		sentry.WithOpName("service.quote"),
		sentry.WithDescription("Compare"),
		sentry.WithSpanOrigin(sentry.SpanOriginManual),
	)
	defer span.Finish()
	ctx = span.Context()

	logger := s.loggerFromContext(ctx)
	meter := observability.MeterFromContext(ctx)
	meter.Count("quote.compare.received", 1)

	sortKey, ok := quote.ParseSortKey(input.Sort)
	if !ok {
		observability.CountReason(meter, "quote.compare.failed", "invalid_sort")
		return nil, fmt.Errorf("%w: %s", ErrQuoteInvalidSort, input.Sort)
	}

	if s.catalogue == nil {
		observability.CountReason(meter, "quote.compare.failed", "catalogue_missing")
		return nil, ErrQuoteCatalogueUnavailable
	}
	catalogue, err := s.catalogue.Load(ctx)
	if err != nil {
		observability.CountReason(meter, "quote.compare.failed", "catalogue_load")
		logger.Error("failed to load catalogue", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrQuoteCatalogueUnavailable, err)
	}

	quotes, err := s.engine.ComputeAll(catalogue, input.Spec)
	if err != nil {
		observability.CountReason(meter, "quote.compare.failed", "computation")
		span.Status = sentry.SpanStatusInternalError
		logger.Error("quote computation failed", "error", err, "quantity", input.Spec.Quantity)
		return nil, fmt.Errorf("%w: %w", ErrQuoteComputation, err)
	}

	plants := catalogue.PlantsByID()
	quotes = quote.Rank(quotes, plants, sortKey)
	if input.ValidOnly {
		quotes = quote.ValidOnly(quotes)
	}

	comparison := s.present(quotes, plants, input.Currency)
	comparison.Sort = sortKey

	valid := 0
	for _, row := range comparison.Rows {
		if row.Valid {
			valid++
		}
	}
	meter.Count("quote.compare.completed", 1, sentry.WithAttributes(
		attribute.String("currency", comparison.Currency),
		attribute.Bool("rates_available", comparison.RatesAvailable),
	))
	meter.Distribution("quote.compare.valid_plants", float64(valid))
	logger.Debug("quotes compared",
		"plants", len(comparison.Rows),
		"valid", valid,
		"currency", comparison.Currency,
		"rates_available", comparison.RatesAvailable,
	)

	return comparison, nil
}

// CurrentRates returns the active rate table, or false before the first
// successful fetch.
func (s *QuoteService) CurrentRates() (*currency.Table, bool) {
	if s.rates == nil {
		return nil, false
	}
	table := s.rates.Load()
	return table, table != nil
}

func (s *QuoteService) present(quotes []quote.PlantQuote, plants map[string]quote.Plant, requested string) *Comparison {
	table, _ := s.CurrentRates()

	target := currency.NormalizeCode(requested)
	if target == "" {
		target = s.baseCurrency
	}
	available := currency.CanConvert(s.baseCurrency, target, table)
	if !available {
		target = s.baseCurrency
	}

	comparison := &Comparison{
		BaseCurrency:   s.baseCurrency,
		Currency:       target,
		RatesAvailable: available,
		Rows:           make([]QuoteRow, 0, len(quotes)),
	}
	if table != nil {
		comparison.RatesFetchedAt = table.FetchedAt
	}

	display := func(amount decimal.Decimal) string {
		return currency.FormatAmount(currency.Convert(amount, s.baseCurrency, target, table))
	}

	for _, q := range quotes {
		plant, ok := plants[q.PlantID]
		if !ok {
			plant = quote.Plant{ID: q.PlantID}
		}
		if plant.Name == "" {
			plant.Name = plant.ID
		}

		row := QuoteRow{
			Plant:             plant,
			Valid:             q.Valid,
			Failures:          q.Failures.Strings(),
			Messages:          make([]string, 0, len(q.Failures)),
			VinylUnitCost:     q.VinylUnitCost,
			PackagingUnitCost: q.PackagingUnitCost,
			PerUnitCost:       q.PerUnitCost,
			Total:             q.Total(),
			Packaging:         q.Packaging,
		}
		for _, field := range q.Failures {
			if field == quote.FieldQuantity {
				row.Messages = append(row.Messages, quote.QuantityMessage(q.MinimumQuantity))
				continue
			}
			row.Messages = append(row.Messages, field.Message())
		}
		if q.Valid {
			row.Display = DisplayAmounts{
				VinylUnitCost:     display(row.VinylUnitCost),
				PackagingUnitCost: display(row.PackagingUnitCost),
				PerUnitCost:       display(row.PerUnitCost),
				Total:             display(row.Total),
			}
		}
		comparison.Rows = append(comparison.Rows, row)
	}

	return comparison
}
