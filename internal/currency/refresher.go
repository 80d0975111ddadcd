package currency

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pressquote/pressquote/internal/cache"
)

const (
	defaultRefreshInterval = 12 * time.Hour
	snapshotCacheKey       = "rates:latest"
)

type snapshotCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

type RefresherParams struct {
	Fetcher  Fetcher
	Store    *Store
	Cache    snapshotCache
	Interval time.Duration
	Logger   *slog.Logger
}

// Refresher keeps a Store current. A failed fetch leaves the previous table
// in place until the next tick.
type Refresher struct {
	fetcher  Fetcher
	store    *Store
	cache    snapshotCache
	interval time.Duration
	logger   *slog.Logger
}

func NewRefresher(params RefresherParams) (*Refresher, error) {
	if params.Fetcher == nil {
		return nil, fmt.Errorf("rate fetcher is required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("rate store is required")
	}
	logger := params.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	interval := params.Interval
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	return &Refresher{
		fetcher:  params.Fetcher,
		store:    params.Store,
		cache:    params.Cache,
		interval: interval,
		logger:   logger,
	}, nil
}

// Run warms the store from the snapshot cache, refreshes immediately, then
// refreshes on every tick until ctx is canceled.
func (r *Refresher) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	r.Warm(ctx)
	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("rate refresher stopped")
			return ctx.Err()
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

// Warm loads the last cached snapshot when the store is still empty.
func (r *Refresher) Warm(ctx context.Context) {
	if r.cache == nil || r.store.Load() != nil {
		return
	}

	snap, err := cache.GetJSON[snapshot](ctx, r.cache, snapshotCacheKey)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			r.logger.Warn("failed to read cached rates", "error", err)
		}
		return
	}
	if len(snap.Rates) == 0 {
		r.logger.Warn("discarding cached rates without entries")
		return
	}

	table := NewTable(snap.Base, snap.Rates, snap.FetchedAt)
	r.store.Swap(table)
	r.logger.Info("rates restored from cache", "base", table.Base, "currencies", len(table.Rates), "fetched_at", table.FetchedAt)
}

// Refresh fetches once and swaps the result in on success.
func (r *Refresher) Refresh(ctx context.Context) error {
	table, err := r.fetcher.Fetch(ctx)
	if err != nil {
		return err
	}
	r.store.Swap(table)

	if r.cache != nil {
		snap := snapshot{Base: table.Base, Rates: table.Rates, FetchedAt: table.FetchedAt}
		if err := cache.SetJSON(ctx, r.cache, snapshotCacheKey, snap, 2*r.interval); err != nil {
			r.logger.Warn("failed to cache rates snapshot", "error", err)
		}
	}
	return nil
}

func (r *Refresher) refresh(ctx context.Context) {
	if err := r.Refresh(ctx); err != nil {
		r.logger.Warn("rate refresh failed; keeping previous rates", "error", err)
		return
	}
	table := r.store.Load()
	r.logger.Info("rates refreshed", "base", table.Base, "currencies", len(table.Rates))
}

type snapshot struct {
	Base      string                     `json:"base"`
	Rates     map[string]decimal.Decimal `json:"rates"`
	FetchedAt time.Time                  `json:"fetched_at"`
}
