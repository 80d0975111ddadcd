package currency

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pressquote/pressquote/internal/cache"
)

type fakeFetcher struct {
	tables []*Table
	errs   []error
	calls  int
}

func (f *fakeFetcher) Fetch(ctx context.Context) (*Table, error) {
	_ = ctx
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.tables) {
		return f.tables[i], nil
	}
	return nil, errors.New("no more tables")
}

func TestRefresher_FailedFetchKeepsPreviousTable(t *testing.T) {
	t.Parallel()

	first := NewTable("USD", map[string]decimal.Decimal{"EUR": d("0.9")}, time.Now())
	fetcher := &fakeFetcher{
		tables: []*Table{first, nil},
		errs:   []error{nil, errors.New("rate source down")},
	}
	store := NewStore()
	refresher, err := NewRefresher(RefresherParams{Fetcher: fetcher, Store: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := refresher.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Load() != first {
		t.Fatalf("expected first table to be loaded")
	}

	if err := refresher.Refresh(context.Background()); err == nil {
		t.Fatalf("expected refresh error")
	}
	if store.Load() != first {
		t.Fatalf("expected previous table to survive a failed refresh")
	}
}

func TestRefresher_WarmsFromCache(t *testing.T) {
	t.Parallel()

	provider, err := cache.NewMemoryProvider()
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}

	table := NewTable("USD", map[string]decimal.Decimal{"EUR": d("0.9"), "GBP": d("0.79")}, time.Now().UTC())
	seeder, err := NewRefresher(RefresherParams{
		Fetcher: &fakeFetcher{tables: []*Table{table}},
		Store:   NewStore(),
		Cache:   provider,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := seeder.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store := NewStore()
	restarted, err := NewRefresher(RefresherParams{
		Fetcher: &fakeFetcher{errs: []error{errors.New("offline")}},
		Store:   store,
		Cache:   provider,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	restarted.Warm(context.Background())

	restored := store.Load()
	if restored == nil {
		t.Fatalf("expected table restored from cache")
	}
	rate, ok := restored.Rate("GBP")
	if !ok || !rate.Equal(d("0.79")) {
		t.Fatalf("expected GBP rate 0.79, got %s (ok=%v)", rate, ok)
	}
}

func TestRefresher_RunStopsOnCancel(t *testing.T) {
	t.Parallel()

	table := NewTable("USD", map[string]decimal.Decimal{"EUR": d("0.9")}, time.Now())
	store := NewStore()
	refresher, err := NewRefresher(RefresherParams{
		Fetcher:  &fakeFetcher{tables: []*Table{table}},
		Store:    store,
		Interval: time.Hour,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- refresher.Run(ctx)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for store.Load() == nil && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if store.Load() == nil {
		t.Fatalf("expected initial refresh to populate the store")
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("refresher did not stop")
	}
}

func TestNewRefresher_RequiresDependencies(t *testing.T) {
	t.Parallel()

	if _, err := NewRefresher(RefresherParams{Store: NewStore()}); err == nil {
		t.Fatalf("expected error without fetcher")
	}
	if _, err := NewRefresher(RefresherParams{Fetcher: &fakeFetcher{}}); err == nil {
		t.Fatalf("expected error without store")
	}
}

func TestHTTPFetcher_Fetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"base":"USD","rates":{"EUR":0.9,"GBP":"0.79"}}`))
	}))
	defer srv.Close()

	table, err := NewHTTPFetcher(srv.Client(), srv.URL, "USD").Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Base != "USD" {
		t.Fatalf("expected base USD, got %s", table.Base)
	}
	rate, ok := table.Rate("EUR")
	if !ok || !rate.Equal(d("0.9")) {
		t.Fatalf("expected EUR rate 0.9, got %s", rate)
	}
	if !table.Has("GBP") {
		t.Fatalf("expected GBP rate from quoted JSON value")
	}
}

func TestHTTPFetcher_FetchErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "non-200 status", status: http.StatusBadGateway, body: `{}`},
		{name: "invalid json", status: http.StatusOK, body: `{"rates":`},
		{name: "empty rates", status: http.StatusOK, body: `{"base":"USD","rates":{}}`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			if _, err := NewHTTPFetcher(srv.Client(), srv.URL, "USD").Fetch(context.Background()); err == nil {
				t.Fatalf("expected error, got nil")
			}
		})
	}
}
