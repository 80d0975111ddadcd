package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

const maxRateResponseBytes = 1 << 20 // 1 MB

// Fetcher retrieves a fresh rate table from an external source.
type Fetcher interface {
	Fetch(ctx context.Context) (*Table, error)
}

type HTTPFetcher struct {
	client *http.Client
	url    string
	base   string
	now    func() time.Time
}

// NewHTTPFetcher reads rate documents shaped like
// {"base": "USD", "rates": {"EUR": 0.9}}. base is used when the document
// omits it.
func NewHTTPFetcher(client *http.Client, url, base string) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{
		client: client,
		url:    url,
		base:   base,
		now:    time.Now,
	}
}

type rateDocument struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

func (f *HTTPFetcher) Fetch(ctx context.Context) (*Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rate request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate source returned status %d", resp.StatusCode)
	}

	var doc rateDocument
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxRateResponseBytes)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode rates: %w", err)
	}
	if len(doc.Rates) == 0 {
		return nil, fmt.Errorf("rate source returned no rates")
	}

	base := doc.Base
	if base == "" {
		base = f.base
	}
	return NewTable(base, doc.Rates, f.now()), nil
}
