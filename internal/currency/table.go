package currency

// Package currency converts base-currency prices for display.

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Table maps currency codes to their rate relative to Base. Tables are
// immutable once built; refreshes replace the whole table.
type Table struct {
	Base      string
	Rates     map[string]decimal.Decimal
	FetchedAt time.Time
}

// NewTable normalizes codes to upper case, drops non-positive rates and adds
// the base currency at rate 1 when missing.
func NewTable(base string, rates map[string]decimal.Decimal, fetchedAt time.Time) *Table {
	base = NormalizeCode(base)
	normalized := make(map[string]decimal.Decimal, len(rates)+1)
	for code, rate := range rates {
		code = NormalizeCode(code)
		if code == "" || !rate.IsPositive() {
			continue
		}
		normalized[code] = rate
	}
	if base != "" {
		if _, ok := normalized[base]; !ok {
			normalized[base] = decimal.NewFromInt(1)
		}
	}
	return &Table{Base: base, Rates: normalized, FetchedAt: fetchedAt}
}

func (t *Table) Rate(code string) (decimal.Decimal, bool) {
	if t == nil {
		return decimal.Zero, false
	}
	rate, ok := t.Rates[NormalizeCode(code)]
	return rate, ok
}

func (t *Table) Has(code string) bool {
	_, ok := t.Rate(code)
	return ok
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
