package currency

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func testTable() *Table {
	return NewTable("USD", map[string]decimal.Decimal{
		"USD": d("1"),
		"eur": d("0.9"),
		"GBP": d("0.79"),
		"XXX": d("0"),
	}, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
}

func TestConvert(t *testing.T) {
	t.Parallel()

	table := testTable()

	tests := []struct {
		name   string
		amount string
		from   string
		to     string
		table  *Table
		want   string
	}{
		{name: "usd to eur", amount: "10", from: "USD", to: "EUR", table: table, want: "9"},
		{name: "eur back to usd", amount: "9", from: "EUR", to: "USD", table: table, want: "10"},
		{name: "codes are case insensitive", amount: "10", from: "usd", to: "eur", table: table, want: "9"},
		{name: "cross rate", amount: "9", from: "EUR", to: "GBP", table: table, want: "7.9"},
		{name: "identity", amount: "12.345", from: "GBP", to: "GBP", table: table, want: "12.345"},
		{name: "identity without table", amount: "12.345", from: "USD", to: "USD", table: nil, want: "12.345"},
		{name: "missing source rate is a no-op", amount: "10", from: "JPY", to: "EUR", table: table, want: "10"},
		{name: "missing target rate is a no-op", amount: "10", from: "USD", to: "JPY", table: table, want: "10"},
		{name: "zero rates are dropped", amount: "10", from: "XXX", to: "USD", table: table, want: "10"},
		{name: "nil table is a no-op", amount: "10", from: "USD", to: "EUR", table: nil, want: "10"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := Convert(d(tc.amount), tc.from, tc.to, tc.table)
			if !got.Equal(d(tc.want)) {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestConvert_RoundTripWithinTolerance(t *testing.T) {
	t.Parallel()

	table := testTable()
	start := d("17.99")
	there := Convert(start, "USD", "GBP", table)
	back := Convert(there, "GBP", "USD", table)

	if back.Sub(start).Abs().GreaterThan(d("0.000000001")) {
		t.Fatalf("expected round trip near %s, got %s", start, back)
	}
}

func TestNewTable_AddsBaseRate(t *testing.T) {
	t.Parallel()

	table := NewTable("usd", map[string]decimal.Decimal{"EUR": d("0.9")}, time.Time{})
	rate, ok := table.Rate("USD")
	if !ok || !rate.Equal(d("1")) {
		t.Fatalf("expected base rate 1, got %s (ok=%v)", rate, ok)
	}
	if table.Base != "USD" {
		t.Fatalf("expected normalized base USD, got %s", table.Base)
	}
}

func TestCanConvert(t *testing.T) {
	t.Parallel()

	table := testTable()
	if !CanConvert("USD", "EUR", table) {
		t.Fatalf("expected USD to EUR to be convertible")
	}
	if CanConvert("USD", "JPY", table) {
		t.Fatalf("expected USD to JPY to be unavailable")
	}
	if !CanConvert("JPY", "jpy", nil) {
		t.Fatalf("expected identity to always be convertible")
	}
}

func TestFormatAmount(t *testing.T) {
	t.Parallel()

	if got := FormatAmount(d("2.505")); got != "2.51" {
		t.Fatalf("expected 2.51, got %s", got)
	}
	if got := FormatAmount(d("3")); got != "3.00" {
		t.Fatalf("expected 3.00, got %s", got)
	}
}
