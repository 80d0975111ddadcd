package currency

import "github.com/shopspring/decimal"

// Convert expresses amount, priced in from, in to. Conversion is a display
// nicety: when either rate is unknown the amount is returned unchanged and
// the caller decides whether to flag rates as unavailable.
func Convert(amount decimal.Decimal, from, to string, table *Table) decimal.Decimal {
	if NormalizeCode(from) == NormalizeCode(to) {
		return amount
	}

	fromRate, ok := table.Rate(from)
	if !ok {
		return amount
	}
	toRate, ok := table.Rate(to)
	if !ok {
		return amount
	}

	inBase := amount.Div(fromRate)
	return inBase.Mul(toRate)
}

// CanConvert reports whether Convert would apply a real conversion.
func CanConvert(from, to string, table *Table) bool {
	if NormalizeCode(from) == NormalizeCode(to) {
		return true
	}
	return table.Has(from) && table.Has(to)
}

// FormatAmount renders a display value with two decimal places.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
