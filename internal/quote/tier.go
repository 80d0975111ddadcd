package quote

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
)

// ResolveTier returns the price of the highest threshold that does not exceed
// quantity. It reports false when quantity is below every threshold; the
// caller must treat that as unsupported rather than upgrading to the smallest
// tier.
func ResolveTier(tiers []Tier, quantity int) (decimal.Decimal, bool) {
	if len(tiers) == 0 {
		return decimal.Zero, false
	}

	sorted := slices.Clone(tiers)
	slices.SortStableFunc(sorted, func(a, b Tier) int {
		return cmp.Compare(b.Threshold, a.Threshold)
	})

	for _, tier := range sorted {
		if tier.Threshold <= quantity {
			return tier.Price, true
		}
	}
	return decimal.Zero, false
}

// MinimumQuantity returns the lowest threshold in tiers.
func MinimumQuantity(tiers []Tier) (int, bool) {
	if len(tiers) == 0 {
		return 0, false
	}
	lowest := tiers[0].Threshold
	for _, tier := range tiers[1:] {
		lowest = min(lowest, tier.Threshold)
	}
	return lowest, true
}
