package quote

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNegativePrice signals a catalogue or engine defect: a computed price
// component came out below zero.
var ErrNegativePrice = errors.New("negative computed price")

// PlantQuote is the priced (or rejected) result for one plant. Price fields
// are zero when Valid is false.
type PlantQuote struct {
	PlantID  string
	Quantity int
	Valid    bool
	Failures Failures
	// MinimumQuantity is the lowest vinyl threshold for the requested size and
	// format, set when the quantity is rejected and the plant presses them.
	MinimumQuantity int

	VinylBasePrice    decimal.Decimal
	ColourCost        decimal.Decimal
	WeightCost        decimal.Decimal
	VinylUnitCost     decimal.Decimal
	Packaging         map[PackagingType]decimal.Decimal
	PackagingUnitCost decimal.Decimal
	PerUnitCost       decimal.Decimal
}

// Total is the order price: per-unit cost times quantity.
func (q PlantQuote) Total() decimal.Decimal {
	if !q.Valid {
		return decimal.Zero
	}
	return q.PerUnitCost.Mul(decimal.NewFromInt(int64(q.Quantity)))
}

type Aggregator struct {
	validator *OptionValidator
}

func NewAggregator(validator *OptionValidator) *Aggregator {
	if validator == nil {
		validator = NewOptionValidator(DefaultPolicy())
	}
	return &Aggregator{validator: validator}
}

// ComputeQuote validates spec against one plant and, when every field passes,
// prices it. Infeasibility is reported in the quote; an error means the
// catalogue produced an impossible price.
func (a *Aggregator) ComputeQuote(plant PlantCatalogue, spec Specification) (PlantQuote, error) {
	q := PlantQuote{
		PlantID:  plant.PlantID,
		Quantity: spec.Quantity,
	}

	validation := a.validator.Validate(plant, spec)
	if !validation.Valid {
		q.Failures = validation.Failures
		if q.Failures.Has(FieldQuantity) {
			q.MinimumQuantity, _ = MinimumQuantity(plant.vinylTiers(spec.Size, spec.Format))
		}
		return q, nil
	}

	base, ok := ResolveTier(plant.vinylTiers(spec.Size, spec.Format), spec.Quantity)
	if !ok {
		return PlantQuote{}, fmt.Errorf("plant %s: vinyl tier vanished after validation", plant.PlantID)
	}

	colourCost := additionalCost(FieldColour, plant.ColourCosts, spec.Colour)
	weightCost := additionalCost(FieldWeight, plant.WeightCosts, spec.Weight)

	q.VinylBasePrice = base
	q.ColourCost = colourCost
	q.WeightCost = weightCost
	q.VinylUnitCost = base.Add(colourCost).Add(weightCost)

	q.Packaging = make(map[PackagingType]decimal.Decimal, len(PackagingTypes))
	q.PackagingUnitCost = decimal.Zero
	for _, t := range PackagingTypes {
		option := spec.Packaging(t)
		entry, found := plant.packagingEntry(t, option)
		if !found {
			return PlantQuote{}, fmt.Errorf("plant %s: %s option %q vanished after validation", plant.PlantID, t, option)
		}

		price, resolved := ResolveTier(entry.Tiers, spec.Quantity)
		if !resolved {
			return PlantQuote{}, fmt.Errorf("plant %s: %s tier vanished after validation", plant.PlantID, t)
		}
		if IsNoneOption(t, option) {
			price = decimal.Zero
		}

		q.Packaging[t] = price
		q.PackagingUnitCost = q.PackagingUnitCost.Add(price)
	}

	q.PerUnitCost = q.VinylUnitCost.Add(q.PackagingUnitCost)
	q.Valid = true

	if err := checkNonNegative(q); err != nil {
		return PlantQuote{}, err
	}
	return q, nil
}

// additionalCost returns zero for the implicit default whatever the
// catalogue holds; otherwise the catalogue surcharge.
func additionalCost(field Field, costs []AdditionalCost, value string) decimal.Decimal {
	if isImplicitDefault(field, value) {
		return decimal.Zero
	}
	cost, ok := findAdditionalCost(costs, value)
	if !ok {
		return decimal.Zero
	}
	return cost.UnitCost
}

func checkNonNegative(q PlantQuote) error {
	components := []struct {
		name  string
		value decimal.Decimal
	}{
		{"vinyl base price", q.VinylBasePrice},
		{"colour cost", q.ColourCost},
		{"weight cost", q.WeightCost},
		{"vinyl unit cost", q.VinylUnitCost},
		{"packaging unit cost", q.PackagingUnitCost},
		{"per unit cost", q.PerUnitCost},
	}
	for _, t := range PackagingTypes {
		components = append(components, struct {
			name  string
			value decimal.Decimal
		}{string(t) + " cost", q.Packaging[t]})
	}

	for _, c := range components {
		if c.value.IsNegative() {
			return fmt.Errorf("plant %s: %s is %s: %w", q.PlantID, c.name, c.value.String(), ErrNegativePrice)
		}
	}
	return nil
}
