package catalog

// Package catalog provides catalogue validation.

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/pressquote/pressquote/internal/quote"
)

type Validator struct {
	structs *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{structs: validator.New()}
}

func (v *Validator) Validate(file *CatalogueFile) error {
	if file == nil {
		return fmt.Errorf("catalogue is required")
	}
	if err := v.structs.Struct(file); err != nil {
		return fmt.Errorf("catalogue shape validation failed: %w", err)
	}

	ids := make(map[string]bool)
	for i, plant := range file.Plants {
		if err := v.validatePlant(&plant); err != nil {
			return fmt.Errorf("plant %d validation failed: %w", i, err)
		}

		id := strings.TrimSpace(plant.ID)
		if ids[id] {
			return fmt.Errorf("duplicate plant id: %s", id)
		}
		ids[id] = true
	}

	return nil
}

func (v *Validator) validatePlant(plant *PlantConfig) error {
	if strings.TrimSpace(plant.ID) == "" {
		return fmt.Errorf("plant id is required")
	}

	groups := make(map[string]bool)
	for i, vinyl := range plant.Vinyl {
		key := vinyl.Size + "/" + vinyl.Format
		if groups[key] {
			return fmt.Errorf("duplicate vinyl group %s", key)
		}
		groups[key] = true

		if err := validateTiers(vinyl.Tiers); err != nil {
			return fmt.Errorf("vinyl %d (%s) validation failed: %w", i, key, err)
		}
	}

	if err := validateSurcharges(plant.Colours); err != nil {
		return fmt.Errorf("colour validation failed: %w", err)
	}
	if err := validateSurcharges(plant.Weights); err != nil {
		return fmt.Errorf("weight validation failed: %w", err)
	}

	options := make(map[string]bool)
	for i, packaging := range plant.Packaging {
		t, ok := quote.ParsePackagingType(packaging.Type)
		if !ok {
			return fmt.Errorf("packaging %d has unknown type %q", i, packaging.Type)
		}

		key := string(t) + "/" + quote.OptionKey(packaging.Option)
		if options[key] {
			return fmt.Errorf("duplicate packaging option %s", key)
		}
		options[key] = true

		if err := validateTiers(packaging.Tiers); err != nil {
			return fmt.Errorf("packaging %d (%s) validation failed: %w", i, key, err)
		}
	}

	return nil
}

func validateTiers(tiers []TierConfig) error {
	if len(tiers) == 0 {
		return fmt.Errorf("at least one tier is required")
	}

	thresholds := make(map[int]bool)
	for _, tier := range tiers {
		if tier.Min <= 0 {
			return fmt.Errorf("tier threshold must be positive")
		}
		if thresholds[tier.Min] {
			return fmt.Errorf("duplicate tier threshold: %d", tier.Min)
		}
		thresholds[tier.Min] = true

		if _, err := parsePrice(tier.Price); err != nil {
			return fmt.Errorf("tier %d: %w", tier.Min, err)
		}
	}
	return nil
}

// validateSurcharges rejects values that only differ by case or spacing, since
// lookups would silently pick one of them.
func validateSurcharges(costs map[string]string) error {
	seen := make(map[string]string, len(costs))
	for value, cost := range costs {
		if err := validateSurcharge(value, cost); err != nil {
			return err
		}
		key := quote.OptionKey(value)
		if other, ok := seen[key]; ok {
			return fmt.Errorf("duplicate option %q and %q", other, value)
		}
		seen[key] = value
	}
	return nil
}

func validateSurcharge(value, cost string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("option value is required")
	}
	if _, err := parsePrice(cost); err != nil {
		return fmt.Errorf("%s: %w", value, err)
	}
	return nil
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q", raw)
	}
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("price must be zero or positive")
	}
	return price, nil
}
