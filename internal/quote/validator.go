package quote

// Validation is the feasibility verdict for one plant.
type Validation struct {
	Valid    bool
	Failures Failures
}

type OptionValidator struct {
	policy Policy
}

func NewOptionValidator(policy Policy) *OptionValidator {
	return &OptionValidator{policy: policy}
}

// Validate checks every field of spec against one plant's catalogue. Fields
// are evaluated independently so the buyer sees every problem at once.
func (v *OptionValidator) Validate(plant PlantCatalogue, spec Specification) Validation {
	var failures Failures

	vinylTiers := plant.vinylTiers(spec.Size, spec.Format)
	if len(vinylTiers) == 0 {
		failures = failures.add(FieldSizeFormat)
	}

	if spec.Quantity <= 0 {
		failures = failures.add(FieldQuantity)
	} else if _, ok := ResolveTier(vinylTiers, spec.Quantity); !ok {
		failures = failures.add(FieldQuantity)
	}

	if !v.additionalCostOffered(FieldColour, plant.ColourCosts, spec.Colour) {
		failures = failures.add(FieldColour)
	}
	if !v.additionalCostOffered(FieldWeight, plant.WeightCosts, spec.Weight) {
		failures = failures.add(FieldWeight)
	}

	for _, t := range PackagingTypes {
		if !v.packagingOffered(plant, t, spec.Packaging(t), spec.Quantity) {
			failures = failures.add(packagingField(t))
		}
	}

	return Validation{Valid: failures.Empty(), Failures: failures}
}

// additionalCostOffered applies the implicit default rule: the default value
// is always offered, anything else needs a catalogue row.
func (v *OptionValidator) additionalCostOffered(field Field, costs []AdditionalCost, value string) bool {
	if isImplicitDefault(field, value) {
		return true
	}
	_, ok := findAdditionalCost(costs, value)
	return ok
}

// packagingOffered has no implicit default: "none" options need a row too.
func (v *OptionValidator) packagingOffered(plant PlantCatalogue, t PackagingType, option string, quantity int) bool {
	entry, ok := plant.packagingEntry(t, option)
	if !ok {
		return false
	}
	if !v.policy.Admits(entry) {
		return false
	}
	if quantity <= 0 {
		// Reported once, as a quantity failure.
		return true
	}
	_, ok = ResolveTier(entry.Tiers, quantity)
	return ok
}
