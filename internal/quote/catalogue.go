package quote

import "github.com/shopspring/decimal"

// Tier is one step of a volume price curve: Price applies when the ordered
// quantity is at least Threshold.
type Tier struct {
	Threshold int
	Price     decimal.Decimal
}

type Plant struct {
	ID              string
	Name            string
	Rating          float64
	TurnaroundWeeks int
	Location        string
}

type PriceTier struct {
	PlantID   string
	Size      Size
	Format    Format
	Threshold int
	UnitPrice decimal.Decimal
}

type PackagingPriceEntry struct {
	PlantID string
	Type    PackagingType
	Option  string
	Tiers   []Tier
	// Locked options are listed but not yet orderable; see Policy.
	Locked bool
}

// AdditionalCost is a per-unit surcharge for a colour or weight option.
type AdditionalCost struct {
	PlantID  string
	Value    string
	UnitCost decimal.Decimal
}

// Catalogue is a read-only snapshot of every plant's pricing.
type Catalogue struct {
	Plants      []Plant
	VinylTiers  []PriceTier
	Packaging   []PackagingPriceEntry
	ColourCosts []AdditionalCost
	WeightCosts []AdditionalCost
}

// PlantIDs returns declared plants first, then any plant referenced only by
// price rows, each exactly once in first-seen order.
func (c *Catalogue) PlantIDs() []string {
	if c == nil {
		return nil
	}

	seen := map[string]struct{}{}
	ids := make([]string, 0, len(c.Plants))
	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	for _, plant := range c.Plants {
		add(plant.ID)
	}
	for _, tier := range c.VinylTiers {
		add(tier.PlantID)
	}
	for _, entry := range c.Packaging {
		add(entry.PlantID)
	}
	for _, cost := range c.ColourCosts {
		add(cost.PlantID)
	}
	for _, cost := range c.WeightCosts {
		add(cost.PlantID)
	}
	return ids
}

// PlantsByID indexes plant metadata. Plants referenced only by price rows get
// a bare entry carrying their id.
func (c *Catalogue) PlantsByID() map[string]Plant {
	plants := map[string]Plant{}
	if c == nil {
		return plants
	}
	for _, plant := range c.Plants {
		if _, exists := plants[plant.ID]; !exists {
			plants[plant.ID] = plant
		}
	}
	for _, id := range c.PlantIDs() {
		if _, exists := plants[id]; !exists {
			plants[id] = Plant{ID: id}
		}
	}
	return plants
}

// PlantCatalogue is the slice of a Catalogue that belongs to one plant.
type PlantCatalogue struct {
	PlantID     string
	VinylTiers  []PriceTier
	Packaging   []PackagingPriceEntry
	ColourCosts []AdditionalCost
	WeightCosts []AdditionalCost
}

// ForPlant extracts one plant's rows. A plant with no rows yields an empty
// PlantCatalogue, which fails validation like any unsupported option.
func (c *Catalogue) ForPlant(plantID string) PlantCatalogue {
	pc := PlantCatalogue{PlantID: plantID}
	if c == nil {
		return pc
	}
	for _, tier := range c.VinylTiers {
		if tier.PlantID == plantID {
			pc.VinylTiers = append(pc.VinylTiers, tier)
		}
	}
	for _, entry := range c.Packaging {
		if entry.PlantID == plantID {
			pc.Packaging = append(pc.Packaging, entry)
		}
	}
	for _, cost := range c.ColourCosts {
		if cost.PlantID == plantID {
			pc.ColourCosts = append(pc.ColourCosts, cost)
		}
	}
	for _, cost := range c.WeightCosts {
		if cost.PlantID == plantID {
			pc.WeightCosts = append(pc.WeightCosts, cost)
		}
	}
	return pc
}

func (pc PlantCatalogue) vinylTiers(size Size, format Format) []Tier {
	tiers := []Tier{}
	for _, row := range pc.VinylTiers {
		if row.Size == size && row.Format == format {
			tiers = append(tiers, Tier{Threshold: row.Threshold, Price: row.UnitPrice})
		}
	}
	return tiers
}

func (pc PlantCatalogue) packagingEntry(t PackagingType, option string) (PackagingPriceEntry, bool) {
	want := normalizeOption(option)
	if want == "" {
		return PackagingPriceEntry{}, false
	}
	for _, entry := range pc.Packaging {
		if entry.Type == t && normalizeOption(entry.Option) == want {
			return entry, true
		}
	}
	return PackagingPriceEntry{}, false
}

func findAdditionalCost(costs []AdditionalCost, value string) (AdditionalCost, bool) {
	want := normalizeOption(value)
	if want == "" {
		return AdditionalCost{}, false
	}
	for _, cost := range costs {
		if normalizeOption(cost.Value) == want {
			return cost, true
		}
	}
	return AdditionalCost{}, false
}
