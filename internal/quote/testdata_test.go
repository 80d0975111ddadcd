package quote

import "github.com/shopspring/decimal"

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func tiers(pairs ...any) []Tier {
	out := []Tier{}
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Tier{Threshold: pairs[i].(int), Price: d(pairs[i+1].(string))})
	}
	return out
}

// testCatalogue has two plants: "pressworks" supports a broad range and
// "smallbatch" only presses 7" singles from 500 units.
func testCatalogue() *Catalogue {
	return &Catalogue{
		Plants: []Plant{
			{ID: "pressworks", Name: "Pressworks", Rating: 4.2, TurnaroundWeeks: 10},
			{ID: "smallbatch", Name: "Small Batch", Rating: 4.8, TurnaroundWeeks: 6},
		},
		VinylTiers: []PriceTier{
			{PlantID: "pressworks", Size: Size12, Format: Format1LP, Threshold: 100, UnitPrice: d("3.00")},
			{PlantID: "pressworks", Size: Size12, Format: Format1LP, Threshold: 500, UnitPrice: d("2.50")},
			{PlantID: "pressworks", Size: Size12, Format: Format1LP, Threshold: 1000, UnitPrice: d("2.00")},
			{PlantID: "pressworks", Size: Size7, Format: Format1LP, Threshold: 500, UnitPrice: d("1.20")},
			{PlantID: "smallbatch", Size: Size7, Format: Format1LP, Threshold: 500, UnitPrice: d("1.10")},
		},
		Packaging: []PackagingPriceEntry{
			{PlantID: "pressworks", Type: InnerSleeve, Option: "white paper", Tiers: tiers(100, "0.10")},
			{PlantID: "pressworks", Type: Jacket, Option: "full colour", Tiers: tiers(100, "1.10", 1000, "0.90")},
			{PlantID: "pressworks", Type: Jacket, Option: "gatefold", Tiers: tiers(100, "2.40"), Locked: true},
			{PlantID: "pressworks", Type: Inserts, Option: "no insert", Tiers: tiers(100, "0.35")},
			{PlantID: "pressworks", Type: Inserts, Option: "printed insert", Tiers: tiers(100, "0.30")},
			{PlantID: "pressworks", Type: ShrinkWrap, Option: "no", Tiers: tiers(100, "0")},
			{PlantID: "pressworks", Type: ShrinkWrap, Option: "yes", Tiers: tiers(100, "0.05")},
			{PlantID: "smallbatch", Type: InnerSleeve, Option: "white paper", Tiers: tiers(500, "0.12")},
			{PlantID: "smallbatch", Type: Jacket, Option: "full colour", Tiers: tiers(500, "0.80")},
			{PlantID: "smallbatch", Type: Inserts, Option: "no insert", Tiers: tiers(500, "0")},
			{PlantID: "smallbatch", Type: ShrinkWrap, Option: "no", Tiers: tiers(500, "0")},
		},
		ColourCosts: []AdditionalCost{
			{PlantID: "pressworks", Value: "transparent red", UnitCost: d("0.40")},
			{PlantID: "pressworks", Value: "black", UnitCost: d("0.99")},
		},
		WeightCosts: []AdditionalCost{
			{PlantID: "pressworks", Value: "180gm", UnitCost: d("0.20")},
		},
	}
}

func baseSpec() Specification {
	return Specification{
		Quantity:    750,
		Size:        Size12,
		Format:      Format1LP,
		Weight:      DefaultWeight,
		Colour:      DefaultColour,
		InnerSleeve: "white paper",
		Jacket:      "full colour",
		Inserts:     "no insert",
		ShrinkWrap:  "no",
	}
}
