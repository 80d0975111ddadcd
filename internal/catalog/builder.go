package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pressquote/pressquote/internal/quote"
)

// Build converts a validated catalogue file into the engine's snapshot.
func Build(file *CatalogueFile) (*quote.Catalogue, error) {
	if file == nil {
		return nil, fmt.Errorf("catalogue is required")
	}

	catalogue := &quote.Catalogue{}
	for _, plant := range file.Plants {
		id := strings.TrimSpace(plant.ID)
		catalogue.Plants = append(catalogue.Plants, quote.Plant{
			ID:              id,
			Name:            plant.Name,
			Rating:          plant.Rating,
			TurnaroundWeeks: plant.TurnaroundWeeks,
			Location:        plant.Location,
		})

		for _, vinyl := range plant.Vinyl {
			for _, tier := range vinyl.Tiers {
				price, err := parsePrice(tier.Price)
				if err != nil {
					return nil, fmt.Errorf("plant %s vinyl %s/%s: %w", id, vinyl.Size, vinyl.Format, err)
				}
				catalogue.VinylTiers = append(catalogue.VinylTiers, quote.PriceTier{
					PlantID:   id,
					Size:      quote.Size(vinyl.Size),
					Format:    quote.Format(vinyl.Format),
					Threshold: tier.Min,
					UnitPrice: price,
				})
			}
		}

		colours, err := buildSurcharges(id, plant.Colours)
		if err != nil {
			return nil, fmt.Errorf("plant %s colours: %w", id, err)
		}
		catalogue.ColourCosts = append(catalogue.ColourCosts, colours...)

		weights, err := buildSurcharges(id, plant.Weights)
		if err != nil {
			return nil, fmt.Errorf("plant %s weights: %w", id, err)
		}
		catalogue.WeightCosts = append(catalogue.WeightCosts, weights...)

		for _, packaging := range plant.Packaging {
			t, ok := quote.ParsePackagingType(packaging.Type)
			if !ok {
				return nil, fmt.Errorf("plant %s: unknown packaging type %q", id, packaging.Type)
			}
			entry := quote.PackagingPriceEntry{
				PlantID: id,
				Type:    t,
				Option:  strings.TrimSpace(packaging.Option),
				Locked:  packaging.Locked,
			}
			for _, tier := range packaging.Tiers {
				price, err := parsePrice(tier.Price)
				if err != nil {
					return nil, fmt.Errorf("plant %s packaging %s/%s: %w", id, t, entry.Option, err)
				}
				entry.Tiers = append(entry.Tiers, quote.Tier{Threshold: tier.Min, Price: price})
			}
			catalogue.Packaging = append(catalogue.Packaging, entry)
		}
	}

	return catalogue, nil
}

// buildSurcharges emits rows in value order; YAML maps carry no order.
func buildSurcharges(plantID string, values map[string]string) ([]quote.AdditionalCost, error) {
	keys := make([]string, 0, len(values))
	for value := range values {
		keys = append(keys, value)
	}
	sort.Strings(keys)

	costs := make([]quote.AdditionalCost, 0, len(keys))
	for _, value := range keys {
		cost, err := parsePrice(values[value])
		if err != nil {
			return nil, err
		}
		costs = append(costs, quote.AdditionalCost{
			PlantID:  plantID,
			Value:    strings.TrimSpace(value),
			UnitCost: cost,
		})
	}
	return costs, nil
}
