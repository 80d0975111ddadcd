package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/pressquote/pressquote/internal/quote"
)

const (
	listPlantsSQL = `SELECT id, name, rating::float8, turnaround_weeks, location FROM plants ORDER BY created_at, id`

	listVinylTiersSQL = `SELECT plant_id, size, format, min_quantity, unit_price::text
FROM vinyl_price_tiers
ORDER BY plant_id, size, format, min_quantity`

	listPackagingTiersSQL = `SELECT o.id, o.plant_id, o.type, o.option, o.locked, t.min_quantity, t.unit_price::text
FROM packaging_options o
JOIN packaging_price_tiers t ON t.packaging_option_id = o.id
ORDER BY o.plant_id, o.type, o.id, t.min_quantity`

	listColourCostsSQL = `SELECT plant_id, value, unit_cost::text FROM colour_costs ORDER BY plant_id, value`
	listWeightCostsSQL = `SELECT plant_id, value, unit_cost::text FROM weight_costs ORDER BY plant_id, value`
)

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// CatalogueStore loads catalogue snapshots from PostgreSQL.
type CatalogueStore struct {
	db querier
}

func NewCatalogueStore(db querier) *CatalogueStore {
	return &CatalogueStore{db: db}
}

type vinylTierRow struct {
	PlantID     string
	Size        string
	Format      string
	MinQuantity int
	UnitPrice   string
}

type packagingTierRow struct {
	OptionID    int64
	PlantID     string
	Type        string
	Option      string
	Locked      bool
	MinQuantity int
	UnitPrice   string
}

type costRow struct {
	PlantID  string
	Value    string
	UnitCost string
}

// Load reads every catalogue table. Rows come back in a stable order so two
// loads of unchanged data produce identical snapshots.
func (s *CatalogueStore) Load(ctx context.Context) (*quote.Catalogue, error) {
	plants, err := collect(ctx, s.db, listPlantsSQL, func(row pgx.CollectableRow) (quote.Plant, error) {
		var p quote.Plant
		err := row.Scan(&p.ID, &p.Name, &p.Rating, &p.TurnaroundWeeks, &p.Location)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load plants: %w", err)
	}

	vinyl, err := collect(ctx, s.db, listVinylTiersSQL, func(row pgx.CollectableRow) (vinylTierRow, error) {
		var r vinylTierRow
		err := row.Scan(&r.PlantID, &r.Size, &r.Format, &r.MinQuantity, &r.UnitPrice)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load vinyl tiers: %w", err)
	}

	packaging, err := collect(ctx, s.db, listPackagingTiersSQL, func(row pgx.CollectableRow) (packagingTierRow, error) {
		var r packagingTierRow
		err := row.Scan(&r.OptionID, &r.PlantID, &r.Type, &r.Option, &r.Locked, &r.MinQuantity, &r.UnitPrice)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load packaging tiers: %w", err)
	}

	scanCost := func(row pgx.CollectableRow) (costRow, error) {
		var r costRow
		err := row.Scan(&r.PlantID, &r.Value, &r.UnitCost)
		return r, err
	}
	colours, err := collect(ctx, s.db, listColourCostsSQL, scanCost)
	if err != nil {
		return nil, fmt.Errorf("failed to load colour costs: %w", err)
	}
	weights, err := collect(ctx, s.db, listWeightCostsSQL, scanCost)
	if err != nil {
		return nil, fmt.Errorf("failed to load weight costs: %w", err)
	}

	return assembleCatalogue(plants, vinyl, packaging, colours, weights)
}

func collect[T any](ctx context.Context, db querier, sql string, scan pgx.RowToFunc[T]) ([]T, error) {
	rows, err := db.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scan)
}

func assembleCatalogue(plants []quote.Plant, vinyl []vinylTierRow, packaging []packagingTierRow, colours, weights []costRow) (*quote.Catalogue, error) {
	catalogue := &quote.Catalogue{Plants: plants}

	for _, r := range vinyl {
		price, err := decimal.NewFromString(r.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("plant %s vinyl tier %d: invalid price %q", r.PlantID, r.MinQuantity, r.UnitPrice)
		}
		catalogue.VinylTiers = append(catalogue.VinylTiers, quote.PriceTier{
			PlantID:   r.PlantID,
			Size:      quote.Size(r.Size),
			Format:    quote.Format(r.Format),
			Threshold: r.MinQuantity,
			UnitPrice: price,
		})
	}

	// Rows are ordered by option id, so each option's tiers are contiguous.
	index := map[int64]int{}
	for _, r := range packaging {
		t, ok := quote.ParsePackagingType(r.Type)
		if !ok {
			return nil, fmt.Errorf("plant %s: unknown packaging type %q", r.PlantID, r.Type)
		}
		price, err := decimal.NewFromString(r.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("plant %s packaging %s/%s: invalid price %q", r.PlantID, t, r.Option, r.UnitPrice)
		}

		i, exists := index[r.OptionID]
		if !exists {
			catalogue.Packaging = append(catalogue.Packaging, quote.PackagingPriceEntry{
				PlantID: r.PlantID,
				Type:    t,
				Option:  r.Option,
				Locked:  r.Locked,
			})
			i = len(catalogue.Packaging) - 1
			index[r.OptionID] = i
		}
		catalogue.Packaging[i].Tiers = append(catalogue.Packaging[i].Tiers, quote.Tier{Threshold: r.MinQuantity, Price: price})
	}

	var err error
	if catalogue.ColourCosts, err = assembleCosts(colours); err != nil {
		return nil, fmt.Errorf("colour costs: %w", err)
	}
	if catalogue.WeightCosts, err = assembleCosts(weights); err != nil {
		return nil, fmt.Errorf("weight costs: %w", err)
	}

	return catalogue, nil
}

func assembleCosts(rows []costRow) ([]quote.AdditionalCost, error) {
	costs := make([]quote.AdditionalCost, 0, len(rows))
	seen := make(map[[2]string]string, len(rows))
	for _, r := range rows {
		key := [2]string{r.PlantID, quote.OptionKey(r.Value)}
		if other, ok := seen[key]; ok {
			return nil, fmt.Errorf("plant %s: duplicate option %q and %q", r.PlantID, other, r.Value)
		}
		seen[key] = r.Value

		cost, err := decimal.NewFromString(r.UnitCost)
		if err != nil {
			return nil, fmt.Errorf("plant %s %s: invalid cost %q", r.PlantID, r.Value, r.UnitCost)
		}
		costs = append(costs, quote.AdditionalCost{PlantID: r.PlantID, Value: r.Value, UnitCost: cost})
	}
	return costs, nil
}
