package quote

import (
	"cmp"
	"fmt"
	"slices"
)

type Engine struct {
	aggregator *Aggregator
}

func NewEngine(policy Policy) *Engine {
	return &Engine{aggregator: NewAggregator(NewOptionValidator(policy))}
}

// ComputeAll quotes spec against every plant in the catalogue, returning
// exactly one PlantQuote per plant in catalogue order.
func (e *Engine) ComputeAll(catalogue *Catalogue, spec Specification) ([]PlantQuote, error) {
	ids := catalogue.PlantIDs()
	quotes := make([]PlantQuote, 0, len(ids))
	for _, id := range ids {
		q, err := e.aggregator.ComputeQuote(catalogue.ForPlant(id), spec)
		if err != nil {
			return nil, fmt.Errorf("failed to quote plant %s: %w", id, err)
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// ValidOnly drops plants that cannot fulfil the specification.
func ValidOnly(quotes []PlantQuote) []PlantQuote {
	valid := make([]PlantQuote, 0, len(quotes))
	for _, q := range quotes {
		if q.Valid {
			valid = append(valid, q)
		}
	}
	return valid
}

type SortKey string

const (
	SortByPrice      SortKey = "price"
	SortByRating     SortKey = "rating"
	SortByTurnaround SortKey = "turnaround"
)

func ParseSortKey(value string) (SortKey, bool) {
	switch SortKey(value) {
	case SortByPrice, "":
		return SortByPrice, true
	case SortByRating:
		return SortByRating, true
	case SortByTurnaround:
		return SortByTurnaround, true
	default:
		return "", false
	}
}

// Rank returns a sorted copy of quotes. Valid quotes always come before
// invalid ones; ties keep the input order.
func Rank(quotes []PlantQuote, plants map[string]Plant, key SortKey) []PlantQuote {
	ranked := slices.Clone(quotes)
	slices.SortStableFunc(ranked, func(a, b PlantQuote) int {
		if a.Valid != b.Valid {
			if a.Valid {
				return -1
			}
			return 1
		}

		switch key {
		case SortByRating:
			return cmp.Compare(plants[b.PlantID].Rating, plants[a.PlantID].Rating)
		case SortByTurnaround:
			return cmp.Compare(plants[a.PlantID].TurnaroundWeeks, plants[b.PlantID].TurnaroundWeeks)
		default:
			if !a.Valid {
				return 0
			}
			return a.PerUnitCost.Cmp(b.PerUnitCost)
		}
	})
	return ranked
}
