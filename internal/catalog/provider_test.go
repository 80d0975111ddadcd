package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pressquote/pressquote/internal/quote"
)

func TestFileProvider_Load(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalogue.yaml")
	if err := os.WriteFile(path, []byte(sampleCatalogue), 0o600); err != nil {
		t.Fatalf("failed to write catalogue: %v", err)
	}

	catalogue, err := NewFileProvider(path).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(catalogue.Plants) != 1 || catalogue.Plants[0].TurnaroundWeeks != 8 {
		t.Fatalf("unexpected plants: %+v", catalogue.Plants)
	}
	if len(catalogue.VinylTiers) != 3 {
		t.Fatalf("expected 3 vinyl tiers, got %d", len(catalogue.VinylTiers))
	}
	if len(catalogue.Packaging) != 5 {
		t.Fatalf("expected 5 packaging entries, got %d", len(catalogue.Packaging))
	}
	if catalogue.Packaging[0].Type != quote.InnerSleeve {
		t.Fatalf("expected inner sleeve type, got %s", catalogue.Packaging[0].Type)
	}
	if !catalogue.Packaging[2].Locked {
		t.Fatalf("expected gatefold to be locked")
	}
	if len(catalogue.ColourCosts) != 1 || catalogue.ColourCosts[0].Value != "splatter" {
		t.Fatalf("unexpected colour costs: %+v", catalogue.ColourCosts)
	}
}

func TestFileProvider_LoadedCatalogueQuotes(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalogue.yaml")
	if err := os.WriteFile(path, []byte(sampleCatalogue), 0o600); err != nil {
		t.Fatalf("failed to write catalogue: %v", err)
	}

	catalogue, err := NewFileProvider(path).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	quotes, err := quote.NewEngine(quote.DefaultPolicy()).ComputeAll(catalogue, quote.Specification{
		Quantity:    750,
		Size:        quote.Size12,
		Format:      quote.Format1LP,
		Weight:      "180gm",
		Colour:      "splatter",
		InnerSleeve: "white paper",
		Jacket:      "full colour",
		Inserts:     "no insert",
		ShrinkWrap:  "no",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quotes) != 1 || !quotes[0].Valid {
		t.Fatalf("expected one valid quote, got %+v", quotes)
	}
	// 2.50 base + 0.45 colour + 0.20 weight + 0.10 sleeve + 1.10 jacket
	if got := quotes[0].PerUnitCost.String(); got != "4.35" {
		t.Fatalf("expected per unit cost 4.35, got %s", got)
	}
}

func TestFileProvider_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := NewFileProvider(filepath.Join(t.TempDir(), "missing.yaml")).Load(context.Background()); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
