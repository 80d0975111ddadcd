package catalog

import (
	"testing"
)

func TestParser_Parse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{
			name:    "valid catalogue",
			yaml:    sampleCatalogue,
			wantErr: false,
		},
		{
			name:    "invalid yaml",
			yaml:    "invalid: yaml: content:",
			wantErr: true,
		},
	}

	parser := NewParser()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := parser.ParseFromString(tt.yaml)

			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}

			if file == nil {
				t.Error("expected catalogue but got nil")
				return
			}

			if len(file.Plants) != 1 {
				t.Fatalf("expected 1 plant, got %d", len(file.Plants))
			}

			plant := file.Plants[0]
			if plant.Name != "Pressworks Ltd" {
				t.Errorf("expected plant name 'Pressworks Ltd', got '%s'", plant.Name)
			}
			if plant.Vinyl[0].Tiers[2].Price != "2.00" {
				t.Errorf("expected unquoted price to parse as text, got '%s'", plant.Vinyl[0].Tiers[2].Price)
			}
			if plant.Weights["180gm"] != "0.20" {
				t.Errorf("expected 180gm surcharge, got '%s'", plant.Weights["180gm"])
			}
			if plant.Packaging[4].Option != "no" {
				t.Errorf("expected quoted no option, got '%s'", plant.Packaging[4].Option)
			}
		})
	}
}
