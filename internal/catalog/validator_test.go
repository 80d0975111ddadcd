package catalog

import "testing"

func validFile() *CatalogueFile {
	return &CatalogueFile{
		Plants: []PlantConfig{
			{
				ID:     "pressworks",
				Name:   "Pressworks",
				Rating: 4.5,
				Vinyl: []VinylConfig{
					{Size: "12", Format: "1LP", Tiers: []TierConfig{{Min: 100, Price: "3.00"}, {Min: 500, Price: "2.50"}}},
				},
				Colours: map[string]string{"splatter": "0.45"},
				Packaging: []PackagingConfig{
					{Type: "jacket", Option: "full colour", Tiers: []TierConfig{{Min: 100, Price: "1.10"}}},
				},
			},
		},
	}
}

func TestValidator_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*CatalogueFile)
		wantErr bool
	}{
		{
			name:    "valid catalogue",
			wantErr: false,
		},
		{
			name:    "no plants",
			mutate:  func(f *CatalogueFile) { f.Plants = nil },
			wantErr: true,
		},
		{
			name:    "duplicate plant id",
			mutate:  func(f *CatalogueFile) { f.Plants = append(f.Plants, f.Plants[0]) },
			wantErr: true,
		},
		{
			name:    "unknown size",
			mutate:  func(f *CatalogueFile) { f.Plants[0].Vinyl[0].Size = "9" },
			wantErr: true,
		},
		{
			name:    "unknown format",
			mutate:  func(f *CatalogueFile) { f.Plants[0].Vinyl[0].Format = "4LP" },
			wantErr: true,
		},
		{
			name:    "non-positive threshold",
			mutate:  func(f *CatalogueFile) { f.Plants[0].Vinyl[0].Tiers[0].Min = 0 },
			wantErr: true,
		},
		{
			name:    "duplicate threshold",
			mutate:  func(f *CatalogueFile) { f.Plants[0].Vinyl[0].Tiers[1].Min = 100 },
			wantErr: true,
		},
		{
			name:    "negative price",
			mutate:  func(f *CatalogueFile) { f.Plants[0].Vinyl[0].Tiers[0].Price = "-1.00" },
			wantErr: true,
		},
		{
			name:    "unparseable surcharge",
			mutate:  func(f *CatalogueFile) { f.Plants[0].Colours["splatter"] = "cheap" },
			wantErr: true,
		},
		{
			name:    "colour differing only by case",
			mutate:  func(f *CatalogueFile) { f.Plants[0].Colours["Splatter"] = "0.90" },
			wantErr: true,
		},
		{
			name:    "weight differing only by spacing",
			mutate:  func(f *CatalogueFile) { f.Plants[0].Weights = map[string]string{"180gm": "0.40", " 180GM ": "0.50"} },
			wantErr: true,
		},
		{
			name:    "unknown packaging type",
			mutate:  func(f *CatalogueFile) { f.Plants[0].Packaging[0].Type = "lid" },
			wantErr: true,
		},
		{
			name: "duplicate packaging option",
			mutate: func(f *CatalogueFile) {
				f.Plants[0].Packaging = append(f.Plants[0].Packaging, PackagingConfig{
					Type: "Jacket", Option: "Full Colour", Tiers: []TierConfig{{Min: 100, Price: "1.00"}},
				})
			},
			wantErr: true,
		},
		{
			name:    "rating out of range",
			mutate:  func(f *CatalogueFile) { f.Plants[0].Rating = 7 },
			wantErr: true,
		},
	}

	validator := NewValidator()
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			file := validFile()
			if tc.mutate != nil {
				tc.mutate(file)
			}

			err := validator.Validate(file)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}
