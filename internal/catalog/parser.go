package catalog

// Package catalog provides catalogue.yaml parsing functionality.

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type CatalogueFile struct {
	Plants []PlantConfig `yaml:"plants" validate:"required,min=1,dive"`
}

type PlantConfig struct {
	ID              string            `yaml:"id" validate:"required"`
	Name            string            `yaml:"name" validate:"required"`
	Rating          float64           `yaml:"rating" validate:"gte=0,lte=5"`
	TurnaroundWeeks int               `yaml:"turnaround_weeks" validate:"gte=0"`
	Location        string            `yaml:"location"`
	Vinyl           []VinylConfig     `yaml:"vinyl" validate:"dive"`
	Colours         map[string]string `yaml:"colours"`
	Weights         map[string]string `yaml:"weights"`
	Packaging       []PackagingConfig `yaml:"packaging" validate:"dive"`
}

type VinylConfig struct {
	Size   string       `yaml:"size" validate:"required,oneof=7 10 12"`
	Format string       `yaml:"format" validate:"required,oneof=1LP 2LP 3LP"`
	Tiers  []TierConfig `yaml:"tiers" validate:"required,min=1,dive"`
}

type PackagingConfig struct {
	Type   string       `yaml:"type" validate:"required"`
	Option string       `yaml:"option" validate:"required"`
	Locked bool         `yaml:"locked"`
	Tiers  []TierConfig `yaml:"tiers" validate:"required,min=1,dive"`
}

type TierConfig struct {
	Min   int    `yaml:"min" validate:"gt=0"`
	Price string `yaml:"price" validate:"required"`
}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(content []byte) (*CatalogueFile, error) {
	var file CatalogueFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &file, nil
}

func (p *Parser) ParseFromString(content string) (*CatalogueFile, error) {
	return p.Parse([]byte(content))
}
