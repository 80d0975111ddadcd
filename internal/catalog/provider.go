package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/pressquote/pressquote/internal/quote"
)

// Provider supplies a complete catalogue snapshot.
type Provider interface {
	Load(ctx context.Context) (*quote.Catalogue, error)
}

// FileProvider reads a catalogue.yaml from disk on every Load so edits are
// picked up by the next quote without a restart.
type FileProvider struct {
	path      string
	parser    *Parser
	validator *Validator
}

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{
		path:      path,
		parser:    NewParser(),
		validator: NewValidator(),
	}
}

func (p *FileProvider) Load(ctx context.Context) (*quote.Catalogue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue: %w", err)
	}

	return LoadBytes(p.parser, p.validator, content)
}

// LoadBytes parses, validates and builds a catalogue.
func LoadBytes(parser *Parser, validator *Validator, content []byte) (*quote.Catalogue, error) {
	file, err := parser.Parse(content)
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(file); err != nil {
		return nil, err
	}
	return Build(file)
}
