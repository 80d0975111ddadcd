package app

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pressquote/pressquote/internal/config"
)

const testCatalogue = `
plants:
  - id: pressworks
    name: Pressworks
    vinyl:
      - size: "12"
        format: 1LP
        tiers: [{min: 100, price: "3.00"}]
`

func TestNew_FileCatalogue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogue.yaml")
	if err := os.WriteFile(path, []byte(testCatalogue), 0o600); err != nil {
		t.Fatalf("failed to write catalogue: %v", err)
	}

	t.Setenv("CATALOGUE_PROVIDER", "file")
	t.Setenv("CATALOGUE_PATH", path)
	t.Setenv("CACHE_PROVIDER", "memory")
	t.Setenv("RATES_URL", "")
	t.Setenv("SENTRY_DSN", "")

	application, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer application.Close()

	if application.Handlers == nil {
		t.Fatalf("expected handlers")
	}
	if application.DB != nil {
		t.Fatalf("expected no database for the file catalogue")
	}
	if application.Refresher != nil {
		t.Fatalf("expected no refresher without RATES_URL")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	application.RunBackground(ctx)
}

func TestNew_MissingCatalogueFile(t *testing.T) {
	t.Setenv("CATALOGUE_PROVIDER", "file")
	t.Setenv("CATALOGUE_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("RATES_URL", "")
	t.Setenv("SENTRY_DSN", "")

	if _, err := New(); err == nil {
		t.Fatalf("expected error for missing catalogue")
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	for _, format := range []string{"text", "json", ""} {
		logger := newLogger(&config.Config{LogFormat: format, LogLevel: slog.LevelWarn}, false)
		if logger.Enabled(context.Background(), slog.LevelInfo) {
			t.Fatalf("expected info to be disabled at warn level for format %q", format)
		}
		if !logger.Enabled(context.Background(), slog.LevelError) {
			t.Fatalf("expected error to be enabled for format %q", format)
		}
	}
}
