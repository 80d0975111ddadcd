package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"

	"github.com/pressquote/pressquote/internal/quote"
)

type Config struct {
	CatalogueProvider string `env:"CATALOGUE_PROVIDER" envDefault:"file" validate:"oneof=file postgres"`
	CataloguePath     string `env:"CATALOGUE_PATH" envDefault:"catalogue.yaml" validate:"required_if=CatalogueProvider file"`
	DatabaseURL       string `env:"DATABASE_URL" validate:"required_if=CatalogueProvider postgres"`

	RatesURL             string        `env:"RATES_URL" validate:"omitempty,url"`
	RatesRefreshInterval time.Duration `env:"RATES_REFRESH_INTERVAL" envDefault:"12h" validate:"gte=1m"`
	BaseCurrency         string        `env:"BASE_CURRENCY" envDefault:"USD" validate:"required,len=3,alpha"`

	CacheProvider         string `env:"CACHE_PROVIDER" envDefault:"memory" validate:"omitempty,oneof=memory redis"`
	RedisConnectionString string `env:"REDIS_CONNECTION_STRING" envDefault:"redis://localhost:6379/0" validate:"required_if=CacheProvider redis"`

	QuotePolicyMode         string `env:"QUOTE_POLICY_MODE" envDefault:"buyer" validate:"omitempty,oneof=buyer admin"`
	QuoteUnconditionalLocks string `env:"QUOTE_UNCONDITIONAL_LOCKS"`

	SentryDSN string `env:"SENTRY_DSN" validate:"omitempty,url"`

	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	LogFormat string     `env:"LOG_FORMAT" envDefault:"text" validate:"omitempty,oneof=text json"`
	Port      string     `env:"PORT" envDefault:"8080"`
}

var configValidator = validator.New()

func Load() (*Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// QuotePolicy returns the lock policy described by QUOTE_POLICY_MODE and
// QUOTE_UNCONDITIONAL_LOCKS.
func (c *Config) QuotePolicy() (quote.Policy, error) {
	return quote.ParsePolicy(c.QuotePolicyMode, c.QuoteUnconditionalLocks)
}

func (c *Config) validate() error {
	if err := configValidator.Struct(c); err != nil {
		return err
	}

	if _, err := c.QuotePolicy(); err != nil {
		return fmt.Errorf("QUOTE_UNCONDITIONAL_LOCKS is invalid: %w", err)
	}

	ratesURL := strings.TrimSpace(c.RatesURL)
	if ratesURL != "" {
		parsed, err := url.Parse(ratesURL)
		if err != nil || parsed.Hostname() == "" {
			return fmt.Errorf("RATES_URL must be a valid absolute URL")
		}
		if !isLocalHost(parsed.Hostname()) && !strings.EqualFold(parsed.Scheme, "https") {
			return fmt.Errorf("RATES_URL must use https outside local development")
		}
	}

	return nil
}

func isLocalHost(host string) bool {
	switch strings.ToLower(strings.TrimSpace(host)) {
	case "localhost", "127.0.0.1", "::1":
		return true
	default:
		return false
	}
}
