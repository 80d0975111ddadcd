package cache

// Package cache keeps short-lived snapshots (such as the last fetched rate
// table) so a restart can serve conversions before the first refresh.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrNotFound = errors.New("key not found")

// Provider stores string values with a time to live. A non-positive ttl keeps
// the value until it is evicted.
type Provider interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type Config struct {
	Provider              string
	RedisConnectionString string
}

func NewProvider(cfg Config) (Provider, error) {
	kind := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if kind == "" {
		kind = "memory"
	}

	switch kind {
	case "memory":
		return NewMemoryProvider()
	case "redis":
		return NewRedisProvider(cfg.RedisConnectionString)
	}
	return nil, fmt.Errorf("unsupported cache provider: %s", cfg.Provider)
}

type getter interface {
	Get(ctx context.Context, key string) (string, error)
}

type setter interface {
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// GetJSON reads key and decodes it into a T. Missing keys return ErrNotFound.
func GetJSON[T any](ctx context.Context, c getter, key string) (T, error) {
	var out T
	raw, err := c.Get(ctx, key)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", key, err)
	}
	return out, nil
}

func SetJSON(ctx context.Context, c setter, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return c.Set(ctx, key, string(raw), ttl)
}
