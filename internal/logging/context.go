package logging

import (
	"context"
	"io"
	"log/slog"
)

type loggerKey struct{}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, orDiscard(logger))
}

// With returns a context whose logger carries the extra attributes.
func With(ctx context.Context, fallback *slog.Logger, args ...any) context.Context {
	return WithLogger(ctx, FromContext(ctx, fallback).With(args...))
}

// FromContext returns the request logger, then fallback, then a logger that
// discards everything.
func FromContext(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return orDiscard(fallback)
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
