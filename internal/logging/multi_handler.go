package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
)

// MultiHandler sends each record to every handler that accepts its level.
// Used to pair the console handler with the Sentry handler.
func MultiHandler(handlers ...slog.Handler) slog.Handler {
	var fanout multiHandler
	for _, handler := range handlers {
		if handler != nil {
			fanout = append(fanout, handler)
		}
	}
	switch len(fanout) {
	case 0:
		return slog.NewTextHandler(io.Discard, nil)
	case 1:
		return fanout[0]
	}
	return fanout
}

type multiHandler []slog.Handler

func (h multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h multiHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs error
	for _, handler := range h {
		if handler.Enabled(ctx, record.Level) {
			errs = errors.Join(errs, handler.Handle(ctx, record.Clone()))
		}
	}
	return errs
}

func (h multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.each(func(handler slog.Handler) slog.Handler { return handler.WithAttrs(attrs) })
}

func (h multiHandler) WithGroup(name string) slog.Handler {
	return h.each(func(handler slog.Handler) slog.Handler { return handler.WithGroup(name) })
}

func (h multiHandler) each(fn func(slog.Handler) slog.Handler) multiHandler {
	next := make(multiHandler, 0, len(h))
	for _, handler := range h {
		next = append(next, fn(handler))
	}
	return next
}
