package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/getsentry/sentry-go"
	"github.com/getsentry/sentry-go/attribute"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/pressquote/pressquote/internal/logging"
)

const maxRequestIDLength = 128

type requestIDKey struct{}

// RequestID returns the id assigned by RequestLogger, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusRecorder) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func (w *statusRecorder) statusCode() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// RequestLogger tags each request with an id, stores a request logger in the
// context and records request count and latency.
func (h *Handlers) RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		route := routeLabel(r)
		requestID := requestIDFromRequest(r)
		w.Header().Set("X-Request-ID", requestID)

		attrs := []any{
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_ip", clientIP(r),
		}
		if route != "" {
			attrs = append(attrs, "route", route)
		}
		if userAgent := strings.TrimSpace(r.UserAgent()); userAgent != "" {
			attrs = append(attrs, "user_agent", userAgent)
		}
		logger := h.logger.With(attrs...)

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		ctx = logging.WithLogger(ctx, logger)
		r = r.WithContext(ctx)

		recorder := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(recorder, r)

		status := recorder.statusCode()
		elapsed := time.Since(start)
		recordRequestMetrics(r, route, status, elapsed)

		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case r.URL.Path == "/health":
			level = slog.LevelDebug
		}
		logger.Log(ctx, level, "request completed",
			"status", status,
			"duration_ms", elapsed.Milliseconds(),
			"bytes", recorder.bytes,
		)
	})
}

func recordRequestMetrics(r *http.Request, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unknown"
	}
	ctx := r.Context()
	meter := sentry.NewMeter(ctx).WithCtx(ctx)

	labels := []attribute.Builder{
		attribute.String("http.method", r.Method),
		attribute.String("http.route", route),
	}
	meter.Count("http.server.requests", 1, sentry.WithAttributes(append(labels, attribute.Int("http.status_code", status))...))
	meter.Distribution("http.server.duration", float64(elapsed.Milliseconds()),
		sentry.WithUnit(sentry.UnitMillisecond),
		sentry.WithAttributes(append(labels, attribute.String("http.status_class", fmt.Sprintf("%dxx", status/100)))...),
	)
	if status >= http.StatusInternalServerError {
		meter.Count("http.server.errors", 1, sentry.WithAttributes(append(labels, attribute.Int("http.status_code", status))...))
	}
}

// requestIDFromRequest reuses a caller supplied X-Request-ID when it is short
// and printable, otherwise it mints a new one.
func requestIDFromRequest(r *http.Request) string {
	if r != nil {
		if id := strings.TrimSpace(r.Header.Get("X-Request-ID")); validRequestID(id) {
			return id
		}
	}
	return uuid.NewString()
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for _, c := range id {
		if c > unicode.MaxASCII || !unicode.IsPrint(c) || unicode.IsSpace(c) {
			return false
		}
	}
	return true
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-Ip")); realIP != "" {
		return realIP
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// routeLabel names the matched mux route for logs and metrics.
func routeLabel(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return ""
	}
	if name := route.GetName(); name != "" {
		return name
	}
	template, _ := route.GetPathTemplate()
	return template
}
