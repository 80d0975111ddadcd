package handlers

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/getsentry/sentry-go/attribute"

	"github.com/pressquote/pressquote/internal/observability"
)

// MetricsContext puts a meter labelled with the request id and route into the
// context; services record through observability.MeterFromContext.
func (h *Handlers) MetricsContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		requestID := RequestID(ctx)
		if requestID == "" {
			requestID = requestIDFromRequest(r)
		}
		route := routeLabel(r)
		if route == "" {
			route = "unknown"
		}

		meter := sentry.NewMeter(ctx).WithCtx(ctx)
		meter.SetAttributes(
			attribute.String("http.request_id", requestID),
			attribute.String("http.method", r.Method),
			attribute.String("http.route", route),
		)

		next.ServeHTTP(w, r.WithContext(observability.WithMeter(ctx, meter)))
	})
}
