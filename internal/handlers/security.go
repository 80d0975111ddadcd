package handlers

import (
	"mime"
	"net/http"

	"github.com/pressquote/pressquote/internal/observability"
)

// SecurityHeaders sets baseline security headers for all responses.
func (h *Handlers) SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers := w.Header()
		headers.Set("X-Content-Type-Options", "nosniff")
		headers.Set("X-Frame-Options", "DENY")
		headers.Set("Referrer-Policy", "no-referrer")
		headers.Set("Cross-Origin-Resource-Policy", "same-origin")
		headers.Set("Cache-Control", "no-store")

		next.ServeHTTP(w, r)
	})
}

// RequireJSON rejects request bodies that are not declared as JSON.
func (h *Handlers) RequireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !requestHasBody(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "application/json" {
			observability.CountReason(observability.MeterFromContext(r.Context()), "http.request.rejected", "content_type")
			logger := h.loggerFromContext(r.Context())
			logger.Warn("rejected request without JSON content type", "content_type", r.Header.Get("Content-Type"))
			writeError(w, logger, http.StatusUnsupportedMediaType, "content type must be application/json")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func requestHasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}
