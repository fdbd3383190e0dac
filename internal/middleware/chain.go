package middleware

import (
	"log/slog"
	"net/http"
)

// Chain wraps the handler with the full middleware stack.
// Order: Recovery → RequestID → Logging → Metrics → handler
func Chain(handler http.Handler, logger *slog.Logger) http.Handler {
	h := handler
	h = Metrics(h)
	h = Logging(logger)(h)
	h = RequestID(h)
	h = Recovery(logger)(h)
	return h
}
