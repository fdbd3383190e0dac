package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"readease/internal/metrics"
)

// Metrics records request count by method, route pattern, and status code.
// It must sit directly around the ServeMux so the matched pattern is visible.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		metrics.RequestsTotal.WithLabelValues(r.Method, routeLabel(r), strconv.Itoa(sw.status)).Inc()
	})
}

// routeLabel keeps path parameters out of metric labels.
func routeLabel(r *http.Request) string {
	if r.Pattern == "" {
		return "unmatched"
	}
	if _, path, ok := strings.Cut(r.Pattern, " "); ok {
		return path
	}
	return r.Pattern
}
