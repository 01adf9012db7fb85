// Package middleware provides HTTP middleware for request IDs, access logging and metrics collection.
package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/nadmax/etltimeline/internal/metrics"
)

var recordHTTPRequest = metrics.RecordHTTPRequest

var knownEndpoints = map[string]struct{}{
	"/":             {},
	"/api/timeline": {},
	"/api/names":    {},
	"/api/layout":   {},
	"/health":       {},
	"/metrics":      {},
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func wrap(w http.ResponseWriter) *responseWriter {
	if rw, ok := w.(*responseWriter); ok {
		return rw
	}

	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := wrap(w)

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		endpoint := normalizeEndpoint(r.URL.Path)
		status := strconv.Itoa(wrapped.statusCode)

		recordHTTPRequest(r.Method, endpoint, status, duration)
	})
}

// normalizeEndpoint keeps label cardinality bounded: unrouted paths share
// one label.
func normalizeEndpoint(path string) string {
	if _, ok := knownEndpoints[path]; ok {
		return path
	}

	return "other"
}
