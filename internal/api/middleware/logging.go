package middleware

import (
	"net/http"
	"time"

	"github.com/gimmesomedew/pawdirectory/internal/infrastructure/observability"
)

// statusWriter records the status code written to the client.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// RequestLogging logs one line per request and records request metrics.
// metrics may be nil.
func RequestLogging(metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			duration := time.Since(start)
			observability.LoggerFromContext(r.Context()).Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", sw.status).
				Dur("duration", duration).
				Str("remote_addr", r.RemoteAddr).
				Msg("request")

			observability.RecordRequestMetric(r.Context(), metrics, r.Method, r.URL.Path, sw.status, duration)
		})
	}
}
