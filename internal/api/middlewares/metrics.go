package middlewares

import (
	"net/http"
	"strconv"
	"time"

	"github.com/5w1tchy/password-meter/internal/metrics"
)

// Metrics records request count and latency per mux pattern. It must wrap the
// ServeMux directly so r.Pattern is visible after the call.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := newRecorder(w, false)
			next.ServeHTTP(rw, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			status := strconv.Itoa(rw.status)
			m.RequestTotal.WithLabelValues(r.Method, route, status).Inc()
			m.RequestDuration.WithLabelValues(r.Method, route, status).Observe(time.Since(rw.start).Seconds())
		})
	}
}
