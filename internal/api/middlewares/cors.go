package middlewares

import (
	"net/http"
	"slices"

	"go.uber.org/zap"
)

// Cors only answers browsers whose Origin is in allowed; requests without an
// Origin (curl, the CLI) pass through untouched.
func Cors(allowed []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && !slices.Contains(allowed, origin) {
				zap.L().Info("cors: blocked origin",
					zap.String("origin", origin),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path))
				http.Error(w, "Origin not allowed", http.StatusForbidden)
				return
			}

			if origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}

			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Max-Age", "3600")
			w.Header().Set("Access-Control-Expose-Headers", "X-Request-ID, X-Response-Time, X-Cache")

			// Fast-path preflight
			if r.Method == http.MethodOptions {
				w.Header().Add("Vary", "Access-Control-Request-Method")
				w.Header().Add("Vary", "Access-Control-Request-Headers")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
