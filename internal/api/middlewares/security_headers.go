package middlewares

import "net/http"

// SecurityHeaders sets hardening headers; strict adds COOP/COEP/CORP.
func SecurityHeaders(strict bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-DNS-Prefetch-Control", "off")
			h.Set("X-Frame-Options", "DENY")
			h.Set("X-XSS-Protection", "1; mode=block")
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("Referrer-Policy", "no-referrer")
			// responses may echo password analysis; never cache
			h.Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")

			// HSTS should only be effective over HTTPS (r.TLS != nil)
			if r.TLS != nil {
				h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains; preload")
			}

			h.Set("Content-Security-Policy", "default-src 'self'")

			// COOP/COEP can break some embeds/workers unless all deps are compliant
			if strict {
				h.Set("Cross-Origin-Opener-Policy", "same-origin")
				h.Set("Cross-Origin-Embedder-Policy", "require-corp")
				h.Set("Cross-Origin-Resource-Policy", "same-origin")
			}

			h.Set("Server", "")

			next.ServeHTTP(w, r)
		})
	}
}
