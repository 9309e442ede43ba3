package middlewares

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/5w1tchy/password-meter/internal/api/apperr"
	jwtutil "github.com/5w1tchy/password-meter/internal/security/jwt"
)

// RequireRole wraps a handler and ensures the caller's token carries the given role.
func RequireRole(cfg jwtutil.Config, role string, next http.Handler) http.Handler {
	return RequireAuth(cfg, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFrom(r.Context())
		if !ok {
			unauthorized(w, r, "unauthorized")
			return
		}
		if claims.Role != role {
			zap.L().Info("role denied",
				zap.String("subject", claims.Subject),
				zap.String("have", claims.Role),
				zap.String("want", role))
			apperr.WriteStatus(w, r, http.StatusForbidden, "Forbidden", "")
			return
		}
		next.ServeHTTP(w, r)
	}))
}
