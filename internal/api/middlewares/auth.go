package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/5w1tchy/password-meter/internal/api/apperr"
	jwtutil "github.com/5w1tchy/password-meter/internal/security/jwt"
)

// RequireAuth verifies a Bearer JWT then injects its claims into the context.
func RequireAuth(cfg jwtutil.Config, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("Authorization")
		if raw == "" {
			unauthorized(w, r, "missing Authorization header")
			return
		}
		tokenStr, err := bearer(raw)
		if err != nil {
			unauthorized(w, r, "invalid Authorization header")
			return
		}
		claims, err := cfg.ParseAccess(tokenStr)
		if err != nil {
			if errors.Is(err, jwtutil.ErrNoSecret) {
				zap.L().Warn("admin route hit without PM_JWT_SECRET configured", zap.String("path", r.URL.Path))
			}
			unauthorized(w, r, "invalid token")
			return
		}

		ctx := WithClaims(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter, r *http.Request, detail string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="password-meter"`)
	apperr.WriteStatus(w, r, http.StatusUnauthorized, "Unauthorized", detail)
}

func bearer(h string) (string, error) {
	if len(h) < len("Bearer ") || !strings.EqualFold(h[:len("Bearer ")], "Bearer ") {
		return "", errors.New("no bearer")
	}
	tok := strings.TrimSpace(h[len("Bearer "):])
	if tok == "" {
		return "", errors.New("empty bearer")
	}
	return tok, nil
}
