package middlewares

import (
	"context"

	jwtutil "github.com/5w1tchy/password-meter/internal/security/jwt"
)

const claimsKey ctxKey = 1

func WithClaims(ctx context.Context, c *jwtutil.AccessClaims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func ClaimsFrom(ctx context.Context) (*jwtutil.AccessClaims, bool) {
	v, ok := ctx.Value(claimsKey).(*jwtutil.AccessClaims)
	return v, ok && v != nil
}
