package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mw "github.com/5w1tchy/password-meter/internal/api/middlewares"
	jwtutil "github.com/5w1tchy/password-meter/internal/security/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func adminOnly(t *testing.T, cfg jwtutil.Config) (http.Handler, *bool) {
	t.Helper()
	reached := false
	h := mw.RequireRole(cfg, jwtutil.RoleAdmin, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		claims, ok := mw.ClaimsFrom(r.Context())
		require.True(t, ok)
		assert.Equal(t, "ops", claims.Subject)
		w.WriteHeader(http.StatusOK)
	}))
	return h, &reached
}

func TestRequireRole_Admin(t *testing.T) {
	cfg := jwtutil.NewConfig(testSecret, 0)
	tok, _, err := cfg.SignAccess("ops", jwtutil.RoleAdmin, time.Minute)
	require.NoError(t, err)

	h, reached := adminOnly(t, cfg)
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/stats", nil)
	req.Header.Set("Authorization", "bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *reached)
}

func TestRequireRole_WrongRole(t *testing.T) {
	cfg := jwtutil.NewConfig(testSecret, 0)
	tok, _, err := cfg.SignAccess("ops", "viewer", time.Minute)
	require.NoError(t, err)

	h, reached := adminOnly(t, cfg)
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, *reached)
}

func TestRequireAuth_Rejects(t *testing.T) {
	cfg := jwtutil.NewConfig(testSecret, 0)
	other, _, err := jwtutil.NewConfig("another-secret-another-secret-xx", 0).SignAccess("ops", jwtutil.RoleAdmin, time.Minute)
	require.NoError(t, err)
	expired, _, err := cfg.SignAccess("ops", jwtutil.RoleAdmin, -time.Minute)
	require.NoError(t, err)

	cases := map[string]string{
		"missing":      "",
		"not bearer":   "Basic dXNlcjpwYXNz",
		"empty bearer": "Bearer   ",
		"bad sig":      "Bearer " + other,
		"expired":      "Bearer " + expired,
		"garbage":      "Bearer not.a.jwt",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			h, reached := adminOnly(t, cfg)
			req := httptest.NewRequest(http.MethodGet, "/v1/admin/stats", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")
			assert.False(t, *reached)
		})
	}
}

func TestRequireAuth_NoSecretConfigured(t *testing.T) {
	signed, _, err := jwtutil.NewConfig(testSecret, 0).SignAccess("ops", jwtutil.RoleAdmin, time.Minute)
	require.NoError(t, err)

	h, reached := adminOnly(t, jwtutil.NewConfig("", 0))
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *reached)
}
