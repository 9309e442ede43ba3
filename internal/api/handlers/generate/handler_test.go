package generate_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/5w1tchy/password-meter/internal/api/handlers/generate"
	"github.com/5w1tchy/password-meter/internal/security/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSource struct{ i int }

func (f *fixedSource) IntN(n int) int { f.i++; return (f.i * 7) % n }

func get(t *testing.T, h http.Handler, target string) generate.Response {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var resp generate.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestHandler_Plain(t *testing.T) {
	var hashedCalls []bool
	h := generate.Handler(nil, func(hashed bool) { hashedCalls = append(hashedCalls, hashed) })

	resp := get(t, h, "/v1/generate")
	assert.Len(t, resp.Password, password.GeneratedLength)
	assert.Equal(t, password.GeneratedLength, resp.Length)
	assert.Empty(t, resp.Hash)
	for _, r := range resp.Password {
		assert.True(t, strings.ContainsRune(password.Pool, r))
	}
	assert.Equal(t, []bool{false}, hashedCalls)
}

func TestHandler_WithHash(t *testing.T) {
	password.SetParams(password.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	t.Cleanup(func() { password.SetParams(password.DefaultParams()) })

	h := generate.Handler(password.NewGenerator(&fixedSource{}), nil)
	resp := get(t, h, "/v1/generate?hash=1")
	require.NotEmpty(t, resp.Hash)

	ok, _, err := password.Verify(resp.Password, resp.Hash)
	require.NoError(t, err)
	assert.True(t, ok)
}
