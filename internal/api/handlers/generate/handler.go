package generate

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/5w1tchy/password-meter/internal/api/apperr"
	"github.com/5w1tchy/password-meter/internal/api/httpx"
	"github.com/5w1tchy/password-meter/internal/security/password"
	"github.com/5w1tchy/password-meter/internal/validate"
)

type Response struct {
	Password string `json:"password"`
	Length   int    `json:"length"`
	Hash     string `json:"hash,omitempty"` // argon2id PHC, only with ?hash=1
}

// Observer is told about every generated password (hashed or not).
type Observer func(hashed bool)

// Handler serves GET /v1/generate[?hash=1].
func Handler(gen *password.Generator, obs Observer) http.Handler {
	if gen == nil {
		gen = password.NewGenerator(nil)
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hashed := validate.ParseBool(r.URL.Query().Get("hash"))

		pwd := gen.Generate()
		resp := Response{Password: pwd, Length: len(pwd)}
		if hashed {
			phc, err := password.Hash(pwd)
			if err != nil {
				zap.L().Error("argon2id hash failed", zap.Error(err))
				apperr.WriteStatus(w, r, http.StatusInternalServerError, "", "could not hash password")
				return
			}
			resp.Hash = phc
		}
		if obs != nil {
			obs(hashed)
		}
		w.Header().Set("Cache-Control", "no-store")
		httpx.WriteJSON(w, http.StatusOK, resp)
	})
}
