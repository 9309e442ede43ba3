package strength

import (
	"errors"
	"net/http"

	"github.com/5w1tchy/password-meter/internal/api/apperr"
	"github.com/5w1tchy/password-meter/internal/api/httpx"
	"github.com/5w1tchy/password-meter/internal/report"
	"github.com/5w1tchy/password-meter/internal/security/password"
	"github.com/5w1tchy/password-meter/internal/validate"
)

// Observer is told the label of every successful evaluation.
type Observer func(password.Label)

type evaluateRequest struct {
	Password string `json:"password" validate:"required"`
}

var fieldMessages = map[string]string{"password": report.MsgMissing}

// Handler serves POST /v1/strength with a JSON body or a urlencoded form.
func Handler(obs Observer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req evaluateRequest
		if httpx.IsJSON(r) {
			if err := httpx.DecodeJSON(r, &req); err != nil && !errors.Is(err, httpx.ErrEmptyBody) {
				var mbe *http.MaxBytesError
				if errors.As(err, &mbe) {
					apperr.WriteStatus(w, r, http.StatusRequestEntityTooLarge, "Request Entity Too Large", "")
					return
				}
				apperr.WriteStatus(w, r, http.StatusBadRequest, "Bad Request", "malformed JSON body")
				return
			}
		} else {
			if err := r.ParseForm(); err != nil {
				var mbe *http.MaxBytesError
				if errors.As(err, &mbe) {
					apperr.WriteStatus(w, r, http.StatusRequestEntityTooLarge, "Request Entity Too Large", "")
					return
				}
				apperr.WriteStatus(w, r, http.StatusBadRequest, "Bad Request", "malformed form body")
				return
			}
			req.Password = r.PostForm.Get("password")
		}

		fes, err := validate.Struct(req, fieldMessages)
		if err != nil {
			apperr.WriteStatus(w, r, http.StatusInternalServerError, "", "")
			return
		}
		if len(fes) > 0 {
			apperr.WriteInvalid(w, r, report.MsgMissing, fes)
			return
		}

		res := password.Evaluate(req.Password)
		if obs != nil {
			obs(res.Strength)
		}
		w.Header().Set("Cache-Control", "no-store")
		httpx.WriteJSON(w, http.StatusOK, report.NewEvaluation(res))
	})
}
