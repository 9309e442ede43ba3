package middlewares

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/5w1tchy/password-meter/internal/api/apperr"
)

// Recovery turns a handler panic into a bare 500 problem. Panic values can
// carry request data, so they go to the log only.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			zap.L().Error("panic recovered",
				zap.String("request_id", GetRequestID(r)),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Any("panic", rec),
				zap.Stack("stack"))

			apperr.WriteStatus(w, r, http.StatusInternalServerError, "", "")
		}()
		next.ServeHTTP(w, r)
	})
}
