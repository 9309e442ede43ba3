package middlewares

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AccessLog writes one line per request. Bodies are never logged: they carry passwords.
func AccessLog(log *zap.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = zap.L()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := newRecorder(w, false)
			next.ServeHTTP(rw, r)

			lvl := zapcore.InfoLevel
			switch {
			case rw.status >= 500:
				lvl = zapcore.ErrorLevel
			case rw.status >= 400:
				lvl = zapcore.WarnLevel
			}
			if ce := log.Check(lvl, "http request"); ce != nil {
				ce.Write(
					zap.String("request_id", GetRequestID(r)),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", rw.status),
					zap.Int("bytes", rw.bytes),
					zap.Duration("latency", time.Since(rw.start)),
					zap.String("client_ip", clientIP(r)),
					zap.String("user_agent", r.UserAgent()),
				)
			}
		})
	}
}
