package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/5w1tchy/password-meter/internal/api/httpx"
	"github.com/5w1tchy/password-meter/internal/security/password"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		httpx.ErrorJSON(w, http.StatusNotFound, "not found")
		return
	}
	httpx.OK(w, map[string]any{
		"service":   "password-meter",
		"max_score": password.MaxScore,
		"endpoints": []string{"POST /v1/strength", "GET /v1/generate", "GET /v1/admin/stats", "GET /healthz"},
	})
}

// Pinger is anything with a cheap liveness check (db, redis).
type Pinger interface {
	Ping(ctx context.Context) error
}

type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

const pingTO = 500 * time.Millisecond

// Health reports "ok" or "degraded" with failing components listed.
// Optional dependencies never turn it into a 5xx.
func Health(deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		components := make(map[string]string, len(deps))
		for name, p := range deps {
			ctx, cancel := context.WithTimeout(r.Context(), pingTO)
			err := p.Ping(ctx)
			cancel()
			if err != nil {
				zap.L().Warn("health check failed", zap.String("component", name), zap.Error(err))
				components[name] = "down"
				status = "degraded"
				continue
			}
			components[name] = "up"
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"status": status, "components": components})
	}
}
