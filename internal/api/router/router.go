package router

import (
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/5w1tchy/password-meter/internal/api/handlers"
	"github.com/5w1tchy/password-meter/internal/api/handlers/generate"
	"github.com/5w1tchy/password-meter/internal/api/handlers/stats"
	"github.com/5w1tchy/password-meter/internal/api/handlers/strength"
	"github.com/5w1tchy/password-meter/internal/api/middlewares"
	"github.com/5w1tchy/password-meter/internal/metrics"
	"github.com/5w1tchy/password-meter/internal/metrics/tally"
	jwtutil "github.com/5w1tchy/password-meter/internal/security/jwt"
	"github.com/5w1tchy/password-meter/internal/security/password"
)

// Deps carries everything the routes need. Nil fields switch features off.
type Deps struct {
	Metrics       *metrics.Metrics
	Tally         *tally.Queue
	RDB           *redis.Client
	Stats         stats.Store
	StatsCacheTTL time.Duration
	JWT           jwtutil.Config
	Generator     *password.Generator
	Health        map[string]handlers.Pinger
}

func Router(d Deps) http.Handler {
	mux := http.NewServeMux()

	// Root
	mux.HandleFunc("GET /{$}", handlers.RootHandler)
	mux.HandleFunc("GET /healthz", handlers.Health(d.Health))

	// Meter
	mux.Handle("POST /v1/strength", strength.Handler(d.observeEvaluation))
	mux.Handle("GET /v1/generate", generate.Handler(d.Generator, d.observeGeneration))

	// Admin
	statsH := stats.NewHandler(d.RDB, d.Stats, d.StatsCacheTTL)
	mux.Handle("GET /v1/admin/stats", middlewares.RequireRole(d.JWT, jwtutil.RoleAdmin, http.HandlerFunc(statsH.Stats)))

	if d.Metrics == nil {
		return mux
	}
	mux.Handle("GET /metrics", d.Metrics.Handler())
	return middlewares.Metrics(d.Metrics)(mux)
}

func (d Deps) observeEvaluation(l password.Label) {
	if d.Metrics != nil {
		d.Metrics.Evaluations.WithLabelValues(string(l)).Inc()
	}
	d.Tally.Enqueue(string(l))
}

func (d Deps) observeGeneration(hashed bool) {
	if d.Metrics != nil {
		d.Metrics.Generations.WithLabelValues(strconv.FormatBool(hashed)).Inc()
	}
}
