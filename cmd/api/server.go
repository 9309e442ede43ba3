package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/5w1tchy/password-meter/internal/api/handlers"
	"github.com/5w1tchy/password-meter/internal/api/handlers/stats"
	"github.com/5w1tchy/password-meter/internal/api/router"
	"github.com/5w1tchy/password-meter/internal/config"
	"github.com/5w1tchy/password-meter/internal/logging"
	"github.com/5w1tchy/password-meter/internal/maintenance"
	"github.com/5w1tchy/password-meter/internal/metrics"
	"github.com/5w1tchy/password-meter/internal/metrics/tally"
	"github.com/5w1tchy/password-meter/internal/repository/sqlconnect"
	jwtutil "github.com/5w1tchy/password-meter/internal/security/jwt"
	"github.com/5w1tchy/password-meter/internal/security/password"
	"github.com/5w1tchy/password-meter/internal/storage/s3"
	tallystore "github.com/5w1tchy/password-meter/internal/store/tally"
	"github.com/5w1tchy/password-meter/internal/validate"
)

func main() {
	cfg, err := config.Load(".env", "../../.env")
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := validate.Config(cfg); err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}
	for _, w := range validate.HardeningWarnings(cfg) {
		log.Warn(w)
	}
	password.SetParams(cfg.Argon2Params())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	health := map[string]handlers.Pinger{}

	// Postgres (optional): tallies + admin stats
	var (
		db    *sql.DB
		sto   *tallystore.Store
		queue *tally.Queue
		st    stats.Store
	)
	if cfg.DatabaseURL != "" {
		db, err = sqlconnect.ConnectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal("postgres connection failed", zap.Error(err))
		}
		defer db.Close()
		log.Info("connected to postgres")

		sto = tallystore.New(db)
		if err := sto.EnsureSchema(ctx); err != nil {
			log.Fatal("tally schema", zap.Error(err))
		}
		st = sto
		health["postgres"] = sto

		queue = tally.New(sto)
		queue.OnDrop = m.TallyDropped.Inc
		queue.Start(cfg.TallyBuffer, cfg.TallyWorkers)
	}

	// Redis (optional): stats cache
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL) // e.g. rediss://default:<token>@host:port
		if err != nil {
			log.Fatal("invalid PM_REDIS_URL", zap.Error(err))
		}
		if opt.TLSConfig != nil {
			opt.TLSConfig.MinVersion = tls.VersionTLS12
		}
		opt.DialTimeout = 2 * time.Second
		opt.ReadTimeout = 500 * time.Millisecond
		opt.WriteTimeout = 500 * time.Millisecond
		rdb = redis.NewClient(opt)
		defer rdb.Close()

		// a cold cache is fine; just say so
		if err := validate.PingRedis(rdb, 2*time.Second); err != nil {
			log.Warn("redis unreachable; stats cache degraded", zap.Error(err))
		} else {
			log.Info("connected to redis")
		}
		health["redis"] = handlers.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}

	// Daily prune + optional snapshot export
	if sto != nil {
		var exp maintenance.Exporter
		if cfg.S3.Enabled() {
			cli, err := s3.NewClient(ctx, cfg.S3)
			if err != nil {
				log.Fatal("s3 client", zap.Error(err))
			}
			exp = cli
		}
		maintenance.StartTallyRetention(ctx, sto, exp, cfg.RetentionDays, cfg.RetentionAt, cfg.RetentionTZ)
	}

	api := router.Router(router.Deps{
		Metrics:       m,
		Tally:         queue,
		RDB:           rdb,
		Stats:         st,
		StatsCacheTTL: cfg.StatsCacheTTL,
		JWT:           jwtutil.NewConfig(cfg.JWTSecret, cfg.ClockSkew),
		Health:        health,
	})

	secureMux := router.Secure(api, router.ChainConfig{
		MaxBodySize:    cfg.MaxBodySize,
		AllowedOrigins: cfg.AllowedOrigins,
		StrictSecurity: cfg.StrictSecurity,
		Log:            log,
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           secureMux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
	}

	go func() {
		log.Info("server is running", zap.String("addr", cfg.Addr), zap.Bool("tls", cfg.TLSEnabled()))
		var err error
		if cfg.TLSEnabled() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("error starting server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	queue.Shutdown()
}
