package validate

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/5w1tchy/password-meter/internal/config"
)

// Config validates loaded configuration for auth & security.
// Fail-fast on bad config.
func Config(c *config.Config) error {
	// JWT secret must be reasonably long when set; admin routes stay closed without it
	if c.JWTSecret != "" && len(c.JWTSecret) < 32 {
		return errors.New("PM_JWT_SECRET must be at least 32 characters")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("PM_TOKEN_TTL: invalid duration %s", c.TokenTTL)
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return errors.New("PM_TLS_CERT and PM_TLS_KEY must be set together")
	}

	// Argon2 lower bounds
	if c.Argon2Memory < 65536 { // >= 64MiB
		return errors.New("PM_ARGON2_MEMORY: must be >= 65536")
	}
	if c.Argon2Iter < 2 {
		return errors.New("PM_ARGON2_ITER: must be >= 2")
	}
	if c.Argon2Par < 1 {
		return errors.New("PM_ARGON2_PAR: must be >= 1")
	}

	if c.MaxBodySize <= 0 {
		return errors.New("PM_MAX_BODY_SIZE: must be > 0")
	}
	if c.TallyBuffer < 1 || c.TallyWorkers < 1 {
		return errors.New("PM_TALLY_BUFFER and PM_TALLY_WORKERS must be >= 1")
	}
	if c.RetentionDays < 1 {
		return errors.New("PM_RETENTION_DAYS: must be >= 1")
	}
	if _, _, err := ParseClock(c.RetentionAt); err != nil {
		return fmt.Errorf("PM_RETENTION_AT: %w", err)
	}
	if _, err := time.LoadLocation(c.RetentionTZ); err != nil {
		return fmt.Errorf("PM_RETENTION_TZ: %w", err)
	}
	if c.S3.Enabled() && c.S3.Endpoint == "" {
		return errors.New("PM_S3_ENDPOINT is required when PM_S3_BUCKET is set")
	}
	return nil
}

// HardeningWarnings returns non-fatal warnings you may want to log on startup.
func HardeningWarnings(c *config.Config) []string {
	var warns []string

	if c.TokenTTL > 24*time.Hour {
		warns = append(warns, fmt.Sprintf("PM_TOKEN_TTL=%s is > 24h; consider shorter admin tokens", c.TokenTTL))
	}
	if c.JWTSecret == "" {
		warns = append(warns, "PM_JWT_SECRET not set; /v1/admin/* will reject every request")
	}
	if c.DatabaseURL == "" {
		warns = append(warns, "PM_DATABASE_URL not set; evaluation tallies are disabled")
	}

	// Production-specific nudges
	if strings.EqualFold(c.AppEnv, "production") {
		if !c.TLSEnabled() {
			warns = append(warns, "TLS disabled in production; terminate TLS upstream or set PM_TLS_CERT/PM_TLS_KEY")
		}
		if strings.HasPrefix(c.RedisURL, "redis://") {
			warns = append(warns, "PM_REDIS_URL uses redis:// (no TLS). Prefer rediss:// for TLS")
		}
	}

	return warns
}

// PingRedis checks connectivity with a short timeout.
func PingRedis(rdb *redis.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	_, err := rdb.Ping(ctx).Result()
	return err
}

// ParseClock parses "HH:MM".
func ParseClock(s string) (h, m int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid clock %q", s)
	}
	h, err = strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err = strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h, m, nil
}
