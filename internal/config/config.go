package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/5w1tchy/password-meter/internal/security/password"
)

const envPrefix = "PM"

type Config struct {
	Addr    string `envconfig:"ADDR" default:":3000"`
	TLSCert string `envconfig:"TLS_CERT"`
	TLSKey  string `envconfig:"TLS_KEY"`
	AppEnv  string `envconfig:"APP_ENV" default:"development"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	MaxBodySize    int64    `envconfig:"MAX_BODY_SIZE" default:"65536"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://127.0.0.1:5173"`
	StrictSecurity bool     `envconfig:"STRICT_SECURITY" default:"false"`

	DatabaseURL string `envconfig:"DATABASE_URL"`
	RedisURL    string `envconfig:"REDIS_URL"`

	JWTSecret string        `envconfig:"JWT_SECRET"`
	ClockSkew time.Duration `envconfig:"CLOCK_SKEW" default:"60s"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"1h"`

	Argon2Memory uint32 `envconfig:"ARGON2_MEMORY" default:"131072"`
	Argon2Iter   uint32 `envconfig:"ARGON2_ITER" default:"3"`
	Argon2Par    uint8  `envconfig:"ARGON2_PAR" default:"1"`

	TallyBuffer  int `envconfig:"TALLY_BUFFER" default:"10000"`
	TallyWorkers int `envconfig:"TALLY_WORKERS" default:"2"`

	RetentionDays int    `envconfig:"RETENTION_DAYS" default:"90"`
	RetentionAt   string `envconfig:"RETENTION_AT" default:"03:00"`
	RetentionTZ   string `envconfig:"RETENTION_TZ" default:"UTC"`

	StatsCacheTTL time.Duration `envconfig:"STATS_CACHE_TTL" default:"30s"`

	S3 S3Config `envconfig:"S3"`
}

type S3Config struct {
	Endpoint        string `envconfig:"ENDPOINT"`
	Region          string `envconfig:"REGION" default:"auto"`
	Bucket          string `envconfig:"BUCKET"`
	AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
	SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
	PathStyle       bool   `envconfig:"PATH_STYLE" default:"false"`
}

// Enabled reports whether snapshot export has somewhere to go.
func (c S3Config) Enabled() bool { return c.Bucket != "" }

// Load reads optional .env files then decodes PM_* variables.
// Variables already set in the environment win over .env values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	var c Config
	if err := envconfig.Process(envPrefix, &c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &c, nil
}

func (c *Config) Argon2Params() password.Params {
	p := password.DefaultParams()
	p.Memory = c.Argon2Memory
	p.Iterations = c.Argon2Iter
	p.Parallelism = c.Argon2Par
	return p
}

func (c *Config) TLSEnabled() bool { return c.TLSCert != "" && c.TLSKey != "" }
