package validate_test

import (
	"testing"
	"time"

	"github.com/5w1tchy/password-meter/internal/config"
	"github.com/5w1tchy/password-meter/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type body struct {
	Password string `json:"password" validate:"required"`
}

func TestStruct_Required(t *testing.T) {
	fes, err := validate.Struct(body{}, map[string]string{"password": "enter one"})
	require.NoError(t, err)
	require.Len(t, fes, 1)
	assert.Equal(t, "password", fes[0].Field)
	assert.Equal(t, "required", fes[0].Code)
	assert.Equal(t, "enter one", fes[0].Message)

	fes, err = validate.Struct(body{Password: "x"}, nil)
	require.NoError(t, err)
	assert.Empty(t, fes)
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 7, validate.ClampInt("", 7, 90))
	assert.Equal(t, 7, validate.ClampInt("abc", 7, 90))
	assert.Equal(t, 1, validate.ClampInt("-3", 7, 90))
	assert.Equal(t, 1, validate.ClampInt("0", 7, 90))
	assert.Equal(t, 30, validate.ClampInt(" 30 ", 7, 90))
	assert.Equal(t, 90, validate.ClampInt("365", 7, 90))
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"1", "true", "TRUE", "yes"} {
		assert.True(t, validate.ParseBool(s), s)
	}
	for _, s := range []string{"", "0", "no", "false", "maybe"} {
		assert.False(t, validate.ParseBool(s), s)
	}
}

func TestParseClock(t *testing.T) {
	h, m, err := validate.ParseClock("03:30")
	require.NoError(t, err)
	assert.Equal(t, 3, h)
	assert.Equal(t, 30, m)

	for _, bad := range []string{"", "3", "24:00", "10:60", "aa:bb"} {
		_, _, err := validate.ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func validConfig() *config.Config {
	return &config.Config{
		Addr:          ":3000",
		TokenTTL:      time.Hour,
		Argon2Memory:  131072,
		Argon2Iter:    3,
		Argon2Par:     1,
		MaxBodySize:   65536,
		TallyBuffer:   100,
		TallyWorkers:  1,
		RetentionDays: 90,
		RetentionAt:   "03:00",
		RetentionTZ:   "UTC",
	}
}

func TestConfig(t *testing.T) {
	require.NoError(t, validate.Config(validConfig()))

	tests := []struct {
		name   string
		mutate func(c *config.Config)
	}{
		{"short secret", func(c *config.Config) { c.JWTSecret = "short" }},
		{"cert without key", func(c *config.Config) { c.TLSCert = "cert.pem" }},
		{"weak argon memory", func(c *config.Config) { c.Argon2Memory = 1024 }},
		{"weak argon iter", func(c *config.Config) { c.Argon2Iter = 1 }},
		{"bad retention clock", func(c *config.Config) { c.RetentionAt = "25:00" }},
		{"bad tz", func(c *config.Config) { c.RetentionTZ = "Mars/Olympus" }},
		{"bucket without endpoint", func(c *config.Config) { c.S3.Bucket = "snapshots" }},
		{"no workers", func(c *config.Config) { c.TallyWorkers = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			assert.Error(t, validate.Config(c))
		})
	}
}

func TestHardeningWarnings(t *testing.T) {
	c := validConfig()
	c.AppEnv = "production"
	c.RedisURL = "redis://localhost:6379"
	warns := validate.HardeningWarnings(c)
	assert.NotEmpty(t, warns)

	found := false
	for _, w := range warns {
		if w == "PM_REDIS_URL uses redis:// (no TLS). Prefer rediss:// for TLS" {
			found = true
		}
	}
	assert.True(t, found)
}
