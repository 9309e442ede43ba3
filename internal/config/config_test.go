package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/5w1tchy/password-meter/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":3000", c.Addr)
	assert.Equal(t, int64(65536), c.MaxBodySize)
	assert.Equal(t, 30*time.Second, c.StatsCacheTTL)
	assert.Equal(t, []string{"http://localhost:5173", "http://127.0.0.1:5173"}, c.AllowedOrigins)
	assert.False(t, c.S3.Enabled())
	assert.False(t, c.TLSEnabled())
}

func TestLoad_EnvFileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PM_ADDR=:8443\nPM_S3_BUCKET=snapshots\nPM_ARGON2_ITER=4\n"), 0o600))

	// set before Load so godotenv leaves it alone
	t.Setenv("PM_S3_BUCKET", "from-env")
	t.Setenv("PM_TOKEN_TTL", "15m")
	t.Cleanup(func() {
		os.Unsetenv("PM_ADDR")
		os.Unsetenv("PM_ARGON2_ITER")
	})

	c, err := config.Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, ":8443", c.Addr)
	assert.Equal(t, "from-env", c.S3.Bucket)
	assert.True(t, c.S3.Enabled())
	assert.Equal(t, 15*time.Minute, c.TokenTTL)

	p := c.Argon2Params()
	assert.Equal(t, uint32(4), p.Iterations)
	assert.Equal(t, uint32(131072), p.Memory)
	assert.Equal(t, uint32(32), p.KeyLength)
}

func TestLoad_BadValue(t *testing.T) {
	t.Setenv("PM_TALLY_WORKERS", "many")
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
