package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, defaultPort, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDev())
	assert.NotEmpty(t, cfg.DSN)
	assert.NotEmpty(t, cfg.RedisURL)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
port: 8080
env: production
jwt_secret: supersecret
allowed_origins:
  - " triponation.com "
  - ""
  - "*.triponation.com"
timezone: Asia/Kolkata
cache:
  disable: true
  approved_ttl_seconds: 120
cron:
  orphan_max_age_minutes: 60
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "supersecret", cfg.JWTSecret)
	assert.Equal(t, []string{"triponation.com", "*.triponation.com"}, cfg.AllowedOrigins)
	assert.Equal(t, "Asia/Kolkata", cfg.Timezone)
	assert.True(t, cfg.Cache.Disable)
	assert.Equal(t, 2*time.Minute, cfg.Cache.ApprovedTTL())
	assert.Equal(t, time.Hour, cfg.Cron.OrphanMaxAge())
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("port: [not an int"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TRIPO_JWT_SECRET", "from-env")
	t.Setenv("TRIPO_REDIS_URL", "redis://elsewhere:6379/1")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.Equal(t, "redis://elsewhere:6379/1", cfg.RedisURL)
}

func TestNormalize(t *testing.T) {
	cfg := AppConfig{Port: -1, Env: "PROD"}
	normalize(&cfg)
	assert.Equal(t, defaultPort, cfg.Port)
	assert.Equal(t, "production", cfg.Env)

	assert.Equal(t, "development", normalizeEnv("staging"))
}

func TestTTLDefaults(t *testing.T) {
	var c CacheConfig
	assert.Equal(t, 300*time.Second, c.DetailTTL())
	assert.Equal(t, 600*time.Second, c.ApprovedTTL())

	var cr CronConfig
	assert.Equal(t, 24*time.Hour, cr.OrphanMaxAge())
}
