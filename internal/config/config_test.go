package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DB_PATH", filepath.Join(dir, "nested", "site.db"))
	t.Setenv("APP_ENV", "")
	t.Setenv("SESSION_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, devSessionSecret, cfg.SessionSecret)
	assert.Equal(t, 10, cfg.RateLimits.Auth)
	assert.Equal(t, 20, cfg.RateLimits.Upload)
	assert.Equal(t, time.Minute, cfg.RateLimits.Window)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.DirExists(t, filepath.Join(dir, "nested"))
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "site.db"))
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("SESSION_TTL_HOURS", "2")
	t.Setenv("AUTH_RATE_LIMIT", "3")
	t.Setenv("SMTP_PORT", "not-a-number")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 3, cfg.RateLimits.Auth)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.True(t, cfg.Debug)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "site.db"))
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingSessionSecret)

	t.Setenv("SESSION_SECRET", "s3cret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
