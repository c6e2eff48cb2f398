package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/reviews_test")
	t.Setenv("JWT_SECRET", "test-secret-key-that-is-long-enough")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.GoEnv)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 24, cfg.ConfirmationCodeBytes)
	assert.Equal(t, 5.0, cfg.AuthRateLimit)
	assert.Equal(t, 10, cfg.AuthRateBurst)
	assert.Equal(t, 10*time.Minute, cfg.RatingCacheTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.IsDevelopment())

	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("JWT_EXPIRY", "30m")
	t.Setenv("GO_ENV", "production")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.HTTPPort)
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiry)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	cfg.JWTSecret = "short"
	assert.Error(t, cfg.Validate())

	cfg, err = LoadConfig()
	require.NoError(t, err)
	cfg.LogLevel = "verbose"
	assert.Error(t, cfg.Validate())

	cfg, err = LoadConfig()
	require.NoError(t, err)
	cfg.HTTPPort = 0
	assert.Error(t, cfg.Validate())
}
