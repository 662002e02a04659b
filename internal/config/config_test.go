package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.False(t, cfg.Review.AutoApprove)
	assert.Equal(t, 5*time.Minute, cfg.Review.StatsCacheTTL)
	assert.Equal(t, 5, cfg.Review.SubmitBurst)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, []string{"*"}, cfg.HTTP.AllowedOrigins)
}

func TestLoad_ReviewOverrides(t *testing.T) {
	t.Setenv("REVIEW_AUTO_APPROVE", "true")
	t.Setenv("REVIEW_STATS_CACHE_TTL", "30s")
	t.Setenv("REVIEW_SUBMIT_RPS", "0.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Review.AutoApprove)
	assert.Equal(t, 30*time.Second, cfg.Review.StatsCacheTTL)
	assert.Equal(t, 0.5, cfg.Review.SubmitRPS)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("REVIEW_AUTO_APPROVE", "maybe")
	t.Setenv("REDIS_DB", "x")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Review.AutoApprove)
	assert.Equal(t, 0, cfg.Redis.DB)
}

func TestLoad_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_PASSWORD", "")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "prod-secret")
	_, err = Load()
	assert.Error(t, err, "db password still missing")

	t.Setenv("DB_PASSWORD", "pw")
	_, err = Load()
	assert.NoError(t, err)
}

func TestLoad_RejectsNonPositiveRateLimit(t *testing.T) {
	t.Setenv("REVIEW_SUBMIT_RPS", "-1")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDatabaseConfig(t *testing.T) {
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_MAX_CONNECTIONS", "10")
	t.Setenv("DB_MIN_CONNECTIONS", "2")

	dbCfg, err := LoadDatabaseConfig()
	require.NoError(t, err)
	assert.Equal(t, 6543, dbCfg.Port)
	assert.Equal(t, int32(10), dbCfg.MaxConns)
	assert.Equal(t, int32(2), dbCfg.MinConns)
	assert.Equal(t, "disable", dbCfg.SSLMode)
}

func TestLoadDatabaseConfig_Invalid(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-port")
	_, err := LoadDatabaseConfig()
	assert.Error(t, err)

	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_MAX_CONNECTIONS", "2")
	t.Setenv("DB_MIN_CONNECTIONS", "5")
	_, err = LoadDatabaseConfig()
	assert.Error(t, err)
}
