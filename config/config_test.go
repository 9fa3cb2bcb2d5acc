package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "1", cfg.API.Version)
	assert.False(t, cfg.API.RowVersionRequired)
	assert.Equal(t, "en", cfg.Locale.Default)
	assert.Equal(t, []string{"en", "tr"}, cfg.Locale.Supported)
	assert.Equal(t, 5*time.Minute, cfg.Redis.ListTTL)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("ROW_VERSION_REQUIRED", "true")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_LIST_TTL", "30s")
	t.Setenv("LOCALE_SUPPORTED", "tr, en ,")
	t.Setenv("LOCALE_DEFAULT", "tr")
	t.Setenv("API_LEGACY_SUNSET", "2027-01-01T00:00:00Z")
	t.Setenv("DB_PORT", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.API.RowVersionRequired)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Redis.ListTTL)
	assert.Equal(t, []string{"tr", "en"}, cfg.Locale.Supported)
	assert.Equal(t, "tr", cfg.Locale.Default)
	assert.Equal(t, 2027, cfg.API.LegacySunset.Year())
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			App:       AppConfig{Port: "3000", Environment: "development"},
			Auth:      AuthConfig{JWTSecret: "default_secret"},
			RateLimit: RateLimitConfig{Request: 10, Duration: 60},
			Locale:    LocaleConfig{Default: "en", Supported: []string{"en", "tr"}},
		}
	}

	assert.NoError(t, base().Validate())

	prod := base()
	prod.App.Environment = "production"
	assert.Error(t, prod.Validate())

	badLocale := base()
	badLocale.Locale.Default = "de"
	assert.Error(t, badLocale.Validate())

	badRate := base()
	badRate.RateLimit.Request = 0
	assert.Error(t, badRate.Validate())
}

func TestConnectionStrings(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", Name: "n", SSLMode: "disable"},
		Redis:    RedisConfig{Host: "cache", Port: 6380},
	}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=n sslmode=disable", cfg.DatabaseConnectionString())
	assert.Equal(t, "cache:6380", cfg.RedisAddress())
}
