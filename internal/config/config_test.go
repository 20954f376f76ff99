package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("AUTH_JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "enrollment-service", cfg.App.Name)
	assert.Equal(t, 60, cfg.Auth.AccessTokenTTLMinutes)
	assert.Equal(t, time.Hour, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, 8, cfg.Auth.MinPasswordLength)
	assert.Equal(t, time.Minute, cfg.Catalog.CacheTTL())
	assert.Equal(t, defaultJWTSecret, cfg.Auth.JWTSecret)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "15")
	t.Setenv("CATALOG_CACHE_TTL_SECONDS", "0")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.App.Addr())
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, time.Duration(0), cfg.Catalog.CacheTTL())
	assert.False(t, cfg.Postgres.RunMigrations)
}

func TestLoad_InvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_DB")
}

func TestValidate(t *testing.T) {
	base := Config{
		App:  AppConfig{Env: "development"},
		Auth: AuthConfig{JWTSecret: "secret", AccessTokenTTLMinutes: 60, MinPasswordLength: 8},
	}
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "empty secret", mutate: func(c *Config) { c.Auth.JWTSecret = "" }},
		{name: "default secret in production", mutate: func(c *Config) {
			c.App.Env = "production"
			c.Auth.JWTSecret = defaultJWTSecret
		}},
		{name: "non-positive ttl", mutate: func(c *Config) { c.Auth.AccessTokenTTLMinutes = 0 }},
		{name: "zero password length", mutate: func(c *Config) { c.Auth.MinPasswordLength = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
