package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"SESSION_SECRET": "0123456789abcdef",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "9090", cfg.OpsPort)
	assert.Equal(t, "http://127.0.0.1:8000", cfg.API.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.API.Timeout)
	assert.Equal(t, "shop_console_session", cfg.Session.CookieName)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 30*time.Minute, cfg.Workspace.IdleTTL)
	assert.Equal(t, "ETB", cfg.Workspace.CurrencyPrefix)
	assert.Equal(t, 4, cfg.Audit.Workers)
	assert.Empty(t, cfg.Mongo.URI)
	assert.Equal(t, "shop_console", cfg.Mongo.Database)
	assert.Empty(t, cfg.Redis.Addr)
	assert.False(t, cfg.Production())
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"SESSION_SECRET":  "0123456789abcdef",
		"ENV":             "production",
		"API_BASE_URL":    "https://shops.example.com",
		"API_TIMEOUT":     "15s",
		"CURRENCY_PREFIX": "$",
		"REDIS_ADDR":      "redis:6379",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.Production())
	assert.Equal(t, "https://shops.example.com", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, "$", cfg.Workspace.CurrencyPrefix)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}

func TestLoadFrom_SecretRequired(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	assert.Error(t, err)

	_, err = LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{"SESSION_SECRET": "short"}))
	assert.Error(t, err)
}

func TestLoadCLIFrom_Prefix(t *testing.T) {
	cfg, err := LoadCLIFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"SHOPCTL_API_URL": "http://api.local:9000",
		"API_URL":         "http://ignored",
	}))
	require.NoError(t, err)
	assert.Equal(t, "http://api.local:9000", cfg.APIURL)
	assert.Equal(t, "warn", cfg.LogLevel)
}
