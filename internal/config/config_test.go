package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"TELEGRAM_TOKEN": "token",
		"DB_DSN":         "postgres://localhost/repair",
	}))
	require.NoError(t, err)

	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 10, cfg.MaxServicesPerOrder)
	assert.Equal(t, 5, cfg.ServicesPageSize)
	assert.Equal(t, 14, cfg.DateOfferDays)
	assert.Equal(t, 30, cfg.DateAcceptDays)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 30, cfg.RateLimitMessages)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.True(t, cfg.MigrationsEnabled)
	assert.Empty(t, cfg.GeminiAPIKey)
	require.NotNil(t, cfg.Location)
	assert.Equal(t, "Europe/Moscow", cfg.Location.String())
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"TELEGRAM_TOKEN":         "token",
		"STORAGE":                "Memory",
		"ENV":                    "production",
		"LOG_LEVEL":              "WARN",
		"MAX_SERVICES_PER_ORDER": "3",
		"SESSION_TTL":            "10m",
		"ADMIN_IDS":              "1, 2,,3",
		"MIGRATIONS_ENABLED":     "false",
		"TIMEZONE":               "UTC",
	}))
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 3, cfg.MaxServicesPerOrder)
	assert.Equal(t, 10*time.Minute, cfg.SessionTTL)
	assert.Equal(t, []int64{1, 2, 3}, cfg.AdminIDs)
	assert.False(t, cfg.MigrationsEnabled)
}

func TestFromEnvValidation(t *testing.T) {
	cases := map[string]map[string]string{
		"missing token":       {"DB_DSN": "dsn"},
		"missing dsn":         {"TELEGRAM_TOKEN": "t"},
		"unknown storage":     {"TELEGRAM_TOKEN": "t", "STORAGE": "redis"},
		"too many services":   {"TELEGRAM_TOKEN": "t", "STORAGE": "memory", "MAX_SERVICES_PER_ORDER": "51"},
		"accept before offer": {"TELEGRAM_TOKEN": "t", "STORAGE": "memory", "DATE_OFFER_DAYS": "20", "DATE_ACCEPT_DAYS": "10"},
		"bad number":          {"TELEGRAM_TOKEN": "t", "STORAGE": "memory", "SERVICES_PAGE_SIZE": "five"},
		"bad duration":        {"TELEGRAM_TOKEN": "t", "STORAGE": "memory", "SESSION_TTL": "soon"},
		"bad admin id":        {"TELEGRAM_TOKEN": "t", "STORAGE": "memory", "ADMIN_IDS": "1,root"},
		"unknown timezone":    {"TELEGRAM_TOKEN": "t", "STORAGE": "memory", "TIMEZONE": "Mars/Olympus"},
		"unknown log level":   {"TELEGRAM_TOKEN": "t", "STORAGE": "memory", "LOG_LEVEL": "loud"},
		"negative rate limit": {"TELEGRAM_TOKEN": "t", "STORAGE": "memory", "RATE_LIMIT_MESSAGES": "-1"},
		"zero advice timeout": {"TELEGRAM_TOKEN": "t", "STORAGE": "memory", "ADVICE_TIMEOUT": "0s"},
	}

	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(env(values))
			assert.Error(t, err)
		})
	}
}

func TestMemoryStorageNeedsNoDSN(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{"TELEGRAM_TOKEN": "t", "STORAGE": "memory"}))
	require.NoError(t, err)
	assert.Empty(t, cfg.GetDBDSN())
}
