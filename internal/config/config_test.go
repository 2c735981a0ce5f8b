package config_test

import (
	"testing"
	"time"

	"reelchat/backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "host=localhost user=user dbname=chat sslmode=disable")
	t.Setenv("JWT_SECRET", "0123456789abcdef-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "localhost:6380", cfg.RedisAddr)
	assert.Equal(t, 72*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, config.DefaultHistoryLimit, cfg.HistoryLimit)
	assert.Equal(t, 256, cfg.SendBufferSize)
	assert.False(t, cfg.MaintenanceMode)
	assert.False(t, cfg.TelegramEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("MAINTENANCE_MODE", "true")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.MaintenanceMode)
	assert.True(t, cfg.TelegramEnabled())
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing dsn", env: map[string]string{"POSTGRES_DSN": "", "JWT_SECRET": "0123456789abcdef"}},
		{name: "short secret", env: map[string]string{"POSTGRES_DSN": "dsn", "JWT_SECRET": "short"}},
		{name: "bad log level", env: map[string]string{"POSTGRES_DSN": "dsn", "JWT_SECRET": "0123456789abcdef", "LOG_LEVEL": "verbose"}},
		{name: "zero history limit", env: map[string]string{"POSTGRES_DSN": "dsn", "JWT_SECRET": "0123456789abcdef", "HISTORY_LIMIT": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
