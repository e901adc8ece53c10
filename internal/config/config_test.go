package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "tg-token")
	t.Setenv("GEMINI_API_KEY", "gem-key")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "tg-token", cfg.TelegramToken)
	assert.Equal(t, "gem-key", cfg.GeminiAPIKey)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 1200*time.Millisecond, cfg.MediaGroupDebounce)
	assert.Equal(t, 4, cfg.MaxConcurrent)
	assert.Equal(t, 120*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "https://generativelanguage.googleapis.com", cfg.GeminiBaseURL)
	assert.Equal(t, "v1beta", cfg.GeminiAPIVersion)
	assert.Equal(t, "gemini-1.5-flash-latest", cfg.GeminiModel)
}

func TestLoadRequiredKeys(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("GEMINI_API_KEY", "gem-key")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("TELEGRAM_BOT_TOKEN", "tg-token")
	t.Setenv("GEMINI_API_KEY", "")

	_, err = Load()
	require.Error(t, err)
}

func TestLoadClampsInvalidValues(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "tg-token")
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("MAX_CONCURRENT", "0")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "-5")
	t.Setenv("GEMINI_MODEL", "gemini-2.0-flash")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 1, cfg.MaxConcurrent)
	assert.Equal(t, 120*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "gemini-2.0-flash", cfg.GeminiModel)
}
