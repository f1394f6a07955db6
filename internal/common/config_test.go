package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "https://api.telegram.org", config.Telegram.BaseURL)
	assert.Equal(t, 30*time.Second, config.Telegram.GetPollTimeout())
	assert.Equal(t, "gemini-2.0-flash", config.Gemini.Model)
	assert.Equal(t, "IN", config.Yahoo.Region)
	assert.Equal(t, "yh-finance.p.rapidapi.com", config.Yahoo.Host)
	assert.Equal(t, 5*time.Minute, config.Market.GetCacheTTL())
	assert.Equal(t, "info", config.Logging.Level)

	// Secrets have no defaults
	assert.Empty(t, config.Telegram.BotToken)
	assert.Empty(t, config.Gemini.APIKey)
	assert.Empty(t, config.Yahoo.APIKey)
}

func TestDefaultUniverse(t *testing.T) {
	config := NewDefaultConfig()

	symbols := config.Market.AllSymbols()
	require.NotEmpty(t, symbols)

	// Sections come before constituents, in declaration order
	assert.Equal(t, "^NSEI", symbols[0])
	assert.Equal(t, "^INDIAVIX", symbols[3])
	assert.Equal(t, "RELIANCE.NS", symbols[17])
	assert.Len(t, symbols, 17+30)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "finbuddy.toml")
	content := `
environment = "production"

[telegram]
poll_timeout = "45s"

[gemini]
model = "gemini-1.5-pro"

[market]
cache_ttl = "10m"

[[market.indices]]
name = "NIFTY 50"
symbol = "^NSEI"

[logging]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.Equal(t, 45*time.Second, config.Telegram.GetPollTimeout())
	assert.Equal(t, "gemini-1.5-pro", config.Gemini.Model)
	assert.Equal(t, 10*time.Minute, config.Market.GetCacheTTL())
	assert.Equal(t, "debug", config.Logging.Level)

	// File universe replaces the default one
	assert.Len(t, config.Market.Indices, 1)

	// Untouched sections keep their defaults
	assert.Equal(t, "https://yh-finance.p.rapidapi.com", config.Yahoo.BaseURL)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig("/nonexistent/finbuddy.toml")
	require.NoError(t, err)
	assert.Equal(t, "development", config.Environment)
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("environment = ["), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FINBUDDY_ENV", "staging")
	t.Setenv("FINBUDDY_LOG_LEVEL", "warn")
	t.Setenv("TELEGRAM_BOT_TOKEN", "tg-token")
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("RAPID_API_KEY", "rapid-key")
	t.Setenv("FINBUDDY_GEMINI_MODEL", "gemini-2.5-flash")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "staging", config.Environment)
	assert.Equal(t, "warn", config.Logging.Level)
	assert.Equal(t, "tg-token", config.Telegram.BotToken)
	assert.Equal(t, "gem-key", config.Gemini.APIKey)
	assert.Equal(t, "rapid-key", config.Yahoo.APIKey)
	assert.Equal(t, "gemini-2.5-flash", config.Gemini.Model)
}

func TestSecretAliases(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("FINBUDDY_TELEGRAM_BOT_TOKEN", "alias-token")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("FINBUDDY_GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "google-key")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "alias-token", config.Telegram.BotToken)
	assert.Equal(t, "google-key", config.Gemini.APIKey)
}

func TestEnvWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "finbuddy.toml")
	content := `
[telegram]
bot_token = "file-token"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "env-token", config.Telegram.BotToken)
}

func TestValidate(t *testing.T) {
	config := NewDefaultConfig()

	err := config.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_BOT_TOKEN")

	config.Telegram.BotToken = "tg"
	err = config.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")

	config.Gemini.APIKey = "gem"
	err = config.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RAPID_API_KEY")

	config.Yahoo.APIKey = "rapid"
	assert.NoError(t, config.Validate())
}

func TestDurationFallbacks(t *testing.T) {
	tc := TelegramConfig{PollTimeout: "not-a-duration"}
	assert.Equal(t, 30*time.Second, tc.GetPollTimeout())

	mc := MarketConfig{CacheTTL: ""}
	assert.Equal(t, 5*time.Minute, mc.GetCacheTTL())

	yc := YahooConfig{Timeout: "bogus"}
	assert.Equal(t, 30*time.Second, yc.GetTimeout())
}
