// Package common provides shared configuration and logging for FinBuddy
package common

import (
	"fmt"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for FinBuddy
type Config struct {
	Environment string         `toml:"environment"`
	Telegram    TelegramConfig `toml:"telegram"`
	Gemini      GeminiConfig   `toml:"gemini"`
	Yahoo       YahooConfig    `toml:"yahoo"`
	Market      MarketConfig   `toml:"market"`
	Logging     LoggingConfig  `toml:"logging"`
}

// TelegramConfig holds Telegram Bot API configuration
type TelegramConfig struct {
	BotToken    string `toml:"bot_token"`
	BaseURL     string `toml:"base_url"`
	PollTimeout string `toml:"poll_timeout"`
	RateLimit   int    `toml:"rate_limit"`
}

// GetPollTimeout parses and returns the long-poll timeout duration
func (c *TelegramConfig) GetPollTimeout() time.Duration {
	d, err := time.ParseDuration(c.PollTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// YahooConfig holds yh-finance (RapidAPI) configuration
type YahooConfig struct {
	BaseURL   string `toml:"base_url"`
	Host      string `toml:"host"`
	APIKey    string `toml:"api_key"`
	Region    string `toml:"region"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the HTTP timeout duration
func (c *YahooConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// SymbolEntry pairs a display name with its quote symbol. Universe
// sections are ordered lists so report sections render deterministically.
type SymbolEntry struct {
	Name   string `toml:"name"`
	Symbol string `toml:"symbol"`
}

// MarketConfig holds the quote-cache TTL and the symbol universe for the
// market snapshot. The universe is static configuration data, not logic.
type MarketConfig struct {
	CacheTTL     string        `toml:"cache_ttl"`
	Indices      []SymbolEntry `toml:"indices"`
	Sectors      []SymbolEntry `toml:"sectors"`
	Global       []SymbolEntry `toml:"global"`
	Commodities  []SymbolEntry `toml:"commodities"`
	Currencies   []SymbolEntry `toml:"currencies"`
	Constituents []string      `toml:"constituents"`
}

// GetCacheTTL parses and returns the quote-cache TTL
func (c *MarketConfig) GetCacheTTL() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 5 * time.Minute
	}
	return d
}

// AllSymbols returns every symbol in the universe, constituents last.
func (c *MarketConfig) AllSymbols() []string {
	var symbols []string
	for _, section := range [][]SymbolEntry{c.Indices, c.Sectors, c.Global, c.Commodities, c.Currencies} {
		for _, e := range section {
			symbols = append(symbols, e.Symbol)
		}
	}
	symbols = append(symbols, c.Constituents...)
	return symbols
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults, including the
// default Indian-market symbol universe.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Telegram: TelegramConfig{
			BaseURL:     "https://api.telegram.org",
			PollTimeout: "30s",
			RateLimit:   25,
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.0-flash",
		},
		Yahoo: YahooConfig{
			BaseURL:   "https://yh-finance.p.rapidapi.com",
			Host:      "yh-finance.p.rapidapi.com",
			Region:    "IN",
			RateLimit: 5,
			Timeout:   "30s",
		},
		Market: MarketConfig{
			CacheTTL: "5m",
			Indices: []SymbolEntry{
				{Name: "NIFTY 50", Symbol: "^NSEI"},
				{Name: "SENSEX", Symbol: "^BSESN"},
				{Name: "BANK NIFTY", Symbol: "^NSEBANK"},
				{Name: "INDIA VIX", Symbol: "^INDIAVIX"},
			},
			Sectors: []SymbolEntry{
				{Name: "NIFTY IT", Symbol: "^CNXIT"},
				{Name: "NIFTY AUTO", Symbol: "^CNXAUTO"},
				{Name: "NIFTY PHARMA", Symbol: "^CNXPHARMA"},
				{Name: "NIFTY MIDCAP SELECT", Symbol: "NIFTY_MID_SELECT.NS"},
				{Name: "NIFTY SMALLCAP", Symbol: "^CNXSC"},
			},
			Global: []SymbolEntry{
				{Name: "S&P 500", Symbol: "^GSPC"},
				{Name: "NASDAQ", Symbol: "^IXIC"},
				{Name: "DOW JONES", Symbol: "^DJI"},
				{Name: "FTSE 100", Symbol: "^FTSE"},
				{Name: "NIKKEI 225", Symbol: "^N225"},
			},
			Commodities: []SymbolEntry{
				{Name: "GOLD", Symbol: "GC=F"},
				{Name: "CRUDE OIL (BRENT)", Symbol: "BZ=F"},
			},
			Currencies: []SymbolEntry{
				{Name: "USD/INR", Symbol: "INR=X"},
			},
			Constituents: []string{
				"RELIANCE.NS", "TCS.NS", "HDFCBANK.NS", "INFY.NS", "ICICIBANK.NS",
				"HINDUNILVR.NS", "ADANIPORTS.NS", "KOTAKBANK.NS", "BAJFINANCE.NS", "SBIN.NS",
				"BHARTIARTL.NS", "ITC.NS", "AXISBANK.NS", "ASIANPAINT.NS", "MARUTI.NS",
				"HCLTECH.NS", "LT.NS", "SUNPHARMA.NS", "ULTRACEMCO.NS", "TITAN.NS",
				"BAJAJFINSV.NS", "NTPC.NS", "POWERGRID.NS", "TATASTEEL.NS", "TECHM.NS",
				"TATAMOTORS.NS", "M&M.NS", "INDUSINDBK.NS", "NESTLEIND.NS", "WIPRO.NS",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Missing files are skipped; later files override earlier ones.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config.
// Secrets are environment-first: a value in the environment always wins.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FINBUDDY_ENV"); env != "" {
		config.Environment = env
	}
	if level := os.Getenv("FINBUDDY_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if v := resolveSecret("TELEGRAM_BOT_TOKEN", "FINBUDDY_TELEGRAM_BOT_TOKEN"); v != "" {
		config.Telegram.BotToken = v
	}
	if v := resolveSecret("GEMINI_API_KEY", "FINBUDDY_GEMINI_API_KEY", "GOOGLE_API_KEY"); v != "" {
		config.Gemini.APIKey = v
	}
	if v := resolveSecret("RAPID_API_KEY", "FINBUDDY_RAPID_API_KEY"); v != "" {
		config.Yahoo.APIKey = v
	}
	if v := os.Getenv("FINBUDDY_GEMINI_MODEL"); v != "" {
		config.Gemini.Model = v
	}
}

// resolveSecret returns the first non-empty value among the named
// environment variables.
func resolveSecret(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// Validate checks that required secrets are present. The process must not
// start without them.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram bot token not configured: set TELEGRAM_BOT_TOKEN")
	}
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("gemini API key not configured: set GEMINI_API_KEY")
	}
	if c.Yahoo.APIKey == "" {
		return fmt.Errorf("market data API key not configured: set RAPID_API_KEY")
	}
	return nil
}
