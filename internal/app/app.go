// Package app wires configuration, clients and services into a runnable bot.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/finbuddy/finbuddy/internal/bot"
	"github.com/finbuddy/finbuddy/internal/clients/gemini"
	"github.com/finbuddy/finbuddy/internal/clients/telegram"
	"github.com/finbuddy/finbuddy/internal/clients/yahoo"
	"github.com/finbuddy/finbuddy/internal/common"
	"github.com/finbuddy/finbuddy/internal/interfaces"
	"github.com/finbuddy/finbuddy/internal/services/analysis"
	"github.com/finbuddy/finbuddy/internal/services/chat"
	"github.com/finbuddy/finbuddy/internal/services/market"
	"github.com/finbuddy/finbuddy/internal/services/session"
)

// App holds all initialized clients and services plus the bot loop.
type App struct {
	Config         *common.Config
	Logger         *common.Logger
	TelegramClient interfaces.TelegramClient
	MarketClient   interfaces.MarketDataClient
	GeminiClient   interfaces.GeminiClient
	MarketService  interfaces.MarketService
	Narrator       interfaces.Narrator
	ChatService    interfaces.ChatService
	Sessions       interfaces.SessionStore
	Bot            *bot.Bot
	StartupTime    time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, clients, services and the bot.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(ctx context.Context, configPath string) (*App, error) {
	startupStart := time.Now()

	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	// Load configuration - check provided path, FINBUDDY_CONFIG, then binary
	// dir, then the development fallback
	if configPath == "" {
		configPath = os.Getenv("FINBUDDY_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "finbuddy.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/finbuddy.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	// Initialize API clients
	telegramClient := telegram.NewClient(config.Telegram.BotToken,
		telegram.WithLogger(logger),
		telegram.WithBaseURL(config.Telegram.BaseURL),
		telegram.WithPollTimeout(config.Telegram.GetPollTimeout()),
		telegram.WithRateLimit(config.Telegram.RateLimit),
	)

	yahooClient := yahoo.NewClient(config.Yahoo.APIKey,
		yahoo.WithLogger(logger),
		yahoo.WithBaseURL(config.Yahoo.BaseURL),
		yahoo.WithHost(config.Yahoo.Host),
		yahoo.WithRegion(config.Yahoo.Region),
		yahoo.WithRateLimit(config.Yahoo.RateLimit),
	)

	geminiClient, err := gemini.NewClient(ctx, config.Gemini.APIKey,
		gemini.WithLogger(logger),
		gemini.WithModel(config.Gemini.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	// Initialize services
	marketService := market.NewService(yahooClient, config.Market, logger)
	narrator := analysis.NewService(yahooClient, geminiClient, analysis.WithLogger(logger))
	chatService := chat.NewService(geminiClient, chat.WithLogger(logger))
	sessions := session.NewStore()

	finbot := bot.New(telegramClient, marketService, narrator, chatService, sessions,
		config.Market, bot.WithLogger(logger))

	a := &App{
		Config:         config,
		Logger:         logger,
		TelegramClient: telegramClient,
		MarketClient:   yahooClient,
		GeminiClient:   geminiClient,
		MarketService:  marketService,
		Narrator:       narrator,
		ChatService:    chatService,
		Sessions:       sessions,
		Bot:            finbot,
		StartupTime:    startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Run starts the bot loop and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	return a.Bot.Run(ctx)
}
