// Package interfaces defines client and service contracts for FinBuddy
package interfaces

import (
	"context"

	"github.com/finbuddy/finbuddy/internal/models"
)

// MarketDataClient provides access to the yh-finance API
type MarketDataClient interface {
	// GetQuotes retrieves a batch quote snapshot for the given symbols
	GetQuotes(ctx context.Context, symbols []string) (map[string]models.Quote, error)

	// GetOverview retrieves the fundamental overview for a ticker.
	// Returns ErrTickerNotFound (via errors.Is) for unknown symbols.
	GetOverview(ctx context.Context, ticker string) (*models.StockOverview, error)

	// GetIncomeStatements retrieves annual and quarterly income statements
	// plus key ratios (up to 4 periods each)
	GetIncomeStatements(ctx context.Context, ticker string) (*models.IncomeStatements, error)

	// GetBalanceAndCashFlow retrieves the annual balance sheet and cash
	// flow statement (up to 4 periods each)
	GetBalanceAndCashFlow(ctx context.Context, ticker string) (*models.BalanceAndCashFlow, error)
}

// GeminiClient provides access to the Gemini API
type GeminiClient interface {
	// GenerateContent generates a one-shot completion from a prompt
	GenerateContent(ctx context.Context, prompt string) (string, error)

	// StartChat opens a multi-turn session; history is retained by the
	// session for subsequent Send calls
	StartChat(ctx context.Context) (ChatSession, error)
}

// ChatSession is one open multi-turn conversation with the model
type ChatSession interface {
	// Send forwards a message into the session and returns the reply
	Send(ctx context.Context, text string) (string, error)
}

// TelegramClient provides access to the Telegram Bot API
type TelegramClient interface {
	// GetUpdates long-polls for updates with IDs greater than offset
	GetUpdates(ctx context.Context, offset int64) ([]Update, error)

	// SendMessage delivers a text message to a chat
	SendMessage(ctx context.Context, chatID int64, text string, opts ...SendOption) error

	// AnswerCallbackQuery acknowledges a button press
	AnswerCallbackQuery(ctx context.Context, callbackID string) error
}

// Update is one inbound Telegram event: either a message or a button press
type Update struct {
	ID       int64
	Message  *InboundMessage
	Callback *CallbackQuery
}

// InboundMessage is a text message (command or free text) from a user
type InboundMessage struct {
	UserID    int64
	ChatID    int64
	FirstName string
	Text      string
}

// CallbackQuery is an inline-button press
type CallbackQuery struct {
	ID        string
	UserID    int64
	ChatID    int64
	FirstName string
	Data      string
}

// InlineButton is one inline keyboard button
type InlineButton struct {
	Text string
	Data string
}

// SendOptions holds per-message delivery options
type SendOptions struct {
	ParseMode string
	Keyboard  [][]InlineButton
}

// SendOption configures a SendMessage call
type SendOption func(*SendOptions)

// WithMarkdown requests Markdown rendering for the message
func WithMarkdown() SendOption {
	return func(o *SendOptions) {
		o.ParseMode = "Markdown"
	}
}

// WithKeyboard attaches an inline keyboard to the message
func WithKeyboard(rows [][]InlineButton) SendOption {
	return func(o *SendOptions) {
		o.Keyboard = rows
	}
}
