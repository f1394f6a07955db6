// Package telegram provides a client for the Telegram Bot API
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/finbuddy/finbuddy/internal/common"
	"github.com/finbuddy/finbuddy/internal/interfaces"
)

const (
	DefaultBaseURL     = "https://api.telegram.org"
	DefaultPollTimeout = 30 * time.Second
	DefaultRateLimit   = 25 // messages per second, below the Bot API global cap
)

// Client implements the TelegramClient interface over the Bot API
type Client struct {
	baseURL     string
	token       string
	pollTimeout time.Duration
	httpClient  *http.Client
	limiter     *rate.Limiter
	logger      *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the API base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithPollTimeout sets the long-poll timeout for GetUpdates
func WithPollTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.pollTimeout = timeout
		c.httpClient.Timeout = timeout + 10*time.Second
	}
}

// WithRateLimit sets the outbound message rate limit
func WithRateLimit(perSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), perSecond)
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new Telegram Bot API client
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:     DefaultBaseURL,
		token:       token,
		pollTimeout: DefaultPollTimeout,
		httpClient: &http.Client{
			Timeout: DefaultPollTimeout + 10*time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents a Bot API failure response
type APIError struct {
	StatusCode  int
	Description string
	Method      string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram API error: %s (status: %d, method: %s)", e.Description, e.StatusCode, e.Method)
}

// post issues one Bot API method call with a JSON body
func (c *Client) post(ctx context.Context, method string, payload any, result any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s payload: %w", method, err)
	}

	reqURL := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var envelope apiResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if !envelope.OK {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Description: envelope.Description,
			Method:      method,
		}
	}

	if result != nil {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return fmt.Errorf("failed to decode %s result: %w", method, err)
		}
	}

	return nil
}

// GetUpdates long-polls for updates with IDs greater than offset
func (c *Client) GetUpdates(ctx context.Context, offset int64) ([]interfaces.Update, error) {
	payload := getUpdatesRequest{
		Offset:         offset,
		Timeout:        int(c.pollTimeout.Seconds()),
		AllowedUpdates: []string{"message", "callback_query"},
	}

	var raw []update
	if err := c.post(ctx, "getUpdates", payload, &raw); err != nil {
		return nil, err
	}

	updates := make([]interfaces.Update, 0, len(raw))
	for _, u := range raw {
		updates = append(updates, u.toEvent())
	}
	return updates, nil
}

// SendMessage delivers a text message to a chat
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, opts ...interfaces.SendOption) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	options := interfaces.SendOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	payload := sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: options.ParseMode,
	}
	if len(options.Keyboard) > 0 {
		payload.ReplyMarkup = buildInlineKeyboard(options.Keyboard)
	}

	c.logger.Debug().Int64("chat", chatID).Int("len", len(text)).Msg("Telegram sendMessage")

	return c.post(ctx, "sendMessage", payload, nil)
}

// AnswerCallbackQuery acknowledges a button press so the client stops
// showing the loading state.
func (c *Client) AnswerCallbackQuery(ctx context.Context, callbackID string) error {
	payload := answerCallbackRequest{CallbackQueryID: callbackID}
	return c.post(ctx, "answerCallbackQuery", payload, nil)
}

func buildInlineKeyboard(rows [][]interfaces.InlineButton) *inlineKeyboardMarkup {
	markup := &inlineKeyboardMarkup{}
	for _, row := range rows {
		var line []inlineKeyboardButton
		for _, b := range row {
			line = append(line, inlineKeyboardButton{Text: b.Text, CallbackData: b.Data})
		}
		markup.InlineKeyboard = append(markup.InlineKeyboard, line)
	}
	return markup
}

// Ensure Client implements TelegramClient
var _ interfaces.TelegramClient = (*Client)(nil)
