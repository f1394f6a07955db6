// Package bot connects Telegram updates to the market, analysis and chat
// services. It owns the per-user conversation state machine.
package bot

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/finbuddy/finbuddy/internal/common"
	"github.com/finbuddy/finbuddy/internal/interfaces"
	"github.com/finbuddy/finbuddy/internal/models"
	"github.com/finbuddy/finbuddy/internal/services/analysis"
	"github.com/finbuddy/finbuddy/internal/services/market"
)

const defaultRetryDelay = 5 * time.Second

// Bot long-polls Telegram and dispatches each update to a handler. Updates
// for one user run strictly in order under the session lock; different users
// are handled concurrently.
type Bot struct {
	tg         interfaces.TelegramClient
	market     interfaces.MarketService
	narrator   interfaces.Narrator
	chat       interfaces.ChatService
	sessions   interfaces.SessionStore
	universe   common.MarketConfig
	logger     *common.Logger
	retryDelay time.Duration
	now        func() time.Time
}

// Option configures the bot.
type Option func(*Bot)

// WithLogger sets the logger used by the bot.
func WithLogger(logger *common.Logger) Option {
	return func(b *Bot) {
		b.logger = logger
	}
}

// WithRetryDelay sets the pause after a failed poll.
func WithRetryDelay(d time.Duration) Option {
	return func(b *Bot) {
		b.retryDelay = d
	}
}

// New creates the bot.
func New(
	tg interfaces.TelegramClient,
	marketSvc interfaces.MarketService,
	narrator interfaces.Narrator,
	chat interfaces.ChatService,
	sessions interfaces.SessionStore,
	universe common.MarketConfig,
	opts ...Option,
) *Bot {
	b := &Bot{
		tg:         tg,
		market:     marketSvc,
		narrator:   narrator,
		chat:       chat,
		sessions:   sessions,
		universe:   universe,
		retryDelay: defaultRetryDelay,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = common.NewSilentLogger()
	}
	return b
}

// Run polls for updates until the context is canceled. Poll failures are
// logged and retried after a short pause; the loop survives any single bad
// batch.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info().Msg("Bot started, polling for updates")

	var offset int64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		updates, err := b.tg.GetUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			b.logger.Error().Err(err).Msg("Polling failed")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(b.retryDelay):
			}
			continue
		}

		for _, u := range updates {
			if u.ID >= offset {
				offset = u.ID + 1
			}
			go b.dispatch(ctx, u)
		}
	}
}

// dispatch handles one update under the user's session lock.
func (b *Bot) dispatch(ctx context.Context, u interfaces.Update) {
	var userID int64
	switch {
	case u.Message != nil:
		userID = u.Message.UserID
	case u.Callback != nil:
		userID = u.Callback.UserID
	default:
		return
	}

	release := b.sessions.Lock(userID)
	defer release()

	if u.Message != nil {
		b.handleMessage(ctx, u.Message)
	} else {
		b.handleCallback(ctx, u.Callback)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *interfaces.InboundMessage) {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	if strings.HasPrefix(text, "/") {
		b.handleCommand(ctx, msg, text)
		return
	}

	sess := b.sessions.Get(msg.UserID)
	if sess.Mode == models.ModeAwaitingTicker {
		b.runStep1(ctx, sess, msg.ChatID, text)
		return
	}

	if !b.chat.Active(msg.UserID) {
		b.send(ctx, msg.ChatID, noChatSessionMsg)
		return
	}
	reply := b.chat.Send(ctx, msg.UserID, text)
	b.send(ctx, msg.ChatID, reply, interfaces.WithKeyboard(chatKeyboard()))
}

func (b *Bot) handleCommand(ctx context.Context, msg *interfaces.InboundMessage, text string) {
	command := strings.Fields(text)[0]
	// Group chats address commands as /cmd@BotName.
	if at := strings.IndexByte(command, '@'); at > 0 {
		command = command[:at]
	}

	switch command {
	case "/start":
		b.showMenu(ctx, msg.UserID, msg.ChatID, msg.FirstName)
	case "/markets":
		b.sendMarketOverview(ctx, msg.ChatID)
	case "/chat":
		b.startChat(ctx, msg.UserID, msg.ChatID)
	case "/analyze":
		b.promptForTicker(ctx, msg.UserID, msg.ChatID)
	default:
		b.logger.Debug().Str("command", command).Int64("user_id", msg.UserID).Msg("Unknown command ignored")
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *interfaces.CallbackQuery) {
	if err := b.tg.AnswerCallbackQuery(ctx, cb.ID); err != nil {
		b.logger.Warn().Err(err).Str("callback_id", cb.ID).Msg("Callback ack failed")
	}

	switch cb.Data {
	case cbMarkets:
		b.sendMarketOverview(ctx, cb.ChatID)
	case cbChat:
		b.startChat(ctx, cb.UserID, cb.ChatID)
	case cbAnalyze:
		b.promptForTicker(ctx, cb.UserID, cb.ChatID)
	case cbStep2:
		b.runStep2(ctx, cb.UserID, cb.ChatID)
	case cbStep3:
		b.runStep3(ctx, cb.UserID, cb.ChatID)
	case cbFinalStep:
		b.runFinal(ctx, cb.UserID, cb.ChatID)
	case cbBackToMenu:
		b.sessions.Delete(cb.UserID)
		b.chat.End(cb.UserID)
		b.showMenu(ctx, cb.UserID, cb.ChatID, cb.FirstName)
	default:
		b.logger.Debug().Str("data", cb.Data).Int64("user_id", cb.UserID).Msg("Unknown callback ignored")
	}
}

func (b *Bot) showMenu(ctx context.Context, userID, chatID int64, firstName string) {
	sess := b.sessions.Get(userID)
	sess.Reset()
	if firstName == "" {
		firstName = "there"
	}
	b.send(ctx, chatID, welcomeMessage(firstName),
		interfaces.WithMarkdown(), interfaces.WithKeyboard(mainMenuKeyboard()))
}

func (b *Bot) sendMarketOverview(ctx context.Context, chatID int64) {
	b.send(ctx, chatID, fetchingMarketsMsg)

	snap, err := b.market.Quotes(ctx)
	if err != nil {
		b.logger.Error().Err(err).Msg("Market snapshot unavailable")
		b.send(ctx, chatID, marketsFailedMsg)
		return
	}
	b.send(ctx, chatID, market.FormatSnapshot(b.universe, snap, b.now()), interfaces.WithMarkdown())
}

func (b *Bot) startChat(ctx context.Context, userID, chatID int64) {
	sess := b.sessions.Get(userID)
	sess.Mode = models.ModeNone

	welcome, err := b.chat.Start(ctx, userID)
	if err != nil {
		b.send(ctx, chatID, chatStartFailMsg)
		return
	}
	// Chat replies are plain text; no Markdown parse mode.
	b.send(ctx, chatID, welcome, interfaces.WithKeyboard(chatKeyboard()))
}

func (b *Bot) promptForTicker(ctx context.Context, userID, chatID int64) {
	sess := b.sessions.Get(userID)
	sess.Mode = models.ModeAwaitingTicker
	sess.Stage = models.StageAwaitingTicker

	b.send(ctx, chatID, analyzePromptMsg,
		interfaces.WithMarkdown(), interfaces.WithKeyboard(backToMenuKeyboard()))
}

// NormalizeTicker uppercases a raw symbol and defaults bare NSE symbols to
// the .NS suffix. Symbols that already carry an exchange suffix pass through.
func NormalizeTicker(raw string) string {
	ticker := strings.ToUpper(strings.TrimSpace(raw))
	if ticker != "" && !strings.Contains(ticker, ".") {
		ticker += ".NS"
	}
	return ticker
}

func (b *Bot) runStep1(ctx context.Context, sess *models.UserSession, chatID int64, raw string) {
	ticker := NormalizeTicker(raw)
	b.send(ctx, chatID, analyzingStockMsg)

	res := b.narrator.Step1Overview(ctx, ticker)
	if !res.OK() {
		// State stays in ticker-entry mode so the user can retry directly.
		if errors.Is(res.Err, models.ErrTickerNotFound) {
			b.send(ctx, chatID, tickerNotFoundMessage(ticker),
				interfaces.WithMarkdown(), interfaces.WithKeyboard(backToMenuKeyboard()))
		} else {
			b.send(ctx, chatID, stepFailedMessage(ticker),
				interfaces.WithMarkdown(), interfaces.WithKeyboard(backToMenuKeyboard()))
		}
		return
	}

	sess.Mode = models.ModeNone
	sess.Stage = models.StageStep1Done
	sess.Stock = &models.StockContext{
		Name:          res.StockName,
		Ticker:        res.Ticker,
		Currency:      res.Currency,
		PriorAnalyses: []string{res.Analysis},
	}

	b.deliverAnalysis(ctx, chatID, analysis.FormatStepResult(res), afterStep1Keyboard())
}

func (b *Bot) runStep2(ctx context.Context, userID, chatID int64) {
	sess := b.sessions.Get(userID)
	if sess.Stock == nil || sess.Stock.Ticker == "" {
		b.send(ctx, chatID, missingStep2ContextMsg, interfaces.WithKeyboard(retryAnalyzeKeyboard()))
		return
	}

	b.send(ctx, chatID, step2ProgressMessage(sess.Stock.Name, sess.Stock.Ticker))

	res := b.narrator.Step2Income(ctx, sess.Stock)
	if !res.OK() {
		b.send(ctx, chatID, stepFailedMessage(sess.Stock.Name),
			interfaces.WithMarkdown(), interfaces.WithKeyboard(backToMenuKeyboard()))
		return
	}

	sess.Stage = models.StageStep2Done
	sess.Stock.PriorAnalyses = append(sess.Stock.PriorAnalyses, res.Analysis)

	b.deliverAnalysis(ctx, chatID, analysis.FormatStepResult(res), afterStep2Keyboard())
}

func (b *Bot) runStep3(ctx context.Context, userID, chatID int64) {
	sess := b.sessions.Get(userID)
	if sess.Stock == nil || sess.Stock.Ticker == "" {
		b.send(ctx, chatID, missingStep3ContextMsg, interfaces.WithKeyboard(retryAnalyzeKeyboard()))
		return
	}

	b.send(ctx, chatID, step3ProgressMessage(sess.Stock.Name, sess.Stock.Ticker))

	res := b.narrator.Step3BalanceCashFlow(ctx, sess.Stock)
	if !res.OK() {
		b.send(ctx, chatID, stepFailedMessage(sess.Stock.Name),
			interfaces.WithMarkdown(), interfaces.WithKeyboard(backToMenuKeyboard()))
		return
	}

	sess.Stage = models.StageStep3Done
	sess.Stock.PriorAnalyses = append(sess.Stock.PriorAnalyses, res.Analysis)

	b.deliverAnalysis(ctx, chatID, analysis.FormatStepResult(res), afterStep3Keyboard())
}

func (b *Bot) runFinal(ctx context.Context, userID, chatID int64) {
	sess := b.sessions.Get(userID)
	if sess.Stock == nil || len(sess.Stock.PriorAnalyses) == 0 {
		b.send(ctx, chatID, missingFinalContextMsg, interfaces.WithKeyboard(missingFinalKeyboard()))
		return
	}

	b.send(ctx, chatID, finalProgressMessage(sess.Stock.Name, sess.Stock.Ticker))

	res := b.narrator.FinalSummary(ctx, sess.Stock.Name, sess.Stock.Ticker, sess.Stock.PriorAnalyses)
	if !res.OK() {
		b.send(ctx, chatID, stepFailedMessage(sess.Stock.Name),
			interfaces.WithMarkdown(), interfaces.WithKeyboard(backToMenuKeyboard()))
		return
	}

	sess.Stage = models.StageFinalDone
	sess.Stock = nil

	b.deliverAnalysis(ctx, chatID, analysis.FormatStepResult(res), afterFinalKeyboard())
}

// deliverAnalysis sends a formatted analysis, splitting past the transport
// limit. The keyboard rides only on the last chunk.
func (b *Bot) deliverAnalysis(ctx context.Context, chatID int64, text string, keyboard [][]interfaces.InlineButton) {
	chunks := analysis.Chunk(text, analysis.TransportLimit)
	for i, chunk := range chunks {
		opts := []interfaces.SendOption{interfaces.WithMarkdown()}
		if i == len(chunks)-1 {
			opts = append(opts, interfaces.WithKeyboard(keyboard))
		}
		b.send(ctx, chatID, chunk, opts...)
	}
}

func (b *Bot) send(ctx context.Context, chatID int64, text string, opts ...interfaces.SendOption) {
	if err := b.tg.SendMessage(ctx, chatID, text, opts...); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Message delivery failed")
	}
}
