package interfaces

import (
	"context"

	"github.com/finbuddy/finbuddy/internal/models"
)

// MarketService serves the shared quote cache
type MarketService interface {
	// Quotes returns the cached snapshot, refreshing it first when older
	// than the TTL. A failed refresh returns an error and leaves the
	// cache untouched.
	Quotes(ctx context.Context) (*models.QuoteSnapshot, error)
}

// Narrator runs the four-step analysis pipeline. Each step fetches its own
// market data, renders it into a prompt, and returns the model's narration.
// Failed steps report through StepResult.Err rather than a bare error so the
// stock name and ticker survive for user-facing messages.
type Narrator interface {
	Step1Overview(ctx context.Context, ticker string) *models.StepResult
	Step2Income(ctx context.Context, stock *models.StockContext) *models.StepResult
	Step3BalanceCashFlow(ctx context.Context, stock *models.StockContext) *models.StepResult
	FinalSummary(ctx context.Context, stockName, ticker string, prior []string) *models.StepResult
}

// ChatService manages per-user free-chat sessions with the model
type ChatService interface {
	// Start opens a fresh session (discarding any prior one) and returns
	// the persona welcome message
	Start(ctx context.Context, userID int64) (string, error)

	// Send forwards user text into the session. On any failure it returns
	// a fixed apology string rather than an error.
	Send(ctx context.Context, userID int64, text string) string

	// Active reports whether the user has an open session
	Active(userID int64) bool

	// End discards the user's session
	End(userID int64)
}

// SessionStore owns per-user analysis pipeline state
type SessionStore interface {
	// Get returns the user's session, creating it on first use
	Get(userID int64) *models.UserSession

	// Delete removes the user's session
	Delete(userID int64)

	// Lock serializes event handling for one user; the returned func
	// releases the lock
	Lock(userID int64) func()
}
