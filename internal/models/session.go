package models

// Mode governs how free text from a user is routed
type Mode int

const (
	// ModeNone routes free text to the chat handler
	ModeNone Mode = iota
	// ModeAwaitingTicker treats the next free text as a ticker symbol
	ModeAwaitingTicker
)

// Stage tracks the user's position in the four-step analysis pipeline
type Stage int

const (
	StageMenu Stage = iota
	StageAwaitingTicker
	StageStep1Done
	StageStep2Done
	StageStep3Done
	StageFinalDone
)

// StockContext is the resolved stock a user is analyzing. It is set only
// after a successful step-1 fetch and cleared on back-to-menu or after the
// final step.
type StockContext struct {
	Name     string
	Ticker   string
	Currency string
	Overview *StockOverview
	// PriorAnalyses accumulates the step-1..3 narration texts so the final
	// verdict prompt can carry the full context forward explicitly.
	PriorAnalyses []string
}

// UserSession is the per-user analysis pipeline state. One per active
// user; lives from first interaction until reset or process restart.
type UserSession struct {
	UserID int64
	Mode   Mode
	Stage  Stage
	Stock  *StockContext
}

// Reset returns the session to the main menu and drops the stock context.
func (s *UserSession) Reset() {
	s.Mode = ModeNone
	s.Stage = StageMenu
	s.Stock = nil
}

// StepResult is the outcome of one narration step. Either Analysis is set
// and Err is nil, or Err is set; StockName and Ticker are preserved when
// known so failures can still be labeled.
type StepResult struct {
	Analysis  string
	StockName string
	Ticker    string
	Currency  string
	Err       error
}

// OK reports whether the step produced an analysis.
func (r *StepResult) OK() bool {
	return r != nil && r.Err == nil
}
