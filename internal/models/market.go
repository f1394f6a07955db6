// Package models defines data structures for FinBuddy
package models

import (
	"time"
)

// Quote holds a single symbol's snapshot from the batch quote endpoint
type Quote struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Change    float64   `json:"change"`
	ChangePct float64   `json:"change_percent"`
	Timestamp time.Time `json:"timestamp"`
}

// QuoteSnapshot is one cached batch of quotes keyed by symbol
type QuoteSnapshot struct {
	Quotes    map[string]Quote `json:"quotes"`
	FetchedAt time.Time        `json:"fetched_at"`
}

// Get returns the quote for a symbol and whether it was present.
func (s *QuoteSnapshot) Get(symbol string) (Quote, bool) {
	q, ok := s.Quotes[symbol]
	return q, ok
}

// Mover is one constituent ranked by percentage change
type Mover struct {
	Name      string  `json:"name"`
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	ChangePct float64 `json:"change_percent"`
}

// Breadth counts advancing, declining and unchanged constituents.
// A move within ±0.1% counts as unchanged.
type Breadth struct {
	Advances  int `json:"advances"`
	Declines  int `json:"declines"`
	Unchanged int `json:"unchanged"`
}

// Movers holds the top gainers and losers plus market breadth
type Movers struct {
	Gainers []Mover `json:"gainers"`
	Losers  []Mover `json:"losers"`
	Breadth Breadth `json:"breadth"`
}
