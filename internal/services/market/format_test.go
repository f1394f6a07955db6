package market

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/finbuddy/finbuddy/internal/common"
	"github.com/finbuddy/finbuddy/internal/models"
)

func TestVIXLevel(t *testing.T) {
	assert.Equal(t, "LOW", VIXLevel(12.5))
	assert.Equal(t, "MODERATE", VIXLevel(15))
	assert.Equal(t, "MODERATE", VIXLevel(24.99))
	assert.Equal(t, "HIGH", VIXLevel(25))
	assert.Equal(t, "HIGH", VIXLevel(40))
}

func snapshotUniverse() common.MarketConfig {
	return common.MarketConfig{
		Indices: []common.SymbolEntry{
			{Name: "NIFTY 50", Symbol: "^NSEI"},
			{Name: "INDIA VIX", Symbol: "^INDIAVIX"},
		},
		Sectors: []common.SymbolEntry{
			{Name: "NIFTY IT", Symbol: "^CNXIT"},
		},
		Global: []common.SymbolEntry{
			{Name: "S&P 500", Symbol: "^GSPC"},
		},
		Commodities: []common.SymbolEntry{
			{Name: "GOLD", Symbol: "GC=F"},
			{Name: "CRUDE OIL (BRENT)", Symbol: "BZ=F"},
		},
		Currencies: []common.SymbolEntry{
			{Name: "USD/INR", Symbol: "INR=X"},
		},
		Constituents: []string{"RELIANCE.NS", "TCS.NS"},
	}
}

func TestFormatSnapshot(t *testing.T) {
	fetched := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)
	snap := &models.QuoteSnapshot{
		FetchedAt: fetched,
		Quotes: map[string]models.Quote{
			"^NSEI":       {Symbol: "^NSEI", Price: 24120.50, Change: 120.30, ChangePct: 0.50},
			"^INDIAVIX":   {Symbol: "^INDIAVIX", Price: 13.20},
			"^CNXIT":      {Symbol: "^CNXIT", Price: 37500.10, Change: -210.40, ChangePct: -0.56},
			"^GSPC":       {Symbol: "^GSPC", Change: 12.2, ChangePct: 0.23},
			"GC=F":        {Symbol: "GC=F", Price: 71234.00, Change: 150, ChangePct: 0.21},
			"BZ=F":        {Symbol: "BZ=F", Price: 82.11, Change: -0.4, ChangePct: -0.48},
			"INR=X":       {Symbol: "INR=X", Price: 87.45, Change: 0.12, ChangePct: 0.14},
			"RELIANCE.NS": {Symbol: "RELIANCE.NS", Price: 2950, ChangePct: 1.2},
			"TCS.NS":      {Symbol: "TCS.NS", Price: 4100, ChangePct: -0.8},
		},
	}

	got := FormatSnapshot(snapshotUniverse(), snap, fetched.Add(3*time.Minute))

	assert.Contains(t, got, "INDIAN MARKET SNAPSHOT")
	assert.Contains(t, got, "Data delayed by 3 mins")
	// VIX renders first among indices, with its band.
	vixIdx := strings.Index(got, "INDIA VIX")
	niftyIdx := strings.Index(got, "NIFTY 50")
	assert.Less(t, vixIdx, niftyIdx)
	assert.Contains(t, got, "(LOW Volatility)")
	assert.Contains(t, got, "*NIFTY 50*: ₹24120.50")
	// Crude quotes in dollars, gold in rupees.
	assert.Contains(t, got, "*CRUDE OIL (BRENT)*: $82.11")
	assert.Contains(t, got, "*GOLD*: ₹71234.00")
	// Globals render percentage only.
	assert.Contains(t, got, "*S&P 500*: 🟢 +0.23%")
	assert.NotContains(t, got, "S&P 500*: ₹")
	// Movers and breadth over the two constituents.
	assert.Contains(t, got, "*RELIANCE*: ₹2950.00  (+1.20%)")
	assert.Contains(t, got, "*TCS*: ₹4100.00  (-0.80%)")
	assert.Contains(t, got, "Advances: *1* | Declines: *1* | Unchanged: *0*")
	assert.Contains(t, got, "Not financial advice")
}

func TestFormatSnapshotMissingSymbols(t *testing.T) {
	fetched := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)
	snap := &models.QuoteSnapshot{FetchedAt: fetched, Quotes: map[string]models.Quote{}}

	got := FormatSnapshot(snapshotUniverse(), snap, fetched)

	// Every configured row still renders, flagged as unavailable.
	assert.Contains(t, got, "*NIFTY 50*: Data unavailable")
	assert.Contains(t, got, "*INDIA VIX*: Data unavailable")
	assert.Contains(t, got, "*NIFTY IT*: Data unavailable")
	assert.Contains(t, got, "*GOLD*: Data unavailable")
	assert.Contains(t, got, "*USD/INR*: Data unavailable")
	assert.Contains(t, got, "*S&P 500*: Data unavailable")
	assert.Contains(t, got, "Advances: *0* | Declines: *0* | Unchanged: *0*")
}
