package market

import (
	"fmt"
	"strings"
	"time"

	"github.com/finbuddy/finbuddy/internal/common"
	"github.com/finbuddy/finbuddy/internal/models"
)

const vixName = "INDIA VIX"

// VIXLevel classifies India VIX into a volatility band.
func VIXLevel(vix float64) string {
	switch {
	case vix < 15:
		return "LOW"
	case vix < 25:
		return "MODERATE"
	default:
		return "HIGH"
	}
}

func vixEmoji(vix float64) string {
	switch {
	case vix < 15:
		return "🟢"
	case vix < 25:
		return "🟡"
	default:
		return "🔴"
	}
}

func changeEmoji(change float64) string {
	if change < 0 {
		return "🔴"
	}
	return "🟢"
}

func changeSign(change float64) string {
	if change < 0 {
		return "-"
	}
	return "+"
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// FormatSnapshot renders the cached quote snapshot into the multi-section
// market overview message. Symbols missing from the snapshot render as
// "Data unavailable" rather than dropping the row.
func FormatSnapshot(universe common.MarketConfig, snap *models.QuoteSnapshot, now time.Time) string {
	var b strings.Builder

	age := now.Sub(snap.FetchedAt)

	fmt.Fprintf(&b, "📊🇮🇳 *INDIAN MARKET SNAPSHOT* 🇮🇳📊\n")
	b.WriteString("-----------------------------------\n")
	fmt.Fprintf(&b, "As of %s at %s IST\n", snap.FetchedAt.Format("02 Jan 2006"), snap.FetchedAt.Format("03:04 PM"))
	fmt.Fprintf(&b, "⏰ Data delayed by %d mins\n\n", int(age.Minutes()))

	// Major indices, VIX first with its volatility band
	b.WriteString("📈 *MAJOR INDICES*\n-------------------")
	for _, e := range universe.Indices {
		if e.Name != vixName {
			continue
		}
		if q, ok := snap.Get(e.Symbol); ok {
			fmt.Fprintf(&b, "\n• *%s* %s: %.2f (%s Volatility)", e.Name, vixEmoji(q.Price), q.Price, VIXLevel(q.Price))
		} else {
			fmt.Fprintf(&b, "\n• *%s*: Data unavailable", e.Name)
		}
	}
	for _, e := range universe.Indices {
		if e.Name == vixName {
			continue
		}
		q, ok := snap.Get(e.Symbol)
		if !ok {
			fmt.Fprintf(&b, "\n• *%s*: Data unavailable", e.Name)
			continue
		}
		fmt.Fprintf(&b, "\n• *%s*: ₹%.2f  %s (%s%.2f, %s%.2f%%)",
			e.Name, q.Price, changeEmoji(q.Change), changeSign(q.Change), abs(q.Change), changeSign(q.Change), abs(q.ChangePct))
	}

	// Sector and market-cap indices
	b.WriteString("\n\n📊 *SECTOR & MARKET CAP*\n-------------------")
	for _, e := range universe.Sectors {
		q, ok := snap.Get(e.Symbol)
		if !ok {
			fmt.Fprintf(&b, "\n• *%s*: Data unavailable", e.Name)
			continue
		}
		fmt.Fprintf(&b, "\n%s *%s*: ₹%.2f  (%s%.2f, %s%.2f%%)",
			changeEmoji(q.Change), e.Name, q.Price, changeSign(q.Change), abs(q.Change), changeSign(q.Change), abs(q.ChangePct))
	}

	// Top movers over the configured constituents
	movers := TopMovers(snap, universe.Constituents)

	b.WriteString("\n\n🔝 *TOP GAINERS & LOSERS (SENSEX)* 🔝\n-----------------------------------")
	b.WriteString("\n\n*TOP GAINERS:*")
	for _, m := range movers.Gainers {
		fmt.Fprintf(&b, "\n🟢 *%s*: ₹%.2f  (+%.2f%%)", m.Name, m.Price, m.ChangePct)
	}
	b.WriteString("\n\n*TOP LOSERS:*")
	for _, m := range movers.Losers {
		fmt.Fprintf(&b, "\n🔴 *%s*: ₹%.2f  (%.2f%%)", m.Name, m.Price, m.ChangePct)
	}

	// Commodities and currencies
	b.WriteString("\n\n💰 *COMMODITIES & CURRENCIES*\n-------------------")
	for _, e := range universe.Commodities {
		q, ok := snap.Get(e.Symbol)
		if !ok {
			fmt.Fprintf(&b, "\n• *%s*: Data unavailable", e.Name)
			continue
		}
		currency := "₹"
		if strings.Contains(e.Name, "CRUDE") {
			currency = "$"
		}
		fmt.Fprintf(&b, "\n• *%s*: %s%.2f  %s (%s%.2f%%)",
			e.Name, currency, q.Price, changeEmoji(q.Change), changeSign(q.Change), abs(q.ChangePct))
	}
	for _, e := range universe.Currencies {
		q, ok := snap.Get(e.Symbol)
		if !ok {
			fmt.Fprintf(&b, "\n• *%s*: Data unavailable", e.Name)
			continue
		}
		fmt.Fprintf(&b, "\n• *%s*: ₹%.2f  %s (%s%.2f%%)",
			e.Name, q.Price, changeEmoji(q.Change), changeSign(q.Change), abs(q.ChangePct))
	}

	// Global indices, percentage only
	b.WriteString("\n\n🌎 *GLOBAL INDICES*\n-------------------")
	for _, e := range universe.Global {
		q, ok := snap.Get(e.Symbol)
		if !ok {
			fmt.Fprintf(&b, "\n• *%s*: Data unavailable", e.Name)
			continue
		}
		fmt.Fprintf(&b, "\n• *%s*: %s %s%.2f%%",
			e.Name, changeEmoji(q.Change), changeSign(q.Change), abs(q.ChangePct))
	}

	// Breadth
	fmt.Fprintf(&b, "\n\n📊 *SENSEX MARKET BREADTH* 📊\n---------------------------")
	fmt.Fprintf(&b, "\nAdvances: *%d* | Declines: *%d* | Unchanged: *%d*",
		movers.Breadth.Advances, movers.Breadth.Declines, movers.Breadth.Unchanged)

	b.WriteString("\n\n-----------------------------------\n_Data sourced from Yahoo Finance. May be delayed.\nDisclaimer: For informational purposes only. Not financial advice._")

	return b.String()
}
