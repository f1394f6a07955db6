package analysis

import (
	"fmt"
	"strings"

	"github.com/finbuddy/finbuddy/internal/models"
)

// renderOverview serializes a stock overview into the plain-text block the
// step 1 prompt expects. Large INR amounts are expressed in crores so the
// model reasons about Indian market-cap classes correctly.
func renderOverview(ov *models.StockOverview) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Stock Name: %s\n", ov.Name)
	fmt.Fprintf(&b, "Ticker: %s\n", ov.Ticker)
	fmt.Fprintf(&b, "Current Price: %s\n", money(ov.Price, ov.Currency))
	fmt.Fprintf(&b, "Market Cap: %s\n", money(ov.MarketCap, ov.Currency))
	fmt.Fprintf(&b, "52 Week High: %s\n", money(ov.High52Week, ov.Currency))
	fmt.Fprintf(&b, "52 Week Low: %s\n", money(ov.Low52Week, ov.Currency))
	fmt.Fprintf(&b, "PE Ratio: %s\n", ratioValue(ov.PE))
	fmt.Fprintf(&b, "PB Ratio: %s\n", ratioValue(ov.PB))
	fmt.Fprintf(&b, "Average Volume: %s\n", count(ov.AvgVolume))
	fmt.Fprintf(&b, "Sector: %s\n", orNA(ov.Sector))
	fmt.Fprintf(&b, "Industry: %s\n", orNA(ov.Industry))
	fmt.Fprintf(&b, "Country: %s\n", orNA(ov.Country))
	fmt.Fprintf(&b, "Website: %s\n", orNA(ov.Website))
	fmt.Fprintf(&b, "Business Summary: %s\n", orNA(ov.BusinessSummary))
	return b.String()
}

// renderIncomeReport builds the step 2 report: annual and quarterly income
// statement tables followed by the key-ratio block.
func renderIncomeReport(fin *models.IncomeStatements) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Company: %s (%s)\n\n", fin.StockName, fin.Ticker)
	b.WriteString(renderStatementTable(fin.Annual, fin.Currency))
	b.WriteString("\n")
	b.WriteString(renderStatementTable(fin.Quarterly, fin.Currency))
	b.WriteString("\nKEY FINANCIAL RATIOS\n")
	b.WriteString(renderRatios(&fin.Ratios))
	return b.String()
}

// renderBalanceAndCashFlow builds the step 3 report from the balance sheet
// and cash flow tables.
func renderBalanceAndCashFlow(data *models.BalanceAndCashFlow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Company: %s (%s)\n\n", data.StockName, data.Ticker)
	b.WriteString(renderStatementTable(data.BalanceSheet, data.Currency))
	b.WriteString("\n")
	b.WriteString(renderStatementTable(data.CashFlow, data.Currency))
	return b.String()
}

func renderStatementTable(st *models.Statement, currency string) string {
	if st == nil {
		return "No data available.\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", strings.ToUpper(st.Title))
	if st.Empty() {
		b.WriteString("No data available.\n")
		return b.String()
	}

	// Collect the union of line items in first-seen order so every period
	// renders the same rows.
	var items []string
	seen := make(map[string]bool)
	for _, p := range st.Periods {
		for item := range p.Items {
			if !seen[item] {
				seen[item] = true
				items = append(items, item)
			}
		}
	}

	for _, p := range st.Periods {
		fmt.Fprintf(&b, "\nPeriod: %s\n", p.Label)
		for _, item := range items {
			v, ok := p.Items[item]
			if !ok {
				fmt.Fprintf(&b, "  %s: N/A\n", item)
				continue
			}
			fmt.Fprintf(&b, "  %s: %s\n", item, money(v, currency))
		}
	}
	return b.String()
}

func renderRatios(r *models.KeyRatios) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  Return on Equity: %s\n", percent(r.ReturnOnEquity))
	fmt.Fprintf(&b, "  Return on Assets: %s\n", percent(r.ReturnOnAssets))
	fmt.Fprintf(&b, "  Profit Margin: %s\n", percent(r.ProfitMargin))
	// Yahoo reports debt-to-equity as a percentage figure; normalize to a
	// plain ratio before rendering.
	if r.DebtToEquity != nil {
		fmt.Fprintf(&b, "  Debt to Equity: %.2f\n", *r.DebtToEquity/100)
	} else {
		b.WriteString("  Debt to Equity: N/A\n")
	}
	fmt.Fprintf(&b, "  Current Ratio: %s\n", ratio(r.CurrentRatio))
	fmt.Fprintf(&b, "  Held by Insiders: %s\n", percent(r.HeldPctInsiders))
	fmt.Fprintf(&b, "  Held by Institutions: %s\n", percent(r.HeldPctInstitutions))
	return b.String()
}

// money formats an amount for prompt text. INR values large enough are
// expressed in crores or lakhs, everything else gets comma grouping.
func money(v float64, currency string) string {
	if v == 0 {
		return "N/A"
	}
	if strings.EqualFold(currency, "INR") {
		switch {
		case v >= 1e7 || v <= -1e7:
			return fmt.Sprintf("%.2f Cr. INR", v/1e7)
		case v >= 1e5 || v <= -1e5:
			return fmt.Sprintf("%.2f Lakh INR", v/1e5)
		}
		return fmt.Sprintf("%s INR", comma(v))
	}
	if currency == "" {
		return comma(v)
	}
	return fmt.Sprintf("%s %s", comma(v), currency)
}

func ratio(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *v)
}

func ratioValue(v float64) string {
	if v == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", v)
}

func percent(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", *v*100)
}

func count(v float64) string {
	if v == 0 {
		return "N/A"
	}
	return comma(v)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// comma renders a number with thousands separators, keeping up to two
// decimal places when the value is not integral.
func comma(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	intPart := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	out := b.String() + frac
	if neg {
		return "-" + out
	}
	return out
}
