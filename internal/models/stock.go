package models

import "errors"

// ErrTickerNotFound indicates the market-data provider has no data for a
// symbol. Match with errors.Is.
var ErrTickerNotFound = errors.New("ticker not found")

// StockOverview contains the fundamental snapshot shown in analysis step 1
type StockOverview struct {
	Name            string  `json:"name"`
	Ticker          string  `json:"ticker"`
	Price           float64 `json:"price"`
	Currency        string  `json:"currency"`
	MarketCap       float64 `json:"market_cap"`
	Low52Week       float64 `json:"52_week_low"`
	High52Week      float64 `json:"52_week_high"`
	PE              float64 `json:"pe_ratio"`
	PB              float64 `json:"pb_ratio"`
	AvgVolume       float64 `json:"avg_volume"`
	Sector          string  `json:"sector"`
	Industry        string  `json:"industry"`
	Country         string  `json:"country"`
	Website         string  `json:"website"`
	BusinessSummary string  `json:"business_summary"`
}

// StatementPeriod is one reporting period of a financial statement,
// keyed by line-item name.
type StatementPeriod struct {
	Label string             `json:"label"`
	Items map[string]float64 `json:"items"`
}

// Statement is a financial-statement table: up to four periods, most
// recent first.
type Statement struct {
	Title   string            `json:"title"`
	Periods []StatementPeriod `json:"periods"`
}

// Empty reports whether the statement carries no periods at all.
func (s *Statement) Empty() bool {
	return s == nil || len(s.Periods) == 0
}

// KeyRatios holds the ratio block attached to the step-2 report
type KeyRatios struct {
	ReturnOnEquity      *float64 `json:"return_on_equity"`
	ReturnOnAssets      *float64 `json:"return_on_assets"`
	ProfitMargin        *float64 `json:"profit_margin"`
	DebtToEquity        *float64 `json:"debt_to_equity"`
	CurrentRatio        *float64 `json:"current_ratio"`
	HeldPctInsiders     *float64 `json:"held_percent_insiders"`
	HeldPctInstitutions *float64 `json:"held_percent_institutions"`
}

// IncomeStatements is the step-2 payload: annual and quarterly income
// statements plus key ratios.
type IncomeStatements struct {
	StockName string     `json:"stock_name"`
	Ticker    string     `json:"ticker"`
	Currency  string     `json:"currency"`
	Annual    *Statement `json:"annual"`
	Quarterly *Statement `json:"quarterly"`
	Ratios    KeyRatios  `json:"ratios"`
}

// BalanceAndCashFlow is the step-3 payload: annual balance sheet and
// cash-flow statement.
type BalanceAndCashFlow struct {
	StockName    string     `json:"stock_name"`
	Ticker       string     `json:"ticker"`
	Currency     string     `json:"currency"`
	BalanceSheet *Statement `json:"balance_sheet"`
	CashFlow     *Statement `json:"cash_flow"`
}
