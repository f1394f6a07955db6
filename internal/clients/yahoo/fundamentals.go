package yahoo

import (
	"context"
	"fmt"
	"net/url"

	"github.com/finbuddy/finbuddy/internal/models"
)

const maxPeriods = 4

// Display names for statement line items. The narrator renders tables with
// these labels, so they match what the prompts reference.
const (
	itemTotalRevenue = "Total Revenue"
	itemGrossProfit  = "Gross Profit"
	itemNetIncome    = "Net Income"
	itemEBIT         = "EBIT"

	itemTotalAssets        = "Total Assets"
	itemCurrentAssets      = "Current Assets"
	itemTotalLiabilities   = "Total Liabilities"
	itemCurrentLiabilities = "Current Liabilities"
	itemStockholdersEquity = "Stockholders Equity"
	itemCash               = "Cash And Cash Equivalents"
	itemShortTermDebt      = "Short Term Debt"
	itemLongTermDebt       = "Long Term Debt"
	itemNetDebt            = "Net Debt"

	itemOperatingCashFlow  = "Operating Cash Flow"
	itemInvestingCashFlow  = "Investing Cash Flow"
	itemFinancingCashFlow  = "Financing Cash Flow"
	itemEndCashPosition    = "End Cash Position"
	itemCapitalExpenditure = "Capital Expenditure"
	itemFreeCashFlow       = "Free Cash Flow"
)

// GetOverview retrieves the fundamental overview for a ticker. A response
// with no long name means the provider does not recognize the symbol and
// yields ErrTickerNotFound.
func (c *Client) GetOverview(ctx context.Context, ticker string) (*models.StockOverview, error) {
	params := url.Values{}
	params.Set("symbol", ticker)

	var resp summaryResponse
	if err := c.get(ctx, "/stock/v2/get-summary", params, &resp); err != nil {
		return nil, err
	}

	if resp.Price.LongName == "" {
		return nil, fmt.Errorf("no data for ticker %q: %w", ticker, ErrTickerNotFound)
	}

	price := resp.FinancialData.CurrentPrice.orZero()
	if price == 0 {
		price = resp.Price.RegularMarketPrice.orZero()
	}

	currency := resp.Price.Currency
	if currency == "" {
		currency = "INR"
	}

	return &models.StockOverview{
		Name:            resp.Price.LongName,
		Ticker:          ticker,
		Price:           price,
		Currency:        currency,
		MarketCap:       resp.Price.MarketCap.orZero(),
		Low52Week:       resp.SummaryDetail.FiftyTwoWeekLow.orZero(),
		High52Week:      resp.SummaryDetail.FiftyTwoWeekHigh.orZero(),
		PE:              resp.SummaryDetail.TrailingPE.orZero(),
		PB:              resp.DefaultKeyStatistics.PriceToBook.orZero(),
		AvgVolume:       resp.SummaryDetail.AverageVolume.orZero(),
		Sector:          resp.SummaryProfile.Sector,
		Industry:        resp.SummaryProfile.Industry,
		Country:         resp.SummaryProfile.Country,
		Website:         resp.SummaryProfile.Website,
		BusinessSummary: resp.SummaryProfile.LongBusinessSummary,
	}, nil
}

// GetIncomeStatements retrieves annual and quarterly income statements
// plus key ratios (up to 4 periods each).
func (c *Client) GetIncomeStatements(ctx context.Context, ticker string) (*models.IncomeStatements, error) {
	params := url.Values{}
	params.Set("symbol", ticker)

	var resp financialsResponse
	if err := c.get(ctx, "/stock/v3/get-financials", params, &resp); err != nil {
		return nil, err
	}

	name := resp.Price.LongName
	if name == "" {
		name = ticker
	}

	return &models.IncomeStatements{
		StockName: name,
		Ticker:    ticker,
		Currency:  resp.Price.Currency,
		Annual:    incomeTable("Annual Income Statement (Last 4 Years)", resp.IncomeStatementHistory.IncomeStatementHistory),
		Quarterly: incomeTable("Quarterly Income Statement (Last 4 Quarters)", resp.IncomeStatementHistoryQuarterly.IncomeStatementHistory),
		Ratios: models.KeyRatios{
			ReturnOnEquity:      resp.FinancialData.ReturnOnEquity.ptr(),
			ReturnOnAssets:      resp.FinancialData.ReturnOnAssets.ptr(),
			ProfitMargin:        resp.FinancialData.ProfitMargins.ptr(),
			DebtToEquity:        resp.FinancialData.DebtToEquity.ptr(),
			CurrentRatio:        resp.FinancialData.CurrentRatio.ptr(),
			HeldPctInsiders:     resp.DefaultKeyStatistics.HeldPercentInsiders.ptr(),
			HeldPctInstitutions: resp.DefaultKeyStatistics.HeldPercentInstitutions.ptr(),
		},
	}, nil
}

// GetBalanceAndCashFlow retrieves the annual balance sheet and cash flow
// statement (up to 4 periods each).
func (c *Client) GetBalanceAndCashFlow(ctx context.Context, ticker string) (*models.BalanceAndCashFlow, error) {
	params := url.Values{}
	params.Set("symbol", ticker)

	var bs balanceSheetResponse
	if err := c.get(ctx, "/stock/v2/get-balance-sheet", params, &bs); err != nil {
		return nil, err
	}

	if bs.Price.LongName == "" {
		return nil, fmt.Errorf("no data for ticker %q: %w", ticker, ErrTickerNotFound)
	}

	var cf cashFlowResponse
	if err := c.get(ctx, "/stock/v2/get-cash-flow", params, &cf); err != nil {
		return nil, err
	}

	return &models.BalanceAndCashFlow{
		StockName:    bs.Price.LongName,
		Ticker:       ticker,
		Currency:     bs.Price.Currency,
		BalanceSheet: balanceSheetTable(bs.BalanceSheetHistory.BalanceSheetStatements),
		CashFlow:     cashFlowTable(cf.CashflowStatementHistory.CashflowStatements),
	}, nil
}

func incomeTable(title string, entries []incomeStatementEntry) *models.Statement {
	st := &models.Statement{Title: title}
	for i, e := range entries {
		if i >= maxPeriods {
			break
		}
		period := models.StatementPeriod{
			Label: e.EndDate.Fmt,
			Items: map[string]float64{},
		}
		setItem(period.Items, itemTotalRevenue, e.TotalRevenue)
		setItem(period.Items, itemGrossProfit, e.GrossProfit)
		setItem(period.Items, itemNetIncome, e.NetIncome)
		setItem(period.Items, itemEBIT, e.EBIT)
		st.Periods = append(st.Periods, period)
	}
	return st
}

func balanceSheetTable(entries []balanceSheetEntry) *models.Statement {
	st := &models.Statement{Title: "Balance Sheet (Annual)"}
	for i, e := range entries {
		if i >= maxPeriods {
			break
		}
		period := models.StatementPeriod{
			Label: e.EndDate.Fmt,
			Items: map[string]float64{},
		}
		setItem(period.Items, itemTotalAssets, e.TotalAssets)
		setItem(period.Items, itemCurrentAssets, e.TotalCurrentAssets)
		setItem(period.Items, itemTotalLiabilities, e.TotalLiab)
		setItem(period.Items, itemCurrentLiabilities, e.TotalCurrentLiab)
		setItem(period.Items, itemStockholdersEquity, e.TotalStockholderEquity)
		setItem(period.Items, itemCash, e.Cash)
		setItem(period.Items, itemShortTermDebt, e.ShortLongTermDebt)
		setItem(period.Items, itemLongTermDebt, e.LongTermDebt)
		setItem(period.Items, itemNetDebt, e.NetDebt)
		st.Periods = append(st.Periods, period)
	}
	return st
}

func cashFlowTable(entries []cashFlowEntry) *models.Statement {
	st := &models.Statement{Title: "Cash Flow Statement (Annual)"}
	for i, e := range entries {
		if i >= maxPeriods {
			break
		}
		period := models.StatementPeriod{
			Label: e.EndDate.Fmt,
			Items: map[string]float64{},
		}
		setItem(period.Items, itemOperatingCashFlow, e.OperatingCashFlow)
		setItem(period.Items, itemInvestingCashFlow, e.InvestingCashFlow)
		setItem(period.Items, itemFinancingCashFlow, e.FinancingCashFlow)
		setItem(period.Items, itemEndCashPosition, e.EndCashPosition)
		setItem(period.Items, itemCapitalExpenditure, e.CapitalExpenditure)

		// Free cash flow is not reported directly; derive it when both
		// components are present (capex is reported as a negative number).
		if op, ok := e.OperatingCashFlow.val(); ok {
			if capex, ok := e.CapitalExpenditure.val(); ok {
				period.Items[itemFreeCashFlow] = op + capex
			}
		}
		st.Periods = append(st.Periods, period)
	}
	return st
}

func setItem(items map[string]float64, name string, w wrapped) {
	if v, ok := w.val(); ok {
		items[name] = v
	}
}
