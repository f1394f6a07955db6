package yahoo

// wrapped is yh-finance's {raw, fmt} value envelope. Raw is a pointer so
// an absent field is distinguishable from zero.
type wrapped struct {
	Raw *float64 `json:"raw"`
}

// val returns the raw value and whether it was present.
func (w wrapped) val() (float64, bool) {
	if w.Raw == nil {
		return 0, false
	}
	return *w.Raw, true
}

// orZero returns the raw value or zero when absent.
func (w wrapped) orZero() float64 {
	if w.Raw == nil {
		return 0
	}
	return *w.Raw
}

// ptr returns the raw value pointer, nil when absent.
func (w wrapped) ptr() *float64 {
	return w.Raw
}

// quotesResponse is the /market/v2/get-quotes payload. Quote fields here
// are plain numbers, unlike the module endpoints.
type quotesResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol                     string  `json:"symbol"`
			RegularMarketPrice         float64 `json:"regularMarketPrice"`
			RegularMarketChange        float64 `json:"regularMarketChange"`
			RegularMarketChangePercent float64 `json:"regularMarketChangePercent"`
			RegularMarketTime          int64   `json:"regularMarketTime"`
		} `json:"result"`
	} `json:"quoteResponse"`
}

// summaryResponse is the /stock/v2/get-summary payload
type summaryResponse struct {
	Price struct {
		LongName           string  `json:"longName"`
		Currency           string  `json:"currency"`
		RegularMarketPrice wrapped `json:"regularMarketPrice"`
		MarketCap          wrapped `json:"marketCap"`
	} `json:"price"`
	SummaryProfile struct {
		Sector              string `json:"sector"`
		Industry            string `json:"industry"`
		Country             string `json:"country"`
		Website             string `json:"website"`
		LongBusinessSummary string `json:"longBusinessSummary"`
	} `json:"summaryProfile"`
	SummaryDetail struct {
		FiftyTwoWeekLow  wrapped `json:"fiftyTwoWeekLow"`
		FiftyTwoWeekHigh wrapped `json:"fiftyTwoWeekHigh"`
		TrailingPE       wrapped `json:"trailingPE"`
		AverageVolume    wrapped `json:"averageVolume"`
	} `json:"summaryDetail"`
	DefaultKeyStatistics struct {
		PriceToBook wrapped `json:"priceToBook"`
	} `json:"defaultKeyStatistics"`
	FinancialData struct {
		CurrentPrice wrapped `json:"currentPrice"`
	} `json:"financialData"`
}

// incomeStatementEntry is one reporting period of an income statement
type incomeStatementEntry struct {
	EndDate struct {
		Fmt string `json:"fmt"`
	} `json:"endDate"`
	TotalRevenue wrapped `json:"totalRevenue"`
	GrossProfit  wrapped `json:"grossProfit"`
	NetIncome    wrapped `json:"netIncome"`
	EBIT         wrapped `json:"ebit"`
}

// financialsResponse is the /stock/v3/get-financials payload, trimmed to
// the modules the analysis pipeline consumes.
type financialsResponse struct {
	IncomeStatementHistory struct {
		IncomeStatementHistory []incomeStatementEntry `json:"incomeStatementHistory"`
	} `json:"incomeStatementHistory"`
	IncomeStatementHistoryQuarterly struct {
		IncomeStatementHistory []incomeStatementEntry `json:"incomeStatementHistory"`
	} `json:"incomeStatementHistoryQuarterly"`
	FinancialData struct {
		ReturnOnEquity wrapped `json:"returnOnEquity"`
		ReturnOnAssets wrapped `json:"returnOnAssets"`
		ProfitMargins  wrapped `json:"profitMargins"`
		DebtToEquity   wrapped `json:"debtToEquity"`
		CurrentRatio   wrapped `json:"currentRatio"`
	} `json:"financialData"`
	DefaultKeyStatistics struct {
		HeldPercentInsiders     wrapped `json:"heldPercentInsiders"`
		HeldPercentInstitutions wrapped `json:"heldPercentInstitutions"`
	} `json:"defaultKeyStatistics"`
	Price struct {
		LongName string `json:"longName"`
		Currency string `json:"currency"`
	} `json:"price"`
}

// balanceSheetEntry is one reporting period of a balance sheet
type balanceSheetEntry struct {
	EndDate struct {
		Fmt string `json:"fmt"`
	} `json:"endDate"`
	TotalAssets            wrapped `json:"totalAssets"`
	TotalLiab              wrapped `json:"totalLiab"`
	TotalCurrentAssets     wrapped `json:"totalCurrentAssets"`
	TotalCurrentLiab       wrapped `json:"totalCurrentLiabilities"`
	TotalStockholderEquity wrapped `json:"totalStockholderEquity"`
	Cash                   wrapped `json:"cash"`
	ShortLongTermDebt      wrapped `json:"shortLongTermDebt"`
	LongTermDebt           wrapped `json:"longTermDebt"`
	NetDebt                wrapped `json:"netDebt"`
}

// balanceSheetResponse is the /stock/v2/get-balance-sheet payload
type balanceSheetResponse struct {
	BalanceSheetHistory struct {
		BalanceSheetStatements []balanceSheetEntry `json:"balanceSheetStatements"`
	} `json:"balanceSheetHistory"`
	Price struct {
		LongName string `json:"longName"`
		Currency string `json:"currency"`
	} `json:"price"`
}

// cashFlowEntry is one reporting period of a cash-flow statement
type cashFlowEntry struct {
	EndDate struct {
		Fmt string `json:"fmt"`
	} `json:"endDate"`
	OperatingCashFlow  wrapped `json:"totalCashFromOperatingActivities"`
	InvestingCashFlow  wrapped `json:"totalCashflowsFromInvestingActivities"`
	FinancingCashFlow  wrapped `json:"totalCashFromFinancingActivities"`
	EndCashPosition    wrapped `json:"changeInCash"`
	CapitalExpenditure wrapped `json:"capitalExpenditures"`
}

// cashFlowResponse is the /stock/v2/get-cash-flow payload
type cashFlowResponse struct {
	CashflowStatementHistory struct {
		CashflowStatements []cashFlowEntry `json:"cashflowStatements"`
	} `json:"cashflowStatementHistory"`
}
