package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbuddy/finbuddy/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("test-key", WithBaseURL(server.URL))
}

func TestGetQuotes(t *testing.T) {
	var gotPath, gotSymbols, gotRegion, gotKey, gotHost string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSymbols = r.URL.Query().Get("symbols")
		gotRegion = r.URL.Query().Get("region")
		gotKey = r.Header.Get("X-RapidAPI-Key")
		gotHost = r.Header.Get("X-RapidAPI-Host")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"quoteResponse": {
				"result": [
					{"symbol": "^NSEI", "regularMarketPrice": 24120.456, "regularMarketChange": 120.304, "regularMarketChangePercent": 0.501, "regularMarketTime": 1756202400},
					{"symbol": "RELIANCE.NS", "regularMarketPrice": 2950.0, "regularMarketChange": -12.5, "regularMarketChangePercent": -0.421}
				]
			}
		}`))
	})

	quotes, err := client.GetQuotes(context.Background(), []string{"^NSEI", "RELIANCE.NS"})
	require.NoError(t, err)

	assert.Equal(t, "/market/v2/get-quotes", gotPath)
	assert.Equal(t, "^NSEI,RELIANCE.NS", gotSymbols)
	assert.Equal(t, "IN", gotRegion)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, DefaultHost, gotHost)

	require.Len(t, quotes, 2)
	nifty := quotes["^NSEI"]
	assert.Equal(t, 24120.46, nifty.Price)
	assert.Equal(t, 120.3, nifty.Change)
	assert.Equal(t, 0.5, nifty.ChangePct)

	reliance := quotes["RELIANCE.NS"]
	assert.Equal(t, -0.42, reliance.ChangePct)
}

func TestGetQuotesAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("rate limit exceeded"))
	})

	_, err := client.GetQuotes(context.Background(), []string{"^NSEI"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "/market/v2/get-quotes", apiErr.Endpoint)
}

func TestGetOverview(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stock/v2/get-summary", r.URL.Path)
		assert.Equal(t, "RELIANCE.NS", r.URL.Query().Get("symbol"))

		w.Write([]byte(`{
			"price": {
				"longName": "Reliance Industries Limited",
				"currency": "INR",
				"regularMarketPrice": {"raw": 2948.10},
				"marketCap": {"raw": 19960000000000}
			},
			"summaryProfile": {
				"sector": "Energy",
				"industry": "Oil & Gas Refining & Marketing",
				"country": "India",
				"website": "https://www.ril.com",
				"longBusinessSummary": "Reliance Industries Limited engages in..."
			},
			"summaryDetail": {
				"fiftyTwoWeekLow": {"raw": 2220.3},
				"fiftyTwoWeekHigh": {"raw": 3024.9},
				"trailingPE": {"raw": 28.4},
				"averageVolume": {"raw": 5400000}
			},
			"defaultKeyStatistics": {"priceToBook": {"raw": 2.1}},
			"financialData": {"currentPrice": {"raw": 2950.40}}
		}`))
	})

	ov, err := client.GetOverview(context.Background(), "RELIANCE.NS")
	require.NoError(t, err)

	assert.Equal(t, "Reliance Industries Limited", ov.Name)
	assert.Equal(t, "RELIANCE.NS", ov.Ticker)
	// financialData.currentPrice wins over price.regularMarketPrice.
	assert.Equal(t, 2950.40, ov.Price)
	assert.Equal(t, "INR", ov.Currency)
	assert.Equal(t, 3024.9, ov.High52Week)
	assert.Equal(t, 28.4, ov.PE)
	assert.Equal(t, 2.1, ov.PB)
	assert.Equal(t, "Energy", ov.Sector)
}

func TestGetOverviewPriceFallback(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"price": {
				"longName": "Tata Consultancy Services Limited",
				"regularMarketPrice": {"raw": 4100.5}
			}
		}`))
	})

	ov, err := client.GetOverview(context.Background(), "TCS.NS")
	require.NoError(t, err)

	assert.Equal(t, 4100.5, ov.Price)
	assert.Equal(t, "INR", ov.Currency, "missing currency defaults to INR")
}

func TestGetOverviewTickerNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"price": {}}`))
	})

	_, err := client.GetOverview(context.Background(), "BOGUS.NS")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrTickerNotFound)
}

func TestGetIncomeStatements(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stock/v3/get-financials", r.URL.Path)

		w.Write([]byte(`{
			"incomeStatementHistory": {
				"incomeStatementHistory": [
					{"endDate": {"fmt": "2025-03-31"}, "totalRevenue": {"raw": 9000000000000}, "netIncome": {"raw": 700000000000}},
					{"endDate": {"fmt": "2024-03-31"}, "totalRevenue": {"raw": 8500000000000}, "netIncome": {"raw": 660000000000}},
					{"endDate": {"fmt": "2023-03-31"}, "totalRevenue": {"raw": 8000000000000}},
					{"endDate": {"fmt": "2022-03-31"}, "totalRevenue": {"raw": 7000000000000}},
					{"endDate": {"fmt": "2021-03-31"}, "totalRevenue": {"raw": 6000000000000}}
				]
			},
			"incomeStatementHistoryQuarterly": {
				"incomeStatementHistory": [
					{"endDate": {"fmt": "2026-06-30"}, "totalRevenue": {"raw": 2400000000000}, "ebit": {"raw": 380000000000}}
				]
			},
			"financialData": {
				"returnOnEquity": {"raw": 0.089},
				"debtToEquity": {"raw": 41.2}
			},
			"defaultKeyStatistics": {
				"heldPercentInsiders": {"raw": 0.495}
			},
			"price": {"longName": "Reliance Industries Limited", "currency": "INR"}
		}`))
	})

	fin, err := client.GetIncomeStatements(context.Background(), "RELIANCE.NS")
	require.NoError(t, err)

	assert.Equal(t, "Reliance Industries Limited", fin.StockName)
	assert.Equal(t, "INR", fin.Currency)

	require.Len(t, fin.Annual.Periods, maxPeriods, "history is capped at four periods")
	assert.Equal(t, "2025-03-31", fin.Annual.Periods[0].Label)
	assert.Equal(t, 9e12, fin.Annual.Periods[0].Items["Total Revenue"])
	_, hasEBIT := fin.Annual.Periods[0].Items["EBIT"]
	assert.False(t, hasEBIT, "absent fields stay absent, not zero")

	require.Len(t, fin.Quarterly.Periods, 1)
	assert.Equal(t, 3.8e11, fin.Quarterly.Periods[0].Items["EBIT"])

	require.NotNil(t, fin.Ratios.ReturnOnEquity)
	assert.Equal(t, 0.089, *fin.Ratios.ReturnOnEquity)
	require.NotNil(t, fin.Ratios.DebtToEquity)
	assert.Equal(t, 41.2, *fin.Ratios.DebtToEquity)
	assert.Nil(t, fin.Ratios.CurrentRatio)
}

func TestGetBalanceAndCashFlow(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/stock/v2/get-balance-sheet":
			w.Write([]byte(`{
				"balanceSheetHistory": {
					"balanceSheetStatements": [
						{"endDate": {"fmt": "2025-03-31"}, "totalAssets": {"raw": 17500000000000}, "totalLiab": {"raw": 9000000000000}, "cash": {"raw": 1200000000000}}
					]
				},
				"price": {"longName": "Reliance Industries Limited", "currency": "INR"}
			}`))
		case "/stock/v2/get-cash-flow":
			w.Write([]byte(`{
				"cashflowStatementHistory": {
					"cashflowStatements": [
						{"endDate": {"fmt": "2025-03-31"}, "totalCashFromOperatingActivities": {"raw": 1600000000000}, "capitalExpenditures": {"raw": -1100000000000}}
					]
				}
			}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	data, err := client.GetBalanceAndCashFlow(context.Background(), "RELIANCE.NS")
	require.NoError(t, err)

	assert.Equal(t, "Reliance Industries Limited", data.StockName)
	require.Len(t, data.BalanceSheet.Periods, 1)
	assert.Equal(t, 1.75e13, data.BalanceSheet.Periods[0].Items["Total Assets"])

	require.Len(t, data.CashFlow.Periods, 1)
	cf := data.CashFlow.Periods[0].Items
	assert.Equal(t, 1.6e12, cf["Operating Cash Flow"])
	assert.Equal(t, -1.1e12, cf["Capital Expenditure"])
	assert.Equal(t, 5e11, cf["Free Cash Flow"], "derived as operating plus capex")
}

func TestGetBalanceAndCashFlowNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"balanceSheetHistory": {"balanceSheetStatements": []}, "price": {}}`))
	})

	_, err := client.GetBalanceAndCashFlow(context.Background(), "BOGUS.NS")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrTickerNotFound)
	assert.True(t, errors.Is(err, ErrTickerNotFound), "package sentinel aliases the shared one")
}
