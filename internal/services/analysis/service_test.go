package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbuddy/finbuddy/internal/interfaces"
	"github.com/finbuddy/finbuddy/internal/models"
)

type mockMarketClient struct {
	overview    *models.StockOverview
	overviewErr error
	income      *models.IncomeStatements
	incomeErr   error
	balance     *models.BalanceAndCashFlow
	balanceErr  error
}

func (m *mockMarketClient) GetQuotes(ctx context.Context, symbols []string) (map[string]models.Quote, error) {
	return nil, nil
}

func (m *mockMarketClient) GetOverview(ctx context.Context, ticker string) (*models.StockOverview, error) {
	return m.overview, m.overviewErr
}

func (m *mockMarketClient) GetIncomeStatements(ctx context.Context, ticker string) (*models.IncomeStatements, error) {
	return m.income, m.incomeErr
}

func (m *mockMarketClient) GetBalanceAndCashFlow(ctx context.Context, ticker string) (*models.BalanceAndCashFlow, error) {
	return m.balance, m.balanceErr
}

type mockGemini struct {
	reply   string
	err     error
	prompts []string
}

func (m *mockGemini) GenerateContent(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.reply, m.err
}

func (m *mockGemini) StartChat(ctx context.Context) (interfaces.ChatSession, error) {
	return nil, errors.New("not implemented")
}

func relianceOverview() *models.StockOverview {
	return &models.StockOverview{
		Name:      "Reliance Industries Limited",
		Ticker:    "RELIANCE.NS",
		Price:     2950.40,
		Currency:  "INR",
		MarketCap: 19_960_000_000_000,
		PE:        24.5,
		Sector:    "Energy",
	}
}

func TestStep1OverviewBuildsPromptFromOverview(t *testing.T) {
	gemini := &mockGemini{reply: "1. Large-cap energy major."}
	svc := NewService(&mockMarketClient{overview: relianceOverview()}, gemini)

	res := svc.Step1Overview(context.Background(), "RELIANCE.NS")

	require.True(t, res.OK())
	assert.Equal(t, "Reliance Industries Limited", res.StockName)
	assert.Equal(t, "RELIANCE.NS", res.Ticker)
	assert.Equal(t, "INR", res.Currency)
	assert.Equal(t, "1. Large-cap energy major.", res.Analysis)

	require.Len(t, gemini.prompts, 1)
	assert.Contains(t, gemini.prompts[0], "Stock Name: Reliance Industries Limited")
	// Market cap rendered in crores for INR.
	assert.Contains(t, gemini.prompts[0], "Cr. INR")
}

func TestStep1OverviewFetchFailure(t *testing.T) {
	fetchErr := errors.New("upstream down")
	svc := NewService(&mockMarketClient{overviewErr: fetchErr}, &mockGemini{})

	res := svc.Step1Overview(context.Background(), "RELIANCE.NS")

	assert.False(t, res.OK())
	assert.ErrorIs(t, res.Err, fetchErr)
	assert.Equal(t, "RELIANCE.NS", res.Ticker)
}

func TestStep1OverviewGenerationFailure(t *testing.T) {
	genErr := errors.New("model unavailable")
	svc := NewService(&mockMarketClient{overview: relianceOverview()}, &mockGemini{err: genErr})

	res := svc.Step1Overview(context.Background(), "RELIANCE.NS")

	assert.False(t, res.OK())
	assert.ErrorIs(t, res.Err, genErr)
	// Name and ticker still resolved for error labeling.
	assert.Equal(t, "Reliance Industries Limited", res.StockName)
}

func TestStep2IncomeCarriesSessionIdentity(t *testing.T) {
	gemini := &mockGemini{reply: "2. Margins improving."}
	market := &mockMarketClient{income: &models.IncomeStatements{
		Annual: &models.Statement{
			Title: "Annual Income Statement",
			Periods: []models.StatementPeriod{
				{Label: "2024-03-31", Items: map[string]float64{"Total Revenue": 9_000_000_000_000}},
			},
		},
	}}
	svc := NewService(market, gemini)
	stock := &models.StockContext{Name: "Reliance Industries Limited", Ticker: "RELIANCE.NS", Currency: "INR"}

	res := svc.Step2Income(context.Background(), stock)

	require.True(t, res.OK())
	assert.Equal(t, "Reliance Industries Limited", res.StockName)
	require.Len(t, gemini.prompts, 1)
	assert.Contains(t, gemini.prompts[0], "ANNUAL INCOME STATEMENT")
	assert.Contains(t, gemini.prompts[0], "KEY FINANCIAL RATIOS")
}

func TestStep3BalanceCashFlowFetchFailure(t *testing.T) {
	svc := NewService(&mockMarketClient{balanceErr: errors.New("rate limited")}, &mockGemini{})
	stock := &models.StockContext{Name: "Infosys", Ticker: "INFY.NS"}

	res := svc.Step3BalanceCashFlow(context.Background(), stock)

	assert.False(t, res.OK())
	assert.Equal(t, "Infosys", res.StockName)
}

func TestFinalSummaryCarriesPriorSteps(t *testing.T) {
	gemini := &mockGemini{reply: "📊 Ratings: 7/10"}
	svc := NewService(&mockMarketClient{}, gemini)

	prior := []string{"step one text", "step two text", "step three text"}
	res := svc.FinalSummary(context.Background(), "Infosys", "INFY.NS", prior)

	require.True(t, res.OK())
	require.Len(t, gemini.prompts, 1)
	prompt := gemini.prompts[0]
	assert.Contains(t, prompt, "Infosys (INFY.NS)")
	assert.Contains(t, prompt, "step one text")
	assert.Contains(t, prompt, "step two text")
	assert.Contains(t, prompt, "step three text")
	// Steps arrive in order.
	assert.Less(t, strings.Index(prompt, "step one text"), strings.Index(prompt, "step three text"))
}
