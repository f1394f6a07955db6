package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/finbuddy/finbuddy/internal/common"
	"github.com/finbuddy/finbuddy/internal/interfaces"
	"github.com/finbuddy/finbuddy/internal/models"
)

// Service runs the four-step stock narration pipeline. Each step fetches
// fresh data from the market client, renders it into a prompt, and asks the
// model for commentary. Failures never advance the caller's state; the
// StepResult carries the error instead.
type Service struct {
	market interfaces.MarketDataClient
	gemini interfaces.GeminiClient
	logger *common.Logger
}

// ServiceOption configures the analysis service.
type ServiceOption func(*Service)

// WithLogger sets the logger used by the service.
func WithLogger(logger *common.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates the analysis narrator.
func NewService(market interfaces.MarketDataClient, gemini interfaces.GeminiClient, opts ...ServiceOption) *Service {
	s := &Service{
		market: market,
		gemini: gemini,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = common.NewSilentLogger()
	}
	return s
}

// Step1Overview fetches the company snapshot and produces the opening
// analysis. The returned result carries the resolved stock name and currency
// so the caller can seed the session context.
func (s *Service) Step1Overview(ctx context.Context, ticker string) *models.StepResult {
	ov, err := s.market.GetOverview(ctx, ticker)
	if err != nil {
		s.logger.Error().Err(err).Str("ticker", ticker).Msg("Overview fetch failed")
		return &models.StepResult{Ticker: ticker, Err: err}
	}

	prompt := step1OverviewPrompt + "\n" + renderOverview(ov)
	text, err := s.gemini.GenerateContent(ctx, prompt)
	if err != nil {
		s.logger.Error().Err(err).Str("ticker", ticker).Msg("Step 1 generation failed")
		return &models.StepResult{StockName: ov.Name, Ticker: ov.Ticker, Currency: ov.Currency, Err: err}
	}

	s.logger.Debug().Str("ticker", ov.Ticker).Int("chars", len(text)).Msg("Step 1 analysis generated")
	return &models.StepResult{Analysis: text, StockName: ov.Name, Ticker: ov.Ticker, Currency: ov.Currency}
}

// Step2Income fetches income statements plus key ratios and produces the
// profitability analysis.
func (s *Service) Step2Income(ctx context.Context, stock *models.StockContext) *models.StepResult {
	fin, err := s.market.GetIncomeStatements(ctx, stock.Ticker)
	if err != nil {
		s.logger.Error().Err(err).Str("ticker", stock.Ticker).Msg("Income statement fetch failed")
		return &models.StepResult{StockName: stock.Name, Ticker: stock.Ticker, Err: err}
	}
	fin.StockName = stock.Name
	fin.Currency = stock.Currency

	prompt := step2IncomePrompt + "\n" + renderIncomeReport(fin)
	text, err := s.gemini.GenerateContent(ctx, prompt)
	if err != nil {
		s.logger.Error().Err(err).Str("ticker", stock.Ticker).Msg("Step 2 generation failed")
		return &models.StepResult{StockName: stock.Name, Ticker: stock.Ticker, Err: err}
	}

	s.logger.Debug().Str("ticker", stock.Ticker).Int("chars", len(text)).Msg("Step 2 analysis generated")
	return &models.StepResult{Analysis: text, StockName: stock.Name, Ticker: stock.Ticker}
}

// Step3BalanceCashFlow fetches the balance sheet and cash flow statements and
// produces the financial-health analysis.
func (s *Service) Step3BalanceCashFlow(ctx context.Context, stock *models.StockContext) *models.StepResult {
	data, err := s.market.GetBalanceAndCashFlow(ctx, stock.Ticker)
	if err != nil {
		s.logger.Error().Err(err).Str("ticker", stock.Ticker).Msg("Balance sheet fetch failed")
		return &models.StepResult{StockName: stock.Name, Ticker: stock.Ticker, Err: err}
	}
	data.StockName = stock.Name
	data.Currency = stock.Currency

	prompt := step3BalanceCashFlowPrompt + "\n" + renderBalanceAndCashFlow(data)
	text, err := s.gemini.GenerateContent(ctx, prompt)
	if err != nil {
		s.logger.Error().Err(err).Str("ticker", stock.Ticker).Msg("Step 3 generation failed")
		return &models.StepResult{StockName: stock.Name, Ticker: stock.Ticker, Err: err}
	}

	s.logger.Debug().Str("ticker", stock.Ticker).Int("chars", len(text)).Msg("Step 3 analysis generated")
	return &models.StepResult{Analysis: text, StockName: stock.Name, Ticker: stock.Ticker}
}

// FinalSummary produces the concluding verdict from the three prior step
// analyses. It needs no market data; the prior texts are the whole input.
func (s *Service) FinalSummary(ctx context.Context, name, ticker string, prior []string) *models.StepResult {
	var b strings.Builder
	b.WriteString(finalSummaryPrompt)
	fmt.Fprintf(&b, "\nCompany under analysis: %s (%s)\n", name, ticker)
	for i, step := range prior {
		fmt.Fprintf(&b, "\n--- Step %d analysis ---\n%s\n", i+1, step)
	}

	text, err := s.gemini.GenerateContent(ctx, b.String())
	if err != nil {
		s.logger.Error().Err(err).Str("ticker", ticker).Msg("Final summary generation failed")
		return &models.StepResult{StockName: name, Ticker: ticker, Err: err}
	}

	s.logger.Debug().Str("ticker", ticker).Int("chars", len(text)).Msg("Final summary generated")
	return &models.StepResult{Analysis: text, StockName: name, Ticker: ticker}
}

var _ interfaces.Narrator = (*Service)(nil)
