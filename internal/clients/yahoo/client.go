// Package yahoo provides a client for the yh-finance (RapidAPI) API
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/finbuddy/finbuddy/internal/common"
	"github.com/finbuddy/finbuddy/internal/interfaces"
	"github.com/finbuddy/finbuddy/internal/models"
)

const (
	DefaultBaseURL   = "https://yh-finance.p.rapidapi.com"
	DefaultHost      = "yh-finance.p.rapidapi.com"
	DefaultRegion    = "IN"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// ErrTickerNotFound indicates the provider has no data for a symbol.
// Distinct from transport failure: the caller should tell the user to
// check the symbol, not retry.
var ErrTickerNotFound = models.ErrTickerNotFound

// Client implements the MarketDataClient interface
type Client struct {
	baseURL    string
	host       string
	apiKey     string
	region     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHost sets the RapidAPI host header
func WithHost(host string) ClientOption {
	return func(c *Client) {
		c.host = host
	}
}

// WithRegion sets the market region query parameter
func WithRegion(region string) ClientOption {
	return func(c *Client) {
		c.region = region
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new yh-finance client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		host:    DefaultHost,
		apiKey:  apiKey,
		region:  DefaultRegion,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("yh-finance API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request with the RapidAPI headers
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("region", c.region)

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)

	c.logger.Debug().Str("endpoint", path).Msg("yh-finance API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// GetQuotes retrieves a batch quote snapshot for the given symbols
func (c *Client) GetQuotes(ctx context.Context, symbols []string) (map[string]models.Quote, error) {
	params := url.Values{}
	params.Set("symbols", strings.Join(symbols, ","))

	var resp quotesResponse
	if err := c.get(ctx, "/market/v2/get-quotes", params, &resp); err != nil {
		return nil, err
	}

	quotes := make(map[string]models.Quote, len(resp.QuoteResponse.Result))
	for _, q := range resp.QuoteResponse.Result {
		if q.Symbol == "" {
			continue
		}
		quotes[q.Symbol] = models.Quote{
			Symbol:    q.Symbol,
			Price:     round2(q.RegularMarketPrice),
			Change:    round2(q.RegularMarketChange),
			ChangePct: round2(q.RegularMarketChangePercent),
			Timestamp: time.Unix(q.RegularMarketTime, 0),
		}
	}

	return quotes, nil
}

func round2(v float64) float64 {
	if v >= 0 {
		return float64(int64(v*100+0.5)) / 100
	}
	return float64(int64(v*100-0.5)) / 100
}

// Ensure Client implements MarketDataClient
var _ interfaces.MarketDataClient = (*Client)(nil)
