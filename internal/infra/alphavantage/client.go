package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wonny/papertrade/internal/domain/quote"
)

// Client fetches market quotes from the Alpha Vantage GLOBAL_QUOTE API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new Alpha Vantage client
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// globalQuoteResponse represents the GLOBAL_QUOTE API response
type globalQuoteResponse struct {
	GlobalQuote struct {
		Symbol string `json:"01. symbol"`
		Price  string `json:"05. price"`
	} `json:"Global Quote"`
}

// Quote fetches the current price for a symbol. Any failure, including a
// missing or non-positive price, is returned as a quote.UnavailableError.
func (c *Client) Quote(ctx context.Context, symbol string) (*quote.Quote, error) {
	q := url.Values{}
	q.Set("function", "GLOBAL_QUOTE")
	q.Set("symbol", symbol)
	q.Set("apikey", c.apiKey)
	reqURL := fmt.Sprintf("%s/query?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &quote.UnavailableError{Symbol: symbol, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &quote.UnavailableError{Symbol: symbol, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &quote.UnavailableError{Symbol: symbol, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &quote.UnavailableError{
			Symbol: symbol,
			Err:    fmt.Errorf("alphavantage status %d: %s", resp.StatusCode, string(respBody)),
		}
	}

	var parsed globalQuoteResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, &quote.UnavailableError{Symbol: symbol, Err: fmt.Errorf("unmarshal response: %w", err)}
	}

	// An unknown symbol comes back as an empty Global Quote object
	if parsed.GlobalQuote.Price == "" {
		return nil, &quote.UnavailableError{Symbol: symbol}
	}

	price, err := decimal.NewFromString(parsed.GlobalQuote.Price)
	if err != nil {
		return nil, &quote.UnavailableError{Symbol: symbol, Err: fmt.Errorf("parse price %q: %w", parsed.GlobalQuote.Price, err)}
	}

	// A zero or negative quote is never a valid executed price
	if price.LessThanOrEqual(decimal.Zero) {
		return nil, &quote.UnavailableError{Symbol: symbol}
	}

	return &quote.Quote{
		Symbol: symbol,
		Price:  price,
		TS:     time.Now().UTC(),
	}, nil
}
