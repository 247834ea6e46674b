// Package iex looks up real-time stock quotes from an IEX-style REST API.
package iex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradesim/stock_trading_app/internal/apperrors"
	"github.com/tradesim/stock_trading_app/internal/core/domain"
	portssvc "github.com/tradesim/stock_trading_app/internal/core/ports/services"
)

const defaultTimeout = 10 * time.Second

// Client fetches quotes from the provider's /stable/stock/{symbol}/quote
// endpoint, authenticated with an API token.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

// NewClient creates a quote client for the given provider base URL and token.
func NewClient(baseURL, apiToken string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiToken:   apiToken,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Ensure Client implements portssvc.QuoteSvcFacade
var _ portssvc.QuoteSvcFacade = (*Client)(nil)

// quotePayload is the subset of the provider's quote body we consume.
type quotePayload struct {
	Symbol      string      `json:"symbol"`
	CompanyName string      `json:"companyName"`
	LatestPrice json.Number `json:"latestPrice"`
}

// Lookup fetches the current quote for a symbol. A provider 404 maps to
// apperrors.ErrSymbolNotFound; any transport failure or other non-200 answer
// maps to apperrors.ErrQuoteUnavailable.
func (c *Client) Lookup(ctx context.Context, symbol string) (*domain.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("%w: symbol is required", apperrors.ErrValidation)
	}

	endpoint := fmt.Sprintf("%s/stable/stock/%s/quote?token=%s",
		c.baseURL, url.PathEscape(symbol), url.QueryEscape(c.apiToken))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build quote request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrQuoteUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("symbol %s: %w", symbol, apperrors.ErrSymbolNotFound)
	default:
		return nil, fmt.Errorf("%w: provider answered %d", apperrors.ErrQuoteUnavailable, resp.StatusCode)
	}

	var payload quotePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: malformed quote body: %v", apperrors.ErrQuoteUnavailable, err)
	}

	price, err := decimal.NewFromString(payload.LatestPrice.String())
	if err != nil {
		return nil, fmt.Errorf("%w: unparseable price %q", apperrors.ErrQuoteUnavailable, payload.LatestPrice.String())
	}

	quote := &domain.Quote{
		Symbol: strings.ToUpper(payload.Symbol),
		Name:   payload.CompanyName,
		Price:  price,
	}
	if quote.Symbol == "" {
		quote.Symbol = symbol
	}
	return quote, nil
}
