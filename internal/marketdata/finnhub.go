// Package marketdata provides the client for the external market data
// provider (Finnhub). It owns the provider boundary rules: prices are
// converted to the display currency here, and history dates are emitted
// in the fixed-width YYYY-MM-DD format the time-series merge relies on
// for lexicographic-equals-chronological ordering.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/stockfolio/backend/internal/apperrors"
)

// Range tokens accepted by History. Exact window semantics are owned by
// this boundary, not by callers.
var rangeWindows = map[string]time.Duration{
	"1D": 7 * 24 * time.Hour, // a week of dailies so weekends still chart
	"1W": 7 * 24 * time.Hour,
	"1M": 30 * 24 * time.Hour,
	"1Y": 365 * 24 * time.Hour,
}

// ValidRange reports whether a history range token is supported.
func ValidRange(rng string) bool {
	_, ok := rangeWindows[rng]
	return ok
}

// Client is the market data provider boundary. Implemented by
// FinnhubClient in production and by a deterministic mock in tests.
type Client interface {
	// Quote fetches the current price and percent change for a symbol.
	Quote(ctx context.Context, symbol, apiKey string) (Quote, error)

	// CompanyName fetches the display name for a symbol. Falls back to
	// the symbol itself when the provider has no profile.
	CompanyName(ctx context.Context, symbol, apiKey string) (string, error)

	// History fetches daily closing prices for a symbol over the given
	// range token, keyed by YYYY-MM-DD date.
	History(ctx context.Context, symbol, rng, apiKey string) (map[string]float64, error)
}

// FinnhubClient fetches quotes, company profiles, and daily candles
// from the Finnhub REST API.
type FinnhubClient struct {
	httpClient     *http.Client
	baseURL        string
	conversionRate float64
}

// NewFinnhubClient creates a Finnhub client. conversionRate converts
// the provider's USD prices into the display currency; pass 1 for no
// conversion.
func NewFinnhubClient(conversionRate float64) *FinnhubClient {
	if conversionRate <= 0 {
		conversionRate = 1
	}
	return &FinnhubClient{
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		baseURL:        "https://finnhub.io/api/v1",
		conversionRate: conversionRate,
	}
}

// Quote fetches the current quote for a symbol and converts it into the
// display currency. When the provider omits the percent change it is
// derived from the previous close; with no previous close it is 0.
func (c *FinnhubClient) Quote(ctx context.Context, symbol, apiKey string) (Quote, error) {
	var raw quoteResponse
	if err := c.get(ctx, "/quote", symbol, apiKey, nil, &raw); err != nil {
		return Quote{}, err
	}

	if raw.Current <= 0 {
		return Quote{}, fmt.Errorf("%w: no price for symbol %s", apperrors.ErrFailedToFetchQuote, symbol)
	}

	changePercent := raw.ChangePercent
	if changePercent == 0 && raw.PreviousClose > 0 {
		changePercent = (raw.Current - raw.PreviousClose) / raw.PreviousClose * 100
	}

	return Quote{
		Symbol:        symbol,
		CurrentPrice:  raw.Current * c.conversionRate,
		ChangePercent: changePercent,
	}, nil
}

// CompanyName fetches the company profile name for a symbol, falling
// back to the symbol when the profile is empty or the lookup fails.
func (c *FinnhubClient) CompanyName(ctx context.Context, symbol, apiKey string) (string, error) {
	var raw profileResponse
	if err := c.get(ctx, "/stock/profile2", symbol, apiKey, nil, &raw); err != nil {
		return symbol, err
	}
	if raw.Name == "" {
		return symbol, nil
	}
	return raw.Name, nil
}

// History fetches daily closes for the window implied by the range
// token and keys them by YYYY-MM-DD.
func (c *FinnhubClient) History(ctx context.Context, symbol, rng, apiKey string) (map[string]float64, error) {
	window, ok := rangeWindows[rng]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidRange, rng)
	}

	now := time.Now().UTC()
	params := url.Values{}
	params.Set("resolution", "D")
	params.Set("from", fmt.Sprintf("%d", now.Add(-window).Unix()))
	params.Set("to", fmt.Sprintf("%d", now.Unix()))

	var raw candleResponse
	if err := c.get(ctx, "/stock/candle", symbol, apiKey, params, &raw); err != nil {
		return nil, err
	}

	if raw.Status != "ok" || len(raw.Timestamp) == 0 {
		return nil, fmt.Errorf("%w: no candles for symbol %s", apperrors.ErrFailedToFetchHistory, symbol)
	}
	if len(raw.Close) != len(raw.Timestamp) {
		return nil, fmt.Errorf("%w: mismatched candle lengths for symbol %s", apperrors.ErrFailedToFetchHistory, symbol)
	}

	history := make(map[string]float64, len(raw.Timestamp))
	for i, ts := range raw.Timestamp {
		date := time.Unix(ts, 0).UTC().Format("2006-01-02")
		history[date] = raw.Close[i] * c.conversionRate
	}
	return history, nil
}

// get executes a provider request and decodes the JSON response.
// Common headers and the symbol/token query parameters live here.
func (c *FinnhubClient) get(ctx context.Context, path, symbol, apiKey string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("symbol", symbol)
	params.Set("token", apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider returned status %d for %s", resp.StatusCode, path)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, out)
}
