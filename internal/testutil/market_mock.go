package testutil

import (
	"context"
	"fmt"

	"github.com/stockfolio/backend/internal/marketdata"
)

// MarketClient is a deterministic marketdata.Client for tests.
// Quotes, company names and histories are served from fixed maps; a
// symbol absent from the relevant map produces an error, which lets
// tests exercise the skip-on-failure paths.
type MarketClient struct {
	Quotes    map[string]marketdata.Quote
	Names     map[string]string
	Histories map[string]map[string]float64
}

// NewMarketClient creates an empty MarketClient. Populate the maps
// before use.
func NewMarketClient() *MarketClient {
	return &MarketClient{
		Quotes:    map[string]marketdata.Quote{},
		Names:     map[string]string{},
		Histories: map[string]map[string]float64{},
	}
}

// Quote returns the canned quote for a symbol.
func (c *MarketClient) Quote(_ context.Context, symbol, _ string) (marketdata.Quote, error) {
	quote, ok := c.Quotes[symbol]
	if !ok {
		return marketdata.Quote{}, fmt.Errorf("no canned quote for %s", symbol)
	}
	return quote, nil
}

// CompanyName returns the canned company name for a symbol.
func (c *MarketClient) CompanyName(_ context.Context, symbol, _ string) (string, error) {
	name, ok := c.Names[symbol]
	if !ok {
		return "", fmt.Errorf("no canned company name for %s", symbol)
	}
	return name, nil
}

// History returns the canned close series for a symbol.
func (c *MarketClient) History(_ context.Context, symbol, _ string, _ string) (map[string]float64, error) {
	history, ok := c.Histories[symbol]
	if !ok {
		return nil, fmt.Errorf("no canned history for %s", symbol)
	}
	return history, nil
}
