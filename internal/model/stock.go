package model

import "time"

// Stock represents the current market snapshot of a tradable instrument.
// Owned by the market data provider; the valuation engine treats it as
// read-only input. ChangePercent is relative to the previous close and
// may be zero when the provider does not supply one.
type Stock struct {
	ID            string    `json:"id"`
	Symbol        string    `json:"symbol"`
	CompanyName   string    `json:"companyName"`
	CurrentPrice  float64   `json:"currentPrice"`
	ChangePercent float64   `json:"changePercent"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty"`
}
