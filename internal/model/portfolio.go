package model

import "time"

// Portfolio represents a named grouping of transactions from the database.
// A portfolio holds no direct stock references; ownership is derived
// entirely from its transaction log.
type Portfolio struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// PortfolioValuation pairs a portfolio with its computed market and
// invested values. Used in summary responses and bar-chart data.
type PortfolioValuation struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	CurrentValue  float64 `json:"currentValue"`
	InvestedValue float64 `json:"investedValue"`
}

// AggregateTotals represents book-level rollups across all portfolios.
// Invariants: Profit == TotalCurrentValue - TotalInvestedValue, and
// ProfitPercent is 0 whenever TotalInvestedValue is 0.
type AggregateTotals struct {
	TotalCurrentValue  float64              `json:"totalCurrentValue"`
	TotalInvestedValue float64              `json:"totalInvestedValue"`
	Profit             float64              `json:"profit"`
	ProfitPercent      float64              `json:"profitPercent"`
	SymbolValues       map[string]float64   `json:"symbolValues"`
	Portfolios         []PortfolioValuation `json:"portfolios"`
}
