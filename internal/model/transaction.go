package model

import "time"

// Transaction types. A transaction log only ever contains these two.
const (
	TransactionBuy  = "BUY"
	TransactionSell = "SELL"
)

// Transaction represents a buy or sell of a stock within a portfolio.
// Immutable once recorded; replay order is the order supplied by the
// store (date ascending, insertion order as tiebreak).
type Transaction struct {
	ID           string    `json:"id"`
	PortfolioID  string    `json:"portfolioId"`
	StockID      string    `json:"stockId"`
	Type         string    `json:"type"`
	Amount       float64   `json:"amount"`
	PricePerUnit float64   `json:"pricePerUnit"`
	Date         time.Time `json:"date"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

// TransactionResponse represents a transaction enriched with stock
// identity for API responses.
type TransactionResponse struct {
	ID           string    `json:"id"`
	PortfolioID  string    `json:"portfolioId"`
	StockID      string    `json:"stockId"`
	Symbol       string    `json:"symbol"`
	CompanyName  string    `json:"companyName"`
	Type         string    `json:"type"`
	Amount       float64   `json:"amount"`
	PricePerUnit float64   `json:"pricePerUnit"`
	Date         time.Time `json:"date"`
}
