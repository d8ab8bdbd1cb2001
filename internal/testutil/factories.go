package testutil

import (
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stockfolio/backend/internal/model"
)

var nameCounter atomic.Int64

// MakeID returns a fresh UUID string for test entities.
func MakeID() string {
	return uuid.NewString()
}

// MakeName returns a unique name with the given prefix, so tests that
// share a database never collide on unique columns.
func MakeName(prefix string) string {
	return fmt.Sprintf("%s %d", prefix, nameCounter.Add(1))
}

// PortfolioBuilder provides a fluent interface for creating test portfolios.
//
// Example usage:
//
//	// Simple creation with defaults
//	portfolio := testutil.NewPortfolio().Build(t, db)
//
//	// Customized portfolio
//	portfolio := testutil.NewPortfolio().
//	    WithName("Growth").
//	    Build(t, db)
type PortfolioBuilder struct {
	ID          string
	Name        string
	Description string
}

// NewPortfolio creates a PortfolioBuilder with sensible defaults.
func NewPortfolio() *PortfolioBuilder {
	return &PortfolioBuilder{
		ID:          MakeID(),
		Name:        MakeName("Test Portfolio"),
		Description: "Test description",
	}
}

// WithID sets a custom ID.
func (b *PortfolioBuilder) WithID(id string) *PortfolioBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *PortfolioBuilder) WithName(name string) *PortfolioBuilder {
	b.Name = name
	return b
}

// WithDescription sets a custom description.
func (b *PortfolioBuilder) WithDescription(desc string) *PortfolioBuilder {
	b.Description = desc
	return b
}

// Build creates the portfolio in the database and returns it.
func (b *PortfolioBuilder) Build(t *testing.T, db *sql.DB) model.Portfolio {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO portfolio (id, name, description)
		VALUES (?, ?, ?)
	`, b.ID, b.Name, b.Description)
	if err != nil {
		t.Fatalf("Failed to create test portfolio: %v", err)
	}

	return model.Portfolio{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
	}
}

// StockBuilder provides a fluent interface for creating test stocks.
type StockBuilder struct {
	ID            string
	Symbol        string
	CompanyName   string
	CurrentPrice  float64
	ChangePercent float64
}

// NewStock creates a StockBuilder with sensible defaults.
func NewStock() *StockBuilder {
	return &StockBuilder{
		ID:            MakeID(),
		Symbol:        MakeName("TST"),
		CompanyName:   "Test Company",
		CurrentPrice:  100,
		ChangePercent: 0,
	}
}

// WithID sets a custom ID.
func (b *StockBuilder) WithID(id string) *StockBuilder {
	b.ID = id
	return b
}

// WithSymbol sets a custom symbol.
func (b *StockBuilder) WithSymbol(symbol string) *StockBuilder {
	b.Symbol = symbol
	return b
}

// WithCompanyName sets a custom company name.
func (b *StockBuilder) WithCompanyName(name string) *StockBuilder {
	b.CompanyName = name
	return b
}

// WithPrice sets the current price.
func (b *StockBuilder) WithPrice(price float64) *StockBuilder {
	b.CurrentPrice = price
	return b
}

// WithChangePercent sets the day change percent.
func (b *StockBuilder) WithChangePercent(pct float64) *StockBuilder {
	b.ChangePercent = pct
	return b
}

// Build creates the stock in the database and returns it.
func (b *StockBuilder) Build(t *testing.T, db *sql.DB) model.Stock {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO stock (id, symbol, company_name, current_price, change_percent)
		VALUES (?, ?, ?, ?, ?)
	`, b.ID, b.Symbol, b.CompanyName, b.CurrentPrice, b.ChangePercent)
	if err != nil {
		t.Fatalf("Failed to create test stock: %v", err)
	}

	return model.Stock{
		ID:            b.ID,
		Symbol:        b.Symbol,
		CompanyName:   b.CompanyName,
		CurrentPrice:  b.CurrentPrice,
		ChangePercent: b.ChangePercent,
	}
}

// TransactionBuilder provides a fluent interface for creating test transactions.
// CreatedAt is set explicitly so replay-order tiebreaks are deterministic
// even when several rows share a date.
type TransactionBuilder struct {
	ID           string
	PortfolioID  string
	StockID      string
	Type         string
	Amount       float64
	PricePerUnit float64
	Date         string
	CreatedAt    string
}

// NewTransaction creates a TransactionBuilder for the given portfolio and stock.
func NewTransaction(portfolioID, stockID string) *TransactionBuilder {
	seq := nameCounter.Add(1)
	return &TransactionBuilder{
		ID:           MakeID(),
		PortfolioID:  portfolioID,
		StockID:      stockID,
		Type:         model.TransactionBuy,
		Amount:       10,
		PricePerUnit: 100,
		Date:         "2024-01-01",
		CreatedAt:    fmt.Sprintf("2024-01-01T00:00:%02dZ", seq%60),
	}
}

// Buy marks the transaction as a purchase.
func (b *TransactionBuilder) Buy(amount, price float64) *TransactionBuilder {
	b.Type = model.TransactionBuy
	b.Amount = amount
	b.PricePerUnit = price
	return b
}

// Sell marks the transaction as a sale.
func (b *TransactionBuilder) Sell(amount, price float64) *TransactionBuilder {
	b.Type = model.TransactionSell
	b.Amount = amount
	b.PricePerUnit = price
	return b
}

// WithDate sets the transaction date (YYYY-MM-DD).
func (b *TransactionBuilder) WithDate(date string) *TransactionBuilder {
	b.Date = date
	return b
}

// WithCreatedAt sets the insertion timestamp used for same-date tiebreaks.
func (b *TransactionBuilder) WithCreatedAt(createdAt string) *TransactionBuilder {
	b.CreatedAt = createdAt
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO stock_transaction (id, portfolio_id, stock_id, type, amount, price_per_unit, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, b.ID, b.PortfolioID, b.StockID, b.Type, b.Amount, b.PricePerUnit, b.Date, b.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return model.Transaction{
		ID:           b.ID,
		PortfolioID:  b.PortfolioID,
		StockID:      b.StockID,
		Type:         b.Type,
		Amount:       b.Amount,
		PricePerUnit: b.PricePerUnit,
	}
}

// WatchlistBuilder provides a fluent interface for creating test watchlists.
type WatchlistBuilder struct {
	ID   string
	Name string
}

// NewWatchlist creates a WatchlistBuilder with sensible defaults.
func NewWatchlist() *WatchlistBuilder {
	return &WatchlistBuilder{
		ID:   MakeID(),
		Name: MakeName("Test Watchlist"),
	}
}

// WithName sets a custom name.
func (b *WatchlistBuilder) WithName(name string) *WatchlistBuilder {
	b.Name = name
	return b
}

// Build creates the watchlist in the database and returns it.
func (b *WatchlistBuilder) Build(t *testing.T, db *sql.DB) model.Watchlist {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO watchlist (id, name)
		VALUES (?, ?)
	`, b.ID, b.Name)
	if err != nil {
		t.Fatalf("Failed to create test watchlist: %v", err)
	}

	return model.Watchlist{
		ID:   b.ID,
		Name: b.Name,
	}
}
