package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/stockfolio/backend/internal/apperrors"
	"github.com/stockfolio/backend/internal/model"
)

// StockRepository provides data access methods for the stock table,
// which holds the current market snapshot of every known instrument.
type StockRepository struct {
	db *sql.DB
}

// NewStockRepository creates a new StockRepository with the provided database connection.
func NewStockRepository(db *sql.DB) *StockRepository {
	return &StockRepository{db: db}
}

const stockColumns = `id, symbol, company_name, current_price, change_percent, updated_at`

func scanStock(scan func(dest ...any) error) (model.Stock, error) {
	var s model.Stock
	var updatedAtStr string
	if err := scan(&s.ID, &s.Symbol, &s.CompanyName, &s.CurrentPrice, &s.ChangePercent, &updatedAtStr); err != nil {
		return model.Stock{}, err
	}
	var err error
	s.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		return model.Stock{}, err
	}
	return s, nil
}

// GetStocks retrieves the full market snapshot ordered by symbol.
func (r *StockRepository) GetStocks() ([]model.Stock, error) {
	rows, err := r.db.Query(`SELECT ` + stockColumns + ` FROM stock ORDER BY symbol ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock table: %w", err)
	}
	defer rows.Close()

	stocks := []model.Stock{}
	for rows.Next() {
		s, err := scanStock(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock table results: %w", err)
		}
		stocks = append(stocks, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock table: %w", err)
	}

	return stocks, nil
}

// GetStock retrieves a single stock by ID.
// Returns apperrors.ErrStockNotFound when no row matches.
func (r *StockRepository) GetStock(stockID string) (model.Stock, error) {
	s, err := scanStock(r.db.QueryRow(`SELECT `+stockColumns+` FROM stock WHERE id = ?`, stockID).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Stock{}, apperrors.ErrStockNotFound
	}
	if err != nil {
		return model.Stock{}, fmt.Errorf("failed to scan stock table results: %w", err)
	}
	return s, nil
}

// GetStockBySymbol retrieves a single stock by its unique symbol.
// Symbol comparison is case-insensitive.
// Returns apperrors.ErrStockNotFound when no row matches.
func (r *StockRepository) GetStockBySymbol(symbol string) (model.Stock, error) {
	s, err := scanStock(r.db.QueryRow(
		`SELECT `+stockColumns+` FROM stock WHERE symbol = ? COLLATE NOCASE`,
		strings.ToUpper(symbol),
	).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Stock{}, apperrors.ErrStockNotFound
	}
	if err != nil {
		return model.Stock{}, fmt.Errorf("failed to scan stock table results: %w", err)
	}
	return s, nil
}

// InsertStock inserts a new stock row.
// Returns apperrors.ErrDuplicateSymbol when the symbol is already taken.
func (r *StockRepository) InsertStock(ctx context.Context, s model.Stock) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stock (id, symbol, company_name, current_price, change_percent)
		VALUES (?, ?, ?, ?, ?)
	`, s.ID, s.Symbol, s.CompanyName, s.CurrentPrice, s.ChangePercent)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperrors.ErrDuplicateSymbol
		}
		return fmt.Errorf("failed to insert stock: %w", err)
	}
	return nil
}

// UpdateQuote updates the market snapshot fields of one stock.
func (r *StockRepository) UpdateQuote(ctx context.Context, stockID string, currentPrice, changePercent float64) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE stock
		SET current_price = ?, change_percent = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, currentPrice, changePercent, stockID)
	if err != nil {
		return fmt.Errorf("failed to update stock quote: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrStockNotFound
	}
	return nil
}

// DeleteStock removes a stock by ID.
// Returns apperrors.ErrStockNotFound when no row was deleted.
func (r *StockRepository) DeleteStock(ctx context.Context, stockID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM stock WHERE id = ?`, stockID)
	if err != nil {
		return fmt.Errorf("failed to delete stock: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrStockNotFound
	}
	return nil
}
