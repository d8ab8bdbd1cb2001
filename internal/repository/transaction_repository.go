package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stockfolio/backend/internal/apperrors"
	"github.com/stockfolio/backend/internal/model"
)

// TransactionRepository provides data access methods for the
// stock_transaction table. Replay order matters for cost-basis
// calculations, so every listing query sorts by date ascending with
// insertion time as tiebreak; callers can trust the supplied order.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// GetTransactionsForPortfolio retrieves all transactions of one
// portfolio in replay order.
func (r *TransactionRepository) GetTransactionsForPortfolio(portfolioID string) ([]model.Transaction, error) {
	transactionQuery := `
		SELECT id, portfolio_id, stock_id, type, amount, price_per_unit, date, created_at
		FROM stock_transaction
		WHERE portfolio_id = ?
		ORDER BY date ASC, created_at ASC
	`

	rows, err := r.db.Query(transactionQuery, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock_transaction table: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// GetTransactionsForPosition retrieves the transactions of one
// (portfolio, stock) pair in replay order. Used by the oversell gate
// before recording a SELL.
func (r *TransactionRepository) GetTransactionsForPosition(portfolioID, stockID string) ([]model.Transaction, error) {
	transactionQuery := `
		SELECT id, portfolio_id, stock_id, type, amount, price_per_unit, date, created_at
		FROM stock_transaction
		WHERE portfolio_id = ? AND stock_id = ?
		ORDER BY date ASC, created_at ASC
	`

	rows, err := r.db.Query(transactionQuery, portfolioID, stockID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock_transaction table: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// GetAllTransactions retrieves every transaction with stock identity
// joined in, in replay order.
func (r *TransactionRepository) GetAllTransactions() ([]model.TransactionResponse, error) {
	transactionQuery := `
		SELECT t.id, t.portfolio_id, t.stock_id, s.symbol, s.company_name,
		       t.type, t.amount, t.price_per_unit, t.date
		FROM stock_transaction t
		JOIN stock s ON t.stock_id = s.id
		ORDER BY t.date ASC, t.created_at ASC
	`

	rows, err := r.db.Query(transactionQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock_transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.TransactionResponse{}
	for rows.Next() {
		var t model.TransactionResponse
		var dateStr string
		err := rows.Scan(
			&t.ID,
			&t.PortfolioID,
			&t.StockID,
			&t.Symbol,
			&t.CompanyName,
			&t.Type,
			&t.Amount,
			&t.PricePerUnit,
			&dateStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock_transaction table results: %w", err)
		}
		t.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock_transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransaction retrieves a single transaction by ID.
// Returns apperrors.ErrTransactionNotFound when no row matches.
func (r *TransactionRepository) GetTransaction(transactionID string) (model.Transaction, error) {
	var t model.Transaction
	var dateStr, createdAtStr string
	err := r.db.QueryRow(`
		SELECT id, portfolio_id, stock_id, type, amount, price_per_unit, date, created_at
		FROM stock_transaction
		WHERE id = ?
	`, transactionID).Scan(
		&t.ID,
		&t.PortfolioID,
		&t.StockID,
		&t.Type,
		&t.Amount,
		&t.PricePerUnit,
		&dateStr,
		&createdAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan stock_transaction table results: %w", err)
	}

	t.Date, err = ParseTime(dateStr)
	if err != nil {
		return model.Transaction{}, err
	}
	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Transaction{}, err
	}

	return t, nil
}

// InsertTransaction inserts a new transaction row. Dates are stored in
// YYYY-MM-DD form so lexicographic ordering in SQL matches chronology.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, t model.Transaction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stock_transaction (id, portfolio_id, stock_id, type, amount, price_per_unit, date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.PortfolioID, t.StockID, t.Type, t.Amount, t.PricePerUnit, t.Date.Format("2006-01-02"))
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// DeleteTransaction removes a transaction by ID.
// Returns apperrors.ErrTransactionNotFound when no row was deleted.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM stock_transaction WHERE id = ?`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

func scanTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	transactions := []model.Transaction{}
	for rows.Next() {
		var t model.Transaction
		var dateStr, createdAtStr string
		err := rows.Scan(
			&t.ID,
			&t.PortfolioID,
			&t.StockID,
			&t.Type,
			&t.Amount,
			&t.PricePerUnit,
			&dateStr,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock_transaction table results: %w", err)
		}
		t.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, err
		}
		t.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock_transaction table: %w", err)
	}

	return transactions, nil
}
