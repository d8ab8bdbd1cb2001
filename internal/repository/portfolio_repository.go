package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stockfolio/backend/internal/apperrors"
	"github.com/stockfolio/backend/internal/model"
)

// PortfolioRepository provides data access methods for the portfolio table.
type PortfolioRepository struct {
	db *sql.DB
}

// NewPortfolioRepository creates a new PortfolioRepository with the provided database connection.
func NewPortfolioRepository(db *sql.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// GetPortfolios retrieves all portfolios ordered by creation time.
func (r *PortfolioRepository) GetPortfolios() ([]model.Portfolio, error) {
	rows, err := r.db.Query(`
		SELECT id, name, description, created_at
		FROM portfolio
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio table: %w", err)
	}
	defer rows.Close()

	portfolios := []model.Portfolio{}
	for rows.Next() {
		var p model.Portfolio
		var createdAtStr string
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio table results: %w", err)
		}
		p.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, err
		}
		portfolios = append(portfolios, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio table: %w", err)
	}

	return portfolios, nil
}

// GetPortfolio retrieves a single portfolio by ID.
// Returns apperrors.ErrPortfolioNotFound when no row matches.
func (r *PortfolioRepository) GetPortfolio(portfolioID string) (model.Portfolio, error) {
	var p model.Portfolio
	var createdAtStr string
	err := r.db.QueryRow(`
		SELECT id, name, description, created_at
		FROM portfolio
		WHERE id = ?
	`, portfolioID).Scan(&p.ID, &p.Name, &p.Description, &createdAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Portfolio{}, apperrors.ErrPortfolioNotFound
	}
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to scan portfolio table results: %w", err)
	}

	p.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Portfolio{}, err
	}

	return p, nil
}

// InsertPortfolio inserts a new portfolio row.
func (r *PortfolioRepository) InsertPortfolio(ctx context.Context, p model.Portfolio) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO portfolio (id, name, description)
		VALUES (?, ?, ?)
	`, p.ID, p.Name, p.Description)
	if err != nil {
		return fmt.Errorf("failed to insert portfolio: %w", err)
	}
	return nil
}

// DeletePortfolio removes a portfolio and, via cascade, its transactions.
// Returns apperrors.ErrPortfolioNotFound when no row was deleted.
func (r *PortfolioRepository) DeletePortfolio(ctx context.Context, portfolioID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM portfolio WHERE id = ?`, portfolioID)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrPortfolioNotFound
	}
	return nil
}
