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

// WatchlistRepository provides data access methods for the watchlist
// and watchlist_stock tables.
type WatchlistRepository struct {
	db *sql.DB
}

// NewWatchlistRepository creates a new WatchlistRepository with the provided database connection.
func NewWatchlistRepository(db *sql.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// GetWatchlists retrieves all watchlists with their member stocks.
func (r *WatchlistRepository) GetWatchlists() ([]model.Watchlist, error) {
	rows, err := r.db.Query(`
		SELECT id, name, created_at
		FROM watchlist
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist table: %w", err)
	}
	defer rows.Close()

	watchlists := []model.Watchlist{}
	for rows.Next() {
		var w model.Watchlist
		var createdAtStr string
		if err := rows.Scan(&w.ID, &w.Name, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist table results: %w", err)
		}
		w.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, err
		}
		watchlists = append(watchlists, w)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating watchlist table: %w", err)
	}

	for i := range watchlists {
		stocks, err := r.getWatchlistStocks(watchlists[i].ID)
		if err != nil {
			return nil, err
		}
		watchlists[i].Stocks = stocks
	}

	return watchlists, nil
}

// GetWatchlist retrieves a single watchlist with its member stocks.
// Returns apperrors.ErrWatchlistNotFound when no row matches.
func (r *WatchlistRepository) GetWatchlist(watchlistID string) (model.Watchlist, error) {
	var w model.Watchlist
	var createdAtStr string
	err := r.db.QueryRow(`
		SELECT id, name, created_at
		FROM watchlist
		WHERE id = ?
	`, watchlistID).Scan(&w.ID, &w.Name, &createdAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Watchlist{}, apperrors.ErrWatchlistNotFound
	}
	if err != nil {
		return model.Watchlist{}, fmt.Errorf("failed to scan watchlist table results: %w", err)
	}
	w.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Watchlist{}, err
	}

	w.Stocks, err = r.getWatchlistStocks(w.ID)
	if err != nil {
		return model.Watchlist{}, err
	}

	return w, nil
}

func (r *WatchlistRepository) getWatchlistStocks(watchlistID string) ([]model.Stock, error) {
	rows, err := r.db.Query(`
		SELECT s.id, s.symbol, s.company_name, s.current_price, s.change_percent, s.updated_at
		FROM watchlist_stock ws
		JOIN stock s ON ws.stock_id = s.id
		WHERE ws.watchlist_id = ?
		ORDER BY s.symbol ASC
	`, watchlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist_stock table: %w", err)
	}
	defer rows.Close()

	stocks := []model.Stock{}
	for rows.Next() {
		s, err := scanStock(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan watchlist_stock results: %w", err)
		}
		stocks = append(stocks, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating watchlist_stock table: %w", err)
	}

	return stocks, nil
}

// InsertWatchlist inserts a new watchlist row.
func (r *WatchlistRepository) InsertWatchlist(ctx context.Context, w model.Watchlist) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO watchlist (id, name) VALUES (?, ?)
	`, w.ID, w.Name)
	if err != nil {
		return fmt.Errorf("failed to insert watchlist: %w", err)
	}
	return nil
}

// RenameWatchlist updates a watchlist's name.
// Returns apperrors.ErrWatchlistNotFound when no row was updated.
func (r *WatchlistRepository) RenameWatchlist(ctx context.Context, watchlistID, name string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE watchlist SET name = ? WHERE id = ?`, name, watchlistID)
	if err != nil {
		return fmt.Errorf("failed to update watchlist: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrWatchlistNotFound
	}
	return nil
}

// DeleteWatchlist removes a watchlist and its memberships.
// Returns apperrors.ErrWatchlistNotFound when no row was deleted.
func (r *WatchlistRepository) DeleteWatchlist(ctx context.Context, watchlistID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM watchlist WHERE id = ?`, watchlistID)
	if err != nil {
		return fmt.Errorf("failed to delete watchlist: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrWatchlistNotFound
	}
	return nil
}

// AddStock adds a stock to a watchlist. Adding a stock twice is a no-op.
func (r *WatchlistRepository) AddStock(ctx context.Context, watchlistID, stockID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO watchlist_stock (watchlist_id, stock_id) VALUES (?, ?)
	`, watchlistID, stockID)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil
		}
		return fmt.Errorf("failed to add stock to watchlist: %w", err)
	}
	return nil
}

// RemoveStock removes a stock from a watchlist.
func (r *WatchlistRepository) RemoveStock(ctx context.Context, watchlistID, stockID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM watchlist_stock WHERE watchlist_id = ? AND stock_id = ?
	`, watchlistID, stockID)
	if err != nil {
		return fmt.Errorf("failed to remove stock from watchlist: %w", err)
	}
	return nil
}
