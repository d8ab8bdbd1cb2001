package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stockfolio/backend/internal/apperrors"
)

// SettingRepository provides data access for the key/value setting
// table. Values are stored as written; encryption of sensitive values
// is the caller's concern (see internal/secrets).
type SettingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new SettingRepository with the provided database connection.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get returns the stored value for a key.
// Returns apperrors.ErrSettingNotFound when the key has no value.
func (r *SettingRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM setting WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperrors.ErrSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query setting table: %w", err)
	}
	return value, nil
}

// Set stores a value under a key, replacing any existing value.
func (r *SettingRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO setting (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to upsert setting: %w", err)
	}
	return nil
}
