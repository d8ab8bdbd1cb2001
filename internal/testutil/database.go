// Package testutil provides shared helpers for package tests: an
// in-memory database with the production schema, entity builders and
// a deterministic market data client.
package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the embedded migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE portfolio (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			description TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE stock (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			symbol VARCHAR(10) NOT NULL UNIQUE,
			company_name VARCHAR(100) NOT NULL,
			current_price FLOAT NOT NULL,
			change_percent FLOAT NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Named stock_transaction to avoid the reserved word.
		CREATE TABLE stock_transaction (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			portfolio_id VARCHAR(36) NOT NULL,
			stock_id VARCHAR(36) NOT NULL,
			type VARCHAR(4) NOT NULL,
			amount FLOAT NOT NULL,
			price_per_unit FLOAT NOT NULL,
			date DATE NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(portfolio_id) REFERENCES portfolio(id) ON DELETE CASCADE,
			FOREIGN KEY(stock_id) REFERENCES stock(id)
		);

		CREATE INDEX idx_stock_transaction_portfolio ON stock_transaction(portfolio_id);

		CREATE TABLE watchlist (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE watchlist_stock (
			watchlist_id VARCHAR(36) NOT NULL,
			stock_id VARCHAR(36) NOT NULL,
			FOREIGN KEY(watchlist_id) REFERENCES watchlist(id) ON DELETE CASCADE,
			FOREIGN KEY(stock_id) REFERENCES stock(id) ON DELETE CASCADE,
			CONSTRAINT unique_watchlist_stock UNIQUE (watchlist_id, stock_id)
		);

		CREATE TABLE setting (
			key VARCHAR(50) NOT NULL PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	_, err := db.Exec(schema)
	return err
}
