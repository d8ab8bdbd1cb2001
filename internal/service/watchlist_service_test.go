package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stockfolio/backend/internal/api/request"
	"github.com/stockfolio/backend/internal/apperrors"
	"github.com/stockfolio/backend/internal/testutil"
)

// TestWatchlistService_Lifecycle tests watchlist CRUD.
//
// WHY: Watchlists are the only user-curated collection besides
// portfolios; rename and delete must behave and 404 cleanly.
func TestWatchlistService_Lifecycle(t *testing.T) {
	t.Run("creates, renames and deletes a watchlist", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestWatchlistService(t, db)

		created, err := svc.CreateWatchlist(context.Background(), request.CreateWatchlistRequest{Name: "Tech"})
		if err != nil {
			t.Fatalf("CreateWatchlist() returned unexpected error: %v", err)
		}
		if created.Name != "Tech" {
			t.Errorf("Expected name Tech, got %s", created.Name)
		}
		if created.Stocks == nil || len(created.Stocks) != 0 {
			t.Errorf("Expected empty non-nil stocks, got %v", created.Stocks)
		}

		renamed, err := svc.RenameWatchlist(context.Background(), created.ID, request.UpdateWatchlistRequest{Name: "Big Tech"})
		if err != nil {
			t.Fatalf("RenameWatchlist() returned unexpected error: %v", err)
		}
		if renamed.Name != "Big Tech" {
			t.Errorf("Expected name Big Tech, got %s", renamed.Name)
		}

		if err := svc.DeleteWatchlist(context.Background(), created.ID); err != nil {
			t.Fatalf("DeleteWatchlist() returned unexpected error: %v", err)
		}
		if _, err := svc.GetWatchlist(created.ID); !errors.Is(err, apperrors.ErrWatchlistNotFound) {
			t.Errorf("Expected ErrWatchlistNotFound after delete, got %v", err)
		}
	})

	t.Run("rename of an unknown watchlist returns not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestWatchlistService(t, db)

		_, err := svc.RenameWatchlist(context.Background(), testutil.MakeID(), request.UpdateWatchlistRequest{Name: "X"})
		if !errors.Is(err, apperrors.ErrWatchlistNotFound) {
			t.Fatalf("Expected ErrWatchlistNotFound, got %v", err)
		}
	})
}

// TestWatchlistService_Membership tests adding and removing stocks.
//
// WHY: Memberships join against the market snapshot; duplicates must
// collapse to a no-op and unknown stocks must be rejected.
func TestWatchlistService_Membership(t *testing.T) {
	t.Run("adds and removes a stock", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestWatchlistService(t, db)
		watchlist := testutil.NewWatchlist().Build(t, db)
		stock := testutil.NewStock().Build(t, db)

		withStock, err := svc.AddStock(context.Background(), watchlist.ID, stock.ID)
		if err != nil {
			t.Fatalf("AddStock() returned unexpected error: %v", err)
		}
		if len(withStock.Stocks) != 1 || withStock.Stocks[0].ID != stock.ID {
			t.Errorf("Expected one member stock, got %v", withStock.Stocks)
		}

		without, err := svc.RemoveStock(context.Background(), watchlist.ID, stock.ID)
		if err != nil {
			t.Fatalf("RemoveStock() returned unexpected error: %v", err)
		}
		if len(without.Stocks) != 0 {
			t.Errorf("Expected no member stocks, got %v", without.Stocks)
		}
	})

	t.Run("adding the same stock twice is a no-op", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestWatchlistService(t, db)
		watchlist := testutil.NewWatchlist().Build(t, db)
		stock := testutil.NewStock().Build(t, db)

		if _, err := svc.AddStock(context.Background(), watchlist.ID, stock.ID); err != nil {
			t.Fatalf("AddStock() returned unexpected error: %v", err)
		}
		again, err := svc.AddStock(context.Background(), watchlist.ID, stock.ID)
		if err != nil {
			t.Fatalf("AddStock() second call returned unexpected error: %v", err)
		}
		if len(again.Stocks) != 1 {
			t.Errorf("Expected one member stock after duplicate add, got %d", len(again.Stocks))
		}
	})

	t.Run("adding an unknown stock returns not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestWatchlistService(t, db)
		watchlist := testutil.NewWatchlist().Build(t, db)

		_, err := svc.AddStock(context.Background(), watchlist.ID, testutil.MakeID())
		if !errors.Is(err, apperrors.ErrStockNotFound) {
			t.Fatalf("Expected ErrStockNotFound, got %v", err)
		}
	})

	t.Run("adding to an unknown watchlist returns not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestWatchlistService(t, db)
		stock := testutil.NewStock().Build(t, db)

		_, err := svc.AddStock(context.Background(), testutil.MakeID(), stock.ID)
		if !errors.Is(err, apperrors.ErrWatchlistNotFound) {
			t.Fatalf("Expected ErrWatchlistNotFound, got %v", err)
		}
	})
}
