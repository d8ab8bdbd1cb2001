package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stockfolio/backend/internal/api/handlers"
	"github.com/stockfolio/backend/internal/api/request"
	"github.com/stockfolio/backend/internal/model"
	"github.com/stockfolio/backend/internal/testutil"
)

// TestWatchlistHandler_CreateWatchlist tests the watchlist write endpoint.
//
// WHY: A fresh watchlist must come back with an empty (not null) stocks
// array so the frontend can render it without guards.
func TestWatchlistHandler_CreateWatchlist(t *testing.T) {
	t.Run("returns 201 with an empty stocks array", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewWatchlistHandler(testutil.NewTestWatchlistService(t, db))

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/watchlist", request.CreateWatchlistRequest{
			Name: "Tech",
		}, nil)
		rec := httptest.NewRecorder()

		handler.CreateWatchlist(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		created := testutil.DecodeJSON[model.Watchlist](t, rec)
		if created.Name != "Tech" {
			t.Errorf("Expected name Tech, got %q", created.Name)
		}
		if created.Stocks == nil || len(created.Stocks) != 0 {
			t.Errorf("Expected empty stocks array, got %v", created.Stocks)
		}
	})

	t.Run("returns 400 for a blank name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewWatchlistHandler(testutil.NewTestWatchlistService(t, db))

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/watchlist", request.CreateWatchlistRequest{
			Name: "  ",
		}, nil)
		rec := httptest.NewRecorder()

		handler.CreateWatchlist(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

// TestWatchlistHandler_Membership tests adding and removing stocks.
//
// WHY: Both endpoints return the updated watchlist so the frontend can
// refresh in place; missing entities must map to a 404, not a 500.
func TestWatchlistHandler_Membership(t *testing.T) {
	t.Run("add returns the updated watchlist", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewWatchlistHandler(testutil.NewTestWatchlistService(t, db))
		watchlist := testutil.NewWatchlist().Build(t, db)
		stock := testutil.NewStock().WithSymbol("AAPL").Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodPost,
			"/api/watchlist/"+watchlist.ID+"/stock/"+stock.ID,
			map[string]string{"uuid": watchlist.ID, "stockUuid": stock.ID})
		rec := httptest.NewRecorder()

		handler.AddStock(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		updated := testutil.DecodeJSON[model.Watchlist](t, rec)
		if len(updated.Stocks) != 1 || updated.Stocks[0].Symbol != "AAPL" {
			t.Errorf("Expected AAPL on the watchlist, got %v", updated.Stocks)
		}
	})

	t.Run("add returns 404 for an unknown stock", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewWatchlistHandler(testutil.NewTestWatchlistService(t, db))
		watchlist := testutil.NewWatchlist().Build(t, db)
		stockID := testutil.MakeID()

		req := testutil.NewRequestWithURLParams(http.MethodPost,
			"/api/watchlist/"+watchlist.ID+"/stock/"+stockID,
			map[string]string{"uuid": watchlist.ID, "stockUuid": stockID})
		rec := httptest.NewRecorder()

		handler.AddStock(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("Expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("add returns 400 for a malformed stock ID", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewWatchlistHandler(testutil.NewTestWatchlistService(t, db))
		watchlist := testutil.NewWatchlist().Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodPost,
			"/api/watchlist/"+watchlist.ID+"/stock/nope",
			map[string]string{"uuid": watchlist.ID, "stockUuid": "nope"})
		rec := httptest.NewRecorder()

		handler.AddStock(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("remove returns the updated watchlist", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestWatchlistService(t, db)
		handler := handlers.NewWatchlistHandler(svc)
		watchlist := testutil.NewWatchlist().Build(t, db)
		stock := testutil.NewStock().WithSymbol("AAPL").Build(t, db)
		if _, err := svc.AddStock(context.Background(), watchlist.ID, stock.ID); err != nil {
			t.Fatalf("AddStock() returned unexpected error: %v", err)
		}

		req := testutil.NewRequestWithURLParams(http.MethodDelete,
			"/api/watchlist/"+watchlist.ID+"/stock/"+stock.ID,
			map[string]string{"uuid": watchlist.ID, "stockUuid": stock.ID})
		rec := httptest.NewRecorder()

		handler.RemoveStock(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		updated := testutil.DecodeJSON[model.Watchlist](t, rec)
		if len(updated.Stocks) != 0 {
			t.Errorf("Expected empty watchlist after removal, got %v", updated.Stocks)
		}
	})
}
