package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stockfolio/backend/internal/api/handlers"
	"github.com/stockfolio/backend/internal/api/request"
	"github.com/stockfolio/backend/internal/model"
	"github.com/stockfolio/backend/internal/testutil"
)

// TestTransactionHandler_CreateTransaction tests the transaction write endpoint.
//
// WHY: This endpoint maps the service's domain errors onto status
// codes; the 409 for an oversold position is part of the API contract.
func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 for a valid buy", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))
		portfolio := testutil.NewPortfolio().Build(t, db)
		stock := testutil.NewStock().Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/transaction", request.CreateTransactionRequest{
			PortfolioID:  portfolio.ID,
			StockID:      stock.ID,
			Type:         model.TransactionBuy,
			Amount:       10,
			PricePerUnit: 100,
		}, nil)
		rec := httptest.NewRecorder()

		handler.CreateTransaction(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		created := testutil.DecodeJSON[model.Transaction](t, rec)
		if created.Amount != 10 || created.Type != model.TransactionBuy {
			t.Errorf("Unexpected created transaction: %+v", created)
		}
	})

	t.Run("returns 409 when a sell exceeds holdings", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))
		portfolio := testutil.NewPortfolio().Build(t, db)
		stock := testutil.NewStock().Build(t, db)
		testutil.NewTransaction(portfolio.ID, stock.ID).Buy(5, 100).Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/transaction", request.CreateTransactionRequest{
			PortfolioID:  portfolio.ID,
			StockID:      stock.ID,
			Type:         model.TransactionSell,
			Amount:       6,
			PricePerUnit: 100,
		}, nil)
		rec := httptest.NewRecorder()

		handler.CreateTransaction(rec, req)

		if rec.Code != http.StatusConflict {
			t.Fatalf("Expected 409, got %d: %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "insufficient holdings") {
			t.Errorf("Expected insufficient holdings message, got %s", rec.Body.String())
		}
	})

	t.Run("returns 400 for a validation failure", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/transaction", request.CreateTransactionRequest{
			PortfolioID:  testutil.MakeID(),
			StockID:      testutil.MakeID(),
			Type:         "HOLD",
			Amount:       -1,
			PricePerUnit: 100,
		}, nil)
		rec := httptest.NewRecorder()

		handler.CreateTransaction(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 for a malformed body", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		req := httptest.NewRequest(http.MethodPost, "/api/transaction", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()

		handler.CreateTransaction(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 404 for an unknown portfolio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))
		stock := testutil.NewStock().Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/transaction", request.CreateTransactionRequest{
			PortfolioID:  testutil.MakeID(),
			StockID:      stock.ID,
			Type:         model.TransactionBuy,
			Amount:       1,
			PricePerUnit: 100,
		}, nil)
		rec := httptest.NewRecorder()

		handler.CreateTransaction(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("Expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

// TestTransactionHandler_DeleteTransaction tests the delete endpoint.
//
// WHY: Deletes must report 204 on success and 404 for unknown rows.
func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	t.Run("returns 204 for an existing transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))
		portfolio := testutil.NewPortfolio().Build(t, db)
		stock := testutil.NewStock().Build(t, db)
		transaction := testutil.NewTransaction(portfolio.ID, stock.ID).Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/transaction/"+transaction.ID,
			map[string]string{"uuid": transaction.ID})
		rec := httptest.NewRecorder()

		handler.DeleteTransaction(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("Expected 204, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 404 for an unknown transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))
		id := testutil.MakeID()

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/transaction/"+id,
			map[string]string{"uuid": id})
		rec := httptest.NewRecorder()

		handler.DeleteTransaction(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("Expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}
