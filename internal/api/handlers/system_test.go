package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stockfolio/backend/internal/api/handlers"
	"github.com/stockfolio/backend/internal/api/request"
	"github.com/stockfolio/backend/internal/service"
	"github.com/stockfolio/backend/internal/testutil"
)

// TestSystemHandler_Health tests the health endpoint.
//
// WHY: Load balancers and probes depend on this status flipping to 503
// when the database goes away.
func TestSystemHandler_Health(t *testing.T) {
	t.Run("returns 200 when the database is reachable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewSystemHandler(
			service.NewSystemService(db),
			testutil.NewTestStockService(t, db, testutil.NewMarketClient()),
		)

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		rec := httptest.NewRecorder()

		handler.Health(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		body := testutil.DecodeJSON[map[string]string](t, rec)
		if body["status"] != "ok" {
			t.Errorf("Expected status ok, got %v", body)
		}
	})

	t.Run("returns 503 when the database is closed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewSystemHandler(
			service.NewSystemService(db),
			testutil.NewTestStockService(t, db, testutil.NewMarketClient()),
		)
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		rec := httptest.NewRecorder()

		handler.Health(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("Expected 503, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

// TestSystemHandler_SetAPIKey tests storing the provider key.
//
// WHY: The key endpoint takes a secret; empty input must be rejected
// before anything touches the settings table.
func TestSystemHandler_SetAPIKey(t *testing.T) {
	t.Run("returns 204 and stores the key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewSystemHandler(
			service.NewSystemService(db),
			testutil.NewTestStockService(t, db, testutil.NewMarketClient()),
		)

		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/system/apikey",
			request.SetAPIKeyRequest{APIKey: "super-secret"}, nil)
		rec := httptest.NewRecorder()

		handler.SetAPIKey(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("Expected 204, got %d: %s", rec.Code, rec.Body.String())
		}

		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM setting`).Scan(&count); err != nil {
			t.Fatalf("Failed to count settings: %v", err)
		}
		if count != 1 {
			t.Errorf("Expected 1 stored setting, got %d", count)
		}
	})

	t.Run("returns 400 for an empty key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewSystemHandler(
			service.NewSystemService(db),
			testutil.NewTestStockService(t, db, testutil.NewMarketClient()),
		)

		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/system/apikey",
			request.SetAPIKeyRequest{APIKey: "  "}, nil)
		rec := httptest.NewRecorder()

		handler.SetAPIKey(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}
