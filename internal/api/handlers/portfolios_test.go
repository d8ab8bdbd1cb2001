package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stockfolio/backend/internal/api/handlers"
	"github.com/stockfolio/backend/internal/api/request"
	"github.com/stockfolio/backend/internal/model"
	"github.com/stockfolio/backend/internal/testutil"
)

// TestPortfolioHandler_CreatePortfolio tests the portfolio write endpoint.
//
// WHY: Creation drives the validation layer's field-map errors through
// the HTTP contract: valid input is a 201, bad input a 400 with details.
func TestPortfolioHandler_CreatePortfolio(t *testing.T) {
	t.Run("returns 201 for a valid portfolio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, testutil.NewMarketClient()))

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/portfolio", request.CreatePortfolioRequest{
			Name: "Growth",
		}, nil)
		rec := httptest.NewRecorder()

		handler.CreatePortfolio(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		created := testutil.DecodeJSON[model.Portfolio](t, rec)
		if created.Name != "Growth" || created.ID == "" {
			t.Errorf("Unexpected created portfolio: %+v", created)
		}
	})

	t.Run("returns 400 for a missing name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, testutil.NewMarketClient()))

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/portfolio", request.CreatePortfolioRequest{}, nil)
		rec := httptest.NewRecorder()

		handler.CreatePortfolio(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

// TestPortfolioHandler_Holdings tests the holdings read endpoint.
//
// WHY: Holdings are the most-read derived view; the handler must pass
// through the engine's numbers and 404 on unknown portfolios.
func TestPortfolioHandler_Holdings(t *testing.T) {
	t.Run("returns derived holdings", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, testutil.NewMarketClient()))
		portfolio := testutil.NewPortfolio().Build(t, db)
		stock := testutil.NewStock().WithSymbol("AAPL").WithPrice(130).Build(t, db)
		testutil.NewTransaction(portfolio.ID, stock.ID).Buy(10, 100).Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/portfolio/"+portfolio.ID+"/holdings",
			map[string]string{"uuid": portfolio.ID})
		rec := httptest.NewRecorder()

		handler.Holdings(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		holdings := testutil.DecodeJSON[[]model.Holding](t, rec)
		if len(holdings) != 1 {
			t.Fatalf("Expected 1 holding, got %d", len(holdings))
		}
		if holdings[0].Quantity != 10 || holdings[0].CurrentValue != 1300 {
			t.Errorf("Unexpected holding: %+v", holdings[0])
		}
	})

	t.Run("returns 404 for an unknown portfolio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, testutil.NewMarketClient()))
		id := testutil.MakeID()

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/portfolio/"+id+"/holdings",
			map[string]string{"uuid": id})
		rec := httptest.NewRecorder()

		handler.Holdings(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("Expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

// TestPortfolioHandler_Summary tests the aggregate endpoint.
//
// WHY: The summary response shape is consumed directly by the
// dashboard; totals and allocation must survive the HTTP round trip.
func TestPortfolioHandler_Summary(t *testing.T) {
	t.Run("returns aggregated totals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, testutil.NewMarketClient()))
		portfolio := testutil.NewPortfolio().Build(t, db)
		stock := testutil.NewStock().WithSymbol("AAPL").WithPrice(100).Build(t, db)
		testutil.NewTransaction(portfolio.ID, stock.ID).Buy(10, 80).Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/summary", nil)
		rec := httptest.NewRecorder()

		handler.Summary(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		totals := testutil.DecodeJSON[model.AggregateTotals](t, rec)
		if totals.TotalCurrentValue != 1000 || totals.TotalInvestedValue != 800 || totals.Profit != 200 {
			t.Errorf("Unexpected totals: %+v", totals)
		}
		if totals.SymbolValues["AAPL"] != 1000 {
			t.Errorf("Unexpected allocation: %v", totals.SymbolValues)
		}
	})
}

// TestPortfolioHandler_Performance tests the performance endpoint's
// parameter handling.
//
// WHY: The range token and top count are user input; bad values must
// become 400s, not provider calls.
func TestPortfolioHandler_Performance(t *testing.T) {
	t.Run("returns 400 for an unsupported range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, testutil.NewMarketClient()))

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/performance?range=9Q", nil)
		rec := httptest.NewRecorder()

		handler.Performance(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 for a non-numeric top", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, testutil.NewMarketClient()))

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/performance?range=1M&top=lots", nil)
		rec := httptest.NewRecorder()

		handler.Performance(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns an empty series when nothing is held", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, testutil.NewMarketClient()))

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/performance", nil)
		rec := httptest.NewRecorder()

		handler.Performance(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		series := testutil.DecodeJSON[model.MergedSeries](t, rec)
		if len(series.Dates) != 0 {
			t.Errorf("Expected empty series, got %v", series.Dates)
		}
	})
}
