package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stockfolio/backend/internal/api/middleware"
)

func requestWithUUID(uuid string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/portfolio/"+uuid, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("uuid", uuid)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// TestValidateUUIDMiddleware tests the shared path-parameter guard.
//
// WHY: Every ID-scoped route leans on this middleware; it must let
// valid UUIDs through and stop malformed ones with a 400 before any
// handler runs.
func TestValidateUUIDMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("passes a valid UUID through", func(t *testing.T) {
		rec := httptest.NewRecorder()

		middleware.ValidateUUIDMiddleware(next).ServeHTTP(rec, requestWithUUID("a3bb189e-8bf9-3888-9912-ace4e6543002"))

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("rejects a malformed UUID", func(t *testing.T) {
		rec := httptest.NewRecorder()

		middleware.ValidateUUIDMiddleware(next).ServeHTTP(rec, requestWithUUID("not-a-uuid"))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("rejects a missing UUID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/", nil)
		rec := httptest.NewRecorder()

		middleware.ValidateUUIDMiddleware(next).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}
