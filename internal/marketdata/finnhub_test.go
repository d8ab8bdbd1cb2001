package marketdata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stockfolio/backend/internal/apperrors"
)

func newTestClient(t *testing.T, handler http.Handler, conversionRate float64) *FinnhubClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewFinnhubClient(conversionRate)
	client.baseURL = server.URL
	return client
}

// TestValidRange tests the supported range tokens.
//
// WHY: These four tokens are the whole vocabulary callers may use; the
// set gates both the HTTP layer and the performance fan-out.
func TestValidRange(t *testing.T) {
	for _, rng := range []string{"1D", "1W", "1M", "1Y"} {
		if !ValidRange(rng) {
			t.Errorf("Expected %s to be valid", rng)
		}
	}
	for _, rng := range []string{"", "1d", "2W", "5Y", "MAX"} {
		if ValidRange(rng) {
			t.Errorf("Expected %s to be invalid", rng)
		}
	}
}

// TestFinnhubClient_Quote tests quote fetching and currency conversion.
//
// WHY: The provider boundary owns USD-to-display-currency conversion
// and the percent-change fallback; both rules live in this one method.
func TestFinnhubClient_Quote(t *testing.T) {
	t.Run("converts the price at the boundary", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"c": 100, "dp": 1.5, "pc": 98}`)
		}), 2)

		quote, err := client.Quote(context.Background(), "AAPL", "key")
		if err != nil {
			t.Fatalf("Quote() returned unexpected error: %v", err)
		}

		if quote.CurrentPrice != 200 {
			t.Errorf("Expected converted price 200, got %v", quote.CurrentPrice)
		}
		if quote.ChangePercent != 1.5 {
			t.Errorf("Expected change percent 1.5, got %v", quote.ChangePercent)
		}
	})

	t.Run("derives change percent from previous close when omitted", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"c": 110, "pc": 100}`)
		}), 1)

		quote, err := client.Quote(context.Background(), "AAPL", "key")
		if err != nil {
			t.Fatalf("Quote() returned unexpected error: %v", err)
		}

		if quote.ChangePercent != 10 {
			t.Errorf("Expected derived change percent 10, got %v", quote.ChangePercent)
		}
	})

	t.Run("rejects an empty quote", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"c": 0}`)
		}), 1)

		_, err := client.Quote(context.Background(), "GHOST", "key")
		if !errors.Is(err, apperrors.ErrFailedToFetchQuote) {
			t.Fatalf("Expected ErrFailedToFetchQuote, got %v", err)
		}
	})

	t.Run("surfaces non-200 provider responses", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}), 1)

		_, err := client.Quote(context.Background(), "AAPL", "key")
		if err == nil {
			t.Fatal("Expected an error for a 429 response")
		}
	})
}

// TestFinnhubClient_History tests candle fetching and date keying.
//
// WHY: History keys feed the time-series merge, which depends on
// fixed-width YYYY-MM-DD dates; this is where that format is minted.
func TestFinnhubClient_History(t *testing.T) {
	t.Run("keys closes by YYYY-MM-DD", func(t *testing.T) {
		day := time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC).Unix()
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `{"s": "ok", "t": [%d], "c": [123.4]}`, day)
		}), 1)

		history, err := client.History(context.Background(), "AAPL", "1M", "key")
		if err != nil {
			t.Fatalf("History() returned unexpected error: %v", err)
		}

		if history["2024-01-02"] != 123.4 {
			t.Errorf("Unexpected history: %v", history)
		}
	})

	t.Run("rejects an unsupported range without calling the provider", func(t *testing.T) {
		called := false
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}), 1)

		_, err := client.History(context.Background(), "AAPL", "6M", "key")
		if !errors.Is(err, apperrors.ErrInvalidRange) {
			t.Fatalf("Expected ErrInvalidRange, got %v", err)
		}
		if called {
			t.Error("Expected no provider call for an invalid range")
		}
	})

	t.Run("treats a no_data status as a fetch failure", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"s": "no_data"}`)
		}), 1)

		_, err := client.History(context.Background(), "GHOST", "1M", "key")
		if !errors.Is(err, apperrors.ErrFailedToFetchHistory) {
			t.Fatalf("Expected ErrFailedToFetchHistory, got %v", err)
		}
	})
}
