// Package api wires the HTTP surface: the chi router, its middleware
// stack and the handler set.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/stockfolio/backend/internal/api/handlers"
	custommiddleware "github.com/stockfolio/backend/internal/api/middleware"
	"github.com/stockfolio/backend/internal/assistant"
	"github.com/stockfolio/backend/internal/config"
	"github.com/stockfolio/backend/internal/service"
)

// Services bundles the service layer dependencies of the router.
type Services struct {
	System      *service.SystemService
	Portfolio   *service.PortfolioService
	Stock       *service.StockService
	Transaction *service.TransactionService
	Watchlist   *service.WatchlistService
	Assistant   *assistant.Responder
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System, svc.Stock)
			r.Get("/health", systemHandler.Health)
			r.Put("/apikey", systemHandler.SetAPIKey)
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(svc.Portfolio)
			r.Get("/", portfolioHandler.Portfolios)
			r.Post("/", portfolioHandler.CreatePortfolio)
			r.Get("/summary", portfolioHandler.Summary)
			r.Get("/performance", portfolioHandler.Performance)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", portfolioHandler.GetPortfolio)
				r.Delete("/", portfolioHandler.DeletePortfolio)
				r.Get("/holdings", portfolioHandler.Holdings)
			})
		})

		r.Route("/stock", func(r chi.Router) {
			stockHandler := handlers.NewStockHandler(svc.Stock)
			r.Get("/", stockHandler.Stocks)
			r.Post("/", stockHandler.CreateStock)
			r.Get("/symbol/{symbol}", stockHandler.GetStockBySymbol)
			r.Get("/history/{symbol}/{range}", stockHandler.History)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", stockHandler.GetStock)
				r.Delete("/", stockHandler.DeleteStock)
				r.Get("/trend", stockHandler.Trend)
			})
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(svc.Transaction)
			r.Get("/", transactionHandler.AllTransactions)
			r.Post("/", transactionHandler.CreateTransaction)

			r.Route("/portfolio/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.TransactionPerPortfolio)
			})

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/watchlist", func(r chi.Router) {
			watchlistHandler := handlers.NewWatchlistHandler(svc.Watchlist)
			r.Get("/", watchlistHandler.Watchlists)
			r.Post("/", watchlistHandler.CreateWatchlist)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", watchlistHandler.GetWatchlist)
				r.Put("/", watchlistHandler.UpdateWatchlist)
				r.Delete("/", watchlistHandler.DeleteWatchlist)
				r.Post("/stock/{stockUuid}", watchlistHandler.AddStock)
				r.Delete("/stock/{stockUuid}", watchlistHandler.RemoveStock)
			})
		})

		r.Route("/assistant", func(r chi.Router) {
			assistantHandler := handlers.NewAssistantHandler(svc.Assistant)
			r.Post("/message", assistantHandler.Message)
		})
	})

	return r
}
