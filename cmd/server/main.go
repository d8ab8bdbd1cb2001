package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/stockfolio/backend/internal/api"
	"github.com/stockfolio/backend/internal/assistant"
	"github.com/stockfolio/backend/internal/config"
	"github.com/stockfolio/backend/internal/database"
	"github.com/stockfolio/backend/internal/marketdata"
	"github.com/stockfolio/backend/internal/repository"
	"github.com/stockfolio/backend/internal/secrets"
	"github.com/stockfolio/backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection and apply migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Secrets codec for the stored provider key
	var codec *secrets.Codec
	if cfg.Secrets.FernetKey != "" {
		codec, err = secrets.NewCodec(cfg.Secrets.FernetKey)
		if err != nil {
			log.Fatalf("Failed to initialize secrets codec: %v", err)
		}
	} else {
		log.Println("FERNET_KEY not set; stored API keys will not survive a restart")
		codec, err = secrets.NewEphemeralCodec()
		if err != nil {
			log.Fatalf("Failed to initialize secrets codec: %v", err)
		}
	}

	// Create repositories
	portfolioRepo := repository.NewPortfolioRepository(db)
	stockRepo := repository.NewStockRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	watchlistRepo := repository.NewWatchlistRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Market data provider
	market := marketdata.NewFinnhubClient(cfg.MarketData.ConversionRate)

	// Create services
	systemService := service.NewSystemService(db)
	stockService := service.NewStockService(
		stockRepo,
		settingRepo,
		codec,
		market,
		cfg.MarketData.APIKey,
	)
	transactionService := service.NewTransactionService(
		transactionRepo,
		portfolioRepo,
		stockRepo,
	)
	portfolioService := service.NewPortfolioService(
		portfolioRepo,
		transactionRepo,
		stockRepo,
		stockService,
	)
	watchlistService := service.NewWatchlistService(watchlistRepo, stockRepo)
	responder := assistant.NewResponder(portfolioService)

	// Periodic quote refresh
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.MarketData.RefreshCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		stockService.RefreshQuotes(ctx)
	}); err != nil {
		log.Fatalf("Failed to schedule quote refresh: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Portfolio:   portfolioService,
		Stock:       stockService,
		Transaction: transactionService,
		Watchlist:   watchlistService,
		Assistant:   responder,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
