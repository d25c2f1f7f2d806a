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

	"github.com/stockgame/Stock-Game-Backend/internal/api"
	"github.com/stockgame/Stock-Game-Backend/internal/cache"
	"github.com/stockgame/Stock-Game-Backend/internal/config"
	"github.com/stockgame/Stock-Game-Backend/internal/database"
	"github.com/stockgame/Stock-Game-Backend/internal/repository"
	"github.com/stockgame/Stock-Game-Backend/internal/service"
	"github.com/stockgame/Stock-Game-Backend/internal/yahoo"
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

	// Create repositories
	positionRepo := repository.NewPositionRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	yahooClient := yahoo.NewFinanceClient()
	priceService := service.NewPriceService(yahooClient, cfg.Game.FetchMaxRetries, cfg.Game.FetchRetryDelay)
	valuationService := service.NewValuationService()
	leaderboardService := service.NewLeaderboardService(cfg.Game.RankingMetric)
	priceCache := cache.New(cfg.Game.CacheTTL, nil)
	gameService := service.NewGameService(
		positionRepo,
		priceService,
		valuationService,
		leaderboardService,
		priceCache,
		cfg.Game.HistoryStart,
		nil,
	)

	// Periodic cache refresh: drop memoized price data so the next
	// valuation request re-fetches from the provider.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Game.RefreshSchedule, func() {
		log.Println("Scheduled refresh: invalidating price cache")
		gameService.Refresh()
	}); err != nil {
		log.Fatalf("Invalid refresh schedule %q: %v", cfg.Game.RefreshSchedule, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(systemService, gameService, positionRepo, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:        cfg.Server.Addr,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// A cold-cache valuation blocks on the provider fetch plus its
		// retry budget; give it room before cutting the response off.
		WriteTimeout: 60 * time.Second,
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
