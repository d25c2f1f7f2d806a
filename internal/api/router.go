package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/stockgame/Stock-Game-Backend/internal/api/handlers"
	custommiddleware "github.com/stockgame/Stock-Game-Backend/internal/api/middleware"
	"github.com/stockgame/Stock-Game-Backend/internal/config"
	"github.com/stockgame/Stock-Game-Backend/internal/repository"
	"github.com/stockgame/Stock-Game-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	gameService *service.GameService,
	positionRepo *repository.PositionRepository,
	cfg *config.Config,
) http.Handler {
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
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		// Position store boundary
		r.Route("/position", func(r chi.Router) {
			positionHandler := handlers.NewPositionHandler(positionRepo)
			r.Get("/", positionHandler.Positions)
			r.Post("/", positionHandler.CreatePosition)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Delete("/", positionHandler.DeletePosition)
			})
		})

		// Valuation pipeline outputs
		r.Route("/game", func(r chi.Router) {
			gameHandler := handlers.NewGameHandler(gameService)
			r.Get("/leaderboard", gameHandler.Leaderboard)
			r.Get("/portfolio", gameHandler.Portfolio)
			r.Get("/history", gameHandler.History)
			r.Post("/refresh", gameHandler.Refresh)
		})
	})

	return r
}
