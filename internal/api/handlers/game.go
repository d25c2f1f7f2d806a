package handlers

import (
	"errors"
	"net/http"

	"github.com/stockgame/Stock-Game-Backend/internal/apperrors"
	"github.com/stockgame/Stock-Game-Backend/internal/service"
)

// GameHandler serves the computed valuation tables: leaderboard, current
// portfolio snapshots, and per-player historical series. All three are
// derived per request from stored positions and (cached) price history;
// nothing is persisted.
type GameHandler struct {
	gameService *service.GameService
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(gameService *service.GameService) *GameHandler {
	return &GameHandler{
		gameService: gameService,
	}
}

// LeaderboardResponse wraps the ranked entries with the metric they were
// scored by.
type LeaderboardResponse struct {
	Metric  string      `json:"metric"`
	Entries interface{} `json:"entries"`
}

// Leaderboard handles GET requests for the current player rankings.
// An empty game (no positions, or no symbol ever resolved) returns an
// empty entry list, not an error.
//
// Endpoint: GET /api/game/leaderboard
func (h *GameHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.gameService.Leaderboard(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to compute leaderboard")
		return
	}

	respondJSON(w, http.StatusOK, LeaderboardResponse{
		Metric:  string(h.gameService.RankingMetric()),
		Entries: entries,
	})
}

// Portfolio handles GET requests for current position snapshots, optionally
// filtered to one player via ?player=. Filtering on a player with no stored
// positions returns 404.
//
// Endpoint: GET /api/game/portfolio
func (h *GameHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	player := r.URL.Query().Get("player")

	snapshots, err := h.gameService.PortfolioDetails(r.Context(), player)
	if errors.Is(err, apperrors.ErrPlayerNotFound) {
		respondError(w, http.StatusNotFound, "player not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to compute portfolio details")
		return
	}

	respondJSON(w, http.StatusOK, snapshots)
}

// History handles GET requests for the aggregated per-player value and
// return series over the full history window.
//
// Endpoint: GET /api/game/history
func (h *GameHandler) History(w http.ResponseWriter, r *http.Request) {
	points, err := h.gameService.History(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to compute history")
		return
	}

	respondJSON(w, http.StatusOK, points)
}

// Refresh handles POST requests that drop all memoized price data so the
// next valuation re-fetches from the provider. In-flight fetches are not
// cancelled; they complete into a cache the next request may overwrite.
//
// Endpoint: POST /api/game/refresh
func (h *GameHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.gameService.Refresh()
	respondJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}
