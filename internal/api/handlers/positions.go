package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/stockgame/Stock-Game-Backend/internal/api/request"
	"github.com/stockgame/Stock-Game-Backend/internal/apperrors"
	"github.com/stockgame/Stock-Game-Backend/internal/model"
	"github.com/stockgame/Stock-Game-Backend/internal/repository"
	"github.com/stockgame/Stock-Game-Backend/internal/validation"
)

// PositionHandler handles position-related HTTP requests. Positions are the
// only stored entity; they enter through this boundary fully validated so
// the valuation pipeline never has to defend against malformed sizing.
type PositionHandler struct {
	positionRepo *repository.PositionRepository
}

// NewPositionHandler creates a new PositionHandler
func NewPositionHandler(positionRepo *repository.PositionRepository) *PositionHandler {
	return &PositionHandler{
		positionRepo: positionRepo,
	}
}

// Positions handles GET requests listing all stored positions.
//
// Endpoint: GET /api/position/
// Response: 200 OK with a (possibly empty) array of positions
func (h *PositionHandler) Positions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.positionRepo.GetPositions()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve positions")
		return
	}

	respondJSON(w, http.StatusOK, positions)
}

// CreatePosition handles POST requests creating a new position.
// The request body is validated before anything is stored; malformed
// sizing (non-positive entry price, negative allocation) is rejected here
// with 400.
//
// Endpoint: POST /api/position/
// Response: 201 Created with the stored position
func (h *PositionHandler) CreatePosition(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entryDate, err := validation.ParseTime(req.EntryDate)
	if err != nil && req.EntryDate != "" {
		respondError(w, http.StatusBadRequest, "invalid entry date")
		return
	}

	position := model.Position{
		ID:         uuid.New().String(),
		Player:     req.Player,
		Symbol:     req.Symbol,
		Mode:       model.SizingMode(req.SizingMode),
		Shares:     req.Shares,
		Fraction:   req.Fraction,
		Bankroll:   req.Bankroll,
		EntryPrice: req.EntryPrice,
		EntryDate:  entryDate,
	}

	if err := validation.ValidatePosition(position); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.positionRepo.CreatePosition(position); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create position")
		return
	}

	respondJSON(w, http.StatusCreated, position)
}

// DeletePosition handles DELETE requests removing a position by ID.
//
// Endpoint: DELETE /api/position/{uuid}
// Response: 204 No Content on success, 404 when the ID is unknown
func (h *PositionHandler) DeletePosition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	err := h.positionRepo.DeletePosition(id)
	if errors.Is(err, apperrors.ErrPositionNotFound) {
		respondError(w, http.StatusNotFound, "position not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete position")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
