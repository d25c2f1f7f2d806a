package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stockgame/Stock-Game-Backend/internal/api/handlers"
	"github.com/stockgame/Stock-Game-Backend/internal/api/request"
	"github.com/stockgame/Stock-Game-Backend/internal/model"
	"github.com/stockgame/Stock-Game-Backend/internal/repository"
	"github.com/stockgame/Stock-Game-Backend/internal/testutil"
)

func TestPositionHandler_Positions(t *testing.T) {
	t.Run("lists stored positions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.NewSharesPosition("Alice", "AAPL").Build(t, db)
		testutil.NewAllocationPosition("Bob", "MSFT").Build(t, db)

		handler := handlers.NewPositionHandler(repository.NewPositionRepository(db))
		req := httptest.NewRequest(http.MethodGet, "/api/position/", nil)
		rec := httptest.NewRecorder()

		handler.Positions(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rec.Code)
		}
		var positions []model.Position
		if err := json.NewDecoder(rec.Body).Decode(&positions); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(positions) != 2 {
			t.Errorf("Expected 2 positions, got %d", len(positions))
		}
	})

	t.Run("empty table returns an empty array", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPositionHandler(repository.NewPositionRepository(db))
		req := httptest.NewRequest(http.MethodGet, "/api/position/", nil)
		rec := httptest.NewRecorder()

		handler.Positions(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rec.Code)
		}
		if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
			t.Errorf("Expected empty JSON array, got %s", body)
		}
	})
}

func TestPositionHandler_CreatePosition(t *testing.T) {
	t.Run("creates a shares position", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPositionRepository(db)
		handler := handlers.NewPositionHandler(repo)

		body := request.CreatePositionRequest{
			Player:     "Alice",
			Symbol:     "AAPL",
			SizingMode: "shares",
			Shares:     10,
			EntryPrice: 100,
			EntryDate:  "2024-01-02",
		}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/position/", body)
		rec := httptest.NewRecorder()

		handler.CreatePosition(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
		}
		var created model.Position
		if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if created.ID == "" {
			t.Error("Expected a generated ID")
		}

		stored, err := repo.GetPosition(created.ID)
		if err != nil {
			t.Fatalf("Expected position to be stored: %v", err)
		}
		if stored.Player != "Alice" || stored.Shares != 10 {
			t.Errorf("Stored position mismatch: %+v", stored)
		}
	})

	t.Run("creates an allocation position", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPositionHandler(repository.NewPositionRepository(db))

		body := request.CreatePositionRequest{
			Player:     "Bob",
			Symbol:     "MSFT",
			SizingMode: "allocation",
			Fraction:   0.25,
			Bankroll:   2000,
			EntryDate:  "2024-01-02",
		}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/position/", body)
		rec := httptest.NewRecorder()

		handler.CreatePosition(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPositionHandler(repository.NewPositionRepository(db))

		req := httptest.NewRequest(http.MethodPost, "/api/position/", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()

		handler.CreatePosition(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rec.Code)
		}
	})

	t.Run("rejects an unparseable entry date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPositionHandler(repository.NewPositionRepository(db))

		body := request.CreatePositionRequest{
			Player:     "Alice",
			Symbol:     "AAPL",
			SizingMode: "shares",
			Shares:     10,
			EntryPrice: 100,
			EntryDate:  "02/01/2024",
		}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/position/", body)
		rec := httptest.NewRecorder()

		handler.CreatePosition(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rec.Code)
		}
	})

	t.Run("rejects invalid sizing", func(t *testing.T) {
		cases := []struct {
			name string
			body request.CreatePositionRequest
		}{
			{
				name: "shares mode without entry price",
				body: request.CreatePositionRequest{
					Player: "Alice", Symbol: "AAPL", SizingMode: "shares",
					Shares: 10, EntryDate: "2024-01-02",
				},
			},
			{
				name: "allocation mode without bankroll",
				body: request.CreatePositionRequest{
					Player: "Bob", Symbol: "MSFT", SizingMode: "allocation",
					Fraction: 0.5, EntryDate: "2024-01-02",
				},
			},
			{
				name: "missing entry date",
				body: request.CreatePositionRequest{
					Player: "Alice", Symbol: "AAPL", SizingMode: "shares",
					Shares: 10, EntryPrice: 100,
				},
			},
			{
				name: "unknown sizing mode",
				body: request.CreatePositionRequest{
					Player: "Alice", Symbol: "AAPL", SizingMode: "margin",
					Shares: 10, EntryPrice: 100, EntryDate: "2024-01-02",
				},
			},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				db := testutil.SetupTestDB(t)
				handler := handlers.NewPositionHandler(repository.NewPositionRepository(db))

				req := testutil.NewJSONRequest(t, http.MethodPost, "/api/position/", tc.body)
				rec := httptest.NewRecorder()

				handler.CreatePosition(rec, req)

				if rec.Code != http.StatusBadRequest {
					t.Errorf("Expected status 400, got %d", rec.Code)
				}
			})
		}
	})
}

func TestPositionHandler_DeletePosition(t *testing.T) {
	t.Run("deletes an existing position", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPositionRepository(db)
		handler := handlers.NewPositionHandler(repo)

		created := testutil.NewSharesPosition("Alice", "AAPL").Build(t, db)
		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/position/"+created.ID, map[string]string{"uuid": created.ID})
		rec := httptest.NewRecorder()

		handler.DeletePosition(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("Expected status 204, got %d", rec.Code)
		}
		if positions, _ := repo.GetPositions(); len(positions) != 0 {
			t.Errorf("Expected position to be deleted, found %d", len(positions))
		}
	})

	t.Run("unknown ID returns 404", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPositionHandler(repository.NewPositionRepository(db))

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/position/"+id, map[string]string{"uuid": id})
		rec := httptest.NewRecorder()

		handler.DeletePosition(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", rec.Code)
		}
	})
}
