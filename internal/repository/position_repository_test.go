package repository_test

import (
	"errors"
	"testing"

	"github.com/stockgame/Stock-Game-Backend/internal/apperrors"
	"github.com/stockgame/Stock-Game-Backend/internal/model"
	"github.com/stockgame/Stock-Game-Backend/internal/repository"
	"github.com/stockgame/Stock-Game-Backend/internal/testutil"
)

func TestPositionRepository_CreateAndGet(t *testing.T) {
	t.Run("round-trips a shares position", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPositionRepository(db)

		created := testutil.NewSharesPosition("Alice", "AAPL").
			WithShares(12).
			WithEntryPrice(150.25).
			WithEntryDate("2024-02-15").
			Build(t, db)

		got, err := repo.GetPosition(created.ID)
		if err != nil {
			t.Fatalf("GetPosition failed: %v", err)
		}

		if got.Player != "Alice" || got.Symbol != "AAPL" {
			t.Errorf("Expected Alice/AAPL, got %s/%s", got.Player, got.Symbol)
		}
		if got.Mode != model.SizingShares {
			t.Errorf("Expected shares mode, got %s", got.Mode)
		}
		if got.Shares != 12 || got.EntryPrice != 150.25 {
			t.Errorf("Expected 12 shares at 150.25, got %v at %v", got.Shares, got.EntryPrice)
		}
		if got.EntryDate.Format("2006-01-02") != "2024-02-15" {
			t.Errorf("Expected entry date 2024-02-15, got %v", got.EntryDate)
		}
	})

	t.Run("round-trips an allocation position with null sizing fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPositionRepository(db)

		created := testutil.NewAllocationPosition("Bob", "MSFT").
			WithFraction(0.25).
			WithBankroll(2000).
			Build(t, db)

		got, err := repo.GetPosition(created.ID)
		if err != nil {
			t.Fatalf("GetPosition failed: %v", err)
		}

		if got.Mode != model.SizingAllocation {
			t.Errorf("Expected allocation mode, got %s", got.Mode)
		}
		if got.Fraction != 0.25 || got.Bankroll != 2000 {
			t.Errorf("Expected 0.25 of 2000, got %v of %v", got.Fraction, got.Bankroll)
		}
		// Shares and entry price are unused in this mode and stored NULL.
		if got.Shares != 0 || got.EntryPrice != 0 {
			t.Errorf("Expected zero shares and entry price, got %v and %v", got.Shares, got.EntryPrice)
		}
	})

	t.Run("unknown ID returns ErrPositionNotFound", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPositionRepository(db)

		_, err := repo.GetPosition(testutil.MakeID())
		if !errors.Is(err, apperrors.ErrPositionNotFound) {
			t.Errorf("Expected ErrPositionNotFound, got %v", err)
		}
	})
}

func TestPositionRepository_GetPositions(t *testing.T) {
	t.Run("empty table yields an empty slice", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPositionRepository(db)

		positions, err := repo.GetPositions()
		if err != nil {
			t.Fatalf("GetPositions failed: %v", err)
		}
		if positions == nil || len(positions) != 0 {
			t.Errorf("Expected empty non-nil slice, got %v", positions)
		}
	})

	t.Run("orders by player then symbol", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPositionRepository(db)

		testutil.NewSharesPosition("Bob", "AAPL").Build(t, db)
		testutil.NewSharesPosition("Alice", "MSFT").Build(t, db)
		testutil.NewSharesPosition("Alice", "AAPL").Build(t, db)

		positions, err := repo.GetPositions()
		if err != nil {
			t.Fatalf("GetPositions failed: %v", err)
		}

		if len(positions) != 3 {
			t.Fatalf("Expected 3 positions, got %d", len(positions))
		}
		want := []struct{ player, symbol string }{
			{"Alice", "AAPL"},
			{"Alice", "MSFT"},
			{"Bob", "AAPL"},
		}
		for i, w := range want {
			if positions[i].Player != w.player || positions[i].Symbol != w.symbol {
				t.Errorf("Position %d: expected %s/%s, got %s/%s", i, w.player, w.symbol, positions[i].Player, positions[i].Symbol)
			}
		}
	})
}

func TestPositionRepository_DeletePosition(t *testing.T) {
	t.Run("removes an existing position", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPositionRepository(db)

		created := testutil.NewSharesPosition("Alice", "AAPL").Build(t, db)

		if err := repo.DeletePosition(created.ID); err != nil {
			t.Fatalf("DeletePosition failed: %v", err)
		}
		if _, err := repo.GetPosition(created.ID); !errors.Is(err, apperrors.ErrPositionNotFound) {
			t.Errorf("Expected position to be gone, got %v", err)
		}
	})

	t.Run("unknown ID returns ErrPositionNotFound", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPositionRepository(db)

		if err := repo.DeletePosition(testutil.MakeID()); !errors.Is(err, apperrors.ErrPositionNotFound) {
			t.Errorf("Expected ErrPositionNotFound, got %v", err)
		}
	})
}
