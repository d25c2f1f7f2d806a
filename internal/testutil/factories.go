package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stockgame/Stock-Game-Backend/internal/model"
	"github.com/stockgame/Stock-Game-Backend/internal/repository"
)

// PositionBuilder provides a fluent interface for creating test positions.
//
// Example usage:
//
//	// Shares-mode position with defaults
//	pos := testutil.NewSharesPosition("Alice", "AAPL").Build(t, db)
//
//	// Allocation-mode position
//	pos := testutil.NewAllocationPosition("Bob", "MSFT").
//	    WithFraction(0.25).
//	    WithBankroll(2000).
//	    Build(t, db)
type PositionBuilder struct {
	position model.Position
}

// NewSharesPosition creates a builder for a shares-mode position with
// sensible defaults: 10 shares at an entry price of 100.
func NewSharesPosition(player, symbol string) *PositionBuilder {
	return &PositionBuilder{
		position: model.Position{
			ID:         MakeID(),
			Player:     player,
			Symbol:     symbol,
			Mode:       model.SizingShares,
			Shares:     10,
			EntryPrice: 100,
			EntryDate:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		},
	}
}

// NewAllocationPosition creates a builder for an allocation-mode position
// with sensible defaults: half of a 1000 bankroll.
func NewAllocationPosition(player, symbol string) *PositionBuilder {
	return &PositionBuilder{
		position: model.Position{
			ID:        MakeID(),
			Player:    player,
			Symbol:    symbol,
			Mode:      model.SizingAllocation,
			Fraction:  0.5,
			Bankroll:  1000,
			EntryDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		},
	}
}

// WithID sets a custom ID.
func (b *PositionBuilder) WithID(id string) *PositionBuilder {
	b.position.ID = id
	return b
}

// WithShares sets the unit count for a shares-mode position.
func (b *PositionBuilder) WithShares(shares float64) *PositionBuilder {
	b.position.Shares = shares
	return b
}

// WithEntryPrice sets the entry price for a shares-mode position.
func (b *PositionBuilder) WithEntryPrice(price float64) *PositionBuilder {
	b.position.EntryPrice = price
	return b
}

// WithFraction sets the bankroll fraction for an allocation-mode position.
func (b *PositionBuilder) WithFraction(fraction float64) *PositionBuilder {
	b.position.Fraction = fraction
	return b
}

// WithBankroll sets the bankroll for an allocation-mode position.
func (b *PositionBuilder) WithBankroll(bankroll float64) *PositionBuilder {
	b.position.Bankroll = bankroll
	return b
}

// WithEntryDate sets the entry date from a "2006-01-02" string.
func (b *PositionBuilder) WithEntryDate(date string) *PositionBuilder {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic("testutil: bad entry date: " + err.Error())
	}
	b.position.EntryDate = parsed.UTC()
	return b
}

// Position returns the built position without storing it.
func (b *PositionBuilder) Position() model.Position {
	return b.position
}

// Build stores the position in the test database and returns it.
func (b *PositionBuilder) Build(t *testing.T, db *sql.DB) model.Position {
	t.Helper()

	repo := repository.NewPositionRepository(db)
	if err := repo.CreatePosition(b.position); err != nil {
		t.Fatalf("Failed to create test position: %v", err)
	}
	return b.position
}
