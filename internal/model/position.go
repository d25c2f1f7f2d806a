package model

import "time"

// SizingMode identifies how a position's size was specified at entry.
type SizingMode string

const (
	// SizingShares sizes a position by an absolute unit count with a
	// supplied entry price.
	SizingShares SizingMode = "shares"

	// SizingAllocation sizes a position by a fraction of a player's
	// bankroll. The entry price is not supplied; it is resolved from the
	// price series at the entry date.
	SizingAllocation SizingMode = "allocation"
)

// Position represents one player's stake in a single symbol.
//
// A player may hold any number of positions, including several in the same
// symbol; their values sum during aggregation. Positions carry no ordering.
//
// Which fields are meaningful depends on Mode:
//   - SizingShares: Shares and EntryPrice
//   - SizingAllocation: Fraction and Bankroll (EntryPrice is ignored and
//     resolved from price history instead)
type Position struct {
	ID         string     `json:"id"`
	Player     string     `json:"player"`
	Symbol     string     `json:"symbol"`
	Mode       SizingMode `json:"sizingMode"`
	Shares     float64    `json:"shares,omitempty"`
	Fraction   float64    `json:"fraction,omitempty"`
	Bankroll   float64    `json:"bankroll,omitempty"`
	EntryPrice float64    `json:"entryPrice,omitempty"`
	EntryDate  time.Time  `json:"entryDate"`
}

// EntryValue returns the dollar value committed to the position at entry.
//
// Shares mode: shares * entry price. Allocation mode: fraction * bankroll.
// Assumes validated input (see the validation package); an unknown mode
// yields zero, which downstream code treats as an empty position.
func (p Position) EntryValue() float64 {
	switch p.Mode {
	case SizingShares:
		return p.Shares * p.EntryPrice
	case SizingAllocation:
		return p.Fraction * p.Bankroll
	default:
		return 0
	}
}

// UnitCountAt returns the number of units held, given the entry price the
// position resolved to. Shares mode ignores the argument and returns the
// stored count; allocation mode derives fractional units from the entry
// value. A non-positive entry price yields zero units.
func (p Position) UnitCountAt(entryPrice float64) float64 {
	switch p.Mode {
	case SizingShares:
		return p.Shares
	case SizingAllocation:
		if entryPrice <= 0 {
			return 0
		}
		return p.EntryValue() / entryPrice
	default:
		return 0
	}
}
