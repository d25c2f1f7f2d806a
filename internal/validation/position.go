package validation

import (
	"github.com/stockgame/Stock-Game-Backend/internal/apperrors"
	"github.com/stockgame/Stock-Game-Backend/internal/model"
)

// ValidatePosition rejects malformed position data at the input boundary.
// The valuation pipeline downstream assumes its input passed this check
// and does not defend against bad sizing again.
//
// Rules per sizing mode:
//   - shares: entry price > 0, share count >= 0
//   - allocation: fraction > 0 and bankroll > 0 (entry price is resolved
//     from price history later, so none is required here)
//
// Player, symbol, and entry date are required in both modes.
func ValidatePosition(p model.Position) error {
	if p.Player == "" {
		return apperrors.ErrMissingPlayer
	}
	if p.Symbol == "" {
		return apperrors.ErrMissingSymbol
	}
	if p.EntryDate.IsZero() {
		return apperrors.ErrMissingEntryDate
	}

	switch p.Mode {
	case model.SizingShares:
		if p.EntryPrice <= 0 {
			return apperrors.ErrNonPositiveEntryPrice
		}
		if p.Shares < 0 {
			return apperrors.ErrNegativeShares
		}
	case model.SizingAllocation:
		if p.Fraction <= 0 || p.Bankroll <= 0 {
			return apperrors.ErrInvalidAllocation
		}
	default:
		return apperrors.ErrInvalidSizingMode
	}

	return nil
}
