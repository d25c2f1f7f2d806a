package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrPositionNotFound indicates that a position with the given ID does not exist.
	ErrPositionNotFound = errors.New("position not found")

	// ErrPlayerNotFound indicates that no positions exist for the requested player.
	ErrPlayerNotFound = errors.New("player not found")
)

// Business logic errors represent validation failures or constraint
// violations. These are rejected at the input boundary; the valuation
// pipeline itself assumes validated input.
var (
	// ErrInvalidSizingMode indicates a sizing mode outside shares/allocation.
	ErrInvalidSizingMode = errors.New("invalid sizing mode")

	// ErrNonPositiveEntryPrice indicates a shares-mode position with an
	// entry price of zero or below.
	ErrNonPositiveEntryPrice = errors.New("entry price must be positive")

	// ErrNegativeShares indicates a negative unit count.
	ErrNegativeShares = errors.New("share count cannot be negative")

	// ErrInvalidAllocation indicates a non-positive allocation fraction or bankroll.
	ErrInvalidAllocation = errors.New("allocation fraction and bankroll must be positive")

	// ErrMissingPlayer indicates a position without a player name.
	ErrMissingPlayer = errors.New("player is required")

	// ErrMissingSymbol indicates a position without a ticker symbol.
	ErrMissingSymbol = errors.New("symbol is required")

	// ErrMissingEntryDate indicates a position without an entry date.
	ErrMissingEntryDate = errors.New("entry date is required")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")
)
