package model

import "time"

// RankingMetric selects which summed return the leaderboard orders by.
type RankingMetric string

const (
	// RankByDollar ranks players by summed dollar return. This is the
	// default; it matches how the game has always scored.
	RankByDollar RankingMetric = "dollar"

	// RankByPercent ranks players by summed percentage return.
	RankByPercent RankingMetric = "percent"
)

// PositionSnapshot is the point-in-time valuation of a single position.
// Snapshots are recomputed on every valuation pass and never persisted.
type PositionSnapshot struct {
	Player       string  `json:"player"`
	Symbol       string  `json:"symbol"`
	EntryPrice   float64 `json:"entryPrice"`   // resolved entry price
	Shares       float64 `json:"shares"`       // unit count, fractional allowed
	CurrentPrice float64 `json:"currentPrice"` // latest close in the matrix
	CurrentValue float64 `json:"currentValue"`
	DollarReturn float64 `json:"dollarReturn"`
	PctReturn    float64 `json:"pctReturn"`
}

// HistoricalPoint is a player's aggregate portfolio value and return on one
// date, summed across all of the player's positions. One point exists per
// (date, player) pair over the full history window.
type HistoricalPoint struct {
	Date   time.Time `json:"date"`
	Player string    `json:"player"`
	Value  float64   `json:"value"`
	Return float64   `json:"return"`
}

// LeaderboardEntry is one row of the ranked leaderboard. Rank is 1-based
// and follows sequence order.
type LeaderboardEntry struct {
	Rank        int     `json:"rank"`
	Player      string  `json:"player"`
	TotalReturn float64 `json:"totalReturn"`
}
