package service

import (
	"sort"

	"github.com/stockgame/Stock-Game-Backend/internal/model"
)

// LeaderboardService ranks players by their total return across all
// positions.
type LeaderboardService struct {
	metric model.RankingMetric
}

// NewLeaderboardService creates a LeaderboardService using the given
// ranking metric. An unrecognized metric falls back to dollar return, the
// game's historical scoring rule.
func NewLeaderboardService(metric model.RankingMetric) *LeaderboardService {
	if metric != model.RankByPercent {
		metric = model.RankByDollar
	}
	return &LeaderboardService{metric: metric}
}

// Metric returns the ranking metric this service was configured with.
func (s *LeaderboardService) Metric() model.RankingMetric {
	return s.metric
}

// Rank groups snapshots by player, sums the configured return metric, and
// orders players by that sum descending. Equal sums tie-break by player
// name ascending, so the ordering is total and stable across runs. Rank
// numbers are 1-based sequence positions.
func (s *LeaderboardService) Rank(snapshots []model.PositionSnapshot) []model.LeaderboardEntry {
	totals := map[string]float64{}
	for _, snap := range snapshots {
		switch s.metric {
		case model.RankByPercent:
			totals[snap.Player] += snap.PctReturn
		default:
			totals[snap.Player] += snap.DollarReturn
		}
	}

	entries := make([]model.LeaderboardEntry, 0, len(totals))
	for player, total := range totals {
		entries = append(entries, model.LeaderboardEntry{Player: player, TotalReturn: total})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalReturn != entries[j].TotalReturn {
			return entries[i].TotalReturn > entries[j].TotalReturn
		}
		return entries[i].Player < entries[j].Player
	})

	// Rounding after the sort keeps the ordering consistent with the raw
	// sums; math.Round is monotonic so displayed values never invert.
	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].TotalReturn = round(entries[i].TotalReturn)
	}
	return entries
}
