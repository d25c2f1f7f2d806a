package service

import (
	"sort"
	"time"

	"github.com/stockgame/Stock-Game-Backend/internal/model"
)

// ValuationService turns a price matrix and a set of positions into
// current snapshots and per-player historical series. Both operations are
// pure functions of their inputs; positions whose symbol never resolved
// into the matrix are skipped, never errored.
type ValuationService struct{}

// NewValuationService creates a ValuationService.
func NewValuationService() *ValuationService {
	return &ValuationService{}
}

// CurrentSnapshots values every resolvable position at the latest date in
// the matrix.
//
// For each position: current value = unit count * latest close, dollar
// return = current value - entry value, percent return = dollar return /
// entry value. Allocation-mode positions resolve their entry price from
// the series at the date nearest their entry date (ties go to the earlier
// date).
//
// Positions whose symbol is absent from the matrix, or whose entry price
// could not be resolved, are dropped from the result. An empty matrix or
// empty position list yields an empty slice.
func (s *ValuationService) CurrentSnapshots(matrix *model.PriceMatrix, positions []model.Position) []model.PositionSnapshot {
	snapshots := []model.PositionSnapshot{}
	if matrix.IsEmpty() {
		return snapshots
	}

	for _, pos := range positions {
		currentPrice, ok := matrix.Latest(pos.Symbol)
		if !ok {
			continue
		}
		entryPrice, count, ok := resolveSizing(matrix, pos)
		if !ok {
			continue
		}

		entryValue := pos.EntryValue()
		currentValue := count * currentPrice
		dollarReturn := currentValue - entryValue

		snapshot := model.PositionSnapshot{
			Player:       pos.Player,
			Symbol:       pos.Symbol,
			EntryPrice:   entryPrice,
			Shares:       count,
			CurrentPrice: currentPrice,
			CurrentValue: round(currentValue),
			DollarReturn: round(dollarReturn),
		}
		if entryValue > 0 {
			snapshot.PctReturn = dollarReturn / entryValue
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots
}

// HistoricalSeries computes each player's aggregate portfolio value and
// return on every date in the matrix.
//
// Every resolvable position contributes unit count * close for every date
// with a price, including dates before the position's entry: the series is
// a full-window counterfactual, not a since-entry accumulation. Per-date
// per-position values are folded into one point per (date, player) pair by
// summing across the player's positions.
//
// The result is sorted by date ascending, then player name ascending.
func (s *ValuationService) HistoricalSeries(matrix *model.PriceMatrix, positions []model.Position) []model.HistoricalPoint {
	points := []model.HistoricalPoint{}
	if matrix.IsEmpty() {
		return points
	}

	type key struct {
		dateIdx int
		player  string
	}
	acc := map[key]*model.HistoricalPoint{}

	for _, pos := range positions {
		if _, ok := matrix.Closes[pos.Symbol]; !ok {
			continue
		}
		_, count, ok := resolveSizing(matrix, pos)
		if !ok {
			continue
		}
		entryValue := pos.EntryValue()

		for i := range matrix.Dates {
			price, ok := matrix.Close(pos.Symbol, i)
			if !ok {
				continue
			}
			value := count * price

			k := key{dateIdx: i, player: pos.Player}
			point, ok := acc[k]
			if !ok {
				point = &model.HistoricalPoint{Date: matrix.Dates[i], Player: pos.Player}
				acc[k] = point
			}
			point.Value += value
			point.Return += value - entryValue
		}
	}

	for _, point := range acc {
		point.Value = round(point.Value)
		point.Return = round(point.Return)
		points = append(points, *point)
	}
	sort.Slice(points, func(i, j int) bool {
		if !points[i].Date.Equal(points[j].Date) {
			return points[i].Date.Before(points[j].Date)
		}
		return points[i].Player < points[j].Player
	})
	return points
}

// resolveSizing resolves a position's entry price and unit count against
// the matrix.
//
// Shares mode uses the stored entry price and count directly. Allocation
// mode reads the entry price from the symbol's series at the date nearest
// the position's entry date; when that date carries no price (an
// unrepairable leading gap) the position cannot be sized and is skipped.
func resolveSizing(matrix *model.PriceMatrix, pos model.Position) (entryPrice, count float64, ok bool) {
	switch pos.Mode {
	case model.SizingShares:
		return pos.EntryPrice, pos.Shares, true
	case model.SizingAllocation:
		idx := matrix.NearestIndex(entryDay(pos.EntryDate))
		if idx < 0 {
			return 0, 0, false
		}
		price, found := matrix.Close(pos.Symbol, idx)
		if !found || price <= 0 {
			return 0, 0, false
		}
		return price, pos.UnitCountAt(price), true
	default:
		return 0, 0, false
	}
}

// entryDay normalizes an entry timestamp to midnight UTC so it compares
// cleanly against the matrix's date index.
func entryDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
