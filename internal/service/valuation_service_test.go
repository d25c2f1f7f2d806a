package service_test

import (
	"math"
	"testing"
	"time"

	"github.com/stockgame/Stock-Game-Backend/internal/model"
	"github.com/stockgame/Stock-Game-Backend/internal/service"
	"github.com/stockgame/Stock-Game-Backend/internal/testutil"
)

func twoDayMatrix(t *testing.T) *model.PriceMatrix {
	t.Helper()
	return &model.PriceMatrix{
		Dates: []time.Time{
			testutil.MustParseDate(t, "2024-01-02"),
			testutil.MustParseDate(t, "2024-01-03"),
		},
		Closes: map[string][]float64{
			"AAPL": {100, 110},
		},
	}
}

func TestValuationService_CurrentSnapshots(t *testing.T) {
	svc := service.NewValuationService()

	t.Run("values a shares position at the latest close", func(t *testing.T) {
		matrix := twoDayMatrix(t)
		positions := []model.Position{
			testutil.NewSharesPosition("Alice", "AAPL").Position(),
		}

		snapshots := svc.CurrentSnapshots(matrix, positions)

		if len(snapshots) != 1 {
			t.Fatalf("Expected 1 snapshot, got %d", len(snapshots))
		}
		snap := snapshots[0]
		if snap.CurrentPrice != 110 {
			t.Errorf("Expected current price 110, got %v", snap.CurrentPrice)
		}
		if snap.CurrentValue != 1100 {
			t.Errorf("Expected current value 1100, got %v", snap.CurrentValue)
		}
		if snap.DollarReturn != 100 {
			t.Errorf("Expected dollar return 100, got %v", snap.DollarReturn)
		}
		if math.Abs(snap.PctReturn-0.1) > 1e-9 {
			t.Errorf("Expected percent return 0.1, got %v", snap.PctReturn)
		}
	})

	t.Run("resolves an allocation position's entry price from the series", func(t *testing.T) {
		matrix := twoDayMatrix(t)
		positions := []model.Position{
			testutil.NewAllocationPosition("Bob", "AAPL").
				WithEntryDate("2024-01-02").
				Position(),
		}

		snapshots := svc.CurrentSnapshots(matrix, positions)

		if len(snapshots) != 1 {
			t.Fatalf("Expected 1 snapshot, got %d", len(snapshots))
		}
		snap := snapshots[0]
		// 0.5 * 1000 bankroll = 500 at entry close 100 -> 5 units.
		if snap.EntryPrice != 100 {
			t.Errorf("Expected resolved entry price 100, got %v", snap.EntryPrice)
		}
		if snap.Shares != 5 {
			t.Errorf("Expected 5 units, got %v", snap.Shares)
		}
		if snap.CurrentValue != 550 {
			t.Errorf("Expected current value 550, got %v", snap.CurrentValue)
		}
		if snap.DollarReturn != 50 {
			t.Errorf("Expected dollar return 50, got %v", snap.DollarReturn)
		}
	})

	t.Run("entry dates off the calendar snap to the nearest session", func(t *testing.T) {
		matrix := &model.PriceMatrix{
			Dates: []time.Time{
				testutil.MustParseDate(t, "2024-01-05"),
				testutil.MustParseDate(t, "2024-01-08"),
			},
			Closes: map[string][]float64{"AAPL": {100, 200}},
		}
		// Saturday the 6th is one day from Friday and two from Monday.
		positions := []model.Position{
			testutil.NewAllocationPosition("Bob", "AAPL").
				WithEntryDate("2024-01-06").
				Position(),
		}

		snapshots := svc.CurrentSnapshots(matrix, positions)

		if len(snapshots) != 1 {
			t.Fatalf("Expected 1 snapshot, got %d", len(snapshots))
		}
		if snapshots[0].EntryPrice != 100 {
			t.Errorf("Expected Friday's close 100, got %v", snapshots[0].EntryPrice)
		}
	})

	t.Run("skips positions whose symbol never resolved", func(t *testing.T) {
		matrix := twoDayMatrix(t)
		positions := []model.Position{
			testutil.NewSharesPosition("Alice", "AAPL").Position(),
			testutil.NewSharesPosition("Alice", "BOGUS").Position(),
		}

		snapshots := svc.CurrentSnapshots(matrix, positions)

		if len(snapshots) != 1 {
			t.Fatalf("Expected the unresolved symbol to be skipped, got %d snapshots", len(snapshots))
		}
		if snapshots[0].Symbol != "AAPL" {
			t.Errorf("Expected AAPL snapshot, got %s", snapshots[0].Symbol)
		}
	})

	t.Run("skips an allocation position whose entry session has no price", func(t *testing.T) {
		matrix := &model.PriceMatrix{
			Dates: []time.Time{
				testutil.MustParseDate(t, "2024-01-02"),
				testutil.MustParseDate(t, "2024-01-03"),
			},
			Closes: map[string][]float64{"AAPL": {math.NaN(), 110}},
		}
		positions := []model.Position{
			testutil.NewAllocationPosition("Bob", "AAPL").
				WithEntryDate("2024-01-02").
				Position(),
		}

		if got := svc.CurrentSnapshots(matrix, positions); len(got) != 0 {
			t.Errorf("Expected no snapshots, got %d", len(got))
		}
	})

	t.Run("empty matrix yields an empty slice", func(t *testing.T) {
		positions := []model.Position{
			testutil.NewSharesPosition("Alice", "AAPL").Position(),
		}

		got := svc.CurrentSnapshots(&model.PriceMatrix{}, positions)
		if got == nil || len(got) != 0 {
			t.Errorf("Expected empty non-nil slice, got %v", got)
		}
	})
}

func TestValuationService_HistoricalSeries(t *testing.T) {
	svc := service.NewValuationService()

	t.Run("tracks a position's value across the full window", func(t *testing.T) {
		matrix := twoDayMatrix(t)
		positions := []model.Position{
			testutil.NewSharesPosition("Alice", "AAPL").Position(),
		}

		series := svc.HistoricalSeries(matrix, positions)

		if len(series) != 2 {
			t.Fatalf("Expected 2 points, got %d", len(series))
		}
		first, second := series[0], series[1]
		if !first.Date.Equal(matrix.Dates[0]) || first.Value != 1000 || first.Return != 0 {
			t.Errorf("Expected (d1, 1000, 0), got (%v, %v, %v)", first.Date, first.Value, first.Return)
		}
		if !second.Date.Equal(matrix.Dates[1]) || second.Value != 1100 || second.Return != 100 {
			t.Errorf("Expected (d2, 1100, 100), got (%v, %v, %v)", second.Date, second.Value, second.Return)
		}
	})

	t.Run("sums a player's positions into one point per date", func(t *testing.T) {
		matrix := &model.PriceMatrix{
			Dates: []time.Time{testutil.MustParseDate(t, "2024-01-02")},
			Closes: map[string][]float64{
				"AAPL": {110},
				"MSFT": {200},
			},
		}
		positions := []model.Position{
			testutil.NewSharesPosition("Alice", "AAPL").Position(),
			testutil.NewSharesPosition("Alice", "MSFT").WithShares(2).WithEntryPrice(190).Position(),
		}

		series := svc.HistoricalSeries(matrix, positions)

		if len(series) != 1 {
			t.Fatalf("Expected 1 aggregated point, got %d", len(series))
		}
		point := series[0]
		// 10*110 + 2*200 = 1500; returns 100 + 20 = 120.
		if point.Value != 1500 {
			t.Errorf("Expected value 1500, got %v", point.Value)
		}
		if point.Return != 120 {
			t.Errorf("Expected return 120, got %v", point.Return)
		}
	})

	t.Run("orders points by date then player", func(t *testing.T) {
		matrix := &model.PriceMatrix{
			Dates: []time.Time{
				testutil.MustParseDate(t, "2024-01-02"),
				testutil.MustParseDate(t, "2024-01-03"),
			},
			Closes: map[string][]float64{"AAPL": {100, 110}},
		}
		positions := []model.Position{
			testutil.NewSharesPosition("Bob", "AAPL").Position(),
			testutil.NewSharesPosition("Alice", "AAPL").Position(),
		}

		series := svc.HistoricalSeries(matrix, positions)

		if len(series) != 4 {
			t.Fatalf("Expected 4 points, got %d", len(series))
		}
		want := []string{"Alice", "Bob", "Alice", "Bob"}
		for i, point := range series {
			if point.Player != want[i] {
				t.Errorf("Point %d: expected player %s, got %s", i, want[i], point.Player)
			}
		}
		if series[0].Date.After(series[2].Date) {
			t.Error("Expected dates in ascending order")
		}
	})

	t.Run("skips dates with no price for the symbol", func(t *testing.T) {
		matrix := &model.PriceMatrix{
			Dates: []time.Time{
				testutil.MustParseDate(t, "2024-01-02"),
				testutil.MustParseDate(t, "2024-01-03"),
			},
			Closes: map[string][]float64{"AAPL": {math.NaN(), 110}},
		}
		positions := []model.Position{
			testutil.NewSharesPosition("Alice", "AAPL").Position(),
		}

		series := svc.HistoricalSeries(matrix, positions)

		if len(series) != 1 {
			t.Fatalf("Expected 1 point, got %d", len(series))
		}
		if !series[0].Date.Equal(matrix.Dates[1]) {
			t.Errorf("Expected the priced date only, got %v", series[0].Date)
		}
	})

	t.Run("empty positions yield an empty slice", func(t *testing.T) {
		got := svc.HistoricalSeries(twoDayMatrix(t), nil)
		if got == nil || len(got) != 0 {
			t.Errorf("Expected empty non-nil slice, got %v", got)
		}
	})
}
