package service

import (
	"context"
	"sort"
	"time"

	"github.com/stockgame/Stock-Game-Backend/internal/apperrors"
	"github.com/stockgame/Stock-Game-Backend/internal/cache"
	"github.com/stockgame/Stock-Game-Backend/internal/model"
	"github.com/stockgame/Stock-Game-Backend/internal/repository"
)

// GameService orchestrates one valuation pass: load positions, resolve the
// union of their symbols into a price matrix (through the cache), and
// reduce to snapshots, history, and the leaderboard.
//
// Every operation tolerates an empty position list and a partial or empty
// price matrix; the outputs just shrink. Nothing here is fatal to the
// process.
type GameService struct {
	positionRepo *repository.PositionRepository
	priceService *PriceService
	valuation    *ValuationService
	leaderboard  *LeaderboardService
	priceCache   *cache.PriceCache
	historyStart time.Time
	now          cache.Clock
}

// NewGameService creates a GameService. historyStart is the first date of
// the price window; the window always ends at the current day. A nil clock
// defaults to time.Now.
func NewGameService(
	positionRepo *repository.PositionRepository,
	priceService *PriceService,
	valuation *ValuationService,
	leaderboard *LeaderboardService,
	priceCache *cache.PriceCache,
	historyStart time.Time,
	now cache.Clock,
) *GameService {
	if now == nil {
		now = time.Now
	}
	return &GameService{
		positionRepo: positionRepo,
		priceService: priceService,
		valuation:    valuation,
		leaderboard:  leaderboard,
		priceCache:   priceCache,
		historyStart: historyStart,
		now:          now,
	}
}

// Leaderboard returns the current player rankings.
func (s *GameService) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	snapshots, err := s.PortfolioDetails(ctx, "")
	if err != nil {
		return nil, err
	}
	return s.leaderboard.Rank(snapshots), nil
}

// PortfolioDetails returns the current snapshot of every position, or of a
// single player's positions when player is non-empty. A player with no
// stored positions returns ErrPlayerNotFound. Positions whose symbol never
// resolved are absent from the result.
func (s *GameService) PortfolioDetails(ctx context.Context, player string) ([]model.PositionSnapshot, error) {
	positions, err := s.positionRepo.GetPositions()
	if err != nil {
		return nil, err
	}
	if player != "" {
		filtered := positions[:0:0]
		for _, p := range positions {
			if p.Player == player {
				filtered = append(filtered, p)
			}
		}
		if len(filtered) == 0 {
			return nil, apperrors.ErrPlayerNotFound
		}
		positions = filtered
	}
	if len(positions) == 0 {
		return []model.PositionSnapshot{}, nil
	}

	matrix := s.priceMatrix(ctx, positions)
	return s.valuation.CurrentSnapshots(matrix, positions), nil
}

// History returns the aggregated per-player value and return series over
// the full price window.
func (s *GameService) History(ctx context.Context) ([]model.HistoricalPoint, error) {
	positions, err := s.positionRepo.GetPositions()
	if err != nil {
		return nil, err
	}
	if len(positions) == 0 {
		return []model.HistoricalPoint{}, nil
	}

	matrix := s.priceMatrix(ctx, positions)
	return s.valuation.HistoricalSeries(matrix, positions), nil
}

// Refresh drops all memoized price data. The next valuation request
// re-fetches from the provider; outstanding fetches are not cancelled.
func (s *GameService) Refresh() {
	s.priceCache.Invalidate()
}

// RankingMetric exposes the configured leaderboard metric for reporting.
func (s *GameService) RankingMetric() model.RankingMetric {
	return s.leaderboard.Metric()
}

// priceMatrix resolves the positions' symbol union into a price matrix,
// serving from the cache when a fresh entry exists.
func (s *GameService) priceMatrix(ctx context.Context, positions []model.Position) *model.PriceMatrix {
	symbols := symbolUnion(positions)
	end := s.now().UTC()

	key := cache.Key(symbols, s.historyStart, end)
	if matrix, ok := s.priceCache.Get(key); ok {
		return matrix
	}

	matrix := s.priceService.FetchHistory(ctx, symbols, s.historyStart, end)
	s.priceCache.Set(key, matrix)
	return matrix
}

// symbolUnion returns the sorted distinct symbols across positions.
func symbolUnion(positions []model.Position) []string {
	seen := map[string]bool{}
	symbols := []string{}
	for _, p := range positions {
		if p.Symbol == "" || seen[p.Symbol] {
			continue
		}
		seen[p.Symbol] = true
		symbols = append(symbols, p.Symbol)
	}
	sort.Strings(symbols)
	return symbols
}
