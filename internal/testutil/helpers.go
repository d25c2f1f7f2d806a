package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/stockgame/Stock-Game-Backend/internal/cache"
	"github.com/stockgame/Stock-Game-Backend/internal/model"
	"github.com/stockgame/Stock-Game-Backend/internal/repository"
	"github.com/stockgame/Stock-Game-Backend/internal/service"
	"github.com/stockgame/Stock-Game-Backend/internal/yahoo"
)

// DefaultHistoryStart is the first date of the price window used by test
// game services.
var DefaultHistoryStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// NewTestGameService wires a GameService against the test database and the
// given provider client, with a clock frozen at now so cache TTL and the
// window end date are deterministic. Retries run with zero delay.
func NewTestGameService(t *testing.T, db *sql.DB, client yahoo.Client, now time.Time) *service.GameService {
	t.Helper()

	clock := func() time.Time { return now }

	return service.NewGameService(
		repository.NewPositionRepository(db),
		service.NewPriceService(client, 3, 0),
		service.NewValuationService(),
		service.NewLeaderboardService(model.RankByDollar),
		cache.New(time.Hour, clock),
		DefaultHistoryStart,
		clock,
	)
}

// NewTestPriceService builds a PriceService with zero retry delay.
func NewTestPriceService(t *testing.T, client yahoo.Client, maxAttempts int) *service.PriceService {
	t.Helper()

	return service.NewPriceService(client, maxAttempts, 0)
}

// MakeID generates a unique position ID for testing.
func MakeID() string {
	return uuid.New().String()
}

// MustParseDate parses a "2006-01-02" date or fails the test.
func MustParseDate(t *testing.T, date string) time.Time {
	t.Helper()

	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("Failed to parse date %q: %v", date, err)
	}
	return parsed.UTC()
}
