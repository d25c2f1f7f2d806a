package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"

	"github.com/stockgame/Stock-Game-Backend/internal/model"
	"github.com/stockgame/Stock-Game-Backend/internal/yahoo"
)

// DefaultFetchChunkSize is how many symbols go into one provider request
// when the symbol set is fanned out across concurrent batches.
const DefaultFetchChunkSize = 20

// PriceService retrieves daily closing-price history for a set of symbols
// and assembles it into an aligned price matrix.
//
// The service absorbs provider unreliability: transient request failures
// and symbols missing from a response are retried with a constant delay,
// and symbols still missing after the retry budget is spent are dropped.
// FetchHistory therefore never fails; its worst outcome is an empty
// matrix, which callers treat as "nothing to value".
type PriceService struct {
	client      yahoo.Client
	maxAttempts int
	retryDelay  time.Duration
	chunkSize   int
}

// NewPriceService creates a PriceService backed by the given provider
// client. maxAttempts is the total number of tries per symbol (initial
// request included); retryDelay is the fixed pause between tries. Values
// below 1 attempt are clamped; a non-positive delay means retry
// immediately.
func NewPriceService(client yahoo.Client, maxAttempts int, retryDelay time.Duration) *PriceService {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if retryDelay <= 0 {
		// retry.NewConstant rejects non-positive intervals.
		retryDelay = time.Nanosecond
	}
	return &PriceService{
		client:      client,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
		chunkSize:   DefaultFetchChunkSize,
	}
}

// FetchHistory retrieves the daily close matrix for symbols over
// [start, end].
//
// Pipeline:
//  1. One batched provider request for the full (deduplicated) symbol set.
//  2. Symbols absent from the response are re-requested as a restricted
//     subset, up to the configured attempt budget, with a constant delay
//     between attempts.
//  3. Each symbol's bars are aligned to the union date index and gap
//     repaired (see RepairGaps) before the close column is extracted.
//  4. Closes are rounded to cents for reporting parity.
//
// Symbols that never resolve are logged and omitted from the matrix; the
// caller must treat a partial or empty matrix as a normal outcome.
func (s *PriceService) FetchHistory(ctx context.Context, symbols []string, start, end time.Time) *model.PriceMatrix {
	requested := dedupeSymbols(symbols)
	if len(requested) == 0 {
		return &model.PriceMatrix{Closes: map[string][]float64{}}
	}

	barsBySymbol := map[string][]yahoo.Bar{}
	remaining := requested

	backoff := retry.WithMaxRetries(uint64(s.maxAttempts-1), retry.NewConstant(s.retryDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		charts, err := s.download(ctx, remaining, start, end)
		if err != nil {
			log.Printf("price fetch attempt failed: %v", err)
			return retry.RetryableError(err)
		}

		for symbol, chart := range charts {
			bars, err := yahoo.ParseBars(chart)
			if err != nil {
				log.Printf("discarding %s: %v", symbol, err)
				continue
			}
			barsBySymbol[symbol] = bars
		}

		remaining = missingSymbols(requested, barsBySymbol)
		if len(remaining) > 0 {
			log.Printf("retrying for missing symbols: %v", remaining)
			return retry.RetryableError(fmt.Errorf("%d symbols missing", len(remaining)))
		}
		return nil
	})
	if err != nil && len(remaining) > 0 {
		// Retry budget exhausted; proceed with partial data.
		log.Printf("dropping unresolved symbols after %d attempts: %v", s.maxAttempts, remaining)
	}

	return buildMatrix(barsBySymbol)
}

// download issues the batched request, fanning symbol chunks out across
// concurrent provider calls. This is purely a latency optimization; the
// merged result carries no ordering contract.
func (s *PriceService) download(ctx context.Context, symbols []string, start, end time.Time) (map[string]yahoo.ChartResult, error) {
	merged := map[string]yahoo.ChartResult{}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, batch := range chunkSymbols(symbols, s.chunkSize) {
		g.Go(func() error {
			charts, err := s.client.Download(ctx, batch, start, end)
			if err != nil {
				return err
			}
			mu.Lock()
			for symbol, chart := range charts {
				merged[symbol] = chart
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return merged, nil
}

// RepairGaps aligns one symbol's bars to the shared date index and fills
// non-trading sessions.
//
// A session whose opening price is absent (the bar is missing for that
// date, or its open is null) is treated as halted: open, high, low, and
// close are replaced with the previous available session's close and
// volume is set to zero. Consecutive gaps chain the carried value forward.
// The first date in the window has no prior close and is left absent.
//
// Repair is idempotent: repairing an already-repaired series changes
// nothing, because every filled session has a non-nil open.
func RepairGaps(index []time.Time, bars []yahoo.Bar) []yahoo.Bar {
	byDate := make(map[time.Time]yahoo.Bar, len(bars))
	for _, b := range bars {
		byDate[b.Date] = b
	}

	repaired := make([]yahoo.Bar, len(index))
	var prevClose *float64
	for i, date := range index {
		bar, ok := byDate[date]
		if !ok || bar.Open == nil {
			if prevClose == nil {
				repaired[i] = yahoo.Bar{Date: date}
				continue
			}
			carried := *prevClose
			zero := int64(0)
			repaired[i] = yahoo.Bar{
				Date:   date,
				Open:   &carried,
				High:   &carried,
				Low:    &carried,
				Close:  &carried,
				Volume: &zero,
			}
			prevClose = &carried
			continue
		}

		repaired[i] = yahoo.Bar{Date: date, Open: bar.Open, High: bar.High, Low: bar.Low, Close: bar.Close, Volume: bar.Volume}
		if bar.Close != nil {
			prevClose = bar.Close
		}
	}
	return repaired
}

// buildMatrix unions the per-symbol calendars into one ascending date
// index, repairs each symbol against it, and extracts the rounded close
// column.
func buildMatrix(barsBySymbol map[string][]yahoo.Bar) *model.PriceMatrix {
	index := unionDates(barsBySymbol)
	closes := make(map[string][]float64, len(barsBySymbol))

	for symbol, bars := range barsBySymbol {
		repaired := RepairGaps(index, bars)
		column := make([]float64, len(repaired))
		for i, bar := range repaired {
			if bar.Close == nil {
				column[i] = math.NaN()
				continue
			}
			column[i] = round(*bar.Close)
		}
		closes[symbol] = column
	}

	return &model.PriceMatrix{Dates: index, Closes: closes}
}

// unionDates collects the distinct dates across every symbol's bars,
// sorted ascending.
func unionDates(barsBySymbol map[string][]yahoo.Bar) []time.Time {
	seen := map[time.Time]bool{}
	for _, bars := range barsBySymbol {
		for _, b := range bars {
			seen[b.Date] = true
		}
	}

	dates := make([]time.Time, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// dedupeSymbols removes duplicates while preserving first-seen order.
func dedupeSymbols(symbols []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// missingSymbols returns the requested symbols that have no parsed bars yet.
func missingSymbols(requested []string, barsBySymbol map[string][]yahoo.Bar) []string {
	var missing []string
	for _, s := range requested {
		if _, ok := barsBySymbol[s]; !ok {
			missing = append(missing, s)
		}
	}
	return missing
}

// chunkSymbols splits symbols into batches of at most size elements.
func chunkSymbols(symbols []string, size int) [][]string {
	if size <= 0 || len(symbols) <= size {
		return [][]string{symbols}
	}
	var chunks [][]string
	for start := 0; start < len(symbols); start += size {
		end := start + size
		if end > len(symbols) {
			end = len(symbols)
		}
		chunks = append(chunks, symbols[start:end])
	}
	return chunks
}
