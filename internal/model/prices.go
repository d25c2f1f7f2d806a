package model

import (
	"math"
	"time"
)

// PricePoint is one symbol's closing price on one trading date.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceMatrix holds daily closing prices for a set of symbols, aligned to a
// common ascending trading-date index. A symbol's leading dates may be
// absent (recorded as NaN) when the provider returned no data before its
// first session in the window; every later gap is repaired by the fetcher
// before the matrix is built.
//
// The matrix is immutable once returned by the fetcher.
type PriceMatrix struct {
	Dates  []time.Time          // shared index, ascending, no duplicates
	Closes map[string][]float64 // per symbol, len(Closes[s]) == len(Dates); NaN where absent
}

// IsEmpty reports whether the matrix holds no dates or no symbols.
func (m *PriceMatrix) IsEmpty() bool {
	return m == nil || len(m.Dates) == 0 || len(m.Closes) == 0
}

// Symbols returns the symbols that resolved into the matrix.
func (m *PriceMatrix) Symbols() []string {
	symbols := make([]string, 0, len(m.Closes))
	for s := range m.Closes {
		symbols = append(symbols, s)
	}
	return symbols
}

// Close returns the closing price for a symbol at date index i. The second
// return value is false when the symbol is not in the matrix or has no
// price on that date.
func (m *PriceMatrix) Close(symbol string, i int) (float64, bool) {
	closes, ok := m.Closes[symbol]
	if !ok || i < 0 || i >= len(closes) {
		return 0, false
	}
	if math.IsNaN(closes[i]) {
		return 0, false
	}
	return closes[i], true
}

// Latest returns the closing price for a symbol on the last date of the
// index. The second return value is false when the symbol never resolved
// or has no price on the final date.
func (m *PriceMatrix) Latest(symbol string) (float64, bool) {
	return m.Close(symbol, len(m.Dates)-1)
}

// NearestIndex returns the index of the date closest to target by absolute
// distance. When two dates are equidistant the earlier one wins, keeping
// entry-price resolution deterministic. Returns -1 for an empty index.
func (m *PriceMatrix) NearestIndex(target time.Time) int {
	if len(m.Dates) == 0 {
		return -1
	}
	best := 0
	bestDist := absDuration(m.Dates[0].Sub(target))
	for i := 1; i < len(m.Dates); i++ {
		dist := absDuration(m.Dates[i].Sub(target))
		if dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return best
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
