package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/stockgame/Stock-Game-Backend/internal/yahoo"
)

// MockYahooClient is a mock implementation of yahoo.Client for testing.
// It serves canned per-symbol chart results instead of making API calls,
// and can withhold symbols for the first N calls to exercise the
// missing-symbol retry path.
type MockYahooClient struct {
	mu sync.Mutex

	// Charts maps symbols to the chart result served for them.
	Charts map[string]yahoo.ChartResult
	// ServeAfter withholds a symbol until the given 1-based call number.
	// Symbols absent from the map are served immediately.
	ServeAfter map[string]int
	// Err, when set, fails every Download call.
	Err error
	// DownloadCalls counts how many times Download was invoked.
	DownloadCalls int
	// Requested records the symbol set of each Download call, in order.
	Requested [][]string
}

// NewMockYahooClient creates an empty mock; add symbols with WithChart.
func NewMockYahooClient() *MockYahooClient {
	return &MockYahooClient{
		Charts:     map[string]yahoo.ChartResult{},
		ServeAfter: map[string]int{},
	}
}

// WithChart registers a canned chart result for a symbol.
func (m *MockYahooClient) WithChart(symbol string, chart yahoo.ChartResult) *MockYahooClient {
	m.Charts[symbol] = chart
	return m
}

// WithServeAfter withholds a symbol until the given 1-based Download call.
func (m *MockYahooClient) WithServeAfter(symbol string, call int) *MockYahooClient {
	m.ServeAfter[symbol] = call
	return m
}

// WithError configures the mock to fail every Download call.
func (m *MockYahooClient) WithError(err error) *MockYahooClient {
	m.Err = err
	return m
}

// Download serves the canned charts for the requested symbols. Unknown
// symbols are silently absent from the result, mirroring the provider.
func (m *MockYahooClient) Download(_ context.Context, symbols []string, _, _ time.Time) (map[string]yahoo.ChartResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DownloadCalls++
	recorded := make([]string, len(symbols))
	copy(recorded, symbols)
	m.Requested = append(m.Requested, recorded)

	if m.Err != nil {
		return nil, m.Err
	}

	charts := map[string]yahoo.ChartResult{}
	for _, symbol := range symbols {
		chart, ok := m.Charts[symbol]
		if !ok {
			continue
		}
		if after, held := m.ServeAfter[symbol]; held && m.DownloadCalls < after {
			continue
		}
		charts[symbol] = chart
	}
	return charts, nil
}

// Float64Ptr returns a pointer to v. Chart quote arrays use pointers to
// model the provider's null sessions.
func Float64Ptr(v float64) *float64 {
	return &v
}

// Int64Ptr returns a pointer to v.
func Int64Ptr(v int64) *int64 {
	return &v
}

// CreateChartResult builds a chart result with one bar per close, on
// consecutive days starting at startDate ("2006-01-02"). Opens, highs,
// and lows track the close; volume is constant. A nil close produces a
// fully null session on that date, which the fetcher treats as a gap.
func CreateChartResult(symbol, startDate string, closes []*float64) yahoo.ChartResult {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		panic("testutil: bad startDate: " + err.Error())
	}

	timestamps := make([]int64, len(closes))
	opens := make([]*float64, len(closes))
	highs := make([]*float64, len(closes))
	lows := make([]*float64, len(closes))
	volumes := make([]*int64, len(closes))

	for i, c := range closes {
		timestamps[i] = start.AddDate(0, 0, i).Unix()
		if c == nil {
			continue
		}
		opens[i] = Float64Ptr(*c)
		highs[i] = Float64Ptr(*c + 1)
		lows[i] = Float64Ptr(*c - 1)
		volumes[i] = Int64Ptr(1000000)
	}

	return yahoo.ChartResult{
		Meta: yahoo.Meta{
			Currency:         "USD",
			Symbol:           symbol,
			ExchangeName:     "NMS",
			FullExchangeName: "NASDAQ",
			LongName:         symbol + " Inc.",
			Shortname:        symbol,
		},
		Timestamp: timestamps,
		Indicators: yahoo.IndicatorsContainer{
			Quote: []yahoo.Quote{
				{
					Open:   opens,
					High:   highs,
					Low:    lows,
					Close:  closes,
					Volume: volumes,
				},
			},
		},
	}
}

// CreateChartResultWithDates builds a chart result with explicit session
// dates ("2006-01-02"), one close per date. Used to model calendars with
// weekends or exchange holidays.
func CreateChartResultWithDates(symbol string, dates []string, closes []float64) yahoo.ChartResult {
	if len(dates) != len(closes) {
		panic("testutil: dates and closes length mismatch")
	}

	timestamps := make([]int64, len(dates))
	opens := make([]*float64, len(dates))
	highs := make([]*float64, len(dates))
	lows := make([]*float64, len(dates))
	closePtrs := make([]*float64, len(dates))
	volumes := make([]*int64, len(dates))

	for i, d := range dates {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			panic("testutil: bad date: " + err.Error())
		}
		timestamps[i] = parsed.Unix()
		opens[i] = Float64Ptr(closes[i])
		highs[i] = Float64Ptr(closes[i] + 1)
		lows[i] = Float64Ptr(closes[i] - 1)
		closePtrs[i] = Float64Ptr(closes[i])
		volumes[i] = Int64Ptr(1000000)
	}

	chart := CreateChartResult(symbol, "2024-01-01", nil)
	chart.Timestamp = timestamps
	chart.Indicators.Quote = []yahoo.Quote{{
		Open:   opens,
		High:   highs,
		Low:    lows,
		Close:  closePtrs,
		Volume: volumes,
	}}
	return chart
}

// CreateChartResultFromCloses is CreateChartResult for series without
// gaps.
func CreateChartResultFromCloses(symbol, startDate string, closes []float64) yahoo.ChartResult {
	ptrs := make([]*float64, len(closes))
	for i := range closes {
		ptrs[i] = Float64Ptr(closes[i])
	}
	return CreateChartResult(symbol, startDate, ptrs)
}
