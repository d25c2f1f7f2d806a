package yahoo

import "time"

// Response represents the raw JSON returned by the Yahoo Finance chart API
// for a single symbol. The result array typically contains one element.
type Response struct {
	Chart Chart `json:"chart"`
}

// Chart is the envelope of a single-symbol chart response.
type Chart struct {
	Result []ChartResult `json:"result"`
	Error  *string       `json:"error"`
}

// ChartResult holds one symbol's metadata, timestamps, and price arrays.
type ChartResult struct {
	Meta       Meta                `json:"meta"`
	Timestamp  []int64             `json:"timestamp"`
	Indicators IndicatorsContainer `json:"indicators"`
}

// Meta carries symbol metadata from the chart response.
type Meta struct {
	Currency         string `json:"currency"`
	Symbol           string `json:"symbol"`
	ExchangeName     string `json:"exchangeName"`
	FullExchangeName string `json:"fullExchangeName"`
	LongName         string `json:"longName"`
	Shortname        string `json:"shortName"`
}

// IndicatorsContainer wraps the quote arrays of a chart result.
type IndicatorsContainer struct {
	Quote []Quote `json:"quote"`
}

// Quote holds the parallel OHLCV arrays for a chart result. Entries are
// pointers because Yahoo reports halted or non-trading sessions as JSON
// nulls rather than omitting the date.
type Quote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

// SparkResponse represents the raw JSON returned by the Yahoo Finance spark
// API for a multi-symbol batch request. Unlike the chart endpoint, results
// arrive as an array of per-symbol entries, each wrapping its own chart
// result.
type SparkResponse struct {
	Spark struct {
		Result []SparkResult `json:"result"`
		Error  *string       `json:"error"`
	} `json:"spark"`
}

// SparkResult is one symbol's entry in a spark batch response.
type SparkResult struct {
	Symbol   string        `json:"symbol"`
	Response []ChartResult `json:"response"`
}

// Bar is a single session's parsed OHLCV data. Price and volume fields are
// nil for sessions the provider reported but did not price (halts,
// exchange holidays inside the window).
type Bar struct {
	Date   time.Time
	Open   *float64
	High   *float64
	Low    *float64
	Close  *float64
	Volume *int64
}
