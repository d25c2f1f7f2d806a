package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the production Yahoo Finance API host.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Client is the provider interface consumed by the price fetching service.
// Download retrieves daily, split/dividend-adjusted price history for a set
// of symbols and normalizes the provider's response shapes into a uniform
// per-symbol map. Symbols the provider omitted are simply absent from the
// map; only transport and provider-level failures return an error.
type Client interface {
	Download(ctx context.Context, symbols []string, start, end time.Time) (map[string]ChartResult, error)
}

// FinanceClient fetches financial data from the Yahoo Finance API.
// It wraps an HTTP client and normalizes the two response shapes Yahoo
// uses: the chart endpoint for a single symbol and the spark batch
// endpoint for several.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewFinanceClient creates a new Yahoo Finance client with default HTTP
// settings, pointed at the production API host.
func NewFinanceClient() *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{},
		baseURL:    DefaultBaseURL,
	}
}

// NewFinanceClientWithBaseURL creates a client pointed at a custom host.
// Used by tests to target an httptest server.
func NewFinanceClientWithBaseURL(baseURL string) *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

// Download fetches daily price history for the given symbols over
// [start, end] in one batched request.
//
// The provider returns structurally different payloads for a single symbol
// (chart endpoint: a bare result object) and for several (spark endpoint:
// an array of per-symbol entries). Both are normalized here into a map
// keyed by symbol so downstream code never sees the difference.
//
// A symbol missing from the response is not an error; it is absent from
// the returned map and the caller decides whether to retry.
func (c *FinanceClient) Download(ctx context.Context, symbols []string, start, end time.Time) (map[string]ChartResult, error) {
	if len(symbols) == 0 {
		return map[string]ChartResult{}, nil
	}
	if len(symbols) == 1 {
		return c.downloadSingle(ctx, symbols[0], start, end)
	}
	return c.downloadBatch(ctx, symbols, start, end)
}

// downloadSingle queries the chart endpoint for one symbol and lifts the
// bare result into map form.
func (c *FinanceClient) downloadSingle(ctx context.Context, symbol string, start, end time.Time) (map[string]ChartResult, error) {
	reqURL := fmt.Sprintf(
		"%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d&events=div%%2Csplit",
		c.baseURL,
		url.PathEscape(symbol),
		start.Unix(),
		end.Unix(),
	)

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var response Response
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode chart response: %w", err)
	}
	if response.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo error: %s", *response.Chart.Error)
	}

	charts := map[string]ChartResult{}
	if len(response.Chart.Result) > 0 {
		result := response.Chart.Result[0]
		key := result.Meta.Symbol
		if key == "" {
			key = symbol
		}
		charts[key] = result
	}
	return charts, nil
}

// downloadBatch queries the spark endpoint for several symbols at once and
// flattens the per-symbol entries into map form.
func (c *FinanceClient) downloadBatch(ctx context.Context, symbols []string, start, end time.Time) (map[string]ChartResult, error) {
	reqURL := fmt.Sprintf(
		"%s/v8/finance/spark?symbols=%s&interval=1d&period1=%d&period2=%d&events=div%%2Csplit",
		c.baseURL,
		url.QueryEscape(strings.Join(symbols, ",")),
		start.Unix(),
		end.Unix(),
	)

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var response SparkResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode spark response: %w", err)
	}
	if response.Spark.Error != nil {
		return nil, fmt.Errorf("yahoo error: %s", *response.Spark.Error)
	}

	charts := map[string]ChartResult{}
	for _, entry := range response.Spark.Result {
		if len(entry.Response) == 0 {
			continue
		}
		key := entry.Symbol
		if key == "" {
			key = entry.Response[0].Meta.Symbol
		}
		if key == "" {
			continue
		}
		charts[key] = entry.Response[0]
	}
	return charts, nil
}

// get executes a single HTTP request against the Yahoo API and returns the
// raw body. It sets the headers Yahoo requires to serve API traffic.
func (c *FinanceClient) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo returned status %d", resp.StatusCode)
	}

	return data, nil
}

// ParseBars converts a chart result into a date-ordered bar series.
// Timestamps are truncated to midnight UTC. Prices stay as pointers so
// callers can distinguish a null session from a zero price.
//
// Returns an error when the payload has no timestamps, no quote arrays, or
// a close array whose length does not match the timestamps.
func ParseBars(result ChartResult) ([]Bar, error) {
	if len(result.Timestamp) == 0 {
		return nil, fmt.Errorf("no price data returned")
	}
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote data returned")
	}

	quote := result.Indicators.Quote[0]
	if len(quote.Close) != len(result.Timestamp) {
		return nil, fmt.Errorf("mismatched data lengths")
	}

	bars := make([]Bar, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		day := time.Unix(ts, 0).UTC()
		bars[i] = Bar{
			Date:   time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
			Open:   at(quote.Open, i),
			High:   at(quote.High, i),
			Low:    at(quote.Low, i),
			Close:  quote.Close[i],
			Volume: at(quote.Volume, i),
		}
	}
	return bars, nil
}

// at indexes a parallel array defensively; Yahoo occasionally ships
// shorter open/high/low/volume arrays than timestamps.
func at[T any](values []*T, i int) *T {
	if i >= len(values) {
		return nil
	}
	return values[i]
}
