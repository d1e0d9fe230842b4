package elering

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const timeFormat = "2006-01-02T15:04:05Z"

type HTTPPriceReader struct {
	baseURL    string
	country    string
	client     *http.Client
	logger     *zap.Logger
	instrument []Instrument
}

func CreateHTTPPriceReader(baseURL, country string, timeout time.Duration, logger *zap.Logger,
	instrument []Instrument) (*HTTPPriceReader, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !IsSupportedCountry(country) {
		return nil, fmt.Errorf("unsupported country %q", country)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPPriceReader{
		baseURL: baseURL,
		country: country,
		client: &http.Client{
			Timeout: timeout,
		},
		logger:     logger.With(zap.String("client", "elering")),
		instrument: instrument,
	}, nil
}

func (r *HTTPPriceReader) GetMarketInfo() (*MarketInfo, error) {
	return &MarketInfo{
		Source:  SourceName,
		Country: r.country,
		BaseURL: r.baseURL,
	}, nil
}

func (r *HTTPPriceReader) GetPrices(ctx context.Context, start, end time.Time) ([]PriceRow, error) {
	defer RecordTimer("GetPrices", r.instrument)()

	reqURL, err := r.priceURL(start, end)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, &APIError{Endpoint: r.baseURL, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   r.baseURL,
			Message:    "unexpected status",
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Endpoint: r.baseURL, Message: "read body", Err: err}
	}

	rows, err := decodeRows(body)
	if err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Endpoint: r.baseURL, Message: "decode body", Err: err}
	}

	points := normalizeRows(rows, r.country)
	r.logger.Debug("fetched prices",
		zap.Time("start", start), zap.Time("end", end),
		zap.Int("rows", len(rows)), zap.Int("points", len(points)))
	return points, nil
}

func (r *HTTPPriceReader) priceURL(start, end time.Time) (string, error) {
	u, err := url.Parse(r.baseURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("start", start.UTC().Format(timeFormat))
	q.Set("end", end.UTC().Format(timeFormat))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// decodeRows accepts both response shapes seen in the wild:
// {"data": [...]} and a bare top-level array.
func decodeRows(body []byte) ([]map[string]any, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	rowsRaw := json.RawMessage(body)
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 {
		rowsRaw = envelope.Data
	}

	var rows []map[string]any
	if err := json.Unmarshal(rowsRaw, &rows); err != nil || rows == nil {
		return nil, errors.New("response missing price row list")
	}
	return rows, nil
}

// normalizeRows filters the raw rows down to (timestamp, price) pairs
// for a single country. Rows that cannot be parsed are skipped.
func normalizeRows(rows []map[string]any, country string) []PriceRow {
	points := make([]PriceRow, 0, len(rows))
	for _, row := range rows {
		tsValue, ok := row["timestamp"]
		if !ok {
			tsValue = row["ts"]
		}
		ts, ok := parseTimestamp(tsValue)
		if !ok {
			continue
		}

		// prefer the country key, fall back to the generic "price"
		priceValue, ok := row[country]
		if !ok || priceValue == nil {
			priceValue = row["price"]
		}
		price, ok := parsePrice(priceValue)
		if !ok {
			continue
		}

		points = append(points, PriceRow{Timestamp: ts, Price: price})
	}
	return points
}

func parseTimestamp(value any) (int64, bool) {
	switch v := value.(type) {
	case float64:
		return int64(v), true
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n, true
		}
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t.Unix(), true
		}
	}
	return 0, false
}

func parsePrice(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// ensure interface compliance
var _ PriceReader = (*HTTPPriceReader)(nil)
