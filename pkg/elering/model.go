package elering

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"time"
)

const (
	// DefaultBaseURL is the public Elering dashboard NPS price endpoint.
	DefaultBaseURL = "https://dashboard.elering.ee/api/nps/price"

	SourceName = "Elering NPS"
)

// SupportedCountries are the bidding areas exposed by the Elering API.
var SupportedCountries = []string{"ee", "fi", "lv", "lt"}

func IsSupportedCountry(country string) bool {
	return slices.Contains(SupportedCountries, country)
}

// PriceRow is a single normalized row from the API: a period start
// (epoch seconds, UTC) and its day-ahead price in €/MWh excluding VAT.
type PriceRow struct {
	Timestamp int64
	Price     float64
}

type MarketInfo struct {
	Source  string
	Country string
	BaseURL string
}

type PriceReader interface {
	// GetPrices returns the raw price rows for the [start, end) interval.
	// Rows are returned as delivered by the API: unsorted and unfiltered.
	GetPrices(ctx context.Context, start, end time.Time) ([]PriceRow, error)
	GetMarketInfo() (*MarketInfo, error)
}

// APIError is an error response from the Elering API.
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("elering API error (%d) at %s: %s (caused by: %v)", e.StatusCode, e.Endpoint, e.Message, e.Err)
	}
	return fmt.Sprintf("elering API error (%d) at %s: %s", e.StatusCode, e.Endpoint, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func (e *APIError) Retryable() bool {
	switch e.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// Instrument allows callers to observe request timing without coupling
// the client to a metrics backend.
type Instrument struct {
	RecordTime func(fnName string, elapsed time.Duration)
}

func RecordTimer(fnName string, instrument []Instrument) func() {
	start := time.Now()
	return func() {
		elapsed := time.Since(start)
		for i := range instrument {
			if instrument[i].RecordTime != nil {
				instrument[i].RecordTime(fnName, elapsed)
			}
		}
	}
}
