package elering

import (
	"context"
	"time"
)

func CreateTestPriceReader() (PriceReader, error) {
	return TestPriceReader{}, nil
}

// TestPriceReader serves a deterministic synthetic day of quarter-hour
// prices so actor tests can run without network access.
type TestPriceReader struct {
	Fail error
}

func (reader TestPriceReader) GetMarketInfo() (*MarketInfo, error) {
	return &MarketInfo{
		Source:  SourceName,
		Country: "ee",
		BaseURL: DefaultBaseURL,
	}, nil
}

func (reader TestPriceReader) GetPrices(_ context.Context, start, end time.Time) ([]PriceRow, error) {
	if reader.Fail != nil {
		return nil, reader.Fail
	}
	var rows []PriceRow
	for ts := start.Unix(); ts < end.Unix(); ts += 900 {
		quarterOfDay := (ts - start.Unix()) / 900
		rows = append(rows, PriceRow{
			Timestamp: ts,
			// ramp from 50 €/MWh upwards, 0.25 per quarter
			Price: 50 + float64(quarterOfDay)*0.25,
		})
	}
	return rows, nil
}
