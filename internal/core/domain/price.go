package domain

import (
	"time"
)

// PriceWindow is a [Start, End) interval in epoch seconds, UTC.
type PriceWindow struct {
	Start int64
	End   int64
}

// DayWindow22UTC returns the delivery-day window containing now.
// Day-ahead delivery days run 22:00Z to 22:00Z.
func DayWindow22UTC(now time.Time) PriceWindow {
	nowUTC := now.UTC()
	today22 := time.Date(nowUTC.Year(), nowUTC.Month(), nowUTC.Day(), 22, 0, 0, 0, time.UTC)
	if nowUTC.Before(today22) {
		return PriceWindow{
			Start: today22.Add(-24 * time.Hour).Unix(),
			End:   today22.Unix(),
		}
	}
	return PriceWindow{
		Start: today22.Unix(),
		End:   today22.Add(24 * time.Hour).Unix(),
	}
}

func (w PriceWindow) Contains(ts int64) bool {
	return ts >= w.Start && ts < w.End
}

func (w PriceWindow) StartTime() time.Time {
	return time.Unix(w.Start, 0).UTC()
}

func (w PriceWindow) EndTime() time.Time {
	return time.Unix(w.End, 0).UTC()
}

// PricePoint is a period start (epoch seconds) and its VAT-included
// price in €/MWh.
type PricePoint struct {
	Ts    int64   `json:"ts"`
	Price float64 `json:"price"`
}

// PriceDay is one delivery day of prices: the quarter-hour series and
// the hourly averages derived from it.
type PriceDay struct {
	Window     PriceWindow
	Country    string
	VatPercent float64
	FetchedAt  time.Time
	Quarters   []PricePoint
	Hours      []PricePoint
}

// QuarterAt returns the latest quarter whose start is at or before ts,
// or nil if ts precedes the series.
func (d *PriceDay) QuarterAt(ts int64) *PricePoint {
	var found *PricePoint
	for i := range d.Quarters {
		if d.Quarters[i].Ts <= ts {
			found = &d.Quarters[i]
		} else {
			break
		}
	}
	return found
}

// HourAt returns the hourly average for the hour bucket containing ts,
// or nil when the day has no data for that hour.
func (d *PriceDay) HourAt(ts int64) *PricePoint {
	bucket := HourBucket(ts)
	for i := range d.Hours {
		if d.Hours[i].Ts == bucket {
			return &d.Hours[i]
		}
	}
	return nil
}

type PriceStats struct {
	Min  float64
	Max  float64
	Mean float64
}

// Stats computes min/max/mean over the quarter series.
func (d *PriceDay) Stats() *PriceStats {
	if len(d.Quarters) == 0 {
		return nil
	}
	stats := PriceStats{
		Min: d.Quarters[0].Price,
		Max: d.Quarters[0].Price,
	}
	var sum float64
	for _, q := range d.Quarters {
		if q.Price < stats.Min {
			stats.Min = q.Price
		}
		if q.Price > stats.Max {
			stats.Max = q.Price
		}
		sum += q.Price
	}
	stats.Mean = sum / float64(len(d.Quarters))
	return &stats
}

func HourBucket(ts int64) int64 {
	return ts - ts%3600
}

// PriceDayPayload is the JSON document published on the attributes
// topic and served by the HTTP API.
type PriceDayPayload struct {
	AsOf       string       `json:"as_of"`
	Country    string       `json:"country"`
	VatPercent float64      `json:"vat_percent"`
	StartUTC   string       `json:"start_utc"`
	EndUTC     string       `json:"end_utc"`
	Quarters   []PricePoint `json:"quarters"`
	Hours      []PricePoint `json:"hours"`
}

func (d *PriceDay) Payload() PriceDayPayload {
	return PriceDayPayload{
		AsOf:       d.FetchedAt.UTC().Format(time.RFC3339),
		Country:    d.Country,
		VatPercent: d.VatPercent,
		StartUTC:   d.Window.StartTime().Format(time.RFC3339),
		EndUTC:     d.Window.EndTime().Format(time.RFC3339),
		Quarters:   d.Quarters,
		Hours:      d.Hours,
	}
}
