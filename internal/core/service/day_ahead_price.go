package service

import (
	"math"
	"sort"
	"time"

	"elering2mqtt/internal/core/domain"
	"elering2mqtt/internal/core/port"
	"elering2mqtt/pkg/elering"

	"go.uber.org/zap"
)

// DayAheadPriceService applies VAT to raw €/MWh rows, orders the
// quarter series and derives hourly averages.
type DayAheadPriceService struct {
	Country    string
	VatPercent float64
	Logger     *zap.Logger
}

func (s *DayAheadPriceService) Window(now time.Time) domain.PriceWindow {
	return domain.DayWindow22UTC(now)
}

func (s *DayAheadPriceService) Build(window domain.PriceWindow, rows []elering.PriceRow,
	fetchedAt time.Time) domain.PriceDay {

	vatFactor := 1.0 + s.VatPercent/100.0

	quarters := make([]domain.PricePoint, 0, len(rows))
	for _, row := range rows {
		quarters = append(quarters, domain.PricePoint{
			Ts:    row.Timestamp,
			Price: round5(row.Price * vatFactor),
		})
	}
	sort.Slice(quarters, func(i, j int) bool {
		return quarters[i].Ts < quarters[j].Ts
	})

	day := domain.PriceDay{
		Window:     window,
		Country:    s.Country,
		VatPercent: s.VatPercent,
		FetchedAt:  fetchedAt,
		Quarters:   quarters,
		Hours:      hourlyAverages(quarters),
	}

	if s.Logger != nil {
		s.Logger.Debug("built price day",
			zap.Time("start", window.StartTime()), zap.Time("end", window.EndTime()),
			zap.Int("quarters", len(day.Quarters)), zap.Int("hours", len(day.Hours)))
	}
	return day
}

// hourlyAverages groups the quarter series by hour bucket and averages
// each bucket. Input must be sorted by timestamp.
func hourlyAverages(quarters []domain.PricePoint) []domain.PricePoint {
	buckets := make(map[int64][]float64)
	for _, q := range quarters {
		bucket := domain.HourBucket(q.Ts)
		buckets[bucket] = append(buckets[bucket], q.Price)
	}

	keys := make([]int64, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	hours := make([]domain.PricePoint, 0, len(keys))
	for _, k := range keys {
		var sum float64
		for _, p := range buckets[k] {
			sum += p
		}
		hours = append(hours, domain.PricePoint{
			Ts:    k,
			Price: sum / float64(len(buckets[k])),
		})
	}
	return hours
}

func round5(value float64) float64 {
	return math.Round(value*1e5) / 1e5
}

// ensure interface compliance
var _ port.PriceDayBuilder = (*DayAheadPriceService)(nil)
