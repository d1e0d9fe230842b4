package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayWindow22UTCBefore22(t *testing.T) {

	assert := assert.New(t)

	now := time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)
	w := DayWindow22UTC(now)

	assert.Equal(time.Date(2025, 3, 9, 22, 0, 0, 0, time.UTC), w.StartTime())
	assert.Equal(time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC), w.EndTime())
	assert.True(w.Contains(now.Unix()))
}

func TestDayWindow22UTCAfter22(t *testing.T) {

	assert := assert.New(t)

	now := time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)
	w := DayWindow22UTC(now)

	assert.Equal(time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC), w.StartTime())
	assert.Equal(time.Date(2025, 3, 11, 22, 0, 0, 0, time.UTC), w.EndTime())
	assert.True(w.Contains(now.Unix()))
	assert.False(w.Contains(w.End))
}

func TestDayWindow22UTCLocalTimeInput(t *testing.T) {

	assert := assert.New(t)

	// 23:30 in UTC+2 is 21:30Z, still the previous delivery day
	loc := time.FixedZone("EET", 2*3600)
	now := time.Date(2025, 3, 10, 23, 30, 0, 0, loc)
	w := DayWindow22UTC(now)

	assert.Equal(time.Date(2025, 3, 9, 22, 0, 0, 0, time.UTC), w.StartTime())
}

func testDay() PriceDay {
	start := time.Date(2025, 3, 9, 22, 0, 0, 0, time.UTC).Unix()
	day := PriceDay{
		Window:  PriceWindow{Start: start, End: start + 86400},
		Country: "ee",
	}
	for i := int64(0); i < 8; i++ {
		day.Quarters = append(day.Quarters, PricePoint{
			Ts:    start + i*900,
			Price: 100 + float64(i)*10,
		})
	}
	day.Hours = []PricePoint{
		{Ts: start, Price: 115},
		{Ts: start + 3600, Price: 155},
	}
	return day
}

func TestQuarterAt(t *testing.T) {

	assert := assert.New(t)

	day := testDay()
	start := day.Window.Start

	q := day.QuarterAt(start)
	assert.NotNil(q)
	assert.Equal(100.0, q.Price, "exact quarter start")

	q = day.QuarterAt(start + 950)
	assert.NotNil(q)
	assert.Equal(110.0, q.Price, "mid-quarter resolves to its start")

	q = day.QuarterAt(start + 86000)
	assert.NotNil(q)
	assert.Equal(170.0, q.Price, "after last quarter returns last")

	assert.Nil(day.QuarterAt(start-1), "before series")
}

func TestHourAt(t *testing.T) {

	assert := assert.New(t)

	day := testDay()
	start := day.Window.Start

	h := day.HourAt(start + 1800)
	assert.NotNil(h)
	assert.Equal(115.0, h.Price)

	h = day.HourAt(start + 3600 + 59*60)
	assert.NotNil(h)
	assert.Equal(155.0, h.Price)

	assert.Nil(day.HourAt(start+2*3600), "missing hour bucket")
}

func TestStats(t *testing.T) {

	assert := assert.New(t)

	day := testDay()
	stats := day.Stats()

	assert.NotNil(stats)
	assert.Equal(100.0, stats.Min)
	assert.Equal(170.0, stats.Max)
	assert.Equal(135.0, stats.Mean)

	empty := PriceDay{}
	assert.Nil(empty.Stats())
}

func TestPayload(t *testing.T) {

	assert := assert.New(t)

	day := testDay()
	day.VatPercent = 24
	day.FetchedAt = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	payload := day.Payload()
	assert.Equal("2025-03-10T08:00:00Z", payload.AsOf)
	assert.Equal("2025-03-09T22:00:00Z", payload.StartUTC)
	assert.Equal("2025-03-10T22:00:00Z", payload.EndUTC)
	assert.Equal("ee", payload.Country)
	assert.Len(payload.Quarters, 8)
	assert.Len(payload.Hours, 2)
}
