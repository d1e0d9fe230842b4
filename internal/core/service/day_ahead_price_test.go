package service

import (
	"testing"
	"time"

	"elering2mqtt/internal/core/domain"
	"elering2mqtt/pkg/elering"

	"github.com/stretchr/testify/assert"
)

func TestBuildAppliesVATAndSorts(t *testing.T) {

	assert := assert.New(t)

	srv := DayAheadPriceService{Country: "ee", VatPercent: 24}
	start := time.Date(2025, 3, 9, 22, 0, 0, 0, time.UTC)
	window := domain.PriceWindow{Start: start.Unix(), End: start.Add(24 * time.Hour).Unix()}

	// out of order on purpose
	rows := []elering.PriceRow{
		{Timestamp: start.Unix() + 900, Price: 100},
		{Timestamp: start.Unix(), Price: 80.123456},
	}

	day := srv.Build(window, rows, start.Add(9*time.Hour))

	assert.Len(day.Quarters, 2)
	assert.Equal(start.Unix(), day.Quarters[0].Ts, "sorted by timestamp")
	assert.Equal(99.35309, day.Quarters[0].Price, "VAT applied, 5-decimal rounding")
	assert.Equal(124.0, day.Quarters[1].Price)
	assert.Equal("ee", day.Country)
	assert.Equal(24.0, day.VatPercent)
}

func TestBuildHourlyAverages(t *testing.T) {

	assert := assert.New(t)

	srv := DayAheadPriceService{Country: "ee", VatPercent: 0}
	start := time.Date(2025, 3, 9, 22, 0, 0, 0, time.UTC)
	window := domain.PriceWindow{Start: start.Unix(), End: start.Add(24 * time.Hour).Unix()}

	var rows []elering.PriceRow
	// first hour: 10, 20, 30, 40 → avg 25; second hour: one quarter only
	for i, p := range []float64{10, 20, 30, 40} {
		rows = append(rows, elering.PriceRow{Timestamp: start.Unix() + int64(i)*900, Price: p})
	}
	rows = append(rows, elering.PriceRow{Timestamp: start.Unix() + 3600, Price: 70})

	day := srv.Build(window, rows, start)

	assert.Len(day.Hours, 2)
	assert.Equal(start.Unix(), day.Hours[0].Ts)
	assert.Equal(25.0, day.Hours[0].Price)
	assert.Equal(start.Unix()+3600, day.Hours[1].Ts)
	assert.Equal(70.0, day.Hours[1].Price, "partial hour averages over present quarters only")
}

func TestBuildEmptyRows(t *testing.T) {

	assert := assert.New(t)

	srv := DayAheadPriceService{Country: "fi", VatPercent: 25.5}
	window := domain.DayWindow22UTC(time.Now())

	day := srv.Build(window, nil, time.Now())

	assert.Empty(day.Quarters)
	assert.Empty(day.Hours)
	assert.Nil(day.Stats())
}
