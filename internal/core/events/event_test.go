package events

import (
	"encoding/json"
	"testing"
	"time"

	"elering2mqtt/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func testDay() domain.PriceDay {
	start := time.Date(2025, 3, 9, 22, 0, 0, 0, time.UTC)
	day := domain.PriceDay{
		Window:     domain.PriceWindow{Start: start.Unix(), End: start.Add(24 * time.Hour).Unix()},
		Country:    "ee",
		VatPercent: 24,
		FetchedAt:  start,
	}
	for i := int64(0); i < 8; i++ {
		day.Quarters = append(day.Quarters, domain.PricePoint{
			Ts:    start.Unix() + i*900,
			Price: 100 + float64(i)*10,
		})
	}
	day.Hours = []domain.PricePoint{
		{Ts: start.Unix(), Price: 115},
		{Ts: start.Unix() + 3600, Price: 155},
	}
	return day
}

func floatEvent(t *testing.T, events []any, id string) *domain.FloatSensorUpdateEvent {
	t.Helper()
	for _, ev := range events {
		if fe, ok := ev.(domain.FloatSensorUpdateEvent); ok && fe.Id == id {
			return &fe
		}
	}
	return nil
}

func TestPriceDayToUpdateEvents(t *testing.T) {

	assert := assert.New(t)

	day := testDay()
	// second quarter of the second hour
	now := time.Date(2025, 3, 9, 23, 20, 0, 0, time.UTC)

	evs := PriceDayToUpdateEvents(&day, now)

	quarter := floatEvent(t, evs, domain.SENSOR_ID_QUARTER_PRICE_MWH)
	assert.NotNil(quarter)
	assert.Equal(150.0, quarter.Value)

	quarterS := floatEvent(t, evs, domain.SENSOR_ID_QUARTER_PRICE_S_KWH)
	assert.NotNil(quarterS)
	assert.Equal(15.0, quarterS.Value, "s/kWh is €/MWh divided by 10")

	hour := floatEvent(t, evs, domain.SENSOR_ID_HOURLY_AVG_MWH)
	assert.NotNil(hour)
	assert.Equal(155.0, hour.Value)

	dayMin := floatEvent(t, evs, domain.SENSOR_ID_DAY_MIN_MWH)
	assert.NotNil(dayMin)
	assert.Equal(100.0, dayMin.Value)

	dayMax := floatEvent(t, evs, domain.SENSOR_ID_DAY_MAX_MWH)
	assert.NotNil(dayMax)
	assert.Equal(170.0, dayMax.Value)
}

func TestPriceDayToUpdateEventsOutsideSeries(t *testing.T) {

	assert := assert.New(t)

	day := testDay()
	now := day.Window.StartTime().Add(-time.Hour)

	evs := PriceDayToUpdateEvents(&day, now)

	assert.Nil(floatEvent(t, evs, domain.SENSOR_ID_QUARTER_PRICE_MWH), "no quarter before the series")
	assert.Nil(floatEvent(t, evs, domain.SENSOR_ID_HOURLY_AVG_MWH), "no hour before the series")
	// day stats and window are still known
	assert.NotNil(floatEvent(t, evs, domain.SENSOR_ID_DAY_AVG_MWH))
}

func TestPriceAttributesEvent(t *testing.T) {

	assert := assert.New(t)

	day := testDay()
	ev, err := PriceAttributesEvent(&day)
	if err != nil {
		t.Error(err)
		return
	}

	attrs, ok := ev.(domain.AttributesUpdateEvent)
	assert.True(ok)

	var payload domain.PriceDayPayload
	err = json.Unmarshal([]byte(attrs.Payload), &payload)
	assert.NoError(err)
	assert.Equal("ee", payload.Country)
	assert.Len(payload.Quarters, 8)
	assert.Len(payload.Hours, 2)
	assert.Equal("2025-03-09T22:00:00Z", payload.StartUTC)
}
