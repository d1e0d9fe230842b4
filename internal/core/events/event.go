package events

import (
	"encoding/json"
	"fmt"
	"time"

	. "elering2mqtt/internal/core/domain"
)

// PriceDayToUpdateEvents maps a price day onto sensor updates for the
// instant now. No quarter/hour events are produced when now falls
// outside the series.
func PriceDayToUpdateEvents(day *PriceDay, now time.Time) []any {
	var events []any

	ts := now.UTC().Unix()

	// Quarter price
	if q := day.QuarterAt(ts); q != nil {
		events = append(events, FloatSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: SENSOR_ID_QUARTER_PRICE_MWH,
			},
			Value:    q.Price,
			Decimals: 2,
		})
		// 1 €/MWh = 0.1 s/kWh
		events = append(events, FloatSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: SENSOR_ID_QUARTER_PRICE_S_KWH,
			},
			Value:    q.Price / 10.0,
			Decimals: 2,
		})
	}

	// Hourly average
	if h := day.HourAt(ts); h != nil {
		events = append(events, FloatSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: SENSOR_ID_HOURLY_AVG_MWH,
			},
			Value:    h.Price,
			Decimals: 2,
		})
		events = append(events, FloatSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: SENSOR_ID_HOURLY_AVG_S_KWH,
			},
			Value:    h.Price / 10.0,
			Decimals: 2,
		})
	}

	// Day statistics
	if stats := day.Stats(); stats != nil {
		events = append(events, FloatSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: SENSOR_ID_DAY_MIN_MWH,
			},
			Value:    stats.Min,
			Decimals: 2,
		})
		events = append(events, FloatSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: SENSOR_ID_DAY_AVG_MWH,
			},
			Value:    stats.Mean,
			Decimals: 2,
		})
		events = append(events, FloatSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: SENSOR_ID_DAY_MAX_MWH,
			},
			Value:    stats.Max,
			Decimals: 2,
		})
	}

	// Active delivery window
	events = append(events, TextSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_PRICE_WINDOW,
		},
		Value: fmt.Sprintf("%s/%s",
			day.Window.StartTime().Format(time.RFC3339),
			day.Window.EndTime().Format(time.RFC3339)),
	})

	return events
}

// PriceAttributesEvent renders the full day series for the shared
// attributes topic.
func PriceAttributesEvent(day *PriceDay) (any, error) {
	payload, err := json.Marshal(day.Payload())
	if err != nil {
		return nil, err
	}
	return AttributesUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: ATTRIBUTES_ID_PRICES,
		},
		Payload: string(payload),
	}, nil
}
