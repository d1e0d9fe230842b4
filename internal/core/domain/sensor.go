package domain

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"elering2mqtt/pkg/elering"

	"github.com/carlmjohnson/versioninfo"
)

const (
	SENSOR_ID_BRIDGE_STATE        = "bridge"
	SENSOR_ID_QUARTER_PRICE_MWH   = "quarter_price_eur_mwh"
	SENSOR_ID_QUARTER_PRICE_S_KWH = "quarter_price_s_kwh"
	SENSOR_ID_HOURLY_AVG_MWH      = "hourly_avg_eur_mwh"
	SENSOR_ID_HOURLY_AVG_S_KWH    = "hourly_avg_s_kwh"
	SENSOR_ID_DAY_MIN_MWH         = "day_min_eur_mwh"
	SENSOR_ID_DAY_AVG_MWH         = "day_avg_eur_mwh"
	SENSOR_ID_DAY_MAX_MWH         = "day_max_eur_mwh"
	SENSOR_ID_PRICE_WINDOW        = "price_window"
	BUTTON_ID_REFRESH_PRICES      = "refresh_prices"
	ATTRIBUTES_ID_PRICES          = "prices"

	STATE_CLASS_MEASUREMENT   = "measurement"
	DEVICE_CLASS_CONNECTIVITY = "connectivity"
	ENTITY_CLASS_DIAGNOSTIC   = "diagnostic"
	SENSOR_TYPE_SENSOR        = "sensor"
	SENSOR_TYPE_BINARY        = "binary_sensor"

	UNIT_EUR_MWH = "€/MWh"
	UNIT_S_KWH   = "s/kWh"
)

func BridgeDevice(baseTopic string) Device {
	return Device{
		Id:           fmt.Sprintf("elering2mqtt_bridge_%s", md5HashShort(baseTopic)),
		Manufacturer: "elering2mqtt",
		Model:        "Elering bridge",
		Version:      versioninfo.Short(),
		Name:         fmt.Sprintf("Elering2MQTT %s", md5HashShort(baseTopic)),
	}
}

func MarketDevice(info *elering.MarketInfo) Device {
	return Device{
		Id:           fmt.Sprintf("elering_market_%s", info.Country),
		Manufacturer: "Elering",
		Model:        info.Source,
		Name:         fmt.Sprintf("%s (%s)", info.Source, strings.ToUpper(info.Country)),
	}
}

func IdDevice(device Device) Device {
	return Device{
		Id:   device.Id,
		Name: device.Name,
	}
}

func BridgeSensors(bridgeDevice Device) []GenericSensor {

	var sensors []GenericSensor

	sensors = append(sensors, GenericSensor{
		Device:         bridgeDevice,
		Id:             SENSOR_ID_BRIDGE_STATE,
		SensorType:     SENSOR_TYPE_BINARY,
		Name:           "Connection state",
		DeviceClass:    DEVICE_CLASS_CONNECTIVITY,
		EntityCategory: ENTITY_CLASS_DIAGNOSTIC,
		UniqueId:       uniqueId(bridgeDevice.Id, SENSOR_ID_BRIDGE_STATE),
	})

	return sensors
}

func MarketPriceSensors(marketDevice Device) []GenericSensor {

	var sensors []GenericSensor

	// Quarter price €/MWh
	sensors = append(sensors, GenericSensor{
		Device:            marketDevice,
		Id:                SENSOR_ID_QUARTER_PRICE_MWH,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Quarter price",
		StateClass:        STATE_CLASS_MEASUREMENT,
		UnitOfMeasurement: UNIT_EUR_MWH,
		Icon:              "mdi:currency-eur",
		WithAttributes:    true,
		UniqueId:          uniqueId(marketDevice.Id, SENSOR_ID_QUARTER_PRICE_MWH),
	})

	// Quarter price s/kWh
	sensors = append(sensors, GenericSensor{
		Device:            marketDevice,
		Id:                SENSOR_ID_QUARTER_PRICE_S_KWH,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Quarter price s/kWh",
		StateClass:        STATE_CLASS_MEASUREMENT,
		UnitOfMeasurement: UNIT_S_KWH,
		Icon:              "mdi:flash",
		UniqueId:          uniqueId(marketDevice.Id, SENSOR_ID_QUARTER_PRICE_S_KWH),
	})

	// Hourly average €/MWh
	sensors = append(sensors, GenericSensor{
		Device:            marketDevice,
		Id:                SENSOR_ID_HOURLY_AVG_MWH,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Hourly average price",
		StateClass:        STATE_CLASS_MEASUREMENT,
		UnitOfMeasurement: UNIT_EUR_MWH,
		Icon:              "mdi:currency-eur",
		WithAttributes:    true,
		UniqueId:          uniqueId(marketDevice.Id, SENSOR_ID_HOURLY_AVG_MWH),
	})

	// Hourly average s/kWh
	sensors = append(sensors, GenericSensor{
		Device:            marketDevice,
		Id:                SENSOR_ID_HOURLY_AVG_S_KWH,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Hourly average price s/kWh",
		StateClass:        STATE_CLASS_MEASUREMENT,
		UnitOfMeasurement: UNIT_S_KWH,
		Icon:              "mdi:flash",
		UniqueId:          uniqueId(marketDevice.Id, SENSOR_ID_HOURLY_AVG_S_KWH),
	})

	return sensors
}

func MarketDiagnosticSensors(marketDevice Device) []GenericSensor {

	var sensors []GenericSensor

	// Day minimum
	sensors = append(sensors, GenericSensor{
		Device:            marketDevice,
		Id:                SENSOR_ID_DAY_MIN_MWH,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Day minimum price",
		StateClass:        STATE_CLASS_MEASUREMENT,
		UnitOfMeasurement: UNIT_EUR_MWH,
		EntityCategory:    ENTITY_CLASS_DIAGNOSTIC,
		EnabledByDefault:  optionalBool(false),
		UniqueId:          uniqueId(marketDevice.Id, SENSOR_ID_DAY_MIN_MWH),
	})

	// Day average
	sensors = append(sensors, GenericSensor{
		Device:            marketDevice,
		Id:                SENSOR_ID_DAY_AVG_MWH,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Day average price",
		StateClass:        STATE_CLASS_MEASUREMENT,
		UnitOfMeasurement: UNIT_EUR_MWH,
		EntityCategory:    ENTITY_CLASS_DIAGNOSTIC,
		EnabledByDefault:  optionalBool(false),
		UniqueId:          uniqueId(marketDevice.Id, SENSOR_ID_DAY_AVG_MWH),
	})

	// Day maximum
	sensors = append(sensors, GenericSensor{
		Device:            marketDevice,
		Id:                SENSOR_ID_DAY_MAX_MWH,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Day maximum price",
		StateClass:        STATE_CLASS_MEASUREMENT,
		UnitOfMeasurement: UNIT_EUR_MWH,
		EntityCategory:    ENTITY_CLASS_DIAGNOSTIC,
		EnabledByDefault:  optionalBool(false),
		UniqueId:          uniqueId(marketDevice.Id, SENSOR_ID_DAY_MAX_MWH),
	})

	// Active delivery window
	sensors = append(sensors, GenericSensor{
		Device:         marketDevice,
		Id:             SENSOR_ID_PRICE_WINDOW,
		SensorType:     SENSOR_TYPE_SENSOR,
		Name:           "Price window",
		EntityCategory: ENTITY_CLASS_DIAGNOSTIC,
		Icon:           "mdi:calendar-clock",
		UniqueId:       uniqueId(marketDevice.Id, SENSOR_ID_PRICE_WINDOW),
	})

	return sensors
}

func MarketButtons(marketDevice Device) []GenericButton {

	var buttons []GenericButton

	// Manual day-ahead re-poll
	buttons = append(buttons, GenericButton{
		Device:   marketDevice,
		Id:       BUTTON_ID_REFRESH_PRICES,
		Name:     "Refresh prices",
		UniqueId: uniqueId(marketDevice.Id, BUTTON_ID_REFRESH_PRICES),
		Icon:     "mdi:refresh",
	})

	return buttons
}

func uniqueId(baseId, id string) string {
	return fmt.Sprintf("uid_%s_%s", baseId, id)
}

func md5Hash(text string) string {
	hash := md5.Sum([]byte(text))
	return hex.EncodeToString(hash[:])
}

func md5HashShort(text string) string {
	hash := md5Hash(text)
	return hash[0:8]
}

func optionalBool(value bool) *bool {
	return &value
}
