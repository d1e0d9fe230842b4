package util

import (
	"elering2mqtt/internal/config"

	"go.uber.org/zap"
)

func LoadTestConfig() config.Config {
	return config.Config{
		LogLevel: zap.DebugLevel,
		Elering: config.EleringConfig{
			Country:        "ee",
			VatPercent:     24,
			TimeoutSeconds: 5,
		},
		MQTT: config.MQTTConfig{
			Host: "localhost",
			Port: 1883,
		},
		Port: 8080,
	}
}
