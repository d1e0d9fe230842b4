package config

import (
	"errors"
	"regexp"
	"strings"

	"elering2mqtt/pkg/elering"

	"go.uber.org/zap/zapcore"
)

type Config struct {
	LogLevel zapcore.Level
	Elering  EleringConfig `mapstructure:"elering"`
	MQTT     MQTTConfig    `mapstructure:"mqtt"`

	Port    uint `mapstructure:"port"`
	HttpLog bool `mapstructure:"http_log"`
}

type EleringConfig struct {
	BaseURL        string  `mapstructure:"base_url"`
	Country        string  `mapstructure:"country"`
	VatPercent     float64 `mapstructure:"vat_percent"`
	TimeoutSeconds uint    `mapstructure:"timeout_seconds"`
}

type MQTTConfig struct {
	Host              string
	Port              int
	Username          string
	Password          string
	BaseTopic         string `mapstructure:"base_topic"`
	HADiscoveryEnable bool   `mapstructure:"ha_discovery_enable"`
	HADiscoveryTopic  string `mapstructure:"ha_discovery_topic"`
}

func CheckMQTTTopic(baseTopic string) (string, error) {
	// check and fix base topic
	lowerBaseTopic := strings.ToLower(baseTopic)
	baseTopicRegexp := regexp.MustCompile("^[a-z0-9_]+$")
	matches := baseTopicRegexp.FindAllStringSubmatch(lowerBaseTopic, 1)
	if len(matches) <= 0 {
		return "", errors.New("invalid topic. can only contain letters, numbers and underscores")
	}
	return lowerBaseTopic, nil
}

func CheckCountry(country string) (string, error) {
	lowerCountry := strings.ToLower(strings.TrimSpace(country))
	if !elering.IsSupportedCountry(lowerCountry) {
		return "", errors.New("invalid country. must be one of: " + strings.Join(elering.SupportedCountries, ", "))
	}
	return lowerCountry, nil
}
