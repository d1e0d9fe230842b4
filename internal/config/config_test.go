package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckMQTTTopic(t *testing.T) {

	assert := assert.New(t)

	topic, err := CheckMQTTTopic("Elering2MQTT")
	assert.NoError(err)
	assert.Equal("elering2mqtt", topic, "lowercased")

	_, err = CheckMQTTTopic("bad/topic")
	assert.Error(err)

	_, err = CheckMQTTTopic("")
	assert.Error(err)
}

func TestCheckCountry(t *testing.T) {

	assert := assert.New(t)

	country, err := CheckCountry(" EE ")
	assert.NoError(err)
	assert.Equal("ee", country, "trimmed and lowercased")

	for _, c := range []string{"ee", "fi", "lv", "lt"} {
		_, err := CheckCountry(c)
		assert.NoError(err, c)
	}

	_, err = CheckCountry("de")
	assert.Error(err)
}
