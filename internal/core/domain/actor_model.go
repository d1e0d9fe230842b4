package domain

import (
	"time"

	"elering2mqtt/pkg/elering"
)

const (
	ACTOR_ID_MASTER       = "master"
	ACTOR_ID_ELERING      = "elering"
	ACTOR_ID_PRICES       = "prices"
	ACTOR_ID_MQTT         = "mqtt"
	ACTOR_ID_HA_DISCOVERY = "hadiscovery"
)

type GetMarketInfoRequest struct {
	ActorRequestMixIn
}

type GetMarketInfoResponse struct {
	ActorResponseMixIn
	Market *elering.MarketInfo
}

type FetchPricesRequest struct {
	ActorRequestMixIn
	Start time.Time
	End   time.Time
}

type FetchPricesResponse struct {
	ActorResponseMixIn
	Rows []elering.PriceRow
}

type GetPricesRequest struct {
	ActorRequestMixIn
}

type GetPricesResponse struct {
	ActorResponseMixIn
	Day *PriceDay
}

type ForceRefreshRequest struct {
	ActorRequestMixIn
}

type PublishMessageRequest struct {
	ActorRequestMixIn
	Topic   string
	Payload string
	Retain  bool
}

type PublishMessageResponse struct {
	ActorResponseMixIn
}

type PublishSensorUpdateRequest struct {
	ActorRequestMixIn
	Retain bool
	Event  SensorUpdateEvent
}

type PublishSensorUpdateResponse struct {
	ActorResponseMixIn
}

type PublishDiscoveryRequest struct {
	ActorRequestMixIn
	Sensors []GenericSensor
	Buttons []GenericButton
}

type PublishDiscoveryResponse struct {
	ActorResponseMixIn
}

type ActorHealthRequest struct {
	ActorRequestMixIn
}

type ActorHealthResponse struct {
	ActorResponseMixIn
	Id      string
	Healthy bool
	State   string
}
