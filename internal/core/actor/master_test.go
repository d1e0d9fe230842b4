package actor

import (
	"fmt"
	"testing"
	"time"

	adactor "elering2mqtt/internal/adapter/actor"
	"elering2mqtt/internal/core/domain"
	"elering2mqtt/internal/core/service"
	"elering2mqtt/internal/util"
	"elering2mqtt/pkg/elering"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMasterActor(t *testing.T) {

	as := actor.NewActorSystem()
	context := as.Root

	cfg := util.LoadTestConfig()
	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger := zap.Must(logCfg.Build())

	builder := &service.DayAheadPriceService{
		Country:    cfg.Elering.Country,
		VatPercent: cfg.Elering.VatPercent,
		Logger:     logger,
	}

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewMasterOfPuppetsActor(cfg, func() *adactor.EleringActor {
			return adactor.NewEleringActor(elering.TestPriceReader{}, logger)
		}, func(es *eventstream.EventStream) *adactor.MQTTActor {
			return adactor.NewTestMQTTActor(&cfg, es, logger)
		}, builder, logger)
	})
	pid, err := context.SpawnNamed(props, "master")
	if err != nil {
		t.Error(err)
		return
	}

	time.Sleep(2 * time.Second)

	res, err := context.RequestFuture(pid, domain.ActorHealthRequest{}, 10*time.Second).Result()
	if err != nil {
		t.Error(err)
		//return
	}
	healthResp, ok := res.(domain.ActorHealthResponse)
	assert.True(t, ok)
	fmt.Printf("Health response: %+v\n", healthResp)
	assert.NotNil(t, healthResp)

	assert.True(t, healthResp.Healthy, "healthy is true")

	res, err = context.RequestFuture(pid, domain.GetPricesRequest{}, 10*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	pricesResp, ok := res.(domain.GetPricesResponse)
	assert.True(t, ok)
	if assert.NotNil(t, pricesResp.Day, "day is cached") {
		assert.Len(t, pricesResp.Day.Quarters, 96, "quarters per day")
	}

	context.Stop(pid)

	as.Shutdown()
}

func TestMasterActorSpawnsHADiscovery(t *testing.T) {

	as := actor.NewActorSystem()
	context := as.Root

	cfg := util.LoadTestConfig()
	cfg.MQTT.HADiscoveryEnable = true
	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger := zap.Must(logCfg.Build())

	builder := &service.DayAheadPriceService{
		Country:    cfg.Elering.Country,
		VatPercent: cfg.Elering.VatPercent,
		Logger:     logger,
	}

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewMasterOfPuppetsActor(cfg, func() *adactor.EleringActor {
			return adactor.NewEleringActor(elering.TestPriceReader{}, logger)
		}, func(es *eventstream.EventStream) *adactor.MQTTActor {
			return adactor.NewTestMQTTActor(&cfg, es, logger)
		}, builder, logger)
	})
	pid, err := context.SpawnNamed(props, "master")
	if err != nil {
		t.Error(err)
		return
	}

	time.Sleep(2 * time.Second)

	// the discovery child must live under the shared actor id
	_, ok := as.ProcessRegistry.GetLocal("master/" + domain.ACTOR_ID_HA_DISCOVERY)
	assert.True(t, ok, "hadiscovery child spawned")

	context.Stop(pid)

	as.Shutdown()
}
