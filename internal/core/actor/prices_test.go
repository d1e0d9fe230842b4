package actor

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	adactor "elering2mqtt/internal/adapter/actor"
	"elering2mqtt/internal/core/domain"
	"elering2mqtt/internal/core/service"
	"elering2mqtt/internal/util"
	"elering2mqtt/internal/util/actorutil"
	"elering2mqtt/pkg/elering"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestPricesActorRefreshAndCache(t *testing.T) {

	assert := assert.New(t)

	cfg := util.LoadTestConfig()

	reader, err := elering.CreateTestPriceReader()
	if err != nil {
		t.Error(err)
		return
	}

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)
	context := as.Root

	es := eventstream.EventStream{}
	var eventCount atomic.Int32
	sub := es.Subscribe(func(value any) {
		eventCount.Add(1)
	})
	defer es.Unsubscribe(sub)

	eleringProps := actor.PropsFromProducer(func() actor.Actor { return adactor.NewEleringActor(reader, logger) })
	eleringPID := context.Spawn(eleringProps)

	builder := &service.DayAheadPriceService{
		Country:    cfg.Elering.Country,
		VatPercent: cfg.Elering.VatPercent,
		Logger:     logger,
	}

	pricesProps := actor.PropsFromProducer(func() actor.Actor {
		return NewPricesActor(&cfg, eleringPID, &es, builder, logger)
	})
	pricesPID := context.Spawn(pricesProps)

	// initial tick fetches and publishes
	time.Sleep(2 * time.Second)

	result, err := context.RequestFuture(pricesPID, domain.GetPricesRequest{}, 5*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.GetPricesResponse)

	if !assert.NotNil(resp.Day, "cached day") {
		return
	}
	assert.Len(resp.Day.Quarters, 96, "quarters per day")
	assert.Len(resp.Day.Hours, 24, "hours per day")
	assert.Equal(domain.DayWindow22UTC(time.Now()), resp.Day.Window, "cached window")
	assert.True(eventCount.Load() > 0, "events published")

	// force refresh keeps the same window
	context.Send(pricesPID, domain.ForceRefreshRequest{})
	time.Sleep(1 * time.Second)

	result, err = context.RequestFuture(pricesPID, domain.GetPricesRequest{}, 5*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp = result.(domain.GetPricesResponse)
	assert.NotNil(resp.Day, "cached day after refresh")

	context.Stop(pricesPID)
	context.Stop(eleringPID)

	as.Shutdown()
}

func TestPricesActorKeepsStaleOnFetchError(t *testing.T) {

	assert := assert.New(t)

	cfg := util.LoadTestConfig()

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)
	context := as.Root

	es := eventstream.EventStream{}

	reader := elering.TestPriceReader{Fail: errors.New("nps api unavailable")}

	eleringProps := actor.PropsFromProducer(func() actor.Actor { return adactor.NewEleringActor(reader, logger) })
	eleringPID := context.Spawn(eleringProps)

	builder := &service.DayAheadPriceService{
		Country:    cfg.Elering.Country,
		VatPercent: cfg.Elering.VatPercent,
		Logger:     logger,
	}

	pricesProps := actor.PropsFromProducer(func() actor.Actor {
		return NewPricesActor(&cfg, eleringPID, &es, builder, logger)
	})
	pricesPID := context.Spawn(pricesProps)

	time.Sleep(2 * time.Second)

	result, err := context.RequestFuture(pricesPID, domain.GetPricesRequest{}, 5*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.GetPricesResponse)
	assert.Nil(resp.Day, "no cached day on persistent failure")

	hResult, err := context.RequestFuture(pricesPID, domain.ActorHealthRequest{}, 5*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	hResp := hResult.(domain.ActorHealthResponse)
	assert.Equal("no_data", hResp.State, "health state without data")

	context.Stop(pricesPID)
	context.Stop(eleringPID)

	as.Shutdown()
}
