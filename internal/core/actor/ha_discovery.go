package actor

import (
	"errors"
	"fmt"
	"time"

	"elering2mqtt/internal/config"
	"elering2mqtt/internal/core/domain"
	"elering2mqtt/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

type HADiscoveryActor struct {
	config              *config.Config
	behavior            actor.Behavior
	stash               *actorutil.Stash
	eleringActor        *actor.PID
	mqttActor           *actor.PID
	eleringActorHealthy bool
	mqttActorHealthy    bool
	healthyRecv         int

	logger *zap.Logger
}

func NewHADiscoveryActor(config *config.Config, eleringActor *actor.PID, mqttActor *actor.PID, logger *zap.Logger) *HADiscoveryActor {
	act := &HADiscoveryActor{
		config:       config,
		eleringActor: eleringActor,
		mqttActor:    mqttActor,
		behavior:     actor.NewBehavior(),
		stash:        &actorutil.Stash{},
		logger:       actorutil.ActorLogger(domain.ACTOR_ID_HA_DISCOVERY, logger),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *HADiscoveryActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *HADiscoveryActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("hadiscovery@starting started")

		// Check Elering and MQTT actor healthy
		state.healthyRecv = 0
		state.eleringActorHealthy = false
		state.mqttActorHealthy = false
		// Elering Actor Request
		actorutil.PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.eleringActor, domain.ActorHealthRequest{}, 2*time.Second), func(err error) any {
			return domain.ActorHealthResponse{
				Id:      domain.ACTOR_ID_ELERING,
				Healthy: false,
			}
		})
		// MQTT Actor Request
		actorutil.PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.mqttActor, domain.ActorHealthRequest{}, 2*time.Second), func(err error) any {
			return domain.ActorHealthResponse{
				Id:      domain.ACTOR_ID_MQTT,
				Healthy: false,
			}
		})
		state.behavior.Become(state.WaitingHealthyReceive)
	case *actor.Restarting:
	default:
		state.logger.Debug("hadiscovery@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *HADiscoveryActor) WaitingHealthyReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthResponse:
		state.logger.Debug("hadiscovery@healthcheck ActorHealthResponse", zap.String("sender", msg.Id), zap.Bool("healthy", msg.Healthy))
		state.healthyRecv++
		if msg.Healthy {
			switch msg.Id {
			case domain.ACTOR_ID_ELERING:
				state.eleringActorHealthy = true
			case domain.ACTOR_ID_MQTT:
				state.mqttActorHealthy = true
			}
		}
		if state.healthyRecv == 2 {

			if state.eleringActorHealthy && state.mqttActorHealthy {
				// Ask Elering for market info
				actorutil.PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.eleringActor, domain.GetMarketInfoRequest{}, 5*time.Second), func(err error) any {
					return domain.GetMarketInfoResponse{
						ActorResponseMixIn: domain.ActorResponseMixIn{
							ResponseError: err,
						},
					}
				})
				state.behavior.Become(state.WaitingInfoReceive)
				state.stash.UnstashAll(ctx)
			} else {
				panic(errors.New("MQTT Actor or Elering Actor are not healthy"))
			}
		}
	default:
		state.logger.Debug("hadiscovery@healthcheck: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *HADiscoveryActor) Done(ctx actor.Context) {

}

func (state *HADiscoveryActor) WaitingInfoReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.GetMarketInfoResponse:
		if msg.HasResponseError() {
			panic(msg.GetResponseError())
		}
		state.logger.Debug("hadiscovery@info: GetMarketInfoResponse", zap.Any("response", msg))

		var sensors []domain.GenericSensor
		var buttons []domain.GenericButton

		bridgeDevice := domain.BridgeDevice(state.config.MQTT.BaseTopic)
		bridgeSensors := domain.BridgeSensors(bridgeDevice)
		sensors = append(sensors, bridgeSensors...)

		marketDevice := domain.MarketDevice(msg.Market)
		marketDevice.ViaDevice = bridgeDevice.Id
		marketSensors := domain.MarketPriceSensors(marketDevice)
		for i := range marketSensors {
			if i > 0 {
				marketSensors[i].Device = domain.IdDevice(marketDevice)
			}
			sensors = append(sensors, marketSensors[i])
		}
		sensors = append(sensors, domain.MarketDiagnosticSensors(domain.IdDevice(marketDevice))...)

		buttons = append(buttons, domain.MarketButtons(domain.IdDevice(marketDevice))...)

		ctx.Send(state.mqttActor, domain.PublishDiscoveryRequest{
			Sensors: sensors,
			Buttons: buttons,
		})
		state.behavior.Become(state.Done)

	default:
		state.logger.Debug("hadiscovery@info: default recv", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}
