package actor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"elering2mqtt/internal/config"
	"elering2mqtt/internal/core/domain"
	"elering2mqtt/internal/core/events"
	"elering2mqtt/internal/core/port"
	. "elering2mqtt/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/reugn/go-quartz/job"
	"github.com/reugn/go-quartz/quartz"
	"go.uber.org/zap"
)

// Refresh at every quarter boundary (00/15/30/45).
const pricesCronExpr = "0 0,15,30,45 * * * *"

type PricesActor struct {
	ActorWithStates
	scheduler quartz.Scheduler
	stash     *Stash

	eleringActor *actor.PID
	config       *config.Config
	eventStream  *eventstream.EventStream
	builder      port.PriceDayBuilder

	day *domain.PriceDay

	logger *zap.Logger
}

type pricesTick struct {
}

func NewPricesActor(config *config.Config, eleringActor *actor.PID, eventStream *eventstream.EventStream,
	builder port.PriceDayBuilder, logger *zap.Logger) *PricesActor {
	act := &PricesActor{
		config:       config,
		eleringActor: eleringActor,
		stash:        &Stash{},
		logger:       ActorLogger(domain.ACTOR_ID_PRICES, logger),
		eventStream:  eventStream,
		builder:      builder,
		ActorWithStates: ActorWithStates{
			Behavior: actor.NewBehavior(),
		},
	}
	act.Become(PricesStartingState{
		actor: act,
	})
	return act
}

func (state *PricesActor) Receive(context actor.Context) {
	state.Behavior.Receive(context)
}

// Starting state

type PricesStartingState struct {
	ActorState
	actor *PricesActor
}

func (state PricesStartingState) Name() string {
	return "starting"
}

func (state PricesStartingState) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.actor.logger.Debug("prices@starting started")

		if err := state.actor.startScheduler(ctx); err != nil {
			panic(err)
		}

		state.actor.Become(PricesIdleState{
			actor: state.actor,
		})
		state.actor.stash.UnstashAll(ctx)

		// first refresh right away, clock-aligned ticks take over after
		ctx.Send(ctx.Self(), pricesTick{})
	case *actor.Restarting:
		state.actor.stopScheduler()
	default:
		state.actor.logger.Debug("prices@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.actor.stash.Stash(ctx, msg)
	}
}

// Idle state

type PricesIdleState struct {
	ActorState
	actor *PricesActor
}

func (state PricesIdleState) Name() string {
	return "idle"
}

func (state PricesIdleState) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.actor.logger.Debug("prices@idle: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_PRICES,
			Healthy: true,
			State:   state.actor.healthState(),
		})
	case domain.GetPricesRequest:
		state.actor.logger.Debug("prices@idle: GetPricesRequest")
		resp := domain.GetPricesResponse{
			Day: state.actor.day,
		}
		if state.actor.day == nil {
			resp.ResponseError = errors.New("no price data yet")
		}
		ForRequest(msg).Respond(ctx, resp)
	case pricesTick:
		state.actor.logger.Debug("prices@idle tick")
		now := time.Now()
		window := state.actor.builder.Window(now)
		if state.actor.day != nil && state.actor.day.Window == window {
			// cached day still covers the window, only sensors move
			state.actor.publishDay(now)
			return
		}
		state.actor.requestFetch(ctx, window)
	case domain.ForceRefreshRequest:
		state.actor.logger.Debug("prices@idle: ForceRefreshRequest")
		state.actor.requestFetch(ctx, state.actor.builder.Window(time.Now()))
	case *actor.Stopping:
		state.actor.stopScheduler()
	default:
		state.actor.logger.Debug("prices@idle: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.actor.stash.Stash(ctx, msg)
	}
}

// Waiting fetch state

type PricesWaitingFetchState struct {
	ActorState
	actor  *PricesActor
	window domain.PriceWindow
}

func (state PricesWaitingFetchState) Name() string {
	return "waitingFetch"
}

func (state PricesWaitingFetchState) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.FetchPricesResponse:
		if msg.HasResponseError() {
			// keep stale data, next tick retries
			state.actor.logger.Error("prices@waitingFetch FetchPricesResponse error", zap.Error(msg.GetResponseError()))
			state.actor.UnbecomeStacked()
			state.actor.stash.UnstashAll(ctx)
			return
		}
		state.actor.logger.Debug("prices@waitingFetch FetchPricesResponse", zap.Int("rows", len(msg.Rows)))
		now := time.Now()
		day := state.actor.builder.Build(state.window, msg.Rows, now)
		state.actor.day = &day
		state.actor.publishDay(now)
		state.actor.UnbecomeStacked()
		state.actor.stash.UnstashAll(ctx)
	case *actor.Stopping:
		state.actor.stopScheduler()
	default:
		state.actor.logger.Debug("prices@waitingFetch: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.actor.stash.Stash(ctx, msg)
	}
}

func (a *PricesActor) requestFetch(ctx actor.Context, window domain.PriceWindow) {
	PipeToSelfWithRecover(ctx, ctx.RequestFuture(a.eleringActor, domain.FetchPricesRequest{
		Start: window.StartTime(),
		End:   window.EndTime(),
	}, 35*time.Second), func(err error) any {
		return domain.FetchPricesResponse{
			ActorResponseMixIn: domain.ActorResponseMixIn{
				ResponseError: err,
			},
		}
	})
	a.BecomeStacked(PricesWaitingFetchState{
		actor:  a,
		window: window,
	})
}

func (a *PricesActor) publishDay(now time.Time) {
	evs := events.PriceDayToUpdateEvents(a.day, now)
	for _, ev := range evs {
		a.eventStream.Publish(ev)
	}
	attrs, err := events.PriceAttributesEvent(a.day)
	if err != nil {
		a.logger.Error("prices: attributes payload error", zap.Error(err))
		return
	}
	a.eventStream.Publish(attrs)
}

func (a *PricesActor) startScheduler(ctx actor.Context) error {
	trigger, err := quartz.NewCronTrigger(pricesCronExpr)
	if err != nil {
		return err
	}
	self := ctx.Self()
	root := ctx.ActorSystem().Root

	tickJob := job.NewFunctionJob(func(_ context.Context) (bool, error) {
		root.Send(self, pricesTick{})
		return true, nil
	})

	a.scheduler = quartz.NewStdScheduler()
	a.scheduler.Start(context.Background())
	return a.scheduler.ScheduleJob(quartz.NewJobDetail(tickJob, quartz.NewJobKey("prices_tick")), trigger)
}

func (a *PricesActor) stopScheduler() {
	if a.scheduler != nil {
		a.scheduler.Stop()
		a.scheduler = nil
	}
}

func (a *PricesActor) healthState() string {
	if a.day == nil {
		return "no_data"
	}
	if a.day.Window != a.builder.Window(time.Now()) {
		return "stale"
	}
	return "idle"
}
