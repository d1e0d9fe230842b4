package actor

import (
	"context"
	"fmt"
	"time"

	"elering2mqtt/internal/core/domain"
	"elering2mqtt/internal/util/actorutil"
	"elering2mqtt/pkg/elering"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

const (
	ELERING_ACTOR_ID = "elering"

	fetchTimeout = 30 * time.Second
)

type EleringActor struct {
	behavior actor.Behavior
	stash    *actorutil.Stash
	reader   elering.PriceReader
	logger   *zap.Logger
}

type backgroundTaskResult struct {
	message any
	replyTo *actor.PID
}

func NewEleringActor(reader elering.PriceReader, logger *zap.Logger) *EleringActor {
	act := &EleringActor{
		reader:   reader,
		behavior: actor.NewBehavior(),
		stash:    &actorutil.Stash{},
		logger:   actorutil.ActorLogger("elering", logger),
	}
	act.behavior.Become(act.DefaultReceive)
	return act
}

func (state *EleringActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *EleringActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("elering@default started")
	case domain.ActorHealthRequest:
		state.logger.Debug("elering@default: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      ELERING_ACTOR_ID,
			Healthy: true,
			State:   "idle",
		})
	case domain.GetMarketInfoRequest:
		state.logger.Debug("elering@default: GetMarketInfoRequest")
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)

		actorutil.MapBackgroundTask(actorutil.NewBackgroundTask(ctx, state.getMarketInfo),
			mapTaskResult[domain.GetMarketInfoResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.GetMarketInfoResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(fetchTimeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingFetch)
	case domain.FetchPricesRequest:
		state.logger.Debug("elering@default: FetchPricesRequest",
			zap.Time("start", msg.Start), zap.Time("end", msg.End))
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)
		start, end := msg.Start, msg.End

		actorutil.MapBackgroundTask(actorutil.NewBackgroundTask(ctx, func() (*domain.FetchPricesResponse, error) {
			return state.fetchPrices(start, end)
		}),
			mapTaskResult[domain.FetchPricesResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.FetchPricesResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(fetchTimeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingFetch)
	default:
		state.logger.Debug("elering@default default recv", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (state *EleringActor) WaitingFetch(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case backgroundTaskResult:
		state.logger.Debug("elering@waitingFetch backgroundTaskResult", zap.String("type", fmt.Sprintf("%T", msg.message)))
		ctx.Send(msg.replyTo, msg.message)
		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	default:
		state.logger.Debug("elering@waitingFetch stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (a *EleringActor) getMarketInfo() (*domain.GetMarketInfoResponse, error) {
	info, err := a.reader.GetMarketInfo()
	if err != nil {
		a.logger.Error("get market info failed", zap.Error(err))
		return nil, err
	}
	return &domain.GetMarketInfoResponse{
		Market: info,
	}, nil
}

func (a *EleringActor) fetchPrices(start, end time.Time) (*domain.FetchPricesResponse, error) {
	cctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	rows, err := a.reader.GetPrices(cctx, start, end)
	if err != nil {
		a.logger.Error("fetch prices failed", zap.Error(err))
		return nil, err
	}
	return &domain.FetchPricesResponse{
		Rows: rows,
	}, nil
}

func mapTaskResult[T any](sender *actor.PID) func(t *T) *backgroundTaskResult {
	return func(t *T) *backgroundTaskResult {
		return &backgroundTaskResult{
			message: *t,
			replyTo: sender,
		}
	}
}
