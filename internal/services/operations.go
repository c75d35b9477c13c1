package services

import (
	"context"
	"time"

	"github.com/babylonlabs-io/staking-reward-ledger/internal/observability/metrics"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/observability/tracing"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/queue"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/staking"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/types"
	"github.com/rs/zerolog/log"
)

// Execute runs msg on behalf of sender.
func (s *Service) Execute(
	ctx context.Context, sender string, blockTime uint64, msg staking.ExecuteMsg,
) (*staking.Response, *types.Error) {
	env := s.env(blockTime)
	return s.run(ctx, msg.Operation(), sender, env, func() (*staking.Response, *types.Error) {
		return s.contract.Execute(ctx, env, staking.MessageInfo{Sender: sender}, msg)
	})
}

// Receive handles a deposit notification pushed by token.
func (s *Service) Receive(
	ctx context.Context, token string, blockTime uint64, msg staking.Cw20ReceiveMsg,
) (*staking.Response, *types.Error) {
	return s.Execute(ctx, token, blockTime, staking.ExecuteMsg{Receive: &msg})
}

// Instantiate initializes the ledger from the contract section of the config
// with the configured owner.
func (s *Service) Instantiate(ctx context.Context) (*staking.Response, *types.Error) {
	cfg := s.cfg.Contract

	tiers := make([]staking.Tier, 0, len(cfg.Tiers))
	for _, t := range cfg.Tiers {
		tiers = append(tiers, staking.Tier{
			Duration: uint64(t.Duration / time.Second),
			Rate:     t.Rate,
		})
	}

	msg := staking.InstantiateMsg{
		StakeTokenAddress: cfg.StakeTokenAddress,
		RewardTokenDenom:  cfg.RewardTokenDenom,
		Tiers:             tiers,
		RewardInterval:    uint64(cfg.RewardInterval / time.Second),
	}

	env := s.env(0)
	return s.run(ctx, staking.ActionInstantiate, cfg.Owner, env, func() (*staking.Response, *types.Error) {
		return s.contract.Instantiate(ctx, env, staking.MessageInfo{Sender: cfg.Owner}, msg)
	})
}

func (s *Service) Migrate(ctx context.Context) (*staking.Response, *types.Error) {
	env := s.env(0)
	return s.run(ctx, staking.ActionMigrate, "", env, func() (*staking.Response, *types.Error) {
		return s.contract.Migrate(ctx, env, staking.MigrateMsg{})
	})
}

// run records the outcome of a call and publishes what a successful call
// produced. Publishing failures do not fail the call, it is already
// committed.
func (s *Service) run(
	ctx context.Context, operation, sender string, env staking.Env,
	call func() (*staking.Response, *types.Error),
) (*staking.Response, *types.Error) {
	start := time.Now()
	resp, err := call()
	duration := time.Since(start)

	if err != nil {
		metrics.RecordOperation(duration, operation, string(err.ErrorCode))

		event := log.Ctx(ctx).Warn()
		if err.StatusCode >= 500 {
			event = log.Ctx(ctx).Error()
		}
		event.Err(err).
			Str("operation", operation).
			Str("sender", sender).
			Str("code", string(err.ErrorCode)).
			Msg("ledger operation failed")
		return nil, err
	}

	metrics.RecordOperation(duration, operation, "")
	log.Ctx(ctx).Info().
		Str("operation", operation).
		Str("sender", sender).
		Int("transfers", len(resp.Messages)).
		Dur("duration", duration).
		Msg("ledger operation executed")

	s.publish(ctx, operation, sender, env, resp)
	return resp, nil
}

func (s *Service) publish(ctx context.Context, operation, sender string, env staking.Env, resp *staking.Response) {
	traceID := tracing.TraceID(ctx)

	for _, msg := range resp.Messages {
		ev := queue.NewTransferIntentEvent(
			operation,
			env.ContractAddress,
			msg.Denom.String(),
			msg.Amount.String(),
			msg.Recipient,
			env.BlockTime,
			traceID,
		)
		if err := s.publisher.PublishTransferIntent(ctx, ev); err != nil {
			metrics.RecordQueueSendError()
			log.Ctx(ctx).Error().Err(err).
				Str("event_id", ev.EventID).
				Str("recipient", ev.Recipient).
				Str("amount", ev.Amount).
				Msg("failed to publish transfer intent")
		}
	}

	attributes := make([]queue.AuditAttribute, 0, len(resp.Attributes))
	for _, attr := range resp.Attributes {
		attributes = append(attributes, queue.AuditAttribute{Key: attr.Key, Value: attr.Value})
	}

	ev := queue.NewAuditEvent(operation, sender, env.BlockTime, attributes, traceID)
	if err := s.publisher.PublishAuditEvent(ctx, ev); err != nil {
		metrics.RecordQueueSendError()
		log.Ctx(ctx).Error().Err(err).Str("event_id", ev.EventID).Msg("failed to publish audit event")
	}
}
