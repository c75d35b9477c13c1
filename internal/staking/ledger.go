package staking

import (
	"context"
	"encoding/json"
	"slices"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/types"
	"github.com/rs/zerolog/log"
)

// executeReceive handles the deposit notification pushed by a token
// contract. info.Sender is the notifying token, wrapper.Sender the staker.
func (c *Contract) executeReceive(ctx context.Context, env Env, info MessageInfo, wrapper Cw20ReceiveMsg) (*Response, *types.Error) {
	cfg, err := c.loadEnabledConfig(ctx)
	if err != nil {
		return nil, err
	}

	if wrapper.Amount.IsNil() || wrapper.Amount.IsZero() {
		return nil, newError(ErrInvalidInput, "deposit amount must be positive")
	}
	if amountErr := types.CheckAmount(wrapper.Amount); amountErr != nil {
		return nil, newError(ErrInvalidInput, "%s", amountErr)
	}

	if err := c.validateAddress(wrapper.Sender); err != nil {
		return nil, err
	}

	if info.Sender != cfg.StakeToken.Ref {
		return nil, newError(ErrUnacceptableToken, "%s", info.Sender)
	}

	var payload ReceiveMsg
	if jsonErr := json.Unmarshal(wrapper.Msg, &payload); jsonErr != nil {
		return nil, newError(ErrInvalidInput, "malformed receive payload: %s", jsonErr)
	}
	if payload.Stake == nil {
		return nil, newError(ErrInvalidInput, "unsupported receive payload")
	}

	tierIndex := payload.Stake.TierIndex
	if len(cfg.Tiers) > 0 && tierIndex >= uint64(len(cfg.Tiers)) {
		return nil, newError(ErrInvalidInput, "tier index %d out of range, %d tiers", tierIndex, len(cfg.Tiers))
	}

	staker, err := c.loadStaker(ctx, wrapper.Sender)
	if err != nil {
		return nil, err
	}

	record := StakeRecord{
		ID:             staker.NextRecordID,
		TierIndex:      tierIndex,
		OwnerAddress:   wrapper.Sender,
		Principal:      wrapper.Amount,
		AccruedReward:  sdkmath.ZeroInt(),
		CheckpointTime: env.BlockTime,
	}
	staker.NextRecordID++
	staker.Records = append(staker.Records, record)

	if err := c.saveStaker(ctx, staker); err != nil {
		return nil, err
	}

	log.Ctx(ctx).Debug().
		Str("address", wrapper.Sender).
		Uint64("record_id", record.ID).
		Stringer("amount", wrapper.Amount).
		Msg("stake record created")

	return NewResponse().
		AddAttribute(AttributeAction, ActionStake).
		AddAttribute(AttributeAddress, wrapper.Sender).
		AddAttribute(AttributeAmount, wrapper.Amount.String()).
		AddAttribute(AttributeRecordID, formatUint(record.ID)).
		AddAttribute(AttributeTierIndex, formatUint(tierIndex)), nil
}

// executeClaimReward pays the reward accrued since the record's checkpoint
// and advances the checkpoint. Nothing is written unless reward custody
// covers the payout.
func (c *Contract) executeClaimReward(ctx context.Context, env Env, info MessageInfo, sel *RecordSelector) (*Response, *types.Error) {
	cfg, err := c.loadEnabledConfig(ctx)
	if err != nil {
		return nil, err
	}

	staker, err := c.loadStaker(ctx, info.Sender)
	if err != nil {
		return nil, err
	}

	pos, err := staker.locate(sel)
	if err != nil {
		return nil, err
	}
	record := staker.Records[pos]

	elapsed := ElapsedSeconds(record.CheckpointTime, env.BlockTime)
	reward, rewardErr := ComputeReward(record.Principal, elapsed, cfg.Tiers)
	if rewardErr != nil {
		return nil, overflowError(rewardErr)
	}

	balance, err := c.custody(ctx, env, cfg.RewardToken)
	if err != nil {
		return nil, err
	}
	if balance.LT(reward) {
		return nil, newError(ErrNotEnoughReward, "custody %s, reward %s", balance, reward)
	}

	accrued, addErr := checkedAdd(record.AccruedReward, reward)
	if addErr != nil {
		return nil, overflowError(addErr)
	}
	record.AccruedReward = accrued
	// never move the checkpoint backwards
	if env.BlockTime > record.CheckpointTime {
		record.CheckpointTime = env.BlockTime
	}
	staker.Records[pos] = record

	if err := c.saveStaker(ctx, staker); err != nil {
		return nil, err
	}

	log.Ctx(ctx).Debug().
		Str("address", info.Sender).
		Uint64("record_id", record.ID).
		Uint64("elapsed", elapsed).
		Stringer("reward", reward).
		Msg("reward claimed")

	resp := NewResponse()
	if reward.IsPositive() {
		resp.AddMessage(TransferMsg{
			Denom:     cfg.RewardToken,
			Amount:    reward,
			Recipient: info.Sender,
		})
	}

	return resp.
		AddAttribute(AttributeAction, ActionClaimReward).
		AddAttribute(AttributeAddress, info.Sender).
		AddAttribute(AttributeRewardAmount, reward.String()).
		AddAttribute(AttributeRecordID, formatUint(record.ID)), nil
}

// executeUnstake removes the whole record and returns its principal. The
// ledger is left untouched when stake custody cannot cover the principal.
func (c *Contract) executeUnstake(ctx context.Context, env Env, info MessageInfo, sel *RecordSelector) (*Response, *types.Error) {
	cfg, err := c.loadEnabledConfig(ctx)
	if err != nil {
		return nil, err
	}

	staker, err := c.loadStaker(ctx, info.Sender)
	if err != nil {
		return nil, err
	}

	pos, err := staker.locate(sel)
	if err != nil {
		return nil, err
	}
	record := staker.Records[pos]

	balance, err := c.custody(ctx, env, cfg.StakeToken)
	if err != nil {
		return nil, err
	}
	if balance.LT(record.Principal) {
		return nil, newError(ErrNotEnoughStake, "custody %s, principal %s", balance, record.Principal)
	}

	staker.Records = slices.Delete(staker.Records, pos, pos+1)
	if err := c.saveStaker(ctx, staker); err != nil {
		return nil, err
	}

	log.Ctx(ctx).Debug().
		Str("address", info.Sender).
		Uint64("record_id", record.ID).
		Stringer("principal", record.Principal).
		Msg("stake record removed")

	return NewResponse().
		AddMessage(TransferMsg{
			Denom:     cfg.StakeToken,
			Amount:    record.Principal,
			Recipient: info.Sender,
		}).
		AddAttribute(AttributeAction, ActionUnstake).
		AddAttribute(AttributeAddress, info.Sender).
		AddAttribute(AttributeStakedAmount, record.Principal.String()).
		AddAttribute(AttributeRecordID, formatUint(record.ID)), nil
}
