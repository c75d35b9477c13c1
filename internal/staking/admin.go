package staking

import (
	"context"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/types"
	"github.com/rs/zerolog/log"
)

// Admin operations are allowed while staking is disabled.

func (c *Contract) checkOwner(ctx context.Context, info MessageInfo) (*Config, *types.Error) {
	cfg, err := c.loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	if info.Sender != cfg.Owner {
		return nil, newError(ErrUnauthorized, "%s is not the owner", info.Sender)
	}
	return cfg, nil
}

// updateAsOwner runs fn on the stored config after verifying the caller
// inside the same read-modify-write.
func (c *Contract) updateAsOwner(ctx context.Context, info MessageInfo, fn func(cfg *Config)) *types.Error {
	return c.updateConfig(ctx, func(cfg *Config) error {
		if info.Sender != cfg.Owner {
			return newError(ErrUnauthorized, "%s is not the owner", info.Sender)
		}
		fn(cfg)
		return nil
	})
}

func (c *Contract) executeUpdateOwner(ctx context.Context, info MessageInfo, owner string) (*Response, *types.Error) {
	if err := c.validateAddress(owner); err != nil {
		return nil, err
	}

	if err := c.updateAsOwner(ctx, info, func(cfg *Config) {
		cfg.Owner = owner
	}); err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().Str("previous", info.Sender).Str("owner", owner).Msg("owner updated")

	return NewResponse().
		AddAttribute(AttributeAction, ActionUpdateOwner).
		AddAttribute("owner", owner), nil
}

func (c *Contract) executeUpdateEnabled(ctx context.Context, info MessageInfo, enabled bool) (*Response, *types.Error) {
	if err := c.updateAsOwner(ctx, info, func(cfg *Config) {
		cfg.Enabled = enabled
	}); err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().Bool("enabled", enabled).Msg("staking enabled flag updated")

	return NewResponse().AddAttribute(AttributeAction, ActionUpdateEnabled), nil
}

// executeUpdateConstants overwrites the tier table and reward interval as
// given. Accrual sorts the table itself.
func (c *Contract) executeUpdateConstants(ctx context.Context, info MessageInfo, msg UpdateConstantsMsg) (*Response, *types.Error) {
	tiers := make([]Tier, len(msg.Tiers))
	copy(tiers, msg.Tiers)

	if err := c.updateAsOwner(ctx, info, func(cfg *Config) {
		cfg.Tiers = tiers
		cfg.RewardInterval = msg.RewardInterval
	}); err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().
		Int("tiers", len(tiers)).
		Uint64("reward_interval", msg.RewardInterval).
		Msg("constants updated")

	return NewResponse().AddAttribute(AttributeAction, ActionUpdateConstants), nil
}

func (c *Contract) executeWithdrawReward(ctx context.Context, env Env, info MessageInfo, amount sdkmath.Int) (*Response, *types.Error) {
	return c.withdraw(ctx, env, info, amount, false)
}

func (c *Contract) executeWithdrawStake(ctx context.Context, env Env, info MessageInfo, amount sdkmath.Int) (*Response, *types.Error) {
	return c.withdraw(ctx, env, info, amount, true)
}

// withdraw moves amount of the stake or reward token from custody to the
// owner. Ledger state is not touched.
func (c *Contract) withdraw(ctx context.Context, env Env, info MessageInfo, amount sdkmath.Int, stake bool) (*Response, *types.Error) {
	cfg, err := c.checkOwner(ctx, info)
	if err != nil {
		return nil, err
	}

	if amount.IsNil() || amount.IsZero() {
		return nil, newError(ErrInvalidInput, "withdraw amount must be positive")
	}
	if amountErr := types.CheckAmount(amount); amountErr != nil {
		return nil, newError(ErrInvalidInput, "%s", amountErr)
	}

	denom, insufficient, action := cfg.RewardToken, ErrNotEnoughReward, ActionWithdrawReward
	if stake {
		denom, insufficient, action = cfg.StakeToken, ErrNotEnoughStake, ActionWithdrawStake
	}

	balance, err := c.custody(ctx, env, denom)
	if err != nil {
		return nil, err
	}
	if balance.LT(amount) {
		return nil, newError(insufficient, "custody %s, requested %s", balance, amount)
	}

	log.Ctx(ctx).Info().
		Str("action", action).
		Stringer("amount", amount).
		Msg("owner withdrawal")

	return NewResponse().
		AddMessage(TransferMsg{
			Denom:     denom,
			Amount:    amount,
			Recipient: info.Sender,
		}).
		AddAttribute(AttributeAction, action).
		AddAttribute(AttributeAddress, info.Sender).
		AddAttribute(AttributeAmount, amount.String()), nil
}
