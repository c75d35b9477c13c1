package staking

import (
	"context"
	"strconv"
	"sync"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/db"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/db/model"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/types"
	"github.com/babylonlabs-io/staking-reward-ledger/pkg"
	"github.com/rs/zerolog/log"
)

const (
	// ContractName guards migrations against foreign state.
	ContractName    = "incentive"
	ContractVersion = "0.1.0"
)

// BankQuerier reports custody balances.
type BankQuerier interface {
	Balance(ctx context.Context, denom types.Denom, address string) (sdkmath.Int, error)
}

// Contract executes ledger operations against the store. Calls are
// serialized, each one either commits all of its writes or none.
type Contract struct {
	mu            sync.Mutex
	db            db.DbInterface
	bank          BankQuerier
	addressPrefix string
}

func NewContract(db db.DbInterface, bank BankQuerier, addressPrefix string) *Contract {
	return &Contract{
		db:            db,
		bank:          bank,
		addressPrefix: addressPrefix,
	}
}

// Instantiate stores the initial config with the caller as owner and staking
// enabled. It fails if a config already exists.
func (c *Contract) Instantiate(ctx context.Context, env Env, info MessageInfo, msg InstantiateMsg) (*Response, *types.Error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.validateAddress(info.Sender); err != nil {
		return nil, err
	}
	if err := c.validateAddress(msg.StakeTokenAddress); err != nil {
		return nil, err
	}

	rewardDenom := types.NewNativeDenom(msg.RewardTokenDenom)
	if err := rewardDenom.Validate(); err != nil {
		return nil, newError(ErrInvalidInput, "reward token: %s", err)
	}

	tiers := msg.Tiers
	if len(tiers) == 0 {
		tiers = DefaultTiers()
	}

	cfg := &Config{
		Owner:          info.Sender,
		StakeToken:     types.NewCW20Denom(msg.StakeTokenAddress),
		RewardToken:    rewardDenom,
		Tiers:          tiers,
		RewardInterval: msg.RewardInterval,
		Enabled:        true,
	}

	contractInfo := model.NewContractInfoDocument(ContractName, ContractVersion)
	if err := c.db.Initialize(ctx, contractInfo, configToDocument(cfg)); err != nil {
		if db.IsDuplicateKeyError(err) {
			return nil, newError(ErrAlreadyInitialized, "")
		}
		return nil, internalError("failed to initialize", err)
	}

	log.Ctx(ctx).Debug().
		Str("owner", cfg.Owner).
		Str("stake_token", cfg.StakeToken.Ref).
		Str("reward_denom", cfg.RewardToken.Ref).
		Msg("ledger instantiated")

	return NewResponse().
		AddAttribute(AttributeAction, ActionInstantiate).
		AddAttribute("owner", cfg.Owner), nil
}

// Migrate accepts only state written by this contract and records the
// current version.
func (c *Contract) Migrate(ctx context.Context, _ Env, _ MigrateMsg) (*Response, *types.Error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	info, err := c.db.GetContractInfo(ctx)
	if err != nil {
		if db.IsNotFoundError(err) {
			return nil, newError(ErrNotInitialized, "")
		}
		return nil, internalError("failed to load contract info", err)
	}

	if info.Contract != ContractName {
		return nil, newError(ErrCannotMigrate, "previous contract: %s", info.Contract)
	}

	previous := info.Version
	info.Version = ContractVersion
	if err := c.db.SaveContractInfo(ctx, info); err != nil {
		return nil, internalError("failed to save contract info", err)
	}

	return NewResponse().
		AddAttribute(AttributeAction, ActionMigrate).
		AddAttribute("from_version", previous).
		AddAttribute("to_version", ContractVersion), nil
}

// Execute dispatches msg, which must carry exactly one operation.
func (c *Contract) Execute(ctx context.Context, env Env, info MessageInfo, msg ExecuteMsg) (*Response, *types.Error) {
	if msg.count() != 1 {
		return nil, newError(ErrInvalidInput, "expected exactly one operation, got %d", msg.count())
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case msg.UpdateOwner != nil:
		return c.executeUpdateOwner(ctx, info, msg.UpdateOwner.Owner)
	case msg.UpdateEnabled != nil:
		return c.executeUpdateEnabled(ctx, info, msg.UpdateEnabled.Enabled)
	case msg.UpdateConstants != nil:
		return c.executeUpdateConstants(ctx, info, *msg.UpdateConstants)
	case msg.Receive != nil:
		return c.executeReceive(ctx, env, info, *msg.Receive)
	case msg.WithdrawReward != nil:
		return c.executeWithdrawReward(ctx, env, info, msg.WithdrawReward.Amount)
	case msg.WithdrawStake != nil:
		return c.executeWithdrawStake(ctx, env, info, msg.WithdrawStake.Amount)
	case msg.ClaimReward != nil:
		return c.executeClaimReward(ctx, env, info, msg.ClaimReward)
	default:
		return c.executeUnstake(ctx, env, info, msg.Unstake)
	}
}

func (c *Contract) validateAddress(address string) *types.Error {
	if err := pkg.ValidateAddress(address, c.addressPrefix); err != nil {
		return newError(ErrInvalidInput, "address %q: %s", address, err)
	}
	return nil
}

// loadEnabledConfig fails with ErrDisabled when staking is switched off.
func (c *Contract) loadEnabledConfig(ctx context.Context) (*Config, *types.Error) {
	cfg, err := c.loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	if !cfg.Enabled {
		return nil, newError(ErrDisabled, "")
	}
	return cfg, nil
}

// custody returns the contract balance of denom.
func (c *Contract) custody(ctx context.Context, env Env, denom types.Denom) (sdkmath.Int, *types.Error) {
	balance, err := c.bank.Balance(ctx, denom, env.ContractAddress)
	if err != nil {
		return sdkmath.Int{}, internalError("failed to query custody balance of "+denom.String(), err)
	}
	return balance, nil
}

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}
