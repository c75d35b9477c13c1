package config

import (
	"errors"
	"fmt"
	"time"
)

const defaultAddressPrefix = "bbn"

type TierConfig struct {
	Duration time.Duration `mapstructure:"duration"`
	Rate     uint64        `mapstructure:"rate"`
}

// ContractConfig holds the ledger identity and the values written by
// instantiate.
type ContractConfig struct {
	// Address is the custody account whose balances back the ledger.
	Address           string        `mapstructure:"address"`
	AddressPrefix     string        `mapstructure:"address-prefix"`
	Owner             string        `mapstructure:"owner"`
	StakeTokenAddress string        `mapstructure:"stake-token-address"`
	RewardTokenDenom  string        `mapstructure:"reward-token-denom"`
	RewardInterval    time.Duration `mapstructure:"reward-interval"`
	// Tiers overrides the default tier table on instantiate.
	Tiers []TierConfig `mapstructure:"tiers"`
}

func (cfg *ContractConfig) Validate() error {
	if cfg.AddressPrefix == "" {
		cfg.AddressPrefix = defaultAddressPrefix
	}

	if cfg.Address == "" {
		return errors.New("contract address is required")
	}

	if cfg.StakeTokenAddress == "" {
		return errors.New("stake-token-address is required")
	}

	if cfg.RewardTokenDenom == "" {
		return errors.New("reward-token-denom is required")
	}

	if cfg.RewardInterval < 0 {
		return errors.New("reward-interval must not be negative")
	}

	for i, tier := range cfg.Tiers {
		if tier.Duration < time.Second {
			return fmt.Errorf("tier %d: duration must be at least one second", i)
		}
	}

	return nil
}
