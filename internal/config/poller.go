package config

import (
	"errors"
	"time"
)

const defaultSolvencyCheckInterval = 5 * time.Minute

type PollerConfig struct {
	SolvencyCheckInterval time.Duration `mapstructure:"solvency-check-interval"`
	// BalanceQueryConcurrency bounds parallel custody balance queries.
	BalanceQueryConcurrency int `mapstructure:"balance-query-concurrency"`
}

func (cfg *PollerConfig) Validate() error {
	if cfg.SolvencyCheckInterval <= 0 {
		cfg.SolvencyCheckInterval = defaultSolvencyCheckInterval
	}

	if cfg.BalanceQueryConcurrency < 0 {
		return errors.New("balance-query-concurrency must not be negative")
	}
	if cfg.BalanceQueryConcurrency == 0 {
		cfg.BalanceQueryConcurrency = 2
	}

	return nil
}
