package config

import (
	"fmt"
	"net/url"
	"time"
)

// BankConfig points at the LCD (REST) endpoint used for custody balance queries.
type BankConfig struct {
	LCDAddr       string        `mapstructure:"lcd-addr"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetryTimes uint          `mapstructure:"maxretrytimes"`
	RetryInterval time.Duration `mapstructure:"retryinterval"`
}

func (cfg *BankConfig) Validate() error {
	if cfg.LCDAddr == "" {
		return fmt.Errorf("lcd address is required")
	}

	u, err := url.Parse(cfg.LCDAddr)
	if err != nil {
		return fmt.Errorf("invalid lcd address: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("lcd address must be http or https, got %q", cfg.LCDAddr)
	}

	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}

	if cfg.MaxRetryTimes == 0 {
		return fmt.Errorf("maxretrytimes must be positive")
	}

	if cfg.RetryInterval <= 0 {
		return fmt.Errorf("retryinterval must be positive")
	}

	return nil
}
