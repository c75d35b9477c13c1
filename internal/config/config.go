package config

import (
	"errors"
	"fmt"
	"strings"

	queue "github.com/babylonlabs-io/staking-queue-client/config"
	"github.com/spf13/viper"
)

const envPrefix = "STAKING"

type Config struct {
	Db       DbConfig           `mapstructure:"db"`
	Bank     BankConfig         `mapstructure:"bank"`
	Contract ContractConfig     `mapstructure:"contract"`
	Server   ServerConfig       `mapstructure:"server"`
	Poller   PollerConfig       `mapstructure:"poller"`
	Queue    *queue.QueueConfig `mapstructure:"queue"`
	Metrics  MetricsConfig      `mapstructure:"metrics"`
}

func (cfg *Config) Validate() error {
	var errs []error
	if err := cfg.Db.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("db: %w", err))
	}
	if err := cfg.Bank.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("bank: %w", err))
	}
	if err := cfg.Contract.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("contract: %w", err))
	}
	if err := cfg.Server.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("server: %w", err))
	}
	if err := cfg.Poller.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("poller: %w", err))
	}
	// queue is optional, intents are only logged without it
	if cfg.Queue != nil {
		if err := validateQueue(cfg.Queue); err != nil {
			errs = append(errs, fmt.Errorf("queue: %w", err))
		}
	}
	if err := cfg.Metrics.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("metrics: %w", err))
	}

	return errors.Join(errs...)
}

func validateQueue(q *queue.QueueConfig) error {
	if q.Url == "" {
		return errors.New("queue url cannot be empty")
	}
	if q.QueueUser == "" || q.QueuePassword == "" {
		return errors.New("queue user and password must be set")
	}
	if q.QueueProcessingTimeout <= 0 {
		return errors.New("queue processing timeout must be positive")
	}

	return nil
}

// New returns a fully parsed Config object from a given file path.
// Every key can be overridden by an env variable, e.g. db.address by
// STAKING_DB_ADDRESS.
func New(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(cfgFile)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
