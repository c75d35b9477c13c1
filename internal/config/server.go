package config

import (
	"fmt"
	"time"
)

const minCallerSecretLen = 16

type ServerConfig struct {
	Host         string         `mapstructure:"host"`
	Port         int            `mapstructure:"port"`
	ReadTimeout  time.Duration  `mapstructure:"read-timeout"`
	WriteTimeout time.Duration  `mapstructure:"write-timeout"`
	IdleTimeout  time.Duration  `mapstructure:"idle-timeout"`
	Callers      []CallerConfig `mapstructure:"callers"`
}

// CallerConfig is a basic auth credential for the mutating endpoints.
// Address is the identity the call runs as: the account on /v1/execute and
// the notifying token contract on /v1/receive.
type CallerConfig struct {
	Address string `mapstructure:"address"`
	Secret  string `mapstructure:"secret"`
}

func (cfg *ServerConfig) Validate() error {
	if cfg.Port < 0 || cfg.Port > 65535 {
		return fmt.Errorf("server port must be between 0 and 65535")
	}

	if cfg.ReadTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}

	seen := make(map[string]struct{}, len(cfg.Callers))
	for i, caller := range cfg.Callers {
		if caller.Address == "" {
			return fmt.Errorf("server caller %d: address is required", i)
		}
		if len(caller.Secret) < minCallerSecretLen {
			return fmt.Errorf("server caller %s: secret must be at least %d characters", caller.Address, minCallerSecretLen)
		}
		if _, ok := seen[caller.Address]; ok {
			return fmt.Errorf("server caller %s: duplicate address", caller.Address)
		}
		seen[caller.Address] = struct{}{}
	}

	return nil
}

func (cfg *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}

// Credentials maps caller address to secret. With no callers configured the
// mutating endpoints reject every request.
func (cfg *ServerConfig) Credentials() map[string]string {
	creds := make(map[string]string, len(cfg.Callers))
	for _, caller := range cfg.Callers {
		creds[caller.Address] = caller.Secret
	}
	return creds
}
