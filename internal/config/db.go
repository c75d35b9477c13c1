package config

import (
	"fmt"
	"net/url"
)

const (
	DbTypeMongo  = "mongo"
	DbTypeBadger = "badger"
)

type DbConfig struct {
	// Type selects the storage backend, either mongo or badger.
	Type     string `mapstructure:"type"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DbName   string `mapstructure:"db-name"`
	Address  string `mapstructure:"address"`
	// DataDir is the badger directory. Empty keeps the ledger in memory.
	DataDir string `mapstructure:"data-dir"`
}

func (cfg *DbConfig) Validate() error {
	switch cfg.Type {
	case DbTypeMongo:
		return cfg.validateMongo()
	case DbTypeBadger:
		return nil
	default:
		return fmt.Errorf("unsupported db type %q, expected %s or %s", cfg.Type, DbTypeMongo, DbTypeBadger)
	}
}

func (cfg *DbConfig) validateMongo() error {
	if cfg.Username == "" {
		return fmt.Errorf("missing db username")
	}

	if cfg.Password == "" {
		return fmt.Errorf("missing db password")
	}

	if cfg.Address == "" {
		return fmt.Errorf("missing db address")
	}

	if cfg.DbName == "" {
		return fmt.Errorf("missing db name")
	}

	u, err := url.Parse(cfg.Address)
	if err != nil {
		return fmt.Errorf("invalid db address: %w", err)
	}

	if u.Scheme != "mongodb" && u.Scheme != "mongodb+srv" {
		return fmt.Errorf("unsupported db address scheme: %s", u.Scheme)
	}

	return nil
}
