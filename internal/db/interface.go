package db

import (
	"context"

	"github.com/babylonlabs-io/staking-reward-ledger/internal/db/model"
)

type DbInterface interface {
	Ping(ctx context.Context) error
	// GetConfig returns NotFoundError before the ledger is instantiated.
	GetConfig(ctx context.Context) (*model.ConfigDocument, error)
	SaveConfig(ctx context.Context, cfg *model.ConfigDocument) error
	// Initialize stores contract info and the first config together. It
	// returns DuplicateKeyError when a config exists and then writes nothing.
	Initialize(ctx context.Context, info *model.ContractInfoDocument, cfg *model.ConfigDocument) error
	// UpdateConfig loads the stored config, applies fn and writes the result
	// back. It returns NotFoundError when no config exists and writes nothing
	// if fn fails.
	UpdateConfig(ctx context.Context, fn func(cfg *model.ConfigDocument) error) error
	// GetStaker returns NotFoundError for accounts that never staked.
	GetStaker(ctx context.Context, address string) (*model.StakerDocument, error)
	SaveStaker(ctx context.Context, staker *model.StakerDocument) error
	// IterateStakers calls fn for every stored account until fn returns an error.
	IterateStakers(ctx context.Context, fn func(staker *model.StakerDocument) error) error
	GetContractInfo(ctx context.Context) (*model.ContractInfoDocument, error)
	SaveContractInfo(ctx context.Context, info *model.ContractInfoDocument) error
	Close(ctx context.Context) error
}
