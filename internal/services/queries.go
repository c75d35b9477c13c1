package services

import (
	"context"

	"github.com/babylonlabs-io/staking-reward-ledger/internal/staking"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/types"
)

func (s *Service) GetConfig(ctx context.Context) (*staking.ConfigResponse, *types.Error) {
	return s.contract.QueryConfig(ctx)
}

func (s *Service) GetStaker(ctx context.Context, address string) (*staking.StakerResponse, *types.Error) {
	return s.contract.QueryStaker(ctx, address)
}

// GetPendingRewards evaluates the records of address at blockTime, now when
// zero.
func (s *Service) GetPendingRewards(ctx context.Context, address string, blockTime uint64) ([]staking.PendingReward, *types.Error) {
	return s.contract.QueryPendingRewards(ctx, address, s.env(blockTime).BlockTime)
}

func (s *Service) GetTotals(ctx context.Context) (*staking.TotalsResponse, *types.Error) {
	return s.contract.QueryTotals(ctx)
}

// Ping reports whether the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
