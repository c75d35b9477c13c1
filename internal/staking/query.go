package staking

import (
	"context"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/db/model"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/types"
)

// PendingReward is what a claim of the record would pay at a given time.
type PendingReward struct {
	RecordID uint64      `json:"record_id"`
	Elapsed  uint64      `json:"elapsed"`
	Rate     uint64      `json:"rate"`
	Reward   sdkmath.Int `json:"reward"`
}

func (c *Contract) QueryConfig(ctx context.Context) (*ConfigResponse, *types.Error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loadConfig(ctx)
}

// QueryStaker returns the records of address in deposit order, an empty list
// for accounts that never staked.
func (c *Contract) QueryStaker(ctx context.Context, address string) (*StakerResponse, *types.Error) {
	if err := c.validateAddress(address); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	staker, err := c.loadStaker(ctx, address)
	if err != nil {
		return nil, err
	}

	return &StakerResponse{
		Address: address,
		Records: staker.Records,
	}, nil
}

// QueryPendingRewards computes, without side effects, the reward each record
// of address would pay if claimed at blockTime.
func (c *Contract) QueryPendingRewards(ctx context.Context, address string, blockTime uint64) ([]PendingReward, *types.Error) {
	if err := c.validateAddress(address); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cfg, err := c.loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	staker, err := c.loadStaker(ctx, address)
	if err != nil {
		return nil, err
	}

	pending := make([]PendingReward, 0, len(staker.Records))
	for _, r := range staker.Records {
		elapsed := ElapsedSeconds(r.CheckpointTime, blockTime)
		reward, rewardErr := ComputeReward(r.Principal, elapsed, cfg.Tiers)
		if rewardErr != nil {
			return nil, overflowError(rewardErr)
		}

		tier, _ := MatchTier(elapsed, cfg.Tiers)
		pending = append(pending, PendingReward{
			RecordID: r.ID,
			Elapsed:  elapsed,
			Rate:     tier.Rate,
			Reward:   reward,
		})
	}

	return pending, nil
}

// QueryTotals aggregates principal over every account.
func (c *Contract) QueryTotals(ctx context.Context) (*TotalsResponse, *types.Error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	totals := &TotalsResponse{TotalPrincipal: sdkmath.ZeroInt()}
	err := c.db.IterateStakers(ctx, func(doc *model.StakerDocument) error {
		staker, err := stakerFromDocument(doc)
		if err != nil {
			return err
		}
		if len(staker.Records) == 0 {
			return nil
		}

		principal, err := staker.TotalPrincipal()
		if err != nil {
			return err
		}
		if totals.TotalPrincipal, err = checkedAdd(totals.TotalPrincipal, principal); err != nil {
			return err
		}

		totals.Stakers++
		totals.Records += len(staker.Records)
		return nil
	})
	if err != nil {
		return nil, internalError("failed to aggregate stakers", err)
	}

	return totals, nil
}
