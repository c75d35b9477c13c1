package services

import (
	"context"
	"errors"
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/observability/metrics"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/staking"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/types"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/utils/poller"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

// StartSolvencyMonitor periodically compares stake custody with the
// principal owed to stakers.
func (s *Service) StartSolvencyMonitor(ctx context.Context) {
	solvencyPoller := poller.NewPoller(
		s.cfg.Poller.SolvencyCheckInterval,
		metrics.ObservePoller("solvency", s.checkSolvency),
	)
	go solvencyPoller.Start(ctx)
}

// SolvencyReport is the outcome of one solvency check.
type SolvencyReport struct {
	TotalPrincipal sdkmath.Int
	StakeCustody   sdkmath.Int
	RewardCustody  sdkmath.Int
	Stakers        int
	Records        int
}

func (r *SolvencyReport) Solvent() bool {
	return r.StakeCustody.GTE(r.TotalPrincipal)
}

func (s *Service) checkSolvency(ctx context.Context) error {
	report, err := s.CheckSolvency(ctx)
	if err != nil {
		if errors.Is(err, staking.ErrNotInitialized) {
			log.Ctx(ctx).Debug().Msg("ledger is not initialized, skipping solvency check")
			return nil
		}
		return err
	}

	if !report.Solvent() {
		log.Ctx(ctx).Warn().
			Str("total_principal", report.TotalPrincipal.String()).
			Str("stake_custody", report.StakeCustody.String()).
			Msg("stake custody is below total principal")
	}

	return nil
}

// CheckSolvency sums principal over all stakers, queries both custody
// balances and exports the results as metrics.
func (s *Service) CheckSolvency(ctx context.Context) (*SolvencyReport, error) {
	cfg, typedErr := s.contract.QueryConfig(ctx)
	if typedErr != nil {
		return nil, typedErr
	}

	totals, typedErr := s.contract.QueryTotals(ctx)
	if typedErr != nil {
		return nil, typedErr
	}

	report := &SolvencyReport{
		TotalPrincipal: totals.TotalPrincipal,
		Stakers:        totals.Stakers,
		Records:        totals.Records,
	}

	p := pool.New().
		WithMaxGoroutines(s.cfg.Poller.BalanceQueryConcurrency).
		WithErrors().
		WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		balance, err := s.bank.Balance(ctx, cfg.StakeToken, s.cfg.Contract.Address)
		if err != nil {
			return fmt.Errorf("failed to query stake custody: %w", err)
		}
		report.StakeCustody = balance
		return nil
	})
	p.Go(func(ctx context.Context) error {
		balance, err := s.bank.Balance(ctx, cfg.RewardToken, s.cfg.Contract.Address)
		if err != nil {
			return fmt.Errorf("failed to query reward custody: %w", err)
		}
		report.RewardCustody = balance
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	metrics.RecordTotalPrincipal(types.AmountToFloat64(report.TotalPrincipal))
	metrics.RecordStakersCount(report.Stakers)
	metrics.RecordCustodyBalance(cfg.StakeToken.String(), types.AmountToFloat64(report.StakeCustody))
	metrics.RecordCustodyBalance(cfg.RewardToken.String(), types.AmountToFloat64(report.RewardCustody))
	if !report.Solvent() {
		metrics.IncInsolvency(cfg.StakeToken.String())
	}

	return report, nil
}
