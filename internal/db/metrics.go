package db

import (
	"context"
	"time"

	"github.com/babylonlabs-io/staking-reward-ledger/internal/db/model"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/observability/metrics"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

func (d *DbWithMetrics) Close(ctx context.Context) error {
	return d.db.Close(ctx)
}

func (d *DbWithMetrics) GetConfig(ctx context.Context) (result *model.ConfigDocument, err error) {
	//nolint:errcheck
	d.run("GetConfig", func() error {
		result, err = d.db.GetConfig(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) SaveConfig(ctx context.Context, cfg *model.ConfigDocument) error {
	return d.run("SaveConfig", func() error {
		return d.db.SaveConfig(ctx, cfg)
	})
}

func (d *DbWithMetrics) Initialize(ctx context.Context, info *model.ContractInfoDocument, cfg *model.ConfigDocument) error {
	return d.run("Initialize", func() error {
		return d.db.Initialize(ctx, info, cfg)
	})
}

func (d *DbWithMetrics) UpdateConfig(ctx context.Context, fn func(cfg *model.ConfigDocument) error) error {
	return d.run("UpdateConfig", func() error {
		return d.db.UpdateConfig(ctx, fn)
	})
}

func (d *DbWithMetrics) GetStaker(ctx context.Context, address string) (result *model.StakerDocument, err error) {
	//nolint:errcheck
	d.run("GetStaker", func() error {
		result, err = d.db.GetStaker(ctx, address)
		return err
	})
	return
}

func (d *DbWithMetrics) SaveStaker(ctx context.Context, staker *model.StakerDocument) error {
	return d.run("SaveStaker", func() error {
		return d.db.SaveStaker(ctx, staker)
	})
}

func (d *DbWithMetrics) IterateStakers(ctx context.Context, fn func(staker *model.StakerDocument) error) error {
	return d.run("IterateStakers", func() error {
		return d.db.IterateStakers(ctx, fn)
	})
}

func (d *DbWithMetrics) GetContractInfo(ctx context.Context) (result *model.ContractInfoDocument, err error) {
	//nolint:errcheck
	d.run("GetContractInfo", func() error {
		result, err = d.db.GetContractInfo(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) SaveContractInfo(ctx context.Context, info *model.ContractInfoDocument) error {
	return d.run("SaveContractInfo", func() error {
		return d.db.SaveContractInfo(ctx, info)
	})
}

// run is private method that executes passed lambda function and send metrics data with spent time, method name
// and an error if any. It returns the error from the lambda function for convenience.
// Missing documents are an expected outcome and not recorded as failures.
func (d *DbWithMetrics) run(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	metrics.RecordDbLatency(duration, method, err != nil && !IsNotFoundError(err))
	return err
}
