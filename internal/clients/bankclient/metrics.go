package bankclient

import (
	"context"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/observability/metrics"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/types"
)

type bankClientWithMetrics struct {
	bank BankInterface
}

func NewBankClientWithMetrics(bank BankInterface) *bankClientWithMetrics {
	return &bankClientWithMetrics{bank: bank}
}

func (b *bankClientWithMetrics) Balance(ctx context.Context, denom types.Denom, address string) (sdkmath.Int, error) {
	return runBankClientMethodWithMetrics("Balance_"+denom.Kind.String(), func() (sdkmath.Int, error) {
		return b.bank.Balance(ctx, denom, address)
	})
}

func runBankClientMethodWithMetrics[T any](method string, f func() (T, error)) (T, error) {
	startTime := time.Now()
	v, err := f()
	duration := time.Since(startTime)

	metrics.RecordBankClientLatency(duration, method, err != nil)
	return v, err
}
