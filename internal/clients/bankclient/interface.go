package bankclient

import (
	"context"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/types"
)

type BankInterface interface {
	// Balance returns the amount of denom held by address.
	Balance(ctx context.Context, denom types.Denom, address string) (sdkmath.Int, error)
}
