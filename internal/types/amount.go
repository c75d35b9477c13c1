package types

import (
	"fmt"
	"math/big"

	sdkmath "cosmossdk.io/math"
)

// MaxAmountBits bounds every token amount to the unsigned 128-bit range.
const MaxAmountBits = 128

// MaxAmount is the largest amount a ledger value can hold.
var MaxAmount = sdkmath.NewIntFromBigInt(
	new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), MaxAmountBits), big.NewInt(1)),
)

// CheckAmount reports whether a is a non-negative value within MaxAmount.
func CheckAmount(a sdkmath.Int) error {
	if a.IsNil() {
		return fmt.Errorf("amount is not set")
	}
	if a.IsNegative() {
		return fmt.Errorf("amount %s is negative", a)
	}
	if a.GT(MaxAmount) {
		return fmt.Errorf("amount %s exceeds 128-bit range", a)
	}

	return nil
}

// ParseAmount parses a decimal string into a bounded amount.
func ParseAmount(s string) (sdkmath.Int, error) {
	a, ok := sdkmath.NewIntFromString(s)
	if !ok {
		return sdkmath.Int{}, fmt.Errorf("invalid amount %q", s)
	}

	if err := CheckAmount(a); err != nil {
		return sdkmath.Int{}, err
	}

	return a, nil
}

// AmountToFloat64 is lossy and only used for metrics.
func AmountToFloat64(a sdkmath.Int) float64 {
	if a.IsNil() {
		return 0
	}
	f, _ := new(big.Float).SetInt(a.BigInt()).Float64()
	return f
}
