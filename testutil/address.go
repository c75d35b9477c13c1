package testutil

import (
	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-reward-ledger/pkg"
	"github.com/brianvoe/gofakeit/v7"
)

const (
	accountAddressLen  = 20
	contractAddressLen = 32
)

// RandomAddress returns a random account address with prefix.
func RandomAddress(prefix string) string {
	return randomBech32(prefix, accountAddressLen)
}

// RandomContractAddress returns a random contract address with prefix.
func RandomContractAddress(prefix string) string {
	return randomBech32(prefix, contractAddressLen)
}

func randomBech32(prefix string, length int) string {
	bz := make([]byte, length)
	for i := range bz {
		bz[i] = gofakeit.Uint8()
	}

	address, err := pkg.FormatAddress(bz, prefix)
	if err != nil {
		panic(err)
	}
	return address
}

// RandomAmount returns an amount in [min, max].
func RandomAmount(min, max int) sdkmath.Int {
	return sdkmath.NewInt(int64(gofakeit.IntRange(min, max)))
}
