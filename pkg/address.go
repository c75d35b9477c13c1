package pkg

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ValidateAddress checks that address is a well formed bech32 address with
// the given human readable prefix.
func ValidateAddress(address, prefix string) error {
	bz, err := sdk.GetFromBech32(address, prefix)
	if err != nil {
		return err
	}

	return sdk.VerifyAddressFormat(bz)
}

// FormatAddress encodes raw address bytes as bech32 with prefix.
func FormatAddress(bz []byte, prefix string) (string, error) {
	return sdk.Bech32ifyAddressBytes(prefix, bz)
}
