package types

import (
	"fmt"
	"strings"
)

type DenomKind string

const (
	// DenomNative is a bank module denomination.
	DenomNative DenomKind = "native"
	// DenomCW20 is a cw20 token contract address.
	DenomCW20 DenomKind = "cw20"
)

func (k DenomKind) String() string {
	return string(k)
}

// Denom references an asset either by native denomination or by token
// contract address.
type Denom struct {
	Kind DenomKind `json:"kind"`
	Ref  string    `json:"ref"`
}

func NewNativeDenom(denom string) Denom {
	return Denom{Kind: DenomNative, Ref: denom}
}

func NewCW20Denom(contractAddress string) Denom {
	return Denom{Kind: DenomCW20, Ref: contractAddress}
}

func (d Denom) IsNative() bool {
	return d.Kind == DenomNative
}

func (d Denom) IsCW20() bool {
	return d.Kind == DenomCW20
}

func (d Denom) Validate() error {
	switch d.Kind {
	case DenomNative, DenomCW20:
	default:
		return fmt.Errorf("unknown denom kind %q", d.Kind)
	}

	if strings.TrimSpace(d.Ref) == "" {
		return fmt.Errorf("empty %s denom reference", d.Kind)
	}

	return nil
}

func (d Denom) String() string {
	return d.Kind.String() + ":" + d.Ref
}
