package domain

import (
	"math/big"
	"strings"
)

var (
	Big0 = big.NewInt(0)
	Big1 = big.NewInt(1)
)

type SortDir int8

const (
	SortDirAsc  = 1
	SortDirDesc = -1
)

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerPtr() *Address {
	res := a.ToLower()
	return &res
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0 || a == EmptyAddress
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

// AssetId identifies an asset on the ledger. Ids are assigned from a
// monotonic counter and never reused, not even after a burn.
type AssetId uint64

// ClassId tags an asset with the auction class it was minted under.
// Zero means unclassified.
type ClassId int32

// ParseAmount parses a fund amount expressed in the smallest indivisible
// unit of the currency. The empty string parses as zero.
func ParseAmount(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 {
		return nil, ErrInvalidNumberFormat
	}
	return n, nil
}

// AmountString renders an amount back to its canonical decimal form.
// A nil amount renders as "0".
func AmountString(n *big.Int) string {
	if n == nil {
		return "0"
	}
	return n.String()
}
