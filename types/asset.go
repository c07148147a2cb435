// Package types provides common types used across XPay.
package types

import (
	"fmt"
	"math"
)

// AssetID identifies a fungible ledger asset that prices can be
// denominated in and payments can be made with.
type AssetID uint32

// Amount is a monetary value in the smallest unit of some asset.
// All arithmetic is integer-only — no floating point. Operations that
// can overflow are checked and report failure instead of wrapping.
type Amount uint64

// MaxAmount is the largest representable Amount.
const MaxAmount = Amount(math.MaxUint64)

// CheckedAdd returns a + b and true, or 0 and false on overflow.
func (a Amount) CheckedAdd(b Amount) (Amount, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}

// CheckedMul returns a * n and true, or 0 and false on overflow.
func (a Amount) CheckedMul(n uint64) (Amount, bool) {
	if a == 0 || n == 0 {
		return 0, true
	}
	prod := a * Amount(n)
	if prod/Amount(n) != a {
		return 0, false
	}
	return prod, true
}

// String formats the amount as a plain integer.
func (a Amount) String() string {
	return fmt.Sprintf("%d", uint64(a))
}

// FeeRate is an exchange fee rate expressed in parts per million.
// A rate of 3000 corresponds to 0.3%.
type FeeRate uint32

// PerMillion is the FeeRate denominator.
const PerMillion = 1_000_000

// Float returns the rate as a fraction, for display only. Settlement
// math stays on the integer representation.
func (r FeeRate) Float() float64 {
	return float64(r) / PerMillion
}

func (r FeeRate) String() string {
	return fmt.Sprintf("%d ppm", uint32(r))
}
