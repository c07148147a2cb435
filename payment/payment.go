// Package payment defines the external value-transfer collaborators a
// purchase settles through, and the quote resolution that picks
// between them.
//
// XPay never moves value itself. The enclosing ledger injects a
// Transferor (same-asset balance transfers) and an Exchange
// (cross-asset swap-for-output); either call can fail for reasons the
// collaborator defines, and that failure is the purchase's failure.
package payment

import (
	"context"

	"github.com/xraph/xpay/types"
)

// Transferor moves amount of asset from one account to another. The
// implementation is responsible for balance checks and for emitting
// its own transfer notification.
type Transferor interface {
	Transfer(ctx context.Context, asset types.AssetID, from, to types.AccountID, amount types.Amount) error
}

// Exchange converts between assets against a pricing curve XPay knows
// nothing about.
type Exchange interface {
	// SwapForOutput delivers exactly AmountWanted of AssetWanted to
	// recipient, charging buyer no more than MaxOffered of
	// AssetOffered, at the given fee rate.
	SwapForOutput(ctx context.Context, buyer, recipient types.AccountID, swap Swap) error

	// FeeRate returns the exchange's current fee rate.
	FeeRate(ctx context.Context) (types.FeeRate, error)
}

// TransferorFunc adapts a plain function to a Transferor.
type TransferorFunc func(ctx context.Context, asset types.AssetID, from, to types.AccountID, amount types.Amount) error

// Transfer implements Transferor.
func (f TransferorFunc) Transfer(ctx context.Context, asset types.AssetID, from, to types.AccountID, amount types.Amount) error {
	return f(ctx, asset, from, to, amount)
}
