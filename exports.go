package xpay

import "github.com/xraph/xpay/types"

// Re-export common types for convenience so users don't have to import types package.

// Price is re-exported from types package.
type Price = types.Price

// Quantity is re-exported from types package.
type Quantity = types.Quantity

// Amount is re-exported from types package.
type Amount = types.Amount

// AssetID is re-exported from types package.
type AssetID = types.AssetID

// AccountID is re-exported from types package.
type AccountID = types.AccountID

// Caller is re-exported from types package.
type Caller = types.Caller

// Entity is re-exported from types package.
type Entity = types.Entity

// Re-export constructors and bounds
var (
	NewPrice            = types.NewPrice
	AuthenticatedCaller = types.AuthenticatedCaller
	NewEntity           = types.NewEntity
)

const (
	// MaxQuantity is re-exported from types package.
	MaxQuantity = types.MaxQuantity

	// MaxAmount is re-exported from types package.
	MaxAmount = types.MaxAmount
)
