package xpay

import (
	"github.com/xraph/xpay/item"
	"github.com/xraph/xpay/types"
)

// Event payloads delivered to plugin hooks after each successful
// mutation. Fields mirror what the operation committed, not what was
// requested.

// ItemCreated is emitted after a new item is listed.
type ItemCreated struct {
	Caller   types.Caller
	ItemID   item.ID
	Quantity types.Quantity
	Content  []byte
	Price    types.Price
}

// ItemAdded is emitted after quantity is added to a listing.
// Quantity is the resulting (post-add) quantity.
type ItemAdded struct {
	Caller   types.Caller
	ItemID   item.ID
	Quantity types.Quantity
}

// ItemRemoved is emitted after quantity is removed from a listing.
// Quantity is the resulting (post-remove) quantity.
type ItemRemoved struct {
	Caller   types.Caller
	ItemID   item.ID
	Quantity types.Quantity
}

// ItemUpdated is emitted after a listing's quantity or price is
// overwritten. Both fields carry the post-update values.
type ItemUpdated struct {
	Caller   types.Caller
	ItemID   item.ID
	Quantity types.Quantity
	Price    types.Price
}

// ItemSold is emitted after a purchase settles. Quantity is the number
// of units sold, not the remaining stock.
type ItemSold struct {
	Buyer    types.Caller
	ItemID   item.ID
	Quantity types.Quantity
}

// PurchaseFailed is emitted when a purchase is rejected or its payment
// collaborator fails. No registry state changed.
type PurchaseFailed struct {
	Buyer    types.Caller
	ItemID   item.ID
	Quantity types.Quantity
}
