// Package receipt defines the purchase receipt records XPay writes
// after a settled purchase.
package receipt

import (
	"github.com/xraph/xpay/id"
	"github.com/xraph/xpay/item"
	"github.com/xraph/xpay/types"
)

// Settlement names which payment protocol settled a purchase.
type Settlement string

const (
	// SettlementDirect is a same-asset balance transfer.
	SettlementDirect Settlement = "direct"
	// SettlementSwap is an exchange-mediated cross-asset conversion.
	SettlementSwap Settlement = "swap"
)

// Receipt records one settled purchase. Receipts are append-only and
// advisory: settlement and inventory state never depend on them.
type Receipt struct {
	types.Entity
	ID         id.ReceiptID    `json:"id"`
	ItemID     item.ID         `json:"item_id"`
	Buyer      types.AccountID `json:"buyer"`
	Seller     types.AccountID `json:"seller"`
	Quantity   types.Quantity  `json:"quantity"`
	Settlement Settlement      `json:"settlement"`
	// Priced is the listing's unit price at settlement time.
	Priced types.Price `json:"priced"`
	// Total is the checked unit-price × quantity total computed by the
	// settlement engine.
	Total types.Amount `json:"total"`
}

// ListOpts filters receipt listings.
type ListOpts struct {
	Settlement Settlement
	Limit      int
	Offset     int
}
