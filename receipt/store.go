package receipt

import (
	"context"

	"github.com/xraph/xpay/id"
	"github.com/xraph/xpay/item"
	"github.com/xraph/xpay/types"
)

// Store is the receipt persistence contract.
type Store interface {
	Create(ctx context.Context, r *Receipt) error
	Get(ctx context.Context, receiptID id.ReceiptID) (*Receipt, error)
	ListByItem(ctx context.Context, itemID item.ID, opts ListOpts) ([]*Receipt, error)
	ListByAccount(ctx context.Context, account types.AccountID, opts ListOpts) ([]*Receipt, error)
}
