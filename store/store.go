package store

import (
	"context"

	"github.com/xraph/xpay/id"
	"github.com/xraph/xpay/item"
	"github.com/xraph/xpay/receipt"
	"github.com/xraph/xpay/types"
)

// Store is the unified storage interface for all XPay state: the four
// per-item tables, the allocation counter, and purchase receipts.
// Instead of embedding the sub-interfaces, we explicitly declare all
// methods to avoid naming conflicts.
type Store interface {
	// Item methods
	InsertItem(ctx context.Context, it *item.Item, owner types.AccountID, quantity types.Quantity, price types.Price) error
	ItemExists(ctx context.Context, itemID item.ID) (bool, error)
	GetItem(ctx context.Context, itemID item.ID) (*item.Item, error)
	GetOwner(ctx context.Context, itemID item.ID) (types.AccountID, error)
	GetPrice(ctx context.Context, itemID item.ID) (*types.Price, error)
	GetQuantity(ctx context.Context, itemID item.ID) (types.Quantity, error)
	SetQuantity(ctx context.Context, itemID item.ID, quantity types.Quantity) error
	SetPrice(ctx context.Context, itemID item.ID, price types.Price) error

	// Id allocation counter
	NextItemID(ctx context.Context) (item.ID, error)
	SetNextItemID(ctx context.Context, itemID item.ID) error

	// Receipt methods
	CreateReceipt(ctx context.Context, r *receipt.Receipt) error
	GetReceipt(ctx context.Context, receiptID id.ReceiptID) (*receipt.Receipt, error)
	ListReceiptsByItem(ctx context.Context, itemID item.ID, opts receipt.ListOpts) ([]*receipt.Receipt, error)
	ListReceiptsByAccount(ctx context.Context, account types.AccountID, opts receipt.ListOpts) ([]*receipt.Receipt, error)

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
