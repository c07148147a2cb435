package item

import (
	"context"

	"github.com/xraph/xpay/types"
)

// Store is the per-item persistence contract. The four tables share
// the same id key space but are independent: quantity rows may exist
// without an item row (AddItem/RemoveItem are permissive by design),
// and reads of the quantity table default to zero instead of erroring.
type Store interface {
	// Insert populates all four tables for a freshly allocated id as
	// one logical state transition.
	Insert(ctx context.Context, it *Item, owner types.AccountID, quantity types.Quantity, price types.Price) error

	// Exists reports whether an item row (not just a quantity row)
	// exists for id.
	Exists(ctx context.Context, id ID) (bool, error)

	Get(ctx context.Context, id ID) (*Item, error)
	GetOwner(ctx context.Context, id ID) (types.AccountID, error)
	GetPrice(ctx context.Context, id ID) (*types.Price, error)

	// GetQuantity returns 0 for unknown ids — a zero-value read, not
	// an error.
	GetQuantity(ctx context.Context, id ID) (types.Quantity, error)

	// SetQuantity writes an absolute quantity, creating the row if it
	// does not exist.
	SetQuantity(ctx context.Context, id ID, quantity types.Quantity) error

	// SetPrice overwrites the price row whole.
	SetPrice(ctx context.Context, id ID, price types.Price) error

	// NextID reads the persisted allocation counter.
	NextID(ctx context.Context) (ID, error)

	// SetNextID advances the allocation counter. Callers perform the
	// checked increment; the store only persists the result.
	SetNextID(ctx context.Context, id ID) error
}
