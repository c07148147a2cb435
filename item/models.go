// Package item defines the marketplace item records and their store
// contract.
package item

import (
	"math"
	"strconv"

	"github.com/xraph/xpay/types"
)

// ID identifies one item record. Ids are allocated monotonically from
// a persisted counter and are never reused, even when an item's
// quantity drops to zero.
type ID uint64

// MaxID is the id-space sentinel. It is reserved as the allocator's
// exhaustion mark and is never assigned to an item.
const MaxID = ID(math.MaxUint64)

// Next returns the successor id and true, or 0 and false when the
// increment would pass MaxID. The sentinel itself is never handed out.
func (i ID) Next() (ID, bool) {
	if i == MaxID {
		return 0, false
	}
	return i + 1, true
}

// String returns the decimal form of the id.
func (i ID) String() string {
	return strconv.FormatUint(uint64(i), 10)
}

// ParseID parses a decimal item id.
func ParseID(s string) (ID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return ID(v), nil
}

// Item is a listed sellable record. Content is opaque to XPay — the
// embedding application defines its meaning and encoding. Content is
// immutable once created; no operation rewrites it.
type Item struct {
	types.Entity
	ID      ID     `json:"id"`
	Content []byte `json:"content"`
}

// Listing is the composite read model of one item across all four
// per-item tables. Quantity reads default to zero and Price may be
// unset for ids that only ever saw AddItem/RemoveItem traffic, so a
// zero-quantity Listing with no Price means "not listed", not "free".
type Listing struct {
	Item     *Item           `json:"item"`
	Owner    types.AccountID `json:"owner"`
	Quantity types.Quantity  `json:"quantity"`
	Price    *types.Price    `json:"price,omitempty"`
}
