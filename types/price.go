package types

import (
	"encoding/json"
	"fmt"
)

// Price denominates the cost of one unit of an item in a specific
// ledger asset. A price is set at creation and only ever overwritten
// whole — never partially mutated.
type Price struct {
	Asset  AssetID `json:"asset"`
	Amount Amount  `json:"amount"`
}

// NewPrice creates a Price of amount smallest units of asset.
func NewPrice(asset AssetID, amount Amount) Price {
	return Price{Asset: asset, Amount: amount}
}

// TotalFor returns the checked total cost for quantity units.
// Reports false on 64-bit multiplication overflow.
func (p Price) TotalFor(quantity Quantity) (Amount, bool) {
	return p.Amount.CheckedMul(uint64(quantity))
}

// SameAsset reports whether both prices are denominated in the same asset.
func (p Price) SameAsset(other Price) bool {
	return p.Asset == other.Asset
}

// Equal reports whether both asset and amount match.
func (p Price) Equal(other Price) bool {
	return p.Asset == other.Asset && p.Amount == other.Amount
}

// String returns a human-readable "amount@asset" form.
func (p Price) String() string {
	return fmt.Sprintf("%d@asset(%d)", uint64(p.Amount), uint32(p.Asset))
}

// MarshalJSON implements json.Marshaler.
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Asset  uint32 `json:"asset"`
		Amount uint64 `json:"amount"`
	}{
		Asset:  uint32(p.Asset),
		Amount: uint64(p.Amount),
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Price) UnmarshalJSON(data []byte) error {
	var raw struct {
		Asset  uint32 `json:"asset"`
		Amount uint64 `json:"amount"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Asset = AssetID(raw.Asset)
	p.Amount = Amount(raw.Amount)
	return nil
}
