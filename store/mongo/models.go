package mongo

import (
	"strconv"
	"time"

	"github.com/xraph/grove"

	"github.com/xraph/xpay/id"
	"github.com/xraph/xpay/item"
	"github.com/xraph/xpay/receipt"
	"github.com/xraph/xpay/types"
)

// Item ids and amounts are stored as decimal strings: both are
// unsigned 64-bit and BSON has no unsigned integer type.

// ==================== Item models ====================

type itemModel struct {
	grove.BaseModel `grove:"table:xpay_items"`

	ItemID    string    `grove:"item_id,pk" bson:"_id"`
	Content   []byte    `grove:"content"    bson:"content,omitempty"`
	CreatedAt time.Time `grove:"created_at" bson:"created_at"`
	UpdatedAt time.Time `grove:"updated_at" bson:"updated_at"`
}

func toItemModel(it *item.Item) *itemModel {
	return &itemModel{
		ItemID:    it.ID.String(),
		Content:   it.Content,
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}

func fromItemModel(m *itemModel) (*item.Item, error) {
	itemID, err := item.ParseID(m.ItemID)
	if err != nil {
		return nil, err
	}

	return &item.Item{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:      itemID,
		Content: m.Content,
	}, nil
}

// ==================== Owner models ====================

type ownerModel struct {
	grove.BaseModel `grove:"table:xpay_item_owners"`

	ItemID string `grove:"item_id,pk" bson:"_id"`
	Owner  string `grove:"owner"      bson:"owner"`
}

// ==================== Quantity models ====================

type quantityModel struct {
	grove.BaseModel `grove:"table:xpay_item_quantities"`

	ItemID   string `grove:"item_id,pk" bson:"_id"`
	Quantity int64  `grove:"quantity"   bson:"quantity"`
}

// ==================== Price models ====================

type priceModel struct {
	grove.BaseModel `grove:"table:xpay_item_prices"`

	ItemID  string `grove:"item_id,pk" bson:"_id"`
	AssetID int64  `grove:"asset_id"   bson:"asset_id"`
	Amount  string `grove:"amount"     bson:"amount"`
}

func fromPriceModel(m *priceModel) (*types.Price, error) {
	amount, err := strconv.ParseUint(m.Amount, 10, 64)
	if err != nil {
		return nil, err
	}

	p := types.NewPrice(types.AssetID(m.AssetID), types.Amount(amount))
	return &p, nil
}

// ==================== Counter models ====================

const counterNextItemID = "next_item_id"

type counterModel struct {
	grove.BaseModel `grove:"table:xpay_counters"`

	Name  string `grove:"name,pk" bson:"_id"`
	Value string `grove:"value"   bson:"value"`
}

// ==================== Receipt models ====================

type receiptModel struct {
	grove.BaseModel `grove:"table:xpay_receipts"`

	ID           string    `grove:"id,pk"         bson:"_id"`
	ItemID       string    `grove:"item_id"       bson:"item_id"`
	Buyer        string    `grove:"buyer"         bson:"buyer"`
	Seller       string    `grove:"seller"        bson:"seller"`
	Quantity     int64     `grove:"quantity"      bson:"quantity"`
	Settlement   string    `grove:"settlement"    bson:"settlement"`
	PricedAsset  int64     `grove:"priced_asset"  bson:"priced_asset"`
	PricedAmount string    `grove:"priced_amount" bson:"priced_amount"`
	Total        string    `grove:"total"         bson:"total"`
	CreatedAt    time.Time `grove:"created_at"    bson:"created_at"`
	UpdatedAt    time.Time `grove:"updated_at"    bson:"updated_at"`
}

func toReceiptModel(r *receipt.Receipt) *receiptModel {
	return &receiptModel{
		ID:           r.ID.String(),
		ItemID:       r.ItemID.String(),
		Buyer:        r.Buyer.String(),
		Seller:       r.Seller.String(),
		Quantity:     int64(r.Quantity),
		Settlement:   string(r.Settlement),
		PricedAsset:  int64(r.Priced.Asset),
		PricedAmount: strconv.FormatUint(uint64(r.Priced.Amount), 10),
		Total:        strconv.FormatUint(uint64(r.Total), 10),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func fromReceiptModel(m *receiptModel) (*receipt.Receipt, error) {
	receiptID, err := id.ParseReceiptID(m.ID)
	if err != nil {
		return nil, err
	}
	itemID, err := item.ParseID(m.ItemID)
	if err != nil {
		return nil, err
	}
	pricedAmount, err := strconv.ParseUint(m.PricedAmount, 10, 64)
	if err != nil {
		return nil, err
	}
	total, err := strconv.ParseUint(m.Total, 10, 64)
	if err != nil {
		return nil, err
	}

	return &receipt.Receipt{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:         receiptID,
		ItemID:     itemID,
		Buyer:      types.AccountID(m.Buyer),
		Seller:     types.AccountID(m.Seller),
		Quantity:   types.Quantity(m.Quantity),
		Settlement: receipt.Settlement(m.Settlement),
		Priced:     types.NewPrice(types.AssetID(m.PricedAsset), types.Amount(pricedAmount)),
		Total:      types.Amount(total),
	}, nil
}
