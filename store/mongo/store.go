package mongo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	xpay "github.com/xraph/xpay"
	"github.com/xraph/xpay/id"
	"github.com/xraph/xpay/item"
	"github.com/xraph/xpay/receipt"
	xpaystore "github.com/xraph/xpay/store"
	"github.com/xraph/xpay/types"
)

// Collection name constants.
const (
	colItems      = "xpay_items"
	colOwners     = "xpay_item_owners"
	colQuantities = "xpay_item_quantities"
	colPrices     = "xpay_item_prices"
	colCounters   = "xpay_counters"
	colReceipts   = "xpay_receipts"
)

// compile-time interface check
var _ xpaystore.Store = (*Store)(nil)

// Store implements store.Store using MongoDB via Grove ORM.
type Store struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates indexes for all xpay collections.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := migrationIndexes()

	for col, models := range indexes {
		if len(models) == 0 {
			continue
		}
		_, err := s.mdb.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("xpay/mongo: migrate %s indexes: %w", col, err)
		}
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ==================== Item Store ====================

func (s *Store) InsertItem(ctx context.Context, it *item.Item, owner types.AccountID, quantity types.Quantity, price types.Price) error {
	m := toItemModel(it)
	if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
		return fmt.Errorf("xpay/mongo: insert item: %w", err)
	}

	key := it.ID.String()
	_, err := s.mdb.NewUpdate((*ownerModel)(nil)).
		Filter(bson.M{"_id": key}).
		SetUpdate(bson.M{"$set": bson.M{
			"_id":   key,
			"owner": owner.String(),
		}}).
		Upsert().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("xpay/mongo: insert item owner: %w", err)
	}

	// A quantity document may already exist: relative mutations write
	// documents for ids the allocator has not reached yet.
	if err := s.SetQuantity(ctx, it.ID, quantity); err != nil {
		return err
	}

	return s.SetPrice(ctx, it.ID, price)
}

func (s *Store) ItemExists(ctx context.Context, itemID item.ID) (bool, error) {
	var m itemModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": itemID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return false, nil
		}
		return false, fmt.Errorf("xpay/mongo: item exists: %w", err)
	}
	return true, nil
}

func (s *Store) GetItem(ctx context.Context, itemID item.ID) (*item.Item, error) {
	var m itemModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": itemID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, xpay.ErrItemNotFound
		}
		return nil, fmt.Errorf("xpay/mongo: get item: %w", err)
	}
	return fromItemModel(&m)
}

func (s *Store) GetOwner(ctx context.Context, itemID item.ID) (types.AccountID, error) {
	var m ownerModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": itemID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return "", xpay.ErrNoItemOwner
		}
		return "", fmt.Errorf("xpay/mongo: get owner: %w", err)
	}
	return types.AccountID(m.Owner), nil
}

func (s *Store) GetPrice(ctx context.Context, itemID item.ID) (*types.Price, error) {
	var m priceModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": itemID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, xpay.ErrNoItemPrice
		}
		return nil, fmt.Errorf("xpay/mongo: get price: %w", err)
	}
	return fromPriceModel(&m)
}

func (s *Store) GetQuantity(ctx context.Context, itemID item.ID) (types.Quantity, error) {
	var m quantityModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": itemID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			// Unknown ids read as zero quantity.
			return 0, nil
		}
		return 0, fmt.Errorf("xpay/mongo: get quantity: %w", err)
	}
	return types.Quantity(m.Quantity), nil
}

func (s *Store) SetQuantity(ctx context.Context, itemID item.ID, quantity types.Quantity) error {
	key := itemID.String()
	_, err := s.mdb.NewUpdate((*quantityModel)(nil)).
		Filter(bson.M{"_id": key}).
		SetUpdate(bson.M{"$set": bson.M{
			"_id":      key,
			"quantity": int64(quantity),
		}}).
		Upsert().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("xpay/mongo: set quantity: %w", err)
	}
	return nil
}

func (s *Store) SetPrice(ctx context.Context, itemID item.ID, price types.Price) error {
	key := itemID.String()
	_, err := s.mdb.NewUpdate((*priceModel)(nil)).
		Filter(bson.M{"_id": key}).
		SetUpdate(bson.M{"$set": bson.M{
			"_id":      key,
			"asset_id": int64(price.Asset),
			"amount":   strconv.FormatUint(uint64(price.Amount), 10),
		}}).
		Upsert().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("xpay/mongo: set price: %w", err)
	}
	return nil
}

// ==================== Id allocation counter ====================

func (s *Store) NextItemID(ctx context.Context) (item.ID, error) {
	var m counterModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": counterNextItemID}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			// A fresh store starts allocating at zero.
			return 0, nil
		}
		return 0, fmt.Errorf("xpay/mongo: next item id: %w", err)
	}

	value, err := strconv.ParseUint(m.Value, 10, 64)
	if err != nil {
		return 0, err
	}
	return item.ID(value), nil
}

func (s *Store) SetNextItemID(ctx context.Context, itemID item.ID) error {
	_, err := s.mdb.NewUpdate((*counterModel)(nil)).
		Filter(bson.M{"_id": counterNextItemID}).
		SetUpdate(bson.M{"$set": bson.M{
			"_id":   counterNextItemID,
			"value": itemID.String(),
		}}).
		Upsert().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("xpay/mongo: set next item id: %w", err)
	}
	return nil
}

// ==================== Receipt Store ====================

func (s *Store) CreateReceipt(ctx context.Context, r *receipt.Receipt) error {
	m := toReceiptModel(r)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("xpay/mongo: create receipt: %w", err)
	}
	return nil
}

func (s *Store) GetReceipt(ctx context.Context, receiptID id.ReceiptID) (*receipt.Receipt, error) {
	var m receiptModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": receiptID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, xpay.ErrReceiptNotFound
		}
		return nil, fmt.Errorf("xpay/mongo: get receipt: %w", err)
	}
	return fromReceiptModel(&m)
}

func (s *Store) ListReceiptsByItem(ctx context.Context, itemID item.ID, opts receipt.ListOpts) ([]*receipt.Receipt, error) {
	filter := bson.M{"item_id": itemID.String()}
	return s.listReceipts(ctx, filter, opts)
}

func (s *Store) ListReceiptsByAccount(ctx context.Context, account types.AccountID, opts receipt.ListOpts) ([]*receipt.Receipt, error) {
	filter := bson.M{"$or": []bson.M{
		{"buyer": account.String()},
		{"seller": account.String()},
	}}
	return s.listReceipts(ctx, filter, opts)
}

func (s *Store) listReceipts(ctx context.Context, filter bson.M, opts receipt.ListOpts) ([]*receipt.Receipt, error) {
	if opts.Settlement != "" {
		filter["settlement"] = string(opts.Settlement)
	}

	var models []receiptModel
	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "created_at", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("xpay/mongo: list receipts: %w", err)
	}

	result := make([]*receipt.Receipt, len(models))
	for i := range models {
		r, err := fromReceiptModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = r
	}
	return result, nil
}

// ==================== Helpers ====================

// isNoDocuments checks for the mongo ErrNoDocuments sentinel.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// migrationIndexes declares the secondary indexes per collection.
func migrationIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		colItems:      {},
		colOwners:     {},
		colQuantities: {},
		colPrices:     {},
		colCounters:   {},
		colReceipts: {
			{Keys: bson.D{{Key: "item_id", Value: 1}, {Key: "created_at", Value: 1}}},
			{Keys: bson.D{{Key: "buyer", Value: 1}, {Key: "created_at", Value: 1}}},
			{Keys: bson.D{{Key: "seller", Value: 1}, {Key: "created_at", Value: 1}}},
			{Keys: bson.D{{Key: "settlement", Value: 1}}},
		},
	}
}
