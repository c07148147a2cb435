package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/sqlitedriver"
	"github.com/xraph/grove/migrate"

	xpay "github.com/xraph/xpay"
	"github.com/xraph/xpay/id"
	"github.com/xraph/xpay/item"
	"github.com/xraph/xpay/receipt"
	xpaystore "github.com/xraph/xpay/store"
	"github.com/xraph/xpay/types"
)

// compile-time interface check
var _ xpaystore.Store = (*Store)(nil)

// Store implements store.Store using SQLite via Grove ORM.
type Store struct {
	db  *grove.DB
	sdb *sqlitedriver.SqliteDB
}

// New creates a new SQLite store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		sdb: sqlitedriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates the required tables and indexes using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.sdb)
	if err != nil {
		return fmt.Errorf("xpay/sqlite: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("xpay/sqlite: migration failed: %w", err)
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
	if _, err := s.sdb.NewInsert(m).Exec(ctx); err != nil {
		return err
	}

	om := &ownerModel{ItemID: it.ID.String(), Owner: owner.String()}
	if _, err := s.sdb.NewInsert(om).
		OnConflict("(item_id) DO UPDATE").
		Set("owner = EXCLUDED.owner").
		Exec(ctx); err != nil {
		return err
	}

	// A quantity row may already exist: relative mutations write rows
	// for ids the allocator has not reached yet.
	if err := s.SetQuantity(ctx, it.ID, quantity); err != nil {
		return err
	}

	return s.SetPrice(ctx, it.ID, price)
}

func (s *Store) ItemExists(ctx context.Context, itemID item.ID) (bool, error) {
	m := new(itemModel)
	err := s.sdb.NewSelect(m).
		Where("item_id = ?", itemID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Store) GetItem(ctx context.Context, itemID item.ID) (*item.Item, error) {
	m := new(itemModel)
	err := s.sdb.NewSelect(m).
		Where("item_id = ?", itemID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, xpay.ErrItemNotFound
		}
		return nil, err
	}
	return fromItemModel(m)
}

func (s *Store) GetOwner(ctx context.Context, itemID item.ID) (types.AccountID, error) {
	m := new(ownerModel)
	err := s.sdb.NewSelect(m).
		Where("item_id = ?", itemID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return "", xpay.ErrNoItemOwner
		}
		return "", err
	}
	return types.AccountID(m.Owner), nil
}

func (s *Store) GetPrice(ctx context.Context, itemID item.ID) (*types.Price, error) {
	m := new(priceModel)
	err := s.sdb.NewSelect(m).
		Where("item_id = ?", itemID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, xpay.ErrNoItemPrice
		}
		return nil, err
	}
	return fromPriceModel(m)
}

func (s *Store) GetQuantity(ctx context.Context, itemID item.ID) (types.Quantity, error) {
	m := new(quantityModel)
	err := s.sdb.NewSelect(m).
		Where("item_id = ?", itemID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			// Unknown ids read as zero quantity.
			return 0, nil
		}
		return 0, err
	}
	return types.Quantity(m.Quantity), nil
}

func (s *Store) SetQuantity(ctx context.Context, itemID item.ID, quantity types.Quantity) error {
	m := &quantityModel{ItemID: itemID.String(), Quantity: int64(quantity)}
	_, err := s.sdb.NewInsert(m).
		OnConflict("(item_id) DO UPDATE").
		Set("quantity = EXCLUDED.quantity").
		Exec(ctx)
	return err
}

func (s *Store) SetPrice(ctx context.Context, itemID item.ID, price types.Price) error {
	m := toPriceModel(itemID, price)
	_, err := s.sdb.NewInsert(m).
		OnConflict("(item_id) DO UPDATE").
		Set("asset_id = EXCLUDED.asset_id").
		Set("amount = EXCLUDED.amount").
		Exec(ctx)
	return err
}

// ==================== Id allocation counter ====================

func (s *Store) NextItemID(ctx context.Context) (item.ID, error) {
	m := new(counterModel)
	err := s.sdb.NewSelect(m).
		Where("name = ?", counterNextItemID).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			// A fresh store starts allocating at zero.
			return 0, nil
		}
		return 0, err
	}

	value, err := strconv.ParseUint(m.Value, 10, 64)
	if err != nil {
		return 0, err
	}
	return item.ID(value), nil
}

func (s *Store) SetNextItemID(ctx context.Context, itemID item.ID) error {
	m := &counterModel{Name: counterNextItemID, Value: itemID.String()}
	_, err := s.sdb.NewInsert(m).
		OnConflict("(name) DO UPDATE").
		Set("value = EXCLUDED.value").
		Exec(ctx)
	return err
}

// ==================== Receipt Store ====================

func (s *Store) CreateReceipt(ctx context.Context, r *receipt.Receipt) error {
	m := toReceiptModel(r)
	_, err := s.sdb.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetReceipt(ctx context.Context, receiptID id.ReceiptID) (*receipt.Receipt, error) {
	m := new(receiptModel)
	err := s.sdb.NewSelect(m).
		Where("id = ?", receiptID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, xpay.ErrReceiptNotFound
		}
		return nil, err
	}
	return fromReceiptModel(m)
}

func (s *Store) ListReceiptsByItem(ctx context.Context, itemID item.ID, opts receipt.ListOpts) ([]*receipt.Receipt, error) {
	var models []receiptModel
	q := s.sdb.NewSelect(&models).Where("item_id = ?", itemID.String())

	if opts.Settlement != "" {
		q = q.Where("settlement = ?", string(opts.Settlement))
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("created_at ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return fromReceiptModels(models)
}

func (s *Store) ListReceiptsByAccount(ctx context.Context, account types.AccountID, opts receipt.ListOpts) ([]*receipt.Receipt, error) {
	var models []receiptModel
	q := s.sdb.NewSelect(&models).
		Where("(buyer = ? OR seller = ?)", account.String(), account.String())

	if opts.Settlement != "" {
		q = q.Where("settlement = ?", string(opts.Settlement))
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("created_at ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return fromReceiptModels(models)
}

func fromReceiptModels(models []receiptModel) ([]*receipt.Receipt, error) {
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

// isNoRows checks for the standard sql.ErrNoRows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
