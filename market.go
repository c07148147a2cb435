package xpay

import (
	"context"
	"errors"
	"log/slog"

	"github.com/xraph/xpay/id"
	"github.com/xraph/xpay/item"
	"github.com/xraph/xpay/payment"
	"github.com/xraph/xpay/plugin"
	"github.com/xraph/xpay/receipt"
	"github.com/xraph/xpay/store"
	"github.com/xraph/xpay/types"
)

// Market is the marketplace settlement engine.
//
// Every operation is a single synchronous state transition. The engine
// assumes the enclosing runtime serializes calls per item and commits
// or discards the whole unit of work; it runs no background workers
// and takes no locks of its own.
type Market struct {
	store      store.Store
	transferor payment.Transferor
	exchange   payment.Exchange
	plugins    *plugin.Registry
	logger     *slog.Logger
}

// New creates a new Market. The transferor settles same-asset
// purchases; the exchange settles cross-asset purchases and supplies
// the current fee rate.
func New(s store.Store, transferor payment.Transferor, exchange payment.Exchange, opts ...Option) *Market {
	m := &Market{
		store:      s,
		transferor: transferor,
		exchange:   exchange,
		plugins:    plugin.NewRegistry(),
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Option configures a Market instance.
type Option func(*Market)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Market) {
		m.logger = logger
		m.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(m *Market) {
		_ = m.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// Start migrates the store and initializes plugins.
func (m *Market) Start(ctx context.Context) error {
	if err := m.store.Migrate(ctx); err != nil {
		return err
	}

	m.plugins.EmitInit(ctx, m)

	m.logger.Info("market started", "plugins", m.plugins.Count())

	return nil
}

// Stop shuts down the Market.
func (m *Market) Stop() error {
	m.plugins.EmitShutdown(context.Background())

	return m.store.Close()
}

// Plugins returns the plugin registry.
func (m *Market) Plugins() *plugin.Registry { return m.plugins }

// ──────────────────────────────────────────────────
// Listing management
// ──────────────────────────────────────────────────

// CreateItem lists a new item for the caller: it allocates the next
// item id, registers content, owner, quantity and price under it, and
// returns the id. The only failure mode of its own is id-space
// exhaustion; the allocation counter is left unchanged in that case.
func (m *Market) CreateItem(ctx context.Context, caller types.Caller, quantity types.Quantity, content []byte, price types.Price) (item.ID, error) {
	itemID, err := m.store.NextItemID(ctx)
	if err != nil {
		return 0, err
	}

	// The last representable id serves as the overflow mark and is
	// never assigned.
	next, ok := itemID.Next()
	if !ok {
		return 0, ErrIDSpaceExhausted
	}

	if err := m.store.SetNextItemID(ctx, next); err != nil {
		return 0, err
	}

	it := &item.Item{
		Entity:  types.NewEntity(),
		ID:      itemID,
		Content: content,
	}
	if err := m.store.InsertItem(ctx, it, caller.Account, quantity, price); err != nil {
		return 0, err
	}

	m.plugins.EmitItemCreated(ctx, &ItemCreated{
		Caller:   caller,
		ItemID:   itemID,
		Quantity: quantity,
		Content:  content,
		Price:    price,
	})

	return itemID, nil
}

// AddItem increases a listing's quantity, clamping at the type
// maximum. The item record is deliberately not checked: adding to an
// id that was never created writes a bare quantity row, and readers
// treat such ids as "not listed".
func (m *Market) AddItem(ctx context.Context, caller types.Caller, itemID item.ID, delta types.Quantity) error {
	current, err := m.store.GetQuantity(ctx, itemID)
	if err != nil {
		return err
	}

	quantity := current.SaturatingAdd(delta)
	if err := m.store.SetQuantity(ctx, itemID, quantity); err != nil {
		return err
	}

	m.plugins.EmitItemAdded(ctx, &ItemAdded{
		Caller:   caller,
		ItemID:   itemID,
		Quantity: quantity,
	})

	return nil
}

// RemoveItem decreases a listing's quantity, flooring at zero. It
// never fails on underflow and carries the same no-existence-check
// behavior as AddItem.
func (m *Market) RemoveItem(ctx context.Context, caller types.Caller, itemID item.ID, delta types.Quantity) error {
	current, err := m.store.GetQuantity(ctx, itemID)
	if err != nil {
		return err
	}

	quantity := current.SaturatingSub(delta)
	if err := m.store.SetQuantity(ctx, itemID, quantity); err != nil {
		return err
	}

	m.plugins.EmitItemRemoved(ctx, &ItemRemoved{
		Caller:   caller,
		ItemID:   itemID,
		Quantity: quantity,
	})

	return nil
}

// UpdateItem overwrites a listing's quantity and/or price absolutely.
// Unlike AddItem/RemoveItem it requires the item record to exist.
// Passing nil leaves the corresponding value untouched.
func (m *Market) UpdateItem(ctx context.Context, caller types.Caller, itemID item.ID, quantity *types.Quantity, price *types.Price) error {
	exists, err := m.store.ItemExists(ctx, itemID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrItemNotFound
	}

	if quantity != nil {
		if err := m.store.SetQuantity(ctx, itemID, *quantity); err != nil {
			return err
		}
	}
	if price != nil {
		if err := m.store.SetPrice(ctx, itemID, *price); err != nil {
			return err
		}
	}

	newQuantity, err := m.store.GetQuantity(ctx, itemID)
	if err != nil {
		return err
	}

	// Creation always sets a price, so a missing price here is a
	// broken invariant, not caller error.
	newPrice, err := m.store.GetPrice(ctx, itemID)
	if err != nil {
		return err
	}

	m.plugins.EmitItemUpdated(ctx, &ItemUpdated{
		Caller:   caller,
		ItemID:   itemID,
		Quantity: newQuantity,
		Price:    *newPrice,
	})

	return nil
}

// ──────────────────────────────────────────────────
// Purchase settlement
// ──────────────────────────────────────────────────

// PurchaseItem buys quantity units of an item, paying up to maxTotal.
// If maxTotal is denominated in the listing's asset the purchase is a
// direct transfer; otherwise the exchange converts the buyer's asset.
//
// The remaining quantity is computed up front but written only after
// the payment collaborator reports success: a failed transfer or swap
// leaves registry state byte-for-byte unchanged.
func (m *Market) PurchaseItem(ctx context.Context, buyer types.Caller, quantity types.Quantity, itemID item.ID, maxTotal types.Price) error {
	fail := func(err error) error {
		m.plugins.EmitPurchaseFailed(ctx, &PurchaseFailed{
			Buyer:    buyer,
			ItemID:   itemID,
			Quantity: quantity,
		}, err)
		return err
	}

	current, err := m.store.GetQuantity(ctx, itemID)
	if err != nil {
		return err
	}
	remaining, ok := current.CheckedSub(quantity)
	if !ok {
		return fail(ErrInsufficientQuantity)
	}

	price, err := m.store.GetPrice(ctx, itemID)
	if err != nil {
		return fail(err)
	}

	seller, err := m.store.GetOwner(ctx, itemID)
	if err != nil {
		return fail(err)
	}

	quote, total, err := payment.Resolve(ctx, *price, maxTotal, quantity, m.exchange)
	if err != nil {
		return fail(err)
	}

	if err := payment.Settle(ctx, quote, buyer.Account, seller, m.transferor, m.exchange); err != nil {
		return fail(err)
	}

	// Payment has settled; the inventory write must follow.
	if err := m.store.SetQuantity(ctx, itemID, remaining); err != nil {
		return err
	}

	m.recordReceipt(ctx, quote, itemID, buyer.Account, seller, quantity, *price, total)

	m.plugins.EmitItemSold(ctx, &ItemSold{
		Buyer:    buyer,
		ItemID:   itemID,
		Quantity: quantity,
	})

	return nil
}

// recordReceipt persists an advisory receipt for a settled purchase.
// Receipt failures never unwind the purchase.
func (m *Market) recordReceipt(ctx context.Context, quote payment.Quote, itemID item.ID, buyer, seller types.AccountID, quantity types.Quantity, priced types.Price, total types.Amount) {
	settlement := receipt.SettlementDirect
	if _, ok := quote.(payment.Swap); ok {
		settlement = receipt.SettlementSwap
	}

	r := &receipt.Receipt{
		Entity:     types.NewEntity(),
		ID:         id.NewReceiptID(),
		ItemID:     itemID,
		Buyer:      buyer,
		Seller:     seller,
		Quantity:   quantity,
		Settlement: settlement,
		Priced:     priced,
		Total:      total,
	}

	if err := m.store.CreateReceipt(ctx, r); err != nil {
		m.logger.Warn("failed to record purchase receipt",
			"item_id", itemID,
			"buyer", buyer,
			"error", err,
		)
		return
	}

	m.plugins.EmitReceiptRecorded(ctx, r)
}

// ──────────────────────────────────────────────────
// Queries
// ──────────────────────────────────────────────────

// Item returns the item record.
func (m *Market) Item(ctx context.Context, itemID item.ID) (*item.Item, error) {
	return m.store.GetItem(ctx, itemID)
}

// ItemOwner returns the listing's owner.
func (m *Market) ItemOwner(ctx context.Context, itemID item.ID) (types.AccountID, error) {
	return m.store.GetOwner(ctx, itemID)
}

// ItemQuantity returns the listed quantity, 0 for unknown ids.
func (m *Market) ItemQuantity(ctx context.Context, itemID item.ID) (types.Quantity, error) {
	return m.store.GetQuantity(ctx, itemID)
}

// ItemPrice returns the listing's unit price.
func (m *Market) ItemPrice(ctx context.Context, itemID item.ID) (*types.Price, error) {
	return m.store.GetPrice(ctx, itemID)
}

// Listing returns the composite view of one item across all four
// tables. The price is nil when only bare quantity rows exist.
func (m *Market) Listing(ctx context.Context, itemID item.ID) (*item.Listing, error) {
	it, err := m.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	owner, err := m.store.GetOwner(ctx, itemID)
	if err != nil {
		return nil, err
	}

	quantity, err := m.store.GetQuantity(ctx, itemID)
	if err != nil {
		return nil, err
	}

	price, err := m.store.GetPrice(ctx, itemID)
	if err != nil && !errors.Is(err, ErrNoItemPrice) {
		return nil, err
	}

	return &item.Listing{
		Item:     it,
		Owner:    owner,
		Quantity: quantity,
		Price:    price,
	}, nil
}

// Receipt returns one purchase receipt.
func (m *Market) Receipt(ctx context.Context, receiptID id.ReceiptID) (*receipt.Receipt, error) {
	return m.store.GetReceipt(ctx, receiptID)
}

// ReceiptsByItem lists receipts for one item.
func (m *Market) ReceiptsByItem(ctx context.Context, itemID item.ID, opts receipt.ListOpts) ([]*receipt.Receipt, error) {
	return m.store.ListReceiptsByItem(ctx, itemID, opts)
}

// ReceiptsByAccount lists receipts where account bought or sold.
func (m *Market) ReceiptsByAccount(ctx context.Context, account types.AccountID, opts receipt.ListOpts) ([]*receipt.Receipt, error) {
	return m.store.ListReceiptsByAccount(ctx, account, opts)
}
