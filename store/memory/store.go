// Package memory provides an in-memory Store implementation, suitable
// for tests and single-process embedding.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/xraph/xpay"
	"github.com/xraph/xpay/id"
	"github.com/xraph/xpay/item"
	"github.com/xraph/xpay/receipt"
	"github.com/xraph/xpay/types"
)

type Store struct {
	mu sync.RWMutex

	// The four per-item tables. They are independent: relative
	// quantity mutations may create quantity rows for ids that have
	// no item row.
	items      map[item.ID]*item.Item
	owners     map[item.ID]types.AccountID
	quantities map[item.ID]types.Quantity
	prices     map[item.ID]types.Price

	// Next id to hand out.
	nextID item.ID

	// Receipt storage, insertion-ordered for listing.
	receipts     map[string]*receipt.Receipt
	receiptOrder []string
}

func New() *Store {
	return &Store{
		items:        make(map[item.ID]*item.Item),
		owners:       make(map[item.ID]types.AccountID),
		quantities:   make(map[item.ID]types.Quantity),
		prices:       make(map[item.ID]types.Price),
		receipts:     make(map[string]*receipt.Receipt),
		receiptOrder: make([]string, 0),
	}
}

// Item Store implementation
func (s *Store) InsertItem(_ context.Context, it *item.Item, owner types.AccountID, quantity types.Quantity, price types.Price) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[it.ID] = it
	s.owners[it.ID] = owner
	s.quantities[it.ID] = quantity
	s.prices[it.ID] = price
	return nil
}

func (s *Store) ItemExists(_ context.Context, itemID item.ID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.items[itemID]
	return ok, nil
}

func (s *Store) GetItem(_ context.Context, itemID item.ID) (*item.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if it, ok := s.items[itemID]; ok {
		return it, nil
	}
	return nil, xpay.ErrItemNotFound
}

func (s *Store) GetOwner(_ context.Context, itemID item.ID) (types.AccountID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if owner, ok := s.owners[itemID]; ok {
		return owner, nil
	}
	return "", xpay.ErrNoItemOwner
}

func (s *Store) GetPrice(_ context.Context, itemID item.ID) (*types.Price, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if price, ok := s.prices[itemID]; ok {
		p := price
		return &p, nil
	}
	return nil, xpay.ErrNoItemPrice
}

func (s *Store) GetQuantity(_ context.Context, itemID item.ID) (types.Quantity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Unknown ids read as zero quantity.
	return s.quantities[itemID], nil
}

func (s *Store) SetQuantity(_ context.Context, itemID item.ID, quantity types.Quantity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.quantities[itemID] = quantity
	return nil
}

func (s *Store) SetPrice(_ context.Context, itemID item.ID, price types.Price) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prices[itemID] = price
	return nil
}

// Id allocation counter
func (s *Store) NextItemID(_ context.Context) (item.ID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.nextID, nil
}

func (s *Store) SetNextItemID(_ context.Context, itemID item.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID = itemID
	return nil
}

// Receipt Store implementation
func (s *Store) CreateReceipt(_ context.Context, r *receipt.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.receipts[r.ID.String()]; !exists {
		s.receiptOrder = append(s.receiptOrder, r.ID.String())
	}
	s.receipts[r.ID.String()] = r
	return nil
}

func (s *Store) GetReceipt(_ context.Context, receiptID id.ReceiptID) (*receipt.Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.receipts[receiptID.String()]; ok {
		return r, nil
	}
	return nil, xpay.ErrReceiptNotFound
}

func (s *Store) ListReceiptsByItem(_ context.Context, itemID item.ID, opts receipt.ListOpts) ([]*receipt.Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.list(opts, func(r *receipt.Receipt) bool {
		return r.ItemID == itemID
	}), nil
}

func (s *Store) ListReceiptsByAccount(_ context.Context, account types.AccountID, opts receipt.ListOpts) ([]*receipt.Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.list(opts, func(r *receipt.Receipt) bool {
		return r.Buyer == account || r.Seller == account
	}), nil
}

// list filters receipts in insertion order and applies ListOpts.
// Callers must hold at least a read lock.
func (s *Store) list(opts receipt.ListOpts, match func(*receipt.Receipt) bool) []*receipt.Receipt {
	result := make([]*receipt.Receipt, 0)
	for _, rid := range s.receiptOrder {
		r := s.receipts[rid]
		if !match(r) {
			continue
		}
		if opts.Settlement != "" && r.Settlement != opts.Settlement {
			continue
		}
		result = append(result, r)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	// Apply limit/offset
	start := opts.Offset
	if start > len(result) {
		start = len(result)
	}
	end := start + opts.Limit
	if opts.Limit == 0 || end > len(result) {
		end = len(result)
	}

	return result[start:end]
}

// Store management
func (s *Store) Migrate(_ context.Context) error {
	return nil // No migration needed for memory store
}

func (s *Store) Ping(_ context.Context) error {
	return nil // Always available
}

func (s *Store) Close() error {
	return nil // Nothing to close
}
