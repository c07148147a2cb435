package xpay_test

import (
	"context"
	"errors"
	"testing"

	"github.com/xraph/xpay"
	"github.com/xraph/xpay/item"
	"github.com/xraph/xpay/payment"
	"github.com/xraph/xpay/receipt"
	"github.com/xraph/xpay/store/memory"
	"github.com/xraph/xpay/types"
)

// transferCall records one Transfer invocation.
type transferCall struct {
	asset    types.AssetID
	from, to types.AccountID
	amount   types.Amount
}

// fakeTransferor records transfers and optionally fails.
type fakeTransferor struct {
	calls []transferCall
	err   error
}

func (f *fakeTransferor) Transfer(_ context.Context, asset types.AssetID, from, to types.AccountID, amount types.Amount) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, transferCall{asset: asset, from: from, to: to, amount: amount})
	return nil
}

// fakeExchange records swaps and optionally fails.
type fakeExchange struct {
	rate    types.FeeRate
	rateErr error
	swaps   []payment.Swap
	swapErr error
}

func (f *fakeExchange) FeeRate(_ context.Context) (types.FeeRate, error) {
	if f.rateErr != nil {
		return 0, f.rateErr
	}
	return f.rate, nil
}

func (f *fakeExchange) SwapForOutput(_ context.Context, _, _ types.AccountID, swap payment.Swap) error {
	if f.swapErr != nil {
		return f.swapErr
	}
	f.swaps = append(f.swaps, swap)
	return nil
}

func newTestMarket(t *testing.T) (*xpay.Market, *memory.Store, *fakeTransferor, *fakeExchange) {
	t.Helper()

	store := memory.New()
	transferor := &fakeTransferor{}
	exchange := &fakeExchange{rate: 3000}

	m := xpay.New(store, transferor, exchange)
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("start market: %v", err)
	}
	t.Cleanup(func() { _ = m.Stop() })

	return m, store, transferor, exchange
}

var (
	seller = xpay.AuthenticatedCaller("acct_seller")
	buyer  = xpay.AuthenticatedCaller("acct_buyer")
)

func TestCreateItemSequence(t *testing.T) {
	m, _, _, _ := newTestMarket(t)
	ctx := context.Background()

	for want := item.ID(0); want < 3; want++ {
		got, err := m.CreateItem(ctx, seller, 10, []byte("thing"), xpay.NewPrice(1, 5))
		if err != nil {
			t.Fatalf("CreateItem: %v", err)
		}
		if got != want {
			t.Errorf("allocated id = %d, want %d", got, want)
		}
	}

	listing, err := m.Listing(ctx, 1)
	if err != nil {
		t.Fatalf("Listing: %v", err)
	}
	if listing.Owner != seller.Account {
		t.Errorf("owner = %q, want %q", listing.Owner, seller.Account)
	}
	if listing.Quantity != 10 {
		t.Errorf("quantity = %d, want 10", listing.Quantity)
	}
	if listing.Price == nil || !listing.Price.Equal(xpay.NewPrice(1, 5)) {
		t.Errorf("price = %v, want 5@asset(1)", listing.Price)
	}
	if string(listing.Item.Content) != "thing" {
		t.Errorf("content = %q, want %q", listing.Item.Content, "thing")
	}
}

func TestCreateItemIDSpaceExhausted(t *testing.T) {
	m, store, _, _ := newTestMarket(t)
	ctx := context.Background()

	if err := store.SetNextItemID(ctx, item.MaxID); err != nil {
		t.Fatal(err)
	}

	_, err := m.CreateItem(ctx, seller, 1, nil, xpay.NewPrice(1, 1))
	if !errors.Is(err, xpay.ErrIDSpaceExhausted) {
		t.Fatalf("err = %v, want ErrIDSpaceExhausted", err)
	}

	// The counter must be left untouched so the failure is stable.
	next, err := store.NextItemID(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if next != item.MaxID {
		t.Errorf("next id = %d, want unchanged %d", next, item.MaxID)
	}
}

func TestAddItemSaturates(t *testing.T) {
	m, _, _, _ := newTestMarket(t)
	ctx := context.Background()

	itemID, err := m.CreateItem(ctx, seller, xpay.MaxQuantity-5, nil, xpay.NewPrice(1, 1))
	if err != nil {
		t.Fatal(err)
	}

	if err := m.AddItem(ctx, seller, itemID, 10); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	q, err := m.ItemQuantity(ctx, itemID)
	if err != nil {
		t.Fatal(err)
	}
	if q != xpay.MaxQuantity {
		t.Errorf("quantity = %d, want clamp at %d", q, xpay.MaxQuantity)
	}
}

func TestAddItemUncreatedID(t *testing.T) {
	m, _, _, _ := newTestMarket(t)
	ctx := context.Background()

	// Relative mutations are permissive: no item record required.
	const ghost = item.ID(99)
	if err := m.AddItem(ctx, seller, ghost, 7); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	q, err := m.ItemQuantity(ctx, ghost)
	if err != nil {
		t.Fatal(err)
	}
	if q != 7 {
		t.Errorf("quantity = %d, want 7", q)
	}

	if _, err := m.Item(ctx, ghost); !errors.Is(err, xpay.ErrItemNotFound) {
		t.Errorf("Item err = %v, want ErrItemNotFound", err)
	}
}

func TestRemoveItemFloorsAtZero(t *testing.T) {
	m, _, _, _ := newTestMarket(t)
	ctx := context.Background()

	itemID, err := m.CreateItem(ctx, seller, 5, nil, xpay.NewPrice(1, 1))
	if err != nil {
		t.Fatal(err)
	}

	if err := m.RemoveItem(ctx, seller, itemID, 10); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}

	q, err := m.ItemQuantity(ctx, itemID)
	if err != nil {
		t.Fatal(err)
	}
	if q != 0 {
		t.Errorf("quantity = %d, want floor at 0", q)
	}
}

func TestUpdateItem(t *testing.T) {
	m, _, _, _ := newTestMarket(t)
	ctx := context.Background()

	itemID, err := m.CreateItem(ctx, seller, 10, nil, xpay.NewPrice(1, 5))
	if err != nil {
		t.Fatal(err)
	}

	newQuantity := types.Quantity(40)
	newPrice := xpay.NewPrice(2, 9)
	if err := m.UpdateItem(ctx, seller, itemID, &newQuantity, &newPrice); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	q, _ := m.ItemQuantity(ctx, itemID)
	if q != 40 {
		t.Errorf("quantity = %d, want 40", q)
	}
	p, err := m.ItemPrice(ctx, itemID)
	if err != nil {
		t.Fatal(err)
	}
	if !p.Equal(newPrice) {
		t.Errorf("price = %v, want %v", p, newPrice)
	}

	// nil fields leave the current value in place.
	if err := m.UpdateItem(ctx, seller, itemID, nil, nil); err != nil {
		t.Fatalf("UpdateItem no-op: %v", err)
	}
	q, _ = m.ItemQuantity(ctx, itemID)
	if q != 40 {
		t.Errorf("quantity after no-op = %d, want 40", q)
	}
}

func TestUpdateItemUncreatedID(t *testing.T) {
	m, _, _, _ := newTestMarket(t)
	ctx := context.Background()

	const ghost = item.ID(5)
	newQuantity := types.Quantity(40)
	err := m.UpdateItem(ctx, seller, ghost, &newQuantity, nil)
	if !errors.Is(err, xpay.ErrItemNotFound) {
		t.Fatalf("err = %v, want ErrItemNotFound", err)
	}

	// Unlike AddItem, the failed update must not write anything.
	q, _ := m.ItemQuantity(ctx, ghost)
	if q != 0 {
		t.Errorf("quantity = %d, want untouched 0", q)
	}
}

func TestPurchaseSameAsset(t *testing.T) {
	m, _, transferor, _ := newTestMarket(t)
	ctx := context.Background()

	itemID, err := m.CreateItem(ctx, seller, 100, nil, xpay.NewPrice(1, 10))
	if err != nil {
		t.Fatal(err)
	}

	// 5 × 10 = 50; an offer of 51 strictly exceeds the total.
	if err := m.PurchaseItem(ctx, buyer, 5, itemID, xpay.NewPrice(1, 51)); err != nil {
		t.Fatalf("PurchaseItem: %v", err)
	}

	q, _ := m.ItemQuantity(ctx, itemID)
	if q != 95 {
		t.Errorf("quantity = %d, want 95", q)
	}

	if len(transferor.calls) != 1 {
		t.Fatalf("transfers = %d, want 1", len(transferor.calls))
	}
	call := transferor.calls[0]
	want := transferCall{asset: 1, from: buyer.Account, to: seller.Account, amount: 50}
	if call != want {
		t.Errorf("transfer = %+v, want %+v", call, want)
	}

	// An offer exactly equal to the total is not enough.
	err = m.PurchaseItem(ctx, buyer, 5, itemID, xpay.NewPrice(1, 50))
	if !errors.Is(err, xpay.ErrPriceTooLow) {
		t.Fatalf("err = %v, want ErrPriceTooLow", err)
	}
	q, _ = m.ItemQuantity(ctx, itemID)
	if q != 95 {
		t.Errorf("quantity after rejection = %d, want 95", q)
	}
}

func TestPurchaseCrossAsset(t *testing.T) {
	m, _, transferor, exchange := newTestMarket(t)
	ctx := context.Background()

	itemID, err := m.CreateItem(ctx, seller, 100, nil, xpay.NewPrice(1, 10))
	if err != nil {
		t.Fatal(err)
	}

	if err := m.PurchaseItem(ctx, buyer, 5, itemID, xpay.NewPrice(2, 100)); err != nil {
		t.Fatalf("PurchaseItem: %v", err)
	}

	if len(transferor.calls) != 0 {
		t.Errorf("unexpected direct transfers: %+v", transferor.calls)
	}
	if len(exchange.swaps) != 1 {
		t.Fatalf("swaps = %d, want 1", len(exchange.swaps))
	}
	swap := exchange.swaps[0]
	want := payment.Swap{
		AssetOffered: 2,
		MaxOffered:   100,
		AssetWanted:  1,
		AmountWanted: 10,
		FeeRate:      3000,
	}
	if swap != want {
		t.Errorf("swap = %+v, want %+v", swap, want)
	}

	q, _ := m.ItemQuantity(ctx, itemID)
	if q != 95 {
		t.Errorf("quantity = %d, want 95", q)
	}
}

func TestPurchaseInsufficientQuantity(t *testing.T) {
	m, _, transferor, _ := newTestMarket(t)
	ctx := context.Background()

	itemID, err := m.CreateItem(ctx, seller, 3, nil, xpay.NewPrice(1, 10))
	if err != nil {
		t.Fatal(err)
	}

	err = m.PurchaseItem(ctx, buyer, 5, itemID, xpay.NewPrice(1, 100))
	if !errors.Is(err, xpay.ErrInsufficientQuantity) {
		t.Fatalf("err = %v, want ErrInsufficientQuantity", err)
	}

	q, _ := m.ItemQuantity(ctx, itemID)
	if q != 3 {
		t.Errorf("quantity = %d, want untouched 3", q)
	}
	if len(transferor.calls) != 0 {
		t.Errorf("unexpected transfers: %+v", transferor.calls)
	}
}

func TestPurchaseUnpricedItem(t *testing.T) {
	m, store, _, _ := newTestMarket(t)
	ctx := context.Background()

	// Quantity-only rows exist but can never be bought.
	const ghost = item.ID(12)
	if err := store.SetQuantity(ctx, ghost, 10); err != nil {
		t.Fatal(err)
	}

	err := m.PurchaseItem(ctx, buyer, 1, ghost, xpay.NewPrice(1, 100))
	if !errors.Is(err, xpay.ErrNoItemPrice) {
		t.Fatalf("err = %v, want ErrNoItemPrice", err)
	}
}

func TestPurchaseTotalOverflow(t *testing.T) {
	m, _, _, _ := newTestMarket(t)
	ctx := context.Background()

	itemID, err := m.CreateItem(ctx, seller, 100, nil, xpay.NewPrice(1, xpay.MaxAmount))
	if err != nil {
		t.Fatal(err)
	}

	err = m.PurchaseItem(ctx, buyer, 2, itemID, xpay.NewPrice(1, xpay.MaxAmount))
	if !errors.Is(err, xpay.ErrTotalPriceOverflow) {
		t.Fatalf("err = %v, want ErrTotalPriceOverflow", err)
	}

	q, _ := m.ItemQuantity(ctx, itemID)
	if q != 100 {
		t.Errorf("quantity = %d, want untouched 100", q)
	}
}

func TestPurchasePaymentFailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()

	t.Run("DirectTransferFails", func(t *testing.T) {
		m, _, transferor, _ := newTestMarket(t)

		itemID, err := m.CreateItem(ctx, seller, 100, nil, xpay.NewPrice(1, 10))
		if err != nil {
			t.Fatal(err)
		}

		transferor.err = errors.New("insufficient balance")
		err = m.PurchaseItem(ctx, buyer, 5, itemID, xpay.NewPrice(1, 51))
		if !errors.Is(err, transferor.err) {
			t.Fatalf("err = %v, want transferor failure verbatim", err)
		}

		q, _ := m.ItemQuantity(ctx, itemID)
		if q != 100 {
			t.Errorf("quantity = %d, want untouched 100", q)
		}
	})

	t.Run("SwapFails", func(t *testing.T) {
		m, _, _, exchange := newTestMarket(t)

		itemID, err := m.CreateItem(ctx, seller, 100, nil, xpay.NewPrice(1, 10))
		if err != nil {
			t.Fatal(err)
		}

		exchange.swapErr = errors.New("no liquidity")
		err = m.PurchaseItem(ctx, buyer, 5, itemID, xpay.NewPrice(2, 100))
		if !errors.Is(err, exchange.swapErr) {
			t.Fatalf("err = %v, want exchange failure verbatim", err)
		}

		q, _ := m.ItemQuantity(ctx, itemID)
		if q != 100 {
			t.Errorf("quantity = %d, want untouched 100", q)
		}
	})

	t.Run("FeeRateFails", func(t *testing.T) {
		m, _, _, exchange := newTestMarket(t)

		itemID, err := m.CreateItem(ctx, seller, 100, nil, xpay.NewPrice(1, 10))
		if err != nil {
			t.Fatal(err)
		}

		exchange.rateErr = errors.New("oracle offline")
		err = m.PurchaseItem(ctx, buyer, 5, itemID, xpay.NewPrice(2, 100))
		if !errors.Is(err, exchange.rateErr) {
			t.Fatalf("err = %v, want fee rate failure wrapped", err)
		}

		q, _ := m.ItemQuantity(ctx, itemID)
		if q != 100 {
			t.Errorf("quantity = %d, want untouched 100", q)
		}
	})
}

func TestPurchaseRecordsReceipt(t *testing.T) {
	m, _, _, _ := newTestMarket(t)
	ctx := context.Background()

	itemID, err := m.CreateItem(ctx, seller, 100, nil, xpay.NewPrice(1, 10))
	if err != nil {
		t.Fatal(err)
	}

	if err := m.PurchaseItem(ctx, buyer, 5, itemID, xpay.NewPrice(1, 51)); err != nil {
		t.Fatal(err)
	}
	if err := m.PurchaseItem(ctx, buyer, 3, itemID, xpay.NewPrice(2, 100)); err != nil {
		t.Fatal(err)
	}

	receipts, err := m.ReceiptsByItem(ctx, itemID, receipt.ListOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(receipts) != 2 {
		t.Fatalf("receipts = %d, want 2", len(receipts))
	}

	first := receipts[0]
	if first.Settlement != receipt.SettlementDirect {
		t.Errorf("settlement = %q, want direct", first.Settlement)
	}
	if first.Buyer != buyer.Account || first.Seller != seller.Account {
		t.Errorf("parties = %q/%q, want %q/%q", first.Buyer, first.Seller, buyer.Account, seller.Account)
	}
	if first.Quantity != 5 || first.Total != 50 {
		t.Errorf("quantity/total = %d/%d, want 5/50", first.Quantity, first.Total)
	}

	if receipts[1].Settlement != receipt.SettlementSwap {
		t.Errorf("second settlement = %q, want swap", receipts[1].Settlement)
	}

	swaps, err := m.ReceiptsByItem(ctx, itemID, receipt.ListOpts{Settlement: receipt.SettlementSwap})
	if err != nil {
		t.Fatal(err)
	}
	if len(swaps) != 1 {
		t.Errorf("swap receipts = %d, want 1", len(swaps))
	}

	byBuyer, err := m.ReceiptsByAccount(ctx, buyer.Account, receipt.ListOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(byBuyer) != 2 {
		t.Errorf("receipts by buyer = %d, want 2", len(byBuyer))
	}

	got, err := m.Receipt(ctx, first.ID)
	if err != nil {
		t.Fatalf("Receipt: %v", err)
	}
	if got.ID.String() != first.ID.String() {
		t.Errorf("receipt id = %s, want %s", got.ID, first.ID)
	}
}
