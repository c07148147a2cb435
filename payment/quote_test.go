package payment

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/xraph/xpay/types"
)

type stubExchange struct {
	rate      types.FeeRate
	rateErr   error
	swapErr   error
	swapCalls []Swap
}

func (e *stubExchange) SwapForOutput(_ context.Context, _, _ types.AccountID, swap Swap) error {
	e.swapCalls = append(e.swapCalls, swap)
	return e.swapErr
}

func (e *stubExchange) FeeRate(_ context.Context) (types.FeeRate, error) {
	return e.rate, e.rateErr
}

func TestResolveSameAsset(t *testing.T) {
	ex := &stubExchange{rate: 3000}
	price := types.NewPrice(1, 10)

	q, total, err := Resolve(context.Background(), price, types.NewPrice(1, 51), 5, ex)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if total != 50 {
		t.Errorf("total: got %d, want 50", total)
	}

	direct, ok := q.(Direct)
	if !ok {
		t.Fatalf("expected Direct quote, got %T", q)
	}
	if direct.Asset != 1 || direct.Amount != 50 {
		t.Errorf("direct quote: got %+v", direct)
	}
}

func TestResolveRejectsExactOffer(t *testing.T) {
	// The max must strictly exceed the total; an exact-match offer is
	// rejected.
	ex := &stubExchange{}
	price := types.NewPrice(1, 10)

	_, _, err := Resolve(context.Background(), price, types.NewPrice(1, 50), 5, ex)
	if !errors.Is(err, ErrPriceTooLow) {
		t.Fatalf("expected ErrPriceTooLow, got %v", err)
	}
}

func TestResolveTotalOverflow(t *testing.T) {
	ex := &stubExchange{}
	price := types.NewPrice(1, math.MaxUint64/2)

	_, _, err := Resolve(context.Background(), price, types.NewPrice(1, 100), 3, ex)
	if !errors.Is(err, ErrTotalPriceOverflow) {
		t.Fatalf("expected ErrTotalPriceOverflow, got %v", err)
	}
}

func TestResolveCrossAsset(t *testing.T) {
	ex := &stubExchange{rate: 3000}
	price := types.NewPrice(1, 10)

	q, total, err := Resolve(context.Background(), price, types.NewPrice(2, 1000), 5, ex)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if total != 50 {
		t.Errorf("total: got %d, want 50", total)
	}

	swap, ok := q.(Swap)
	if !ok {
		t.Fatalf("expected Swap quote, got %T", q)
	}
	want := Swap{
		AssetOffered: 2,
		MaxOffered:   1000,
		AssetWanted:  1,
		AmountWanted: 10,
		FeeRate:      3000,
	}
	if swap != want {
		t.Errorf("swap quote: got %+v, want %+v", swap, want)
	}
}

func TestResolveCrossAssetFeeRateFailure(t *testing.T) {
	ex := &stubExchange{rateErr: errors.New("exchange down")}
	price := types.NewPrice(1, 10)

	_, _, err := Resolve(context.Background(), price, types.NewPrice(2, 1000), 5, ex)
	if err == nil {
		t.Fatal("expected fee rate error to propagate")
	}
}

func TestSettleDirect(t *testing.T) {
	var gotAsset types.AssetID
	var gotFrom, gotTo types.AccountID
	var gotAmount types.Amount

	transferor := TransferorFunc(func(_ context.Context, asset types.AssetID, from, to types.AccountID, amount types.Amount) error {
		gotAsset, gotFrom, gotTo, gotAmount = asset, from, to, amount
		return nil
	})

	q := Direct{Asset: 1, Amount: 50}
	if err := Settle(context.Background(), q, "alice", "bob", transferor, &stubExchange{}); err != nil {
		t.Fatalf("settle: %v", err)
	}
	if gotAsset != 1 || gotFrom != "alice" || gotTo != "bob" || gotAmount != 50 {
		t.Errorf("transfer args: asset=%d from=%s to=%s amount=%d", gotAsset, gotFrom, gotTo, gotAmount)
	}
}

func TestSettleSwap(t *testing.T) {
	ex := &stubExchange{}
	q := Swap{AssetOffered: 2, MaxOffered: 1000, AssetWanted: 1, AmountWanted: 10, FeeRate: 3000}

	if err := Settle(context.Background(), q, "alice", "bob", nil, ex); err != nil {
		t.Fatalf("settle: %v", err)
	}
	if len(ex.swapCalls) != 1 || ex.swapCalls[0] != q {
		t.Errorf("swap calls: %+v", ex.swapCalls)
	}
}

func TestSettlePropagatesFailure(t *testing.T) {
	wantErr := errors.New("insufficient balance")

	transferor := TransferorFunc(func(_ context.Context, _ types.AssetID, _, _ types.AccountID, _ types.Amount) error {
		return wantErr
	})

	err := Settle(context.Background(), Direct{Asset: 1, Amount: 50}, "alice", "bob", transferor, &stubExchange{})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected collaborator error verbatim, got %v", err)
	}
}
