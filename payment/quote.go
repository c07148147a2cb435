package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/xraph/xpay/types"
)

// Sentinel errors for quote resolution. Re-exported from the root
// package for callers.
var (
	ErrTotalPriceOverflow = errors.New("xpay: total price overflow")
	ErrPriceTooLow        = errors.New("xpay: offered max total price too low")
)

// Quote is the resolved payment plan for one purchase — exactly one of
// the two settlement protocols, computed once and then dispatched.
type Quote interface {
	isQuote()
}

// Direct is the same-asset protocol: a plain balance transfer of the
// full computed total from buyer to seller.
type Direct struct {
	Asset  types.AssetID
	Amount types.Amount
}

func (Direct) isQuote() {}

// Swap is the cross-asset protocol: the exchange delivers AmountWanted
// of AssetWanted to the seller, charging the buyer at most MaxOffered
// of AssetOffered at FeeRate.
type Swap struct {
	AssetOffered types.AssetID
	MaxOffered   types.Amount
	AssetWanted  types.AssetID
	AmountWanted types.Amount
	FeeRate      types.FeeRate
}

func (Swap) isQuote() {}

// Resolve computes the total cost for quantity units at price and
// selects the settlement protocol against the buyer's maxTotal offer.
// It returns the quote and the checked total.
//
// Same-asset offers must strictly exceed the computed total; an offer
// equal to the total is rejected with ErrPriceTooLow. The exchange is
// consulted only on the cross-asset path, for its current fee rate.
func Resolve(ctx context.Context, price, maxTotal types.Price, quantity types.Quantity, ex Exchange) (Quote, types.Amount, error) {
	total, ok := price.TotalFor(quantity)
	if !ok {
		return nil, 0, ErrTotalPriceOverflow
	}

	if price.SameAsset(maxTotal) {
		if total >= maxTotal.Amount {
			return nil, 0, ErrPriceTooLow
		}
		return Direct{Asset: price.Asset, Amount: total}, total, nil
	}

	rate, err := ex.FeeRate(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("query fee rate: %w", err)
	}

	return Swap{
		AssetOffered: maxTotal.Asset,
		MaxOffered:   maxTotal.Amount,
		AssetWanted:  price.Asset,
		AmountWanted: price.Amount,
		FeeRate:      rate,
	}, total, nil
}

// Settle dispatches a resolved quote to the matching collaborator.
// Collaborator failures propagate verbatim; nothing is retried.
func Settle(ctx context.Context, q Quote, buyer, seller types.AccountID, transferor Transferor, ex Exchange) error {
	switch v := q.(type) {
	case Direct:
		return transferor.Transfer(ctx, v.Asset, buyer, seller, v.Amount)
	case Swap:
		return ex.SwapForOutput(ctx, buyer, seller, v)
	default:
		return fmt.Errorf("xpay: unknown quote type %T", q)
	}
}
