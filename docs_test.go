package xpay_test

import (
	"context"
	"log"
	"log/slog"
	"testing"

	"github.com/xraph/xpay"
	"github.com/xraph/xpay/payment"
	"github.com/xraph/xpay/store/memory"
	"github.com/xraph/xpay/types"
)

// docExchange is a no-op exchange for the documentation examples.
type docExchange struct{}

func (docExchange) SwapForOutput(ctx context.Context, buyer, recipient types.AccountID, swap payment.Swap) error {
	return nil
}

func (docExchange) FeeRate(ctx context.Context) (types.FeeRate, error) {
	return 3000, nil
}

// TestDocumentationExamples verifies that all examples in the documentation compile
func TestDocumentationExamples(t *testing.T) {
	// Test Quick Start example from README
	t.Run("QuickStartExample", func(t *testing.T) {
		// Create store (memory for demo, use PostgreSQL in production)
		store := memory.New()

		// The transferor moves balances; real deployments plug in the
		// host application's ledger here.
		transferor := payment.TransferorFunc(func(ctx context.Context, asset types.AssetID, from, to types.AccountID, amount types.Amount) error {
			return nil
		})

		// Initialize the market
		m := xpay.New(store, transferor, docExchange{},
			xpay.WithLogger(slog.Default()),
		)

		// Start the engine
		ctx := context.Background()
		if err := m.Start(ctx); err != nil {
			t.Fatal(err)
		}
		defer m.Stop()

		seller := xpay.AuthenticatedCaller("acct_seller")
		buyer := xpay.AuthenticatedCaller("acct_buyer")

		// List 100 units at 10 of asset 1 each
		itemID, err := m.CreateItem(ctx, seller, 100, []byte("concert ticket"), xpay.NewPrice(1, 10))
		if err != nil {
			t.Fatal(err)
		}

		// Restock and remove move quantity relatively
		if err := m.AddItem(ctx, seller, itemID, 50); err != nil {
			t.Fatal(err)
		}
		if err := m.RemoveItem(ctx, seller, itemID, 20); err != nil {
			t.Fatal(err)
		}

		// Buy 5 units, willing to pay up to 51 of asset 1
		if err := m.PurchaseItem(ctx, buyer, 5, itemID, xpay.NewPrice(1, 51)); err != nil {
			t.Fatal(err)
		}

		listing, err := m.Listing(ctx, itemID)
		if err != nil {
			t.Fatal(err)
		}

		log.Printf("Remaining quantity: %d\n", listing.Quantity)
	})

	// Test Price type examples
	t.Run("PriceExamples", func(t *testing.T) {
		// Constructors
		p := xpay.NewPrice(7, 250)

		// Checked total for a quantity
		total, ok := p.TotalFor(4)
		if !ok {
			t.Fatal("unexpected overflow")
		}
		_ = total // 1000

		// Asset comparison
		if p.SameAsset(xpay.NewPrice(7, 999)) {
			// denominated in the same asset
		}

		// Formatting
		_ = p.String() // "250@asset(7)"
	})
}
