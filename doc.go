// Package xpay provides an embeddable marketplace settlement engine for Go applications.
//
// XPay is designed as a library, not a service. Import it directly into the
// application that owns the balances and it takes care of the marketplace
// state transitions:
//
//   - Sequential item id allocation with overflow protection
//   - Listing management: create, restock, remove, repricing
//   - Atomic purchase settlement with a hard payment-before-inventory ordering
//   - Same-asset direct transfers and cross-asset swap settlement
//   - Advisory purchase receipts with per-item and per-account history
//   - Pluggable hooks for item and purchase lifecycle events
//
// # Quick Start
//
// Create a market instance with your preferred store and payment collaborators:
//
//	import (
//	    "github.com/xraph/xpay"
//	    "github.com/xraph/xpay/store/postgres"
//	)
//
//	// Initialize store
//	store, err := postgres.New(databaseURL)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Create market
//	m := xpay.New(store, transferor, exchange)
//
//	// Start the market (runs store migrations)
//	if err := m.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer m.Stop()
//
// # Core Concepts
//
// Listing an item registers its content, owner, quantity and unit price under
// a freshly allocated id:
//
//	itemID, err := m.CreateItem(ctx, seller, 100, content, xpay.NewPrice(assetA, 10))
//
// Quantity moves through relative mutators that saturate instead of failing:
//
//	m.AddItem(ctx, seller, itemID, 50)    // clamps at MaxQuantity
//	m.RemoveItem(ctx, seller, itemID, 20) // floors at zero
//
// Purchases name a maximum total the buyer is willing to pay. When the cap is
// denominated in the listing's asset the sale settles as a direct transfer;
// any other asset routes through the exchange:
//
//	err := m.PurchaseItem(ctx, buyer, 5, itemID, xpay.NewPrice(assetA, 51))
//
// A failed transfer or swap leaves the listing untouched: inventory is only
// written after the payment collaborator reports success.
//
// # Arithmetic
//
// All amounts use unsigned integer arithmetic. Total prices are computed with
// overflow-checked multiplication, and quantity mutations either saturate
// (restock, removal) or fail explicitly (purchase) so no operation can wrap.
//
// # Integration
//
// XPay integrates with the Forgery ecosystem:
//
//   - Forge: lifecycle and configuration via the extension package
//   - Vessel: dependency injection of the Market instance
//   - Chronicle-style audit trail via the audit_hook package
//
// # TypeID
//
// Receipts use TypeID for globally unique, type-safe identifiers:
//
//	rcpt_01h2xcejqtf2nbrexx3vqjhp41  // Receipt ID
//
// TypeIDs are K-sortable, making them ideal for database indexes and
// providing natural time-ordering of receipts.
package xpay
