// Package plugin provides an extensible plugin system for XPay.
// Plugins can hook into marketplace lifecycle events to extend
// functionality; the engine's event notifications are delivered
// through this registry.
package plugin

import "context"

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the plugin is initialized.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, m interface{}) error
}

// OnShutdown is called when the plugin is shutting down.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Item lifecycle hooks
// ──────────────────────────────────────────────────

// OnItemCreated is called when a new item is listed.
type OnItemCreated interface {
	Plugin
	OnItemCreated(ctx context.Context, event interface{}) error
}

// OnItemAdded is called when quantity is added to a listing.
type OnItemAdded interface {
	Plugin
	OnItemAdded(ctx context.Context, event interface{}) error
}

// OnItemRemoved is called when quantity is removed from a listing.
type OnItemRemoved interface {
	Plugin
	OnItemRemoved(ctx context.Context, event interface{}) error
}

// OnItemUpdated is called when a listing's quantity or price is
// overwritten.
type OnItemUpdated interface {
	Plugin
	OnItemUpdated(ctx context.Context, event interface{}) error
}

// ──────────────────────────────────────────────────
// Purchase hooks
// ──────────────────────────────────────────────────

// OnItemSold is called after a purchase settles and the new quantity
// is committed.
type OnItemSold interface {
	Plugin
	OnItemSold(ctx context.Context, event interface{}) error
}

// OnPurchaseFailed is called when a purchase is rejected or its
// payment collaborator fails. Registry state is unchanged at that
// point.
type OnPurchaseFailed interface {
	Plugin
	OnPurchaseFailed(ctx context.Context, event interface{}, err error) error
}

// ──────────────────────────────────────────────────
// Receipt hooks
// ──────────────────────────────────────────────────

// OnReceiptRecorded is called after a purchase receipt is persisted.
type OnReceiptRecorded interface {
	Plugin
	OnReceiptRecorded(ctx context.Context, rcpt interface{}) error
}
