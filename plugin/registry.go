package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Registry manages all registered plugins and provides efficient
// dispatch. It uses type-cached discovery for O(1) dispatch
// performance.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger

	// Type-cached plugin lists for efficient dispatch
	onInit            []OnInit
	onShutdown        []OnShutdown
	onItemCreated     []OnItemCreated
	onItemAdded       []OnItemAdded
	onItemRemoved     []OnItemRemoved
	onItemUpdated     []OnItemUpdated
	onItemSold        []OnItemSold
	onPurchaseFailed  []OnPurchaseFailed
	onReceiptRecorded []OnReceiptRecorded
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger: slog.Default(),
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate
	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	// Type-switch to cache interfaces
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnItemCreated); ok {
		r.onItemCreated = append(r.onItemCreated, v)
	}
	if v, ok := p.(OnItemAdded); ok {
		r.onItemAdded = append(r.onItemAdded, v)
	}
	if v, ok := p.(OnItemRemoved); ok {
		r.onItemRemoved = append(r.onItemRemoved, v)
	}
	if v, ok := p.(OnItemUpdated); ok {
		r.onItemUpdated = append(r.onItemUpdated, v)
	}
	if v, ok := p.(OnItemSold); ok {
		r.onItemSold = append(r.onItemSold, v)
	}
	if v, ok := p.(OnPurchaseFailed); ok {
		r.onPurchaseFailed = append(r.onPurchaseFailed, v)
	}
	if v, ok := p.(OnReceiptRecorded); ok {
		r.onReceiptRecorded = append(r.onReceiptRecorded, v)
	}

	r.logger.Info("plugin registered", "name", p.Name())

	return nil
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, market interface{}) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInit(ctx, market)
		}); err != nil {
			r.logger.Warn("plugin OnInit failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("plugin OnShutdown failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitItemCreated emits an item created event.
func (r *Registry) EmitItemCreated(ctx context.Context, event interface{}) {
	r.mu.RLock()
	plugins := r.onItemCreated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnItemCreated(ctx, event)
		}); err != nil {
			r.logger.Warn("plugin OnItemCreated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitItemAdded emits an item quantity added event.
func (r *Registry) EmitItemAdded(ctx context.Context, event interface{}) {
	r.mu.RLock()
	plugins := r.onItemAdded
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnItemAdded(ctx, event)
		}); err != nil {
			r.logger.Warn("plugin OnItemAdded failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitItemRemoved emits an item quantity removed event.
func (r *Registry) EmitItemRemoved(ctx context.Context, event interface{}) {
	r.mu.RLock()
	plugins := r.onItemRemoved
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnItemRemoved(ctx, event)
		}); err != nil {
			r.logger.Warn("plugin OnItemRemoved failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitItemUpdated emits an item updated event.
func (r *Registry) EmitItemUpdated(ctx context.Context, event interface{}) {
	r.mu.RLock()
	plugins := r.onItemUpdated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnItemUpdated(ctx, event)
		}); err != nil {
			r.logger.Warn("plugin OnItemUpdated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitItemSold emits an item sold event.
func (r *Registry) EmitItemSold(ctx context.Context, event interface{}) {
	r.mu.RLock()
	plugins := r.onItemSold
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnItemSold(ctx, event)
		}); err != nil {
			r.logger.Warn("plugin OnItemSold failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitPurchaseFailed emits a purchase failed event.
func (r *Registry) EmitPurchaseFailed(ctx context.Context, event interface{}, failure error) {
	r.mu.RLock()
	plugins := r.onPurchaseFailed
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPurchaseFailed(ctx, event, failure)
		}); err != nil {
			r.logger.Warn("plugin OnPurchaseFailed failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitReceiptRecorded emits a receipt recorded event.
func (r *Registry) EmitReceiptRecorded(ctx context.Context, rcpt interface{}) {
	r.mu.RLock()
	plugins := r.onReceiptRecorded
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnReceiptRecorded(ctx, rcpt)
		}); err != nil {
			r.logger.Warn("plugin OnReceiptRecorded failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins should never block the settlement pipeline.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
