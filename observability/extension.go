// Package observability provides a metrics extension for XPay that
// records marketplace lifecycle event counts via a MetricFactory.
package observability

import (
	"context"

	"github.com/xraph/xpay"
	"github.com/xraph/xpay/plugin"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin            = (*MetricsExtension)(nil)
	_ plugin.OnInit            = (*MetricsExtension)(nil)
	_ plugin.OnItemCreated     = (*MetricsExtension)(nil)
	_ plugin.OnItemAdded       = (*MetricsExtension)(nil)
	_ plugin.OnItemRemoved     = (*MetricsExtension)(nil)
	_ plugin.OnItemUpdated     = (*MetricsExtension)(nil)
	_ plugin.OnItemSold        = (*MetricsExtension)(nil)
	_ plugin.OnPurchaseFailed  = (*MetricsExtension)(nil)
	_ plugin.OnReceiptRecorded = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records system-wide lifecycle metrics.
// Register it as an XPay plugin to automatically track marketplace metrics.
type MetricsExtension struct {
	factory MetricFactory

	// Item metrics
	ItemCreated Counter
	ItemAdded   Counter
	ItemRemoved Counter
	ItemUpdated Counter

	// Purchase metrics
	ItemSold         Counter
	PurchaseFailed   Counter
	SoldQuantity     Histogram
	ReceiptsRecorded Counter
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
// Use app.Metrics() in forge extensions.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		// Item metrics
		ItemCreated: factory.Counter("xpay.item.created"),
		ItemAdded:   factory.Counter("xpay.item.added"),
		ItemRemoved: factory.Counter("xpay.item.removed"),
		ItemUpdated: factory.Counter("xpay.item.updated"),

		// Purchase metrics
		ItemSold:         factory.Counter("xpay.item.sold"),
		PurchaseFailed:   factory.Counter("xpay.purchase.failed"),
		SoldQuantity:     factory.Histogram("xpay.purchase.quantity"),
		ReceiptsRecorded: factory.Counter("xpay.receipt.recorded"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	// No initialization needed
	return nil
}

// ──────────────────────────────────────────────────
// Item lifecycle hooks
// ──────────────────────────────────────────────────

// OnItemCreated implements plugin.OnItemCreated.
func (m *MetricsExtension) OnItemCreated(_ context.Context, _ interface{}) error {
	m.ItemCreated.Inc()
	return nil
}

// OnItemAdded implements plugin.OnItemAdded.
func (m *MetricsExtension) OnItemAdded(_ context.Context, _ interface{}) error {
	m.ItemAdded.Inc()
	return nil
}

// OnItemRemoved implements plugin.OnItemRemoved.
func (m *MetricsExtension) OnItemRemoved(_ context.Context, _ interface{}) error {
	m.ItemRemoved.Inc()
	return nil
}

// OnItemUpdated implements plugin.OnItemUpdated.
func (m *MetricsExtension) OnItemUpdated(_ context.Context, _ interface{}) error {
	m.ItemUpdated.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Purchase hooks
// ──────────────────────────────────────────────────

// OnItemSold implements plugin.OnItemSold.
func (m *MetricsExtension) OnItemSold(_ context.Context, event interface{}) error {
	m.ItemSold.Inc()
	if sold, ok := event.(*xpay.ItemSold); ok {
		m.SoldQuantity.Observe(float64(sold.Quantity))
	}
	return nil
}

// OnPurchaseFailed implements plugin.OnPurchaseFailed.
func (m *MetricsExtension) OnPurchaseFailed(_ context.Context, _ interface{}, _ error) error {
	m.PurchaseFailed.Inc()
	return nil
}

// OnReceiptRecorded implements plugin.OnReceiptRecorded.
func (m *MetricsExtension) OnReceiptRecorded(_ context.Context, _ interface{}) error {
	m.ReceiptsRecorded.Inc()
	return nil
}
