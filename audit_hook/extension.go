// Package audithook bridges XPay lifecycle events to an audit trail backend.
//
// It defines a local Recorder interface so the package does not import
// Chronicle directly. Callers inject a RecorderFunc adapter that bridges
// to Chronicle at wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xraph/xpay"
	"github.com/xraph/xpay/plugin"
	"github.com/xraph/xpay/receipt"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin            = (*Extension)(nil)
	_ plugin.OnItemCreated     = (*Extension)(nil)
	_ plugin.OnItemAdded       = (*Extension)(nil)
	_ plugin.OnItemRemoved     = (*Extension)(nil)
	_ plugin.OnItemUpdated     = (*Extension)(nil)
	_ plugin.OnItemSold        = (*Extension)(nil)
	_ plugin.OnPurchaseFailed  = (*Extension)(nil)
	_ plugin.OnReceiptRecorded = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
// This matches chronicle.Emitter but is defined locally so that the
// audit_hook package does not import Chronicle directly — callers inject
// the concrete *chronicle.Chronicle at wiring time.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event.
// It mirrors chronicle/audit.Event but avoids a module dependency.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges XPay lifecycle events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Item lifecycle hooks
// ──────────────────────────────────────────────────

// OnItemCreated implements plugin.OnItemCreated.
func (e *Extension) OnItemCreated(ctx context.Context, event interface{}) error {
	created, ok := event.(*xpay.ItemCreated)
	if !ok {
		return nil
	}
	return e.record(ctx, ActionItemCreated, SeverityInfo, OutcomeSuccess,
		ResourceItem, created.ItemID.String(), CategoryMarketplace, nil,
		"caller", created.Caller.Account.String(),
		"quantity", uint32(created.Quantity),
		"price", created.Price.String(),
	)
}

// OnItemAdded implements plugin.OnItemAdded.
func (e *Extension) OnItemAdded(ctx context.Context, event interface{}) error {
	added, ok := event.(*xpay.ItemAdded)
	if !ok {
		return nil
	}
	return e.record(ctx, ActionItemAdded, SeverityInfo, OutcomeSuccess,
		ResourceItem, added.ItemID.String(), CategoryMarketplace, nil,
		"caller", added.Caller.Account.String(),
		"quantity", uint32(added.Quantity),
	)
}

// OnItemRemoved implements plugin.OnItemRemoved.
func (e *Extension) OnItemRemoved(ctx context.Context, event interface{}) error {
	removed, ok := event.(*xpay.ItemRemoved)
	if !ok {
		return nil
	}
	return e.record(ctx, ActionItemRemoved, SeverityInfo, OutcomeSuccess,
		ResourceItem, removed.ItemID.String(), CategoryMarketplace, nil,
		"caller", removed.Caller.Account.String(),
		"quantity", uint32(removed.Quantity),
	)
}

// OnItemUpdated implements plugin.OnItemUpdated.
func (e *Extension) OnItemUpdated(ctx context.Context, event interface{}) error {
	updated, ok := event.(*xpay.ItemUpdated)
	if !ok {
		return nil
	}
	return e.record(ctx, ActionItemUpdated, SeverityInfo, OutcomeSuccess,
		ResourceItem, updated.ItemID.String(), CategoryMarketplace, nil,
		"caller", updated.Caller.Account.String(),
		"quantity", uint32(updated.Quantity),
		"price", updated.Price.String(),
	)
}

// ──────────────────────────────────────────────────
// Purchase hooks
// ──────────────────────────────────────────────────

// OnItemSold implements plugin.OnItemSold.
func (e *Extension) OnItemSold(ctx context.Context, event interface{}) error {
	sold, ok := event.(*xpay.ItemSold)
	if !ok {
		return nil
	}
	return e.record(ctx, ActionItemSold, SeverityInfo, OutcomeSuccess,
		ResourceItem, sold.ItemID.String(), CategoryPayment, nil,
		"buyer", sold.Buyer.Account.String(),
		"quantity", uint32(sold.Quantity),
	)
}

// OnPurchaseFailed implements plugin.OnPurchaseFailed.
func (e *Extension) OnPurchaseFailed(ctx context.Context, event interface{}, err error) error {
	failed, ok := event.(*xpay.PurchaseFailed)
	if !ok {
		return nil
	}
	return e.record(ctx, ActionPurchaseFailed, SeverityWarning, OutcomeFailure,
		ResourceItem, failed.ItemID.String(), CategoryPayment, err,
		"buyer", failed.Buyer.Account.String(),
		"quantity", uint32(failed.Quantity),
	)
}

// OnReceiptRecorded implements plugin.OnReceiptRecorded.
func (e *Extension) OnReceiptRecorded(ctx context.Context, rcpt interface{}) error {
	r, ok := rcpt.(*receipt.Receipt)
	if !ok {
		return nil
	}
	return e.record(ctx, ActionReceiptRecorded, SeverityInfo, OutcomeSuccess,
		ResourceReceipt, r.ID.String(), CategoryPayment, nil,
		"item_id", r.ItemID.String(),
		"buyer", r.Buyer.String(),
		"seller", r.Seller.String(),
		"settlement", string(r.Settlement),
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
