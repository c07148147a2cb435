package audithook

// Action constants for audit events.
const (
	// Item actions
	ActionItemCreated = "item.created"
	ActionItemAdded   = "item.added"
	ActionItemRemoved = "item.removed"
	ActionItemUpdated = "item.updated"

	// Purchase actions
	ActionItemSold        = "item.sold"
	ActionPurchaseFailed  = "purchase.failed"
	ActionReceiptRecorded = "receipt.recorded"
)

// Resource constants for audit events.
const (
	ResourceItem    = "item"
	ResourceReceipt = "receipt"
)

// Category constants for audit events.
const (
	CategoryMarketplace = "marketplace"
	CategoryPayment     = "payment"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomePartial = "partial"
)
