package xpay

import (
	"errors"

	"github.com/xraph/xpay/payment"
)

// Sentinel errors for common failure scenarios.
var (
	// Id allocation errors
	ErrIDSpaceExhausted = errors.New("xpay: item id space exhausted")

	// Registry errors
	ErrItemNotFound = errors.New("xpay: item not found")
	ErrNoItemPrice  = errors.New("xpay: item has no price")
	ErrNoItemOwner  = errors.New("xpay: item has no owner")

	// Purchase errors
	ErrInsufficientQuantity = errors.New("xpay: insufficient item quantity")

	// Quote errors, surfaced by the payment package.
	ErrTotalPriceOverflow = payment.ErrTotalPriceOverflow
	ErrPriceTooLow        = payment.ErrPriceTooLow

	// Receipt errors
	ErrReceiptNotFound = errors.New("xpay: receipt not found")

	// Store errors
	ErrStoreNotReady = errors.New("xpay: store not ready")
	ErrStoreClosed   = errors.New("xpay: store is closed")
)

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrNoItemPrice) ||
		errors.Is(err, ErrNoItemOwner) ||
		errors.Is(err, ErrReceiptNotFound)
}

// IsPurchaseRejected returns true if a purchase was refused on its
// merits rather than by an infrastructure failure.
func IsPurchaseRejected(err error) bool {
	return errors.Is(err, ErrInsufficientQuantity) ||
		errors.Is(err, ErrPriceTooLow) ||
		errors.Is(err, ErrTotalPriceOverflow)
}

// IsRetryable returns true if the error is temporary and the operation can be retried.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreNotReady)
}
