package types

// AccountID identifies a ledger account. The enclosing runtime owns
// the account namespace; XPay treats the value as opaque.
type AccountID string

// String returns the raw account identifier.
func (a AccountID) String() string { return string(a) }

// IsZero reports whether the account id is empty.
func (a AccountID) IsZero() bool { return a == "" }

// Caller is an already-authenticated account identity.
//
// XPay never verifies signatures or origins itself: the surrounding
// dispatch layer authenticates the caller and hands the engine a
// Caller value. Every mutating operation takes one.
type Caller struct {
	Account AccountID
}

// AuthenticatedCaller wraps an account id that the dispatch layer has
// already verified.
func AuthenticatedCaller(account AccountID) Caller {
	return Caller{Account: account}
}
