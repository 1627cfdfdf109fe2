package shared

import "errors"

// Domain-specific errors. All of these are local and recoverable: the
// caller is told why an operation was refused and may resubmit. Nothing in
// this list is ever process-fatal.
var (
	// Bid rejections
	ErrAuctionClosed     = errors.New("auction already closed")
	ErrSelfBid           = errors.New("cannot bid on your own listing")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrBidTooLow         = errors.New("bid below minimum increment")
	ErrDebitFailed       = errors.New("failed to debit bidder")

	// Lookup errors
	ErrAccountNotFound = errors.New("account not found")
	ErrListingNotFound = errors.New("listing not found")

	// Listing creation errors
	ErrInvalidPrice    = errors.New("initial price must be greater than 0")
	ErrInvalidDuration = errors.New("duration must be greater than 0")
)
