package shared

import "errors"

// Reason is a stable, machine-readable code for the outcome of a bid.
// The presentation layer maps these to user-facing text; the core never
// formats messages itself.
type Reason string

const (
	ReasonAccepted          Reason = "accepted"
	ReasonAuctionClosed     Reason = "auction_closed"
	ReasonSelfBid           Reason = "self_bid"
	ReasonInsufficientFunds Reason = "insufficient_funds"
	ReasonBidTooLow         Reason = "bid_too_low"
	ReasonDebitFailed       Reason = "debit_failed"
	ReasonAccountNotFound   Reason = "account_not_found"
	ReasonListingNotFound   Reason = "listing_not_found"
	ReasonUnknown           Reason = "unknown"
)

// ReasonForError translates a bid adjudication error into its reason code.
// A nil error means the bid was accepted.
func ReasonForError(err error) Reason {
	switch {
	case err == nil:
		return ReasonAccepted
	case errors.Is(err, ErrAuctionClosed):
		return ReasonAuctionClosed
	case errors.Is(err, ErrSelfBid):
		return ReasonSelfBid
	case errors.Is(err, ErrInsufficientFunds):
		return ReasonInsufficientFunds
	case errors.Is(err, ErrBidTooLow):
		return ReasonBidTooLow
	case errors.Is(err, ErrDebitFailed):
		return ReasonDebitFailed
	case errors.Is(err, ErrAccountNotFound):
		return ReasonAccountNotFound
	case errors.Is(err, ErrListingNotFound):
		return ReasonListingNotFound
	default:
		return ReasonUnknown
	}
}
