package outbound

import (
	"time"

	"auction-house-service/internal/domain/account"
	"auction-house-service/internal/domain/listing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ledger owns account balances and the atomicity of fund movement. A
// transfer touching an account is serialized against every other transfer
// touching that same account, whichever listing triggered it.
type Ledger interface {
	// GetOrCreate registers an account on first contact, seeding it with
	// the starting balance, and is an idempotent lookup afterwards.
	GetOrCreate(accountID, displayName string) *account.Account

	// Get looks up a registered account.
	Get(accountID string) (*account.Account, error)

	// Balance reports the current balance of an account.
	Balance(accountID string) (decimal.Decimal, error)

	// AttemptTransfer applies one signed movement to an account. A debit
	// that would take the balance below zero is rejected without
	// mutation; credits always succeed.
	AttemptTransfer(accountID string, amount decimal.Decimal) error
}

// ListingRegistry owns the set of all listings. Reads may run concurrently
// with each other and with Add; every query returns a snapshot slice that
// is safe to iterate without holding any lock.
type ListingRegistry interface {
	// Add inserts a fully formed listing. It never fails.
	Add(l *listing.Listing)

	// GetByID looks up a listing by its ID.
	GetByID(id uuid.UUID) (*listing.Listing, error)

	// ActiveListings returns every listing that still accepts bids, in
	// insertion order.
	ActiveListings() []*listing.Listing

	// ExpiredListings returns every listing that is still flagged active
	// but whose end time has passed.
	ExpiredListings(now time.Time) []*listing.Listing

	// WonListingsFor returns every closed listing whose highest bidder is
	// the given account, excluding listings that account created.
	WonListingsFor(accountID string) []*listing.Listing
}
