package inbound

import (
	"context"
	"time"

	"auction-house-service/internal/domain/account"
	"auction-house-service/internal/domain/listing"
	"auction-house-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AuctionService is the interface the core exposes to the presentation and
// transport layer. All state behind it lives in process memory only and is
// lost on restart.
type AuctionService interface {
	// CreateListing opens a new timed auction and returns its ID.
	CreateListing(ctx context.Context, req CreateListingRequest) (uuid.UUID, error)

	// PlaceBid adjudicates one bid. A nil error means the bid was
	// accepted; otherwise the error carries the rejection reason.
	PlaceBid(ctx context.Context, req PlaceBidRequest) error

	// ActiveListings returns a snapshot of every listing that still
	// accepts bids.
	ActiveListings(ctx context.Context) []listing.Snapshot

	// WonListings returns every closed listing the given account won.
	WonListings(ctx context.Context, accountID string) []listing.Snapshot

	// GetOrCreateAccount registers an account on first contact and is a
	// lookup afterwards.
	GetOrCreateAccount(ctx context.Context, accountID, displayName string) *account.Account

	// AccountBalance reports an account's current balance.
	AccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error)

	// OnListingClosed subscribes a callback to listing closure events.
	OnListingClosed(fn func(outbound.Event))
}

// CreateListingRequest carries the inputs for opening a listing.
type CreateListingRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	ImageRef     string          `json:"image_ref"`
	InitialPrice decimal.Decimal `json:"initial_price"`
	CreatorID    string          `json:"creator_id"`
	Duration     time.Duration   `json:"duration"`
}

// PlaceBidRequest carries one bid against a listing.
type PlaceBidRequest struct {
	ListingID uuid.UUID       `json:"listing_id"`
	BidderID  string          `json:"bidder_id"`
	Amount    decimal.Decimal `json:"amount"`
}
