package memory

import (
	"sync"
	"time"

	"auction-house-service/internal/domain/listing"
	"auction-house-service/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Registry is the in-memory collection of all listings, in insertion
// order. It is the only place listings are inserted; listings are never
// removed, so closed auctions stay queryable.
//
// The registry lock covers only the collection itself. Queries copy the
// slice under a read lock and inspect per-listing state outside it, so a
// slow reader never blocks Add and a reader never observes a partially
// constructed listing.
type Registry struct {
	mu       sync.RWMutex
	listings []*listing.Listing
	byID     map[uuid.UUID]*listing.Listing
	logger   zerolog.Logger
}

type RegistryParams struct {
	Logger zerolog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(params RegistryParams) *Registry {
	return &Registry{
		byID:   make(map[uuid.UUID]*listing.Listing),
		logger: params.Logger.With().Str("component", "registry").Logger(),
	}
}

// Add inserts a fully formed listing. It never fails.
func (r *Registry) Add(l *listing.Listing) {
	r.mu.Lock()
	r.listings = append(r.listings, l)
	r.byID[l.ID] = l
	total := len(r.listings)
	r.mu.Unlock()

	r.logger.Info().
		Str("listing_id", l.ID.String()).
		Str("name", l.Name).
		Time("end_time", l.EndTime).
		Int("total_listings", total).
		Msg("Listing added")
}

// GetByID looks up a listing by its ID.
func (r *Registry) GetByID(id uuid.UUID) (*listing.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.byID[id]
	if !ok {
		return nil, shared.ErrListingNotFound
	}
	return l, nil
}

// ActiveListings returns every listing that still accepts bids, in
// insertion order.
func (r *Registry) ActiveListings() []*listing.Listing {
	var active []*listing.Listing
	for _, l := range r.snapshot() {
		if l.IsActive() {
			active = append(active, l)
		}
	}
	return active
}

// ExpiredListings returns every listing that is still flagged active but
// whose end time has passed. These are the candidates for the next expiry
// sweep.
func (r *Registry) ExpiredListings(now time.Time) []*listing.Listing {
	var expired []*listing.Listing
	for _, l := range r.snapshot() {
		if l.IsActive() && l.IsExpired(now) {
			expired = append(expired, l)
		}
	}
	return expired
}

// WonListingsFor returns every closed listing whose highest bidder is the
// given account. Listings the account created are excluded: a creator
// standing as highest bidder just means the listing went unsold.
func (r *Registry) WonListingsFor(accountID string) []*listing.Listing {
	var won []*listing.Listing
	for _, l := range r.snapshot() {
		if l.IsActive() {
			continue
		}
		if l.CreatorID() == accountID {
			continue
		}
		if l.HighestBidderID() == accountID {
			won = append(won, l)
		}
	}
	return won
}

// snapshot copies the listing slice under the read lock so callers can
// iterate and take per-listing locks without holding the registry lock.
func (r *Registry) snapshot() []*listing.Listing {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listings := make([]*listing.Listing, len(r.listings))
	copy(listings, r.listings)
	return listings
}
