package app

import (
	"context"

	"auction-house-service/internal/domain/account"
	"auction-house-service/internal/domain/listing"
	"auction-house-service/internal/domain/shared"
	"auction-house-service/internal/ports/inbound"
	"auction-house-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// AuctionService implements the auction house use cases over the in-memory
// adapters. All state lives in process memory and is lost on restart.
type AuctionService struct {
	registry outbound.ListingRegistry
	ledger   outbound.Ledger
	notifier outbound.ClosureNotifier
	logger   zerolog.Logger
}

type AuctionServiceParams struct {
	Registry outbound.ListingRegistry
	Ledger   outbound.Ledger
	Notifier outbound.ClosureNotifier
	Logger   zerolog.Logger
}

// NewAuctionService creates a new auction service
func NewAuctionService(params AuctionServiceParams) *AuctionService {
	return &AuctionService{
		registry: params.Registry,
		ledger:   params.Ledger,
		notifier: params.Notifier,
		logger:   params.Logger.With().Str("component", "auction_service").Logger(),
	}
}

// CreateListing opens a new timed auction and returns its ID.
func (service *AuctionService) CreateListing(ctx context.Context, req inbound.CreateListingRequest) (uuid.UUID, error) {
	service.logger.Info().
		Str("name", req.Name).
		Str("creator_id", req.CreatorID).
		Str("initial_price", req.InitialPrice.String()).
		Dur("duration", req.Duration).
		Msg("Attempting to create listing")

	if !req.InitialPrice.IsPositive() {
		service.logger.Warn().Str("initial_price", req.InitialPrice.String()).Msg("Initial price must be greater than 0")
		return uuid.Nil, shared.ErrInvalidPrice
	}

	if req.Duration <= 0 {
		service.logger.Warn().Dur("duration", req.Duration).Msg("Duration must be greater than 0")
		return uuid.Nil, shared.ErrInvalidDuration
	}

	creator, err := service.ledger.Get(req.CreatorID)
	if err != nil {
		service.logger.Error().Err(err).Str("creator_id", req.CreatorID).Msg("Creator not registered")
		return uuid.Nil, err
	}

	l := listing.New(listing.Params{
		Name:         req.Name,
		Description:  req.Description,
		ImageRef:     req.ImageRef,
		InitialPrice: req.InitialPrice,
		Creator:      creator,
		Duration:     req.Duration,
	})

	service.registry.Add(l)

	service.logger.Info().
		Str("listing_id", l.ID.String()).
		Time("end_time", l.EndTime).
		Msg("Listing created")

	return l.ID, nil
}

// ActiveListings returns a snapshot of every listing that still accepts
// bids.
func (service *AuctionService) ActiveListings(ctx context.Context) []listing.Snapshot {
	active := service.registry.ActiveListings()

	snapshots := make([]listing.Snapshot, 0, len(active))
	for _, l := range active {
		snapshots = append(snapshots, l.Snapshot())
	}
	return snapshots
}

// WonListings returns every closed listing the given account won.
func (service *AuctionService) WonListings(ctx context.Context, accountID string) []listing.Snapshot {
	won := service.registry.WonListingsFor(accountID)

	snapshots := make([]listing.Snapshot, 0, len(won))
	for _, l := range won {
		snapshots = append(snapshots, l.Snapshot())
	}
	return snapshots
}

// GetOrCreateAccount registers an account on first contact and is an
// idempotent lookup afterwards.
func (service *AuctionService) GetOrCreateAccount(ctx context.Context, accountID, displayName string) *account.Account {
	return service.ledger.GetOrCreate(accountID, displayName)
}

// AccountBalance reports an account's current balance.
func (service *AuctionService) AccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	return service.ledger.Balance(accountID)
}

// OnListingClosed subscribes a callback to listing closure events.
func (service *AuctionService) OnListingClosed(fn func(outbound.Event)) {
	service.notifier.Subscribe(fn)
}
