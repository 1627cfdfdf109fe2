package app

import (
	"context"
	"testing"
	"time"

	"auction-house-service/internal/adapters/memory"
	"auction-house-service/internal/adapters/notifier"
	"auction-house-service/internal/domain/shared"
	"auction-house-service/internal/ports/inbound"
	"auction-house-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	ledger   *memory.Ledger
	registry *memory.Registry
	service  *AuctionService
}

func newServiceFixture() *serviceFixture {
	ledger := memory.NewLedger(memory.LedgerParams{
		StartingBalance: decimal.NewFromInt(10000),
		Logger:          zerolog.Nop(),
	})
	registry := memory.NewRegistry(memory.RegistryParams{Logger: zerolog.Nop()})
	closureNotifier := notifier.NewCallbackNotifier(notifier.CallbackNotifierParams{Logger: zerolog.Nop()})

	service := NewAuctionService(AuctionServiceParams{
		Registry: registry,
		Ledger:   ledger,
		Notifier: closureNotifier,
		Logger:   zerolog.Nop(),
	})

	return &serviceFixture{ledger: ledger, registry: registry, service: service}
}

func createReq(creatorID string) inbound.CreateListingRequest {
	return inbound.CreateListingRequest{
		Name:         "vintage lamp",
		Description:  "green shade, works",
		ImageRef:     "img-1",
		InitialPrice: decimal.NewFromInt(100),
		CreatorID:    creatorID,
		Duration:     time.Hour,
	}
}

func TestCreateListing_Validation(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(req *inbound.CreateListingRequest)
		expectedErr error
	}{
		{
			name:        "zero_price",
			mutate:      func(req *inbound.CreateListingRequest) { req.InitialPrice = decimal.Zero },
			expectedErr: shared.ErrInvalidPrice,
		},
		{
			name:        "negative_price",
			mutate:      func(req *inbound.CreateListingRequest) { req.InitialPrice = decimal.NewFromInt(-5) },
			expectedErr: shared.ErrInvalidPrice,
		},
		{
			name:        "zero_duration",
			mutate:      func(req *inbound.CreateListingRequest) { req.Duration = 0 },
			expectedErr: shared.ErrInvalidDuration,
		},
		{
			name:        "unregistered_creator",
			mutate:      func(req *inbound.CreateListingRequest) { req.CreatorID = "ghost" },
			expectedErr: shared.ErrAccountNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newServiceFixture()
			f.service.GetOrCreateAccount(context.Background(), "creator", "Creator")

			req := createReq("creator")
			tc.mutate(&req)

			_, err := f.service.CreateListing(context.Background(), req)
			require.ErrorIs(t, err, tc.expectedErr)
			require.Empty(t, f.service.ActiveListings(context.Background()))
		})
	}
}

func TestPlaceBid_UnknownListingAndAccount(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	f.service.GetOrCreateAccount(ctx, "creator", "Creator")

	listingID, err := f.service.CreateListing(ctx, createReq("creator"))
	require.NoError(t, err)

	err = f.service.PlaceBid(ctx, inbound.PlaceBidRequest{
		ListingID: uuid.New(),
		BidderID:  "creator",
		Amount:    decimal.NewFromInt(200),
	})
	require.ErrorIs(t, err, shared.ErrListingNotFound)

	err = f.service.PlaceBid(ctx, inbound.PlaceBidRequest{
		ListingID: listingID,
		BidderID:  "ghost",
		Amount:    decimal.NewFromInt(200),
	})
	require.ErrorIs(t, err, shared.ErrAccountNotFound)
}

func TestAuctionService_FullLifecycle(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	f.service.GetOrCreateAccount(ctx, "creator", "Creator")
	f.service.GetOrCreateAccount(ctx, "alice", "Alice")

	listingID, err := f.service.CreateListing(ctx, createReq("creator"))
	require.NoError(t, err)

	active := f.service.ActiveListings(ctx)
	require.Len(t, active, 1)
	require.Equal(t, listingID, active[0].ID)
	require.Equal(t, "Creator", active[0].CreatorName)

	err = f.service.PlaceBid(ctx, inbound.PlaceBidRequest{
		ListingID: listingID,
		BidderID:  "alice",
		Amount:    decimal.NewFromInt(150),
	})
	require.NoError(t, err)

	balance, err := f.service.AccountBalance(ctx, "alice")
	require.NoError(t, err)
	require.True(t, balance.Equal(decimal.NewFromInt(9850)), "balance = %s", balance)

	// Nobody has won anything while the listing is open.
	require.Empty(t, f.service.WonListings(ctx, "alice"))

	l, err := f.registry.GetByID(listingID)
	require.NoError(t, err)
	require.NoError(t, l.EndAuction(f.ledger))

	require.Empty(t, f.service.ActiveListings(ctx))

	won := f.service.WonListings(ctx, "alice")
	require.Len(t, won, 1)
	require.Equal(t, listingID, won[0].ID)
	require.True(t, won[0].CurrentPrice.Equal(decimal.NewFromInt(150)))
	require.False(t, won[0].Active)

	// The creator cannot win their own listing.
	require.Empty(t, f.service.WonListings(ctx, "creator"))

	creatorBalance, err := f.service.AccountBalance(ctx, "creator")
	require.NoError(t, err)
	require.True(t, creatorBalance.Equal(decimal.NewFromInt(10150)))
}

func TestOnListingClosed_DeliversClosureEvents(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	var got []outbound.Event
	f.service.OnListingClosed(func(e outbound.Event) { got = append(got, e) })

	f.service.GetOrCreateAccount(ctx, "creator", "Creator")
	listingID, err := f.service.CreateListing(ctx, createReq("creator"))
	require.NoError(t, err)

	l, err := f.registry.GetByID(listingID)
	require.NoError(t, err)
	require.NoError(t, l.EndAuction(f.ledger))
	f.service.notifier.Publish(outbound.Event{
		Type:      outbound.EventTypeListingClosed,
		Listing:   l.Snapshot(),
		Timestamp: time.Now().Unix(),
	})

	require.Len(t, got, 1)
	require.Equal(t, listingID, got[0].Listing.ID)
}
