package app

import (
	"context"

	"auction-house-service/internal/domain/shared"
	"auction-house-service/internal/ports/inbound"
)

// PlaceBid adjudicates one bid against a listing. A nil return means the
// bid was accepted and the bidder's funds are held against the listing;
// otherwise the sentinel error carries the rejection reason.
func (service *AuctionService) PlaceBid(ctx context.Context, req inbound.PlaceBidRequest) error {
	service.logger.Info().
		Str("listing_id", req.ListingID.String()).
		Str("bidder_id", req.BidderID).
		Str("amount", req.Amount.String()).
		Msg("Attempting to place bid")

	l, err := service.registry.GetByID(req.ListingID)
	if err != nil {
		service.logger.Error().Err(err).Str("listing_id", req.ListingID.String()).Msg("Listing not found")
		return err
	}

	bidder, err := service.ledger.Get(req.BidderID)
	if err != nil {
		service.logger.Error().Err(err).Str("bidder_id", req.BidderID).Msg("Bidder not registered")
		return err
	}

	if err := l.TryPlaceBid(bidder, req.Amount, service.ledger); err != nil {
		service.logger.Warn().
			Str("listing_id", req.ListingID.String()).
			Str("bidder_id", req.BidderID).
			Str("amount", req.Amount.String()).
			Str("reason", string(shared.ReasonForError(err))).
			Msg("Bid rejected")
		return err
	}

	service.logger.Info().
		Str("listing_id", req.ListingID.String()).
		Str("bidder_id", req.BidderID).
		Str("amount", req.Amount.String()).
		Msg("Bid accepted")

	return nil
}
