package listing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Snapshot is a read-consistent copy of a listing's display fields. It is
// what the core hands to the presentation layer: safe to hold and format
// without any locking, and frozen at the moment it was taken.
type Snapshot struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	ImageRef          string          `json:"image_ref"`
	InitialPrice      decimal.Decimal `json:"initial_price"`
	CurrentPrice      decimal.Decimal `json:"current_price"`
	CreatorID         string          `json:"creator_id"`
	CreatorName       string          `json:"creator_name"`
	HighestBidderID   string          `json:"highest_bidder_id"`
	HighestBidderName string          `json:"highest_bidder_name"`
	CreatedAt         time.Time       `json:"created_at"`
	EndTime           time.Time       `json:"end_time"`
	Active            bool            `json:"active"`
}

// Snapshot takes a consistent copy of the listing under a brief read lock.
// Concurrent bids are blocked only for the duration of the field copies.
func (l *Listing) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return Snapshot{
		ID:                l.ID,
		Name:              l.Name,
		Description:       l.Description,
		ImageRef:          l.ImageRef,
		InitialPrice:      l.InitialPrice,
		CurrentPrice:      l.currentPrice,
		CreatorID:         l.creator.ID,
		CreatorName:       l.creator.DisplayName,
		HighestBidderID:   l.highestBidder.ID,
		HighestBidderName: l.highestBidder.DisplayName,
		CreatedAt:         l.CreatedAt,
		EndTime:           l.EndTime,
		Active:            l.active,
	}
}
