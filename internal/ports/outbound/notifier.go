package outbound

import "auction-house-service/internal/domain/listing"

// EventType represents the type of event being published.
type EventType string

const (
	EventTypeListingClosed EventType = "listing.closed"
)

// Event is what subscribers receive when a listing closes. The snapshot is
// frozen at the moment closure completed, so the winner and final price in
// it are definitive.
type Event struct {
	Type      EventType        `json:"type"`
	Listing   listing.Snapshot `json:"listing"`
	Timestamp int64            `json:"timestamp"`
}

// ClosureNotifier fans a closure event out to every subscriber.
// Implementations must tolerate zero subscribers and must not let one
// subscriber's panic reach the publisher.
type ClosureNotifier interface {
	// Subscribe registers a callback invoked once per listing closure.
	Subscribe(fn func(Event))

	// Publish delivers an event to all current subscribers.
	Publish(event Event)
}
