package notifier

import (
	"sync"

	"auction-house-service/internal/ports/outbound"

	"github.com/rs/zerolog"
)

// CallbackNotifier is the in-process closure notifier: an explicit list of
// subscriber callbacks invoked once per listing closure. Zero subscribers
// is fine, and a panicking subscriber is isolated so it can neither reach
// the publisher nor starve the remaining subscribers.
type CallbackNotifier struct {
	mu          sync.RWMutex
	subscribers []func(outbound.Event)
	logger      zerolog.Logger
}

type CallbackNotifierParams struct {
	Logger zerolog.Logger
}

// NewCallbackNotifier creates a notifier with no subscribers.
func NewCallbackNotifier(params CallbackNotifierParams) *CallbackNotifier {
	return &CallbackNotifier{
		logger: params.Logger.With().Str("component", "closure_notifier").Logger(),
	}
}

// Subscribe registers a callback invoked once per published event.
// Subscriptions cannot be removed; subscribers live as long as the
// process.
func (n *CallbackNotifier) Subscribe(fn func(outbound.Event)) {
	n.mu.Lock()
	n.subscribers = append(n.subscribers, fn)
	total := len(n.subscribers)
	n.mu.Unlock()

	n.logger.Debug().Int("total_subscribers", total).Msg("Closure subscriber registered")
}

// Publish delivers the event to every subscriber in registration order.
// Delivery is synchronous: when Publish returns, every subscriber has run.
func (n *CallbackNotifier) Publish(event outbound.Event) {
	n.mu.RLock()
	subscribers := make([]func(outbound.Event), len(n.subscribers))
	copy(subscribers, n.subscribers)
	n.mu.RUnlock()

	for _, fn := range subscribers {
		n.notifyOne(fn, event)
	}
}

// notifyOne invokes a single subscriber, converting a panic into a log
// entry so one failing subscriber cannot abort the publisher.
func (n *CallbackNotifier) notifyOne(fn func(outbound.Event), event outbound.Event) {
	defer func() {
		if rec := recover(); rec != nil {
			n.logger.Error().
				Interface("panic", rec).
				Str("event_type", string(event.Type)).
				Str("listing_id", event.Listing.ID.String()).
				Msg("Closure subscriber panicked")
		}
	}()

	fn(event)
}
