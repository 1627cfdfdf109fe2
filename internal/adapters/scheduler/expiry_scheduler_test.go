package scheduler

import (
	"sync"
	"testing"
	"time"

	"auction-house-service/internal/adapters/memory"
	"auction-house-service/internal/adapters/notifier"
	"auction-house-service/internal/domain/listing"
	"auction-house-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type sweeperFixture struct {
	ledger   *memory.Ledger
	registry *memory.Registry
	notifier *notifier.CallbackNotifier
	sweeper  *ExpirySweeper

	mu     sync.Mutex
	events []outbound.Event
}

func newFixture(t *testing.T, interval time.Duration) *sweeperFixture {
	t.Helper()

	f := &sweeperFixture{
		ledger: memory.NewLedger(memory.LedgerParams{
			StartingBalance: decimal.NewFromInt(10000),
			Logger:          zerolog.Nop(),
		}),
		registry: memory.NewRegistry(memory.RegistryParams{Logger: zerolog.Nop()}),
		notifier: notifier.NewCallbackNotifier(notifier.CallbackNotifierParams{Logger: zerolog.Nop()}),
	}

	f.notifier.Subscribe(func(e outbound.Event) {
		f.mu.Lock()
		f.events = append(f.events, e)
		f.mu.Unlock()
	})

	f.sweeper = NewExpirySweeper(ExpirySweeperParams{
		Registry: f.registry,
		Ledger:   f.ledger,
		Notifier: f.notifier,
		Interval: interval,
		Logger:   zerolog.Nop(),
	})

	return f
}

func (f *sweeperFixture) addListing(duration time.Duration) *listing.Listing {
	creator := f.ledger.GetOrCreate("creator", "Creator")
	l := listing.New(listing.Params{
		Name:         "item",
		InitialPrice: decimal.NewFromInt(100),
		Creator:      creator,
		Duration:     duration,
	})
	f.registry.Add(l)
	return l
}

func (f *sweeperFixture) eventCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

func TestExpirySweeper_ClosesExpiredListingExactlyOnce(t *testing.T) {
	f := newFixture(t, 10*time.Millisecond)
	l := f.addListing(time.Millisecond)

	f.sweeper.Start()
	defer f.sweeper.Stop()

	require.Eventually(t, func() bool {
		return !l.IsActive()
	}, time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		return f.eventCount() == 1
	}, time.Second, 5*time.Millisecond)

	// Later ticks must not notify again for the same listing.
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, 1, f.eventCount())

	f.mu.Lock()
	event := f.events[0]
	f.mu.Unlock()
	require.Equal(t, outbound.EventTypeListingClosed, event.Type)
	require.Equal(t, l.ID, event.Listing.ID)
	require.False(t, event.Listing.Active)
}

func TestExpirySweeper_LeavesRunningListingsAlone(t *testing.T) {
	f := newFixture(t, 10*time.Millisecond)
	l := f.addListing(time.Hour)

	f.sweeper.Start()
	defer f.sweeper.Stop()

	time.Sleep(50 * time.Millisecond)
	require.True(t, l.IsActive())
	require.Zero(t, f.eventCount())
}

func TestExpirySweeper_PanickingSubscriberDoesNotStopTheTick(t *testing.T) {
	f := newFixture(t, 10*time.Millisecond)
	f.notifier.Subscribe(func(outbound.Event) { panic("subscriber bug") })

	first := f.addListing(time.Millisecond)
	second := f.addListing(time.Millisecond)

	f.sweeper.Start()
	defer f.sweeper.Stop()

	// Both listings close and both closures are delivered to the healthy
	// subscriber despite the panicking one.
	require.Eventually(t, func() bool {
		return !first.IsActive() && !second.IsActive() && f.eventCount() == 2
	}, time.Second, 5*time.Millisecond)

	f.mu.Lock()
	seen := map[uuid.UUID]bool{}
	for _, e := range f.events {
		seen[e.Listing.ID] = true
	}
	f.mu.Unlock()
	require.True(t, seen[first.ID])
	require.True(t, seen[second.ID])
}

func TestExpirySweeper_StopPreventsFurtherTicks(t *testing.T) {
	f := newFixture(t, 10*time.Millisecond)

	f.sweeper.Start()
	f.sweeper.Stop()

	l := f.addListing(time.Millisecond)
	time.Sleep(50 * time.Millisecond)

	require.True(t, l.IsActive())
	require.Zero(t, f.eventCount())
}
