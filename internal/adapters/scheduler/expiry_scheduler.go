package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"auction-house-service/internal/config"
	"auction-house-service/internal/domain/listing"
	"auction-house-service/internal/domain/shared"
	"auction-house-service/internal/ports/outbound"

	"github.com/alitto/pond"
	"github.com/rs/zerolog"
)

// ExpirySweeper drives the auction lifecycle: on a fixed period it scans
// the registry for listings past their end time, closes them, and
// publishes one closure event per listing.
//
// Ticks never overlap: a tick waits for all of its closures before the
// next one can fire, so a slow subscriber may delay the next sweep but a
// listing is only ever closed once. Closures are a few seconds late at
// worst, never early.
type ExpirySweeper struct {
	registry outbound.ListingRegistry
	ledger   outbound.Ledger
	notifier outbound.ClosureNotifier
	interval time.Duration
	pool     *pond.WorkerPool
	logger   zerolog.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

type ExpirySweeperParams struct {
	Registry outbound.ListingRegistry
	Ledger   outbound.Ledger
	Notifier outbound.ClosureNotifier
	Interval time.Duration
	Logger   zerolog.Logger
}

// NewExpirySweeper creates a stopped sweeper. Call Start to begin
// sweeping.
func NewExpirySweeper(params ExpirySweeperParams) *ExpirySweeper {
	ctx, cancel := context.WithCancel(context.Background())

	pool := pond.New(
		config.SweepMaxWorkers,
		config.SweepMaxCapacity,
		pond.Context(ctx),
		pond.Strategy(pond.Balanced()),
	)

	return &ExpirySweeper{
		registry: params.Registry,
		ledger:   params.Ledger,
		notifier: params.Notifier,
		interval: params.Interval,
		pool:     pool,
		logger:   params.Logger.With().Str("component", "expiry_sweeper").Logger(),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins the sweep loop.
func (s *ExpirySweeper) Start() {
	s.logger.Info().Dur("interval", s.interval).Msg("Starting expiry sweeper")

	s.wg.Add(1)
	go s.sweepLoop()
}

// Stop gracefully stops the sweeper: no new tick is scheduled and an
// in-flight tick finishes before Stop returns.
func (s *ExpirySweeper) Stop() {
	s.logger.Info().Msg("Stopping expiry sweeper")
	s.cancel()
	s.wg.Wait()
	s.pool.Stop()
}

func (s *ExpirySweeper) sweepLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.ctx.Done():
			s.logger.Info().Msg("Sweep loop stopped")
			return
		}
	}
}

// sweep closes every listing whose end time has passed. The expired set is
// snapshotted first so no registry lock is held while closing, and the
// closures of one tick run on the bounded worker pool.
func (s *ExpirySweeper) sweep() {
	expired := s.registry.ExpiredListings(time.Now())
	if len(expired) == 0 {
		return
	}

	s.logger.Debug().Int("count", len(expired)).Msg("Found expired listings")

	group := s.pool.Group()
	for _, l := range expired {
		l := l
		group.Submit(func() {
			s.closeListing(l)
		})
	}
	group.Wait()
}

// closeListing ends one auction and publishes its closure event. A failure
// here is logged and contained so the remaining listings of the tick still
// close.
func (s *ExpirySweeper) closeListing(l *listing.Listing) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error().
				Interface("panic", rec).
				Str("listing_id", l.ID.String()).
				Msg("Panic while closing listing")
		}
	}()

	if err := l.EndAuction(s.ledger); err != nil {
		if errors.Is(err, shared.ErrAuctionClosed) {
			// Lost a race against another closure path; the first
			// closure already notified.
			return
		}
		s.logger.Error().Err(err).Str("listing_id", l.ID.String()).Msg("Failed to close listing")
		return
	}

	snap := l.Snapshot()
	s.notifier.Publish(outbound.Event{
		Type:      outbound.EventTypeListingClosed,
		Listing:   snap,
		Timestamp: time.Now().Unix(),
	})

	s.logger.Info().
		Str("listing_id", snap.ID.String()).
		Str("winner", snap.HighestBidderName).
		Str("final_price", snap.CurrentPrice.String()).
		Msg("Listing closed")
}
