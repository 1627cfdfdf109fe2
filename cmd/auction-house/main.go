package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"auction-house-service/internal/adapters/memory"
	"auction-house-service/internal/adapters/notifier"
	"auction-house-service/internal/adapters/scheduler"
	"auction-house-service/internal/app"
	"auction-house-service/internal/config"
	"auction-house-service/internal/ports/outbound"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	initLogging(cfg)

	log.Info().Msg("Starting auction house service...")
	// All auction state is process memory only: accounts, listings and
	// balances are gone after a restart.
	log.Warn().Msg("State is in-memory only and will be lost on restart")

	ledger := memory.NewLedger(memory.LedgerParams{
		StartingBalance: cfg.Auction.StartingBalance,
		Logger:          log.Logger,
	})

	registry := memory.NewRegistry(memory.RegistryParams{
		Logger: log.Logger,
	})

	closureNotifier := notifier.NewCallbackNotifier(notifier.CallbackNotifierParams{
		Logger: log.Logger,
	})

	auctionService := app.NewAuctionService(app.AuctionServiceParams{
		Registry: registry,
		Ledger:   ledger,
		Notifier: closureNotifier,
		Logger:   log.Logger,
	})

	log.Info().Msg("Auction service initialized")

	// The transport layer subscribes here to tell creator and winner
	// about a finished auction; until one is wired in, closures are at
	// least visible in the log.
	auctionService.OnListingClosed(func(event outbound.Event) {
		log.Info().
			Str("listing_id", event.Listing.ID.String()).
			Str("name", event.Listing.Name).
			Str("winner", event.Listing.HighestBidderName).
			Str("final_price", event.Listing.CurrentPrice.String()).
			Msg("Listing closed")
	})

	sweeper := scheduler.NewExpirySweeper(scheduler.ExpirySweeperParams{
		Registry: registry,
		Ledger:   ledger,
		Notifier: closureNotifier,
		Interval: cfg.Auction.SweepInterval,
		Logger:   log.Logger,
	})

	sweeper.Start()
	log.Info().Msg("Expiry sweeper started")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	// Graceful shutdown
	log.Info().Msg("Starting graceful shutdown...")

	sweeper.Stop()
	log.Info().Msg("Expiry sweeper stopped")

	log.Info().Msg("Graceful shutdown completed")
}

func initLogging(cfg *config.Config) {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Set log format
	if cfg.Logging.Format == "json" {
		// JSON format (default)
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		// Console format for development
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		log.Logger = zerolog.New(output).With().Timestamp().Logger()
	}

	zerolog.DefaultContextLogger = &log.Logger
}
