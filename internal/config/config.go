package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Configuration constants
const (
	// Auction Configuration
	SweepInterval   = "SWEEP_INTERVAL"
	StartingBalance = "STARTING_BALANCE"

	// Logging Configuration
	LogLevel  = "LOG_LEVEL"
	LogFormat = "LOG_FORMAT"

	// Expiry sweep worker pool
	SweepMaxWorkers  = 10
	SweepMaxCapacity = 100
)

// Config holds all application configuration
type Config struct {
	Auction AuctionConfig
	Logging LoggingConfig
}

// AuctionConfig holds auction house configuration
type AuctionConfig struct {
	// SweepInterval is the period of the expiry sweep that closes
	// listings past their end time.
	SweepInterval time.Duration

	// StartingBalance is the balance a new account is seeded with on
	// first contact.
	StartingBalance decimal.Decimal
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// LoadConfig loads configuration from environment variables and .envrc file
func LoadConfig() (*Config, error) {
	viper.SetConfigName(".envrc")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	// Config file is optional; environment variables cover everything.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	startingBalance, err := decimal.NewFromString(viper.GetString(StartingBalance))
	if err != nil {
		return nil, fmt.Errorf("invalid starting balance %q: %w", viper.GetString(StartingBalance), err)
	}

	config := &Config{
		Auction: AuctionConfig{
			SweepInterval:   viper.GetDuration(SweepInterval),
			StartingBalance: startingBalance,
		},
		Logging: LoggingConfig{
			Level:  viper.GetString(LogLevel),
			Format: viper.GetString(LogFormat),
		},
	}

	return config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	// Auction defaults
	viper.SetDefault(SweepInterval, "30s")
	viper.SetDefault(StartingBalance, "10000")

	// Logging defaults
	viper.SetDefault(LogLevel, "info")
	viper.SetDefault(LogFormat, "json")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Auction.SweepInterval <= 0 {
		return fmt.Errorf("sweep interval must be greater than 0")
	}

	if c.Auction.StartingBalance.IsNegative() {
		return fmt.Errorf("starting balance must not be negative")
	}

	return nil
}
