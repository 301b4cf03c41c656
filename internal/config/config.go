// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/aristath/stockfolio/internal/modules/portfolio"
	"github.com/aristath/stockfolio/internal/modules/quotes"
	"github.com/aristath/stockfolio/internal/scheduler"
)

// Config holds application configuration
type Config struct {
	Port            int
	LogLevel        string
	DevMode         bool
	HoldingsFile    string // Empty selects the embedded default holdings
	QuoteProvider   string // "mock" or "yahoo"
	MockSeed        int64  // 0 = time based
	HistoryDays     int
	RefreshSchedule string
	PercentMode     portfolio.PercentMode
	ProviderTimeout time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	mode, err := portfolio.ParsePercentMode(getEnv("PERCENT_MODE", string(portfolio.PercentOfFiltered)))
	if err != nil {
		return nil, fmt.Errorf("invalid PERCENT_MODE: %w", err)
	}

	cfg := &Config{
		Port:            getEnvAsInt("PORT", 8001),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DevMode:         getEnvAsBool("DEV_MODE", false),
		HoldingsFile:    getEnv("HOLDINGS_FILE", ""),
		QuoteProvider:   getEnv("QUOTE_PROVIDER", quotes.ProviderMock),
		MockSeed:        int64(getEnvAsInt("MOCK_SEED", 0)),
		HistoryDays:     getEnvAsInt("HISTORY_DAYS", 60),
		RefreshSchedule: getEnv("REFRESH_SCHEDULE", "@every 60s"),
		PercentMode:     mode,
		ProviderTimeout: getEnvAsDuration("PROVIDER_TIMEOUT", 10*time.Second),
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for unusable values
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}

	switch c.QuoteProvider {
	case quotes.ProviderMock, quotes.ProviderYahoo:
	default:
		return fmt.Errorf("invalid QUOTE_PROVIDER: %w: %q", quotes.ErrUnknownProvider, c.QuoteProvider)
	}

	if _, err := portfolio.ParsePercentMode(string(c.PercentMode)); err != nil {
		return fmt.Errorf("invalid PERCENT_MODE: %w", err)
	}

	if c.HistoryDays <= 0 {
		return fmt.Errorf("HISTORY_DAYS must be positive, got %d", c.HistoryDays)
	}
	if c.HistoryDays > quotes.MaxHistoryDays {
		return fmt.Errorf("HISTORY_DAYS must not exceed %d, got %d", quotes.MaxHistoryDays, c.HistoryDays)
	}

	if c.ProviderTimeout <= 0 {
		return fmt.Errorf("PROVIDER_TIMEOUT must be positive, got %s", c.ProviderTimeout)
	}

	if err := scheduler.ValidateSchedule(c.RefreshSchedule); err != nil {
		return fmt.Errorf("invalid REFRESH_SCHEDULE %q: %w", c.RefreshSchedule, err)
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
