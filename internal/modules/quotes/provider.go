// Package quotes provides live quote and daily history providers.
package quotes

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/stockfolio/internal/domain"
)

// ErrUnknownProvider is returned by NewProvider for an unsupported provider name
var ErrUnknownProvider = errors.New("unknown quote provider")

// Provider names accepted by NewProvider
const (
	ProviderMock  = "mock"
	ProviderYahoo = "yahoo"
)

// MaxHistoryDays bounds any daily history request
const MaxHistoryDays = 3650

// ErrHistoryRange is returned for a history request outside 0..MaxHistoryDays
var ErrHistoryRange = errors.New("history days out of range")

// ValidateHistoryDays checks days against 0..MaxHistoryDays
func ValidateHistoryDays(days int) error {
	if days < 0 || days > MaxHistoryDays {
		return fmt.Errorf("%w: %d (max %d)", ErrHistoryRange, days, MaxHistoryDays)
	}
	return nil
}

// Options configures NewProvider
type Options struct {
	// Seed for the mock provider; 0 selects a time based seed.
	Seed int64
	// Now overrides the mock provider clock.
	Now func() time.Time
}

// NewProvider creates the quote provider registered under name
func NewProvider(name string, opts Options, log zerolog.Logger) (domain.QuoteProvider, error) {
	switch name {
	case "", ProviderMock:
		return NewMockProvider(opts.Seed, opts.Now), nil
	case ProviderYahoo:
		return NewYahooProvider(log), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
}
