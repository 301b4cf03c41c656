package quotes

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/stockfolio/internal/domain"
)

// Fetcher adapts a QuoteProvider to the view-side fetch operations,
// converting provider payloads into symbol-keyed maps.
type Fetcher struct {
	provider domain.QuoteProvider
	timeout  time.Duration
	log      zerolog.Logger
}

// NewFetcher creates an in-process fetcher. A zero timeout disables the per-call deadline.
func NewFetcher(provider domain.QuoteProvider, timeout time.Duration, log zerolog.Logger) *Fetcher {
	return &Fetcher{
		provider: provider,
		timeout:  timeout,
		log:      log.With().Str("component", "quote_fetcher").Logger(),
	}
}

// FetchQuotes returns the live quotes for symbols
func (f *Fetcher) FetchQuotes(ctx context.Context, symbols []string) (map[string]domain.LiveQuote, error) {
	ctx, cancel := f.withTimeout(ctx)
	defer cancel()

	snapshots, err := f.provider.GetQuotes(ctx, symbols)
	if err != nil {
		return nil, fmt.Errorf("failed to get quotes: %w", err)
	}

	f.log.Debug().Int("requested", len(symbols)).Int("received", len(snapshots)).Msg("Fetched quotes")
	return ToLiveQuotes(snapshots), nil
}

// FetchHistory returns up to days most-recent daily bars per symbol
func (f *Fetcher) FetchHistory(ctx context.Context, symbols []string, days int) (map[string][]domain.HistoricalBar, error) {
	ctx, cancel := f.withTimeout(ctx)
	defer cancel()

	histories, err := f.provider.GetHistory(ctx, symbols, days)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	for i := range histories {
		histories[i].History = LatestBars(histories[i].History, days)
	}

	f.log.Debug().Int("requested", len(symbols)).Int("received", len(histories)).Msg("Fetched history")
	return ToHistoryMap(histories), nil
}

func (f *Fetcher) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if f.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, f.timeout)
}
