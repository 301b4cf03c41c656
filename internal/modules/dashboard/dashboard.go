// Package dashboard owns the live state behind the portfolio views: the quote
// map, the history map and the refresh cycle that replaces them.
package dashboard

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/stockfolio/internal/domain"
	"github.com/aristath/stockfolio/internal/modules/portfolio"
)

// Fetcher retrieves live data for the view. Implemented in-process by
// quotes.Fetcher and over HTTP by stocksapi.Client.
type Fetcher interface {
	FetchQuotes(ctx context.Context, symbols []string) (map[string]domain.LiveQuote, error)
	FetchHistory(ctx context.Context, symbols []string, days int) (map[string][]domain.HistoricalBar, error)
}

// Dashboard holds the quote and history maps for the portfolio.
//
// Each map is replaced as a whole. Every refresh draws a generation number and
// a result is applied only when its generation is newer than the one already
// applied to that map, so a slow stale response never overwrites a newer one.
type Dashboard struct {
	portfolio   *portfolio.PortfolioService
	fetcher     Fetcher
	historyDays int
	now         func() time.Time
	log         zerolog.Logger

	nextGen atomic.Uint64

	mu               sync.RWMutex
	quotes           map[string]domain.LiveQuote
	quotesGen        uint64
	quotesUpdatedAt  time.Time
	history          map[string][]domain.HistoricalBar
	historyGen       uint64
	historyUpdatedAt time.Time
	lastRefresh      *RefreshResult

	subMu sync.Mutex
	subs  map[chan struct{}]struct{}
}

// Config holds dashboard configuration
type Config struct {
	Portfolio   *portfolio.PortfolioService
	Fetcher     Fetcher
	HistoryDays int
	Log         zerolog.Logger
}

// New creates a new dashboard with empty quote and history maps
func New(cfg Config) *Dashboard {
	return &Dashboard{
		portfolio:   cfg.Portfolio,
		fetcher:     cfg.Fetcher,
		historyDays: cfg.HistoryDays,
		now:         time.Now,
		log:         cfg.Log.With().Str("component", "dashboard").Logger(),
		quotes:      make(map[string]domain.LiveQuote),
		history:     make(map[string][]domain.HistoricalBar),
		subs:        make(map[chan struct{}]struct{}),
	}
}

// Portfolio returns the portfolio service the dashboard renders
func (d *Dashboard) Portfolio() *portfolio.PortfolioService {
	return d.portfolio
}

// NextGeneration draws a new, strictly increasing generation number
func (d *Dashboard) NextGeneration() uint64 {
	return d.nextGen.Add(1)
}

// ReplaceQuotes swaps in a new quote map if gen is newer than the applied one.
// It reports whether the map was applied.
func (d *Dashboard) ReplaceQuotes(gen uint64, quotes map[string]domain.LiveQuote) bool {
	d.mu.Lock()
	if gen <= d.quotesGen {
		d.mu.Unlock()
		return false
	}
	if quotes == nil {
		quotes = make(map[string]domain.LiveQuote)
	}
	d.quotes = quotes
	d.quotesGen = gen
	d.quotesUpdatedAt = d.now()
	d.mu.Unlock()

	d.notify()
	return true
}

// ReplaceHistory swaps in a new history map if gen is newer than the applied one.
// It reports whether the map was applied.
func (d *Dashboard) ReplaceHistory(gen uint64, history map[string][]domain.HistoricalBar) bool {
	d.mu.Lock()
	if gen <= d.historyGen {
		d.mu.Unlock()
		return false
	}
	if history == nil {
		history = make(map[string][]domain.HistoricalBar)
	}
	d.history = history
	d.historyGen = gen
	d.historyUpdatedAt = d.now()
	d.mu.Unlock()

	d.notify()
	return true
}

// Quotes returns the current quote map. The map must not be modified.
func (d *Dashboard) Quotes() map[string]domain.LiveQuote {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.quotes
}

// History returns the bars held for symbol. known is false when the symbol is
// not part of the portfolio.
func (d *Dashboard) History(symbol string) ([]domain.HistoricalBar, bool) {
	known := false
	for _, h := range d.portfolio.Holdings() {
		if h.Symbol == symbol {
			known = true
			break
		}
	}
	if !known {
		return nil, false
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.history[symbol], true
}

// LastRefresh returns the outcome of the most recent refresh, if any
func (d *Dashboard) LastRefresh() *RefreshResult {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lastRefresh
}

// FetchStatus is the outcome of one fetch within a refresh
type FetchStatus struct {
	OK      bool   `json:"ok"`
	Applied bool   `json:"applied"`
	Count   int    `json:"count"`
	Error   string `json:"error,omitempty"`
}

// RefreshResult is the outcome of a refresh cycle
type RefreshResult struct {
	ID         string        `json:"id"`
	Generation uint64        `json:"generation"`
	StartedAt  time.Time     `json:"startedAt"`
	Duration   time.Duration `json:"durationNs"`
	Quotes     FetchStatus   `json:"quotes"`
	History    FetchStatus   `json:"history"`
}

// Failed reports whether both fetches failed
func (r RefreshResult) Failed() bool {
	return !r.Quotes.OK && !r.History.OK
}

// Refresh fetches live quotes and history concurrently and applies each result
// as soon as it arrives. Fetch failures are logged and leave the previous map
// in place.
func (d *Dashboard) Refresh(ctx context.Context) RefreshResult {
	result := RefreshResult{
		ID:         uuid.New().String(),
		Generation: d.NextGeneration(),
		StartedAt:  d.now(),
	}
	symbols := d.portfolio.Symbols()
	log := d.log.With().Str("refresh_id", result.ID).Uint64("generation", result.Generation).Logger()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		quotes, err := d.fetcher.FetchQuotes(ctx, symbols)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to fetch live quotes, keeping previous data")
			result.Quotes = FetchStatus{Error: err.Error()}
			return
		}
		applied := d.ReplaceQuotes(result.Generation, quotes)
		if !applied {
			log.Debug().Msg("Discarded stale quote result")
		}
		result.Quotes = FetchStatus{OK: true, Applied: applied, Count: len(quotes)}
	}()

	go func() {
		defer wg.Done()
		history, err := d.fetcher.FetchHistory(ctx, symbols, d.historyDays)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to fetch history, keeping previous data")
			result.History = FetchStatus{Error: err.Error()}
			return
		}
		applied := d.ReplaceHistory(result.Generation, history)
		if !applied {
			log.Debug().Msg("Discarded stale history result")
		}
		result.History = FetchStatus{OK: true, Applied: applied, Count: len(history)}
	}()

	wg.Wait()
	result.Duration = d.now().Sub(result.StartedAt)

	d.mu.Lock()
	if d.lastRefresh == nil || d.lastRefresh.Generation < result.Generation {
		r := result
		d.lastRefresh = &r
	}
	d.mu.Unlock()

	log.Info().
		Int("symbols", len(symbols)).
		Bool("quotes_ok", result.Quotes.OK).
		Int("quotes", result.Quotes.Count).
		Bool("history_ok", result.History.OK).
		Int("histories", result.History.Count).
		Dur("duration", result.Duration).
		Msg("Dashboard refresh finished")

	return result
}

// Subscribe registers for change notifications. The channel receives a value
// (coalesced) whenever a map is replaced. Call the returned func to unsubscribe.
func (d *Dashboard) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	d.subMu.Lock()
	d.subs[ch] = struct{}{}
	d.subMu.Unlock()

	return ch, func() {
		d.subMu.Lock()
		delete(d.subs, ch)
		d.subMu.Unlock()
	}
}

func (d *Dashboard) notify() {
	d.subMu.Lock()
	defer d.subMu.Unlock()
	for ch := range d.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
