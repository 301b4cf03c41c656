package quotes

import (
	"context"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/equity"
	"github.com/rs/zerolog"

	"github.com/aristath/stockfolio/internal/domain"
)

// YahooProvider fetches quotes and daily bars from Yahoo Finance.
// Symbols that fail are logged and left out of the result.
type YahooProvider struct {
	log zerolog.Logger
	now func() time.Time
}

// NewYahooProvider creates a new Yahoo Finance provider
func NewYahooProvider(log zerolog.Logger) *YahooProvider {
	return &YahooProvider{
		log: log.With().Str("client", "yahoo").Logger(),
		now: time.Now,
	}
}

// GetQuotes fetches a live snapshot for each symbol
func (p *YahooProvider) GetQuotes(ctx context.Context, symbols []string) ([]domain.QuoteSnapshot, error) {
	snapshots, err := awaitContext(ctx, func() ([]domain.QuoteSnapshot, error) {
		return p.fetchQuotes(symbols)
	})
	if err != nil {
		return nil, err
	}

	if missing := len(symbols) - len(snapshots); missing > 0 {
		p.log.Warn().Int("missing", missing).Int("requested", len(symbols)).Msg("Yahoo returned partial quotes")
	}

	return snapshots, nil
}

func (p *YahooProvider) fetchQuotes(symbols []string) ([]domain.QuoteSnapshot, error) {
	snapshots := make([]domain.QuoteSnapshot, 0, len(symbols))

	iter := equity.List(symbols)
	for iter.Next() {
		q := iter.Equity()
		snap := domain.QuoteSnapshot{
			Symbol: q.Symbol,
			CMP:    q.RegularMarketPrice,
		}
		if q.TrailingPE > 0 {
			pe := q.TrailingPE
			snap.PERatio = &pe
		}
		if q.EarningsTimestamp > 0 {
			ts := int64(q.EarningsTimestamp)
			snap.EarningsTimestamp = &ts
		}
		snapshots = append(snapshots, snap)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	return snapshots, nil
}

// GetHistory fetches daily bars for each symbol over the last days days
func (p *YahooProvider) GetHistory(ctx context.Context, symbols []string, days int) ([]domain.SymbolHistory, error) {
	if err := ValidateHistoryDays(days); err != nil {
		return nil, err
	}

	end := p.now()
	// Weekends and holidays leave gaps, so ask for a wider window and trim.
	start := end.AddDate(0, 0, -days*2)

	result := make([]domain.SymbolHistory, 0, len(symbols))
	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		bars, err := awaitContext(ctx, func() ([]domain.HistoricalBar, error) {
			return p.fetchBars(symbol, start, end)
		})
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if err != nil {
			p.log.Warn().Err(err).Str("symbol", symbol).Msg("Failed to fetch history")
			continue
		}

		result = append(result, domain.SymbolHistory{
			Symbol:  symbol,
			History: LatestBars(bars, days),
		})
	}

	return result, nil
}

func (p *YahooProvider) fetchBars(symbol string, start, end time.Time) ([]domain.HistoricalBar, error) {
	iter := chart.Get(&chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	})

	var bars []domain.HistoricalBar
	for iter.Next() {
		b := iter.Bar()
		open, _ := b.Open.Float64()
		closePrice, _ := b.Close.Float64()
		high, _ := b.High.Float64()
		low, _ := b.Low.Float64()

		bars = append(bars, domain.HistoricalBar{
			Date:   time.Unix(int64(b.Timestamp), 0).UTC(),
			Open:   open,
			Close:  closePrice,
			High:   high,
			Low:    low,
			Volume: int64(b.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	return bars, nil
}

// awaitContext runs fn and returns early with ctx.Err() once ctx is done.
// finance-go requests take no context, so an abandoned call finishes in the
// background and its result is dropped.
func awaitContext[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type outcome struct {
		val T
		err error
	}

	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}

	done := make(chan outcome, 1)
	go func() {
		val, err := fn()
		done <- outcome{val: val, err: err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case out := <-done:
		return out.val, out.err
	}
}
