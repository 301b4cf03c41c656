package quotes

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/aristath/stockfolio/internal/domain"
)

// MockProvider generates random market data.
//
// Live snapshots use a price in [0, 1000), a P/E in [20, 30) and an earnings
// timestamp of "now". History is a random walk of daily bars ending today.
type MockProvider struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewMockProvider creates a mock provider. A zero seed is replaced by the
// current time; a nil clock uses time.Now.
func NewMockProvider(seed int64, now func() time.Time) *MockProvider {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if now == nil {
		now = time.Now
	}
	return &MockProvider{
		rng: rand.New(rand.NewSource(seed)),
		now: now,
	}
}

// GetQuotes returns one snapshot per requested symbol
func (p *MockProvider) GetQuotes(ctx context.Context, symbols []string) ([]domain.QuoteSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	earnings := p.now().Unix()
	snapshots := make([]domain.QuoteSnapshot, 0, len(symbols))
	for _, symbol := range symbols {
		pe := 20 + p.rng.Float64()*10
		ts := earnings
		snapshots = append(snapshots, domain.QuoteSnapshot{
			Symbol:            symbol,
			CMP:               math.Floor(p.rng.Float64() * 1000),
			PERatio:           &pe,
			EarningsTimestamp: &ts,
		})
	}
	return snapshots, nil
}

// GetHistory returns days daily bars per symbol in chronological order
func (p *MockProvider) GetHistory(ctx context.Context, symbols []string, days int) ([]domain.SymbolHistory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateHistoryDays(days); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	y, m, d := p.now().UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	result := make([]domain.SymbolHistory, 0, len(symbols))
	for _, symbol := range symbols {
		bars := make([]domain.HistoricalBar, 0, days)
		price := 50 + p.rng.Float64()*950
		for i := days - 1; i >= 0; i-- {
			open := price
			closePrice := math.Max(1, open*(1+(p.rng.Float64()-0.5)*0.04))
			high := math.Max(open, closePrice) * (1 + p.rng.Float64()*0.01)
			low := math.Min(open, closePrice) * (1 - p.rng.Float64()*0.01)
			bars = append(bars, domain.HistoricalBar{
				Date:   today.AddDate(0, 0, -i),
				Open:   round2(open),
				Close:  round2(closePrice),
				High:   round2(high),
				Low:    round2(low),
				Volume: 10_000 + p.rng.Int63n(990_000),
			})
			price = closePrice
		}
		result = append(result, domain.SymbolHistory{Symbol: symbol, History: bars})
	}
	return result, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
