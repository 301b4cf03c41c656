package testing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/aristath/stockfolio/internal/domain"
)

// NewHoldingFixtures returns a small two-sector portfolio: TCS and INFY in
// Tech, RELIANCE in Energy. Total investment is 10000.
func NewHoldingFixtures() []domain.Holding {
	return []domain.Holding{
		{
			StockName:     "Tata Consultancy Services",
			Exchange:      "NSE",
			Symbol:        "TCS.NS",
			Sector:        "Tech",
			PurchasePrice: decimal.NewFromInt(3000),
			Quantity:      1,
		},
		{
			StockName:     "Infosys",
			Exchange:      "NSE",
			Symbol:        "INFY.NS",
			Sector:        "Tech",
			PurchasePrice: decimal.NewFromInt(1500),
			Quantity:      2,
		},
		{
			StockName:     "Reliance Industries",
			Exchange:      "NSE",
			Symbol:        "RELIANCE.NS",
			Sector:        "Energy",
			PurchasePrice: decimal.NewFromInt(2000),
			Quantity:      2,
		},
	}
}

// NewQuoteSnapshotFixtures returns provider snapshots for the holding fixtures.
// RELIANCE.NS has no P/E and no earnings date.
func NewQuoteSnapshotFixtures() []domain.QuoteSnapshot {
	pe := 28.5
	earnings := time.Date(2026, time.July, 24, 0, 0, 0, 0, time.UTC).Unix()
	return []domain.QuoteSnapshot{
		{Symbol: "TCS.NS", CMP: 3300, PERatio: &pe, EarningsTimestamp: &earnings},
		{Symbol: "INFY.NS", CMP: 1400, PERatio: &pe, EarningsTimestamp: &earnings},
		{Symbol: "RELIANCE.NS", CMP: 2500},
	}
}

// NewHistoryFixtures returns days chronological daily bars for each symbol,
// ending on 2026-10-16, with closes rising by 1 per day from 100.
func NewHistoryFixtures(days int, symbols ...string) []domain.SymbolHistory {
	end := time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC)
	result := make([]domain.SymbolHistory, 0, len(symbols))
	for _, symbol := range symbols {
		bars := make([]domain.HistoricalBar, 0, days)
		for i := 0; i < days; i++ {
			c := 100 + float64(i)
			bars = append(bars, domain.HistoricalBar{
				Date:   end.AddDate(0, 0, i-days+1),
				Open:   c - 0.5,
				Close:  c,
				High:   c + 1,
				Low:    c - 1,
				Volume: 1000 + int64(i),
			})
		}
		result = append(result, domain.SymbolHistory{Symbol: symbol, History: bars})
	}
	return result
}
