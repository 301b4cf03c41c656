package quotes

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aristath/stockfolio/internal/domain"
)

// FormatEarningsTimestamp renders a Unix-seconds earnings timestamp as a UTC date
func FormatEarningsTimestamp(ts *int64) string {
	if ts == nil || *ts <= 0 {
		return ""
	}
	return time.Unix(*ts, 0).UTC().Format(domain.EarningsDateLayout)
}

// ToLiveQuote converts a provider snapshot into the view representation.
// Non-finite or negative prices become 0.
func ToLiveQuote(s domain.QuoteSnapshot) domain.LiveQuote {
	cmp := decimal.Zero
	if !math.IsNaN(s.CMP) && !math.IsInf(s.CMP, 0) && s.CMP > 0 {
		cmp = decimal.NewFromFloat(s.CMP)
	}

	var pe *float64
	if s.PERatio != nil && !math.IsNaN(*s.PERatio) && !math.IsInf(*s.PERatio, 0) {
		v := *s.PERatio
		pe = &v
	}

	return domain.LiveQuote{
		CMP:            cmp,
		PERatio:        pe,
		LatestEarnings: FormatEarningsTimestamp(s.EarningsTimestamp),
	}
}

// ToLiveQuotes builds a symbol-keyed quote map. Entries without a symbol are skipped.
func ToLiveQuotes(snapshots []domain.QuoteSnapshot) map[string]domain.LiveQuote {
	quotes := make(map[string]domain.LiveQuote, len(snapshots))
	for _, s := range snapshots {
		if s.Symbol == "" {
			continue
		}
		quotes[s.Symbol] = ToLiveQuote(s)
	}
	return quotes
}

// ToHistoryMap builds a symbol-keyed history map
func ToHistoryMap(histories []domain.SymbolHistory) map[string][]domain.HistoricalBar {
	history := make(map[string][]domain.HistoricalBar, len(histories))
	for _, h := range histories {
		if h.Symbol == "" {
			continue
		}
		history[h.Symbol] = h.History
	}
	return history
}

// LatestBars sorts bars chronologically and keeps the most recent days entries.
// The input slice is not modified.
func LatestBars(bars []domain.HistoricalBar, days int) []domain.HistoricalBar {
	out := make([]domain.HistoricalBar, len(bars))
	copy(out, bars)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})

	if days >= 0 && len(out) > days {
		out = out[len(out)-days:]
	}
	return out
}
