package stocksapi

import (
	"math"
	"time"

	"github.com/aristath/stockfolio/internal/domain"
	"github.com/aristath/stockfolio/internal/modules/quotes"
)

// ParseQuotes validates loosely-typed snapshot entries.
// Entries without a symbol are rejected; a missing, non-numeric or negative
// cmp becomes 0; a non-numeric peRatio or earningsTimestamp becomes unknown.
// It returns the accepted snapshots and the number of rejected entries.
func ParseQuotes(raw []map[string]interface{}) ([]domain.QuoteSnapshot, int) {
	snapshots := make([]domain.QuoteSnapshot, 0, len(raw))
	rejected := 0

	for _, entry := range raw {
		symbol, ok := entry["symbol"].(string)
		if !ok || symbol == "" {
			rejected++
			continue
		}

		snap := domain.QuoteSnapshot{Symbol: symbol}
		if cmp, ok := number(entry["cmp"]); ok && cmp > 0 {
			snap.CMP = cmp
		}
		if pe, ok := number(entry["peRatio"]); ok {
			snap.PERatio = &pe
		}
		if ts, ok := number(entry["earningsTimestamp"]); ok && ts > 0 {
			v := int64(ts)
			snap.EarningsTimestamp = &v
		}

		snapshots = append(snapshots, snap)
	}

	return snapshots, rejected
}

// ParseHistory validates loosely-typed history entries.
// Entries without a symbol or a history array are rejected; bars without a
// parsable date or with non-numeric prices are dropped. Bars are returned in
// chronological order. The second result counts rejected entries and bars.
func ParseHistory(raw []map[string]interface{}) ([]domain.SymbolHistory, int) {
	histories := make([]domain.SymbolHistory, 0, len(raw))
	rejected := 0

	for _, entry := range raw {
		symbol, ok := entry["symbol"].(string)
		if !ok || symbol == "" {
			rejected++
			continue
		}
		items, ok := entry["history"].([]interface{})
		if !ok {
			rejected++
			continue
		}

		bars := make([]domain.HistoricalBar, 0, len(items))
		for _, item := range items {
			bar, ok := parseBar(item)
			if !ok {
				rejected++
				continue
			}
			bars = append(bars, bar)
		}

		histories = append(histories, domain.SymbolHistory{Symbol: symbol, History: quotes.LatestBars(bars, len(bars))})
	}

	return histories, rejected
}

func parseBar(item interface{}) (domain.HistoricalBar, bool) {
	m, ok := item.(map[string]interface{})
	if !ok {
		return domain.HistoricalBar{}, false
	}

	date, ok := parseDate(m["date"])
	if !ok {
		return domain.HistoricalBar{}, false
	}

	var bar domain.HistoricalBar
	bar.Date = date
	for key, dst := range map[string]*float64{"open": &bar.Open, "close": &bar.Close, "high": &bar.High, "low": &bar.Low} {
		v, ok := number(m[key])
		if !ok {
			return domain.HistoricalBar{}, false
		}
		*dst = v
	}
	if vol, ok := number(m["volume"]); ok && vol > 0 {
		bar.Volume = int64(vol)
	}

	return bar, true
}

func parseDate(v interface{}) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// number accepts finite JSON numbers only
func number(v interface{}) (float64, bool) {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
