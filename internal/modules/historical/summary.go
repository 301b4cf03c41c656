// Package historical summarizes the daily bars held by the dashboard.
package historical

import (
	"math"
	"time"

	"github.com/markcheno/go-talib"
	"gonum.org/v1/gonum/stat"

	"github.com/aristath/stockfolio/internal/domain"
)

// Indicator periods
const (
	SMAPeriod = 20
	RSIPeriod = 14
)

// Summary describes a chronological bar series
type Summary struct {
	Symbol string `json:"symbol"`
	// Points is the number of bars held ("History Points" on the page)
	Points int `json:"points"`

	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`

	FirstClose  float64  `json:"firstClose"`
	LastClose   float64  `json:"lastClose"`
	Change      float64  `json:"change"`
	ChangePct   float64  `json:"changePct"`
	High        float64  `json:"high"`
	Low         float64  `json:"low"`
	MeanClose   float64  `json:"meanClose"`
	StdDevClose float64  `json:"stdDevClose"`
	MaxDrawdown *float64 `json:"maxDrawdown"`
	SMA20       *float64 `json:"sma20"`
	RSI14       *float64 `json:"rsi14"`
}

// Summarize computes statistics over bars, which must be in chronological order.
// Indicators that need more bars than available are nil.
func Summarize(symbol string, bars []domain.HistoricalBar) Summary {
	s := Summary{Symbol: symbol, Points: len(bars)}
	if len(bars) == 0 {
		return s
	}

	closes := Closes(bars)
	from, to := bars[0].Date, bars[len(bars)-1].Date
	s.From, s.To = &from, &to

	s.FirstClose = closes[0]
	s.LastClose = closes[len(closes)-1]
	s.Change = s.LastClose - s.FirstClose
	if s.FirstClose != 0 {
		s.ChangePct = s.Change / s.FirstClose * 100
	}

	s.High, s.Low = bars[0].High, bars[0].Low
	for _, b := range bars[1:] {
		s.High = math.Max(s.High, b.High)
		s.Low = math.Min(s.Low, b.Low)
	}

	s.MeanClose = stat.Mean(closes, nil)
	if len(closes) > 1 {
		s.StdDevClose = stat.StdDev(closes, nil)
	}

	s.MaxDrawdown = MaxDrawdown(closes)
	s.SMA20 = lastValue(closes, SMAPeriod, func(in []float64) []float64 { return talib.Sma(in, SMAPeriod) })
	if len(closes) > RSIPeriod {
		s.RSI14 = lastValue(closes, RSIPeriod, func(in []float64) []float64 { return talib.Rsi(in, RSIPeriod) })
	}

	return s
}

// Closes extracts closing prices
func Closes(bars []domain.HistoricalBar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

// MaxDrawdown returns the largest peak-to-trough decline as a fraction
// (0.25 = 25%), or nil with fewer than two prices.
func MaxDrawdown(prices []float64) *float64 {
	if len(prices) < 2 {
		return nil
	}

	maxDrawdown := 0.0
	peak := prices[0]
	for _, price := range prices {
		if price > peak {
			peak = price
		}
		if peak > 0 {
			if dd := (peak - price) / peak; dd > maxDrawdown {
				maxDrawdown = dd
			}
		}
	}
	return &maxDrawdown
}

func lastValue(in []float64, period int, indicator func([]float64) []float64) *float64 {
	if len(in) < period {
		return nil
	}
	out := indicator(in)
	if len(out) == 0 {
		return nil
	}
	v := out[len(out)-1]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
