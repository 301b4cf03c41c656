// Package domain provides core domain models and types.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnknownValue is rendered for quote fields that have not been fetched.
const UnknownValue = "-"

// EarningsDateLayout is the display layout for the next earnings date.
const EarningsDateLayout = "Jan 02 2006"

// Holding represents a single static stock position in the portfolio
type Holding struct {
	StockName     string          `json:"stockName"`
	Exchange      string          `json:"exchange"`
	Symbol        string          `json:"symbol"`
	Sector        string          `json:"sector"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	Quantity      int64           `json:"quantity"`
}

// Investment returns the capital committed at purchase price
func (h Holding) Investment() decimal.Decimal {
	return h.PurchasePrice.Mul(decimal.NewFromInt(h.Quantity))
}

// LiveQuote is the current market data for a symbol as held by a view.
// A nil PERatio and an empty LatestEarnings mean "unknown".
type LiveQuote struct {
	CMP            decimal.Decimal
	PERatio        *float64
	LatestEarnings string
}

// QuoteSnapshot is a single live-snapshot entry as returned by a quote provider
// and as carried over the /api/stocks boundary.
type QuoteSnapshot struct {
	Symbol            string   `json:"symbol"`
	CMP               float64  `json:"cmp"`
	PERatio           *float64 `json:"peRatio"`
	EarningsTimestamp *int64   `json:"earningsTimestamp"`
}

// HistoricalBar represents a single daily OHLCV data point
type HistoricalBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	Close  float64   `json:"close"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Volume int64     `json:"volume"`
}

// SymbolHistory holds the daily bars for one symbol in chronological order
type SymbolHistory struct {
	Symbol  string          `json:"symbol"`
	History []HistoricalBar `json:"history"`
}
