package portfolio

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/aristath/stockfolio/internal/domain"
)

// FormatMoney renders a money value with two decimals
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatPercent renders a percentage with two decimals and a % suffix
func FormatPercent(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}

// FormatPERatio renders a P/E ratio, or the unknown marker
func FormatPERatio(pe *float64) string {
	if pe == nil {
		return domain.UnknownValue
	}
	return strconv.FormatFloat(*pe, 'f', 2, 64)
}

// FormatEarnings renders the latest earnings date, or the unknown marker
func FormatEarnings(s string) string {
	if s == "" {
		return domain.UnknownValue
	}
	return s
}

// IsGain reports whether a gain/loss value is rendered as a gain
func IsGain(d decimal.Decimal) bool {
	return !d.IsNegative()
}
