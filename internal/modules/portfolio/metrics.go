// Package portfolio computes derived holding metrics and sector views.
//
// Everything in this package is pure: no I/O, no shared state. Money values are
// kept as exact decimals and only rounded by the Format helpers.
package portfolio

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/aristath/stockfolio/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// PercentMode selects the denominator used for a row's portfolio percentage
type PercentMode string

const (
	// PercentOfFiltered divides by the total investment of the filtered (visible) holdings
	PercentOfFiltered PercentMode = "filtered"
	// PercentOfPortfolio divides by the total investment of the whole portfolio
	PercentOfPortfolio PercentMode = "portfolio"
)

// ParsePercentMode validates a percent mode name
func ParsePercentMode(s string) (PercentMode, error) {
	switch PercentMode(s) {
	case PercentOfFiltered, PercentOfPortfolio:
		return PercentMode(s), nil
	case "":
		return PercentOfFiltered, nil
	default:
		return "", fmt.Errorf("unknown percent mode %q (want %q or %q)", s, PercentOfFiltered, PercentOfPortfolio)
	}
}

// Row is a holding enriched with live data and derived metrics
type Row struct {
	domain.Holding
	CMP            decimal.Decimal
	PERatio        *float64
	LatestEarnings string
	HasQuote       bool

	Investment       decimal.Decimal
	PresentValue     decimal.Decimal
	GainLoss         decimal.Decimal
	PortfolioPercent decimal.Decimal
}

// Result is the output of a metrics computation
type Result struct {
	Rows []Row

	// TotalInvestment is always the sum over the holdings passed in.
	TotalInvestment   decimal.Decimal
	TotalPresentValue decimal.Decimal
	TotalGainLoss     decimal.Decimal

	// PercentBase is the denominator used for PortfolioPercent.
	PercentBase decimal.Decimal
}

// TotalInvestment sums purchasePrice * quantity in input order
func TotalInvestment(holdings []domain.Holding) decimal.Decimal {
	total := decimal.Zero
	for _, h := range holdings {
		total = total.Add(h.Investment())
	}
	return total
}

// ComputeRows enriches holdings with quotes. Portfolio percentages are relative
// to the total investment of the holdings passed in, so callers filter first.
func ComputeRows(holdings []domain.Holding, quotes map[string]domain.LiveQuote) Result {
	return computeRows(holdings, quotes, TotalInvestment(holdings))
}

// ComputeView filters all holdings by sector and computes rows for the selection.
// With PercentOfPortfolio the percentage base is the whole portfolio instead of the selection.
func ComputeView(all []domain.Holding, sector string, quotes map[string]domain.LiveQuote, mode PercentMode) Result {
	filtered := FilterBySector(all, sector)

	base := TotalInvestment(filtered)
	if mode == PercentOfPortfolio {
		base = TotalInvestment(all)
	}

	return computeRows(filtered, quotes, base)
}

func computeRows(holdings []domain.Holding, quotes map[string]domain.LiveQuote, base decimal.Decimal) Result {
	res := Result{
		Rows:              make([]Row, 0, len(holdings)),
		TotalInvestment:   decimal.Zero,
		TotalPresentValue: decimal.Zero,
		TotalGainLoss:     decimal.Zero,
		PercentBase:       base,
	}

	for _, h := range holdings {
		q, ok := quotes[h.Symbol]

		row := Row{
			Holding:        h,
			CMP:            q.CMP,
			PERatio:        q.PERatio,
			LatestEarnings: q.LatestEarnings,
			HasQuote:       ok,
			Investment:     h.Investment(),
		}
		row.PresentValue = row.CMP.Mul(decimal.NewFromInt(h.Quantity))
		row.GainLoss = row.PresentValue.Sub(row.Investment)
		row.PortfolioPercent = percentOf(row.Investment, base)

		res.TotalInvestment = res.TotalInvestment.Add(row.Investment)
		res.TotalPresentValue = res.TotalPresentValue.Add(row.PresentValue)
		res.TotalGainLoss = res.TotalGainLoss.Add(row.GainLoss)
		res.Rows = append(res.Rows, row)
	}

	return res
}

// percentOf returns part/base*100, or zero when the base is zero
func percentOf(part, base decimal.Decimal) decimal.Decimal {
	if base.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(base)
}
