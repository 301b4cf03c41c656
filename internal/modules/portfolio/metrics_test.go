package portfolio

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/stockfolio/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func holding(symbol, sector, price string, qty int64) domain.Holding {
	return domain.Holding{
		StockName:     symbol + " Inc",
		Exchange:      "NSE",
		Symbol:        symbol,
		Sector:        sector,
		PurchasePrice: dec(price),
		Quantity:      qty,
	}
}

func scenarioHoldings() []domain.Holding {
	return []domain.Holding{
		holding("A", "Tech", "100", 10),
		holding("B", "Energy", "50", 20),
	}
}

func scenarioQuotes() map[string]domain.LiveQuote {
	return map[string]domain.LiveQuote{
		"A": {CMP: dec("120")},
		"B": {CMP: dec("40")},
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]interface{}{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func TestComputeRows_Scenario(t *testing.T) {
	res := ComputeRows(scenarioHoldings(), scenarioQuotes())

	require.Len(t, res.Rows, 2)
	assertDecimal(t, "2000", res.TotalInvestment)

	a := res.Rows[0]
	assert.Equal(t, "A", a.Symbol)
	assertDecimal(t, "1000", a.Investment)
	assertDecimal(t, "1200", a.PresentValue)
	assertDecimal(t, "200", a.GainLoss)
	assertDecimal(t, "50", a.PortfolioPercent)

	b := res.Rows[1]
	assert.Equal(t, "B", b.Symbol)
	assertDecimal(t, "1000", b.Investment)
	assertDecimal(t, "800", b.PresentValue)
	assertDecimal(t, "-200", b.GainLoss)
	assertDecimal(t, "50", b.PortfolioPercent)

	assertDecimal(t, "2000", res.TotalPresentValue)
	assertDecimal(t, "0", res.TotalGainLoss)
}

func TestComputeRows_FilteredByTech(t *testing.T) {
	res := ComputeRows(FilterBySector(scenarioHoldings(), "Tech"), scenarioQuotes())

	require.Len(t, res.Rows, 1)
	assert.Equal(t, "A", res.Rows[0].Symbol)
	assertDecimal(t, "1000", res.TotalInvestment)
	assertDecimal(t, "100", res.Rows[0].PortfolioPercent)
}

func TestComputeRows_InvestmentSumEqualsTotal(t *testing.T) {
	holdings := []domain.Holding{
		holding("TCS", "Tech", "3601.35", 3),
		holding("INFY", "Tech", "1457.10", 17),
		holding("RELI", "Energy", "0.10", 3),
		holding("HDFC", "Finance", "0.20", 7),
		holding("ZERO", "Finance", "99.99", 0),
	}

	res := ComputeRows(holdings, nil)

	sum := decimal.Zero
	for _, row := range res.Rows {
		sum = sum.Add(row.Investment)
	}
	assert.True(t, sum.Equal(res.TotalInvestment), "sum %s != total %s", sum, res.TotalInvestment)
	assertDecimal(t, "35575.05", res.TotalInvestment)
}

func TestComputeRows_MissingQuoteDefaults(t *testing.T) {
	holdings := []domain.Holding{holding("A", "Tech", "100", 10), holding("C", "Tech", "12.5", 4)}
	quotes := map[string]domain.LiveQuote{"A": {CMP: dec("110")}}

	res := ComputeRows(holdings, quotes)
	require.Len(t, res.Rows, 2)

	missing := res.Rows[1]
	assert.False(t, missing.HasQuote)
	assert.True(t, missing.CMP.IsZero())
	assert.Nil(t, missing.PERatio)
	assert.Empty(t, missing.LatestEarnings)
	assert.True(t, missing.PresentValue.IsZero())
	assert.True(t, missing.GainLoss.Equal(missing.Investment.Neg()))

	assert.True(t, res.Rows[0].HasQuote)
}

func TestComputeRows_EmptyPortfolio(t *testing.T) {
	quotes := scenarioQuotes()

	assert.NotPanics(t, func() {
		res := ComputeRows(nil, quotes)
		assert.Empty(t, res.Rows)
		assert.NotNil(t, res.Rows)
		assert.True(t, res.TotalInvestment.IsZero())
	})
}

func TestComputeRows_ZeroTotalUsesZeroPercent(t *testing.T) {
	holdings := []domain.Holding{holding("A", "Tech", "0", 10), holding("B", "Tech", "55", 0)}

	res := ComputeRows(holdings, nil)

	require.Len(t, res.Rows, 2)
	assert.True(t, res.TotalInvestment.IsZero())
	for _, row := range res.Rows {
		assert.True(t, row.PortfolioPercent.IsZero())
	}
}

func TestComputeRows_QuoteFieldsCarried(t *testing.T) {
	pe := 24.5
	quotes := map[string]domain.LiveQuote{
		"A": {CMP: dec("101.25"), PERatio: &pe, LatestEarnings: "Oct 19 2026"},
	}

	res := ComputeRows([]domain.Holding{holding("A", "Tech", "100", 4)}, quotes)

	row := res.Rows[0]
	require.NotNil(t, row.PERatio)
	assert.Equal(t, 24.5, *row.PERatio)
	assert.Equal(t, "Oct 19 2026", row.LatestEarnings)
	assertDecimal(t, "405", row.PresentValue)
	assertDecimal(t, "5", row.GainLoss)
}

func TestComputeRows_NoRoundingBeforeAggregation(t *testing.T) {
	// Three rows of 1/3 each: rounding per row would drift, exact math sums to 100.
	holdings := []domain.Holding{
		holding("A", "Tech", "1", 1),
		holding("B", "Tech", "1", 1),
		holding("C", "Tech", "1", 1),
	}

	res := ComputeRows(holdings, nil)

	sum := decimal.Zero
	for _, row := range res.Rows {
		assert.Equal(t, "33.33%", FormatPercent(row.PortfolioPercent))
		sum = sum.Add(row.PortfolioPercent)
	}
	assert.Equal(t, "100.00", sum.StringFixed(2))
}

func TestComputeView_PercentModes(t *testing.T) {
	all := scenarioHoldings()
	quotes := scenarioQuotes()

	tests := []struct {
		name        string
		sector      string
		mode        PercentMode
		wantRows    int
		wantTotal   string
		wantBase    string
		wantPercent string
	}{
		{"filtered mode, tech", "Tech", PercentOfFiltered, 1, "1000", "1000", "100"},
		{"portfolio mode, tech", "Tech", PercentOfPortfolio, 1, "1000", "2000", "50"},
		{"filtered mode, all", AllSectors, PercentOfFiltered, 2, "2000", "2000", "50"},
		{"portfolio mode, all", AllSectors, PercentOfPortfolio, 2, "2000", "2000", "50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ComputeView(all, tt.sector, quotes, tt.mode)

			require.Len(t, res.Rows, tt.wantRows)
			assertDecimal(t, tt.wantTotal, res.TotalInvestment)
			assertDecimal(t, tt.wantBase, res.PercentBase)
			assertDecimal(t, tt.wantPercent, res.Rows[0].PortfolioPercent)
		})
	}
}

func TestComputeView_UnknownSector(t *testing.T) {
	res := ComputeView(scenarioHoldings(), "Healthcare", scenarioQuotes(), PercentOfFiltered)

	assert.Empty(t, res.Rows)
	assert.True(t, res.TotalInvestment.IsZero())
}

func TestParsePercentMode(t *testing.T) {
	mode, err := ParsePercentMode("portfolio")
	require.NoError(t, err)
	assert.Equal(t, PercentOfPortfolio, mode)

	mode, err = ParsePercentMode("")
	require.NoError(t, err)
	assert.Equal(t, PercentOfFiltered, mode)

	_, err = ParsePercentMode("visible")
	assert.Error(t, err)
}
