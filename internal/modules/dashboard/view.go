package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/aristath/stockfolio/internal/modules/portfolio"
)

// RowView is a rendered portfolio row
type RowView struct {
	StockName        string   `json:"stockName"`
	Exchange         string   `json:"exchange"`
	Symbol           string   `json:"symbol"`
	Sector           string   `json:"sector"`
	PurchasePrice    float64  `json:"purchasePrice"`
	Quantity         int64    `json:"quantity"`
	Investment       float64  `json:"investment"`
	PortfolioPercent float64  `json:"portfolioPercent"`
	CMP              float64  `json:"cmp"`
	PresentValue     float64  `json:"presentValue"`
	GainLoss         float64  `json:"gainLoss"`
	PERatio          *float64 `json:"peRatio"`
	LatestEarnings   *string  `json:"latestEarnings"`
	HasQuote         bool     `json:"hasQuote"`
	HistoryPoints    int      `json:"historyPoints"`
	Gain             bool     `json:"gain"`

	Display RowDisplay `json:"display"`
}

// RowDisplay holds the formatted cell values
type RowDisplay struct {
	PurchasePrice    string `json:"purchasePrice"`
	Investment       string `json:"investment"`
	PortfolioPercent string `json:"portfolioPercent"`
	CMP              string `json:"cmp"`
	PresentValue     string `json:"presentValue"`
	GainLoss         string `json:"gainLoss"`
	PERatio          string `json:"peRatio"`
	LatestEarnings   string `json:"latestEarnings"`
}

// Totals holds the aggregates of the visible rows
type Totals struct {
	Investment   float64 `json:"investment"`
	PresentValue float64 `json:"presentValue"`
	GainLoss     float64 `json:"gainLoss"`
	PercentBase  float64 `json:"percentBase"`
	Gain         bool    `json:"gain"`

	Display TotalsDisplay `json:"display"`
}

// TotalsDisplay holds the formatted aggregates
type TotalsDisplay struct {
	Investment   string `json:"investment"`
	PresentValue string `json:"presentValue"`
	GainLoss     string `json:"gainLoss"`
}

// View is the complete state of the dashboard for one sector selection
type View struct {
	SelectedSector   string         `json:"selectedSector"`
	Sectors          []string       `json:"sectors"`
	PercentMode      string         `json:"percentMode"`
	Rows             []RowView      `json:"rows"`
	Totals           Totals         `json:"totals"`
	QuotesUpdatedAt  *time.Time     `json:"quotesUpdatedAt"`
	HistoryUpdatedAt *time.Time     `json:"historyUpdatedAt"`
	LastRefresh      *RefreshResult `json:"lastRefresh"`
}

// View computes the rows for the selected sector from the current maps
func (d *Dashboard) View(sector string) View {
	if portfolio.IsAllSectors(sector) {
		sector = portfolio.AllSectors
	}

	d.mu.RLock()
	quotes := d.quotes
	history := d.history
	quotesUpdatedAt := timePtr(d.quotesUpdatedAt)
	historyUpdatedAt := timePtr(d.historyUpdatedAt)
	lastRefresh := d.lastRefresh
	d.mu.RUnlock()

	res := d.portfolio.GetView(sector, quotes)

	rows := make([]RowView, 0, len(res.Rows))
	for _, r := range res.Rows {
		rows = append(rows, newRowView(r, len(history[r.Symbol])))
	}

	return View{
		SelectedSector: sector,
		Sectors:        d.portfolio.Sectors(),
		PercentMode:    string(d.portfolio.Mode()),
		Rows:           rows,
		Totals: Totals{
			Investment:   toFloat(res.TotalInvestment),
			PresentValue: toFloat(res.TotalPresentValue),
			GainLoss:     toFloat(res.TotalGainLoss),
			PercentBase:  toFloat(res.PercentBase),
			Gain:         portfolio.IsGain(res.TotalGainLoss),
			Display: TotalsDisplay{
				Investment:   portfolio.FormatMoney(res.TotalInvestment),
				PresentValue: portfolio.FormatMoney(res.TotalPresentValue),
				GainLoss:     portfolio.FormatMoney(res.TotalGainLoss),
			},
		},
		QuotesUpdatedAt:  quotesUpdatedAt,
		HistoryUpdatedAt: historyUpdatedAt,
		LastRefresh:      lastRefresh,
	}
}

func newRowView(r portfolio.Row, historyPoints int) RowView {
	var earnings *string
	if r.LatestEarnings != "" {
		e := r.LatestEarnings
		earnings = &e
	}

	return RowView{
		StockName:        r.StockName,
		Exchange:         r.Exchange,
		Symbol:           r.Symbol,
		Sector:           r.Sector,
		PurchasePrice:    toFloat(r.PurchasePrice),
		Quantity:         r.Quantity,
		Investment:       toFloat(r.Investment),
		PortfolioPercent: toFloat(r.PortfolioPercent),
		CMP:              toFloat(r.CMP),
		PresentValue:     toFloat(r.PresentValue),
		GainLoss:         toFloat(r.GainLoss),
		PERatio:          r.PERatio,
		LatestEarnings:   earnings,
		HasQuote:         r.HasQuote,
		HistoryPoints:    historyPoints,
		Gain:             portfolio.IsGain(r.GainLoss),
		Display: RowDisplay{
			PurchasePrice:    portfolio.FormatMoney(r.PurchasePrice),
			Investment:       portfolio.FormatMoney(r.Investment),
			PortfolioPercent: portfolio.FormatPercent(r.PortfolioPercent),
			CMP:              portfolio.FormatMoney(r.CMP),
			PresentValue:     portfolio.FormatMoney(r.PresentValue),
			GainLoss:         portfolio.FormatMoney(r.GainLoss),
			PERatio:          portfolio.FormatPERatio(r.PERatio),
			LatestEarnings:   portfolio.FormatEarnings(r.LatestEarnings),
		},
	}
}

func toFloat(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
