package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/aristath/stockfolio/internal/modules/dashboard"
)

var headers = table.Row{
	"Particulars", "Purchase Price", "Qty", "Investment", "Portfolio (%)", "Exchange",
	"CMP", "Present Value", "Gain/Loss", "P/E Ratio", "Latest Earnings",
}

// numeric columns, 1-based
var rightAligned = []int{2, 3, 4, 5, 7, 8, 9, 10}

type TableRenderer struct{}

func NewTableRenderer() *TableRenderer { return &TableRenderer{} }

func (r *TableRenderer) Render(w io.Writer, view dashboard.View, opts Options) error {
	title := fmt.Sprintf("%s (percent of %s)", view.SelectedSector, view.PercentMode)
	if opts.Color {
		title = text.Bold.Sprint(title)
	}
	fmt.Fprintln(w, title)

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	if opts.Color {
		tw.SetStyle(table.StyleColoredDark)
	} else {
		tw.SetStyle(table.StyleLight)
	}
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateRows = false
	tw.Style().Options.SeparateColumns = false

	tw.AppendHeader(headers)

	cfgs := make([]table.ColumnConfig, 0, len(rightAligned))
	for _, n := range rightAligned {
		cfgs = append(cfgs, table.ColumnConfig{Number: n, Align: text.AlignRight, AlignFooter: text.AlignRight})
	}
	tw.SetColumnConfigs(cfgs)

	for _, row := range view.Rows {
		tw.AppendRow(table.Row{
			row.StockName,
			row.Display.PurchasePrice,
			strconv.FormatInt(row.Quantity, 10),
			row.Display.Investment,
			row.Display.PortfolioPercent,
			row.Exchange,
			row.Display.CMP,
			row.Display.PresentValue,
			colorize(row.Display.GainLoss, row.Gain, opts.Color),
			row.Display.PERatio,
			row.Display.LatestEarnings,
		})
	}

	tw.AppendFooter(table.Row{
		"Total", "", "", view.Totals.Display.Investment, "", "", "",
		view.Totals.Display.PresentValue,
		colorize(view.Totals.Display.GainLoss, view.Totals.Gain, opts.Color),
		"", "",
	})

	tw.Render()
	return nil
}

// colorize paints gains green and losses red
func colorize(value string, gain bool, color bool) string {
	if !color {
		return value
	}
	if gain {
		return text.Colors{text.FgGreen}.Sprint(value)
	}
	return text.Colors{text.FgRed}.Sprint(value)
}
