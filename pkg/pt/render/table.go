package render

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"

	"github.com/komsit37/papertrade/pkg/pt/columns"
	"github.com/komsit37/papertrade/pkg/pt/market"
	"github.com/komsit37/papertrade/pkg/pt/portfolio"
	"github.com/komsit37/papertrade/pkg/pt/trade"
	"github.com/komsit37/papertrade/pkg/pt/types"
)

const barWidth = 30

type TableRenderer struct{}

func NewTableRenderer() *TableRenderer { return &TableRenderer{} }

func newWriter(w io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleColoredDark)
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateRows = false
	tw.Style().Options.SeparateColumns = false
	return tw
}

func header(cols []string) table.Row {
	hdr := make(table.Row, len(cols))
	for i, c := range cols {
		hdr[i] = strings.ToUpper(c)
	}
	return hdr
}

// Render prints the market table. Price and change columns are green for
// gains and red for losses when color is on.
func (r *TableRenderer) Render(ctx context.Context, w io.Writer, stocks []types.Stock, opts RenderOptions) error {
	cols := columns.Compute(opts.Columns)

	tw := newWriter(w)
	tw.AppendHeader(header(cols))

	// Column configs: wrap text to MaxColWidth (default 40), no truncation
	maxWidth := opts.MaxColWidth
	if maxWidth <= 0 {
		maxWidth = 40
	}
	cfgs := make([]table.ColumnConfig, 0, len(cols))
	for i, c := range cols {
		cfg := table.ColumnConfig{Number: i + 1, WidthMax: maxWidth}
		switch c {
		case "price", "chg%", "volume", "ref", "drift%":
			cfg.Align = text.AlignRight
			cfg.AlignHeader = text.AlignRight
		}
		cfgs = append(cfgs, cfg)
	}
	tw.SetColumnConfigs(cfgs)

	for _, s := range stocks {
		row := make(table.Row, len(cols))
		for i, c := range cols {
			v, err := columns.RenderValue(ctx, c, s, opts.Services)
			if err != nil {
				return err
			}
			if opts.Color && (c == "price" || c == "chg%") {
				v = colorBySign(s.ChangePercent, v)
			}
			row[i] = v
		}
		tw.AppendRow(row)
	}
	if len(stocks) == 0 {
		tw.AppendFooter(table.Row{"no matching stocks"})
	}
	tw.Render()
	return nil
}

// Dashboard prints the three ranked summaries.
func Dashboard(w io.Writer, snap market.Snapshot, color bool) {
	if !snap.Loaded {
		fmt.Fprintln(w, "Market data unavailable.")
		return
	}
	sections := []struct {
		title  string
		stocks []types.Stock
		volume bool
	}{
		{"Top Gainers", snap.TopGainers, false},
		{"Top Losers", snap.TopLosers, false},
		{"Most Active", snap.MostActive, true},
	}

	tw := newWriter(w)
	tw.AppendHeader(table.Row{"", "SYM", "PRICE", "CHANGE"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignRight},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignRight},
	})
	for _, sec := range sections {
		title := sec.title
		if color {
			title = text.Bold.Sprint(title)
		}
		if len(sec.stocks) == 0 {
			tw.AppendRow(table.Row{title, "-", "", ""})
			continue
		}
		for i, s := range sec.stocks {
			label := ""
			if i == 0 {
				label = title
			}
			change := columns.ChangePercent(s.ChangePercent)
			if sec.volume {
				change = "Vol: " + columns.Volume(s.Volume)
			} else if color {
				change = colorBySign(s.ChangePercent, change)
			}
			tw.AppendRow(table.Row{label, s.Symbol, columns.Money(s.CurrentPrice), change})
		}
	}
	tw.Render()
	if !snap.RefreshedAt.IsZero() {
		fmt.Fprintf(w, "\n%d stocks · updated %s\n", len(snap.Stocks), snap.RefreshedAt.Format("15:04:05"))
	}
}

// Portfolio prints summary totals, the holdings table and the value
// distribution. An empty portfolio prints a call to action instead.
func Portfolio(w io.Writer, v portfolio.View, color bool) {
	t := v.Totals()
	pl := columns.SignedMoney(t.ProfitLoss)
	plPct := columns.DecimalPercent(t.ProfitLossPercent)
	if color {
		pl = colorByDecimal(t.ProfitLoss, pl)
		plPct = colorByDecimal(t.ProfitLoss, plPct)
	}

	sum := newWriter(w)
	sum.AppendHeader(table.Row{"TOTAL INVESTMENT", "CURRENT VALUE", "TOTAL P/L", "P/L %", "HOLDINGS"})
	sum.AppendRow(table.Row{columns.Money(t.Investment), columns.Money(t.CurrentValue), pl, plPct, fmt.Sprintf("%d stocks", t.Count)})
	sum.Render()
	fmt.Fprintln(w)

	if v.Empty() {
		fmt.Fprintln(w, "No Holdings Yet")
		fmt.Fprintln(w, "Start trading to build your portfolio!")
		fmt.Fprintln(w, "Run `pt market` to find a stock, then `pt trade buy SYMBOL QTY`.")
		return
	}

	tw := newWriter(w)
	tw.AppendHeader(table.Row{"SYMBOL", "COMPANY", "SHARES", "AVG PRICE", "CURRENT PRICE", "INVESTMENT", "CURRENT VALUE", "P/L", "P/L %"})
	cfgs := make([]table.ColumnConfig, 0, 7)
	for n := 3; n <= 9; n++ {
		cfgs = append(cfgs, table.ColumnConfig{Number: n, Align: text.AlignRight, AlignHeader: text.AlignRight})
	}
	tw.SetColumnConfigs(cfgs)
	for _, h := range v.Holdings {
		hpl := columns.SignedMoney(h.ProfitLoss())
		hpct := columns.DecimalPercent(h.ProfitLossPercent())
		if color {
			hpl = colorByDecimal(h.ProfitLoss(), hpl)
			hpct = colorByDecimal(h.ProfitLossPercent(), hpct)
		}
		tw.AppendRow(table.Row{
			h.StockSymbol,
			h.CompanyName,
			h.Quantity,
			columns.Money(h.AveragePrice),
			columns.Money(h.CurrentPrice),
			columns.Money(h.TotalInvestment()),
			columns.Money(h.CurrentValue()),
			hpl,
			hpct,
		})
	}
	tw.Render()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Portfolio Distribution")
	for _, s := range v.Distribution() {
		bar := Bar(s.Percent, barWidth)
		if color {
			bar = text.Colors{HueColor(s.Hue)}.Sprint(bar)
		}
		fmt.Fprintf(w, "%-6s %s %5s%% %s\n", s.Symbol, bar, s.Percent.StringFixed(1), columns.Money(s.Value))
	}
}

// ServerSummary prints the server's own aggregate, labelled as such.
func ServerSummary(w io.Writer, s types.ServerSummary) {
	fmt.Fprintf(w, "\nServer summary (not used for totals): value %s, P/L %s\n",
		columns.Money(s.TotalValue), columns.SignedMoney(s.TotalProfitLoss))
}

// TradePreview prints the order about to be sent. The total is the
// snapshot price times quantity; the server prices the order itself.
func TradePreview(w io.Writer, f trade.Form) {
	if f.Stock == nil {
		fmt.Fprintln(w, "Select a stock from the list to start trading")
		return
	}
	tw := newWriter(w)
	tw.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	tw.AppendRow(table.Row{"Stock", fmt.Sprintf("%s (%s)", f.Stock.Symbol, f.Stock.CompanyName)})
	tw.AppendRow(table.Row{"Trade Type", f.Type.Label()})
	tw.AppendRow(table.Row{"Price per share", columns.Money(f.Stock.CurrentPrice)})
	tw.AppendRow(table.Row{"Quantity", f.Quantity})
	tw.AppendRow(table.Row{"Total Amount", columns.Money(f.Total())})
	tw.Render()
}

// Notice prints a trade notice; errors in red and successes in green.
func Notice(w io.Writer, n trade.Notice, color bool) {
	if n.Empty() {
		return
	}
	msg := n.Text
	if color {
		c := text.FgGreen
		if n.Kind == trade.NoticeError {
			c = text.FgRed
		}
		msg = text.Colors{c}.Sprint(msg)
	}
	fmt.Fprintln(w, msg)
}

// Bar draws a horizontal bar for a 0-100 percentage.
func Bar(pct decimal.Decimal, width int) string {
	n := int(pct.Mul(decimal.NewFromInt(int64(width))).Div(decimal.NewFromInt(100)).Round(0).IntPart())
	if n < 0 {
		n = 0
	}
	if n > width {
		n = width
	}
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}

// HueColor maps the distribution hues (multiples of 60 degrees) to the six
// ANSI colors at the same positions on the wheel.
func HueColor(hue int) text.Color {
	switch ((hue % 360) + 360) % 360 / 60 {
	case 0:
		return text.FgRed
	case 1:
		return text.FgYellow
	case 2:
		return text.FgGreen
	case 3:
		return text.FgCyan
	case 4:
		return text.FgBlue
	default:
		return text.FgMagenta
	}
}

func colorBySign(chg float64, v string) string {
	switch {
	case chg > 0:
		return text.Colors{text.FgGreen}.Sprint(v)
	case chg < 0:
		return text.Colors{text.FgRed}.Sprint(v)
	default:
		return v
	}
}

func colorByDecimal(d decimal.Decimal, v string) string {
	if d.IsNegative() {
		return text.Colors{text.FgRed}.Sprint(v)
	}
	return text.Colors{text.FgGreen}.Sprint(v)
}
