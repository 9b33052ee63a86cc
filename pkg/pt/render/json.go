package render

import (
	"context"
	"encoding/json"
	"io"

	"github.com/shopspring/decimal"

	"github.com/komsit37/papertrade/pkg/pt/columns"
	"github.com/komsit37/papertrade/pkg/pt/market"
	"github.com/komsit37/papertrade/pkg/pt/portfolio"
	"github.com/komsit37/papertrade/pkg/pt/types"
)

// jsonStock is the output shape for JSONRenderer: raw values plus the
// requested columns as displayed.
type jsonStock struct {
	types.Stock
	Columns map[string]string `json:"columns,omitempty"`
}

type JSONRenderer struct{}

func NewJSONRenderer() *JSONRenderer { return &JSONRenderer{} }

func (r *JSONRenderer) Render(ctx context.Context, w io.Writer, stocks []types.Stock, opts RenderOptions) error {
	// only explicitly requested columns are added, normalized like the table's
	var cols []string
	if len(opts.Columns) > 0 {
		cols = columns.Compute(opts.Columns)
	}
	out := make([]jsonStock, 0, len(stocks))
	for _, s := range stocks {
		js := jsonStock{Stock: s}
		if len(cols) > 0 {
			js.Columns = make(map[string]string, len(cols))
			for _, c := range cols {
				v, err := columns.RenderValue(ctx, c, s, opts.Services)
				if err != nil {
					return err
				}
				js.Columns[c] = v
			}
		}
		out = append(out, js)
	}
	return encode(w, out, opts.PrettyJSON)
}

type jsonDashboard struct {
	Stocks      int           `json:"stocks"`
	TopGainers  []types.Stock `json:"topGainers"`
	TopLosers   []types.Stock `json:"topLosers"`
	MostActive  []types.Stock `json:"mostActive"`
	RefreshedAt string        `json:"refreshedAt,omitempty"`
}

// DashboardJSON writes the dashboard summary.
func DashboardJSON(w io.Writer, snap market.Snapshot, pretty bool) error {
	out := jsonDashboard{
		Stocks:     len(snap.Stocks),
		TopGainers: nonNil(snap.TopGainers),
		TopLosers:  nonNil(snap.TopLosers),
		MostActive: nonNil(snap.MostActive),
	}
	if !snap.RefreshedAt.IsZero() {
		out.RefreshedAt = snap.RefreshedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	return encode(w, out, pretty)
}

type jsonHolding struct {
	types.Holding
	TotalInvestment   decimal.Decimal `json:"totalInvestment"`
	CurrentValue      decimal.Decimal `json:"currentValue"`
	ProfitLoss        decimal.Decimal `json:"profitLoss"`
	ProfitLossPercent string          `json:"profitLossPercent"`
	Allocation        string          `json:"allocationPercent"`
	Hue               int             `json:"hue"`
}

type jsonPortfolio struct {
	User              string               `json:"user"`
	TotalInvestment   decimal.Decimal      `json:"totalInvestment"`
	TotalValue        decimal.Decimal      `json:"totalValue"`
	TotalProfitLoss   decimal.Decimal      `json:"totalProfitLoss"`
	ProfitLossPercent string               `json:"profitLossPercent"`
	Holdings          []jsonHolding        `json:"holdings"`
	ServerSummary     *types.ServerSummary `json:"serverSummary,omitempty"`
}

// PortfolioJSON writes totals and holdings with their derived values. A
// non-nil server summary is included under its own key for comparison.
func PortfolioJSON(w io.Writer, v portfolio.View, server *types.ServerSummary, pretty bool) error {
	t := v.Totals()
	dist := v.Distribution()
	out := jsonPortfolio{
		User:              v.User,
		TotalInvestment:   t.Investment,
		TotalValue:        t.CurrentValue,
		TotalProfitLoss:   t.ProfitLoss,
		ProfitLossPercent: t.ProfitLossPercent.StringFixed(2),
		Holdings:          make([]jsonHolding, 0, len(v.Holdings)),
		ServerSummary:     server,
	}
	for i, h := range v.Holdings {
		out.Holdings = append(out.Holdings, jsonHolding{
			Holding:           h,
			TotalInvestment:   h.TotalInvestment(),
			CurrentValue:      h.CurrentValue(),
			ProfitLoss:        h.ProfitLoss(),
			ProfitLossPercent: h.ProfitLossPercent().StringFixed(2),
			Allocation:        dist[i].Percent.StringFixed(1),
			Hue:               dist[i].Hue,
		})
	}
	return encode(w, out, pretty)
}

func encode(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func nonNil(s []types.Stock) []types.Stock {
	if s == nil {
		return []types.Stock{}
	}
	return s
}
