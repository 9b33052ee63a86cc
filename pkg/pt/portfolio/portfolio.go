// Package portfolio loads a user's holdings and derives totals and the
// value distribution from them. Totals are always recomputed from the
// holdings list; the server's summary endpoint is not an input.
package portfolio

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/komsit37/papertrade/pkg/pt/types"
)

// HueStep is the hue distance between consecutive distribution entries.
const HueStep = 60

// Fetcher is the slice of the API the aggregator needs.
type Fetcher interface {
	Holdings(ctx context.Context, user string) ([]types.Holding, error)
}

// Totals aggregates a holdings list.
type Totals struct {
	Investment        decimal.Decimal
	CurrentValue      decimal.Decimal
	ProfitLoss        decimal.Decimal
	ProfitLossPercent decimal.Decimal
	Count             int
}

// ComputeTotals sums investment and value over holdings. The percent is zero
// when nothing was invested.
func ComputeTotals(holdings []types.Holding) Totals {
	t := Totals{Investment: decimal.Zero, CurrentValue: decimal.Zero, Count: len(holdings)}
	for _, h := range holdings {
		t.Investment = t.Investment.Add(h.TotalInvestment())
		t.CurrentValue = t.CurrentValue.Add(h.CurrentValue())
	}
	t.ProfitLoss = t.CurrentValue.Sub(t.Investment)
	t.ProfitLossPercent = types.Percent(t.ProfitLoss, t.Investment)
	return t
}

// Slice is one holding's share of the portfolio value.
type Slice struct {
	Symbol  string
	Value   decimal.Decimal
	Percent decimal.Decimal
	// Hue is in degrees, index*HueStep around the color wheel.
	Hue int
}

// Distribution returns each holding's percentage of total current value, in
// list order. With a zero total every percent is zero.
func Distribution(holdings []types.Holding) []Slice {
	total := ComputeTotals(holdings).CurrentValue
	out := make([]Slice, 0, len(holdings))
	for i, h := range holdings {
		v := h.CurrentValue()
		out = append(out, Slice{
			Symbol:  h.StockSymbol,
			Value:   v,
			Percent: types.Percent(v, total),
			Hue:     Hue(i),
		})
	}
	return out
}

// Hue is the color wheel position for the i-th entry.
func Hue(i int) int {
	return (i * HueStep) % 360
}

// View is the loaded state for one user.
type View struct {
	User     string
	Holdings []types.Holding
	Loaded   bool
}

func (v View) Totals() Totals        { return ComputeTotals(v.Holdings) }
func (v View) Distribution() []Slice { return Distribution(v.Holdings) }
func (v View) Empty() bool           { return len(v.Holdings) == 0 }

// Aggregator keeps the holdings of the active user. Loading for a different
// user replaces the view; a response for a user that is no longer current is
// dropped.
type Aggregator struct {
	fetch  Fetcher
	logger *slog.Logger

	mu   sync.RWMutex
	view View
	gen  uint64
}

func NewAggregator(f Fetcher, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{fetch: f, logger: logger.With("component", "portfolio")}
}

// Load fetches holdings for user. On error the previous view is kept.
func (a *Aggregator) Load(ctx context.Context, user string) error {
	a.mu.Lock()
	a.gen++
	gen := a.gen
	a.mu.Unlock()

	holdings, err := a.fetch.Holdings(ctx, user)
	if err != nil {
		a.logger.Warn("error fetching portfolio", "user", user, "error", err)
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.gen {
		return nil
	}
	a.view = View{User: user, Holdings: holdings, Loaded: true}
	return nil
}

// View returns the current state.
func (a *Aggregator) View() View {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.view
}
