// Package market aggregates the stock list and the server-ranked lists shown
// on the dashboard and market views.
package market

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/komsit37/papertrade/pkg/pt/filter"
	"github.com/komsit37/papertrade/pkg/pt/types"
)

// SummarySize is how many entries of each ranked list the dashboard shows.
const SummarySize = 2

// DefaultRefreshInterval is the dashboard polling period.
const DefaultRefreshInterval = 10 * time.Second

// Fetcher is the slice of the API the aggregator needs.
type Fetcher interface {
	Stocks(ctx context.Context) ([]types.Stock, error)
	TopGainers(ctx context.Context) ([]types.Stock, error)
	TopLosers(ctx context.Context) ([]types.Stock, error)
	MostActive(ctx context.Context) ([]types.Stock, error)
}

// Snapshot is one consistent view of market data. Ranked lists are already
// cut to SummarySize.
type Snapshot struct {
	Stocks      []types.Stock
	TopGainers  []types.Stock
	TopLosers   []types.Stock
	MostActive  []types.Stock
	RefreshedAt time.Time
	Loaded      bool
}

// Aggregator owns the latest snapshot. Every refresh fetches all four lists
// and publishes them together or not at all.
type Aggregator struct {
	fetch  Fetcher
	logger *slog.Logger
	now    func() time.Time

	mu   sync.RWMutex
	snap Snapshot
	gen  uint64
}

func NewAggregator(f Fetcher, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{fetch: f, logger: logger.With("component", "market"), now: time.Now}
}

// Refresh fetches the full list and the three rankings concurrently. On any
// failure the previous snapshot is kept and the error returned. A response
// that arrives after a newer refresh started, or after ctx is done, is
// dropped.
func (a *Aggregator) Refresh(ctx context.Context) error {
	a.mu.Lock()
	a.gen++
	gen := a.gen
	a.mu.Unlock()

	var all, gainers, losers, active []types.Stock
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { all, err = a.fetch.Stocks(gctx); return })
	g.Go(func() (err error) { gainers, err = a.fetch.TopGainers(gctx); return })
	g.Go(func() (err error) { losers, err = a.fetch.TopLosers(gctx); return })
	g.Go(func() (err error) { active, err = a.fetch.MostActive(gctx); return })
	if err := g.Wait(); err != nil {
		a.logger.Warn("error fetching dashboard data", "error", err)
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.gen {
		a.logger.Debug("dropping stale market refresh", "gen", gen, "current", a.gen)
		return nil
	}
	a.snap = Snapshot{
		Stocks:      types.UniqueBySymbol(all),
		TopGainers:  head(gainers, SummarySize),
		TopLosers:   head(losers, SummarySize),
		MostActive:  head(active, SummarySize),
		RefreshedAt: a.now(),
		Loaded:      true,
	}
	return nil
}

// RefreshStocks reloads only the full stock list, as the market view does.
// The rankings of the current snapshot are kept.
func (a *Aggregator) RefreshStocks(ctx context.Context) error {
	a.mu.Lock()
	a.gen++
	gen := a.gen
	a.mu.Unlock()

	all, err := a.fetch.Stocks(ctx)
	if err != nil {
		a.logger.Warn("error fetching stocks", "error", err)
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
	a.snap.Stocks = types.UniqueBySymbol(all)
	a.snap.RefreshedAt = a.now()
	a.snap.Loaded = true
	return nil
}

// Snapshot returns the current data. Slices are shared and must not be
// modified.
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snap
}

// Search filters the loaded stock list by a case-insensitive substring of
// symbol or company name. An empty term returns the whole list. The backend
// is not queried.
func (a *Aggregator) Search(term string) []types.Stock {
	return FilterStocks(a.Snapshot().Stocks, term)
}

// FilterStocks is the plain substring search used by the market view.
func FilterStocks(stocks []types.Stock, term string) []types.Stock {
	if term == "" {
		return stocks
	}
	return filter.Stocks(stocks, filter.NewSubstrCI(term))
}

// Lookup finds a loaded stock by symbol, ignoring case.
func (a *Aggregator) Lookup(symbol string) (types.Stock, bool) {
	f := filter.Filter(filter.ExactSetOf(symbol))
	for _, s := range a.Snapshot().Stocks {
		if f.Match(s.Symbol) {
			return s, true
		}
	}
	return types.Stock{}, false
}

func head(list []types.Stock, n int) []types.Stock {
	if len(list) > n {
		list = list[:n]
	}
	return append([]types.Stock(nil), list...)
}
