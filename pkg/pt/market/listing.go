package market

import (
	"context"

	"github.com/komsit37/papertrade/pkg/pt/types"
)

// Listing is the market page's stock source: the aggregator's deduplicated
// list, reloaded on every Load and narrowed by Search.
type Listing struct {
	Agg    *Aggregator
	Search string
}

// Load ignores spec; the list always comes from the aggregator.
func (l Listing) Load(ctx context.Context, _ any) ([]types.Stock, error) {
	if err := l.Agg.RefreshStocks(ctx); err != nil {
		return nil, err
	}
	return l.Agg.Search(l.Search), nil
}
