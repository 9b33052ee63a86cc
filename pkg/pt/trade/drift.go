package trade

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/komsit37/papertrade/pkg/pt/enrich"
	"github.com/komsit37/papertrade/pkg/pt/types"
)

// Drift compares a stock's snapshot price with a reference quote.
type Drift struct {
	Symbol    string
	Snapshot  decimal.Decimal
	Reference decimal.Decimal
	// Percent is (snapshot - reference) / reference * 100.
	Percent decimal.Decimal
}

// CheckDrift asks quotes for an independent price of s. It is advisory only:
// the trade API prices the order itself when it executes.
func CheckDrift(ctx context.Context, quotes enrich.QuoteService, s types.Stock) (Drift, error) {
	q, err := quotes.Get(ctx, s.Symbol)
	if err != nil {
		return Drift{}, fmt.Errorf("reference quote for %s: %w", s.Symbol, err)
	}
	if q.Raw == nil {
		return Drift{}, fmt.Errorf("reference quote for %s has no price", s.Symbol)
	}
	ref := decimal.NewFromFloat(*q.Raw)
	return Drift{
		Symbol:    s.Symbol,
		Snapshot:  s.CurrentPrice,
		Reference: ref,
		Percent:   types.Percent(s.CurrentPrice.Sub(ref), ref),
	}, nil
}
