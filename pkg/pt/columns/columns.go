package columns

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/komsit37/papertrade/pkg/pt/enrich"
	"github.com/komsit37/papertrade/pkg/pt/types"
)

// Services provides access to external services for resolvers.
type Services struct {
	// Quotes is optional; reference columns render empty without it.
	Quotes enrich.QuoteService
}

// Resolver converts a stock into a string value for a given column.
type Resolver func(ctx context.Context, s types.Stock, svc Services) (string, error)

// Registry maps column keys to resolvers.
var Registry = map[string]Resolver{}

func init() {
	Registry["sym"] = func(ctx context.Context, s types.Stock, svc Services) (string, error) {
		return s.Symbol, nil
	}
	Registry["company"] = func(ctx context.Context, s types.Stock, svc Services) (string, error) {
		return s.CompanyName, nil
	}
	Registry["price"] = func(ctx context.Context, s types.Stock, svc Services) (string, error) {
		return Money(s.CurrentPrice), nil
	}
	Registry["chg%"] = func(ctx context.Context, s types.Stock, svc Services) (string, error) {
		return ChangePercent(s.ChangePercent), nil
	}
	Registry["volume"] = func(ctx context.Context, s types.Stock, svc Services) (string, error) {
		return Volume(s.Volume), nil
	}
	// ref: independent market price, if a quote service is wired
	Registry["ref"] = func(ctx context.Context, s types.Stock, svc Services) (string, error) {
		if svc.Quotes == nil {
			return "", nil
		}
		q, err := svc.Quotes.Get(ctx, s.Symbol)
		if err != nil {
			return "", nil
		}
		return q.Price, nil
	}
	// drift%: snapshot price vs reference
	Registry["drift%"] = func(ctx context.Context, s types.Stock, svc Services) (string, error) {
		if svc.Quotes == nil {
			return "", nil
		}
		q, err := svc.Quotes.Get(ctx, s.Symbol)
		if err != nil || q.Raw == nil || *q.Raw == 0 {
			return "", nil
		}
		ref := decimal.NewFromFloat(*q.Raw)
		pct, _ := types.Percent(s.CurrentPrice.Sub(ref), ref).Float64()
		return ChangePercent(pct), nil
	}
}

// Compute determines final column order. Explicit columns are honored
// exactly (deduplicated, first occurrence wins); otherwise the default set.
func Compute(explicit []string) []string {
	if len(explicit) == 0 {
		return append([]string(nil), Sets["default"]...)
	}
	seen := map[string]struct{}{}
	out := make([]string, 0, len(explicit))
	for _, k := range explicit {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// NeedsQuotes reports whether any column reads the reference quote service.
func NeedsQuotes(cols []string) bool {
	for _, c := range cols {
		if c == "ref" || c == "drift%" {
			return true
		}
	}
	return false
}

// RenderValue calls the resolver for the given column.
func RenderValue(ctx context.Context, col string, s types.Stock, svc Services) (string, error) {
	if r, ok := Registry[col]; ok {
		return r(ctx, s, svc)
	}
	return "", &UnknownColumnError{Name: col}
}

// UnknownColumnError reports a column with no resolver.
type UnknownColumnError struct {
	Name string
}

func (e *UnknownColumnError) Error() string {
	return "unknown column: " + e.Name
}

// Money formats a currency amount as $1234.50.
func Money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// SignedMoney prefixes non-negative amounts with +.
func SignedMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return Money(d)
	}
	return "+" + Money(d)
}

// ChangePercent formats a signed percentage with two decimals: +1.25%.
func ChangePercent(p float64) string {
	if p >= 0 {
		return fmt.Sprintf("+%.2f%%", p)
	}
	return fmt.Sprintf("%.2f%%", p)
}

// DecimalPercent is ChangePercent for decimal values.
func DecimalPercent(p decimal.Decimal) string {
	if p.IsNegative() {
		return p.StringFixed(2) + "%"
	}
	return "+" + p.StringFixed(2) + "%"
}

// Volume formats share volume in millions: 52.3M.
func Volume(v int64) string {
	return fmt.Sprintf("%.1fM", float64(v)/1_000_000)
}
