package columns

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/papertrade/pkg/pt/types"
)

type refQuotes map[string]float64

func (r refQuotes) Get(_ context.Context, sym string) (types.Quote, error) {
	v, ok := r[sym]
	if !ok {
		return types.Quote{}, nil
	}
	return types.Quote{Price: decimal.NewFromFloat(v).StringFixed(2), Raw: &v}, nil
}

func TestRenderValue(t *testing.T) {
	s := types.Stock{Symbol: "TSLA", CompanyName: "Tesla, Inc.", CurrentPrice: decimal.RequireFromString("242.1"), ChangePercent: -3.456, Volume: 98_260_000}
	svc := Services{Quotes: refQuotes{"TSLA": 220}}

	tests := map[string]string{
		"sym":     "TSLA",
		"company": "Tesla, Inc.",
		"price":   "$242.10",
		"chg%":    "-3.46%",
		"volume":  "98.3M",
		"ref":     "220.00",
		"drift%":  "+10.05%",
	}
	for col, want := range tests {
		got, err := RenderValue(context.Background(), col, s, svc)
		require.NoError(t, err, col)
		assert.Equal(t, want, got, col)
	}

	got, err := RenderValue(context.Background(), "ref", s, Services{})
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = RenderValue(context.Background(), "bogus", s, svc)
	var ue *UnknownColumnError
	assert.ErrorAs(t, err, &ue)
}

func TestCompute(t *testing.T) {
	assert.Equal(t, []string{"sym", "company", "price", "chg%", "volume"}, Compute(nil))
	assert.Equal(t, []string{"sym", "price"}, Compute([]string{"SYM", " price", "sym", ""}))
}

func TestExpandSets(t *testing.T) {
	cols, err := ExpandSets([]string{"price", "default", "ref"})
	require.NoError(t, err)
	assert.Equal(t, []string{"price", "chg%", "sym", "company", "volume", "ref", "drift%"}, cols)
	assert.True(t, NeedsQuotes(cols))

	_, err = ExpandSets([]string{"nope"})
	var use *UnknownSetError
	require.ErrorAs(t, err, &use)
	assert.Equal(t, []string{"default", "price", "ref"}, use.Available)
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "+$12.50", SignedMoney(decimal.RequireFromString("12.5")))
	assert.Equal(t, "-$3.00", SignedMoney(decimal.NewFromInt(-3)))
	assert.Equal(t, "+0.00%", ChangePercent(0))
	assert.Equal(t, "-1.20%", DecimalPercent(decimal.RequireFromString("-1.2")))
}
