package portfolio

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/papertrade/pkg/pt/api"
	"github.com/komsit37/papertrade/pkg/pt/apitest"
	"github.com/komsit37/papertrade/pkg/pt/types"
)

func holding(sym string, qty int64, avg, cur string) types.Holding {
	return types.Holding{
		StockSymbol:  sym,
		Quantity:     qty,
		AveragePrice: decimal.RequireFromString(avg),
		CurrentPrice: decimal.RequireFromString(cur),
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeTotals(t *testing.T) {
	hs := []types.Holding{
		holding("AAPL", 10, "100", "150"),
		holding("TSLA", 2, "250", "200"),
	}
	tot := ComputeTotals(hs)
	assert.True(t, tot.Investment.Equal(dec("1500")), tot.Investment.String())
	assert.True(t, tot.CurrentValue.Equal(dec("1900")), tot.CurrentValue.String())
	assert.True(t, tot.ProfitLoss.Equal(dec("400")))
	assert.Equal(t, "26.67", tot.ProfitLossPercent.StringFixed(2))
	assert.Equal(t, 2, tot.Count)
}

func TestComputeTotals_ZeroInvestment(t *testing.T) {
	for _, hs := range [][]types.Holding{
		nil,
		{holding("FREE", 5, "0", "10")},
	} {
		tot := ComputeTotals(hs)
		assert.True(t, tot.ProfitLossPercent.IsZero())
	}
}

func TestHolding_DerivedFieldsZeroInvestment(t *testing.T) {
	h := holding("GIFT", 3, "0", "12.5")
	assert.True(t, h.TotalInvestment().IsZero())
	assert.True(t, h.ProfitLossPercent().IsZero())
	assert.True(t, h.ProfitLoss().Equal(dec("37.5")))
}

func TestDistribution_TwoHoldings(t *testing.T) {
	hs := []types.Holding{
		holding("AAPL", 1, "90", "100"),
		holding("MSFT", 1, "310", "300"),
	}
	assert.True(t, ComputeTotals(hs).CurrentValue.Equal(dec("400")))

	d := Distribution(hs)
	require.Len(t, d, 2)
	assert.Equal(t, "25.0", d[0].Percent.StringFixed(1))
	assert.Equal(t, "75.0", d[1].Percent.StringFixed(1))
	assert.Equal(t, 0, d[0].Hue)
	assert.Equal(t, 60, d[1].Hue)
}

func TestDistribution_SumsToHundred(t *testing.T) {
	hs := []types.Holding{
		holding("A", 1, "1", "1"),
		holding("B", 1, "1", "1"),
		holding("C", 1, "1", "1"),
		holding("D", 7, "3", "13.37"),
		holding("E", 2, "1", "0.01"),
		holding("F", 9, "1", "42"),
		holding("G", 4, "1", "5"),
	}
	sum := decimal.Zero
	for _, s := range Distribution(hs) {
		sum = sum.Add(s.Percent)
	}
	assert.True(t, sum.Sub(decimal.NewFromInt(100)).Abs().LessThan(dec("0.000001")), sum.String())
}

func TestDistribution_ZeroTotal(t *testing.T) {
	d := Distribution([]types.Holding{holding("X", 1, "1", "0")})
	require.Len(t, d, 1)
	assert.True(t, d[0].Percent.IsZero())
	assert.Empty(t, Distribution(nil))
}

func TestHueCycles(t *testing.T) {
	assert.Equal(t, []int{0, 60, 120, 180, 240, 300, 0, 60}, []int{Hue(0), Hue(1), Hue(2), Hue(3), Hue(4), Hue(5), Hue(6), Hue(7)})
}

type stubFetcher struct {
	holdings map[string][]types.Holding
	err      error
}

func (s stubFetcher) Holdings(_ context.Context, user string) ([]types.Holding, error) {
	return s.holdings[user], s.err
}

func TestAggregator_LoadAndKeepOnError(t *testing.T) {
	f := &stubFetcher{holdings: map[string][]types.Holding{"a@b": {holding("AAPL", 1, "1", "2")}}}
	agg := NewAggregator(f, nil)
	require.NoError(t, agg.Load(context.Background(), "a@b"))
	v := agg.View()
	assert.True(t, v.Loaded)
	assert.False(t, v.Empty())
	assert.Equal(t, "a@b", v.User)

	f.err = errors.New("down")
	assert.Error(t, agg.Load(context.Background(), "a@b"))
	assert.Equal(t, v, agg.View())
}

func TestAggregator_EmptyPortfolioIsNotAnError(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	client, err := api.NewClient(api.ClientConfig{BaseURL: srv.BaseURL()})
	require.NoError(t, err)

	agg := NewAggregator(client, nil)
	require.NoError(t, agg.Load(context.Background(), "new@mru.edu"))
	v := agg.View()
	assert.True(t, v.Loaded)
	assert.True(t, v.Empty())
	assert.True(t, v.Totals().CurrentValue.IsZero())
	assert.Equal(t, 0, srv.Hits("/api/portfolio/user/:user/summary"), "summary endpoint is not consulted")
}
