package trade

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/papertrade/pkg/pt/types"
)

func TestFlash_ClearsAfterTTL(t *testing.T) {
	f := NewFlash(20 * time.Millisecond)
	f.Success("done")
	assert.Equal(t, "done", f.Current().Text)
	assert.Eventually(t, func() bool { return f.Current().Empty() }, time.Second, 5*time.Millisecond)

	f.Error("bad")
	assert.Equal(t, NoticeError, f.Current().Kind)
	assert.Eventually(t, func() bool { return f.Current().Empty() }, time.Second, 5*time.Millisecond)
}

func TestFlash_OldTimerDoesNotClearNewerNotice(t *testing.T) {
	f := NewFlash(200 * time.Millisecond)
	f.Success("first")
	time.Sleep(120 * time.Millisecond)
	f.Success("second")
	time.Sleep(120 * time.Millisecond)
	// first's deadline has passed
	assert.Equal(t, "second", f.Current().Text)
	assert.Eventually(t, func() bool { return f.Current().Empty() }, time.Second, 5*time.Millisecond)
}

func TestFlash_Clear(t *testing.T) {
	f := NewFlash(time.Hour)
	f.Error("x")
	f.Clear()
	assert.True(t, f.Current().Empty())
}

type fixedQuotes struct {
	q   types.Quote
	err error
}

func (f fixedQuotes) Get(context.Context, string) (types.Quote, error) { return f.q, f.err }

func TestCheckDrift(t *testing.T) {
	ref := 120.0
	d, err := CheckDrift(context.Background(), fixedQuotes{q: types.Quote{Raw: &ref}}, aapl)
	require.NoError(t, err)
	assert.True(t, d.Percent.Equal(decimal.NewFromInt(25)), d.Percent.String())
	assert.True(t, d.Reference.Equal(decimal.NewFromInt(120)))

	_, err = CheckDrift(context.Background(), fixedQuotes{}, aapl)
	assert.Error(t, err)

	_, err = CheckDrift(context.Background(), fixedQuotes{err: errors.New("offline")}, aapl)
	assert.Error(t, err)
}
