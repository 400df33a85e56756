package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerBuy(t *testing.T) {
	l := NewLedger(10_000)

	err := l.Buy("AAA", 100, 10, 1)
	require.NoError(t, err)
	assert.InDelta(t, 8999, l.Cash(), 1e-9)

	p, ok := l.Position("AAA")
	require.True(t, ok)
	assert.Equal(t, int64(100), p.Quantity)
	assert.Equal(t, 10.0, p.CostBasis)
}

func TestLedgerBuyAveragesCostBasis(t *testing.T) {
	l := NewLedger(10_000)
	require.NoError(t, l.Buy("AAA", 100, 10, 0))
	require.NoError(t, l.Buy("AAA", 100, 20, 0))

	p, ok := l.Position("AAA")
	require.True(t, ok)
	assert.Equal(t, int64(200), p.Quantity)
	assert.InDelta(t, 15.0, p.CostBasis, 1e-9)
	assert.InDelta(t, 7000, l.Cash(), 1e-9)
}

func TestLedgerBuyErrors(t *testing.T) {
	l := NewLedger(100)

	err := l.Buy("AAA", 100, 10, 0)
	assert.ErrorIs(t, err, ErrInsufficientCash)

	err = l.Buy("AAA", 0, 10, 0)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInsufficientCash)
}

func TestLedgerSell(t *testing.T) {
	l := NewLedger(10_000)
	require.NoError(t, l.Buy("AAA", 100, 10, 0))

	proceeds, fee, err := l.Sell("AAA", 12, 0.01)
	require.NoError(t, err)
	assert.InDelta(t, 1200, proceeds, 1e-9)
	assert.InDelta(t, 12, fee, 1e-9)
	assert.InDelta(t, 9000+1200-12, l.Cash(), 1e-9)

	_, ok := l.Position("AAA")
	assert.False(t, ok)

	_, _, err = l.Sell("AAA", 12, 0.01)
	assert.ErrorIs(t, err, ErrNotHeld)
}

func TestLedgerHoldingsSorted(t *testing.T) {
	l := NewLedger(10_000)
	require.NoError(t, l.Buy("ZZZ", 100, 1, 0))
	require.NoError(t, l.Buy("AAA", 100, 1, 0))
	require.NoError(t, l.Buy("MMM", 100, 1, 0))

	assert.Equal(t, []string{"AAA", "MMM", "ZZZ"}, l.Holdings())
}

func TestLedgerPositionsIsACopy(t *testing.T) {
	l := NewLedger(10_000)
	require.NoError(t, l.Buy("AAA", 100, 1, 0))

	got := l.Positions()
	got["AAA"] = Position{Quantity: 999, CostBasis: 999}

	p, _ := l.Position("AAA")
	assert.Equal(t, int64(100), p.Quantity)
}
