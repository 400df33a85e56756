package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSIStrategySelect(t *testing.T) {
	tbl := priceTable(t, []string{"UP", "DOWN"}, map[string][]float64{
		"UP":   {1, 2, 3}, // RSI 100, overbought
		"DOWN": {3, 2, 1}, // RSI 0, oversold
	})

	s := NewRSIStrategy(2, 70, 30)
	sig, ok := s.Select(day(2024, 1, 3), tbl)
	require.True(t, ok)
	assert.Equal(t, []string{"DOWN"}, sig.Targets)
	assert.Equal(t, []string{"UP"}, sig.ForcedExits)
}

func TestRSIStrategyInsufficientHistory(t *testing.T) {
	tbl := priceTable(t, []string{"UP"}, map[string][]float64{
		"UP": {1, 2, 3},
	})

	s := NewRSIStrategy(14, 70, 30)
	_, ok := s.Select(day(2024, 1, 3), tbl)
	assert.False(t, ok)
}
