package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSIAllGains(t *testing.T) {
	r := NewRSI(14)
	for px := 1.0; px <= 15; px++ {
		r.Update(px)
	}
	require.True(t, r.Ready())
	assert.Equal(t, 100.0, r.Value())
}

func TestRSIMixed(t *testing.T) {
	r := NewRSI(2)
	for _, px := range []float64{10, 11, 10.5} {
		r.Update(px)
	}
	require.True(t, r.Ready())
	// avgGain 0.5, avgLoss 0.25 after Wilder smoothing.
	assert.InDelta(t, 66.6667, r.Value(), 1e-4)
}

func TestRSINotReady(t *testing.T) {
	r := NewRSI(14)
	assert.False(t, r.Ready())
	assert.Equal(t, 14+1, r.Warmup())

	for px := 1.0; px <= 14; px++ {
		r.Update(px) // 13 deltas, one short of the period
	}
	assert.False(t, r.Ready())
	assert.Equal(t, 0.0, r.Value())
}

func TestRSIIgnoresNaN(t *testing.T) {
	r := NewRSI(2)
	for _, px := range []float64{10, math.NaN(), 11, math.NaN(), 10.5} {
		r.Update(px)
	}
	require.True(t, r.Ready())
	assert.InDelta(t, 66.6667, r.Value(), 1e-4)
}

func TestRSIReset(t *testing.T) {
	r := NewRSI(2)
	for _, px := range []float64{10, 11, 12} {
		r.Update(px)
	}
	require.True(t, r.Ready())

	r.Reset()
	assert.False(t, r.Ready())
	assert.Equal(t, 0.0, r.Value())
}

func TestWilderRSI(t *testing.T) {
	v, ok := WilderRSI([]float64{10, 11, 10.5}, 2)
	require.True(t, ok)
	assert.InDelta(t, 66.6667, v, 1e-4)

	_, ok = WilderRSI([]float64{10, 11}, 2)
	assert.False(t, ok)
}

func TestRSIName(t *testing.T) {
	assert.Equal(t, "RSI(14)", NewRSI(14).Name())
}
