package strategy

import (
	"time"

	"github.com/rustyeddy/rebalance/indicators"
	"github.com/rustyeddy/rebalance/market"
)

// MeanReversion buys instruments trading far below their rolling mean and
// forces out instruments trading far above it. Holdings in between are
// kept: the exit policy is forced-exit-only.
type MeanReversion struct {
	Window    int
	Threshold float64
}

// NewMeanReversion creates a mean-reversion strategy. Non-positive
// arguments fall back to a 20-day window and a z-score threshold of 2.
func NewMeanReversion(window int, threshold float64) *MeanReversion {
	if window <= 0 {
		window = 20
	}
	if threshold <= 0 {
		threshold = 2.0
	}
	return &MeanReversion{Window: window, Threshold: threshold}
}

func (m *MeanReversion) Name() string { return "mean-reversion" }

func (m *MeanReversion) ExitPolicy() ExitPolicy { return ForcedExitOnly }

func (m *MeanReversion) Select(date time.Time, table *market.Table) (Signal, bool) {
	var sig Signal
	any := false

	for _, instrument := range table.Instruments() {
		series := table.SeriesThrough(instrument, date)
		z, ok := indicators.ZScore(series, m.Window)
		if !ok {
			// Short history, a NaN in the window, or zero dispersion:
			// excluded from ranking for this date only.
			continue
		}
		any = true
		switch {
		case z < -m.Threshold:
			sig.Targets = append(sig.Targets, instrument)
		case z > m.Threshold:
			sig.ForcedExits = append(sig.ForcedExits, instrument)
		}
	}

	return sig, any
}
