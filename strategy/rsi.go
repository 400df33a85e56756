package strategy

import (
	"time"

	"github.com/rustyeddy/rebalance/indicators"
	"github.com/rustyeddy/rebalance/market"
)

// RSIStrategy buys oversold instruments (Wilder RSI below the oversold
// threshold) and forces out overbought ones (RSI above the overbought
// threshold). Holdings in the neutral band are kept.
type RSIStrategy struct {
	Period     int
	Overbought float64
	Oversold   float64
}

// NewRSIStrategy creates an RSI strategy. Non-positive arguments fall back
// to a 14-day period with 70/30 thresholds.
func NewRSIStrategy(period int, overbought, oversold float64) *RSIStrategy {
	if period <= 0 {
		period = 14
	}
	if overbought <= 0 {
		overbought = 70
	}
	if oversold <= 0 {
		oversold = 30
	}
	return &RSIStrategy{Period: period, Overbought: overbought, Oversold: oversold}
}

func (s *RSIStrategy) Name() string { return "rsi" }

func (s *RSIStrategy) ExitPolicy() ExitPolicy { return ForcedExitOnly }

func (s *RSIStrategy) Select(date time.Time, table *market.Table) (Signal, bool) {
	var sig Signal
	any := false

	for _, instrument := range table.Instruments() {
		series := table.SeriesThrough(instrument, date)
		rsi, ok := indicators.WilderRSI(series, s.Period)
		if !ok {
			continue
		}
		any = true
		switch {
		case rsi < s.Oversold:
			sig.Targets = append(sig.Targets, instrument)
		case rsi > s.Overbought:
			sig.ForcedExits = append(sig.ForcedExits, instrument)
		}
	}

	return sig, any
}
