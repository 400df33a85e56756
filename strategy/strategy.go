// Package strategy implements the per-date signal generators that drive a
// rebalancing simulation. A strategy is a pure function of the price
// history: same history in, same signal out, no side effects.
package strategy

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/rebalance/market"
)

// ExitPolicy decides which held instruments the simulator sells on a
// signal. The policy varies per strategy variant on purpose; do not unify.
type ExitPolicy int

const (
	// ReplaceToTarget sells every held instrument that is not in the
	// target set, fully rebalancing the portfolio to the targets.
	ReplaceToTarget ExitPolicy = iota

	// ForcedExitOnly sells only the instruments the signal explicitly
	// forces out; holdings outside the target set are kept.
	ForcedExitOnly
)

func (p ExitPolicy) String() string {
	switch p {
	case ReplaceToTarget:
		return "replace-to-target"
	case ForcedExitOnly:
		return "forced-exit-only"
	default:
		return fmt.Sprintf("ExitPolicy(%d)", int(p))
	}
}

// Signal is a strategy's decision for one trading date.
type Signal struct {
	// Targets lists the instruments to hold, in ranking order.
	Targets []string

	// ForcedExits lists held instruments the strategy wants sold
	// regardless of the exit policy.
	ForcedExits []string
}

// Strategy generates trading signals from daily price history.
type Strategy interface {
	Name() string
	ExitPolicy() ExitPolicy

	// Select computes the signal for date from history up to and
	// including date. ok is false when the trailing history is too short
	// to rank any instrument; the caller skips the date.
	Select(date time.Time, table *market.Table) (Signal, bool)
}

// Params carries the tunables of every variant; each variant reads only
// its own fields. Zero values fall back to the variant defaults.
type Params struct {
	// Momentum
	Lookback int
	TopN     int

	// Mean reversion
	Window    int
	Threshold float64

	// RSI
	Period     int
	Overbought float64
	Oversold   float64
}

// ByName constructs a strategy variant from its CLI/config name.
func ByName(name string, p Params) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "momentum":
		return NewMomentum(p.Lookback, p.TopN), nil

	case "mean-reversion", "meanreversion":
		return NewMeanReversion(p.Window, p.Threshold), nil

	case "rsi":
		return NewRSIStrategy(p.Period, p.Overbought, p.Oversold), nil

	default:
		return nil, fmt.Errorf("unknown strategy %q (supported: momentum, mean-reversion, rsi)", name)
	}
}
