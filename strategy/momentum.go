package strategy

import (
	"sort"
	"time"

	"github.com/rustyeddy/rebalance/indicators"
	"github.com/rustyeddy/rebalance/market"
)

// Momentum ranks instruments by trailing return and holds the top N.
// It fully rebalances: anything held outside the target set is sold.
type Momentum struct {
	Lookback int
	TopN     int
}

// NewMomentum creates a momentum strategy. Non-positive arguments fall
// back to a 30-day lookback and top 3.
func NewMomentum(lookback, topN int) *Momentum {
	if lookback <= 0 {
		lookback = 30
	}
	if topN <= 0 {
		topN = 3
	}
	return &Momentum{Lookback: lookback, TopN: topN}
}

func (m *Momentum) Name() string { return "momentum" }

func (m *Momentum) ExitPolicy() ExitPolicy { return ReplaceToTarget }

func (m *Momentum) Select(date time.Time, table *market.Table) (Signal, bool) {
	type ranked struct {
		instrument string
		ret        float64
	}

	var rs []ranked
	for _, instrument := range table.Instruments() {
		series := table.SeriesThrough(instrument, date)
		ret, ok := indicators.LookbackReturn(series, m.Lookback)
		if !ok {
			continue
		}
		rs = append(rs, ranked{instrument, ret})
	}
	if len(rs) == 0 {
		return Signal{}, false
	}

	// Stable sort keeps first-appearance order on ties.
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].ret > rs[j].ret })

	n := m.TopN
	if n > len(rs) {
		n = len(rs)
	}

	sig := Signal{Targets: make([]string, 0, n)}
	for _, r := range rs[:n] {
		sig.Targets = append(sig.Targets, r.instrument)
	}
	return sig, true
}
