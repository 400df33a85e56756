// Package journal persists the outputs of a simulation run: the before and
// after trade-snapshot tables and the reconciled PnL series. Computation
// stays in sim and pnl; writers here are invoked explicitly afterwards.
package journal

import "time"

// SnapshotRow is one holding in a dated trade snapshot. A "before" row
// records pre-rebalance holdings at cost price; an "after" row records
// post-rebalance holdings, with quantity 0 kept for a full liquidation to
// mark the exit event.
type SnapshotRow struct {
	Date       time.Time
	Instrument string
	Price      float64
	Quantity   int64
}

// TradeDetail is the per-instrument breakdown of one reconciled date.
type TradeDetail struct {
	Instrument string
	Action     string // "BUY" or "SELL"
	Quantity   int64
	Price      float64 // transaction price
	CostPrice  float64 // cost basis of the sold position, 0 for buys
	PnL        float64
	Fee        float64
}

// PnLRecord is the reconciled profit and loss of one trading date. It is
// computed once per reconciliation pass and never mutated afterwards.
type PnLRecord struct {
	Date        time.Time
	RealizedPnL float64
	Fee         float64
	TotalPnL    float64 // RealizedPnL - Fee
	Details     []TradeDetail
}

// Writer persists the tables of one run under a run ID.
type Writer interface {
	WriteSnapshots(runID string, before, after []SnapshotRow) error
	WritePnL(runID string, records []PnLRecord) error
	Close() error
}
