// Package analysis turns a reconciled PnL series into performance
// statistics: assets history, annualized return and volatility, Sharpe
// ratio, and maximum drawdown, plus chart and text-report rendering.
package analysis

import (
	"time"

	"github.com/rustyeddy/rebalance/journal"
)

// AssetPoint is one day's starting total assets.
type AssetPoint struct {
	Date   time.Time
	Assets float64
}

// AssetsHistory derives the assets series the performance metrics consume:
// assets(t) = initialCapital + cumulative total PnL up to t-1. Today's own
// PnL is excluded from today's starting assets, so the first value equals
// the initial capital exactly.
func AssetsHistory(initialCapital float64, records []journal.PnLRecord) []AssetPoint {
	points := make([]AssetPoint, 0, len(records))
	cum := 0.0
	for _, r := range records {
		points = append(points, AssetPoint{Date: r.Date, Assets: initialCapital + cum})
		cum += r.TotalPnL
	}
	return points
}
