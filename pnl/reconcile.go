// Package pnl recomputes realized profit and loss purely from before/after
// trade-snapshot tables. It never reads simulator or ledger state, so it
// can audit trade records produced by any source and catch bookkeeping
// bugs the simulator itself could mask.
package pnl

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rustyeddy/rebalance/journal"
	"github.com/rustyeddy/rebalance/market"
)

// ErrMissingCostBasis reports a sell-direction delta whose before row
// carries no usable cost basis. It indicates a data-integrity fault
// between the two tables and aborts the reconciliation.
var ErrMissingCostBasis = errors.New("missing cost basis")

type holding struct {
	price    float64
	quantity int64
}

// Reconcile walks the sorted union of snapshot dates and reconciles each
// consecutive pair: the before-positions at the earlier date against the
// after-positions at the later one. A pair where either side is empty is
// dropped, not reconciled. Output is one record per reconciled date,
// ascending; the result depends only on the two tables and the fee rate.
func Reconcile(before, after []journal.SnapshotRow, feeRate float64) ([]journal.PnLRecord, error) {
	beforeByDate := groupByDate(before)
	afterByDate := groupByDate(after)

	dates := unionDates(beforeByDate, afterByDate)

	var out []journal.PnLRecord
	for i := 1; i < len(dates); i++ {
		prev, cur := dates[i-1], dates[i]
		bp := beforeByDate[prev]
		ap := afterByDate[cur]
		if len(bp) == 0 || len(ap) == 0 {
			continue
		}
		rec, err := reconcilePair(cur, bp, ap, feeRate)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func reconcilePair(date time.Time, before, after map[string]holding, feeRate float64) (journal.PnLRecord, error) {
	rec := journal.PnLRecord{Date: date}

	for _, instrument := range unionInstruments(before, after) {
		b := before[instrument]
		a, hasAfter := after[instrument]
		delta := a.quantity - b.quantity
		if delta == 0 {
			continue
		}

		// The transaction price comes from the after row. Without one
		// (or with a non-positive price) the change cannot be priced;
		// skip this instrument only.
		if !hasAfter || math.IsNaN(a.price) || a.price <= 0 {
			continue
		}

		qty := delta
		if qty < 0 {
			qty = -qty
		}
		fee := float64(qty) * a.price * feeRate

		detail := journal.TradeDetail{
			Instrument: instrument,
			Quantity:   qty,
			Price:      a.price,
			Fee:        fee,
		}

		if delta < 0 {
			if math.IsNaN(b.price) || b.price <= 0 {
				return journal.PnLRecord{}, fmt.Errorf("reconcile %s/%s: %w",
					market.FormatDate(date), instrument, ErrMissingCostBasis)
			}
			detail.Action = "SELL"
			detail.CostPrice = b.price
			detail.PnL = (a.price - b.price) * float64(qty)
			rec.RealizedPnL += detail.PnL
		} else {
			detail.Action = "BUY"
		}

		rec.Fee += fee
		rec.Details = append(rec.Details, detail)
	}

	rec.TotalPnL = rec.RealizedPnL - rec.Fee
	return rec, nil
}

func groupByDate(rows []journal.SnapshotRow) map[time.Time]map[string]holding {
	out := make(map[time.Time]map[string]holding)
	for _, r := range rows {
		d := market.DateOf(r.Date)
		day, ok := out[d]
		if !ok {
			day = make(map[string]holding)
			out[d] = day
		}
		day[r.Instrument] = holding{price: r.Price, quantity: r.Quantity}
	}
	return out
}

func unionDates(a, b map[time.Time]map[string]holding) []time.Time {
	seen := make(map[time.Time]bool, len(a)+len(b))
	var dates []time.Time
	for d := range a {
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}
	for d := range b {
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

func unionInstruments(a, b map[string]holding) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var instruments []string
	for instrument := range a {
		if !seen[instrument] {
			seen[instrument] = true
			instruments = append(instruments, instrument)
		}
	}
	for instrument := range b {
		if !seen[instrument] {
			seen[instrument] = true
			instruments = append(instruments, instrument)
		}
	}
	sort.Strings(instruments)
	return instruments
}
