// Package sim drives rule-based rebalancing simulations over a daily price
// table. The Simulator owns a Ledger for the duration of one run and emits
// the before/after trade-snapshot tables as values; persistence and PnL
// reconciliation live elsewhere.
package sim

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rustyeddy/rebalance/journal"
	"github.com/rustyeddy/rebalance/market"
	"github.com/rustyeddy/rebalance/strategy"
)

// Result holds the outputs of one simulation run. Snapshot rows are in
// date-ascending order, instrument-ascending within a date.
type Result struct {
	Before []journal.SnapshotRow
	After  []journal.SnapshotRow

	// FinalCash and Open describe the ledger at the end of the run. Open
	// positions are not force-liquidated; valuing them is the analytics
	// layer's job.
	FinalCash float64
	Open      map[string]Position
}

// Simulator runs one strategy over one price table with one immutable
// config. Build a fresh Simulator per run; the embedded Ledger is never
// reused.
type Simulator struct {
	cfg    Config
	table  *market.Table
	strat  strategy.Strategy
	ledger *Ledger
}

func New(cfg Config, table *market.Table, strat strategy.Strategy) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("simulator config: %w", err)
	}
	if table == nil {
		return nil, fmt.Errorf("simulator: nil price table")
	}
	if strat == nil {
		return nil, fmt.Errorf("simulator: nil strategy")
	}
	return &Simulator{
		cfg:    cfg,
		table:  table,
		strat:  strat,
		ledger: NewLedger(cfg.InitialCapital),
	}, nil
}

// Run executes the day loop over every trading date in the table:
// before snapshot, signal, sells, valuation, buys, completion pass.
// Dates the strategy cannot rank (insufficient history) are skipped with
// the ledger unchanged.
func (s *Simulator) Run() (*Result, error) {
	res := &Result{}

	for _, date := range s.table.Dates() {
		// Pre-rebalance holdings at cost price.
		for _, instrument := range s.ledger.Holdings() {
			p, _ := s.ledger.Position(instrument)
			res.Before = append(res.Before, journal.SnapshotRow{
				Date:       date,
				Instrument: instrument,
				Price:      p.CostBasis,
				Quantity:   p.Quantity,
			})
		}

		sig, ok := s.strat.Select(date, s.table)
		if !ok {
			continue
		}

		after, err := s.rebalance(date, sig)
		if err != nil {
			return nil, fmt.Errorf("rebalance %s: %w", market.FormatDate(date), err)
		}

		sort.Slice(after, func(i, j int) bool { return after[i].Instrument < after[j].Instrument })
		res.After = append(res.After, after...)
	}

	res.FinalCash = s.ledger.Cash()
	res.Open = s.ledger.Positions()
	return res, nil
}

// rebalance applies one date's signal and returns that date's after rows
// (unsorted).
func (s *Simulator) rebalance(date time.Time, sig strategy.Signal) ([]journal.SnapshotRow, error) {
	var after []journal.SnapshotRow
	emitted := make(map[string]bool)

	// Sell phase: forced exits plus, under replace-to-target, every
	// holding outside the target set. A missing or non-positive price
	// skips the sale and the prior holding is retained.
	sells := s.sellSet(sig)
	for _, instrument := range s.ledger.Holdings() {
		if !sells[instrument] {
			continue
		}
		price, ok := s.openPrice(date, instrument)
		if !ok {
			continue
		}
		if _, _, err := s.ledger.Sell(instrument, price, s.cfg.FeeRate); err != nil {
			return nil, err
		}
		// Quantity 0 marks the exit event; the row is kept, not dropped.
		after = append(after, journal.SnapshotRow{
			Date:       date,
			Instrument: instrument,
			Price:      price,
			Quantity:   0,
		})
		emitted[instrument] = true
	}

	// Post-sell portfolio value: cash plus remaining holdings at today's
	// prices where available.
	value := s.ledger.Cash()
	for _, instrument := range s.ledger.Holdings() {
		if price, ok := s.openPrice(date, instrument); ok {
			p, _ := s.ledger.Position(instrument)
			value += float64(p.Quantity) * price
		}
	}

	// Buy phase: allocate equally across target instruments not yet
	// held. Replace-to-target mode allocates against portfolio value,
	// the others against cash.
	var candidates []string
	for _, instrument := range sig.Targets {
		if p, ok := s.ledger.Position(instrument); !ok || p.Quantity == 0 {
			candidates = append(candidates, instrument)
		}
	}
	if len(candidates) > 0 {
		base := s.ledger.Cash()
		if s.strat.ExitPolicy() == strategy.ReplaceToTarget {
			base = value
		}
		alloc := base / float64(len(candidates))
		lot := float64(s.cfg.LotSize)

		for _, instrument := range candidates {
			price, ok := s.openPrice(date, instrument)
			if !ok {
				continue
			}
			qty := int64(math.Floor(alloc/(price*lot))) * s.cfg.LotSize
			if qty <= 0 {
				continue
			}
			cost := float64(qty) * price
			fee := cost * s.cfg.FeeRate
			// Affordability is checked before committing; no partial-lot
			// fallback beyond the flooring above.
			if cost+fee > s.ledger.Cash()+cashEpsilon {
				continue
			}
			if err := s.ledger.Buy(instrument, qty, price, fee); err != nil {
				return nil, err
			}
			after = append(after, journal.SnapshotRow{
				Date:       date,
				Instrument: instrument,
				Price:      price,
				Quantity:   qty,
			})
			emitted[instrument] = true
		}
	}

	// Completion pass: every instrument still held without an after row
	// today gets one with unchanged quantity at cost price.
	for _, instrument := range s.ledger.Holdings() {
		if emitted[instrument] {
			continue
		}
		p, _ := s.ledger.Position(instrument)
		after = append(after, journal.SnapshotRow{
			Date:       date,
			Instrument: instrument,
			Price:      p.CostBasis,
			Quantity:   p.Quantity,
		})
	}

	return after, nil
}

func (s *Simulator) sellSet(sig strategy.Signal) map[string]bool {
	sells := make(map[string]bool)
	for _, instrument := range sig.ForcedExits {
		sells[instrument] = true
	}

	if s.strat.ExitPolicy() == strategy.ReplaceToTarget {
		targets := make(map[string]bool, len(sig.Targets))
		for _, instrument := range sig.Targets {
			targets[instrument] = true
		}
		for _, instrument := range s.ledger.Holdings() {
			if !targets[instrument] {
				sells[instrument] = true
			}
		}
	}
	return sells
}

// openPrice returns today's open for instrument, reporting ok=false for
// missing, NaN, or non-positive prices.
func (s *Simulator) openPrice(date time.Time, instrument string) (float64, bool) {
	px, ok := s.table.Open(date, instrument)
	if !ok || math.IsNaN(px) || px <= 0 {
		return 0, false
	}
	return px, true
}
