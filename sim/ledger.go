package sim

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrInsufficientCash = errors.New("insufficient cash")
	ErrNotHeld          = errors.New("instrument not held")
)

// cashEpsilon bounds how far cash may dip below zero from float rounding.
const cashEpsilon = 1e-6

// Position is a held quantity with its weighted-average cost basis.
type Position struct {
	Quantity  int64
	CostBasis float64
}

// Ledger is the in-memory portfolio state of one simulation run: positions
// keyed by instrument plus a single cash balance. A Ledger is created
// empty per run and owned exclusively by the Simulator that drives it.
type Ledger struct {
	cash      float64
	positions map[string]Position
}

func NewLedger(initialCash float64) *Ledger {
	return &Ledger{
		cash:      initialCash,
		positions: make(map[string]Position),
	}
}

func (l *Ledger) Cash() float64 { return l.cash }

// Position returns the holding for instrument; ok is false when nothing
// is held.
func (l *Ledger) Position(instrument string) (Position, bool) {
	p, ok := l.positions[instrument]
	return p, ok
}

// Holdings returns the held instruments (quantity > 0) sorted ascending,
// so iteration over ledger state is deterministic.
func (l *Ledger) Holdings() []string {
	out := make([]string, 0, len(l.positions))
	for instrument, p := range l.positions {
		if p.Quantity > 0 {
			out = append(out, instrument)
		}
	}
	sort.Strings(out)
	return out
}

// Positions returns a copy of the current holdings.
func (l *Ledger) Positions() map[string]Position {
	out := make(map[string]Position, len(l.positions))
	for instrument, p := range l.positions {
		if p.Quantity > 0 {
			out[instrument] = p
		}
	}
	return out
}

// Buy adds qty of instrument at price, charging cost plus fee against
// cash and folding the purchase into the weighted-average cost basis.
func (l *Ledger) Buy(instrument string, qty int64, price, fee float64) error {
	if qty <= 0 {
		return fmt.Errorf("buy %s: non-positive quantity %d", instrument, qty)
	}
	cost := float64(qty) * price
	if l.cash-cost-fee < -cashEpsilon {
		return fmt.Errorf("buy %s: %w (need %.2f, have %.2f)", instrument, ErrInsufficientCash, cost+fee, l.cash)
	}

	p := l.positions[instrument]
	newQty := p.Quantity + qty
	if p.Quantity > 0 {
		p.CostBasis = (p.CostBasis*float64(p.Quantity) + price*float64(qty)) / float64(newQty)
	} else {
		p.CostBasis = price
	}
	p.Quantity = newQty
	l.positions[instrument] = p

	l.cash -= cost + fee
	return nil
}

// Sell liquidates the full position in instrument at price, crediting
// proceeds minus fee to cash. It returns the gross proceeds and the fee.
func (l *Ledger) Sell(instrument string, price, feeRate float64) (proceeds, fee float64, err error) {
	p, ok := l.positions[instrument]
	if !ok || p.Quantity <= 0 {
		return 0, 0, fmt.Errorf("sell %s: %w", instrument, ErrNotHeld)
	}

	proceeds = float64(p.Quantity) * price
	fee = proceeds * feeRate
	l.cash += proceeds - fee
	delete(l.positions, instrument)
	return proceeds, fee, nil
}
