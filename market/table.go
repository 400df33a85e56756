// Package market holds the in-memory daily price table a simulation runs
// against, plus the ingestion and date-normalization boundary around it.
package market

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

// ErrInvalidMarketData reports a malformed price table. It aborts a run
// before any simulation starts.
var ErrInvalidMarketData = errors.New("invalid market data")

// Observation is a single (date, instrument) open price.
type Observation struct {
	Date       time.Time
	Instrument string
	Open       float64
}

// Table is a daily price table keyed by (date, instrument), with trading
// dates sorted ascending. Instruments keep their first-appearance order;
// that order is the tie-break used by strategy rankings. A Table is
// read-only after construction and safe to share across concurrent runs.
type Table struct {
	dates       []time.Time
	dateIndex   map[time.Time]int
	instruments []string
	opens       map[time.Time]map[string]float64
}

// NewTable builds a Table from raw observations. Duplicate (date,
// instrument) pairs and empty instrument codes are rejected with
// ErrInvalidMarketData.
func NewTable(obs []Observation) (*Table, error) {
	if len(obs) == 0 {
		return nil, fmt.Errorf("%w: no observations", ErrInvalidMarketData)
	}

	t := &Table{
		dateIndex: make(map[time.Time]int),
		opens:     make(map[time.Time]map[string]float64),
	}
	seen := make(map[string]struct{})

	for _, o := range obs {
		if o.Instrument == "" {
			return nil, fmt.Errorf("%w: observation on %s has no instrument", ErrInvalidMarketData, FormatDate(o.Date))
		}
		d := DateOf(o.Date)
		day, ok := t.opens[d]
		if !ok {
			day = make(map[string]float64)
			t.opens[d] = day
			t.dates = append(t.dates, d)
		}
		if _, dup := day[o.Instrument]; dup {
			return nil, fmt.Errorf("%w: duplicate observation %s/%s", ErrInvalidMarketData, FormatDate(d), o.Instrument)
		}
		day[o.Instrument] = o.Open
		if _, ok := seen[o.Instrument]; !ok {
			seen[o.Instrument] = struct{}{}
			t.instruments = append(t.instruments, o.Instrument)
		}
	}

	sort.Slice(t.dates, func(i, j int) bool { return t.dates[i].Before(t.dates[j]) })
	for i, d := range t.dates {
		t.dateIndex[d] = i
	}
	return t, nil
}

// Dates returns the trading dates in ascending order. Callers must not
// mutate the returned slice.
func (t *Table) Dates() []time.Time { return t.dates }

// Instruments returns instrument codes in first-appearance order.
func (t *Table) Instruments() []string { return t.instruments }

// Open returns the open price for (date, instrument). ok is false when no
// observation exists; a recorded NaN or non-positive price is returned
// as-is, so callers decide whether it is usable.
func (t *Table) Open(date time.Time, instrument string) (float64, bool) {
	day, ok := t.opens[DateOf(date)]
	if !ok {
		return 0, false
	}
	px, ok := day[instrument]
	return px, ok
}

// SeriesThrough returns the instrument's open-price series over every
// trading date up to and including date, one value per date with NaN for
// missing observations. It returns nil when date is not a trading date.
func (t *Table) SeriesThrough(instrument string, date time.Time) []float64 {
	idx, ok := t.dateIndex[DateOf(date)]
	if !ok {
		return nil
	}
	series := make([]float64, idx+1)
	for i := 0; i <= idx; i++ {
		px, ok := t.opens[t.dates[i]][instrument]
		if !ok {
			px = math.NaN()
		}
		series[i] = px
	}
	return series
}
