package indicators

import (
	"fmt"
	"math"
)

// RSI is a streaming Wilder Relative Strength Index. Average gains and
// losses are smoothed exponentially with factor 1/period; the value is
// meaningful once `period` price deltas have been consumed.
type RSI struct {
	period  int
	avgGain float64
	avgLoss float64
	prev    float64
	hasPrev bool
	count   int
}

// NewRSI creates a streaming RSI with the given smoothing period.
func NewRSI(period int) *RSI {
	return &RSI{period: period}
}

func (r *RSI) Name() string {
	return fmt.Sprintf("RSI(%d)", r.period)
}

// Warmup is the number of prices needed before Ready() can be true.
func (r *RSI) Warmup() int {
	return r.period + 1
}

func (r *RSI) Reset() {
	r.avgGain = 0
	r.avgLoss = 0
	r.prev = 0
	r.hasPrev = false
	r.count = 0
}

// Update consumes the next price. NaN prices (missing observations) are
// ignored and the smoothed averages carry over.
func (r *RSI) Update(price float64) {
	if math.IsNaN(price) {
		return
	}
	if !r.hasPrev {
		r.prev = price
		r.hasPrev = true
		return
	}

	delta := price - r.prev
	r.prev = price

	gain, loss := 0.0, 0.0
	if delta > 0 {
		gain = delta
	} else {
		loss = -delta
	}

	if r.count == 0 {
		r.avgGain = gain
		r.avgLoss = loss
	} else {
		alpha := 1.0 / float64(r.period)
		r.avgGain = (1-alpha)*r.avgGain + alpha*gain
		r.avgLoss = (1-alpha)*r.avgLoss + alpha*loss
	}
	r.count++
}

func (r *RSI) Ready() bool {
	return r.count >= r.period
}

// Value returns the RSI in [0, 100]. With no losses in the smoothed window
// the index saturates at 100. Callers should check Ready() first.
func (r *RSI) Value() float64 {
	if !r.Ready() {
		return 0
	}
	if r.avgLoss == 0 {
		return 100
	}
	rs := r.avgGain / r.avgLoss
	return 100 - 100/(1+rs)
}

// WilderRSI computes the RSI of a full series in one call. ok is false
// when the series has fewer than period+1 usable prices.
func WilderRSI(series []float64, period int) (float64, bool) {
	r := NewRSI(period)
	for _, px := range series {
		r.Update(px)
	}
	if !r.Ready() {
		return 0, false
	}
	return r.Value(), true
}
