// Package indicators provides the statistics the strategy variants rank
// instruments with. All helpers operate on date-aligned price series where
// a missing observation is NaN; they report ok=false instead of guessing
// when the trailing history is insufficient or polluted.
package indicators

import "math"

// LookbackReturn computes the simple return over a trailing lookback
// window: series[n-1] / series[n-1-lookback] - 1. ok is false when the
// series is too short or either endpoint is NaN or non-positive.
func LookbackReturn(series []float64, lookback int) (float64, bool) {
	n := len(series)
	if lookback <= 0 || n <= lookback {
		return 0, false
	}
	last := series[n-1]
	base := series[n-1-lookback]
	if !usable(last) || !usable(base) {
		return 0, false
	}
	return last/base - 1, true
}

// Rolling computes mean and sample standard deviation over the trailing
// window. ok is false when the series is shorter than the window or any
// value in the window is NaN.
func Rolling(series []float64, window int) (mean, std float64, ok bool) {
	n := len(series)
	if window < 2 || n < window {
		return 0, 0, false
	}
	tail := series[n-window:]

	sum := 0.0
	for _, v := range tail {
		if math.IsNaN(v) {
			return 0, 0, false
		}
		sum += v
	}
	mean = sum / float64(window)

	ss := 0.0
	for _, v := range tail {
		d := v - mean
		ss += d * d
	}
	std = math.Sqrt(ss / float64(window-1))
	return mean, std, true
}

// ZScore normalizes the latest value against the trailing window:
// (last - mean) / std. A zero or NaN standard deviation yields ok=false,
// excluding the instrument from ranking for that date.
func ZScore(series []float64, window int) (float64, bool) {
	mean, std, ok := Rolling(series, window)
	if !ok || std == 0 || math.IsNaN(std) {
		return 0, false
	}
	last := series[len(series)-1]
	return (last - mean) / std, true
}

func usable(v float64) bool {
	return !math.IsNaN(v) && v > 0
}
