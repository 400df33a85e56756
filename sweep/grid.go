package sweep

import (
	"fmt"

	"github.com/rustyeddy/rebalance/sim"
	"github.com/rustyeddy/rebalance/strategy"
)

// MomentumGrid builds one job per (lookback, topN) combination.
func MomentumGrid(cfg sim.Config, lookbacks, topNs []int) []Job {
	jobs := make([]Job, 0, len(lookbacks)*len(topNs))
	for _, lookback := range lookbacks {
		for _, topN := range topNs {
			jobs = append(jobs, Job{
				Name:     fmt.Sprintf("momentum L=%d N=%d", lookback, topN),
				Config:   cfg,
				Strategy: strategy.NewMomentum(lookback, topN),
			})
		}
	}
	return jobs
}

// MeanReversionGrid builds one job per (window, threshold) combination.
func MeanReversionGrid(cfg sim.Config, windows []int, thresholds []float64) []Job {
	jobs := make([]Job, 0, len(windows)*len(thresholds))
	for _, window := range windows {
		for _, threshold := range thresholds {
			jobs = append(jobs, Job{
				Name:     fmt.Sprintf("mean-reversion W=%d z=%.1f", window, threshold),
				Config:   cfg,
				Strategy: strategy.NewMeanReversion(window, threshold),
			})
		}
	}
	return jobs
}

// DefaultMomentumGrid is the stock research grid: lookbacks 10..40 by 10,
// top N 1..4.
func DefaultMomentumGrid(cfg sim.Config) []Job {
	return MomentumGrid(cfg, []int{10, 20, 30, 40}, []int{1, 2, 3, 4})
}

// DefaultMeanReversionGrid covers windows 10..25 by 5 and thresholds
// 1.5, 2.0, 2.5.
func DefaultMeanReversionGrid(cfg sim.Config) []Job {
	return MeanReversionGrid(cfg, []int{10, 15, 20, 25}, []float64{1.5, 2.0, 2.5})
}
