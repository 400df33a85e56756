package sweep

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/rebalance/analysis"
	"github.com/rustyeddy/rebalance/market"
	"github.com/rustyeddy/rebalance/sim"
	"github.com/rustyeddy/rebalance/strategy"
)

func day(n int) time.Time {
	return time.Date(2024, 1, n, 0, 0, 0, 0, time.UTC)
}

func sweepTable(t *testing.T) *market.Table {
	t.Helper()

	var obs []market.Observation
	prices := map[string][]float64{
		"AAA": {10, 11, 11, 10, 20, 21, 19, 22},
		"BBB": {10, 10, 12, 15, 16, 14, 15, 13},
	}
	for instrument, series := range prices {
		for i, px := range series {
			obs = append(obs, market.Observation{Date: day(1 + i), Instrument: instrument, Open: px})
		}
	}
	tbl, err := market.NewTable(obs)
	require.NoError(t, err)
	return tbl
}

func TestRunExecutesAllJobs(t *testing.T) {
	tbl := sweepTable(t)
	cfg := sim.Config{InitialCapital: 10_000, FeeRate: 0.0006, LotSize: 100}
	jobs := MomentumGrid(cfg, []int{1, 2}, []int{1, 2})

	outcomes, err := Run(context.Background(), tbl, jobs, 4, analysis.Options{})
	require.NoError(t, err)
	require.Len(t, outcomes, 4)

	seen := make(map[string]bool)
	for i, o := range outcomes {
		assert.Equal(t, jobs[i].Name, o.Job.Name, "outcomes keep job order")
		assert.NotEmpty(t, o.RunID)
		assert.False(t, seen[o.RunID], "run IDs are unique")
		seen[o.RunID] = true
	}
}

func TestRunIsDeterministicAcrossParallelism(t *testing.T) {
	tbl := sweepTable(t)
	cfg := sim.Config{InitialCapital: 10_000, FeeRate: 0.0006, LotSize: 100}

	serial, err := Run(context.Background(), tbl, MomentumGrid(cfg, []int{1, 2}, []int{1, 2}), 1, analysis.Options{})
	require.NoError(t, err)
	parallel, err := Run(context.Background(), tbl, MomentumGrid(cfg, []int{1, 2}, []int{1, 2}), 4, analysis.Options{})
	require.NoError(t, err)

	require.Len(t, parallel, len(serial))
	for i := range serial {
		assert.Equal(t, serial[i].Summary, parallel[i].Summary, serial[i].Job.Name)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, sweepTable(t), DefaultMomentumGrid(sim.DefaultConfig()), 2, analysis.Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunBadJobFails(t *testing.T) {
	jobs := []Job{{
		Name:     "broken",
		Config:   sim.Config{}, // invalid
		Strategy: strategy.NewMomentum(1, 1),
	}}
	_, err := Run(context.Background(), sweepTable(t), jobs, 1, analysis.Options{})
	assert.Error(t, err)
}

func TestRankBySharpe(t *testing.T) {
	outcomes := []Outcome{
		{Job: Job{Name: "low"}, Summary: analysis.Summary{SharpeRatio: 0.5, FinalAssets: 100}},
		{Job: Job{Name: "high"}, Summary: analysis.Summary{SharpeRatio: 2.0, FinalAssets: 100}},
		{Job: Job{Name: "tie-rich"}, Summary: analysis.Summary{SharpeRatio: 0.5, FinalAssets: 200}},
	}
	RankBySharpe(outcomes)

	assert.Equal(t, "high", outcomes[0].Job.Name)
	assert.Equal(t, "tie-rich", outcomes[1].Job.Name)
	assert.Equal(t, "low", outcomes[2].Job.Name)
}

func TestDefaultGrids(t *testing.T) {
	cfg := sim.DefaultConfig()
	assert.Len(t, DefaultMomentumGrid(cfg), 16)
	assert.Len(t, DefaultMeanReversionGrid(cfg), 12)

	jobs := MomentumGrid(cfg, []int{10}, []int{2})
	require.Len(t, jobs, 1)
	assert.Equal(t, "momentum L=10 N=2", jobs[0].Name)
	assert.Equal(t, cfg, jobs[0].Config)
}
