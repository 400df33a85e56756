// Package sweep runs parameter grids of independent backtests. Each job
// owns its config, strategy, and ledger; jobs share only the read-only
// price table, so they are safe to run concurrently.
package sweep

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/rustyeddy/rebalance/analysis"
	"github.com/rustyeddy/rebalance/internal/id"
	"github.com/rustyeddy/rebalance/market"
	"github.com/rustyeddy/rebalance/pnl"
	"github.com/rustyeddy/rebalance/sim"
	"github.com/rustyeddy/rebalance/strategy"
)

// Job is one parameter combination to simulate.
type Job struct {
	Name     string
	Config   sim.Config
	Strategy strategy.Strategy
}

// Outcome pairs a job with its evaluated result.
type Outcome struct {
	Job     Job
	RunID   string
	Summary analysis.Summary
}

// Run executes every job, at most parallelism at a time, and returns the
// outcomes in job order. The first failing job cancels the rest.
func Run(ctx context.Context, table *market.Table, jobs []Job, parallelism int, opts analysis.Options) ([]Outcome, error) {
	if parallelism <= 0 {
		parallelism = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	out := make([]Outcome, len(jobs))
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			simulator, err := sim.New(job.Config, table, job.Strategy)
			if err != nil {
				return fmt.Errorf("%s: %w", job.Name, err)
			}
			res, err := simulator.Run()
			if err != nil {
				return fmt.Errorf("%s: %w", job.Name, err)
			}
			records, err := pnl.Reconcile(res.Before, res.After, job.Config.FeeRate)
			if err != nil {
				return fmt.Errorf("%s: %w", job.Name, err)
			}

			assets := analysis.AssetsHistory(job.Config.InitialCapital, records)
			out[i] = Outcome{
				Job:     job,
				RunID:   id.New(),
				Summary: analysis.Evaluate(assets, records, opts),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// RankBySharpe sorts outcomes descending by Sharpe ratio, final assets
// breaking ties.
func RankBySharpe(outcomes []Outcome) {
	sort.SliceStable(outcomes, func(i, j int) bool {
		a, b := outcomes[i].Summary, outcomes[j].Summary
		if a.SharpeRatio != b.SharpeRatio {
			return a.SharpeRatio > b.SharpeRatio
		}
		return a.FinalAssets > b.FinalAssets
	})
}
