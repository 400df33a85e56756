package cmd

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/rebalance/analysis"
	"github.com/rustyeddy/rebalance/market"
	"github.com/rustyeddy/rebalance/sim"
	"github.com/rustyeddy/rebalance/sweep"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run a parameter-grid sweep of independent backtests",
	Long: `Sweep runs the default research grid for a strategy family, one
independent simulation per parameter combination, and prints the results
ranked by Sharpe ratio. Runs share nothing but the read-only price table
and execute concurrently.`,
	RunE: runSweep,
}

var (
	swPrices      string
	swStrategy    string
	swCapital     float64
	swFeeRate     float64
	swLotSize     int64
	swParallel    int
	swRiskFree    float64
	swTradingDays int
)

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().StringVarP(&swPrices, "prices", "p", envOr("REBALANCE_PRICES", "./prices.csv"), "path to price-table CSV")
	sweepCmd.Flags().StringVarP(&swStrategy, "strategy", "s", "momentum", "strategy family (momentum, mean-reversion)")
	sweepCmd.Flags().Float64Var(&swCapital, "capital", 100_000, "initial capital per run")
	sweepCmd.Flags().Float64Var(&swFeeRate, "fee", 0.0006, "transaction fee rate")
	sweepCmd.Flags().Int64Var(&swLotSize, "lot", 100, "minimum trade lot size")
	sweepCmd.Flags().IntVar(&swParallel, "parallel", runtime.NumCPU(), "max simulations in flight")
	sweepCmd.Flags().Float64Var(&swRiskFree, "risk-free", 0, "annual risk-free rate for the Sharpe ratio")
	sweepCmd.Flags().IntVar(&swTradingDays, "trading-days", 252, "trading days per year for annualization")
}

func runSweep(cmd *cobra.Command, args []string) error {
	table, err := market.LoadCSV(swPrices)
	if err != nil {
		return fmt.Errorf("load prices: %w", err)
	}

	cfg := sim.Config{
		InitialCapital: swCapital,
		FeeRate:        swFeeRate,
		LotSize:        swLotSize,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var jobs []sweep.Job
	switch swStrategy {
	case "momentum":
		jobs = sweep.DefaultMomentumGrid(cfg)
	case "mean-reversion", "meanreversion":
		jobs = sweep.DefaultMeanReversionGrid(cfg)
	default:
		return fmt.Errorf("no sweep grid for strategy %q (supported: momentum, mean-reversion)", swStrategy)
	}

	opts := analysis.Options{RiskFreeRate: swRiskFree, TradingDaysPerYear: swTradingDays}
	outcomes, err := sweep.Run(context.Background(), table, jobs, swParallel, opts)
	if err != nil {
		return err
	}
	sweep.RankBySharpe(outcomes)

	fmt.Printf("%-28s %12s %10s %10s %10s\n", "parameters", "final", "return", "sharpe", "maxdd")
	for _, o := range outcomes {
		s := o.Summary
		fmt.Printf("%-28s %12.2f %9.2f%% %10.3f %9.2f%%\n",
			o.Job.Name, s.FinalAssets, s.AnnualizedReturn*100, s.SharpeRatio, s.MaxDrawdown.Ratio*100)
	}
	return nil
}
