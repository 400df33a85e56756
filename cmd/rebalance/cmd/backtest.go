package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/rebalance/analysis"
	"github.com/rustyeddy/rebalance/config"
	"github.com/rustyeddy/rebalance/internal/id"
	"github.com/rustyeddy/rebalance/journal"
	"github.com/rustyeddy/rebalance/market"
	"github.com/rustyeddy/rebalance/pnl"
	"github.com/rustyeddy/rebalance/sim"
	"github.com/rustyeddy/rebalance/strategy"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run one backtest: simulate, reconcile PnL, persist, report",
	Long: `Backtest loads a daily price table, simulates the chosen strategy,
reconciles realized PnL from the before/after trade snapshots, persists
both tables, and prints a performance report.

Supported strategies:
  - momentum:       hold the top N instruments by trailing return
  - mean-reversion: buy deep z-score dips, force out stretched holdings
  - rsi:            buy oversold, force out overbought (Wilder RSI)

Example:
  rebalance backtest -p data/prices.csv -s momentum --lookback 30 --top-n 3`,
	RunE: runBacktest,
}

var (
	btConfigPath string
	btPrices     string
	btStrategy   string
	btCapital    float64
	btFeeRate    float64
	btLotSize    int64

	btLookback   int
	btTopN       int
	btWindow     int
	btThreshold  float64
	btPeriod     int
	btOverbought float64
	btOversold   float64

	btJournalType string
	btOutDir      string
	btDBPath      string
	btChartFile   string
	btReportFile  string
	btRiskFree    float64
	btTradingDays int
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVarP(&btConfigPath, "config", "c", "", "run config file (YAML or JSON); flags are ignored when set")
	backtestCmd.Flags().StringVarP(&btPrices, "prices", "p", envOr("REBALANCE_PRICES", "./prices.csv"), "path to price-table CSV (date,instrument,open)")
	backtestCmd.Flags().StringVarP(&btStrategy, "strategy", "s", "momentum", "strategy name (momentum, mean-reversion, rsi)")
	backtestCmd.Flags().Float64Var(&btCapital, "capital", 100_000, "initial capital")
	backtestCmd.Flags().Float64Var(&btFeeRate, "fee", 0.0006, "transaction fee rate")
	backtestCmd.Flags().Int64Var(&btLotSize, "lot", 100, "minimum trade lot size")

	backtestCmd.Flags().IntVar(&btLookback, "lookback", 30, "momentum: trailing return window")
	backtestCmd.Flags().IntVar(&btTopN, "top-n", 3, "momentum: number of instruments to hold")
	backtestCmd.Flags().IntVar(&btWindow, "window", 20, "mean-reversion: rolling window")
	backtestCmd.Flags().Float64Var(&btThreshold, "threshold", 2.0, "mean-reversion: z-score threshold")
	backtestCmd.Flags().IntVar(&btPeriod, "period", 14, "rsi: smoothing period")
	backtestCmd.Flags().Float64Var(&btOverbought, "overbought", 70, "rsi: overbought threshold")
	backtestCmd.Flags().Float64Var(&btOversold, "oversold", 30, "rsi: oversold threshold")

	backtestCmd.Flags().StringVar(&btJournalType, "journal", "csv", "journal backend (csv or sqlite)")
	backtestCmd.Flags().StringVarP(&btOutDir, "out", "o", "./out", "output directory for CSV journal")
	backtestCmd.Flags().StringVarP(&btDBPath, "db", "d", "./rebalance.sqlite", "path to SQLite journal DB")
	backtestCmd.Flags().StringVar(&btChartFile, "chart", "", "write an assets-curve PNG to this path")
	backtestCmd.Flags().StringVar(&btReportFile, "report", "", "write the text report to this path")
	backtestCmd.Flags().Float64Var(&btRiskFree, "risk-free", 0, "annual risk-free rate for the Sharpe ratio")
	backtestCmd.Flags().IntVar(&btTradingDays, "trading-days", 252, "trading days per year for annualization")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg, err := backtestConfig()
	if err != nil {
		return err
	}

	table, err := market.LoadCSV(cfg.Data.Prices)
	if err != nil {
		return fmt.Errorf("load prices: %w", err)
	}

	strat, err := strategy.ByName(cfg.Strategy.Name, cfg.StrategyParams())
	if err != nil {
		return err
	}

	simulator, err := sim.New(cfg.SimConfig(), table, strat)
	if err != nil {
		return err
	}
	res, err := simulator.Run()
	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}

	records, err := pnl.Reconcile(res.Before, res.After, cfg.Run.FeeRate)
	if err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}

	runID := id.New()
	writer, err := newWriter(cfg)
	if err != nil {
		return err
	}
	defer writer.Close()

	if err := writer.WriteSnapshots(runID, res.Before, res.After); err != nil {
		return fmt.Errorf("persist snapshots: %w", err)
	}
	if err := writer.WritePnL(runID, records); err != nil {
		return fmt.Errorf("persist pnl: %w", err)
	}

	opts := analysis.Options{
		RiskFreeRate:       cfg.Analysis.RiskFreeRate,
		TradingDaysPerYear: cfg.Analysis.TradingDaysPerYear,
	}
	assets := analysis.AssetsHistory(cfg.Run.InitialCapital, records)
	summary := analysis.Evaluate(assets, records, opts)

	fmt.Printf("Run %s (%s over %s)\n\n", runID, strat.Name(), cfg.Data.Prices)
	if err := analysis.WriteReport(os.Stdout, strat.Name(), summary); err != nil {
		return err
	}

	if cfg.Analysis.ReportFile != "" {
		f, err := os.Create(cfg.Analysis.ReportFile)
		if err != nil {
			return fmt.Errorf("create report: %w", err)
		}
		if err := analysis.WriteReport(f, strat.Name(), summary); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	if cfg.Analysis.ChartFile != "" {
		if err := analysis.SaveAssetsCurve(assets, strat.Name(), cfg.Analysis.ChartFile); err != nil {
			return err
		}
	}
	return nil
}

// backtestConfig builds the run configuration from either a config file
// or the command-line flags.
func backtestConfig() (*config.Config, error) {
	if btConfigPath != "" {
		return config.LoadFromFile(btConfigPath)
	}

	cfg := &config.Config{
		Data: config.DataConfig{Prices: btPrices},
		Run: config.RunConfig{
			InitialCapital: btCapital,
			FeeRate:        btFeeRate,
			LotSize:        btLotSize,
		},
		Strategy: config.StrategyConfig{
			Name:       btStrategy,
			Lookback:   btLookback,
			TopN:       btTopN,
			Window:     btWindow,
			Threshold:  btThreshold,
			Period:     btPeriod,
			Overbought: btOverbought,
			Oversold:   btOversold,
		},
		Journal: config.JournalConfig{
			Type:   btJournalType,
			Dir:    btOutDir,
			DBPath: btDBPath,
		},
		Analysis: config.AnalysisConfig{
			RiskFreeRate:       btRiskFree,
			TradingDaysPerYear: btTradingDays,
			ChartFile:          btChartFile,
			ReportFile:         btReportFile,
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newWriter(cfg *config.Config) (journal.Writer, error) {
	switch cfg.Journal.Type {
	case "sqlite":
		return journal.NewSQLite(cfg.Journal.DBPath)
	default:
		return journal.NewCSV(cfg.Journal.Dir)
	}
}
