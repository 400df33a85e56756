package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rebalance",
	Short: "Backtest rule-based portfolio strategies against daily prices",
	Long: `Rebalance simulates rule-based portfolio strategies over historical
daily open prices and reconciles realized PnL from trade snapshots.

It provides tools for:
  - Backtesting momentum, mean-reversion, and RSI strategies
  - Snapshot-based PnL reconciliation, auditable against any trade record
  - Persisting snapshot and PnL tables to CSV or SQLite
  - Parameter-grid sweeps across independent simulation runs
  - Performance reports: annualized return, Sharpe ratio, max drawdown`,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Optional .env for defaults like REBALANCE_PRICES; flags win.
	_ = godotenv.Load()
}

// envOr reads an environment variable with a fallback, used for flag
// defaults.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
