package analysis

import (
	"fmt"
	"io"

	"github.com/rustyeddy/rebalance/market"
)

// WriteReport renders a plain-text performance report.
func WriteReport(w io.Writer, name string, s Summary) error {
	lines := []string{
		fmt.Sprintf("Strategy:              %s", name),
		fmt.Sprintf("Final assets:          %.2f", s.FinalAssets),
		fmt.Sprintf("Total PnL:             %.2f", s.TotalPnL),
		fmt.Sprintf("Total fees:            %.2f", s.TotalFees),
		fmt.Sprintf("Trades:                %d", s.Trades),
		fmt.Sprintf("Annualized return:     %.2f%%", s.AnnualizedReturn*100),
		fmt.Sprintf("Annualized volatility: %.2f%%", s.AnnualizedVolatility*100),
		fmt.Sprintf("Sharpe ratio:          %.3f", s.SharpeRatio),
		fmt.Sprintf("Max drawdown:          %.2f%% (%.2f)", s.MaxDrawdown.Ratio*100, s.MaxDrawdown.Amount),
	}
	if !s.MaxDrawdown.PeakDate.IsZero() {
		lines = append(lines, fmt.Sprintf("Drawdown window:       %s -> %s",
			market.FormatDate(s.MaxDrawdown.PeakDate),
			market.FormatDate(s.MaxDrawdown.TroughDate)))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
