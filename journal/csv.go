package journal

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rustyeddy/rebalance/market"
)

// CSV file names within the output directory. One run per directory; the
// run ID goes into a marker file rather than into every row.
const (
	beforeFile = "trade_before.csv"
	afterFile  = "trade_after.csv"
	pnlFile    = "pnl.csv"
	runFile    = "run_id.txt"
)

// CSVWriter writes the snapshot and PnL tables as CSV files in a
// directory.
type CSVWriter struct {
	dir string
}

// NewCSV creates a CSV writer rooted at dir, creating the directory if
// needed.
func NewCSV(dir string) (*CSVWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("journal dir: %w", err)
	}
	return &CSVWriter{dir: dir}, nil
}

func (w *CSVWriter) WriteSnapshots(runID string, before, after []SnapshotRow) error {
	if err := os.WriteFile(filepath.Join(w.dir, runFile), []byte(runID+"\n"), 0o644); err != nil {
		return fmt.Errorf("write run id: %w", err)
	}
	if err := w.writeSnapshotFile(beforeFile, before); err != nil {
		return err
	}
	return w.writeSnapshotFile(afterFile, after)
}

func (w *CSVWriter) writeSnapshotFile(name string, rows []SnapshotRow) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, []string{"date", "instrument", "price", "quantity"})
	for _, r := range rows {
		records = append(records, []string{
			market.FormatDate(r.Date),
			r.Instrument,
			f64(r.Price),
			strconv.FormatInt(r.Quantity, 10),
		})
	}
	return w.writeFile(name, records)
}

func (w *CSVWriter) WritePnL(runID string, records []PnLRecord) error {
	out := make([][]string, 0, len(records)+1)
	out = append(out, []string{"date", "realized_pnl", "fee", "total_pnl"})
	for _, r := range records {
		out = append(out, []string{
			market.FormatDate(r.Date),
			f64(r.RealizedPnL),
			f64(r.Fee),
			f64(r.TotalPnL),
		})
	}
	return w.writeFile(pnlFile, out)
}

func (w *CSVWriter) Close() error { return nil }

func (w *CSVWriter) writeFile(name string, records [][]string) error {
	f, err := os.Create(filepath.Join(w.dir, name))
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(records); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	return nil
}

func f64(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
