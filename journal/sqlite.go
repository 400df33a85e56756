package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite persists snapshot and PnL tables in a SQLite database, one row
// set per run ID.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite journal: %w", err)
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (j *SQLite) WriteSnapshots(runID string, before, after []SnapshotRow) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO snapshots (run_id, side, date, instrument, price, quantity)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range before {
		if _, err := stmt.Exec(runID, "before", r.Date, r.Instrument, r.Price, r.Quantity); err != nil {
			return err
		}
	}
	for _, r := range after {
		if _, err := stmt.Exec(runID, "after", r.Date, r.Instrument, r.Price, r.Quantity); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (j *SQLite) WritePnL(runID string, records []PnLRecord) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, r := range records {
		_, err := tx.Exec(`
			INSERT INTO pnl (run_id, date, realized_pnl, fee, total_pnl)
			VALUES (?, ?, ?, ?, ?)`,
			runID, r.Date, r.RealizedPnL, r.Fee, r.TotalPnL,
		)
		if err != nil {
			return err
		}
		for _, d := range r.Details {
			_, err := tx.Exec(`
				INSERT INTO pnl_details
				(run_id, date, instrument, action, quantity, price, cost_price, pnl, fee)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				runID, r.Date, d.Instrument, d.Action, d.Quantity, d.Price, d.CostPrice, d.PnL, d.Fee,
			)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// ListSnapshots loads one side ("before" or "after") of a run's snapshot
// tables, ordered by date then instrument.
func (j *SQLite) ListSnapshots(runID, side string) ([]SnapshotRow, error) {
	rows, err := j.db.Query(`
		SELECT date, instrument, price, quantity FROM snapshots
		WHERE run_id = ? AND side = ?
		ORDER BY date, instrument`, runID, side)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SnapshotRow
	for rows.Next() {
		var r SnapshotRow
		var date time.Time
		if err := rows.Scan(&date, &r.Instrument, &r.Price, &r.Quantity); err != nil {
			return nil, err
		}
		r.Date = date.UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListPnL loads a run's PnL records (without details), ordered by date.
func (j *SQLite) ListPnL(runID string) ([]PnLRecord, error) {
	rows, err := j.db.Query(`
		SELECT date, realized_pnl, fee, total_pnl FROM pnl
		WHERE run_id = ?
		ORDER BY date`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PnLRecord
	for rows.Next() {
		var r PnLRecord
		var date time.Time
		if err := rows.Scan(&date, &r.RealizedPnL, &r.Fee, &r.TotalPnL); err != nil {
			return nil, err
		}
		r.Date = date.UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
