package journal

const Schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	run_id TEXT NOT NULL,
	side TEXT NOT NULL CHECK (side IN ('before','after')),
	date DATETIME NOT NULL,
	instrument TEXT NOT NULL,
	price REAL NOT NULL,
	quantity INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_run ON snapshots(run_id, side, date);

CREATE TABLE IF NOT EXISTS pnl (
	run_id TEXT NOT NULL,
	date DATETIME NOT NULL,
	realized_pnl REAL NOT NULL,
	fee REAL NOT NULL,
	total_pnl REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_pnl_run ON pnl(run_id, date);

CREATE TABLE IF NOT EXISTS pnl_details (
	run_id TEXT NOT NULL,
	date DATETIME NOT NULL,
	instrument TEXT NOT NULL,
	action TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	price REAL NOT NULL,
	cost_price REAL NOT NULL,
	pnl REAL NOT NULL,
	fee REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_pnl_details_run ON pnl_details(run_id, date);
`
