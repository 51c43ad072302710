package db

import (
	"database/sql"
	"fmt"

	"eve-arbitrage/internal/logger"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	sql *sql.DB
}

// Open opens (or creates) the SQLite database at path and runs migrations.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	d := &DB{sql: sqlDB}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	logger.Success("DB", "opened %s", path)
	return d, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate() error {
	version := 0
	// Try to read current version
	d.sql.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)

	if version < 1 {
		_, err := d.sql.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY);

			CREATE TABLE IF NOT EXISTS price_samples (
				item_name   TEXT NOT NULL,
				region      TEXT NOT NULL,
				price       REAL NOT NULL,
				volume      INTEGER NOT NULL,
				observed_at TEXT NOT NULL,
				PRIMARY KEY (item_name, region)
			);

			CREATE TABLE IF NOT EXISTS scans (
				id                TEXT PRIMARY KEY,
				generated_at      TEXT NOT NULL,
				opportunity_count INTEGER NOT NULL,
				best_margin       REAL NOT NULL,
				best_route        TEXT NOT NULL
			);

			CREATE TABLE IF NOT EXISTS scan_opportunities (
				scan_id              TEXT NOT NULL,
				item_name            TEXT NOT NULL,
				source_region        TEXT NOT NULL,
				target_region        TEXT NOT NULL,
				buy_price            REAL NOT NULL,
				sell_price           REAL NOT NULL,
				quantity             INTEGER NOT NULL,
				gross_margin_percent REAL NOT NULL,
				broker_fees          REAL NOT NULL,
				taxes                REAL NOT NULL,
				net_profit           REAL NOT NULL,
				profit_percent       REAL NOT NULL,
				risk_score           REAL NOT NULL,
				jump_distance        INTEGER NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_scan_opportunities_scan ON scan_opportunities(scan_id);

			INSERT INTO schema_version (version) VALUES (1);
		`)
		if err != nil {
			return err
		}
	}
	return nil
}
