package db

import (
	"time"

	"eve-arbitrage/internal/logger"
	"eve-arbitrage/internal/market"
)

// SaveSamples upserts the given samples so a restart starts from a warm store.
// Errors are logged, not returned: sample persistence is best-effort.
func (d *DB) SaveSamples(samples []market.PriceSample) {
	if len(samples) == 0 {
		return
	}

	tx, err := d.sql.Begin()
	if err != nil {
		logger.Error("DB", "SaveSamples begin tx: %v", err)
		return
	}

	stmt, err := tx.Prepare(`INSERT INTO price_samples (item_name, region, price, volume, observed_at)
		VALUES (?,?,?,?,?)
		ON CONFLICT(item_name, region) DO UPDATE SET
			price = excluded.price,
			volume = excluded.volume,
			observed_at = excluded.observed_at`)
	if err != nil {
		tx.Rollback()
		logger.Error("DB", "SaveSamples prepare: %v", err)
		return
	}
	defer stmt.Close()

	for _, s := range samples {
		stmt.Exec(s.ItemName, s.Region, s.Price, s.Volume, s.ObservedAt.UTC().Format(time.RFC3339))
	}

	if err := tx.Commit(); err != nil {
		logger.Error("DB", "SaveSamples commit: %v", err)
	}
}

// LoadSamples returns all persisted samples. Rows that fail to parse are
// skipped.
func (d *DB) LoadSamples() []market.PriceSample {
	rows, err := d.sql.Query(`SELECT item_name, region, price, volume, observed_at FROM price_samples`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var out []market.PriceSample
	for rows.Next() {
		var s market.PriceSample
		var observed string
		if err := rows.Scan(&s.ItemName, &s.Region, &s.Price, &s.Volume, &observed); err != nil {
			continue
		}
		t, err := time.Parse(time.RFC3339, observed)
		if err != nil {
			continue
		}
		s.ObservedAt = t
		out = append(out, s)
	}
	return out
}
