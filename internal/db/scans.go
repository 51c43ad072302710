package db

import (
	"time"

	"eve-arbitrage/internal/engine"
	"eve-arbitrage/internal/logger"
)

// ScanRecord is one row of scan history.
type ScanRecord struct {
	ID               string    `json:"id"`
	GeneratedAt      time.Time `json:"generated_at"`
	OpportunityCount int       `json:"opportunity_count"`
	BestMargin       float64   `json:"best_margin"`
	BestRoute        string    `json:"best_route"`
}

// RecordScan persists a completed scan and its top opportunities. It satisfies
// the scheduler's Recorder interface; failures are logged and swallowed so a
// persistence hiccup never fails a scan.
func (d *DB) RecordScan(snap *engine.ScanSnapshot) {
	if snap == nil {
		return
	}

	tx, err := d.sql.Begin()
	if err != nil {
		logger.Error("DB", "RecordScan begin tx: %v", err)
		return
	}

	if _, err := tx.Exec(`INSERT INTO scans (id, generated_at, opportunity_count, best_margin, best_route)
		VALUES (?,?,?,?,?)`,
		snap.ID, snap.GeneratedAt.UTC().Format(time.RFC3339), snap.TotalOpportunityCount,
		snap.BestMargin, snap.BestRoute); err != nil {
		tx.Rollback()
		logger.Error("DB", "RecordScan insert scan: %v", err)
		return
	}

	stmt, err := tx.Prepare(`INSERT INTO scan_opportunities (
		scan_id, item_name, source_region, target_region,
		buy_price, sell_price, quantity, gross_margin_percent,
		broker_fees, taxes, net_profit, profit_percent,
		risk_score, jump_distance
	) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		tx.Rollback()
		logger.Error("DB", "RecordScan prepare: %v", err)
		return
	}
	defer stmt.Close()

	for _, o := range snap.Opportunities {
		stmt.Exec(
			snap.ID, o.ItemName, o.SourceRegion, o.TargetRegion,
			o.BuyPrice, o.SellPrice, o.Quantity, o.GrossMarginPercent,
			o.BrokerFees, o.Taxes, o.NetProfit, o.ProfitPercent,
			o.RiskScore, o.JumpDistance,
		)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("DB", "RecordScan commit: %v", err)
	}
}

// RecentScans returns the most recent scan history rows, newest first.
func (d *DB) RecentScans(limit int) []ScanRecord {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.sql.Query(`SELECT id, generated_at, opportunity_count, best_margin, best_route
		FROM scans ORDER BY generated_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var out []ScanRecord
	for rows.Next() {
		var r ScanRecord
		var generated string
		if err := rows.Scan(&r.ID, &generated, &r.OpportunityCount, &r.BestMargin, &r.BestRoute); err != nil {
			continue
		}
		r.GeneratedAt, _ = time.Parse(time.RFC3339, generated)
		out = append(out, r)
	}
	return out
}

// OpportunitiesForScan returns the persisted opportunities of one scan.
func (d *DB) OpportunitiesForScan(scanID string) []engine.ArbitrageOpportunity {
	rows, err := d.sql.Query(`SELECT item_name, source_region, target_region,
		buy_price, sell_price, quantity, gross_margin_percent,
		broker_fees, taxes, net_profit, profit_percent,
		risk_score, jump_distance
		FROM scan_opportunities WHERE scan_id = ?`, scanID)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var out []engine.ArbitrageOpportunity
	for rows.Next() {
		var o engine.ArbitrageOpportunity
		if err := rows.Scan(
			&o.ItemName, &o.SourceRegion, &o.TargetRegion,
			&o.BuyPrice, &o.SellPrice, &o.Quantity, &o.GrossMarginPercent,
			&o.BrokerFees, &o.Taxes, &o.NetProfit, &o.ProfitPercent,
			&o.RiskScore, &o.JumpDistance,
		); err != nil {
			continue
		}
		out = append(out, o)
	}
	return out
}
