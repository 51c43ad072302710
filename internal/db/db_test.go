package db

import (
	"path/filepath"
	"testing"
	"time"

	"eve-arbitrage/internal/engine"
	"eve-arbitrage/internal/market"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestSaveLoadSamples_Roundtrip(t *testing.T) {
	d := openTestDB(t)
	observed := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	in := []market.PriceSample{
		{ItemName: "Tritanium", Region: "The Forge", Price: 5.5, Volume: 2000000, ObservedAt: observed},
		{ItemName: "Tritanium", Region: "Domain", Price: 6.1, Volume: 1200000, ObservedAt: observed},
	}
	d.SaveSamples(in)

	out := d.LoadSamples()
	if len(out) != 2 {
		t.Fatalf("LoadSamples returned %d rows, want 2", len(out))
	}
	byRegion := map[string]market.PriceSample{}
	for _, s := range out {
		byRegion[s.Region] = s
	}
	got := byRegion["The Forge"]
	if got.Price != 5.5 || got.Volume != 2000000 || !got.ObservedAt.Equal(observed) {
		t.Errorf("roundtrip sample = %+v", got)
	}
}

func TestSaveSamples_UpsertsOnConflict(t *testing.T) {
	d := openTestDB(t)
	now := time.Now().UTC().Truncate(time.Second)
	d.SaveSamples([]market.PriceSample{
		{ItemName: "PLEX", Region: "The Forge", Price: 5100000, Volume: 300, ObservedAt: now},
	})
	d.SaveSamples([]market.PriceSample{
		{ItemName: "PLEX", Region: "The Forge", Price: 5200000, Volume: 280, ObservedAt: now},
	})

	out := d.LoadSamples()
	if len(out) != 1 {
		t.Fatalf("LoadSamples returned %d rows, want 1 after upsert", len(out))
	}
	if out[0].Price != 5200000 || out[0].Volume != 280 {
		t.Errorf("upserted row = %+v, want replaced values", out[0])
	}
}

func TestRecordScan_HistoryAndOpportunities(t *testing.T) {
	d := openTestDB(t)
	snap := &engine.ScanSnapshot{
		ID:                    "scan-1",
		GeneratedAt:           time.Date(2026, 8, 30, 11, 0, 0, 0, time.UTC),
		BestMargin:            30,
		BestRoute:             "RegionA → RegionB",
		TotalOpportunityCount: 1,
		Opportunities: []engine.ArbitrageOpportunity{{
			ItemName:           "Tritanium",
			SourceRegion:       "RegionA",
			TargetRegion:       "RegionB",
			BuyPrice:           5,
			SellPrice:          6.5,
			Quantity:           1000000,
			GrossMarginPercent: 30,
			BrokerFees:         345000,
			Taxes:              520000,
			NetProfit:          635000,
			ProfitPercent:      12.7,
			RiskScore:          12,
			JumpDistance:       5,
		}},
	}
	d.RecordScan(snap)

	recent := d.RecentScans(10)
	if len(recent) != 1 {
		t.Fatalf("RecentScans returned %d rows, want 1", len(recent))
	}
	r := recent[0]
	if r.ID != "scan-1" || r.OpportunityCount != 1 || r.BestRoute != "RegionA → RegionB" {
		t.Errorf("scan record = %+v", r)
	}
	if !r.GeneratedAt.Equal(snap.GeneratedAt) {
		t.Errorf("GeneratedAt = %v, want %v", r.GeneratedAt, snap.GeneratedAt)
	}

	opps := d.OpportunitiesForScan("scan-1")
	if len(opps) != 1 {
		t.Fatalf("OpportunitiesForScan returned %d rows, want 1", len(opps))
	}
	o := opps[0]
	if o.ItemName != "Tritanium" || o.NetProfit != 635000 || o.JumpDistance != 5 {
		t.Errorf("persisted opportunity = %+v", o)
	}
}

func TestRecordScan_NilSnapshot(t *testing.T) {
	d := openTestDB(t)
	d.RecordScan(nil) // must not panic
	if got := d.RecentScans(10); len(got) != 0 {
		t.Errorf("RecentScans = %v, want empty", got)
	}
}

func TestRecentScans_NewestFirst(t *testing.T) {
	d := openTestDB(t)
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		d.RecordScan(&engine.ScanSnapshot{
			ID:          id,
			GeneratedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	recent := d.RecentScans(2)
	if len(recent) != 2 {
		t.Fatalf("RecentScans returned %d rows, want 2", len(recent))
	}
	if recent[0].ID != "new" || recent[1].ID != "mid" {
		t.Errorf("order = [%s, %s], want [new, mid]", recent[0].ID, recent[1].ID)
	}
}

func TestOpen_MigrationIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	d, err := Open(path)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	d.Close()

	d, err = Open(path)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	d.Close()
}
