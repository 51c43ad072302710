// Package scheduler coordinates full market rescans: it guarantees
// single-flight execution, fans item work out over a worker pool, and
// publishes immutable result snapshots with a single pointer swap.
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"eve-arbitrage/internal/engine"
	"eve-arbitrage/internal/logger"
	"eve-arbitrage/internal/market"
)

const (
	// defaultWorkers bounds the per-item fan-out of one scan.
	defaultWorkers = 8
	// defaultItemTimeout drops an item from the scan when its computation
	// (including any slow route lookups) exceeds this deadline.
	defaultItemTimeout = 5 * time.Second
)

// Recorder persists completed scans. Implementations must tolerate being
// called from the scan goroutine and never block for long.
type Recorder interface {
	RecordScan(snap *engine.ScanSnapshot)
}

// Scheduler owns the scan lifecycle: Idle → Scanning → Idle. Failures return
// to Idle with the previously published snapshot retained.
type Scheduler struct {
	store    *market.Store
	detector *engine.Detector
	cfg      engine.ScanConfig

	// Recorder, Workers, and ItemTimeout may be set before the first scan.
	Recorder    Recorder
	Workers     int
	ItemTimeout time.Duration

	scanning  atomic.Bool
	published atomic.Pointer[engine.ScanSnapshot]
}

// New creates a Scheduler over the given store and detector.
func New(store *market.Store, detector *engine.Detector, cfg engine.ScanConfig) *Scheduler {
	return &Scheduler{
		store:       store,
		detector:    detector,
		cfg:         cfg,
		Workers:     defaultWorkers,
		ItemTimeout: defaultItemTimeout,
	}
}

// Snapshot returns the most recently published scan snapshot, or nil before
// the first successful scan. The returned snapshot is read-only.
func (s *Scheduler) Snapshot() *engine.ScanSnapshot {
	return s.published.Load()
}

// Scanning reports whether a scan is currently in flight.
func (s *Scheduler) Scanning() bool {
	return s.scanning.Load()
}

// TriggerScan runs one full scan and publishes the result. If a scan is
// already in flight the call is a no-op and returns (nil, nil) immediately;
// it never queues a second scan and never blocks behind the running one.
//
// A cancelled context aborts the scan without publishing: consumers keep
// seeing the previous complete snapshot.
func (s *Scheduler) TriggerScan(ctx context.Context) (*engine.ScanSnapshot, error) {
	if !s.scanning.CompareAndSwap(false, true) {
		return nil, nil
	}
	defer s.scanning.Store(false)

	started := time.Now()
	snap := s.store.Snapshot()
	items := snap.Items()

	results, err := s.scanItems(ctx, snap, items)
	if err != nil {
		logger.Warn("SCAN", "scan aborted after %s: %v", time.Since(started).Round(time.Millisecond), err)
		return nil, err
	}

	out := s.assemble(results)
	s.published.Store(out)

	if s.Recorder != nil {
		s.Recorder.RecordScan(out)
	}
	logger.Success("SCAN", "%d items, %d opportunities in %s",
		len(items), out.TotalOpportunityCount, time.Since(started).Round(time.Millisecond))
	return out, nil
}

// MarkStale republishes the current snapshot flagged as stale. Called when the
// upstream data source fails to refresh; the data itself is retained.
func (s *Scheduler) MarkStale() {
	for {
		cur := s.published.Load()
		if cur == nil || cur.Stale {
			return
		}
		stale := *cur
		stale.Stale = true
		// CAS so a scan publishing between the load and the store wins; the
		// stale copy of the older snapshot is dropped and we re-evaluate.
		if s.published.CompareAndSwap(cur, &stale) {
			logger.Warn("SCAN", "snapshot %s marked stale", stale.ID)
			return
		}
	}
}

// scanItems fans the per-item work out over the pool. Items are independent,
// so workers share no mutable state beyond the fan-in slice.
func (s *Scheduler) scanItems(ctx context.Context, snap *market.Snapshot, items []string) ([]engine.ItemResult, error) {
	workers := s.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	var mu sync.Mutex
	results := make([]engine.ItemResult, 0, len(items))

	// The derived context is canceled once Wait returns, so the abort check
	// below must consult the caller's context, not gctx.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, item := range items {
		item := item
		g.Go(func() error {
			res, ok := s.scanItem(gctx, item, snap.SamplesFor(item))
			if !ok {
				// Timed out: the item is excluded from this scan rather than
				// blocking the whole cycle.
				return nil
			}
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// scanItem computes one item's statistics and opportunity candidates under the
// per-item deadline. ok is false when the deadline expired first.
func (s *Scheduler) scanItem(ctx context.Context, item string, samples []market.PriceSample) (engine.ItemResult, bool) {
	done := make(chan engine.ItemResult, 1)
	go func() {
		done <- engine.ItemResult{
			ItemName:      item,
			Statistics:    engine.CalcRegionalStatistics(item, samples),
			Opportunities: s.detector.DetectItem(item, samples),
		}
	}()

	timeout := s.ItemTimeout
	if timeout <= 0 {
		timeout = defaultItemTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-done:
		return res, true
	case <-timer.C:
		logger.Warn("SCAN", "item %s exceeded %s deadline, excluded from this scan", item, timeout)
		return engine.ItemResult{}, false
	case <-ctx.Done():
		return engine.ItemResult{}, false
	}
}

// assemble builds the published snapshot off to the side from the fan-in
// results. Nothing escapes until the atomic pointer swap in TriggerScan.
func (s *Scheduler) assemble(results []engine.ItemResult) *engine.ScanSnapshot {
	stats := make(map[string]engine.RegionalStatistics, len(results))
	var candidates []engine.ArbitrageOpportunity
	for _, r := range results {
		stats[r.ItemName] = r.Statistics
		candidates = append(candidates, r.Opportunities...)
	}

	ranked := engine.Rank(candidates, s.cfg)
	return &engine.ScanSnapshot{
		ID:                    uuid.NewString(),
		Opportunities:         ranked.Opportunities,
		Statistics:            stats,
		BestMargin:            ranked.BestMargin,
		BestRoute:             ranked.BestRoute,
		TotalOpportunityCount: ranked.TotalOpportunityCount,
		GeneratedAt:           time.Now().UTC(),
	}
}
