// Package feed decouples sample acquisition from the engine: a Source
// produces price samples, and a Poller drains it into the market store on a
// fixed cadence, triggering a rescan after each successful refresh.
package feed

import (
	"context"
	"time"

	"eve-arbitrage/internal/logger"
	"eve-arbitrage/internal/market"
)

// Source produces one batch of price samples per call. Implementations may
// hit the network; Fetch must honor ctx.
type Source interface {
	Fetch(ctx context.Context) ([]market.PriceSample, error)
}

// Poller periodically pulls a Source into the store and kicks off a rescan.
// On fetch failure the previous results are kept and marked stale.
type Poller struct {
	Store    *market.Store
	Source   Source
	Interval time.Duration

	// OnRefresh runs after each successful ingest, typically the scheduler's
	// TriggerScan. OnFailure runs when the source errors, typically MarkStale.
	OnRefresh func(ctx context.Context)
	OnFailure func()
}

// Run polls until ctx is cancelled. The first poll happens immediately.
func (p *Poller) Run(ctx context.Context) {
	interval := p.Interval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	samples, err := p.Source.Fetch(ctx)
	if err != nil {
		logger.Warn("FEED", "refresh failed, keeping previous data: %v", err)
		if p.OnFailure != nil {
			p.OnFailure()
		}
		return
	}

	accepted, rejected := Ingest(p.Store, samples)
	logger.Info("FEED", "ingested %d samples (%d rejected)", accepted, rejected)
	if p.OnRefresh != nil {
		p.OnRefresh(ctx)
	}
}

// Ingest upserts a batch into the store and reports how many samples were
// accepted and how many failed validation.
func Ingest(store *market.Store, samples []market.PriceSample) (accepted, rejected int) {
	for _, s := range samples {
		if err := store.Upsert(s); err != nil {
			logger.Debug("FEED", "rejected sample: %v", err)
			rejected++
			continue
		}
		accepted++
	}
	return accepted, rejected
}
