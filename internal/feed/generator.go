package feed

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"eve-arbitrage/internal/market"
)

// demo item base prices in ISK, loosely calibrated to common hauls.
var demoItems = map[string]float64{
	"Tritanium":            5,
	"Pyerite":              12,
	"Mexallon":             80,
	"Isogen":               150,
	"Nocxium":              950,
	"Zydrine":              1400,
	"Megacyte":             3200,
	"PLEX":                 5200000,
	"Large Skill Injector": 920000000,
}

// Generator is a deterministic demo Source: for a fixed seed and region set it
// produces the same sample sequence on every run. It exists for demo mode and
// test fixtures, never as a production data path.
type Generator struct {
	Regions []string
	rng     *rand.Rand
}

// NewGenerator creates a Generator seeded for reproducible output.
func NewGenerator(seed int64, regions []string) *Generator {
	return &Generator{
		Regions: regions,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Fetch produces one sample per (item, region) with regional price spreads of
// up to ±25% around the base price and volumes spanning thin to deep books.
func (g *Generator) Fetch(_ context.Context) ([]market.PriceSample, error) {
	items := make([]string, 0, len(demoItems))
	for item := range demoItems {
		items = append(items, item)
	}
	sort.Strings(items)

	now := time.Now().UTC()
	var out []market.PriceSample
	for _, item := range items {
		base := demoItems[item]
		for _, region := range g.Regions {
			spread := 1 + (g.rng.Float64()-0.5)*0.5
			out = append(out, market.PriceSample{
				ItemName:   item,
				Region:     region,
				Price:      base * spread,
				Volume:     int64(g.rng.Intn(5000000)),
				ObservedAt: now,
			})
		}
	}
	return out, nil
}
