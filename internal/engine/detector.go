package engine

import (
	"sort"
	"time"

	"eve-arbitrage/internal/logger"
	"eve-arbitrage/internal/market"
)

// Detector finds profitable buy-low/sell-high region pairs for single items.
// It is stateless between calls; for fixed inputs and config the candidate set
// is identical on every run.
type Detector struct {
	Config ScanConfig
	// Jumps supplies route distances between regions. A nil func treats every
	// pair as unreachable.
	Jumps JumpDistanceFunc
	// ItemCaps overrides the configured per-trade unit cap for specific items.
	ItemCaps map[string]int64
}

// NewDetector creates a Detector with the given config and route collaborator.
func NewDetector(cfg ScanConfig, jumps JumpDistanceFunc) *Detector {
	return &Detector{Config: cfg, Jumps: jumps}
}

// DetectItem evaluates one item's samples and returns all region pairs that
// pass the configured liquidity, margin, jump, and profit gates.
//
// Only the single cheapest region is used as the buy source: the policy is
// "buy at the floor, sell at any premium region", not all pairs.
func (d *Detector) DetectItem(itemName string, samples []market.PriceSample) []ArbitrageOpportunity {
	if len(samples) < 2 {
		return nil
	}

	sorted := make([]market.PriceSample, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Price != sorted[j].Price {
			return sorted[i].Price < sorted[j].Price
		}
		return sorted[i].Region < sorted[j].Region
	})

	source := sorted[0]
	if source.Price <= 0 {
		logger.Debug("SCAN", "skipping %s: zero baseline price in %s", itemName, source.Region)
		return nil
	}

	var out []ArbitrageOpportunity
	for _, target := range sorted[1:] {
		if target.Region == source.Region {
			continue
		}
		if target.Volume < d.Config.MinLiquidityVolume {
			continue
		}

		marginPercent := (target.Price - source.Price) / source.Price * 100
		if marginPercent < d.Config.MinMarginPercent {
			continue
		}

		jumps := d.jumpDistance(source.Region, target.Region)
		if jumps > d.Config.MaxJumps {
			continue
		}

		quantity := minSampleVolume(source, target)
		if maxUnits := d.unitCap(itemName); maxUnits > 0 && quantity > maxUnits {
			quantity = maxUnits
		}
		if quantity <= 0 {
			continue
		}

		breakdown := CalcProfit(source.Price, target.Price, quantity, d.Config.BrokerFeeRate, d.Config.TaxRate)
		if breakdown.NetProfit < d.Config.MinProfitThreshold {
			continue
		}

		out = append(out, ArbitrageOpportunity{
			ItemName:            itemName,
			SourceRegion:        source.Region,
			TargetRegion:        target.Region,
			BuyPrice:            source.Price,
			SellPrice:           target.Price,
			Quantity:            quantity,
			GrossMarginPercent:  marginPercent,
			BrokerFees:          breakdown.BrokerFees,
			Taxes:               breakdown.Taxes,
			NetProfit:           breakdown.NetProfit,
			ProfitPercent:       breakdown.ProfitPercent,
			RiskScore:           CalcRiskScore(source.Volume, target.Volume, source.Price, target.Price, jumps),
			JumpDistance:        jumps,
			EstimatedTravelTime: time.Duration(jumps) * TimePerJump,
		})
	}
	return out
}

func (d *Detector) jumpDistance(from, to string) int {
	if d.Jumps == nil {
		return UnreachableJumps
	}
	jumps := d.Jumps(from, to)
	if jumps < 0 {
		return UnreachableJumps
	}
	return jumps
}

func (d *Detector) unitCap(itemName string) int64 {
	if override, ok := d.ItemCaps[itemName]; ok && override > 0 {
		return override
	}
	return d.Config.MaxUnitsPerTrade
}
