package engine

import "sort"

// RankedResult is the ordered, capped output of one ranking pass, plus the
// summary aggregates computed over the full candidate set (not just the
// truncated top-N).
type RankedResult struct {
	Opportunities         []ArbitrageOpportunity
	BestMargin            float64
	BestRoute             string
	TotalOpportunityCount int
}

// Rank orders candidates best-first and truncates to the configured TopN.
// Sort keys: ProfitPercent descending, then NetProfit descending, then
// ItemName and TargetRegion ascending. The full key set is a total order over
// distinct candidates, so the output is identical regardless of input order.
func Rank(candidates []ArbitrageOpportunity, cfg ScanConfig) RankedResult {
	sorted := make([]ArbitrageOpportunity, len(candidates))
	copy(sorted, candidates)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].ProfitPercent != sorted[j].ProfitPercent {
			return sorted[i].ProfitPercent > sorted[j].ProfitPercent
		}
		if sorted[i].NetProfit != sorted[j].NetProfit {
			return sorted[i].NetProfit > sorted[j].NetProfit
		}
		if sorted[i].ItemName != sorted[j].ItemName {
			return sorted[i].ItemName < sorted[j].ItemName
		}
		return sorted[i].TargetRegion < sorted[j].TargetRegion
	})

	res := RankedResult{TotalOpportunityCount: len(sorted)}
	if len(sorted) > 0 {
		// Aggregates cover the full set before truncation.
		best := sorted[0]
		res.BestRoute = best.Route()
		for _, o := range sorted {
			if o.GrossMarginPercent > res.BestMargin {
				res.BestMargin = o.GrossMarginPercent
			}
		}
	}

	limit := cfg.EffectiveTopN()
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	res.Opportunities = sorted
	return res
}
