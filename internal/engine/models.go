package engine

import (
	"math"
	"time"

	"eve-arbitrage/internal/market"
)

const (
	// DefaultTopN is the result cap used when ScanConfig.TopN <= 0.
	DefaultTopN = 100
	// UnreachableJumps is the fallback jump count when no route exists between
	// two regions. It is larger than any sane MaxJumps, so unreachable pairs
	// always fail the jump gate.
	UnreachableJumps = 999
	// TimePerJump is the haul time estimate per route jump.
	TimePerJump = 3 * time.Minute
)

// JumpDistanceFunc reports the number of route jumps between two regions.
// Implementations return a negative value when no route exists.
type JumpDistanceFunc func(sourceRegion, targetRegion string) int

// ScanConfig holds the thresholds and rates applied during a scan.
type ScanConfig struct {
	MinProfitThreshold float64       `json:"min_profit_threshold"` // ISK
	MinMarginPercent   float64       `json:"min_margin_percent"`
	MaxJumps           int           `json:"max_jumps"`
	MinLiquidityVolume int64         `json:"min_liquidity_volume"`
	BrokerFeeRate      float64       `json:"broker_fee_rate"` // applied to both legs
	TaxRate            float64       `json:"tax_rate"`        // applied to the sell leg
	TopN               int           `json:"top_n"`
	MaxUnitsPerTrade   int64         `json:"max_units_per_trade"`
	ScanInterval       time.Duration `json:"scan_interval"`
}

// DefaultScanConfig returns a ScanConfig with sensible defaults.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		MinProfitThreshold: 50000,
		MinMarginPercent:   5,
		MaxJumps:           10,
		MinLiquidityVolume: 1000,
		BrokerFeeRate:      0.03,
		TaxRate:            0.08,
		TopN:               DefaultTopN,
		MaxUnitsPerTrade:   1000000,
		ScanInterval:       5 * time.Minute,
	}
}

// EffectiveTopN returns the result cap, using DefaultTopN if TopN <= 0.
func (c ScanConfig) EffectiveTopN() int {
	if c.TopN <= 0 {
		return DefaultTopN
	}
	return c.TopN
}

// ArbitrageOpportunity is a detected buy-low/sell-high pairing between two
// regions. Opportunities are created fresh on every scan and never mutated.
type ArbitrageOpportunity struct {
	ItemName            string        `json:"item_name"`
	SourceRegion        string        `json:"source_region"`
	TargetRegion        string        `json:"target_region"`
	BuyPrice            float64       `json:"buy_price"`
	SellPrice           float64       `json:"sell_price"`
	Quantity            int64         `json:"quantity"`
	GrossMarginPercent  float64       `json:"gross_margin_percent"`
	BrokerFees          float64       `json:"broker_fees"`
	Taxes               float64       `json:"taxes"`
	NetProfit           float64       `json:"net_profit"`
	ProfitPercent       float64       `json:"profit_percent"`
	RiskScore           float64       `json:"risk_score"`
	JumpDistance        int           `json:"jump_distance"`
	EstimatedTravelTime time.Duration `json:"estimated_travel_time"`
}

// Route formats the opportunity's route as "Source → Target".
func (o ArbitrageOpportunity) Route() string {
	return o.SourceRegion + " → " + o.TargetRegion
}

// RegionalStatistics summarizes one item's price dispersion across regions.
type RegionalStatistics struct {
	ItemName                      string  `json:"item_name"`
	MeanPrice                     float64 `json:"mean_price"`
	StdDev                        float64 `json:"std_dev"`
	CoefficientOfVariationPercent float64 `json:"coefficient_of_variation_percent"`
	RegionCount                   int     `json:"region_count"`
}

// ScanSnapshot is the immutable, published output of one scan cycle.
// Once published it is shared read-only by any number of consumers.
type ScanSnapshot struct {
	ID                    string                        `json:"id"`
	Opportunities         []ArbitrageOpportunity        `json:"opportunities"` // best-first
	Statistics            map[string]RegionalStatistics `json:"statistics"`
	BestMargin            float64                       `json:"best_margin"`
	BestRoute             string                        `json:"best_route"`
	TotalOpportunityCount int                           `json:"total_opportunity_count"`
	GeneratedAt           time.Time                     `json:"generated_at"`
	Stale                 bool                          `json:"stale"`
}

// ItemResult is the per-item output of one scan worker: the item's statistics
// plus its opportunity candidates.
type ItemResult struct {
	ItemName      string
	Statistics    RegionalStatistics
	Opportunities []ArbitrageOpportunity
}

// sanitizeFloat replaces NaN/Inf with 0 to prevent JSON marshal errors.
func sanitizeFloat(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// minSampleVolume returns the smaller of the two sides' volumes.
func minSampleVolume(a, b market.PriceSample) int64 {
	if a.Volume < b.Volume {
		return a.Volume
	}
	return b.Volume
}
