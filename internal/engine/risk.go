package engine

// Risk scoring for arbitrage routes. This is an intentionally heuristic
// blend of three bounded sub-scores, not a statistical model: liquidity and
// volatility dominate, route length contributes at a lower weight.
const (
	// liquidityRiskCeiling is the worst liquidity sub-score, reached when the
	// thinner side of the trade has no depth at all.
	liquidityRiskCeiling = 50.0
	// liquidityUnitsPerPoint is how many units of depth cancel one risk point.
	liquidityUnitsPerPoint = 100.0
	// volatilityRiskWeight scales the relative price spread into a sub-score
	// capped at volatilityRiskWeight (spread ratio is at most 1).
	volatilityRiskWeight = 20.0
	// routeRiskPerJump is the risk contribution of each route jump.
	routeRiskPerJump = 1.5
)

// CalcRiskScore combines liquidity depth, price volatility, and route length
// into a single score clamped to [0, 100]. Higher means riskier.
func CalcRiskScore(sourceVolume, targetVolume int64, buyPrice, sellPrice float64, jumpDistance int) float64 {
	score := liquidityRisk(sourceVolume, targetVolume) +
		volatilityRisk(buyPrice, sellPrice) +
		routeRisk(jumpDistance)
	return clampScore(score)
}

// liquidityRisk grows as the thinner side of the trade gets shallower.
func liquidityRisk(sourceVolume, targetVolume int64) float64 {
	thin := sourceVolume
	if targetVolume < thin {
		thin = targetVolume
	}
	if thin < 0 {
		thin = 0
	}
	risk := liquidityRiskCeiling - float64(thin)/liquidityUnitsPerPoint
	if risk < 0 {
		return 0
	}
	return risk
}

// volatilityRisk scales with the price spread relative to the higher price.
func volatilityRisk(buyPrice, sellPrice float64) float64 {
	high := sellPrice
	if buyPrice > high {
		high = buyPrice
	}
	if high <= 0 {
		return 0
	}
	spread := sellPrice - buyPrice
	if spread < 0 {
		spread = -spread
	}
	return spread / high * volatilityRiskWeight
}

// routeRisk is proportional to jump distance, weighted below the other two.
func routeRisk(jumpDistance int) float64 {
	if jumpDistance < 0 {
		jumpDistance = UnreachableJumps
	}
	return float64(jumpDistance) * routeRiskPerJump
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
