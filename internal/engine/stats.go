package engine

import (
	"math"

	"eve-arbitrage/internal/market"
)

// CalcRegionalStatistics computes price dispersion for one item across all of
// its observed regions. Zero or one sample degrades to zero variance; a zero
// mean price yields CV% = 0 rather than a division by zero.
func CalcRegionalStatistics(itemName string, samples []market.PriceSample) RegionalStatistics {
	stats := RegionalStatistics{
		ItemName:    itemName,
		RegionCount: len(samples),
	}
	if len(samples) == 0 {
		return stats
	}

	prices := make([]float64, len(samples))
	for i, s := range samples {
		prices[i] = s.Price
	}

	stats.MeanPrice = mean(prices)
	stats.StdDev = math.Sqrt(variance(prices))
	if stats.MeanPrice > 0 {
		stats.CoefficientOfVariationPercent = stats.StdDev / stats.MeanPrice * 100
	}
	return stats
}

func mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x))
}

// variance is the population variance (mean of squared deviations).
func variance(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	m := mean(x)
	var sum float64
	for _, v := range x {
		d := v - m
		sum += d * d
	}
	return sum / float64(len(x))
}
