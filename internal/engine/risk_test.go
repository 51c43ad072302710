package engine

import (
	"math"
	"testing"
)

func TestLiquidityRisk(t *testing.T) {
	tests := []struct {
		name   string
		srcVol int64
		tgtVol int64
		want   float64
	}{
		{"no depth", 0, 0, 50},
		{"thin side dominates", 5000000, 0, 50},
		{"1000 units", 1000, 2000, 40},
		{"exactly cancelled", 5000, 9999999, 0},
		{"deep both sides", 2000000, 1500000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := liquidityRisk(tt.srcVol, tt.tgtVol)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("liquidityRisk(%d, %d) = %v, want %v", tt.srcVol, tt.tgtVol, got, tt.want)
			}
		})
	}
}

func TestVolatilityRisk(t *testing.T) {
	// Spread ratio is relative to the higher price and capped at weight 20.
	if got := volatilityRisk(5, 6.5); math.Abs(got-1.5/6.5*20) > 1e-9 {
		t.Errorf("volatilityRisk(5, 6.5) = %v, want %v", got, 1.5/6.5*20)
	}
	if got := volatilityRisk(100, 100); got != 0 {
		t.Errorf("volatilityRisk(equal prices) = %v, want 0", got)
	}
	if got := volatilityRisk(0, 0); got != 0 {
		t.Errorf("volatilityRisk(0, 0) = %v, want 0", got)
	}
	// Extreme spread approaches but never exceeds the weight.
	if got := volatilityRisk(0.01, 1000000); got > 20 {
		t.Errorf("volatilityRisk extreme = %v, want <= 20", got)
	}
}

func TestRouteRisk(t *testing.T) {
	if got := routeRisk(0); got != 0 {
		t.Errorf("routeRisk(0) = %v, want 0", got)
	}
	if got := routeRisk(10); math.Abs(got-15) > 1e-9 {
		t.Errorf("routeRisk(10) = %v, want 15", got)
	}
	// Negative distance means unreachable; the clamp saturates upstream.
	if got := routeRisk(-1); got < 100 {
		t.Errorf("routeRisk(unreachable) = %v, want >= 100", got)
	}
}

func TestCalcRiskScore_ClampBounds(t *testing.T) {
	// Worst case everything: no depth, huge spread, unreachable route.
	if got := CalcRiskScore(0, 0, 0.01, 1000000, UnreachableJumps); got != 100 {
		t.Errorf("worst-case RiskScore = %v, want clamped to 100", got)
	}
	// Best case: deep books, no spread, same-region trade.
	if got := CalcRiskScore(10000000, 10000000, 50, 50, 0); got != 0 {
		t.Errorf("best-case RiskScore = %v, want 0", got)
	}
}

func TestCalcRiskScore_AlwaysInRange(t *testing.T) {
	vols := []int64{0, 1, 100, 5000, 2000000}
	prices := []float64{0, 0.01, 5, 6.5, 5200000}
	jumps := []int{0, 1, 5, 10, 50, UnreachableJumps}

	for _, sv := range vols {
		for _, tv := range vols {
			for _, bp := range prices {
				for _, sp := range prices {
					for _, j := range jumps {
						got := CalcRiskScore(sv, tv, bp, sp, j)
						if got < 0 || got > 100 {
							t.Fatalf("RiskScore(%d,%d,%v,%v,%d) = %v, out of [0,100]",
								sv, tv, bp, sp, j, got)
						}
					}
				}
			}
		}
	}
}

func TestCalcRiskScore_MoreJumpsMoreRisk(t *testing.T) {
	near := CalcRiskScore(1000, 1000, 5, 6.5, 2)
	far := CalcRiskScore(1000, 1000, 5, 6.5, 9)
	if far <= near {
		t.Errorf("risk at 9 jumps (%v) should exceed risk at 2 jumps (%v)", far, near)
	}
}
