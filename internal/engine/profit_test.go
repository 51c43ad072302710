package engine

import (
	"math"
	"testing"
)

// The canonical Tritanium haul: buy 1M units at 5.00, sell at 6.50, with the
// default 3% broker fee on both legs and 8% sales tax on the sell leg.
func TestCalcProfit_TritaniumHaul(t *testing.T) {
	b := CalcProfit(5.00, 6.50, 1000000, 0.03, 0.08)

	if math.Abs(b.TotalCost-5000000) > 1e-6 {
		t.Errorf("TotalCost = %v, want 5000000", b.TotalCost)
	}
	if math.Abs(b.TotalRevenue-6500000) > 1e-6 {
		t.Errorf("TotalRevenue = %v, want 6500000", b.TotalRevenue)
	}
	if math.Abs(b.BrokerFees-345000) > 1e-6 {
		t.Errorf("BrokerFees = %v, want 345000", b.BrokerFees)
	}
	if math.Abs(b.Taxes-520000) > 1e-6 {
		t.Errorf("Taxes = %v, want 520000", b.Taxes)
	}
	if math.Abs(b.NetProfit-635000) > 1e-6 {
		t.Errorf("NetProfit = %v, want 635000", b.NetProfit)
	}
	wantPct := 635000.0 / 5000000.0 * 100
	if math.Abs(b.ProfitPercent-wantPct) > 1e-9 {
		t.Errorf("ProfitPercent = %v, want %v", b.ProfitPercent, wantPct)
	}
}

func TestCalcProfit_ZeroCostGuard(t *testing.T) {
	b := CalcProfit(0, 10, 100, 0.03, 0.08)
	if b.TotalCost != 0 {
		t.Errorf("TotalCost = %v, want 0", b.TotalCost)
	}
	if b.ProfitPercent != 0 {
		t.Errorf("ProfitPercent = %v, want 0 when cost is 0", b.ProfitPercent)
	}
	if math.IsNaN(b.ProfitPercent) || math.IsInf(b.ProfitPercent, 0) {
		t.Error("ProfitPercent not finite, zero-cost guard failed")
	}
}

func TestCalcProfit_ZeroQuantity(t *testing.T) {
	b := CalcProfit(5, 10, 0, 0.03, 0.08)
	if b.NetProfit != 0 || b.BrokerFees != 0 || b.Taxes != 0 {
		t.Errorf("zero-quantity breakdown = %+v, want all zero", b)
	}
}

func TestCalcProfit_FeesCanTurnMarginNegative(t *testing.T) {
	// 2% gross spread is eaten by fees: 3% broker both legs + 8% tax.
	b := CalcProfit(100, 102, 1000, 0.03, 0.08)
	if b.NetProfit >= 0 {
		t.Errorf("NetProfit = %v, want negative for a thin spread", b.NetProfit)
	}
}

func TestCalcProfit_NoFees(t *testing.T) {
	b := CalcProfit(100, 110, 10, 0, 0)
	if math.Abs(b.NetProfit-100) > 1e-9 {
		t.Errorf("NetProfit = %v, want 100 with no fees", b.NetProfit)
	}
	if math.Abs(b.ProfitPercent-10) > 1e-9 {
		t.Errorf("ProfitPercent = %v, want 10", b.ProfitPercent)
	}
}
