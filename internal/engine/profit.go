package engine

// ProfitBreakdown is the fee-and-tax decomposition of one trade.
type ProfitBreakdown struct {
	TotalCost     float64 `json:"total_cost"`
	TotalRevenue  float64 `json:"total_revenue"`
	BrokerFees    float64 `json:"broker_fees"`
	Taxes         float64 `json:"taxes"`
	NetProfit     float64 `json:"net_profit"`
	ProfitPercent float64 `json:"profit_percent"`
}

// CalcProfit computes the net outcome of buying quantity units at buyPrice and
// selling them at sellPrice. The broker fee is charged on both the buy and the
// sell leg; sales tax only on the sell leg. Inputs are pre-validated by the
// caller (non-negative price and quantity).
func CalcProfit(buyPrice, sellPrice float64, quantity int64, brokerFeeRate, taxRate float64) ProfitBreakdown {
	q := float64(quantity)
	cost := buyPrice * q
	revenue := sellPrice * q
	fees := brokerFeeRate*cost + brokerFeeRate*revenue
	taxes := taxRate * revenue
	net := revenue - cost - fees - taxes

	var pct float64
	if cost > 0 {
		pct = net / cost * 100
	}
	return ProfitBreakdown{
		TotalCost:     cost,
		TotalRevenue:  revenue,
		BrokerFees:    fees,
		Taxes:         taxes,
		NetProfit:     net,
		ProfitPercent: sanitizeFloat(pct),
	}
}
