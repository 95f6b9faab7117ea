package valuation

import "github.com/wellswap/valuation-engine/internal/model"

// Baseline market assumptions. A snapshot matching these exactly produces a
// neutral adjustment factor of 1.0.
const (
	baselineInterestRate  = 0.05
	baselineInflationRate = 0.02
	baselineCurrencyRate  = 1.0
	baselineVolatility    = 0.15
)

// MarketAnalysis is the outcome of weighing a market snapshot against the
// baseline assumptions.
type MarketAnalysis struct {
	// AdjustmentFactor multiplies the base value; 1.0 is neutral.
	AdjustmentFactor float64
	// VolatilityScore normalizes snapshot volatility into [0,1].
	VolatilityScore float64
}

// AnalyzeMarket converts a market snapshot into a bounded multiplicative
// adjustment. Each signal contributes an independent partial clamped to
// plus-or-minus 5%, so even an extreme snapshot moves the valuation at most
// 20% in either direction.
func AnalyzeMarket(snap model.MarketSnapshot) MarketAnalysis {
	interest := clamp((baselineInterestRate-snap.InterestRate)*0.8, -0.05, 0.05)
	inflation := clamp((baselineInflationRate-snap.InflationRate)*0.6, -0.05, 0.05)
	currency := clamp((snap.CurrencyRate-baselineCurrencyRate)*0.1, -0.05, 0.05)
	volatility := clamp((baselineVolatility-snap.Volatility)*0.25, -0.05, 0.05)

	return MarketAnalysis{
		AdjustmentFactor: 1 + interest + inflation + currency + volatility,
		VolatilityScore:  clamp(snap.Volatility/0.5, 0, 1),
	}
}
