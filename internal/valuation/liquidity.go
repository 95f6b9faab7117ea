package valuation

import "github.com/wellswap/valuation-engine/internal/model"

// LiquidityAnalysis is the outcome of the liquidity assessment.
type LiquidityAnalysis struct {
	// Score is the mean of the four liquidity components, in [0,1].
	Score float64
	// Adjustment multiplies the base value; bounded to [0.6,1.2].
	Adjustment float64
}

// AnalyzeLiquidity scores how readily the policy can change hands. Market
// depth, product tradability, matching speed for the remaining horizon, and
// fixed-fee absorption each contribute equally.
func AnalyzeLiquidity(p model.PolicyFacts, volatilityScore float64) LiquidityAnalysis {
	marketDepth := clamp(1-volatilityScore, 0, 1)
	score := (marketDepth +
		lookupProductLiquidity(p.ProductType) +
		durationLiquidity(p.ContractPeriodYears) +
		feeImpact(p.SurrenderValue)) / 4

	return LiquidityAnalysis{
		Score:      score,
		Adjustment: clamp(0.8+score*0.4, 0.6, 1.2),
	}
}
