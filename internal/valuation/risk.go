package valuation

import (
	"github.com/wellswap/valuation-engine/internal/model"
	"github.com/wellswap/valuation-engine/internal/ratings"
)

// RiskAnalysis is the outcome of the risk assessment.
type RiskAnalysis struct {
	Factors   model.RiskFactors
	Composite float64
	// Adjustment multiplies the base value; never below 0.7.
	Adjustment float64
}

// AssessRisk combines the company/product rating with market volatility and
// the product's structural risk profile. Composite risk averages the five
// factors in risk direction, so a strong company lowers the composite even
// though its score is stored as a quality measure.
func AssessRisk(p model.PolicyFacts, rating ratings.Rating, volatilityScore float64) RiskAnalysis {
	factors := model.RiskFactors{
		CompanyStrength:    clamp(rating.CompanyStrength, 0, 1),
		ProductPerformance: clamp(rating.ProductPerformance, 0, 1),
		MarketVolatility:   clamp(volatilityScore, 0, 1),
		RegulatoryRisk:     lookupProductRegulatoryRisk(p.ProductType),
		LiquidityRisk:      1 - (lookupProductLiquidity(p.ProductType)+durationLiquidity(p.ContractPeriodYears))/2,
	}

	composite := ((1 - factors.CompanyStrength) +
		(1 - factors.ProductPerformance) +
		factors.MarketVolatility +
		factors.RegulatoryRisk +
		factors.LiquidityRisk) / 5

	adjustment := 1 - composite*0.2
	if adjustment < 0.7 {
		adjustment = 0.7
	}

	return RiskAnalysis{
		Factors:    factors,
		Composite:  clamp(composite, 0, 1),
		Adjustment: adjustment,
	}
}
