package valuation

import "github.com/wellswap/valuation-engine/internal/model"

// RegulatoryAnalysis is the outcome of the regulatory assessment.
type RegulatoryAnalysis struct {
	ComplianceScore float64
	Risk            float64
	// Adjustment multiplies the base value; never below 0.9.
	Adjustment float64
}

// AnalyzeRegulatory estimates transfer-approval friction. Stronger insurers
// clear compliance review more predictably, and some product families carry
// structurally heavier approval requirements than others.
func AnalyzeRegulatory(p model.PolicyFacts, companyStrength float64) RegulatoryAnalysis {
	risk := lookupProductRegulatoryRisk(p.ProductType)

	adjustment := 1 - risk*0.1
	if adjustment < 0.9 {
		adjustment = 0.9
	}

	return RegulatoryAnalysis{
		ComplianceScore: clamp(0.6+0.3*companyStrength, 0, 1),
		Risk:            risk,
		Adjustment:      adjustment,
	}
}
