package valuation

import "github.com/wellswap/valuation-engine/internal/model"

const finalValueFloorRatio = 0.5

// DocumentAdjustment converts document confidence into a small additive nudge
// on the base value. High-confidence paperwork earns up to +2% of base; each
// missing field costs 0.5% and each validation error 1%.
func DocumentAdjustment(baseValue float64, doc model.DocumentAnalysis) float64 {
	var tier float64
	switch {
	case doc.Confidence >= 0.9:
		tier = 0.02
	case doc.Confidence >= 0.7:
		tier = 0.01
	case doc.Confidence < 0.5:
		tier = -0.02
	}

	adj := baseValue * tier
	adj -= baseValue * 0.005 * float64(len(doc.MissingFields))
	adj -= baseValue * 0.01 * float64(len(doc.ValidationErrors))
	return adj
}

// Aggregate composes the final value from the baseline and every adjustment.
// The four risk-style adjustments are multiplicative discounts or premiums on
// the baseline; real estate and document terms are additive because they
// represent separate value components. The result never drops below half the
// baseline.
func Aggregate(b model.Breakdown) float64 {
	value := b.BaseValue *
		b.MarketAdjustment *
		b.RiskAdjustment *
		b.LiquidityAdjustment *
		b.RegulatoryAdjustment
	value += b.RealEstateAdjustment
	value += b.DocumentAdjustment

	if floor := b.BaseValue * finalValueFloorRatio; value < floor {
		return floor
	}
	return value
}

// ConfidenceInputs carries every sub-confidence that feeds the overall score.
type ConfidenceInputs struct {
	DocumentConfidence  float64
	MarketSubConfidence float64
	CompositeRisk       float64
	LiquidityScore      float64
	RegulatoryRisk      float64
	// RealEstateRiskScore is nil when the request carries no property rider.
	RealEstateRiskScore *float64
}

// ComputeConfidence folds the sub-confidences into one bounded score. The
// floor at 0.1 keeps downstream consumers from treating any valuation as
// certainly worthless; the cap keeps it from claiming certainty.
func ComputeConfidence(in ConfidenceInputs) float64 {
	confidence := 0.8 *
		in.DocumentConfidence *
		in.MarketSubConfidence *
		(1 - in.CompositeRisk*0.3) *
		in.LiquidityScore *
		(1 - in.RegulatoryRisk*0.2)

	if in.RealEstateRiskScore != nil {
		confidence *= 1 - *in.RealEstateRiskScore*0.2
	}

	return clamp(confidence, 0.1, 1.0)
}
