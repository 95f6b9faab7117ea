package valuation

import (
	"fmt"
	"strings"

	"github.com/wellswap/valuation-engine/internal/model"
)

// RecommendationInputs carries the analyzer outputs the rule set inspects.
type RecommendationInputs struct {
	Document   model.DocumentAnalysis
	Risk       RiskAnalysis
	Liquidity  LiquidityAnalysis
	Regulatory RegulatoryAnalysis
	RealEstate *model.RealEstateAnalysis
}

// Recommend evaluates a fixed, ordered rule set over the analyzer outputs.
// Each rule is an independent threshold check, so identical inputs always
// produce the same lists in the same order.
func Recommend(in RecommendationInputs) model.Recommendations {
	var rec model.Recommendations

	if in.Document.Confidence < 0.7 {
		rec.Immediate = append(rec.Immediate,
			"Obtain complete policy documentation before listing; extracted fields are incomplete or low quality.")
	}
	if len(in.Document.MissingFields) > 0 {
		rec.Immediate = append(rec.Immediate,
			fmt.Sprintf("Supply the missing policy fields: %s.", strings.Join(in.Document.MissingFields, ", ")))
	}
	if len(in.Document.ValidationErrors) > 0 {
		rec.Immediate = append(rec.Immediate,
			"Correct the flagged document fields; validation errors reduce the achievable transfer price.")
	}

	if in.Liquidity.Score < 0.5 {
		rec.ShortTerm = append(rec.ShortTerm,
			"Expect an extended matching period; consider pricing below the recommendation to attract buyers.")
	}
	if in.Risk.Factors.MarketVolatility > 0.6 {
		rec.ShortTerm = append(rec.ShortTerm,
			"Market volatility is elevated; re-run the valuation before committing to a listing price.")
	}

	if in.Risk.Factors.CompanyStrength < 0.7 {
		rec.LongTerm = append(rec.LongTerm,
			"The issuing company's strength rating is below average; monitor its financial disclosures.")
	}
	if in.RealEstate != nil && in.RealEstate.RiskScore > 0.5 {
		rec.LongTerm = append(rec.LongTerm,
			"The property rider carries elevated risk; obtain an independent appraisal of the linked asset.")
	}

	if in.Risk.Composite > 0.6 {
		rec.RiskMitigation = append(rec.RiskMitigation,
			"Composite risk is high; disclose the full risk breakdown to counterparties up front.")
	}
	if in.Regulatory.Risk > 0.4 {
		rec.RiskMitigation = append(rec.RiskMitigation,
			"Transfer approval for this product family is demanding; engage the insurer's transfer desk early.")
	}
	if in.Risk.Factors.LiquidityRisk > 0.5 {
		rec.RiskMitigation = append(rec.RiskMitigation,
			"Liquidity risk is high; structure the sale with a flexible settlement window.")
	}

	return rec
}
