package valuation

import (
	"math"

	"github.com/wellswap/valuation-engine/internal/model"
)

// Normalize validates raw policy facts and fills defaults, returning a
// fully-populated copy. It rejects malformed input with InvalidInputError
// rather than silently sanitizing; everything downstream may assume the
// returned facts are internally consistent. No side effects.
func Normalize(p model.PolicyFacts) (model.PolicyFacts, error) {
	var bad []string

	if p.ContractPeriodYears <= 0 {
		bad = append(bad, "contract_period_years")
	}
	if p.PaidYears < 0 || (p.ContractPeriodYears > 0 && p.PaidYears > p.ContractPeriodYears) {
		bad = append(bad, "paid_years")
	}
	if p.AnnualPremium < 0 || !isFinite(p.AnnualPremium) {
		bad = append(bad, "annual_premium")
	}
	if p.TotalPremium < 0 || !isFinite(p.TotalPremium) {
		bad = append(bad, "total_premium")
	}
	if p.SurrenderValue < 0 || !isFinite(p.SurrenderValue) {
		bad = append(bad, "surrender_value")
	}

	if len(bad) > 0 {
		return model.PolicyFacts{}, NewInvalidInputError(bad...)
	}

	if p.TotalPremium == 0 {
		p.TotalPremium = p.AnnualPremium * float64(p.ContractPeriodYears)
	}
	if p.Currency == "" {
		p.Currency = "USD"
	}

	return p, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
