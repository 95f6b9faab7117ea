package valuation

import (
	"math"

	"github.com/wellswap/valuation-engine/internal/model"
)

const surrenderFloorRatio = 0.8

// BaseValue computes the actuarial baseline from policy facts alone. The
// declared surrender value is discounted back over the full contract period,
// the annual premium stream is discounted over the same horizon, and a small
// return-ratio kicker rewards policies whose projected proceeds exceed what
// was paid in. The result never drops below 80% of the surrender value, so
// degenerate inputs cannot produce an unreasonably small baseline.
func BaseValue(p model.PolicyFacts, discountRate float64) float64 {
	years := p.ContractPeriodYears
	pvSurrender := p.SurrenderValue / math.Pow(1+discountRate, float64(years))

	var pvPremiums float64
	for t := 1; t <= years; t++ {
		pvPremiums += p.AnnualPremium / math.Pow(1+discountRate, float64(t))
	}

	var roi float64
	if p.TotalPremium > 0 {
		roi = (p.SurrenderValue + pvPremiums - p.TotalPremium) / p.TotalPremium
	}

	base := pvSurrender + pvPremiums + roi*p.TotalPremium*0.3

	if floor := p.SurrenderValue * surrenderFloorRatio; base < floor {
		return floor
	}
	return base
}
