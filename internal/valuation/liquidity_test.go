package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wellswap/valuation-engine/internal/model"
)

func TestAnalyzeLiquidity_Components(t *testing.T) {
	p := validPolicy()
	p.ProductType = "Whole Life"

	got := AnalyzeLiquidity(p, 0.3)

	// mean(0.7 depth, 0.7 product, 0.7 duration, 0.7 fee at 12k surrender)
	assert.InDelta(t, 0.7, got.Score, 1e-9)
	assert.InDelta(t, 1.08, got.Adjustment, 1e-9)
}

func TestAnalyzeLiquidity_AdjustmentBounds(t *testing.T) {
	illiquid := model.PolicyFacts{
		ProductType:         "Annuity",
		ContractPeriodYears: 25,
		SurrenderValue:      500,
	}
	got := AnalyzeLiquidity(illiquid, 1.0)
	assert.GreaterOrEqual(t, got.Adjustment, 0.6)

	liquid := model.PolicyFacts{
		ProductType:         "Investment Linked",
		ContractPeriodYears: 2,
		SurrenderValue:      500000,
	}
	got = AnalyzeLiquidity(liquid, 0)
	assert.LessOrEqual(t, got.Adjustment, 1.2)
	assert.Greater(t, got.Score, 0.85)
}

func TestAnalyzeLiquidity_VolatilityDepressesScore(t *testing.T) {
	calm := AnalyzeLiquidity(validPolicy(), 0.1)
	wild := AnalyzeLiquidity(validPolicy(), 0.9)
	assert.Greater(t, calm.Score, wild.Score)
}
