package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wellswap/valuation-engine/internal/ratings"
)

func TestAssessRisk_Composite(t *testing.T) {
	p := validPolicy()
	p.ProductType = "Whole Life"
	rating := ratings.Rating{CompanyStrength: 0.9, ProductPerformance: 0.8}

	got := AssessRisk(p, rating, 0.3)

	assert.Equal(t, 0.9, got.Factors.CompanyStrength)
	assert.Equal(t, 0.8, got.Factors.ProductPerformance)
	assert.Equal(t, 0.3, got.Factors.MarketVolatility)
	assert.Equal(t, 0.4, got.Factors.RegulatoryRisk)
	assert.InDelta(t, 0.3, got.Factors.LiquidityRisk, 1e-9)

	// mean(0.1, 0.2, 0.3, 0.4, 0.3)
	assert.InDelta(t, 0.26, got.Composite, 1e-9)
	assert.InDelta(t, 0.948, got.Adjustment, 1e-9)
}

func TestAssessRisk_StrongerCompanyLowersComposite(t *testing.T) {
	p := validPolicy()
	weak := AssessRisk(p, ratings.Rating{CompanyStrength: 0.3, ProductPerformance: 0.6}, 0.3)
	strong := AssessRisk(p, ratings.Rating{CompanyStrength: 0.9, ProductPerformance: 0.6}, 0.3)
	assert.Less(t, strong.Composite, weak.Composite)
	assert.Greater(t, strong.Adjustment, weak.Adjustment)
}

func TestAssessRisk_Bounds(t *testing.T) {
	p := validPolicy()
	p.ProductType = "Annuity"
	p.ContractPeriodYears = 25

	worst := AssessRisk(p, ratings.Rating{}, 1.0)
	assert.LessOrEqual(t, worst.Composite, 1.0)
	assert.GreaterOrEqual(t, worst.Adjustment, 0.7)

	best := AssessRisk(validPolicy(), ratings.Rating{CompanyStrength: 1, ProductPerformance: 1}, 0)
	assert.GreaterOrEqual(t, best.Composite, 0.0)
	assert.LessOrEqual(t, best.Adjustment, 1.0)
}

func TestAssessRisk_ClampsRatingScores(t *testing.T) {
	got := AssessRisk(validPolicy(), ratings.Rating{CompanyStrength: 1.5, ProductPerformance: -0.2}, 0.3)
	assert.Equal(t, 1.0, got.Factors.CompanyStrength)
	assert.Equal(t, 0.0, got.Factors.ProductPerformance)
}
