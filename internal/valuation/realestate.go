package valuation

import "github.com/wellswap/valuation-engine/internal/model"

const (
	// A property rider contributes a slice of the property's value, not the
	// whole asset; the policyholder's claim on it is partial.
	propertyValueShare = 0.10
	rentalStreamYears  = 5
	rentalHaircut      = 0.8
	appreciationShare  = 0.3
)

// AnalyzeRealEstate values an embedded property-linked rider as a distinct
// asset component. The result is additive: it represents value the rider
// brings on top of the insurance contract, not a discount on it.
func AnalyzeRealEstate(re model.RealEstateFactors) model.RealEstateAnalysis {
	netRental := re.MarketValue*re.RentalYield*re.OccupancyRate - re.MaintenanceCost
	if netRental < 0 {
		netRental = 0
	}

	growth := lookupPropertyGrowthRate(re.PropertyType)

	analysis := model.RealEstateAnalysis{
		PropertyValueContribution: re.MarketValue * propertyValueShare,
		RentalIncomeContribution:  netRental * rentalStreamYears * rentalHaircut,
		AppreciationContribution:  re.MarketValue * growth * rentalStreamYears * appreciationShare,
		RiskScore:                 realEstateRiskScore(re),
	}

	total := analysis.PropertyValueContribution +
		analysis.RentalIncomeContribution +
		analysis.AppreciationContribution
	analysis.Adjustment = total * (1 - analysis.RiskScore*0.3)

	return analysis
}

// realEstateRiskScore accumulates penalties for age, vacancy and thin rental
// income, clamped to [0,1].
func realEstateRiskScore(re model.RealEstateFactors) float64 {
	score := 0.1

	switch {
	case re.PropertyAge > 40:
		score += 0.3
	case re.PropertyAge > 20:
		score += 0.2
	case re.PropertyAge > 10:
		score += 0.1
	}

	if re.OccupancyRate < 0.7 {
		score += 0.2
	} else if re.OccupancyRate < 0.9 {
		score += 0.1
	}

	if re.RentalYield < 0.02 {
		score += 0.1
	}

	return clamp(score, 0, 1)
}
