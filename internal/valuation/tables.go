package valuation

import "strings"

// productLiquidity approximates secondary-market depth per product family.
// Investment-linked products trade hands far more readily than annuities.
var productLiquidity = map[string]float64{
	"investment linked": 0.9,
	"endowment":         0.8,
	"whole life":        0.7,
	"savings plan":      0.7,
	"term life":         0.6,
	"annuity":           0.5,
}

const defaultProductLiquidity = 0.6

// productRegulatoryRisk scores transfer-approval friction per product family.
var productRegulatoryRisk = map[string]float64{
	"term life":         0.1,
	"endowment":         0.2,
	"savings plan":      0.2,
	"investment linked": 0.3,
	"whole life":        0.4,
	"annuity":           0.5,
}

const defaultProductRegulatoryRisk = 0.3

// propertyGrowthRate is the assumed annual appreciation per property type.
var propertyGrowthRate = map[string]float64{
	"residential": 0.03,
	"commercial":  0.025,
	"industrial":  0.02,
	"land":        0.04,
}

const defaultPropertyGrowthRate = 0.02

func lookupProductLiquidity(productType string) float64 {
	if v, ok := productLiquidity[normalizeProduct(productType)]; ok {
		return v
	}
	return defaultProductLiquidity
}

func lookupProductRegulatoryRisk(productType string) float64 {
	if v, ok := productRegulatoryRisk[normalizeProduct(productType)]; ok {
		return v
	}
	return defaultProductRegulatoryRisk
}

func lookupPropertyGrowthRate(propertyType string) float64 {
	if v, ok := propertyGrowthRate[normalizeProduct(propertyType)]; ok {
		return v
	}
	return defaultPropertyGrowthRate
}

// durationLiquidity scores how quickly a contract of the given remaining
// horizon finds a buyer. Short horizons match fast.
func durationLiquidity(contractPeriodYears int) float64 {
	switch {
	case contractPeriodYears <= 3:
		return 0.9
	case contractPeriodYears <= 7:
		return 0.8
	case contractPeriodYears <= 10:
		return 0.7
	default:
		return 0.5
	}
}

// feeImpact scores how well the policy's size absorbs fixed transfer fees.
func feeImpact(surrenderValue float64) float64 {
	switch {
	case surrenderValue >= 100_000:
		return 0.9
	case surrenderValue >= 50_000:
		return 0.8
	case surrenderValue >= 10_000:
		return 0.7
	default:
		return 0.5
	}
}

func normalizeProduct(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
