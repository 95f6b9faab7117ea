package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wellswap/valuation-engine/internal/marketdata"
	"github.com/wellswap/valuation-engine/internal/model"
)

func TestAnalyzeMarket_BaselineIsNeutral(t *testing.T) {
	got := AnalyzeMarket(marketdata.FallbackSnapshot())
	assert.InDelta(t, 1.0, got.AdjustmentFactor, 1e-9)
	assert.InDelta(t, 0.3, got.VolatilityScore, 1e-9)
}

func TestAnalyzeMarket_PartialsClamped(t *testing.T) {
	// Every signal far from baseline: each partial saturates at its 5% bound.
	got := AnalyzeMarket(model.MarketSnapshot{
		InterestRate:  0.50,
		InflationRate: 0.50,
		CurrencyRate:  100,
		Volatility:    1.0,
	})
	assert.InDelta(t, 0.90, got.AdjustmentFactor, 1e-9)
}

func TestAnalyzeMarket_FactorBounded(t *testing.T) {
	snaps := []model.MarketSnapshot{
		{InterestRate: -1, InflationRate: -1, CurrencyRate: 0, Volatility: 0},
		{InterestRate: 1, InflationRate: 1, CurrencyRate: 50, Volatility: 2},
		{},
	}
	for _, snap := range snaps {
		got := AnalyzeMarket(snap)
		assert.GreaterOrEqual(t, got.AdjustmentFactor, 0.8)
		assert.LessOrEqual(t, got.AdjustmentFactor, 1.2)
		assert.GreaterOrEqual(t, got.VolatilityScore, 0.0)
		assert.LessOrEqual(t, got.VolatilityScore, 1.0)
	}
}

func TestAnalyzeMarket_LowRatesLiftValue(t *testing.T) {
	low := AnalyzeMarket(model.MarketSnapshot{InterestRate: 0.01, InflationRate: 0.02, CurrencyRate: 1, Volatility: 0.15})
	high := AnalyzeMarket(model.MarketSnapshot{InterestRate: 0.09, InflationRate: 0.02, CurrencyRate: 1, Volatility: 0.15})
	assert.Greater(t, low.AdjustmentFactor, high.AdjustmentFactor)
}
