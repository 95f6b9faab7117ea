package valuation

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellswap/valuation-engine/internal/model"
)

func validPolicy() model.PolicyFacts {
	return model.PolicyFacts{
		Company:             "AIA",
		ProductType:         "Savings Plan",
		ContractPeriodYears: 10,
		PaidYears:           5,
		AnnualPremium:       3000,
		TotalPremium:        15000,
		SurrenderValue:      12000,
		Currency:            "USD",
	}
}

func TestNormalize_Valid(t *testing.T) {
	got, err := Normalize(validPolicy())
	require.NoError(t, err)
	assert.Equal(t, validPolicy(), got)
}

func TestNormalize_DefaultsTotalPremium(t *testing.T) {
	p := validPolicy()
	p.TotalPremium = 0
	got, err := Normalize(p)
	require.NoError(t, err)
	assert.Equal(t, 30000.0, got.TotalPremium)
}

func TestNormalize_DefaultsCurrency(t *testing.T) {
	p := validPolicy()
	p.Currency = ""
	got, err := Normalize(p)
	require.NoError(t, err)
	assert.Equal(t, "USD", got.Currency)
}

func TestNormalize_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.PolicyFacts)
		fields []string
	}{
		{
			name:   "negative contract period",
			mutate: func(p *model.PolicyFacts) { p.ContractPeriodYears = -1 },
			fields: []string{"contract_period_years"},
		},
		{
			name:   "zero contract period",
			mutate: func(p *model.PolicyFacts) { p.ContractPeriodYears = 0 },
			fields: []string{"contract_period_years"},
		},
		{
			name:   "negative paid years",
			mutate: func(p *model.PolicyFacts) { p.PaidYears = -3 },
			fields: []string{"paid_years"},
		},
		{
			name:   "paid exceeds period",
			mutate: func(p *model.PolicyFacts) { p.PaidYears = 11 },
			fields: []string{"paid_years"},
		},
		{
			name:   "negative premium",
			mutate: func(p *model.PolicyFacts) { p.AnnualPremium = -1 },
			fields: []string{"annual_premium"},
		},
		{
			name:   "non-finite surrender",
			mutate: func(p *model.PolicyFacts) { p.SurrenderValue = math.NaN() },
			fields: []string{"surrender_value"},
		},
		{
			name: "multiple fields",
			mutate: func(p *model.PolicyFacts) {
				p.ContractPeriodYears = -1
				p.TotalPremium = -500
			},
			fields: []string{"contract_period_years", "total_premium"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPolicy()
			tt.mutate(&p)

			_, err := Normalize(p)
			require.Error(t, err)

			var invalid *InvalidInputError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.fields, invalid.Fields)
		})
	}
}
