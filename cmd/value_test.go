package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellswap/valuation-engine/internal/model"
)

func TestLoadRequest_FromFlags(t *testing.T) {
	valueInputFile = ""
	valuePolicy = model.PolicyFacts{Company: "AIA", ContractPeriodYears: 10}
	t.Cleanup(func() { valuePolicy = model.PolicyFacts{} })

	req, err := loadRequest()
	require.NoError(t, err)
	assert.Equal(t, "AIA", req.Policy.Company)
	assert.Nil(t, req.Document)
}

func TestLoadRequest_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "req.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"policy": {"company": "FWD", "product_type": "Term Life", "contract_period_years": 5},
		"document": {"fields": {"policy_number": "FW12345678"}}
	}`), 0o600))

	valueInputFile = path
	t.Cleanup(func() { valueInputFile = "" })

	req, err := loadRequest()
	require.NoError(t, err)
	assert.Equal(t, "FWD", req.Policy.Company)
	require.NotNil(t, req.Document)
	v, ok := req.Document.Get(model.FieldPolicyNumber)
	assert.True(t, ok)
	assert.Equal(t, "FW12345678", v)
}

func TestLoadRequest_BadFile(t *testing.T) {
	valueInputFile = filepath.Join(t.TempDir(), "missing.json")
	t.Cleanup(func() { valueInputFile = "" })

	_, err := loadRequest()
	require.Error(t, err)
}
