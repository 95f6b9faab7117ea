package ratings

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_KnownCompanyAndProduct(t *testing.T) {
	p := NewTableProvider()
	r, err := p.Lookup(context.Background(), "AIA", "Whole Life")
	require.NoError(t, err)

	assert.Equal(t, 0.90, r.CompanyStrength)
	assert.Equal(t, 0.80, r.ProductPerformance)
	assert.Empty(t, r.Defaulted)
}

func TestLookup_CaseAndWhitespaceInsensitive(t *testing.T) {
	p := NewTableProvider()
	r, err := p.Lookup(context.Background(), "  prudential ", "ENDOWMENT")
	require.NoError(t, err)

	assert.Equal(t, 0.90, r.CompanyStrength)
	assert.Equal(t, 0.80, r.ProductPerformance)
}

func TestLookup_UnknownKeysFallBackToNeutral(t *testing.T) {
	p := NewTableProvider()
	r, err := p.Lookup(context.Background(), "Totally Unknown Insurer", "Mystery Product")
	require.NoError(t, err)

	assert.Equal(t, DefaultCompanyStrength, r.CompanyStrength)
	assert.Equal(t, DefaultProductPerformance, r.ProductPerformance)
	assert.ElementsMatch(t, []string{"company", "product"}, r.Defaulted)
}

func TestLookup_PartialDefault(t *testing.T) {
	p := NewTableProvider()
	r, err := p.Lookup(context.Background(), "AIA", "Mystery Product")
	require.NoError(t, err)

	assert.Equal(t, 0.90, r.CompanyStrength)
	assert.Equal(t, DefaultProductPerformance, r.ProductPerformance)
	assert.Equal(t, []string{"product"}, r.Defaulted)
}

func TestLoadTableProvider_MergesOverBuiltin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ratings.yaml")
	content := []byte("companies:\n  Acme Life: 0.55\n  AIA: 0.95\nproducts:\n  Pension Plan: 0.72\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	p, err := LoadTableProvider(path)
	require.NoError(t, err)

	r, err := p.Lookup(context.Background(), "Acme Life", "Pension Plan")
	require.NoError(t, err)
	assert.Equal(t, 0.55, r.CompanyStrength)
	assert.Equal(t, 0.72, r.ProductPerformance)

	// Override wins over built-in entry.
	r, err = p.Lookup(context.Background(), "AIA", "Whole Life")
	require.NoError(t, err)
	assert.Equal(t, 0.95, r.CompanyStrength)
}

func TestLoadTableProvider_EmptyPathUsesBuiltin(t *testing.T) {
	p, err := LoadTableProvider("")
	require.NoError(t, err)
	r, err := p.Lookup(context.Background(), "Manulife", "Annuity")
	require.NoError(t, err)
	assert.Equal(t, 0.85, r.CompanyStrength)
}

func TestLoadTableProvider_BadFile(t *testing.T) {
	_, err := LoadTableProvider(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("companies: [not a map"), 0o644))
	_, err = LoadTableProvider(path)
	require.Error(t, err)
}

func TestBuiltinTableIsolation(t *testing.T) {
	// Loading one provider must not leak custom entries into another.
	dir := t.TempDir()
	path := filepath.Join(dir, "ratings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("companies:\n  Leaky: 0.99\n"), 0o644))

	_, err := LoadTableProvider(path)
	require.NoError(t, err)

	fresh := NewTableProvider()
	r, err := fresh.Lookup(context.Background(), "Leaky", "Whole Life")
	require.NoError(t, err)
	assert.Equal(t, DefaultCompanyStrength, r.CompanyStrength)
}
