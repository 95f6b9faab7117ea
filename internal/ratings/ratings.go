// Package ratings resolves insurer and product ratings used by the risk
// assessment. Adding a company or product is a data entry in the rating
// table, never a code branch.
package ratings

import (
	"context"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Neutral defaults applied when a company or product is not in the table.
const (
	DefaultCompanyStrength    = 0.65
	DefaultProductPerformance = 0.60
)

// Rating holds the looked-up quality scores for a (company, product) pair.
// Scores are in [0,1]; higher is better. Defaulted lists the keys that fell
// back to neutral defaults so the caller can record a degraded-data warning.
type Rating struct {
	CompanyStrength    float64  `json:"company_strength"`
	ProductPerformance float64  `json:"product_performance"`
	Defaulted          []string `json:"defaulted,omitempty"`
}

// Provider looks up ratings for a company/product pair. Implementations must
// return neutral defaults rather than failing on unknown keys.
type Provider interface {
	Lookup(ctx context.Context, company, productType string) (Rating, error)
}

// Table is the serialized rating table.
type Table struct {
	Companies map[string]float64 `yaml:"companies"`
	Products  map[string]float64 `yaml:"products"`
}

// builtinTable covers the insurers and product families the marketplace
// trades most. A YAML file extends or overrides these entries.
var builtinTable = Table{
	Companies: map[string]float64{
		"aia":           0.90,
		"prudential":    0.90,
		"great eastern": 0.85,
		"manulife":      0.85,
		"axa":           0.80,
		"sun life":      0.80,
		"fwd":           0.75,
		"zurich":        0.75,
	},
	Products: map[string]float64{
		"whole life":        0.80,
		"endowment":         0.80,
		"investment linked": 0.80,
		"savings plan":      0.70,
		"term life":         0.60,
		"annuity":           0.60,
	},
}

// TableProvider implements Provider from an in-memory table.
type TableProvider struct {
	table Table
}

// NewTableProvider returns a provider backed by the built-in table.
func NewTableProvider() *TableProvider {
	return &TableProvider{table: cloneTable(builtinTable)}
}

// LoadTableProvider reads a YAML rating table from path and merges it over
// the built-in table. An empty path returns the built-in provider.
func LoadTableProvider(path string) (*TableProvider, error) {
	p := NewTableProvider()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ratings: read table %s", path)
	}

	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, eris.Wrapf(err, "ratings: parse table %s", path)
	}

	for k, v := range t.Companies {
		p.table.Companies[normalizeKey(k)] = v
	}
	for k, v := range t.Products {
		p.table.Products[normalizeKey(k)] = v
	}

	zap.L().Info("ratings: table loaded",
		zap.String("path", path),
		zap.Int("companies", len(p.table.Companies)),
		zap.Int("products", len(p.table.Products)),
	)
	return p, nil
}

// Lookup resolves the rating for a company/product pair, falling back to
// neutral defaults for unknown keys. It never returns an error.
func (p *TableProvider) Lookup(_ context.Context, company, productType string) (Rating, error) {
	r := Rating{
		CompanyStrength:    DefaultCompanyStrength,
		ProductPerformance: DefaultProductPerformance,
	}

	if v, ok := p.table.Companies[normalizeKey(company)]; ok {
		r.CompanyStrength = v
	} else {
		r.Defaulted = append(r.Defaulted, "company")
	}

	if v, ok := p.table.Products[normalizeKey(productType)]; ok {
		r.ProductPerformance = v
	} else {
		r.Defaulted = append(r.Defaulted, "product")
	}

	return r, nil
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func cloneTable(t Table) Table {
	c := Table{
		Companies: make(map[string]float64, len(t.Companies)),
		Products:  make(map[string]float64, len(t.Products)),
	}
	for k, v := range t.Companies {
		c.Companies[k] = v
	}
	for k, v := range t.Products {
		c.Products[k] = v
	}
	return c
}
