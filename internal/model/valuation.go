// Package model defines the shared data types for the valuation engine.
package model

import "time"

// PolicyFacts holds the declared facts of an insurance policy. It is built
// once per valuation request and never mutated by the pipeline.
type PolicyFacts struct {
	Company             string  `json:"company"`
	ProductType         string  `json:"product_type"`
	ContractPeriodYears int     `json:"contract_period_years"`
	PaidYears           int     `json:"paid_years"`
	AnnualPremium       float64 `json:"annual_premium"`
	TotalPremium        float64 `json:"total_premium"`
	SurrenderValue      float64 `json:"surrender_value"`
	Currency            string  `json:"currency"`
	Location            string  `json:"location,omitempty"`
	HasPropertyRider    bool    `json:"has_property_rider,omitempty"`
}

// Document field keys produced by the upstream extraction source.
const (
	FieldPolicyNumber    = "policy_number"
	FieldInsuredName     = "insured_name"
	FieldIssueDate       = "issue_date"
	FieldMaturityDate    = "maturity_date"
	FieldPremiumSchedule = "premium_schedule"
	FieldRiders          = "riders"
	FieldExclusions      = "exclusions"
	FieldCurrency        = "currency"
)

// DocumentExtraction carries fields extracted from a scanned policy document.
// A field is present when its key exists with a non-empty value. The engine
// consumes this read-only; it never touches the source images.
type DocumentExtraction struct {
	Fields map[string]string `json:"fields"`
}

// Get returns the value for a field key and whether it is present.
func (d *DocumentExtraction) Get(key string) (string, bool) {
	if d == nil || d.Fields == nil {
		return "", false
	}
	v, ok := d.Fields[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// MarketSnapshot holds external market signals for a (company, product, day).
type MarketSnapshot struct {
	InterestRate  float64 `json:"interest_rate"`
	InflationRate float64 `json:"inflation_rate"`
	CurrencyRate  float64 `json:"currency_rate"`
	Volatility    float64 `json:"volatility"`
}

// RealEstateFactors describes an embedded property-linked rider.
type RealEstateFactors struct {
	PropertyType    string  `json:"property_type"` // residential, commercial, industrial, land
	Location        string  `json:"location"`
	MarketValue     float64 `json:"market_value"`
	RentalYield     float64 `json:"rental_yield"`
	PropertyAge     int     `json:"property_age"`
	MaintenanceCost float64 `json:"maintenance_cost"`
	OccupancyRate   float64 `json:"occupancy_rate"`
}

// RiskFactors holds the five per-factor scores, each in [0,1].
// CompanyStrength and ProductPerformance score quality (higher is better);
// the remaining three score risk (higher is worse).
type RiskFactors struct {
	CompanyStrength    float64 `json:"company_strength"`
	ProductPerformance float64 `json:"product_performance"`
	MarketVolatility   float64 `json:"market_volatility"`
	RegulatoryRisk     float64 `json:"regulatory_risk"`
	LiquidityRisk      float64 `json:"liquidity_risk"`
}

// Breakdown names every adjustment contribution that produced the final
// value. Market, risk, liquidity and regulatory entries are multiplicative
// factors applied to the base value; real estate and document entries are
// additive amounts.
type Breakdown struct {
	BaseValue            float64 `json:"base_value"`
	MarketAdjustment     float64 `json:"market_adjustment"`
	RiskAdjustment       float64 `json:"risk_adjustment"`
	LiquidityAdjustment  float64 `json:"liquidity_adjustment"`
	RegulatoryAdjustment float64 `json:"regulatory_adjustment"`
	RealEstateAdjustment float64 `json:"real_estate_adjustment"`
	DocumentAdjustment   float64 `json:"document_adjustment"`
}

// DocumentAnalysis is the outcome of validating a document extraction.
type DocumentAnalysis struct {
	Confidence           float64           `json:"confidence"`
	Completeness         float64           `json:"completeness"`
	MissingFields        []string          `json:"missing_fields,omitempty"`
	ValidationErrors     []string          `json:"validation_errors,omitempty"`
	SuggestedCorrections map[string]string `json:"suggested_corrections,omitempty"`
}

// RealEstateAnalysis is the outcome of the optional property-rider analysis.
type RealEstateAnalysis struct {
	PropertyValueContribution float64 `json:"property_value_contribution"`
	RentalIncomeContribution  float64 `json:"rental_income_contribution"`
	AppreciationContribution  float64 `json:"appreciation_contribution"`
	RiskScore                 float64 `json:"risk_score"`
	Adjustment                float64 `json:"adjustment"`
}

// MarketProjections estimates the policy's value at standard horizons,
// compounded forward from the surrender value.
type MarketProjections struct {
	SixMonth  float64 `json:"six_month"`
	OneYear   float64 `json:"one_year"`
	ThreeYear float64 `json:"three_year"`
	FiveYear  float64 `json:"five_year"`
}

// Recommendations groups human-readable guidance by urgency.
type Recommendations struct {
	Immediate      []string `json:"immediate"`
	ShortTerm      []string `json:"short_term"`
	LongTerm       []string `json:"long_term"`
	RiskMitigation []string `json:"risk_mitigation"`
}

// Warning codes for degraded-data conditions absorbed during a valuation.
const (
	WarnMarketDataDegraded = "market_data_degraded"
	WarnDocumentMissing    = "document_missing"
	WarnDocumentInvalid    = "document_invalid"
	WarnRatingDefaulted    = "rating_defaulted"
)

// Warning records a non-fatal degradation that lowered confidence.
type Warning struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

// ValuationRequest is the full input contract for one valuation.
type ValuationRequest struct {
	Policy         PolicyFacts         `json:"policy"`
	Document       *DocumentExtraction `json:"document,omitempty"`
	MarketOverride *MarketSnapshot     `json:"market_override,omitempty"`
	RealEstate     *RealEstateFactors  `json:"real_estate,omitempty"`
}

// ValuationResult is the output contract. It is computed fresh per request,
// never mutated after construction, and deterministic for identical inputs.
type ValuationResult struct {
	FinalValue      float64             `json:"final_value"`
	RiskGrade       RiskGrade           `json:"risk_grade"`
	CompositeRisk   float64             `json:"composite_risk"`
	Confidence      float64             `json:"confidence"`
	Breakdown       Breakdown           `json:"breakdown"`
	RiskFactors     RiskFactors         `json:"risk_factors"`
	LiquidityScore  float64             `json:"liquidity_score"`
	Document        DocumentAnalysis    `json:"document"`
	RealEstate      *RealEstateAnalysis `json:"real_estate,omitempty"`
	Projections     MarketProjections   `json:"projections"`
	Recommendations Recommendations     `json:"recommendations"`
	Warnings        []Warning           `json:"warnings,omitempty"`
}

// ValuationRecord is a persisted valuation: the request that produced it,
// the result, and storage metadata. Only the store layer assigns ID and
// CreatedAt so that ValuationResult itself stays deterministic.
type ValuationRecord struct {
	ID        string           `json:"id"`
	Company   string           `json:"company"`
	Product   string           `json:"product"`
	Request   ValuationRequest `json:"request"`
	Result    ValuationResult  `json:"result"`
	CreatedAt time.Time        `json:"created_at"`
}
