// Package valuation implements the deterministic insurance-asset valuation
// pipeline: policy facts, document extractions and market signals in, a
// bounded transfer-price recommendation with confidence and risk grade out.
package valuation

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wellswap/valuation-engine/internal/config"
	"github.com/wellswap/valuation-engine/internal/marketdata"
	"github.com/wellswap/valuation-engine/internal/model"
	"github.com/wellswap/valuation-engine/internal/ratings"
)

// SnapshotResolver resolves a tagged market snapshot for a valuation key.
type SnapshotResolver interface {
	Resolve(ctx context.Context, company, productType, location string) marketdata.Resolution
}

// Engine runs the valuation pipeline. It holds no per-request state; one
// Engine serves concurrent requests.
type Engine struct {
	cfg     config.ValuationConfig
	market  SnapshotResolver
	ratings ratings.Provider
}

// NewEngine wires the pipeline to its collaborators.
func NewEngine(cfg config.ValuationConfig, market SnapshotResolver, provider ratings.Provider) *Engine {
	return &Engine{cfg: cfg, market: market, ratings: provider}
}

// Valuate runs one full valuation. Only malformed policy facts or caller
// cancellation produce an error; every collaborator failure degrades to a
// fallback plus a warning and a lower confidence. The result is
// deterministic for identical inputs and never partial.
func (e *Engine) Valuate(ctx context.Context, req model.ValuationRequest) (*model.ValuationResult, error) {
	if t := e.cfg.RequestTimeout(); t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}

	policy, err := Normalize(req.Policy)
	if err != nil {
		return nil, err
	}

	var warnings []model.Warning

	resolution := e.resolveSnapshot(ctx, req, policy)
	if resolution.Degraded() {
		warnings = append(warnings, model.Warning{
			Code:   model.WarnMarketDataDegraded,
			Detail: resolution.Reason,
		})
	}

	rating := e.lookupRating(ctx, policy)
	if len(rating.Defaulted) > 0 {
		warnings = append(warnings, model.Warning{
			Code:   model.WarnRatingDefaulted,
			Detail: "neutral default rating for: " + strings.Join(rating.Defaulted, ", "),
		})
	}

	// The analyzers are pure functions of the resolved inputs, so the
	// fan-out is an optimization only; no analyzer observes another's
	// output. Volatility is normalized once and shared.
	volatilityScore := clamp(resolution.Snapshot.Volatility/0.5, 0, 1)

	var (
		doc         model.DocumentAnalysis
		baseValue   float64
		market      MarketAnalysis
		projections model.MarketProjections
		risk        RiskAnalysis
		liquidity   LiquidityAnalysis
		regulatory  RegulatoryAnalysis
		realEstate  *model.RealEstateAnalysis
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		doc = ValidateDocument(req.Document)
		return gctx.Err()
	})
	g.Go(func() error {
		baseValue = BaseValue(policy, e.cfg.DiscountRate)
		market = AnalyzeMarket(resolution.Snapshot)
		projections = ProjectValue(policy.SurrenderValue, resolution.Snapshot.InterestRate)
		return gctx.Err()
	})
	g.Go(func() error {
		risk = AssessRisk(policy, rating, volatilityScore)
		regulatory = AnalyzeRegulatory(policy, rating.CompanyStrength)
		return gctx.Err()
	})
	g.Go(func() error {
		liquidity = AnalyzeLiquidity(policy, volatilityScore)
		if req.RealEstate != nil {
			analysis := AnalyzeRealEstate(*req.RealEstate)
			realEstate = &analysis
		}
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if req.Document == nil || len(req.Document.Fields) == 0 {
		warnings = append(warnings, model.Warning{
			Code:   model.WarnDocumentMissing,
			Detail: "no document extraction supplied",
		})
	} else if len(doc.ValidationErrors) > 0 {
		warnings = append(warnings, model.Warning{
			Code:   model.WarnDocumentInvalid,
			Detail: strings.Join(doc.ValidationErrors, "; "),
		})
	}

	breakdown := model.Breakdown{
		BaseValue:            baseValue,
		MarketAdjustment:     market.AdjustmentFactor,
		RiskAdjustment:       risk.Adjustment,
		LiquidityAdjustment:  liquidity.Adjustment,
		RegulatoryAdjustment: regulatory.Adjustment,
		DocumentAdjustment:   DocumentAdjustment(baseValue, doc),
	}
	if realEstate != nil {
		breakdown.RealEstateAdjustment = realEstate.Adjustment
	}

	confIn := ConfidenceInputs{
		DocumentConfidence:  doc.Confidence,
		MarketSubConfidence: resolution.SubConfidence(),
		CompositeRisk:       risk.Composite,
		LiquidityScore:      liquidity.Score,
		RegulatoryRisk:      regulatory.Risk,
	}
	if realEstate != nil {
		confIn.RealEstateRiskScore = &realEstate.RiskScore
	}

	result := &model.ValuationResult{
		FinalValue:     Aggregate(breakdown),
		RiskGrade:      GradeRisk(risk.Composite),
		CompositeRisk:  risk.Composite,
		Confidence:     ComputeConfidence(confIn),
		Breakdown:      breakdown,
		RiskFactors:    risk.Factors,
		LiquidityScore: liquidity.Score,
		Document:       doc,
		RealEstate:     realEstate,
		Projections:    projections,
		Recommendations: Recommend(RecommendationInputs{
			Document:   doc,
			Risk:       risk,
			Liquidity:  liquidity,
			Regulatory: regulatory,
			RealEstate: realEstate,
		}),
		Warnings: warnings,
	}

	zap.L().Debug("valuation complete",
		zap.String("company", policy.Company),
		zap.String("product_type", policy.ProductType),
		zap.Float64("final_value", result.FinalValue),
		zap.Float64("confidence", result.Confidence),
		zap.String("risk_grade", string(result.RiskGrade)),
		zap.String("market_source", string(resolution.Source)),
	)

	return result, nil
}

// resolveSnapshot prefers a caller-supplied override, otherwise resolves
// through the cache under the per-call deadline.
func (e *Engine) resolveSnapshot(ctx context.Context, req model.ValuationRequest, policy model.PolicyFacts) marketdata.Resolution {
	if req.MarketOverride != nil {
		return marketdata.Resolution{Snapshot: *req.MarketOverride, Source: marketdata.SourceOverride}
	}

	location := policy.Location
	if location == "" {
		location = e.cfg.DefaultLocation
	}

	callCtx := ctx
	if t := e.cfg.CallTimeout(); t > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}
	return e.market.Resolve(callCtx, policy.Company, policy.ProductType, location)
}

// lookupRating resolves the company/product rating under the per-call
// deadline, degrading to neutral defaults if the provider fails.
func (e *Engine) lookupRating(ctx context.Context, policy model.PolicyFacts) ratings.Rating {
	callCtx := ctx
	if t := e.cfg.CallTimeout(); t > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}

	rating, err := e.ratings.Lookup(callCtx, policy.Company, policy.ProductType)
	if err != nil {
		zap.L().Warn("ratings lookup failed, using neutral defaults",
			zap.String("company", policy.Company),
			zap.Error(err),
		)
		return ratings.Rating{
			CompanyStrength:    ratings.DefaultCompanyStrength,
			ProductPerformance: ratings.DefaultProductPerformance,
			Defaulted:          []string{"company", "product"},
		}
	}
	return rating
}
