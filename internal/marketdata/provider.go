// Package marketdata resolves market snapshots for valuations. Snapshots
// come from an external provider, are cached per (company, product, day)
// with a short TTL, and degrade to a stale or static fallback when the
// provider is unavailable.
package marketdata

import (
	"context"

	"github.com/wellswap/valuation-engine/internal/model"
)

// Provider fetches a market snapshot from an external source.
type Provider interface {
	Fetch(ctx context.Context, company, productType, location string) (model.MarketSnapshot, error)
}

// Source tags where a resolved snapshot came from.
type Source string

const (
	// SourceLive is a snapshot fetched from the provider during this request.
	SourceLive Source = "live"
	// SourceCached is a snapshot served from the cache within its TTL.
	SourceCached Source = "cached"
	// SourceOverride is a caller-supplied snapshot.
	SourceOverride Source = "override"
	// SourceStale is an expired cache entry substituted after a fetch failure.
	SourceStale Source = "stale"
	// SourceFallback is the static default snapshot, used when nothing else
	// is available.
	SourceFallback Source = "fallback"
)

// Resolution is the tagged outcome of snapshot resolution. Callers can tell
// real data from substituted data instead of receiving a bare snapshot.
type Resolution struct {
	Snapshot model.MarketSnapshot `json:"snapshot"`
	Source   Source               `json:"source"`
	Reason   string               `json:"reason,omitempty"`
}

// Degraded reports whether the snapshot was substituted rather than fetched.
func (r Resolution) Degraded() bool {
	return r.Source == SourceStale || r.Source == SourceFallback
}

// SubConfidence returns the market analyzer confidence for this resolution:
// 0.9 for real data, 0.6 for a substituted snapshot.
func (r Resolution) SubConfidence() float64 {
	if r.Degraded() {
		return 0.6
	}
	return 0.9
}

// FallbackSnapshot returns the documented static default used when no
// market data is available: 5% interest, 2% inflation, parity currency,
// 15% volatility.
func FallbackSnapshot() model.MarketSnapshot {
	return model.MarketSnapshot{
		InterestRate:  0.05,
		InflationRate: 0.02,
		CurrencyRate:  1.0,
		Volatility:    0.15,
	}
}
