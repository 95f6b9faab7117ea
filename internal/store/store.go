// Package store persists valuations alongside the requests that produced
// them. The engine itself is storage-free; records gain their ID and
// timestamp here.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/wellswap/valuation-engine/internal/config"
	"github.com/wellswap/valuation-engine/internal/model"
)

// ValuationFilter specifies criteria for listing valuation records.
type ValuationFilter struct {
	Company string `json:"company,omitempty"`
	Product string `json:"product,omitempty"`
	Limit   int    `json:"limit,omitempty"`
	Offset  int    `json:"offset,omitempty"`
}

// Store defines the persistence interface for valuation records.
type Store interface {
	// SaveValuation assigns an ID and timestamp and persists the record.
	SaveValuation(ctx context.Context, req model.ValuationRequest, res model.ValuationResult) (*model.ValuationRecord, error)
	// GetValuation returns nil, nil when no record has the given ID.
	GetValuation(ctx context.Context, id string) (*model.ValuationRecord, error)
	ListValuations(ctx context.Context, filter ValuationFilter) ([]model.ValuationRecord, error)
	// ImportValuations bulk-loads already-built records, preserving their
	// IDs and timestamps. Used for migrating history between environments.
	ImportValuations(ctx context.Context, records []model.ValuationRecord) (int64, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open constructs the store named by cfg.Driver. An empty driver disables
// persistence and returns nil, nil.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "":
		return nil, nil
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL, nil)
	case "sqlite":
		return NewSQLite(cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
