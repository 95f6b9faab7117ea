package marketdata

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/wellswap/valuation-engine/internal/model"
)

// Cache resolves snapshots through a TTL cache keyed by
// (company, product type, UTC day). Concurrent requests for the same key
// share one in-flight fetch. Expired entries are kept as stale fallbacks
// so a provider outage degrades to the last fetched numbers instead of the
// static default.
type Cache struct {
	provider Provider
	ttl      time.Duration

	mu      sync.Mutex
	entries map[string]cacheEntry
	group   singleflight.Group

	nowFunc func() time.Time
}

type cacheEntry struct {
	snapshot model.MarketSnapshot
	storedAt time.Time
}

// NewCache creates a snapshot cache in front of provider. A non-positive ttl
// defaults to 5 minutes.
func NewCache(provider Provider, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{
		provider: provider,
		ttl:      ttl,
		entries:  make(map[string]cacheEntry),
		nowFunc:  time.Now,
	}
}

// Resolve returns a tagged snapshot for the given key. It never returns an
// error: provider failures degrade to a stale entry or the static fallback,
// with the failure reason recorded on the Resolution.
func (c *Cache) Resolve(ctx context.Context, company, productType, location string) Resolution {
	key := cacheKey(company, productType, c.nowFunc())

	if snap, ok := c.fresh(key); ok {
		return Resolution{Snapshot: snap, Source: SourceCached}
	}

	v, _, _ := c.group.Do(key, func() (any, error) {
		// Re-check under singleflight: another caller may have just fetched.
		if snap, ok := c.fresh(key); ok {
			return Resolution{Snapshot: snap, Source: SourceCached}, nil
		}

		snap, err := c.provider.Fetch(ctx, company, productType, location)
		if err == nil {
			c.store(key, snap)
			return Resolution{Snapshot: snap, Source: SourceLive}, nil
		}

		zap.L().Warn("marketdata: fetch failed, degrading",
			zap.String("company", company),
			zap.String("product_type", productType),
			zap.Error(err),
		)

		if stale, ok := c.any(key); ok {
			return Resolution{
				Snapshot: stale,
				Source:   SourceStale,
				Reason:   fmt.Sprintf("fetch failed, using stale snapshot: %v", err),
			}, nil
		}
		return Resolution{
			Snapshot: FallbackSnapshot(),
			Source:   SourceFallback,
			Reason:   fmt.Sprintf("fetch failed, using fallback snapshot: %v", err),
		}, nil
	})

	return v.(Resolution)
}

func (c *Cache) fresh(key string) (model.MarketSnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || c.nowFunc().Sub(e.storedAt) >= c.ttl {
		return model.MarketSnapshot{}, false
	}
	return e.snapshot, true
}

func (c *Cache) any(key string) (model.MarketSnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return e.snapshot, ok
}

func (c *Cache) store(key string, snap model.MarketSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{snapshot: snap, storedAt: c.nowFunc()}
}

func cacheKey(company, productType string, now time.Time) string {
	return fmt.Sprintf("%s|%s|%s", company, productType, now.UTC().Format("2006-01-02"))
}
