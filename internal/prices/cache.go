package prices

import (
	"sync"
	"time"

	"github.com/undercop/finfinal/internal/domain"
)

// Merge applies a poll cycle's update to the current cache view and returns
// the merged view. Ids present in update supersede the old sample
// unconditionally (polls are serialized, so last-write-wins by cycle is
// sufficient); ids absent from update keep their prior sample. A failed
// fetch therefore never removes or zeroes an existing entry.
//
// Merge is pure: neither input map is mutated.
func Merge(current map[int64]domain.PriceSample, update map[int64]float64, at time.Time) map[int64]domain.PriceSample {
	merged := make(map[int64]domain.PriceSample, len(current)+len(update))
	for id, sample := range current {
		merged[id] = sample
	}
	for id, price := range update {
		merged[id] = domain.PriceSample{AssetID: id, Price: price, ObservedAt: at}
	}
	return merged
}

// Cache holds the last-known price per asset. Readers always see a complete
// cycle: Apply swaps the whole map in one step, never patching entries in
// place, so a snapshot is never half-updated.
type Cache struct {
	mu      sync.RWMutex
	samples map[int64]domain.PriceSample
}

func NewCache() *Cache {
	return &Cache{samples: make(map[int64]domain.PriceSample)}
}

// Apply merges a cycle's update into the cache atomically.
func (c *Cache) Apply(update map[int64]float64, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.samples = Merge(c.samples, update, at)
}

// Seed installs previously persisted samples without overwriting anything
// newer already cached. Used for warm start only.
func (c *Cache) Seed(samples []domain.PriceSample) {
	c.mu.Lock()
	defer c.mu.Unlock()
	merged := make(map[int64]domain.PriceSample, len(c.samples)+len(samples))
	for id, s := range c.samples {
		merged[id] = s
	}
	for _, s := range samples {
		if existing, ok := merged[s.AssetID]; ok && existing.ObservedAt.After(s.ObservedAt) {
			continue
		}
		merged[s.AssetID] = s
	}
	c.samples = merged
}

// Get returns the last-known sample for an asset.
func (c *Cache) Get(assetID int64) (domain.PriceSample, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.samples[assetID]
	return s, ok
}

// Price returns the cached price for an asset, used as the valuation
// aggregator's priceOf lookup.
func (c *Cache) Price(assetID int64) (float64, bool) {
	s, ok := c.Get(assetID)
	return s.Price, ok
}

// Snapshot returns a copy of the full cache view.
func (c *Cache) Snapshot() map[int64]domain.PriceSample {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[int64]domain.PriceSample, len(c.samples))
	for id, s := range c.samples {
		out[id] = s
	}
	return out
}

// Len reports the number of cached assets.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.samples)
}
