package provider

import (
	"context"
	"sync"
	"time"

	"github.com/finscope/finscope/internal/fundamentals"
)

// DefaultCacheTTL is the default fundamentals freshness window.
const DefaultCacheTTL = 30 * time.Minute

// cacheEntry pairs a snapshot with its capture time. Staleness is checked
// lazily on access; entries are only ever evicted by being overwritten.
type cacheEntry struct {
	snapshot   *fundamentals.SecurityFundamentals
	capturedAt time.Time
}

// Cache memoizes per-symbol fundamentals around a DataProvider so a
// screening pass does not refetch a symbol it already has. The mutex guards
// only the map access, never the network fetch, so concurrent fetches for
// different symbols proceed in parallel.
type Cache struct {
	upstream DataProvider
	ttl      time.Duration

	mu      sync.Mutex
	entries map[string]cacheEntry

	// now is swappable for tests.
	now func() time.Time
}

// NewCache wraps a provider with a fundamentals cache. A non-positive ttl
// falls back to DefaultCacheTTL.
func NewCache(upstream DataProvider, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		upstream: upstream,
		ttl:      ttl,
		entries:  make(map[string]cacheEntry),
		now:      time.Now,
	}
}

// Fundamentals returns the cached snapshot when it is still inside the
// freshness window, otherwise fetches live and stores the result.
func (c *Cache) Fundamentals(ctx context.Context, symbol string) (*fundamentals.SecurityFundamentals, error) {
	c.mu.Lock()
	entry, exists := c.entries[symbol]
	fresh := exists && c.now().Sub(entry.capturedAt) < c.ttl
	c.mu.Unlock()

	if fresh {
		return entry.snapshot, nil
	}

	snapshot, err := c.upstream.Fundamentals(ctx, symbol)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[symbol] = cacheEntry{snapshot: snapshot, capturedAt: c.now()}
	c.mu.Unlock()

	return snapshot, nil
}

// Quote passes through to the upstream provider; quotes are not cached.
func (c *Cache) Quote(ctx context.Context, symbol string) (*Quote, error) {
	return c.upstream.Quote(ctx, symbol)
}

// History passes through to the upstream provider.
func (c *Cache) History(ctx context.Context, symbol string, period Period) ([]Candle, error) {
	return c.upstream.History(ctx, symbol, period)
}

// Search passes through to the upstream provider.
func (c *Cache) Search(ctx context.Context, query string) ([]SearchResult, error) {
	return c.upstream.Search(ctx, query)
}

var _ DataProvider = (*Cache)(nil)
