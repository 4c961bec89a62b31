package provider

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finscope/finscope/internal/fundamentals"
)

// countingProvider records how many upstream calls each symbol received.
type countingProvider struct {
	mu    sync.Mutex
	calls map[string]int
	err   error
}

func newCountingProvider() *countingProvider {
	return &countingProvider{calls: make(map[string]int)}
}

func (p *countingProvider) Fundamentals(ctx context.Context, symbol string) (*fundamentals.SecurityFundamentals, error) {
	p.mu.Lock()
	p.calls[symbol]++
	p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	return &fundamentals.SecurityFundamentals{Symbol: symbol}, nil
}

func (p *countingProvider) Quote(ctx context.Context, symbol string) (*Quote, error) {
	return &Quote{Symbol: symbol}, nil
}

func (p *countingProvider) History(ctx context.Context, symbol string, period Period) ([]Candle, error) {
	return nil, nil
}

func (p *countingProvider) Search(ctx context.Context, query string) ([]SearchResult, error) {
	return nil, nil
}

func (p *countingProvider) count(symbol string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[symbol]
}

func TestCache_ServesWithinFreshnessWindow(t *testing.T) {
	upstream := newCountingProvider()
	cache := NewCache(upstream, 30*time.Minute)

	current := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }

	ctx := context.Background()

	first, err := cache.Fundamentals(ctx, "AAPL")
	require.NoError(t, err)

	// Second fetch 29 minutes later must come from cache.
	current = current.Add(29 * time.Minute)
	second, err := cache.Fundamentals(ctx, "AAPL")
	require.NoError(t, err)

	assert.Equal(t, 1, upstream.count("AAPL"))
	assert.Same(t, first, second)
}

func TestCache_RefetchesAfterWindow(t *testing.T) {
	upstream := newCountingProvider()
	cache := NewCache(upstream, 30*time.Minute)

	current := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }

	ctx := context.Background()

	_, err := cache.Fundamentals(ctx, "AAPL")
	require.NoError(t, err)

	current = current.Add(31 * time.Minute)
	_, err = cache.Fundamentals(ctx, "AAPL")
	require.NoError(t, err)

	assert.Equal(t, 2, upstream.count("AAPL"))
}

func TestCache_SymbolsAreIndependent(t *testing.T) {
	upstream := newCountingProvider()
	cache := NewCache(upstream, 30*time.Minute)

	ctx := context.Background()
	_, err := cache.Fundamentals(ctx, "AAPL")
	require.NoError(t, err)
	_, err = cache.Fundamentals(ctx, "MSFT")
	require.NoError(t, err)

	assert.Equal(t, 1, upstream.count("AAPL"))
	assert.Equal(t, 1, upstream.count("MSFT"))
}

func TestCache_ErrorsAreNotCached(t *testing.T) {
	upstream := newCountingProvider()
	upstream.err = errors.New("upstream down")
	cache := NewCache(upstream, 30*time.Minute)

	ctx := context.Background()
	_, err := cache.Fundamentals(ctx, "AAPL")
	require.Error(t, err)

	upstream.err = nil
	snapshot, err := cache.Fundamentals(ctx, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", snapshot.Symbol)
	assert.Equal(t, 2, upstream.count("AAPL"))
}

func TestCache_DefaultTTL(t *testing.T) {
	cache := NewCache(newCountingProvider(), 0)
	assert.Equal(t, DefaultCacheTTL, cache.ttl)
}

func TestPeriod_Validate(t *testing.T) {
	assert.NoError(t, Period1Y.Validate())
	assert.NoError(t, PeriodMax.Validate())
	assert.Error(t, Period("2w").Validate())
	assert.Error(t, Period("").Validate())
}
