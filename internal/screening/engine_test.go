package screening

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finscope/finscope/internal/fundamentals"
	"github.com/finscope/finscope/internal/provider"
	"github.com/finscope/finscope/pkg/logger"
)

// fakeProvider serves canned fundamentals per symbol. A nil snapshot means
// the fetch fails; panicOn triggers a panic mid-fetch to exercise worker
// recovery.
type fakeProvider struct {
	mu        sync.Mutex
	snapshots map[string]*fundamentals.SecurityFundamentals
	panicOn   string
	calls     int
}

func (p *fakeProvider) Fundamentals(ctx context.Context, symbol string) (*fundamentals.SecurityFundamentals, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()

	if symbol == p.panicOn {
		panic("corrupt upstream payload")
	}
	f, ok := p.snapshots[symbol]
	if !ok || f == nil {
		return nil, errors.New("symbol not found")
	}
	return f, nil
}

func (p *fakeProvider) Quote(ctx context.Context, symbol string) (*provider.Quote, error) {
	return nil, errors.New("not implemented")
}

func (p *fakeProvider) History(ctx context.Context, symbol string, period provider.Period) ([]provider.Candle, error) {
	return nil, errors.New("not implemented")
}

func (p *fakeProvider) Search(ctx context.Context, query string) ([]provider.SearchResult, error) {
	return nil, errors.New("not implemented")
}

// valueSnapshot builds a snapshot that clears every value-mode threshold
// comfortably.
func valueSnapshot(cap float64) *fundamentals.SecurityFundamentals {
	return &fundamentals.SecurityFundamentals{
		Price:        fundamentals.F(50),
		MarketCap:    fundamentals.F(cap),
		TrailingPE:   fundamentals.F(8),
		PriceToBook:  fundamentals.F(0.8),
		PEGRatio:     fundamentals.F(0.5),
		DebtToEquity: fundamentals.F(0.3),
		CurrentRatio: fundamentals.F(2.5),
	}
}

// weakSnapshot barely clears the thresholds.
func weakSnapshot(cap float64) *fundamentals.SecurityFundamentals {
	return &fundamentals.SecurityFundamentals{
		Price:        fundamentals.F(50),
		MarketCap:    fundamentals.F(cap),
		TrailingPE:   fundamentals.F(14.5),
		PriceToBook:  fundamentals.F(1.4),
		PEGRatio:     fundamentals.F(0.95),
		DebtToEquity: fundamentals.F(0.9),
		CurrentRatio: fundamentals.F(1.6),
	}
}

func testEngine(p provider.DataProvider) *Engine {
	return NewEngine(p, logger.Nop(), 4, 5*time.Second)
}

func TestEngine_Screen(t *testing.T) {
	p := &fakeProvider{snapshots: map[string]*fundamentals.SecurityFundamentals{
		"STRONG": valueSnapshot(5e9),
		"WEAK":   weakSnapshot(5e9),
	}}
	universe := Universe{
		{"WEAK", "Weak Co", MarketUS},
		{"STRONG", "Strong Co", MarketUS},
	}

	candidates, err := testEngine(p).Screen(context.Background(), ModeValue, universe, DefaultParams(ModeValue), nil)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.Equal(t, "STRONG", candidates[0].Symbol, "higher score ranks first")
	assert.Equal(t, "WEAK", candidates[1].Symbol)
	assert.Greater(t, candidates[0].Percent, candidates[1].Percent)
	assert.Equal(t, "Mid", candidates[0].CapCategory)
}

func TestEngine_ScreenIsDeterministic(t *testing.T) {
	snapshots := make(map[string]*fundamentals.SecurityFundamentals)
	universe := Universe{}
	for i := 0; i < 40; i++ {
		sym := fmt.Sprintf("SYM%02d", i)
		snapshots[sym] = valueSnapshot(1e9 + float64(i)*1e8)
		universe = append(universe, Entry{Symbol: sym, Name: sym, Market: MarketUS})
	}
	p := &fakeProvider{snapshots: snapshots}
	engine := testEngine(p)
	params := DefaultParams(ModeValue)

	first, err := engine.Screen(context.Background(), ModeValue, universe, params, nil)
	require.NoError(t, err)

	for run := 0; run < 5; run++ {
		again, err := engine.Screen(context.Background(), ModeValue, universe, params, nil)
		require.NoError(t, err)
		require.Equal(t, len(first), len(again))
		for i := range first {
			assert.Equal(t, first[i].Symbol, again[i].Symbol, "run %d position %d", run, i)
		}
	}
}

func TestEngine_EqualScoresKeepUniverseOrder(t *testing.T) {
	// Identical snapshots score identically; output must follow universe
	// order.
	p := &fakeProvider{snapshots: map[string]*fundamentals.SecurityFundamentals{
		"CCC": valueSnapshot(5e9),
		"AAA": valueSnapshot(5e9),
		"BBB": valueSnapshot(5e9),
	}}
	universe := Universe{
		{"CCC", "", MarketUS},
		{"AAA", "", MarketUS},
		{"BBB", "", MarketUS},
	}

	candidates, err := testEngine(p).Screen(context.Background(), ModeValue, universe, DefaultParams(ModeValue), nil)
	require.NoError(t, err)
	require.Len(t, candidates, 3)
	assert.Equal(t, []string{"CCC", "AAA", "BBB"},
		[]string{candidates[0].Symbol, candidates[1].Symbol, candidates[2].Symbol})
}

func TestEngine_MarketCapFilter(t *testing.T) {
	p := &fakeProvider{snapshots: map[string]*fundamentals.SecurityFundamentals{
		"TINY":  valueSnapshot(100e6),
		"OK":    valueSnapshot(5e9),
		"HUGE":  valueSnapshot(9e12),
		"NOCAP": {Price: fundamentals.F(10), TrailingPE: fundamentals.F(5)},
	}}
	universe := Universe{
		{"TINY", "", MarketUS},
		{"OK", "", MarketUS},
		{"HUGE", "", MarketUS},
		{"NOCAP", "", MarketUS},
	}

	params := DefaultParams(ModeValue)
	params.MinMarketCap = 300e6
	params.MaxMarketCap = 5e12

	candidates, err := testEngine(p).Screen(context.Background(), ModeValue, universe, params, nil)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "OK", candidates[0].Symbol)

	for _, c := range candidates {
		require.True(t, c.MarketCap.Valid)
		assert.GreaterOrEqual(t, c.MarketCap.Value, params.MinMarketCap)
		assert.LessOrEqual(t, c.MarketCap.Value, params.MaxMarketCap)
	}
}

func TestEngine_PanicInOneSymbolDoesNotAbortRun(t *testing.T) {
	p := &fakeProvider{
		snapshots: map[string]*fundamentals.SecurityFundamentals{
			"GOOD":  valueSnapshot(5e9),
			"OTHER": valueSnapshot(5e9),
		},
		panicOn: "BOOM",
	}
	universe := Universe{
		{"GOOD", "", MarketUS},
		{"BOOM", "", MarketUS},
		{"OTHER", "", MarketUS},
	}

	candidates, err := testEngine(p).Screen(context.Background(), ModeValue, universe, DefaultParams(ModeValue), nil)
	require.NoError(t, err)
	assert.Len(t, candidates, 2)
}

func TestEngine_FetchFailureExcludesSymbol(t *testing.T) {
	p := &fakeProvider{snapshots: map[string]*fundamentals.SecurityFundamentals{
		"GOOD": valueSnapshot(5e9),
	}}
	universe := Universe{
		{"GOOD", "", MarketUS},
		{"MISSING", "", MarketUS},
	}

	candidates, err := testEngine(p).Screen(context.Background(), ModeValue, universe, DefaultParams(ModeValue), nil)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "GOOD", candidates[0].Symbol)
}

func TestEngine_TruncatesToMaxResults(t *testing.T) {
	snapshots := make(map[string]*fundamentals.SecurityFundamentals)
	universe := Universe{}
	for i := 0; i < 20; i++ {
		sym := fmt.Sprintf("SYM%02d", i)
		snapshots[sym] = valueSnapshot(5e9)
		universe = append(universe, Entry{Symbol: sym, Market: MarketUS})
	}
	p := &fakeProvider{snapshots: snapshots}

	params := DefaultParams(ModeValue)
	params.MaxResults = 5

	candidates, err := testEngine(p).Screen(context.Background(), ModeValue, universe, params, nil)
	require.NoError(t, err)
	assert.Len(t, candidates, 5)
}

func TestEngine_ProgressCoversWholeUniverse(t *testing.T) {
	snapshots := make(map[string]*fundamentals.SecurityFundamentals)
	universe := Universe{}
	for i := 0; i < 10; i++ {
		sym := fmt.Sprintf("SYM%02d", i)
		snapshots[sym] = valueSnapshot(5e9)
		universe = append(universe, Entry{Symbol: sym, Market: MarketUS})
	}
	p := &fakeProvider{snapshots: snapshots}

	var mu sync.Mutex
	seen := 0
	last := 0
	progress := func(done, total int, symbol string) {
		mu.Lock()
		defer mu.Unlock()
		seen++
		if done > last {
			last = done
		}
		assert.Equal(t, 10, total)
	}

	_, err := testEngine(p).Screen(context.Background(), ModeValue, universe, DefaultParams(ModeValue), progress)
	require.NoError(t, err)
	assert.Equal(t, 10, seen)
	assert.Equal(t, 10, last)
}

func TestEngine_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &fakeProvider{snapshots: map[string]*fundamentals.SecurityFundamentals{}}
	universe := DefaultUniverse()

	_, err := testEngine(p).Screen(ctx, ModeValue, universe, DefaultParams(ModeValue), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_Valuations(t *testing.T) {
	f := valueSnapshot(5e9)
	f.TrailingEPS = fundamentals.F(6)
	f.BookValue = fundamentals.F(60)
	p := &fakeProvider{snapshots: map[string]*fundamentals.SecurityFundamentals{"TEST": f}}

	results, summary, err := testEngine(p).Valuations(context.Background(), "TEST")
	require.NoError(t, err)
	assert.Len(t, results, 10)
	assert.Greater(t, summary.Used, 0)
}

func TestEngine_Health(t *testing.T) {
	p := &fakeProvider{snapshots: map[string]*fundamentals.SecurityFundamentals{
		"TEST": valueSnapshot(5e9),
	}}

	scores, err := testEngine(p).Health(context.Background(), "TEST")
	require.NoError(t, err)
	assert.Len(t, scores, 4)
}
