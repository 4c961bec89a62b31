// Package screening implements the multi-mode screening engine: a bounded
// worker pool that fetches fundamentals per symbol (through the provider
// cache), applies a market-cap pre-filter and a mode-specific tiered
// rubric, and returns a ranked, truncated candidate list.
package screening

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/finscope/finscope/internal/fundamentals"
	"github.com/finscope/finscope/internal/health"
	"github.com/finscope/finscope/internal/provider"
	"github.com/finscope/finscope/internal/valuation"
	"github.com/finscope/finscope/pkg/logger"
)

// Progress is an optional per-symbol completion callback. Called from
// worker goroutines; implementations must be safe for concurrent use.
type Progress func(done, total int, symbol string)

// Engine runs screening passes against a data provider. Scoring reads no
// global state; all thresholds arrive via Params.
type Engine struct {
	provider      provider.DataProvider
	logger        *logger.Logger
	workers       int
	symbolTimeout time.Duration
}

// NewEngine creates a screening engine. workers and symbolTimeout are
// fallback defaults; Params may override both per run.
func NewEngine(p provider.DataProvider, log *logger.Logger, workers int, symbolTimeout time.Duration) *Engine {
	if workers <= 0 {
		workers = 8
	}
	if symbolTimeout <= 0 {
		symbolTimeout = 30 * time.Second
	}
	return &Engine{
		provider:      p,
		logger:        log.WithField("module", "screening"),
		workers:       workers,
		symbolTimeout: symbolTimeout,
	}
}

// Screen runs one screening pass. The only error it returns is context
// cancellation of the whole run; individual symbol failures (fetch errors,
// timeouts, panics while scoring) exclude that symbol and continue. An
// empty result is a valid outcome, not an error.
func (e *Engine) Screen(ctx context.Context, mode Mode, universe Universe, params Params, progress Progress) ([]Candidate, error) {
	workers := params.Workers
	if workers <= 0 {
		workers = e.workers
	}
	timeout := params.SymbolTimeout
	if timeout <= 0 {
		timeout = e.symbolTimeout
	}

	e.logger.WithFields(map[string]interface{}{
		"mode":     string(mode),
		"universe": len(universe),
		"workers":  workers,
	}).Info("Screening started")

	type job struct {
		index int
		entry Entry
	}

	jobCh := make(chan job)
	resultCh := make(chan Candidate, len(universe))

	var wg sync.WaitGroup
	var done int
	var doneMu sync.Mutex

	reportProgress := func(symbol string) {
		if progress == nil {
			return
		}
		doneMu.Lock()
		done++
		current := done
		doneMu.Unlock()
		progress(current, len(universe), symbol)
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobCh {
				if candidate, ok := e.processSymbol(ctx, mode, params, j.entry, j.index, timeout); ok {
					resultCh <- candidate
				}
				reportProgress(j.entry.Symbol)
			}
		}()
	}

	// Feed jobs, stopping early on cancellation.
	var runErr error
feed:
	for i, entry := range universe {
		select {
		case jobCh <- job{index: i, entry: entry}:
		case <-ctx.Done():
			runErr = ctx.Err()
			break feed
		}
	}
	close(jobCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	candidates := make([]Candidate, 0, len(universe))
	for c := range resultCh {
		candidates = append(candidates, c)
	}

	if runErr != nil {
		return nil, runErr
	}

	// Completion order is nondeterministic; sort by score descending with
	// universe order as the tie-break so identical inputs give identical
	// output.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].universeIndex < candidates[j].universeIndex
	})

	if params.MaxResults > 0 && len(candidates) > params.MaxResults {
		candidates = candidates[:params.MaxResults]
	}

	e.logger.WithFields(map[string]interface{}{
		"mode":       string(mode),
		"candidates": len(candidates),
	}).Info("Screening completed")

	return candidates, nil
}

// processSymbol runs the fetch-filter-score sequence for one symbol.
// Returns false when the symbol is excluded for any reason; a panic while
// scoring one symbol must never abort the run.
func (e *Engine) processSymbol(ctx context.Context, mode Mode, params Params, entry Entry, index int, timeout time.Duration) (candidate Candidate, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.WithFields(map[string]interface{}{
				"symbol": entry.Symbol,
				"panic":  r,
			}).Error("Recovered while scoring symbol, excluding it")
			ok = false
		}
	}()

	symbolCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	f, err := e.provider.Fundamentals(symbolCtx, entry.Symbol)
	if err != nil {
		e.logger.WithError(err).WithField("symbol", entry.Symbol).Debug("Fetch failed, excluding symbol")
		return Candidate{}, false
	}

	// Cheap rejection before the full rubric.
	if !f.MarketCap.Valid {
		return Candidate{}, false
	}
	if f.MarketCap.Value < params.MinMarketCap ||
		(params.MaxMarketCap > 0 && f.MarketCap.Value > params.MaxMarketCap) {
		return Candidate{}, false
	}

	score, max := scoreFundamentals(mode, params, f)
	if max == 0 {
		// Nothing was scoreable for this symbol.
		return Candidate{}, false
	}

	name := entry.Name
	if name == "" {
		name = f.Name
	}

	return Candidate{
		Symbol:        entry.Symbol,
		Name:          name,
		Price:         f.Price,
		MarketCap:     f.MarketCap,
		Score:         score,
		MaxScore:      max,
		Percent:       100 * score / max,
		Market:        entry.Market,
		CapCategory:   CapCategory(f.MarketCap.Value),
		Fundamentals:  f,
		universeIndex: index,
	}, true
}

// Valuations fetches fundamentals for one symbol and evaluates every
// valuation model plus the aggregate summary.
func (e *Engine) Valuations(ctx context.Context, symbol string) (map[string]valuation.Result, valuation.Summary, error) {
	f, err := e.provider.Fundamentals(ctx, symbol)
	if err != nil {
		return nil, valuation.Summary{}, err
	}

	results := valuation.RunAll(f)
	summary := valuation.Summarize(f.Price.Or(0), results)
	return results, summary, nil
}

// Health fetches fundamentals for one symbol and evaluates every
// financial-health scorer.
func (e *Engine) Health(ctx context.Context, symbol string) (map[string]health.Score, error) {
	f, err := e.provider.Fundamentals(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return health.RunAll(f), nil
}

// Fundamentals exposes the (cached) snapshot for one symbol.
func (e *Engine) Fundamentals(ctx context.Context, symbol string) (*fundamentals.SecurityFundamentals, error) {
	return e.provider.Fundamentals(ctx, symbol)
}
