package screening

import (
	"fmt"
	"time"

	"github.com/finscope/finscope/internal/fundamentals"
)

// Mode selects the screening rubric.
type Mode string

// Screening modes.
const (
	ModeValue       Mode = "value"
	ModeGrowth      Mode = "growth"
	ModeValueGrowth Mode = "value-growth"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeValue, ModeGrowth, ModeValueGrowth:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("invalid screening mode %q (want value, growth or value-growth)", s)
	}
}

// Params holds the thresholds for one screening run. All thresholds are
// explicit parameters; the engine reads no global state while scoring, so
// runs are reentrant and testable.
type Params struct {
	MinMarketCap float64
	MaxMarketCap float64

	// Value thresholds (lower is better)
	MaxPE           float64
	MaxPB           float64
	MaxPEG          float64
	MaxDebtToEquity float64

	// Growth/quality thresholds (higher is better), decimal fractions
	MinRevenueGrowth  float64
	MinEarningsGrowth float64
	MinROE            float64
	MinGrossMargin    float64
	MinCurrentRatio   float64

	MaxResults    int
	Workers       int
	SymbolTimeout time.Duration
}

// DefaultParams returns the tuned parameter set for a mode.
func DefaultParams(mode Mode) Params {
	p := Params{
		MinMarketCap:  300e6,
		MaxMarketCap:  5e12,
		Workers:       8,
		SymbolTimeout: 30 * time.Second,
	}

	switch mode {
	case ModeGrowth:
		p.MinRevenueGrowth = 0.15
		p.MinEarningsGrowth = 0.15
		p.MinROE = 0.15
		p.MinGrossMargin = 0.30
		p.MaxResults = 30
	case ModeValueGrowth:
		p.MaxPE = 25
		p.MaxPB = 3.0
		p.MaxPEG = 1.5
		p.MaxDebtToEquity = 1.5
		p.MinRevenueGrowth = 0.10
		p.MinEarningsGrowth = 0.10
		p.MinROE = 0.12
		p.MaxResults = 40
	default: // ModeValue
		p.MaxPE = 15
		p.MaxPB = 1.5
		p.MaxPEG = 1.0
		p.MaxDebtToEquity = 1.0
		p.MinCurrentRatio = 1.5
		p.MaxResults = 50
	}

	return p
}

// Tiered point values: clearing a threshold comfortably is worth more than
// just clearing it. "Comfortably" is 40% inside the threshold.
const (
	criterionMax  = 2.0
	comfortMargin = 0.4
)

// scoreBelow awards points for a value under its threshold. Unavailable
// inputs contribute to neither score nor max; a present but non-positive
// ratio (negative earnings etc.) counts as an applicable failure.
func scoreBelow(v fundamentals.Field, threshold float64) (points, max float64) {
	if !v.Valid || threshold <= 0 {
		return 0, 0
	}
	max = criterionMax
	if v.Value <= 0 {
		return 0, max
	}
	switch {
	case v.Value <= threshold*(1-comfortMargin):
		points = 2
	case v.Value <= threshold:
		points = 1
	}
	return points, max
}

// scoreAbove awards points for a value over its threshold.
func scoreAbove(v fundamentals.Field, threshold float64) (points, max float64) {
	if !v.Valid || threshold <= 0 {
		return 0, 0
	}
	max = criterionMax
	switch {
	case v.Value >= threshold*(1+comfortMargin):
		points = 2
	case v.Value >= threshold:
		points = 1
	}
	return points, max
}

// scoreFundamentals applies the mode rubric to one snapshot, returning the
// achieved score and the achievable maximum given which inputs existed.
func scoreFundamentals(mode Mode, p Params, f *fundamentals.SecurityFundamentals) (score, max float64) {
	add := func(pts, m float64) {
		score += pts
		max += m
	}

	if mode == ModeValue || mode == ModeValueGrowth {
		add(scoreBelow(f.TrailingPE, p.MaxPE))
		add(scoreBelow(f.PriceToBook, p.MaxPB))
		add(scoreBelow(f.PEGRatio, p.MaxPEG))
		add(scoreBelow(f.DebtToEquity, p.MaxDebtToEquity))
		add(scoreAbove(f.CurrentRatio, p.MinCurrentRatio))
	}

	if mode == ModeGrowth || mode == ModeValueGrowth {
		add(scoreAbove(f.RevenueGrowth, p.MinRevenueGrowth))
		add(scoreAbove(f.EarningsGrowth, p.MinEarningsGrowth))
		add(scoreAbove(f.ROE, p.MinROE))
		add(scoreAbove(f.GrossMargin, p.MinGrossMargin))
	}

	return score, max
}
