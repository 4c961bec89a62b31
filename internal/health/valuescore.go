package health

import (
	"github.com/finscope/finscope/internal/fundamentals"
)

// ValueCriteria counts how many classic value thresholds a stock clears:
// P/E < 15, P/B < 1.5, D/E < 1.0, current ratio > 1.5, ROE > 15%.
// Criteria whose inputs are unavailable are excluded from both the score
// and the achievable maximum, never counted as failures.
func ValueCriteria(f *fundamentals.SecurityFundamentals) Score {
	type criterion struct {
		name   string
		input  fundamentals.Field
		passes func(v float64) bool
	}

	criteria := []criterion{
		{"pe_below_15", f.TrailingPE, func(v float64) bool { return v > 0 && v < 15 }},
		{"pb_below_1.5", f.PriceToBook, func(v float64) bool { return v > 0 && v < 1.5 }},
		{"de_below_1.0", f.DebtToEquity, func(v float64) bool { return v >= 0 && v < 1.0 }},
		{"current_ratio_above_1.5", f.CurrentRatio, func(v float64) bool { return v > 1.5 }},
		{"roe_above_15pct", f.ROE, func(v float64) bool { return v > 0.15 }},
	}

	met := 0
	applicable := 0
	checks := make([]Check, 0, len(criteria))

	for _, c := range criteria {
		if !c.input.Valid {
			continue
		}
		applicable++
		passed := c.passes(c.input.Value)
		if passed {
			met++
		}
		checks = append(checks, Check{Name: c.name, Passed: passed, Observed: c.input})
	}

	if applicable == 0 {
		return failScore(float64(len(criteria)), "no value criteria inputs available")
	}

	return Score{
		Value:  fundamentals.F(float64(met)),
		Max:    float64(applicable),
		Checks: checks,
	}
}
