package valuation

import (
	"sort"

	"github.com/finscope/finscope/internal/fundamentals"
)

// outlierMultiple discards model outputs wildly above the market price; a
// fair value beyond 5x price says more about missing inputs than the stock.
const outlierMultiple = 5.0

// Summary aggregates the non-failed model outputs for one security.
type Summary struct {
	Mean   fundamentals.Field `json:"mean"`
	Median fundamentals.Field `json:"median"`

	// MarginOfSafety is (mean fair value - price) / mean fair value.
	MarginOfSafety fundamentals.Field `json:"margin_of_safety"`

	// PerModelMoS holds the margin of safety per contributing model.
	PerModelMoS map[string]fundamentals.Field `json:"per_model_margin_of_safety"`

	// Excluded lists models discarded by the outlier rule.
	Excluded []string `json:"excluded"`
	Used     int      `json:"used"`
}

// Summarize collects all successful fair values, drops outliers above
// 5x the current price, and reports mean, median and margins of safety.
func Summarize(price float64, results map[string]Result) Summary {
	summary := Summary{
		PerModelMoS: make(map[string]fundamentals.Field),
		Excluded:    []string{},
	}

	values := make([]float64, 0, len(results))
	for _, m := range Models() {
		r, exists := results[m.Name]
		if !exists || !r.OK() {
			continue
		}
		fv := r.FairValue.Value
		if price > 0 && fv > outlierMultiple*price {
			summary.Excluded = append(summary.Excluded, m.Name)
			continue
		}
		values = append(values, fv)
		summary.PerModelMoS[m.Name] = marginOfSafety(price, fv)
	}

	summary.Used = len(values)
	if len(values) == 0 {
		return summary
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	summary.Mean = fundamentals.F(mean)
	summary.Median = fundamentals.F(median(values))
	summary.MarginOfSafety = marginOfSafety(price, mean)

	return summary
}

func marginOfSafety(price, fairValue float64) fundamentals.Field {
	if fairValue <= 0 {
		return fundamentals.Missing
	}
	return fundamentals.F((fairValue - price) / fairValue)
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
