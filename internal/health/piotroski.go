package health

import (
	"github.com/finscope/finscope/internal/fundamentals"
)

// Piotroski computes a 0-9 F-score from single-period data: four
// profitability tests, three leverage/liquidity tests and two efficiency
// tests. The share-dilution test cannot be evaluated without a prior
// period, so it is treated as passed and flagged as a simplification.
// Returns a failed score when neither income-statement nor balance-sheet
// style inputs exist at all.
func Piotroski(f *fundamentals.SecurityFundamentals) Score {
	if f.IncomeStatement == nil && f.BalanceSheet == nil {
		return failScore(9, "no income statement or balance sheet data")
	}

	netIncome := fundamentals.Missing
	grossMargin := f.GrossMargin
	if f.IncomeStatement != nil {
		netIncome = f.IncomeStatement.NetIncome
		if !grossMargin.Valid && f.IncomeStatement.GrossProfit.Valid && f.IncomeStatement.Revenue.Positive() {
			grossMargin = fundamentals.F(f.IncomeStatement.GrossProfit.Value / f.IncomeStatement.Revenue.Value)
		}
	}

	ocf := fundamentals.Missing
	if f.CashFlow != nil {
		ocf = f.CashFlow.OperatingCashFlow
	}

	ocfAboveNI := fundamentals.Missing
	if ocf.Valid && netIncome.Valid {
		ocfAboveNI = fundamentals.F(ocf.Value - netIncome.Value)
	}

	assetTurnover := fundamentals.Missing
	if f.BalanceSheet != nil && f.BalanceSheet.TotalAssets.Positive() {
		revenue := f.TotalRevenue
		if f.IncomeStatement != nil && f.IncomeStatement.Revenue.Valid {
			revenue = f.IncomeStatement.Revenue
		}
		if revenue.Valid {
			assetTurnover = fundamentals.F(revenue.Value / f.BalanceSheet.TotalAssets.Value)
		}
	}

	type test struct {
		name   string
		input  fundamentals.Field
		passes func(v float64) bool
		note   string
	}

	tests := []test{
		// Profitability
		{"positive_net_income", netIncome, func(v float64) bool { return v > 0 }, ""},
		{"positive_roa", f.ROA, func(v float64) bool { return v > 0 }, ""},
		{"positive_operating_cash_flow", ocf, func(v float64) bool { return v > 0 }, ""},
		{"ocf_exceeds_net_income", ocfAboveNI, func(v float64) bool { return v > 0 }, ""},
		// Leverage / liquidity
		{"low_leverage", f.DebtToEquity, func(v float64) bool { return v >= 0 && v < 0.4 }, ""},
		{"current_ratio_above_1.5", f.CurrentRatio, func(v float64) bool { return v > 1.5 }, ""},
		{"no_share_dilution", fundamentals.F(1), func(v float64) bool { return true },
			"single-period simplification: prior share count unavailable, assumed no dilution"},
		// Efficiency
		{"gross_margin_above_30pct", grossMargin, func(v float64) bool { return v > 0.30 }, ""},
		{"asset_turnover_above_0.5", assetTurnover, func(v float64) bool { return v > 0.5 }, ""},
	}

	score := 0
	checks := make([]Check, 0, len(tests))
	for _, tc := range tests {
		passed := tc.input.Valid && tc.passes(tc.input.Value)
		if passed {
			score++
		}
		check := Check{Name: tc.name, Passed: passed, Observed: tc.input, Note: tc.note}
		if !tc.input.Valid {
			check.Note = "input unavailable"
		}
		checks = append(checks, check)
	}

	return Score{
		Value:  fundamentals.F(float64(score)),
		Max:    9,
		Checks: checks,
	}
}
