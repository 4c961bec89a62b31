// Package valuation implements the fair-value model library. Every model is
// a pure function over a fundamentals snapshot: it either produces a
// positive fair value per share with a full breakdown of intermediates, or
// an explicit failure with a human-readable reason. Models never panic and
// never return negative values; bad upstream data is an expected input.
package valuation

import (
	"github.com/finscope/finscope/internal/fundamentals"
)

// Result is the output of one valuation model. FairValue is absent when the
// inputs were insufficient or economically invalid; Breakdown then carries
// an "error" reason. On success Breakdown holds every intermediate quantity
// needed to reproduce the number by hand plus a "formula" string.
type Result struct {
	FairValue fundamentals.Field     `json:"fair_value"`
	Breakdown map[string]interface{} `json:"breakdown"`
}

// OK reports whether the model produced a usable fair value.
func (r Result) OK() bool {
	return r.FairValue.Positive()
}

// fail builds the standard insufficient-data result.
func fail(reason string) Result {
	return Result{
		FairValue: fundamentals.Missing,
		Breakdown: map[string]interface{}{"error": reason},
	}
}

// ok builds a successful result, guarding against non-positive output.
func ok(value float64, breakdown map[string]interface{}) Result {
	if value <= 0 {
		breakdown["error"] = "model produced a non-positive value"
		return Result{FairValue: fundamentals.Missing, Breakdown: breakdown}
	}
	return Result{FairValue: fundamentals.F(value), Breakdown: breakdown}
}

// Model pairs a stable name with the model function.
type Model struct {
	Name  string
	Label string
	Fn    func(*fundamentals.SecurityFundamentals) Result
}

// Model name constants, used as map keys in API responses.
const (
	NameDiscountedEarnings = "discounted_earnings"
	NameGrahamNumber       = "graham_number"
	NameDividendDiscount   = "dividend_discount"
	NamePEGImplied         = "peg_implied"
	NameAssetBased         = "asset_based"
	NameEarningsPower      = "earnings_power"
	NameLynchGrowth        = "lynch_growth"
	NameSectorMultiple     = "sector_multiple"
	NameProjectedFCF       = "projected_fcf"
	NameNCAV               = "ncav"
)

// Models returns the ordered model registry.
func Models() []Model {
	return []Model{
		{NameDiscountedEarnings, "Discounted Earnings", DiscountedEarnings},
		{NameGrahamNumber, "Graham Number", GrahamNumber},
		{NameDividendDiscount, "Dividend Discount", DividendDiscount},
		{NamePEGImplied, "PEG Implied", PEGImplied},
		{NameAssetBased, "Asset Based", AssetBased},
		{NameEarningsPower, "Earnings Power Value", EarningsPower},
		{NameLynchGrowth, "Lynch Growth", LynchGrowth},
		{NameSectorMultiple, "Sector P/S Multiple", SectorMultiple},
		{NameProjectedFCF, "Projected FCF", ProjectedFCF},
		{NameNCAV, "Net Current Asset Value", NCAV},
	}
}

// RunAll evaluates every model against one snapshot.
func RunAll(f *fundamentals.SecurityFundamentals) map[string]Result {
	out := make(map[string]Result, len(Models()))
	for _, m := range Models() {
		out[m.Name] = m.Fn(f)
	}
	return out
}
