package valuation

import (
	"strings"

	"github.com/finscope/finscope/internal/fundamentals"
)

// PEGImplied derives a fair P/E from the fair-PEG-equals-one convention:
// fair P/E = growth rate as a percentage number, fair value = fair P/E * EPS.
func PEGImplied(f *fundamentals.SecurityFundamentals) Result {
	eps := f.EPS()
	if !eps.Positive() {
		return fail("requires positive EPS")
	}
	if !f.EarningsGrowth.Positive() {
		return fail("requires positive earnings growth")
	}

	growthPct := f.EarningsGrowth.Value * 100
	fairPE := 1.0 * growthPct
	value := fairPE * eps.Value

	return ok(value, map[string]interface{}{
		"eps":            eps.Value,
		"growth_percent": growthPct,
		"fair_peg":       1.0,
		"fair_pe":        fairPE,
		"formula":        "fair P/E (= growth %) * EPS",
	})
}

// LynchGrowth is the growth-at-a-reasonable-price variant: the fair P/E is
// the growth percentage, applied to current earnings via price / current P/E.
func LynchGrowth(f *fundamentals.SecurityFundamentals) Result {
	if !f.EarningsGrowth.Positive() {
		return fail("requires positive earnings growth")
	}
	if !f.TrailingPE.Positive() {
		return fail("requires positive trailing P/E")
	}
	if !f.Price.Positive() {
		return fail("requires positive price")
	}

	growthPct := f.EarningsGrowth.Value * 100
	fairPE := growthPct
	value := fairPE * (f.Price.Value / f.TrailingPE.Value)

	return ok(value, map[string]interface{}{
		"growth_percent": growthPct,
		"fair_pe":        fairPE,
		"current_pe":     f.TrailingPE.Value,
		"price":          f.Price.Value,
		"formula":        "fair P/E (= growth %) * (price / current P/E)",
	})
}

const epvCostOfCapital = 0.10
const epvFlatMultiple = 12.0

// EarningsPower values the company on normalized earnings with no growth
// assumption: the lower of a perpetuity value (EPS / cost of capital) and a
// flat 12x multiple.
func EarningsPower(f *fundamentals.SecurityFundamentals) Result {
	trailing := f.EPS()
	if !trailing.Positive() {
		return fail("requires positive trailing EPS")
	}

	normalized := trailing.Value
	if f.ForwardEPS.Positive() {
		normalized = (trailing.Value + f.ForwardEPS.Value) / 2
	}

	perpetuity := normalized / epvCostOfCapital
	flat := normalized * epvFlatMultiple
	value := perpetuity
	if flat < value {
		value = flat
	}

	return ok(value, map[string]interface{}{
		"trailing_eps":    trailing.Value,
		"forward_eps":     f.ForwardEPS.Or(0),
		"normalized_eps":  normalized,
		"cost_of_capital": epvCostOfCapital,
		"perpetuity":      perpetuity,
		"flat_multiple":   flat,
		"formula":         "min(normalized EPS / 10%, normalized EPS * 12)",
	})
}

const assetFairPB = 1.5

// AssetBased computes book value per share, a tangible variant and a
// P/B-implied value, returning the most conservative of the three.
func AssetBased(f *fundamentals.SecurityFundamentals) Result {
	if !f.SharesOutstanding.Positive() {
		return fail("requires shares outstanding")
	}

	shares := f.SharesOutstanding.Value
	bvps := f.BookValuePerShare()
	if !bvps.Valid && f.BalanceSheet != nil && f.BalanceSheet.TotalEquity.Valid {
		bvps = fundamentals.F(f.BalanceSheet.TotalEquity.Value / shares)
	}
	if !bvps.Positive() {
		return fail("requires positive book value")
	}

	tangible := bvps.Value
	if f.BalanceSheet != nil && f.BalanceSheet.IntangibleAssets.Valid {
		tangible = bvps.Value - f.BalanceSheet.IntangibleAssets.Value/shares
	}

	pbImplied := bvps.Value * assetFairPB

	value := bvps.Value
	for _, candidate := range []float64{tangible, pbImplied} {
		if candidate > 0 && candidate < value {
			value = candidate
		}
	}

	return ok(value, map[string]interface{}{
		"book_value_per_share": bvps.Value,
		"tangible_book_value":  tangible,
		"pb_implied":           pbImplied,
		"fair_pb":              assetFairPB,
		"formula":              "min(BVPS, tangible BVPS, BVPS * 1.5)",
	})
}

// sectorPS maps industry keywords to a rough median price-to-sales multiple.
// Checked in order; first keyword contained in the industry string wins.
var sectorPS = []struct {
	keyword  string
	multiple float64
}{
	{"software", 8.0},
	{"semiconductor", 6.0},
	{"biotech", 5.0},
	{"pharma", 4.0},
	{"internet", 5.0},
	{"technology", 4.5},
	{"aerospace", 1.8},
	{"bank", 2.5},
	{"insurance", 1.2},
	{"utilit", 2.0},
	{"telecom", 1.5},
	{"energy", 1.2},
	{"oil", 1.0},
	{"retail", 0.8},
	{"grocery", 0.4},
	{"auto", 0.7},
	{"airline", 0.6},
}

const sectorPSDefault = 2.0

// SectorMultiple applies an industry-matched median P/S multiple to revenue
// per share.
func SectorMultiple(f *fundamentals.SecurityFundamentals) Result {
	if !f.PriceToSales.Positive() {
		return fail("requires positive price/sales")
	}
	rps := f.RevenuePerShare()
	if !rps.Positive() {
		return fail("requires positive revenue per share")
	}

	multiple := sectorPSDefault
	matched := "default"
	industry := strings.ToLower(f.Industry)
	for _, entry := range sectorPS {
		if strings.Contains(industry, entry.keyword) {
			multiple = entry.multiple
			matched = entry.keyword
			break
		}
	}

	value := multiple * rps.Value

	return ok(value, map[string]interface{}{
		"industry":          f.Industry,
		"matched_keyword":   matched,
		"sector_ps":         multiple,
		"current_ps":        f.PriceToSales.Value,
		"revenue_per_share": rps.Value,
		"formula":           "sector median P/S * revenue per share",
	})
}
