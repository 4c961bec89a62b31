package valuation

import (
	"math"

	"github.com/finscope/finscope/internal/fundamentals"
)

// grahamMultiplier is Graham's 22.5 = max P/E of 15 times max P/B of 1.5.
const grahamMultiplier = 22.5

// GrahamNumber computes sqrt(22.5 * EPS * book value per share).
func GrahamNumber(f *fundamentals.SecurityFundamentals) Result {
	eps := f.EPS()
	bvps := f.BookValuePerShare()

	if !eps.Positive() {
		return fail("requires positive EPS")
	}
	if !bvps.Positive() {
		return fail("requires positive book value per share")
	}

	value := math.Sqrt(grahamMultiplier * eps.Value * bvps.Value)

	return ok(value, map[string]interface{}{
		"eps":                  eps.Value,
		"book_value_per_share": bvps.Value,
		"multiplier":           grahamMultiplier,
		"formula":              "sqrt(22.5 * EPS * BVPS)",
	})
}

// NCAV computes Graham's net current asset value per share:
// (current assets - total liabilities) / shares outstanding. Balance-sheet
// line items are preferred; aggregate cash/debt fields are the fallback
// when no statement is available.
func NCAV(f *fundamentals.SecurityFundamentals) Result {
	if !f.SharesOutstanding.Positive() {
		return fail("requires shares outstanding")
	}

	currentAssets := fundamentals.Missing
	totalLiabilities := fundamentals.Missing
	source := "balance_sheet"

	if f.BalanceSheet != nil {
		currentAssets = f.BalanceSheet.CurrentAssets
		totalLiabilities = f.BalanceSheet.TotalLiabilities
	}
	if !currentAssets.Valid || !totalLiabilities.Valid {
		// Aggregate info fields as a rough stand-in.
		currentAssets = f.TotalCash
		totalLiabilities = f.TotalDebt
		source = "aggregate"
	}

	if !currentAssets.Positive() {
		return fail("requires positive current assets")
	}
	if !totalLiabilities.Valid {
		return fail("requires total liabilities")
	}

	value := (currentAssets.Value - totalLiabilities.Value) / f.SharesOutstanding.Value

	return ok(value, map[string]interface{}{
		"current_assets":     currentAssets.Value,
		"total_liabilities":  totalLiabilities.Value,
		"shares_outstanding": f.SharesOutstanding.Value,
		"source":             source,
		"formula":            "(current assets - total liabilities) / shares",
	})
}
