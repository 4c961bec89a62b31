package health

import (
	"github.com/finscope/finscope/internal/fundamentals"
)

// Altman Z zone boundaries.
const (
	altmanSafe     = 2.99
	altmanDistress = 1.8
)

// Zone labels for the Altman Z classification.
const (
	ZoneSafe     = "Safe"
	ZoneGrey     = "Grey"
	ZoneDistress = "Distress"
)

// AltmanZ computes the classic bankruptcy-risk composite
// 1.2A + 1.4B + 3.3C + 0.6D + 1.0E. Balance-sheet line items are used when
// available, with aggregate info fields as fallbacks for individual terms.
// Fails only when total assets is unavailable or non-positive.
func AltmanZ(f *fundamentals.SecurityFundamentals) Score {
	totalAssets := fundamentals.Missing
	if f.BalanceSheet != nil {
		totalAssets = f.BalanceSheet.TotalAssets
	}
	if !totalAssets.Positive() {
		return failScore(0, "requires positive total assets")
	}
	assets := totalAssets.Value

	bs := f.BalanceSheet

	// A: working capital / total assets
	a := 0.0
	if bs.CurrentAssets.Valid && bs.CurrentLiabilities.Valid {
		a = (bs.CurrentAssets.Value - bs.CurrentLiabilities.Value) / assets
	}

	// B: retained earnings / total assets
	b := bs.RetainedEarnings.Or(0) / assets

	// C: EBIT / total assets, falling back to operating margin * revenue
	c := 0.0
	switch {
	case f.IncomeStatement != nil && f.IncomeStatement.OperatingIncome.Valid:
		c = f.IncomeStatement.OperatingIncome.Value / assets
	case f.OperatingMargin.Valid && f.TotalRevenue.Valid:
		c = f.OperatingMargin.Value * f.TotalRevenue.Value / assets
	}

	// D: market cap / total liabilities, falling back to aggregate debt
	d := 0.0
	liabilities := bs.TotalLiabilities
	if !liabilities.Valid {
		liabilities = f.TotalDebt
	}
	if f.MarketCap.Valid && liabilities.Positive() {
		d = f.MarketCap.Value / liabilities.Value
	}

	// E: sales / total assets
	e := 0.0
	revenue := f.TotalRevenue
	if f.IncomeStatement != nil && f.IncomeStatement.Revenue.Valid {
		revenue = f.IncomeStatement.Revenue
	}
	if revenue.Valid {
		e = revenue.Value / assets
	}

	z := 1.2*a + 1.4*b + 3.3*c + 0.6*d + 1.0*e

	return Score{
		Value: fundamentals.F(z),
		Zone:  altmanZone(z),
		Checks: []Check{
			{Name: "working_capital_to_assets", Passed: a > 0, Observed: fundamentals.F(a)},
			{Name: "retained_earnings_to_assets", Passed: b > 0, Observed: fundamentals.F(b)},
			{Name: "ebit_to_assets", Passed: c > 0, Observed: fundamentals.F(c)},
			{Name: "market_cap_to_liabilities", Passed: d > 1, Observed: fundamentals.F(d)},
			{Name: "sales_to_assets", Passed: e > 0.5, Observed: fundamentals.F(e)},
		},
	}
}

// altmanZone classifies a Z value: Safe above 2.99, Distress at or below
// 1.8, Grey between.
func altmanZone(z float64) string {
	switch {
	case z > altmanSafe:
		return ZoneSafe
	case z > altmanDistress:
		return ZoneGrey
	default:
		return ZoneDistress
	}
}
