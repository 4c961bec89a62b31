package valuation

import (
	"fmt"

	"github.com/finscope/finscope/internal/fundamentals"
)

const (
	ddmRequiredRate  = 0.10
	ddmGrowthCap     = 0.08
	ddmDefaultPayout = 0.50
)

// DividendDiscount applies the Gordon growth model to the annual dividend:
// dividend / (required rate - sustainable growth), where sustainable growth
// is ROE * (1 - payout ratio) capped at 8%.
func DividendDiscount(f *fundamentals.SecurityFundamentals) Result {
	dividend := f.DividendRate
	if !dividend.Valid && f.DividendYield.Positive() && f.Price.Positive() {
		dividend = fundamentals.F(f.DividendYield.Value * f.Price.Value)
	}
	if !dividend.Positive() {
		return fail("no dividend data")
	}

	payout := f.PayoutRatio.Or(ddmDefaultPayout)
	growth := f.ROE.Or(0) * (1 - payout)

	// A sustainable growth rate at or above the required rate makes the
	// Gordon denominator non-positive; fail before capping so the caller
	// sees the economically invalid input instead of a capped value.
	if growth >= ddmRequiredRate {
		return fail(fmt.Sprintf("sustainable growth %.1f%% >= required rate %.0f%%", growth*100, ddmRequiredRate*100))
	}
	if growth > ddmGrowthCap {
		growth = ddmGrowthCap
	}
	if growth < 0 {
		growth = 0
	}

	value := dividend.Value / (ddmRequiredRate - growth)

	return ok(value, map[string]interface{}{
		"annual_dividend":    dividend.Value,
		"payout_ratio":       payout,
		"roe":                f.ROE.Or(0),
		"sustainable_growth": growth,
		"required_rate":      ddmRequiredRate,
		"formula":            "dividend / (required rate - sustainable growth)",
	})
}
