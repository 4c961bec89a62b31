package valuation

import (
	"fmt"
	"math"

	"github.com/finscope/finscope/internal/fundamentals"
)

// Shared discounted-cash-flow constants. Both DCF-style models project ten
// periods, discount at 10% and close with a 3% Gordon terminal value.
const (
	dcfHorizon        = 10
	dcfDiscountRate   = 0.10
	dcfTerminalGrowth = 0.03
	dcfDefaultGrowth  = 0.05
)

// DiscountedEarnings projects trailing EPS forward at the reported earnings
// growth rate, discounts each period at 10% and adds a Gordon-growth
// terminal value.
func DiscountedEarnings(f *fundamentals.SecurityFundamentals) Result {
	eps := f.EPS()
	if !eps.Positive() {
		return fail("requires positive trailing EPS")
	}

	growth := f.EarningsGrowth.Or(dcfDefaultGrowth)
	value, pvSum, terminalPV := discountSeries(eps.Value, growth)

	return ok(value, map[string]interface{}{
		"eps":             eps.Value,
		"growth_rate":     growth,
		"discount_rate":   dcfDiscountRate,
		"terminal_growth": dcfTerminalGrowth,
		"horizon":         dcfHorizon,
		"pv_of_earnings":  pvSum,
		"pv_of_terminal":  terminalPV,
		"formula":         fmt.Sprintf("sum(EPS*(1+%.2f)^t / (1+%.2f)^t, t=1..%d) + terminal", growth, dcfDiscountRate, dcfHorizon),
	})
}

// ProjectedFCF projects free cash flow per share forward at the revenue
// growth rate (5% default when unreported), with the same discounting and
// terminal value treatment as DiscountedEarnings.
func ProjectedFCF(f *fundamentals.SecurityFundamentals) Result {
	if !f.SharesOutstanding.Positive() {
		return fail("requires shares outstanding")
	}
	fcfPS := f.FreeCashFlowPerShare()
	if !fcfPS.Positive() {
		return fail("requires positive free cash flow")
	}

	growth := f.RevenueGrowth.Or(dcfDefaultGrowth)
	value, pvSum, terminalPV := discountSeries(fcfPS.Value, growth)

	return ok(value, map[string]interface{}{
		"fcf_per_share":   fcfPS.Value,
		"growth_rate":     growth,
		"discount_rate":   dcfDiscountRate,
		"terminal_growth": dcfTerminalGrowth,
		"horizon":         dcfHorizon,
		"pv_of_fcf":       pvSum,
		"pv_of_terminal":  terminalPV,
		"formula":         fmt.Sprintf("sum(FCF*(1+%.2f)^t / (1+%.2f)^t, t=1..%d) + terminal", growth, dcfDiscountRate, dcfHorizon),
	})
}

// discountSeries runs the shared projection: per-period present values over
// the horizon plus a discounted Gordon terminal value. The terminal growth
// constant is strictly below the discount rate, so the Gordon denominator
// is always positive.
func discountSeries(base, growth float64) (total, pvSum, terminalPV float64) {
	projected := base
	for t := 1; t <= dcfHorizon; t++ {
		projected = base * math.Pow(1+growth, float64(t))
		pvSum += projected / math.Pow(1+dcfDiscountRate, float64(t))
	}

	terminal := projected * (1 + dcfTerminalGrowth) / (dcfDiscountRate - dcfTerminalGrowth)
	terminalPV = terminal / math.Pow(1+dcfDiscountRate, dcfHorizon)

	return pvSum + terminalPV, pvSum, terminalPV
}
