package health

import (
	"github.com/finscope/finscope/internal/fundamentals"
)

// beneishThreshold separates likely manipulators (above) from non-
// manipulators (below) in the original eight-factor model.
const beneishThreshold = -2.22

// Assumed prior-period baselines for the single-period approximation. The
// true M-score compares two fiscal years; the provider only supplies the
// latest period, so year-over-year indices are approximated against these
// typical baselines and three factors are pinned at neutral.
const (
	beneishBaselineDSR      = 0.10 // receivables / sales
	beneishBaselineGM       = 0.38 // gross margin
	beneishBaselineAQ       = 0.50 // non-current assets / total assets
	beneishBaselineLeverage = 0.45 // liabilities / assets
)

// Zone labels for the Beneish classification.
const (
	ZoneHighRisk = "HighRisk"
	ZoneLowRisk  = "LowRisk"
)

// BeneishM computes a simplified single-period approximation of the
// Beneish M-score. SGI, DEPI and SGAI are fixed at 1.0 (neutral) because
// they require prior-period statements the provider does not supply; the
// remaining factors are indexed against assumed baselines. The output is
// an approximation and is labelled as such in its checks.
func BeneishM(f *fundamentals.SecurityFundamentals) Score {
	if f.BalanceSheet == nil || !f.BalanceSheet.TotalAssets.Positive() {
		return failScore(0, "requires balance sheet with positive total assets")
	}

	bs := f.BalanceSheet
	assets := bs.TotalAssets.Value

	revenue := f.TotalRevenue
	if f.IncomeStatement != nil && f.IncomeStatement.Revenue.Valid {
		revenue = f.IncomeStatement.Revenue
	}

	// DSRI: days-sales-in-receivables index vs an assumed 10% baseline.
	dsri := 1.0
	if bs.Receivables.Valid && revenue.Positive() {
		dsri = (bs.Receivables.Value / revenue.Value) / beneishBaselineDSR
	}

	// GMI: baseline gross margin over current (deteriorating margin > 1).
	gmi := 1.0
	if f.GrossMargin.Positive() {
		gmi = beneishBaselineGM / f.GrossMargin.Value
	}

	// AQI: share of soft assets vs an assumed 50% baseline.
	aqi := 1.0
	if bs.CurrentAssets.Valid {
		nonCurrent := 1 - bs.CurrentAssets.Value/assets
		aqi = nonCurrent / beneishBaselineAQ
	}

	// Pinned factors: no prior period available.
	sgi := 1.0
	depi := 1.0
	sgai := 1.0

	// LVGI: leverage index vs an assumed 45% baseline.
	lvgi := 1.0
	if bs.TotalLiabilities.Valid {
		lvgi = (bs.TotalLiabilities.Value / assets) / beneishBaselineLeverage
	}

	// TATA: total accruals to total assets.
	tata := 0.0
	if f.IncomeStatement != nil && f.CashFlow != nil &&
		f.IncomeStatement.NetIncome.Valid && f.CashFlow.OperatingCashFlow.Valid {
		tata = (f.IncomeStatement.NetIncome.Value - f.CashFlow.OperatingCashFlow.Value) / assets
	}

	m := -4.84 + 0.92*dsri + 0.528*gmi + 0.404*aqi + 0.892*sgi +
		0.115*depi - 0.172*sgai + 4.679*tata - 0.327*lvgi

	zone := ZoneLowRisk
	if m > beneishThreshold {
		zone = ZoneHighRisk
	}

	return Score{
		Value: fundamentals.F(m),
		Zone:  zone,
		Checks: []Check{
			{Name: "dsri", Passed: dsri <= 1.2, Observed: fundamentals.F(dsri)},
			{Name: "gmi", Passed: gmi <= 1.2, Observed: fundamentals.F(gmi)},
			{Name: "aqi", Passed: aqi <= 1.2, Observed: fundamentals.F(aqi)},
			{Name: "sgi", Passed: true, Observed: fundamentals.F(sgi), Note: "pinned: prior-period sales unavailable"},
			{Name: "depi", Passed: true, Observed: fundamentals.F(depi), Note: "pinned: prior-period depreciation unavailable"},
			{Name: "sgai", Passed: true, Observed: fundamentals.F(sgai), Note: "pinned: prior-period SG&A unavailable"},
			{Name: "lvgi", Passed: lvgi <= 1.2, Observed: fundamentals.F(lvgi)},
			{Name: "tata", Passed: tata <= 0, Observed: fundamentals.F(tata)},
			{Name: "approximation", Passed: true, Observed: fundamentals.Missing,
				Note: "single-period approximation of the eight-factor model"},
		},
	}
}
