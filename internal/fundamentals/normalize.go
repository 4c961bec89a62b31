package fundamentals

// AsFraction normalizes a percentage-like field to a decimal fraction.
// Upstream data inconsistently supplies either fractions (0.15) or
// percentages (15) for the same field depending on the endpoint that
// produced it, so every percentage-like value passes through here exactly
// once, at the ingestion boundary.
//
// The cutoff is |v| > 1: anything beyond one hundred percent is assumed to
// be a percentage. A genuine fraction above 1.0 (growth over 100%) is
// therefore read as a percentage; the screening thresholds were tuned
// against this convention, so it is kept deliberately.
func AsFraction(f Field) Field {
	if !f.Valid {
		return f
	}
	v := f.Value
	if v > 1.0 || v < -1.0 {
		return F(v / 100.0)
	}
	return f
}

// AsPercent renders a decimal-fraction field as a percentage number.
func AsPercent(f Field) Field {
	if !f.Valid {
		return f
	}
	return F(f.Value * 100.0)
}

// Normalize applies AsFraction to every percentage-like field of a
// snapshot. Called once by the provider after assembling the struct.
func Normalize(f *SecurityFundamentals) {
	f.ROE = AsFraction(f.ROE)
	f.ROA = AsFraction(f.ROA)
	f.OperatingMargin = AsFraction(f.OperatingMargin)
	f.GrossMargin = AsFraction(f.GrossMargin)
	f.RevenueGrowth = AsFraction(f.RevenueGrowth)
	f.EarningsGrowth = AsFraction(f.EarningsGrowth)
	f.DividendYield = AsFraction(f.DividendYield)
	f.PayoutRatio = AsFraction(f.PayoutRatio)

	// Upstream reports debt/equity as a percentage (e.g. 150 for 1.5x)
	// on some endpoints and a plain ratio on others. Ratios above 10x
	// are implausible for listed equities, so treat those as percentages.
	if f.DebtToEquity.Valid && f.DebtToEquity.Value > 10 {
		f.DebtToEquity = F(f.DebtToEquity.Value / 100.0)
	}
}
