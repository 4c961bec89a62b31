package valuation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finscope/finscope/internal/fundamentals"
)

// snapshot builds a reasonably complete fundamentals snapshot that every
// model can value, for tests that tweak a single field.
func snapshot() *fundamentals.SecurityFundamentals {
	return &fundamentals.SecurityFundamentals{
		Symbol:            "TEST",
		Industry:          "Software - Infrastructure",
		Price:             F(100),
		MarketCap:         F(50e9),
		TrailingPE:        F(20),
		ForwardPE:         F(18),
		PriceToBook:       F(4),
		PriceToSales:      F(5),
		TrailingEPS:       F(5),
		ForwardEPS:        F(5.5),
		BookValue:         F(25),
		ROE:               F(0.15),
		EarningsGrowth:    F(0.08),
		RevenueGrowth:     F(0.06),
		DividendYield:     F(0.02),
		PayoutRatio:       F(0.40),
		DividendRate:      F(2),
		FreeCashFlow:      F(4e9),
		SharesOutstanding: F(500e6),
		TotalRevenue:      F(10e9),
		TotalCash:         F(8e9),
		TotalDebt:         F(3e9),
	}
}

func F(v float64) fundamentals.Field { return fundamentals.F(v) }

func TestGrahamNumber(t *testing.T) {
	f := &fundamentals.SecurityFundamentals{TrailingEPS: F(4), BookValue: F(25)}

	r := GrahamNumber(f)
	require.True(t, r.OK())
	assert.InDelta(t, math.Sqrt(22.5*4*25), r.FairValue.Value, 1e-9) // 47.43
	assert.Equal(t, "sqrt(22.5 * EPS * BVPS)", r.Breakdown["formula"])
}

func TestGrahamNumber_DerivesInputs(t *testing.T) {
	// No direct EPS or BVPS; both derivable from price and multiples.
	f := &fundamentals.SecurityFundamentals{Price: F(100), TrailingPE: F(25), PriceToBook: F(4)}

	r := GrahamNumber(f)
	require.True(t, r.OK())
	assert.InDelta(t, math.Sqrt(22.5*4*25), r.FairValue.Value, 1e-9)
}

func TestPEGImplied(t *testing.T) {
	f := &fundamentals.SecurityFundamentals{TrailingEPS: F(5), EarningsGrowth: F(0.08)}

	r := PEGImplied(f)
	require.True(t, r.OK())
	assert.InDelta(t, 40.0, r.FairValue.Value, 1e-9, "fair P/E 8 times EPS 5")
}

func TestLynchGrowth(t *testing.T) {
	f := &fundamentals.SecurityFundamentals{Price: F(100), TrailingPE: F(20), EarningsGrowth: F(0.15)}

	r := LynchGrowth(f)
	require.True(t, r.OK())
	assert.InDelta(t, 15*(100.0/20.0), r.FairValue.Value, 1e-9)
}

func TestDividendDiscount(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*fundamentals.SecurityFundamentals)
		wantOK bool
		want   float64
	}{
		{
			name:   "normal case",
			mutate: func(f *fundamentals.SecurityFundamentals) {},
			wantOK: true,
			// growth = 0.15 * (1 - 0.40) = 0.09, capped to 0.08
			want: 2.0 / (0.10 - 0.08),
		},
		{
			name: "dividend derived from yield",
			mutate: func(f *fundamentals.SecurityFundamentals) {
				f.DividendRate = fundamentals.Missing
			},
			wantOK: true,
			want:   (0.02 * 100) / (0.10 - 0.08),
		},
		{
			name: "sustainable growth at required rate fails",
			mutate: func(f *fundamentals.SecurityFundamentals) {
				f.ROE = F(0.25)
				f.PayoutRatio = F(0.50) // growth 0.125 >= 0.10
			},
			wantOK: false,
		},
		{
			name: "negative growth clamped to zero",
			mutate: func(f *fundamentals.SecurityFundamentals) {
				f.ROE = F(-0.10)
			},
			wantOK: true,
			want:   2.0 / 0.10,
		},
		{
			name: "no dividend data",
			mutate: func(f *fundamentals.SecurityFundamentals) {
				f.DividendRate = fundamentals.Missing
				f.DividendYield = fundamentals.Missing
			},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := snapshot()
			tt.mutate(f)
			r := DividendDiscount(f)
			assert.Equal(t, tt.wantOK, r.OK())
			if tt.wantOK {
				assert.InDelta(t, tt.want, r.FairValue.Value, 1e-9)
			} else {
				assert.Contains(t, r.Breakdown, "error")
			}
		})
	}
}

func TestDiscountedEarnings(t *testing.T) {
	f := &fundamentals.SecurityFundamentals{TrailingEPS: F(1), EarningsGrowth: F(0)}

	r := DiscountedEarnings(f)
	require.True(t, r.OK())

	// Zero growth: 10-year annuity of 1 at 10% plus discounted terminal
	// value 1*1.03/0.07 / 1.1^10.
	annuity := (1 - math.Pow(1.1, -10)) / 0.10
	terminal := (1.03 / 0.07) / math.Pow(1.1, 10)
	assert.InDelta(t, annuity+terminal, r.FairValue.Value, 1e-9)
}

func TestDiscountedEarnings_DefaultGrowth(t *testing.T) {
	f := &fundamentals.SecurityFundamentals{TrailingEPS: F(3)}

	r := DiscountedEarnings(f)
	require.True(t, r.OK())
	assert.InDelta(t, 0.05, r.Breakdown["growth_rate"], 1e-9)
}

func TestProjectedFCF(t *testing.T) {
	f := snapshot()
	r := ProjectedFCF(f)
	require.True(t, r.OK())
	assert.InDelta(t, 8.0, r.Breakdown["fcf_per_share"], 1e-9)

	f.SharesOutstanding = fundamentals.Missing
	assert.False(t, ProjectedFCF(f).OK())
}

func TestEarningsPower_TakesConservativeSide(t *testing.T) {
	// normalized = (5 + 5.5) / 2 = 5.25; perpetuity 52.5, flat 63.
	r := EarningsPower(snapshot())
	require.True(t, r.OK())
	assert.InDelta(t, 52.5, r.FairValue.Value, 1e-9)
}

func TestAssetBased(t *testing.T) {
	f := snapshot()
	f.BalanceSheet = &fundamentals.BalanceSheet{IntangibleAssets: F(2.5e9)}

	r := AssetBased(f)
	require.True(t, r.OK())
	// BVPS 25, tangible 25 - 2.5e9/500e6 = 20, P/B implied 37.5.
	assert.InDelta(t, 20.0, r.FairValue.Value, 1e-9)
}

func TestNCAV(t *testing.T) {
	f := &fundamentals.SecurityFundamentals{
		SharesOutstanding: F(10e6),
		BalanceSheet: &fundamentals.BalanceSheet{
			CurrentAssets:    F(500e6),
			TotalLiabilities: F(200e6),
		},
	}

	r := NCAV(f)
	require.True(t, r.OK())
	assert.InDelta(t, 30.0, r.FairValue.Value, 1e-9)
	assert.Equal(t, "balance_sheet", r.Breakdown["source"])
}

func TestNCAV_AggregateFallback(t *testing.T) {
	f := &fundamentals.SecurityFundamentals{
		SharesOutstanding: F(10e6),
		TotalCash:         F(400e6),
		TotalDebt:         F(100e6),
	}

	r := NCAV(f)
	require.True(t, r.OK())
	assert.InDelta(t, 30.0, r.FairValue.Value, 1e-9)
	assert.Equal(t, "aggregate", r.Breakdown["source"])
}

func TestSectorMultiple(t *testing.T) {
	f := snapshot()
	r := SectorMultiple(f)
	require.True(t, r.OK())
	// Software keyword: 8x P/S on revenue per share of 20.
	assert.InDelta(t, 160.0, r.FairValue.Value, 1e-9)
	assert.Equal(t, "software", r.Breakdown["matched_keyword"])

	f.Industry = "Something Unrecognized"
	r = SectorMultiple(f)
	require.True(t, r.OK())
	assert.InDelta(t, 40.0, r.FairValue.Value, 1e-9)
	assert.Equal(t, "default", r.Breakdown["matched_keyword"])
}

func TestModels_EmptySnapshotNeverPanics(t *testing.T) {
	empty := &fundamentals.SecurityFundamentals{}
	for _, m := range Models() {
		t.Run(m.Name, func(t *testing.T) {
			r := m.Fn(empty)
			assert.False(t, r.OK(), "empty snapshot must not produce a value")
			assert.Contains(t, r.Breakdown, "error")
		})
	}
}

func TestModels_NeverNegative(t *testing.T) {
	// Deeply negative inputs must yield explicit failures, not negative
	// fair values.
	f := &fundamentals.SecurityFundamentals{
		Price:             F(10),
		TrailingEPS:       F(-4),
		BookValue:         F(-2),
		EarningsGrowth:    F(-0.5),
		SharesOutstanding: F(1e6),
		TotalCash:         F(1e6),
		TotalDebt:         F(50e6),
		FreeCashFlow:      F(-5e6),
	}

	for _, m := range Models() {
		r := m.Fn(f)
		if r.FairValue.Valid {
			assert.Greater(t, r.FairValue.Value, 0.0, m.Name)
		}
	}
}

func TestSummarize_OutlierRule(t *testing.T) {
	results := map[string]Result{
		NameGrahamNumber:     {FairValue: F(90), Breakdown: map[string]interface{}{}},
		NameDividendDiscount: {FairValue: F(95), Breakdown: map[string]interface{}{}},
		NameEarningsPower:    {FairValue: F(105), Breakdown: map[string]interface{}{}},
		NamePEGImplied:       {FairValue: F(600), Breakdown: map[string]interface{}{}}, // > 5x price
		NameNCAV:             fail("requires shares outstanding"),
	}

	s := Summarize(100, results)

	assert.Equal(t, 3, s.Used)
	assert.Equal(t, []string{NamePEGImplied}, s.Excluded)
	assert.InDelta(t, (90+95+105)/3.0, s.Mean.Value, 1e-9)
	assert.InDelta(t, 95.0, s.Median.Value, 1e-9)
	assert.InDelta(t, (s.Mean.Value-100)/s.Mean.Value, s.MarginOfSafety.Value, 1e-9)
	assert.Len(t, s.PerModelMoS, 3)
}

func TestSummarize_NoUsableModels(t *testing.T) {
	s := Summarize(100, map[string]Result{NameGrahamNumber: fail("x")})
	assert.Equal(t, 0, s.Used)
	assert.False(t, s.Mean.Valid)
	assert.False(t, s.MarginOfSafety.Valid)
}

func TestSummarize_EvenCountMedian(t *testing.T) {
	results := map[string]Result{
		NameGrahamNumber:  {FairValue: F(80), Breakdown: map[string]interface{}{}},
		NameEarningsPower: {FairValue: F(120), Breakdown: map[string]interface{}{}},
	}
	s := Summarize(100, results)
	assert.InDelta(t, 100.0, s.Median.Value, 1e-9)
}
