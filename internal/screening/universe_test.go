package screening

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finscope/finscope/internal/fundamentals"
)

func TestDefaultUniverse(t *testing.T) {
	u := DefaultUniverse()
	require.NotEmpty(t, u)

	seen := make(map[string]bool, len(u))
	for _, e := range u {
		assert.NotEmpty(t, e.Symbol)
		assert.NotEmpty(t, e.Name, "entry %s", e.Symbol)
		assert.Contains(t, []string{MarketUS, MarketEU}, e.Market, "entry %s", e.Symbol)
		assert.False(t, seen[e.Symbol], "duplicate symbol %s", e.Symbol)
		seen[e.Symbol] = true
	}

	assert.Len(t, u.Symbols(), len(u))
	assert.Equal(t, u[0].Symbol, u.Symbols()[0])
}

func TestUniverse_MarketFor(t *testing.T) {
	u := Universe{
		{"AAPL", "Apple", MarketUS},
		{"ASML.AS", "ASML", MarketEU},
	}
	assert.Equal(t, MarketEU, u.MarketFor("ASML.AS"))
	assert.Equal(t, MarketUS, u.MarketFor("AAPL"))
	assert.Equal(t, MarketUS, u.MarketFor("UNKNOWN"), "unknown symbols default to US")
}

func TestCapCategory(t *testing.T) {
	tests := []struct {
		cap  float64
		want string
	}{
		{3e12, "Mega"},
		{200e9, "Mega"},
		{150e9, "Large"},
		{10e9, "Large"},
		{5e9, "Mid"},
		{2e9, "Mid"},
		{800e6, "Small"},
		{300e6, "Small"},
		{100e6, "Micro"},
		{0, "Micro"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CapCategory(tt.cap), "cap=%v", tt.cap)
	}
}

func TestWriteCSV(t *testing.T) {
	candidates := []Candidate{
		{
			Symbol:    "AAPL",
			Name:      "Apple",
			Percent:   85.0,
			MarketCap: fundamentals.F(3e12),
			Fundamentals: &fundamentals.SecurityFundamentals{
				TrailingPE:    fundamentals.F(28.5),
				PriceToBook:   fundamentals.F(45.2),
				ROE:           fundamentals.F(1.2),
				DebtToEquity:  fundamentals.F(1.8),
				DividendYield: fundamentals.F(0.005),
			},
		},
		{
			Symbol:  "MYST",
			Name:    "Mystery Co",
			Percent: 40.0,
			// No market cap, no fundamentals: cells stay empty, not zero.
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, candidates))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{"AAPL", "Apple", "85.0", "3000000000000", "28.50", "45.20", "1.20", "1.80", "0.01"}, rows[1])
	assert.Equal(t, []string{"MYST", "Mystery Co", "40.0", "", "", "", "", "", ""}, rows[2])
}
