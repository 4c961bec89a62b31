package screening

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/finscope/finscope/internal/fundamentals"
)

// Candidate is one row of screening output. The raw fundamentals are
// retained for export and drill-down display.
type Candidate struct {
	Symbol      string             `json:"symbol"`
	Name        string             `json:"name"`
	Price       fundamentals.Field `json:"price"`
	MarketCap   fundamentals.Field `json:"market_cap"`
	Score       float64            `json:"score"`
	MaxScore    float64            `json:"max_score"`
	Percent     float64            `json:"percent"`
	Market      string             `json:"market"`
	CapCategory string             `json:"cap_category"`

	Fundamentals *fundamentals.SecurityFundamentals `json:"fundamentals"`

	// universeIndex keeps the sort stable across parallel runs.
	universeIndex int
}

// csvHeader is the flat tabular export contract; consumers depend on these
// columns in this order.
var csvHeader = []string{
	"symbol", "name", "score", "market_cap", "pe", "pb", "roe", "de", "dividend_yield",
}

// WriteCSV renders candidates in the flat tabular export shape.
func WriteCSV(w io.Writer, candidates []Candidate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, c := range candidates {
		record := []string{
			c.Symbol,
			c.Name,
			fmt.Sprintf("%.1f", c.Percent),
			csvField(c.MarketCap, "%.0f"),
			csvRatio(c.Fundamentals, func(f *fundamentals.SecurityFundamentals) fundamentals.Field { return f.TrailingPE }),
			csvRatio(c.Fundamentals, func(f *fundamentals.SecurityFundamentals) fundamentals.Field { return f.PriceToBook }),
			csvRatio(c.Fundamentals, func(f *fundamentals.SecurityFundamentals) fundamentals.Field { return f.ROE }),
			csvRatio(c.Fundamentals, func(f *fundamentals.SecurityFundamentals) fundamentals.Field { return f.DebtToEquity }),
			csvRatio(c.Fundamentals, func(f *fundamentals.SecurityFundamentals) fundamentals.Field { return f.DividendYield }),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %s: %w", c.Symbol, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func csvField(f fundamentals.Field, format string) string {
	if !f.Valid {
		return ""
	}
	return fmt.Sprintf(format, f.Value)
}

func csvRatio(f *fundamentals.SecurityFundamentals, pick func(*fundamentals.SecurityFundamentals) fundamentals.Field) string {
	if f == nil {
		return ""
	}
	return csvField(pick(f), "%.2f")
}
