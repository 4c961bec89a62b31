package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/finscope/finscope/internal/fundamentals"
)

// scrapeKeyStatistics pulls fundamental ratios out of the key-statistics
// HTML page. Last-resort fallback: the JSON API intermittently rejects
// unauthenticated clients, while the HTML page keeps serving the same
// numbers in label/value table rows.
func (c *Client) scrapeKeyStatistics(ctx context.Context, symbol string, f *fundamentals.SecurityFundamentals) error {
	u := fmt.Sprintf("%s/quote/%s/key-statistics", c.scrapeBaseURL, url.PathEscape(symbol))

	resp, err := c.http.Get(ctx, u)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("key-statistics page status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return fmt.Errorf("parse key-statistics page: %w", err)
	}

	targets := map[string]*fundamentals.Field{
		"trailing p/e":                  &f.TrailingPE,
		"forward p/e":                   &f.ForwardPE,
		"price/book":                    &f.PriceToBook,
		"price/sales":                   &f.PriceToSales,
		"peg ratio":                     &f.PEGRatio,
		"market cap":                    &f.MarketCap,
		"shares outstanding":            &f.SharesOutstanding,
		"book value per share":          &f.BookValue,
		"diluted eps":                   &f.TrailingEPS,
		"return on equity":              &f.ROE,
		"return on assets":              &f.ROA,
		"total debt/equity":             &f.DebtToEquity,
		"current ratio":                 &f.CurrentRatio,
		"forward annual dividend yield": &f.DividendYield,
		"payout ratio":                  &f.PayoutRatio,
		"levered free cash flow":        &f.FreeCashFlow,
		"revenue":                       &f.TotalRevenue,
	}

	found := 0
	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		label := strings.ToLower(strings.TrimSpace(cells.First().Text()))
		value := strings.TrimSpace(cells.Last().Text())

		for key, target := range targets {
			if !strings.HasPrefix(label, key) {
				continue
			}
			if parsed, ok := parseStatValue(value); ok && !target.Valid {
				*target = parsed
				found++
			}
			break
		}
	})

	if found == 0 {
		return fmt.Errorf("no fundamental rows recognized")
	}

	return nil
}

// parseStatValue parses display values like "1.23", "15.3%", "4.5B" or
// "N/A" into a Field. "N/A" and dashes are absent, not zero.
func parseStatValue(s string) (fundamentals.Field, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "N/A" || s == "--" || s == "-" {
		return fundamentals.Missing, false
	}

	multiplier := 1.0
	switch {
	case strings.HasSuffix(s, "%"):
		s = strings.TrimSuffix(s, "%")
		// Kept as a percentage number; normalization converts it later.
	case strings.HasSuffix(s, "T"):
		multiplier = 1e12
		s = strings.TrimSuffix(s, "T")
	case strings.HasSuffix(s, "B"):
		multiplier = 1e9
		s = strings.TrimSuffix(s, "B")
	case strings.HasSuffix(s, "M"):
		multiplier = 1e6
		s = strings.TrimSuffix(s, "M")
	case strings.HasSuffix(s, "k"):
		multiplier = 1e3
		s = strings.TrimSuffix(s, "k")
	}

	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fundamentals.Missing, false
	}

	return fundamentals.F(v * multiplier), true
}
