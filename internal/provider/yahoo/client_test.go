package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finscope/finscope/internal/fundamentals"
	"github.com/finscope/finscope/internal/provider"
	"github.com/finscope/finscope/pkg/config"
	"github.com/finscope/finscope/pkg/logger"
)

func testClient(serverURL string) *Client {
	return New(config.ProviderConfig{
		QuoteBaseURL:   serverURL,
		SearchBaseURL:  serverURL,
		ScrapeBaseURL:  serverURL,
		RequestsPerSec: 100,
		Timeout:        5 * time.Second,
	}, logger.Nop())
}

const chartPayload = `{
	"chart": {
		"result": [{
			"meta": {
				"currency": "USD",
				"symbol": "AAPL",
				"exchangeName": "NMS",
				"longName": "Apple Inc.",
				"regularMarketPrice": 189.5,
				"previousClose": 187.0,
				"regularMarketDayHigh": 190.1,
				"regularMarketDayLow": 186.4,
				"regularMarketVolume": 52000000
			},
			"timestamp": [1756684800, 1756771200, 1756857600],
			"indicators": {
				"quote": [{
					"open":   [186.0, 188.0, null],
					"high":   [189.0, 190.1, null],
					"low":    [185.5, 187.2, null],
					"close":  [188.2, 189.5, null],
					"volume": [48000000, 52000000, null]
				}]
			}
		}],
		"error": null
	}
}`

func TestClient_Quote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/v8/finance/chart/AAPL")
		w.Write([]byte(chartPayload))
	}))
	defer server.Close()

	q, err := testClient(server.URL).Quote(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", q.Symbol)
	assert.Equal(t, "Apple Inc.", q.Name)
	assert.Equal(t, "USD", q.Currency)
	assert.Equal(t, "NMS", q.Exchange)
	assert.InDelta(t, 189.5, q.Price.Value, 1e-9)
	assert.InDelta(t, 187.0, q.PreviousClose.Value, 1e-9)
}

func TestClient_Quote_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[],"error":{"code":"Not Found","description":"No data found"}}}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).Quote(context.Background(), "NOPE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No data found")
}

func TestClient_History_SkipsEmptyBars(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chartPayload))
	}))
	defer server.Close()

	candles, err := testClient(server.URL).History(context.Background(), "AAPL", provider.Period1M)
	require.NoError(t, err)

	// The third bar is all nulls and must be dropped.
	require.Len(t, candles, 2)
	assert.InDelta(t, 188.2, candles[0].Close.Value, 1e-9)
	assert.InDelta(t, 189.5, candles[1].Close.Value, 1e-9)
	assert.True(t, candles[0].Date.Before(candles[1].Date))
}

func TestClient_History_RejectsInvalidPeriod(t *testing.T) {
	_, err := testClient("http://localhost").History(context.Background(), "AAPL", provider.Period("2w"))
	assert.Error(t, err)
}

func TestClient_Fundamentals(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/v8/finance/chart/AAPL":
			w.Write([]byte(chartPayload))
		case r.URL.Path == "/v10/finance/quoteSummary/AAPL":
			w.Write([]byte(`{
				"quoteSummary": {
					"result": [{
						"price": {"regularMarketPrice": {"raw": 189.5}, "marketCap": {"raw": 2900000000000}},
						"summaryDetail": {
							"trailingPE": {"raw": 29.2},
							"dividendYield": {"raw": 0.0052},
							"dividendRate": {"raw": 0.98}
						},
						"defaultKeyStatistics": {
							"trailingEps": {"raw": 6.49},
							"priceToBook": {"raw": 45.1},
							"sharesOutstanding": {"raw": 15300000000}
						},
						"financialData": {
							"returnOnEquity": {"raw": 1.47},
							"grossMargins": {"raw": 0.441},
							"debtToEquity": {"raw": 176.3},
							"currentRatio": null,
							"totalRevenue": {"raw": 383000000000}
						},
						"assetProfile": {"industry": "Consumer Electronics", "sector": "Technology"},
						"balanceSheetHistory": {
							"balanceSheetStatements": [{
								"totalAssets": {"raw": 352000000000},
								"totalLiab": {"raw": 290000000000}
							}]
						},
						"cashflowStatementHistory": {
							"cashflowStatements": [{
								"totalCashFromOperatingActivities": {"raw": 110000000000},
								"capitalExpenditures": {"raw": -11000000000}
							}]
						}
					}],
					"error": null
				}
			}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	f, err := testClient(server.URL).Fundamentals(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", f.Symbol)
	assert.Equal(t, "Consumer Electronics", f.Industry)
	assert.InDelta(t, 189.5, f.Price.Value, 1e-9)
	assert.InDelta(t, 2.9e12, f.MarketCap.Value, 1e-3)
	assert.InDelta(t, 29.2, f.TrailingPE.Value, 1e-9)
	assert.InDelta(t, 6.49, f.TrailingEPS.Value, 1e-9)

	// Normalization: D/E 176.3 is a percentage and becomes 1.763.
	assert.InDelta(t, 1.763, f.DebtToEquity.Value, 1e-9)
	assert.InDelta(t, 0.441, f.GrossMargin.Value, 1e-9)

	// A null metric stays absent rather than becoming a present zero.
	assert.False(t, f.CurrentRatio.Valid)

	// Derivation: book value per share from price / P/B.
	assert.InDelta(t, 189.5/45.1, f.BookValue.Value, 1e-9)

	// FCF assembled from OCF plus negative capex.
	require.NotNil(t, f.CashFlow)
	assert.InDelta(t, 99e9, f.CashFlow.FreeCashFlow.Value, 1e-3)

	require.NotNil(t, f.BalanceSheet)
	assert.InDelta(t, 352e9, f.BalanceSheet.TotalAssets.Value, 1e-3)
}

func TestClient_Fundamentals_HTMLFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/v8/finance/chart/AAPL":
			w.Write([]byte(chartPayload))
		case r.URL.Path == "/v10/finance/quoteSummary/AAPL":
			w.WriteHeader(http.StatusUnauthorized)
		case r.URL.Path == "/quote/AAPL/key-statistics":
			w.Write([]byte(`<html><body><table>
				<tr><td>Trailing P/E</td><td>29.20</td></tr>
				<tr><td>Price/Book (mrq)</td><td>45.10</td></tr>
				<tr><td>Market Cap</td><td>2.9T</td></tr>
				<tr><td>Return on Equity (ttm)</td><td>147.00%</td></tr>
				<tr><td>Total Debt/Equity (mrq)</td><td>176.30</td></tr>
			</table></body></html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	f, err := testClient(server.URL).Fundamentals(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.InDelta(t, 29.2, f.TrailingPE.Value, 1e-9)
	assert.InDelta(t, 45.1, f.PriceToBook.Value, 1e-9)
	assert.InDelta(t, 2.9e12, f.MarketCap.Value, 1e-3)
	assert.InDelta(t, 1.47, f.ROE.Value, 1e-9, "percentage normalized to fraction")
	assert.InDelta(t, 1.763, f.DebtToEquity.Value, 1e-9)
}

func TestClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/finance/search", r.URL.Path)
		assert.Equal(t, "coca cola", r.URL.Query().Get("q"))
		w.Write([]byte(`{
			"quotes": [
				{"symbol": "KO", "shortname": "Coca-Cola Company (The)", "exchange": "NYQ", "quoteType": "EQUITY"},
				{"symbol": "", "shortname": "broken row"},
				{"symbol": "CCEP", "longname": "Coca-Cola Europacific Partners", "exchange": "NAS", "quoteType": "EQUITY"}
			]
		}`))
	}))
	defer server.Close()

	results, err := testClient(server.URL).Search(context.Background(), "coca cola")
	require.NoError(t, err)

	require.Len(t, results, 2, "rows without a symbol are dropped")
	assert.Equal(t, "KO", results[0].Symbol)
	assert.Equal(t, "Coca-Cola Company (The)", results[0].Name)
	assert.Equal(t, "Coca-Cola Europacific Partners", results[1].Name)
}

func TestDeriveMissing(t *testing.T) {
	f := &fundamentals.SecurityFundamentals{
		Price:      fundamentals.F(100),
		TrailingPE: fundamentals.F(20),
		MarketCap:  fundamentals.F(1e9),
	}

	deriveMissing(f)

	assert.InDelta(t, 5.0, f.TrailingEPS.Value, 1e-9)
	assert.InDelta(t, 1e7, f.SharesOutstanding.Value, 1e-3)
	assert.False(t, f.BookValue.Valid, "no P/B, nothing to derive from")
}
