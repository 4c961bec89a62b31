// Package yahoo implements the DataProvider interface against the public
// Yahoo Finance JSON endpoints, with an HTML key-statistics fallback for
// fundamentals when the JSON API declines the request.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/finscope/finscope/internal/fundamentals"
	"github.com/finscope/finscope/internal/provider"
	"github.com/finscope/finscope/pkg/config"
	"github.com/finscope/finscope/pkg/httputil"
	"github.com/finscope/finscope/pkg/logger"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// quoteSummaryModules is the module list requested for fundamentals.
const quoteSummaryModules = "summaryDetail,defaultKeyStatistics,financialData,price,assetProfile," +
	"balanceSheetHistory,incomeStatementHistory,cashflowStatementHistory"

// Client talks to the Yahoo Finance endpoints.
type Client struct {
	http          *httputil.Client
	logger        *logger.Logger
	quoteBaseURL  string
	searchBaseURL string
	scrapeBaseURL string
}

// New creates a Yahoo client from provider config.
func New(cfg config.ProviderConfig, log *logger.Logger) *Client {
	return &Client{
		http: httputil.New(log, cfg.Timeout).
			WithRateLimit(cfg.RequestsPerSec).
			WithUserAgent(defaultUserAgent),
		logger:        log.WithField("module", "yahoo"),
		quoteBaseURL:  cfg.QuoteBaseURL,
		searchBaseURL: cfg.SearchBaseURL,
		scrapeBaseURL: cfg.ScrapeBaseURL,
	}
}

// Quote fetches the current trading snapshot via the chart endpoint.
func (c *Client) Quote(ctx context.Context, symbol string) (*provider.Quote, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d&includePrePost=true",
		c.quoteBaseURL, url.PathEscape(symbol))

	var payload chartResponse
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return nil, fmt.Errorf("quote %s: %w", symbol, err)
	}
	if payload.Chart.Error != nil {
		return nil, fmt.Errorf("quote %s: %s", symbol, payload.Chart.Error.Description)
	}
	if len(payload.Chart.Result) == 0 {
		return nil, fmt.Errorf("quote %s: empty chart result", symbol)
	}

	meta := payload.Chart.Result[0].Meta
	name := meta.LongName
	if name == "" {
		name = meta.ShortName
	}
	if name == "" {
		name = symbol
	}

	return &provider.Quote{
		Symbol:        symbol,
		Name:          name,
		Price:         fundamentals.FromPtr(meta.RegularMarketPrice),
		PreviousClose: fundamentals.FromPtr(meta.PreviousClose),
		DayHigh:       fundamentals.FromPtr(meta.RegularMarketDayHigh),
		DayLow:        fundamentals.FromPtr(meta.RegularMarketDayLow),
		Volume:        fundamentals.FromPtr(meta.RegularMarketVolume),
		Currency:      meta.Currency,
		Exchange:      meta.ExchangeName,
	}, nil
}

// periodDays maps a history period to a calendar-day lookback.
var periodDays = map[provider.Period]int{
	provider.Period1D: 1, provider.Period5D: 5, provider.Period1M: 30,
	provider.Period3M: 90, provider.Period6M: 180, provider.Period1Y: 365,
	provider.Period2Y: 730, provider.Period5Y: 1825, provider.Period10Y: 3650,
	provider.PeriodMax: 7300,
}

// History fetches a daily OHLCV series for the given lookback period.
func (c *Client) History(ctx context.Context, symbol string, period provider.Period) ([]provider.Candle, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	end := time.Now().Unix()
	start := end - int64(periodDays[period])*24*60*60

	u := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d&events=div%%2Csplit",
		c.quoteBaseURL, url.PathEscape(symbol), start, end)

	var payload chartResponse
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return nil, fmt.Errorf("history %s: %w", symbol, err)
	}
	if payload.Chart.Error != nil {
		return nil, fmt.Errorf("history %s: %s", symbol, payload.Chart.Error.Description)
	}
	if len(payload.Chart.Result) == 0 {
		return nil, fmt.Errorf("history %s: empty chart result", symbol)
	}

	result := payload.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("history %s: no quote indicators", symbol)
	}
	bars := result.Indicators.Quote[0]

	candles := make([]provider.Candle, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		candle := provider.Candle{Date: time.Unix(ts, 0).UTC()}
		if i < len(bars.Open) {
			candle.Open = fundamentals.FromPtr(bars.Open[i])
		}
		if i < len(bars.High) {
			candle.High = fundamentals.FromPtr(bars.High[i])
		}
		if i < len(bars.Low) {
			candle.Low = fundamentals.FromPtr(bars.Low[i])
		}
		if i < len(bars.Close) {
			candle.Close = fundamentals.FromPtr(bars.Close[i])
		}
		if i < len(bars.Volume) {
			candle.Volume = fundamentals.FromPtr(bars.Volume[i])
		}
		// Skip fully empty bars (holidays, halted sessions)
		if !candle.Open.Valid && !candle.Close.Valid {
			continue
		}
		candles = append(candles, candle)
	}

	return candles, nil
}

// Fundamentals assembles a SecurityFundamentals snapshot from the
// quoteSummary endpoint, filling gaps by derivation and, when the JSON API
// yields nothing useful, from the key-statistics HTML page.
func (c *Client) Fundamentals(ctx context.Context, symbol string) (*fundamentals.SecurityFundamentals, error) {
	quote, err := c.Quote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	f := &fundamentals.SecurityFundamentals{
		Symbol:   symbol,
		Name:     quote.Name,
		Currency: quote.Currency,
		Exchange: quote.Exchange,
		Price:    quote.Price,
	}

	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		c.quoteBaseURL, url.PathEscape(symbol), url.QueryEscape(quoteSummaryModules))

	var payload quoteSummaryResponse
	summaryErr := c.getJSON(ctx, u, &payload)
	if summaryErr == nil && len(payload.QuoteSummary.Result) > 0 {
		applySummary(f, &payload.QuoteSummary.Result[0])
	} else {
		c.logger.WithFields(map[string]interface{}{
			"symbol": symbol,
		}).Warn("quoteSummary unavailable, trying HTML fallback")
		if err := c.scrapeKeyStatistics(ctx, symbol, f); err != nil {
			c.logger.WithError(err).WithField("symbol", symbol).Debug("HTML fallback failed")
		}
	}

	deriveMissing(f)
	fundamentals.Normalize(f)

	return f, nil
}

// Search performs a name-based symbol lookup.
func (c *Client) Search(ctx context.Context, query string) ([]provider.SearchResult, error) {
	u := fmt.Sprintf("%s/v1/finance/search?q=%s&quotesCount=10&newsCount=0",
		c.searchBaseURL, url.QueryEscape(query))

	var payload searchResponse
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	results := make([]provider.SearchResult, 0, len(payload.Quotes))
	for _, q := range payload.Quotes {
		if q.Symbol == "" {
			continue
		}
		name := q.LongName
		if name == "" {
			name = q.ShortName
		}
		results = append(results, provider.SearchResult{
			Symbol:   q.Symbol,
			Name:     name,
			Exchange: q.Exchange,
			Type:     q.QuoteType,
		})
	}

	return results, nil
}

// getJSON fetches a URL and decodes the JSON body.
func (c *Client) getJSON(ctx context.Context, u string, dest interface{}) error {
	resp, err := c.http.Get(ctx, u)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// applySummary copies quoteSummary modules into the snapshot.
func applySummary(f *fundamentals.SecurityFundamentals, r *quoteSummaryResult) {
	if p := r.Price; p != nil {
		if !f.Price.Valid {
			f.Price = p.RegularMarketPrice.Field()
		}
		f.MarketCap = p.MarketCap.Field()
	}
	if sd := r.SummaryDetail; sd != nil {
		f.TrailingPE = sd.TrailingPE.Field()
		f.ForwardPE = sd.ForwardPE.Field()
		f.PriceToSales = sd.PriceToSales.Field()
		f.DividendYield = sd.DividendYield.Field()
		f.DividendRate = sd.DividendRate.Field()
		f.PayoutRatio = sd.PayoutRatio.Field()
		if !f.MarketCap.Valid {
			f.MarketCap = sd.MarketCap.Field()
		}
	}
	if ks := r.DefaultKeyStatistics; ks != nil {
		f.TrailingEPS = ks.TrailingEps.Field()
		f.ForwardEPS = ks.ForwardEps.Field()
		f.PriceToBook = ks.PriceToBook.Field()
		f.BookValue = ks.BookValue.Field()
		f.PEGRatio = ks.PegRatio.Field()
		f.SharesOutstanding = ks.SharesOutstanding.Field()
	}
	if fd := r.FinancialData; fd != nil {
		f.ROE = fd.ReturnOnEquity.Field()
		f.ROA = fd.ReturnOnAssets.Field()
		f.OperatingMargin = fd.OperatingMargins.Field()
		f.GrossMargin = fd.GrossMargins.Field()
		f.RevenueGrowth = fd.RevenueGrowth.Field()
		f.EarningsGrowth = fd.EarningsGrowth.Field()
		f.DebtToEquity = fd.DebtToEquity.Field()
		f.CurrentRatio = fd.CurrentRatio.Field()
		f.FreeCashFlow = fd.FreeCashflow.Field()
		f.TotalRevenue = fd.TotalRevenue.Field()
		f.TotalCash = fd.TotalCash.Field()
		f.TotalDebt = fd.TotalDebt.Field()
	}
	if ap := r.AssetProfile; ap != nil {
		f.Industry = ap.Industry
		if f.Industry == "" {
			f.Industry = ap.Sector
		}
	}
	if bh := r.BalanceSheetHistory; bh != nil && len(bh.Statements) > 0 {
		s := bh.Statements[0] // most recent first
		f.BalanceSheet = &fundamentals.BalanceSheet{
			TotalAssets:        s.TotalAssets.Field(),
			TotalLiabilities:   s.TotalLiab.Field(),
			CurrentAssets:      s.TotalCurrentAssets.Field(),
			CurrentLiabilities: s.TotalCurrentLiabilities.Field(),
			RetainedEarnings:   s.RetainedEarnings.Field(),
			IntangibleAssets:   s.IntangibleAssets.Field(),
			TotalEquity:        s.TotalStockholderEquity.Field(),
			Receivables:        s.NetReceivables.Field(),
			LongTermDebt:       s.LongTermDebt.Field(),
		}
	}
	if ih := r.IncomeStmtHistory; ih != nil && len(ih.Statements) > 0 {
		s := ih.Statements[0]
		f.IncomeStatement = &fundamentals.IncomeStatement{
			Revenue:         s.TotalRevenue.Field(),
			GrossProfit:     s.GrossProfit.Field(),
			OperatingIncome: s.OperatingIncome.Field(),
			NetIncome:       s.NetIncome.Field(),
			SGA:             s.SGA.Field(),
		}
	}
	if ch := r.CashflowStmtHistory; ch != nil && len(ch.Statements) > 0 {
		s := ch.Statements[0]
		ocf := s.TotalCashFromOperatingActivities.Field()
		capex := s.CapitalExpenditures.Field()
		cf := &fundamentals.CashFlow{
			OperatingCashFlow:  ocf,
			CapitalExpenditure: capex,
		}
		if ocf.Valid && capex.Valid {
			// Capex is reported negative; adding yields FCF.
			cf.FreeCashFlow = fundamentals.F(ocf.Value + capex.Value)
		}
		f.CashFlow = cf
	}
}

// deriveMissing fills fields computable from others, mirroring the
// upstream dashboard's derivation chain.
func deriveMissing(f *fundamentals.SecurityFundamentals) {
	if !f.MarketCap.Valid && f.SharesOutstanding.Positive() && f.Price.Positive() {
		f.MarketCap = fundamentals.F(f.SharesOutstanding.Value * f.Price.Value)
	}
	if !f.TrailingPE.Valid && f.TrailingEPS.Positive() && f.Price.Positive() {
		f.TrailingPE = fundamentals.F(f.Price.Value / f.TrailingEPS.Value)
	}
	if !f.TrailingEPS.Valid && f.TrailingPE.Positive() && f.Price.Positive() {
		f.TrailingEPS = fundamentals.F(f.Price.Value / f.TrailingPE.Value)
	}
	if !f.BookValue.Valid && f.PriceToBook.Positive() && f.Price.Positive() {
		f.BookValue = fundamentals.F(f.Price.Value / f.PriceToBook.Value)
	}
	if !f.PriceToBook.Valid && f.BookValue.Positive() && f.Price.Positive() {
		f.PriceToBook = fundamentals.F(f.Price.Value / f.BookValue.Value)
	}
	if !f.SharesOutstanding.Valid && f.MarketCap.Positive() && f.Price.Positive() {
		f.SharesOutstanding = fundamentals.F(f.MarketCap.Value / f.Price.Value)
	}
}

var _ provider.DataProvider = (*Client)(nil)
