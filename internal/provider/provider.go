// Package provider defines the market-data provider boundary consumed by
// the screening engine, and a freshness-window cache around it.
package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/finscope/finscope/internal/fundamentals"
)

// Period is a history lookback window accepted by the provider.
type Period string

// Supported history periods.
const (
	Period1D  Period = "1d"
	Period5D  Period = "5d"
	Period1M  Period = "1mo"
	Period3M  Period = "3mo"
	Period6M  Period = "6mo"
	Period1Y  Period = "1y"
	Period2Y  Period = "2y"
	Period5Y  Period = "5y"
	Period10Y Period = "10y"
	PeriodMax Period = "max"
)

var validPeriods = map[Period]bool{
	Period1D: true, Period5D: true, Period1M: true, Period3M: true,
	Period6M: true, Period1Y: true, Period2Y: true, Period5Y: true,
	Period10Y: true, PeriodMax: true,
}

// Validate reports whether p is one of the supported periods.
func (p Period) Validate() error {
	if !validPeriods[p] {
		return fmt.Errorf("invalid period %q", string(p))
	}
	return nil
}

// Quote holds the current trading snapshot for one symbol.
type Quote struct {
	Symbol        string             `json:"symbol"`
	Name          string             `json:"name"`
	Price         fundamentals.Field `json:"price"`
	PreviousClose fundamentals.Field `json:"previous_close"`
	DayHigh       fundamentals.Field `json:"day_high"`
	DayLow        fundamentals.Field `json:"day_low"`
	Volume        fundamentals.Field `json:"volume"`
	Currency      string             `json:"currency"`
	Exchange      string             `json:"exchange"`
}

// Candle is one bar of an OHLCV time series.
type Candle struct {
	Date   time.Time          `json:"date"`
	Open   fundamentals.Field `json:"open"`
	High   fundamentals.Field `json:"high"`
	Low    fundamentals.Field `json:"low"`
	Close  fundamentals.Field `json:"close"`
	Volume fundamentals.Field `json:"volume"`
}

// SearchResult is one hit of a name-based symbol lookup.
type SearchResult struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Type     string `json:"type"`
}

// DataProvider is the upstream quote/fundamentals source. Implementations
// are best-effort: fundamental fields may be absent, and any call may fail
// for an individual symbol without implying the others will.
type DataProvider interface {
	Quote(ctx context.Context, symbol string) (*Quote, error)
	History(ctx context.Context, symbol string, period Period) ([]Candle, error)
	Fundamentals(ctx context.Context, symbol string) (*fundamentals.SecurityFundamentals, error)
	Search(ctx context.Context, query string) ([]SearchResult, error)
}
