package yahoo

import (
	"bytes"
	"encoding/json"

	"github.com/finscope/finscope/internal/fundamentals"
)

// rawValue is the {"raw": 1.23, "fmt": "1.23"} envelope the quoteSummary
// endpoint wraps every numeric in. Some fields arrive as bare numbers from
// older endpoints, so unmarshalling accepts both shapes.
type rawValue struct {
	Raw *float64
}

func (r *rawValue) UnmarshalJSON(data []byte) error {
	// null is absent, not zero. Unmarshalling null into a float64 is a
	// no-op with a nil error, so it must be caught before the number branch.
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		r.Raw = nil
		return nil
	}

	// Bare number
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		r.Raw = &n
		return nil
	}

	// Envelope; an empty object {} means absent
	var envelope struct {
		Raw *float64 `json:"raw"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil {
		r.Raw = envelope.Raw
		return nil
	}

	// Anything else (string garbage) is treated as absent
	r.Raw = nil
	return nil
}

// Field converts the envelope into the domain optional type.
func (r *rawValue) Field() fundamentals.Field {
	if r == nil {
		return fundamentals.Missing
	}
	return fundamentals.FromPtr(r.Raw)
}

// chartResponse is the v8/finance/chart payload (quotes and history).
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency             string   `json:"currency"`
				Symbol               string   `json:"symbol"`
				ExchangeName         string   `json:"exchangeName"`
				LongName             string   `json:"longName"`
				ShortName            string   `json:"shortName"`
				RegularMarketPrice   *float64 `json:"regularMarketPrice"`
				PreviousClose        *float64 `json:"previousClose"`
				RegularMarketDayHigh *float64 `json:"regularMarketDayHigh"`
				RegularMarketDayLow  *float64 `json:"regularMarketDayLow"`
				RegularMarketVolume  *float64 `json:"regularMarketVolume"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"chart"`
}

// apiError is the error object embedded in provider payloads.
type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// quoteSummaryResponse is the v10/finance/quoteSummary payload.
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []quoteSummaryResult `json:"result"`
		Error  *apiError            `json:"error"`
	} `json:"quoteSummary"`
}

type quoteSummaryResult struct {
	Price                *priceModule      `json:"price"`
	SummaryDetail        *summaryDetail    `json:"summaryDetail"`
	DefaultKeyStatistics *keyStatistics    `json:"defaultKeyStatistics"`
	FinancialData        *financialData    `json:"financialData"`
	AssetProfile         *assetProfile     `json:"assetProfile"`
	BalanceSheetHistory  *balanceSheetHist `json:"balanceSheetHistory"`
	IncomeStmtHistory    *incomeStmtHist   `json:"incomeStatementHistory"`
	CashflowStmtHistory  *cashflowStmtHist `json:"cashflowStatementHistory"`
}

type priceModule struct {
	LongName           string    `json:"longName"`
	ShortName          string    `json:"shortName"`
	Currency           string    `json:"currency"`
	ExchangeName       string    `json:"exchangeName"`
	RegularMarketPrice *rawValue `json:"regularMarketPrice"`
	MarketCap          *rawValue `json:"marketCap"`
}

type summaryDetail struct {
	TrailingPE    *rawValue `json:"trailingPE"`
	ForwardPE     *rawValue `json:"forwardPE"`
	PriceToSales  *rawValue `json:"priceToSalesTrailing12Months"`
	DividendYield *rawValue `json:"dividendYield"`
	DividendRate  *rawValue `json:"dividendRate"`
	PayoutRatio   *rawValue `json:"payoutRatio"`
	MarketCap     *rawValue `json:"marketCap"`
	PreviousClose *rawValue `json:"previousClose"`
	Volume        *rawValue `json:"volume"`
}

type keyStatistics struct {
	TrailingEps       *rawValue `json:"trailingEps"`
	ForwardEps        *rawValue `json:"forwardEps"`
	PriceToBook       *rawValue `json:"priceToBook"`
	BookValue         *rawValue `json:"bookValue"`
	PegRatio          *rawValue `json:"pegRatio"`
	SharesOutstanding *rawValue `json:"sharesOutstanding"`
}

type financialData struct {
	ReturnOnEquity   *rawValue `json:"returnOnEquity"`
	ReturnOnAssets   *rawValue `json:"returnOnAssets"`
	OperatingMargins *rawValue `json:"operatingMargins"`
	GrossMargins     *rawValue `json:"grossMargins"`
	RevenueGrowth    *rawValue `json:"revenueGrowth"`
	EarningsGrowth   *rawValue `json:"earningsGrowth"`
	DebtToEquity     *rawValue `json:"debtToEquity"`
	CurrentRatio     *rawValue `json:"currentRatio"`
	FreeCashflow     *rawValue `json:"freeCashflow"`
	TotalRevenue     *rawValue `json:"totalRevenue"`
	TotalCash        *rawValue `json:"totalCash"`
	TotalDebt        *rawValue `json:"totalDebt"`
}

type assetProfile struct {
	Industry string `json:"industry"`
	Sector   string `json:"sector"`
}

type balanceSheetHist struct {
	Statements []balanceSheetStmt `json:"balanceSheetStatements"`
}

type balanceSheetStmt struct {
	TotalAssets             *rawValue `json:"totalAssets"`
	TotalLiab               *rawValue `json:"totalLiab"`
	TotalCurrentAssets      *rawValue `json:"totalCurrentAssets"`
	TotalCurrentLiabilities *rawValue `json:"totalCurrentLiabilities"`
	RetainedEarnings        *rawValue `json:"retainedEarnings"`
	IntangibleAssets        *rawValue `json:"intangibleAssets"`
	TotalStockholderEquity  *rawValue `json:"totalStockholderEquity"`
	NetReceivables          *rawValue `json:"netReceivables"`
	LongTermDebt            *rawValue `json:"longTermDebt"`
}

type incomeStmtHist struct {
	Statements []incomeStmt `json:"incomeStatementHistory"`
}

type incomeStmt struct {
	TotalRevenue    *rawValue `json:"totalRevenue"`
	GrossProfit     *rawValue `json:"grossProfit"`
	OperatingIncome *rawValue `json:"operatingIncome"`
	NetIncome       *rawValue `json:"netIncome"`
	SGA             *rawValue `json:"sellingGeneralAdministrative"`
}

type cashflowStmtHist struct {
	Statements []cashflowStmt `json:"cashflowStatements"`
}

type cashflowStmt struct {
	TotalCashFromOperatingActivities *rawValue `json:"totalCashFromOperatingActivities"`
	CapitalExpenditures              *rawValue `json:"capitalExpenditures"`
}

// searchResponse is the v1/finance/search payload.
type searchResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
		LongName  string `json:"longname"`
		Exchange  string `json:"exchange"`
		QuoteType string `json:"quoteType"`
	} `json:"quotes"`
}
