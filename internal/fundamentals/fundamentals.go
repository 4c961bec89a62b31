package fundamentals

// SecurityFundamentals is an immutable per-ticker snapshot of the
// fundamental fields used by the valuation models, health scorers and the
// screening rubric. It is built once at the ingestion boundary and never
// mutated afterwards; absent fields stay Missing rather than zero.
type SecurityFundamentals struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Exchange string `json:"exchange"`
	Industry string `json:"industry"`

	Price     Field `json:"price"`
	MarketCap Field `json:"market_cap"`

	TrailingPE   Field `json:"trailing_pe"`
	ForwardPE    Field `json:"forward_pe"`
	PriceToBook  Field `json:"price_to_book"`
	PriceToSales Field `json:"price_to_sales"`
	PEGRatio     Field `json:"peg_ratio"`

	TrailingEPS Field `json:"trailing_eps"`
	ForwardEPS  Field `json:"forward_eps"`
	// BookValue is book value per share, matching the upstream convention.
	BookValue Field `json:"book_value"`

	// Decimal fractions (0.15 = 15%) after ingestion normalization.
	ROE             Field `json:"roe"`
	ROA             Field `json:"roa"`
	OperatingMargin Field `json:"operating_margin"`
	GrossMargin     Field `json:"gross_margin"`
	RevenueGrowth   Field `json:"revenue_growth"`
	EarningsGrowth  Field `json:"earnings_growth"`
	DividendYield   Field `json:"dividend_yield"`
	PayoutRatio     Field `json:"payout_ratio"`

	DebtToEquity Field `json:"debt_to_equity"`
	CurrentRatio Field `json:"current_ratio"`

	// DividendRate is the annual dividend per share in price currency.
	DividendRate      Field `json:"dividend_rate"`
	FreeCashFlow      Field `json:"free_cash_flow"`
	SharesOutstanding Field `json:"shares_outstanding"`
	TotalRevenue      Field `json:"total_revenue"`
	TotalCash         Field `json:"total_cash"`
	TotalDebt         Field `json:"total_debt"`

	BalanceSheet    *BalanceSheet    `json:"balance_sheet,omitempty"`
	IncomeStatement *IncomeStatement `json:"income_statement,omitempty"`
	CashFlow        *CashFlow        `json:"cash_flow,omitempty"`
}

// BalanceSheet holds the most recent balance sheet line items.
type BalanceSheet struct {
	TotalAssets        Field `json:"total_assets"`
	TotalLiabilities   Field `json:"total_liabilities"`
	CurrentAssets      Field `json:"current_assets"`
	CurrentLiabilities Field `json:"current_liabilities"`
	RetainedEarnings   Field `json:"retained_earnings"`
	IntangibleAssets   Field `json:"intangible_assets"`
	TotalEquity        Field `json:"total_equity"`
	Receivables        Field `json:"receivables"`
	LongTermDebt       Field `json:"long_term_debt"`
}

// IncomeStatement holds the most recent income statement line items.
type IncomeStatement struct {
	Revenue         Field `json:"revenue"`
	GrossProfit     Field `json:"gross_profit"`
	OperatingIncome Field `json:"operating_income"`
	NetIncome       Field `json:"net_income"`
	SGA             Field `json:"sga"`
}

// CashFlow holds the most recent cash flow statement line items.
type CashFlow struct {
	OperatingCashFlow  Field `json:"operating_cash_flow"`
	CapitalExpenditure Field `json:"capital_expenditure"`
	FreeCashFlow       Field `json:"free_cash_flow"`
}

// RevenuePerShare derives revenue per share when both inputs are present.
func (f *SecurityFundamentals) RevenuePerShare() Field {
	return f.TotalRevenue.Div(f.SharesOutstanding)
}

// FreeCashFlowPerShare derives FCF per share, preferring the cash flow
// statement figure over the aggregate field.
func (f *SecurityFundamentals) FreeCashFlowPerShare() Field {
	fcf := f.FreeCashFlow
	if f.CashFlow != nil && f.CashFlow.FreeCashFlow.Valid {
		fcf = f.CashFlow.FreeCashFlow
	}
	return fcf.Div(f.SharesOutstanding)
}

// EPS returns trailing EPS, deriving it from price and trailing P/E when the
// direct field is absent (the upstream API omits it for many tickers).
func (f *SecurityFundamentals) EPS() Field {
	if f.TrailingEPS.Valid {
		return f.TrailingEPS
	}
	if f.Price.Positive() && f.TrailingPE.Positive() {
		return F(f.Price.Value / f.TrailingPE.Value)
	}
	return Missing
}

// BookValuePerShare returns book value per share, deriving it from price and
// P/B when absent.
func (f *SecurityFundamentals) BookValuePerShare() Field {
	if f.BookValue.Valid {
		return f.BookValue
	}
	if f.Price.Positive() && f.PriceToBook.Positive() {
		return F(f.Price.Value / f.PriceToBook.Value)
	}
	return Missing
}
