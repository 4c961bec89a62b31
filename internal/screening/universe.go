package screening

// Entry is one security of a screening universe.
type Entry struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Market string `json:"market"`
}

// Universe is the ordered set of securities a screening run iterates.
// Order matters: it is the tie-break for equal scores.
type Universe []Entry

// Symbols returns the symbols in universe order.
func (u Universe) Symbols() []string {
	out := make([]string, len(u))
	for i, e := range u {
		out[i] = e.Symbol
	}
	return out
}

// Market classification labels.
const (
	MarketUS = "US"
	MarketEU = "EU"
)

// DefaultUniverse returns the built-in screening universe: US large caps,
// a European tier and a US small/mid tier.
func DefaultUniverse() Universe {
	return Universe{
		// US mega/large caps
		{"AAPL", "Apple", MarketUS},
		{"MSFT", "Microsoft", MarketUS},
		{"GOOGL", "Alphabet", MarketUS},
		{"AMZN", "Amazon", MarketUS},
		{"NVDA", "NVIDIA", MarketUS},
		{"META", "Meta Platforms", MarketUS},
		{"BRK-B", "Berkshire Hathaway", MarketUS},
		{"TSLA", "Tesla", MarketUS},
		{"JPM", "JPMorgan Chase", MarketUS},
		{"V", "Visa", MarketUS},
		{"JNJ", "Johnson & Johnson", MarketUS},
		{"WMT", "Walmart", MarketUS},
		{"PG", "Procter & Gamble", MarketUS},
		{"MA", "Mastercard", MarketUS},
		{"HD", "Home Depot", MarketUS},
		{"XOM", "Exxon Mobil", MarketUS},
		{"CVX", "Chevron", MarketUS},
		{"KO", "Coca-Cola", MarketUS},
		{"PEP", "PepsiCo", MarketUS},
		{"BAC", "Bank of America", MarketUS},
		{"ABBV", "AbbVie", MarketUS},
		{"PFE", "Pfizer", MarketUS},
		{"MRK", "Merck", MarketUS},
		{"CSCO", "Cisco Systems", MarketUS},
		{"ORCL", "Oracle", MarketUS},
		{"INTC", "Intel", MarketUS},
		{"AMD", "Advanced Micro Devices", MarketUS},
		{"QCOM", "Qualcomm", MarketUS},
		{"TXN", "Texas Instruments", MarketUS},
		{"IBM", "IBM", MarketUS},
		{"CRM", "Salesforce", MarketUS},
		{"ADBE", "Adobe", MarketUS},
		{"NFLX", "Netflix", MarketUS},
		{"DIS", "Walt Disney", MarketUS},
		{"CMCSA", "Comcast", MarketUS},
		{"VZ", "Verizon", MarketUS},
		{"T", "AT&T", MarketUS},
		{"NKE", "Nike", MarketUS},
		{"MCD", "McDonald's", MarketUS},
		{"SBUX", "Starbucks", MarketUS},
		{"COST", "Costco", MarketUS},
		{"TGT", "Target", MarketUS},
		{"LOW", "Lowe's", MarketUS},
		{"UNH", "UnitedHealth", MarketUS},
		{"CVS", "CVS Health", MarketUS},
		{"GS", "Goldman Sachs", MarketUS},
		{"MS", "Morgan Stanley", MarketUS},
		{"C", "Citigroup", MarketUS},
		{"WFC", "Wells Fargo", MarketUS},
		{"AXP", "American Express", MarketUS},
		{"BA", "Boeing", MarketUS},
		{"CAT", "Caterpillar", MarketUS},
		{"DE", "Deere", MarketUS},
		{"GE", "GE Aerospace", MarketUS},
		{"MMM", "3M", MarketUS},
		{"HON", "Honeywell", MarketUS},
		{"UPS", "United Parcel Service", MarketUS},
		{"FDX", "FedEx", MarketUS},
		{"F", "Ford Motor", MarketUS},
		{"GM", "General Motors", MarketUS},

		// European listings
		{"ASML.AS", "ASML Holding", MarketEU},
		{"SAP.DE", "SAP", MarketEU},
		{"SIE.DE", "Siemens", MarketEU},
		{"ALV.DE", "Allianz", MarketEU},
		{"BAS.DE", "BASF", MarketEU},
		{"BMW.DE", "BMW", MarketEU},
		{"MBG.DE", "Mercedes-Benz Group", MarketEU},
		{"VOW3.DE", "Volkswagen", MarketEU},
		{"MC.PA", "LVMH", MarketEU},
		{"OR.PA", "L'Oreal", MarketEU},
		{"TTE.PA", "TotalEnergies", MarketEU},
		{"SAN.PA", "Sanofi", MarketEU},
		{"AIR.PA", "Airbus", MarketEU},
		{"NESN.SW", "Nestle", MarketEU},
		{"NOVN.SW", "Novartis", MarketEU},
		{"ROG.SW", "Roche", MarketEU},
		{"AZN.L", "AstraZeneca", MarketEU},
		{"SHEL.L", "Shell", MarketEU},
		{"HSBA.L", "HSBC", MarketEU},
		{"ULVR.L", "Unilever", MarketEU},
		{"BP.L", "BP", MarketEU},
		{"GSK.L", "GSK", MarketEU},
		{"NOVO-B.CO", "Novo Nordisk", MarketEU},
		{"ERIC-B.ST", "Ericsson", MarketEU},
		{"VOLV-B.ST", "Volvo", MarketEU},

		// US small/mid tier
		{"ETSY", "Etsy", MarketUS},
		{"CROX", "Crocs", MarketUS},
		{"DECK", "Deckers Outdoor", MarketUS},
		{"WSM", "Williams-Sonoma", MarketUS},
		{"DKS", "Dick's Sporting Goods", MarketUS},
		{"HOG", "Harley-Davidson", MarketUS},
		{"WHR", "Whirlpool", MarketUS},
		{"LEVI", "Levi Strauss", MarketUS},
		{"FOXA", "Fox Corporation", MarketUS},
		{"MAT", "Mattel", MarketUS},
		{"HAS", "Hasbro", MarketUS},
		{"AAL", "American Airlines", MarketUS},
		{"UAL", "United Airlines", MarketUS},
		{"DAL", "Delta Air Lines", MarketUS},
		{"X", "United States Steel", MarketUS},
		{"CLF", "Cleveland-Cliffs", MarketUS},
		{"ALK", "Alaska Air Group", MarketUS},
		{"KSS", "Kohl's", MarketUS},
		{"M", "Macy's", MarketUS},
		{"GPS", "Gap", MarketUS},
	}
}

// MarketFor resolves the market label for a symbol, defaulting to US.
func (u Universe) MarketFor(symbol string) string {
	for _, e := range u {
		if e.Symbol == symbol {
			return e.Market
		}
	}
	return MarketUS
}

// Market-cap category boundaries in USD.
const (
	capMega  = 200e9
	capLarge = 10e9
	capMid   = 2e9
	capSmall = 300e6
)

// CapCategory labels a market capitalization.
func CapCategory(marketCap float64) string {
	switch {
	case marketCap >= capMega:
		return "Mega"
	case marketCap >= capLarge:
		return "Large"
	case marketCap >= capMid:
		return "Mid"
	case marketCap >= capSmall:
		return "Small"
	default:
		return "Micro"
	}
}
