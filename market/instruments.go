// market/instruments.go
package market

import "strings"

type AssetClass string

const (
	Forex  AssetClass = "FOREX"
	Index  AssetClass = "INDEX"
	Metal  AssetClass = "METAL"
	Crypto AssetClass = "CRYPTO"
)

// Instrument is the static metadata the calculator needs for one symbol.
type Instrument struct {
	Symbol        string
	Class         AssetClass
	BaseCurrency  string
	QuoteCurrency string
	ContractSize  float64 // units per 1.0 lot
	PipSize       float64 // one pip (forex, metal) or point (index, crypto)

	// SelectableContract marks index products whose contract size differs
	// between brokers (Nikkei 225 in JPY, SPX 500). The caller may override
	// ContractSize for them.
	SelectableContract bool

	// NonLinear marks pairs whose dollar P/L depends on the closing price
	// because neither leg is USD-quoted (USD/MXN).
	NonLinear bool

	// DefaultPrice seeds the entry price when the instrument is selected.
	DefaultPrice float64
}

// Instruments is the catalog in display order. The first entry is the
// fallback for unknown symbols.
var Instruments = []Instrument{
	{Symbol: "EURUSD", Class: Forex, BaseCurrency: "EUR", QuoteCurrency: "USD", ContractSize: 100000, PipSize: 0.0001, DefaultPrice: 1.0850},
	{Symbol: "GBPUSD", Class: Forex, BaseCurrency: "GBP", QuoteCurrency: "USD", ContractSize: 100000, PipSize: 0.0001},
	{Symbol: "USDJPY", Class: Forex, BaseCurrency: "USD", QuoteCurrency: "JPY", ContractSize: 100000, PipSize: 0.01, DefaultPrice: 158.00},
	{Symbol: "EURJPY", Class: Forex, BaseCurrency: "EUR", QuoteCurrency: "JPY", ContractSize: 100000, PipSize: 0.01, DefaultPrice: 171.50},
	{Symbol: "USDMXN", Class: Forex, BaseCurrency: "USD", QuoteCurrency: "MXN", ContractSize: 100000, PipSize: 0.0001, NonLinear: true, DefaultPrice: 17.07},
	{Symbol: "US30", Class: Index, QuoteCurrency: "USD", ContractSize: 1, PipSize: 1, DefaultPrice: 39500},
	{Symbol: "NAS100", Class: Index, QuoteCurrency: "USD", ContractSize: 1, PipSize: 1, DefaultPrice: 18200},
	{Symbol: "SPX500", Class: Index, QuoteCurrency: "USD", ContractSize: 1, PipSize: 1, SelectableContract: true, DefaultPrice: 5230},
	// 100 JPY per point per 1.0 lot
	{Symbol: "225JPY", Class: Index, QuoteCurrency: "JPY", ContractSize: 100, PipSize: 1, SelectableContract: true, DefaultPrice: 39000},
	{Symbol: "XAUUSD", Class: Metal, BaseCurrency: "XAU", QuoteCurrency: "USD", ContractSize: 100, PipSize: 0.01, DefaultPrice: 2350},
	{Symbol: "BTCUSD", Class: Crypto, BaseCurrency: "BTC", QuoteCurrency: "USD", ContractSize: 1, PipSize: 1},
}

// Lookup returns the instrument for symbol and whether it was found. Unknown
// symbols resolve to the first catalog entry.
func Lookup(symbol string) (Instrument, bool) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	for _, inst := range Instruments {
		if inst.Symbol == s {
			return inst, true
		}
	}
	return Instruments[0], false
}

// Get is Lookup without the found flag.
func Get(symbol string) Instrument {
	inst, _ := Lookup(symbol)
	return inst
}

// Symbols lists catalog symbols in order.
func Symbols() []string {
	out := make([]string, 0, len(Instruments))
	for _, inst := range Instruments {
		out = append(out, inst.Symbol)
	}
	return out
}

func (i Instrument) IsIndex() bool { return i.Class == Index }

// UnitLabel is "Points" for indices and "Pips" for everything else.
func (i Instrument) UnitLabel() string {
	if i.IsIndex() {
		return "Points"
	}
	return "Pips"
}

// PricePrecision is the number of decimals prices are displayed with.
func (i Instrument) PricePrecision() int {
	switch {
	case i.SelectableContract:
		return 2
	case i.QuoteCurrency == "JPY" || i.BaseCurrency == "JPY":
		return 2
	case i.PipSize >= 0.01:
		return 2
	}
	return 5
}
