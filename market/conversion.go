package market

// QuoteToUSD converts an amount in inst's quote currency to USD.
//
// USD-quoted instruments need no conversion. JPY-quoted ones use the supplied
// USD/JPY reference rate. USD-based pairs divide by the pair's own price,
// which is unknown when entry <= 0; ok is false in that case so the caller can
// pick its own fallback. Anything else is treated as already USD-denominated.
func QuoteToUSD(amount float64, inst Instrument, entry, usdjpy float64) (usd float64, ok bool) {
	switch {
	case inst.QuoteCurrency == "USD":
		return amount, true
	case inst.QuoteCurrency == "JPY":
		return amount / usdjpy, true
	case inst.BaseCurrency == "USD":
		if entry > 0 {
			return amount / entry, true
		}
		return 0, false
	}
	return amount, true
}
