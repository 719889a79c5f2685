package analysis

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/lotsize/journal"
	"github.com/rustyeddy/lotsize/risk"
)

func trades(n int) []journal.Trade {
	out := make([]journal.Trade, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, journal.Trade{
			ID:     fmt.Sprintf("T%03d", i),
			Date:   "2026-10-01",
			Pair:   "EURUSD",
			Type:   risk.Buy,
			PnL:    float64(i) - 1.5,
			Status: journal.Loss,
		})
	}
	return out
}

func TestBuildPrompt(t *testing.T) {
	ts := []journal.Trade{
		{Date: "2026-10-02", Pair: "XAUUSD", Type: risk.Sell, PnL: 120.5, Status: journal.Win, Setup: "Breakout"},
		{Date: "2026-10-01", Pair: "EURUSD", Type: risk.Buy, PnL: -40, Status: journal.Loss},
	}

	p := BuildPrompt(ts, 10000, 50)

	assert.Contains(t, p, "$10000 account")
	assert.Contains(t, p, "Date: 2026-10-02, Pair: XAUUSD, Type: SELL, PnL: 120.5, Result: WIN, Setup: Breakout")
	assert.Contains(t, p, "Date: 2026-10-01, Pair: EURUSD, Type: BUY, PnL: -40, Result: LOSS, Setup: N/A")
}

func TestBuildPromptCapsTrades(t *testing.T) {
	p := BuildPrompt(trades(60), 5000, 0)

	assert.Equal(t, DefaultMaxTrades, strings.Count(p, "Date: "))
	assert.Contains(t, p, "PnL: -1.5,")
	assert.NotContains(t, p, "PnL: 50.5,", "trade 52 is beyond the 50 most recent")
}

func TestPayloads(t *testing.T) {
	e := EmptyJournal()
	assert.Equal(t, "Your journal is empty.", e.Summary)
	assert.Equal(t, []string{"Ready to start"}, e.Strengths)
	assert.Equal(t, []string{"No data yet"}, e.Weaknesses)
	assert.Equal(t, "Log your first trade to get AI-powered insights.", e.Recommendation)

	f := Fallback()
	assert.Equal(t, "Unable to generate analysis at this time.", f.Summary)
	assert.Empty(t, f.Strengths)
	assert.NotNil(t, f.Strengths)
	assert.Empty(t, f.Weaknesses)
	assert.Equal(t, "Please try again later.", f.Recommendation)
}
