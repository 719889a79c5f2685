package journal

import (
	"testing"
	"time"

	"github.com/rustyeddy/lotsize/risk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pnl(v float64) *float64 { return &v }

func TestNewTradeDefaults(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 7, 15, 4, 5, 0, time.UTC)
	tr, err := NewTrade(Draft{PnL: pnl(-25)}, now)
	require.NoError(t, err)

	assert.Len(t, tr.ID, 26)
	assert.Equal(t, "2024-06-07", tr.Date)
	assert.Equal(t, "EURUSD", tr.Pair)
	assert.Equal(t, risk.Buy, tr.Type)
	assert.Equal(t, 0.01, tr.LotSize)
	assert.Equal(t, -25.0, tr.PnL)
	assert.Equal(t, Loss, tr.Status)
}

func TestNewTradeKeepsInput(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC)
	tr, err := NewTrade(Draft{
		Date:       "2024-06-01",
		Pair:       "xauusd",
		Type:       risk.Sell,
		EntryPrice: 2350,
		ExitPrice:  2340,
		LotSize:    0.2,
		PnL:        pnl(200),
		Status:     Breakeven,
		Setup:      "range",
		Notes:      "faded the high",
	}, now)
	require.NoError(t, err)

	assert.Equal(t, "2024-06-01", tr.Date)
	assert.Equal(t, "XAUUSD", tr.Pair)
	assert.Equal(t, risk.Sell, tr.Type)
	assert.Equal(t, 0.2, tr.LotSize)
	assert.Equal(t, Breakeven, tr.Status)
	assert.Equal(t, "range", tr.Setup)
}

func TestNewTradeRejects(t *testing.T) {
	t.Parallel()

	now := time.Now()

	_, err := NewTrade(Draft{}, now)
	assert.ErrorIs(t, err, ErrIncompleteTrade)

	_, err = NewTrade(Draft{PnL: pnl(5), Date: "07/06/2024"}, now)
	assert.ErrorIs(t, err, ErrIncompleteTrade)
}

func TestStatusFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Win, StatusFor(0.01))
	assert.Equal(t, Loss, StatusFor(-3))
	assert.Equal(t, Breakeven, StatusFor(0))
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	s, ok := ParseStatus("win")
	assert.True(t, ok)
	assert.Equal(t, Win, s)

	s, ok = ParseStatus("be")
	assert.True(t, ok)
	assert.Equal(t, Breakeven, s)

	_, ok = ParseStatus("draw")
	assert.False(t, ok)
}
