package journal

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStatsEmpty(t *testing.T) {
	t.Parallel()

	s := ComputeStats(nil)
	assert.Equal(t, 0, s.Trades)
	assert.Equal(t, 0.0, s.WinRate)
	assert.Empty(t, s.Recent)
}

func TestComputeStats(t *testing.T) {
	t.Parallel()

	trades := []Trade{
		sampleTrade("C", "2024-03-03", 30),
		sampleTrade("B", "2024-03-02", 0),
		sampleTrade("A", "2024-03-01", -10),
	}

	s := ComputeStats(trades)
	assert.Equal(t, 3, s.Trades)
	assert.InDelta(t, 20.0, s.TotalPnL, 1e-9)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.InDelta(t, 100.0/3, s.WinRate, 1e-9)

	assert.Equal(t, []Point{
		{Label: "03-01", PnL: -10},
		{Label: "03-02", PnL: 0},
		{Label: "03-03", PnL: 30},
	}, s.Recent)
}

func TestComputeStatsRecentCapped(t *testing.T) {
	t.Parallel()

	var trades []Trade
	for i := 15; i >= 1; i-- {
		trades = append(trades, sampleTrade(fmt.Sprint(i), fmt.Sprintf("2024-04-%02d", i), float64(i)))
	}

	s := ComputeStats(trades)
	assert.Len(t, s.Recent, 10)
	assert.Equal(t, "04-06", s.Recent[0].Label)
	assert.Equal(t, "04-15", s.Recent[9].Label)
}
