package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceToPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		dir  Direction
		side Side
		want float64
	}{
		{"buy stop below", Buy, StopLoss, 1.0830},
		{"buy target above", Buy, TakeProfit, 1.0870},
		{"sell stop above", Sell, StopLoss, 1.0870},
		{"sell target below", Sell, TakeProfit, 1.0830},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := DistanceToPrice(20, 1.0850, 0.0001, tt.dir, tt.side)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestPriceToDistanceUnsigned(t *testing.T) {
	t.Parallel()

	below := PriceToDistance(1.0830, 1.0850, 0.0001)
	above := PriceToDistance(1.0870, 1.0850, 0.0001)

	assert.InDelta(t, 20.0, below, 1e-9)
	assert.InDelta(t, below, above, 1e-9)
	assert.Equal(t, 0.0, PriceToDistance(1.0, 1.0850, 0))
}

func TestDistancePriceRoundTrip(t *testing.T) {
	t.Parallel()

	markets := []struct {
		entry float64
		pip   float64
	}{
		{1.0850, 0.0001},
		{158.00, 0.01},
		{39000, 1},
		{2350, 0.01},
	}
	distances := []float64{0, 1, 20, 37.5, 150}

	for _, m := range markets {
		for _, d := range distances {
			for _, dir := range []Direction{Buy, Sell} {
				for _, side := range []Side{StopLoss, TakeProfit} {
					p := DistanceToPrice(d, m.entry, m.pip, dir, side)
					got := PriceToDistance(p, m.entry, m.pip)
					assert.InDelta(t, d, got, 1e-6, "entry=%v d=%v %s", m.entry, d, dir)
				}
			}
		}
	}
}

func TestRiskPercentRoundTrip(t *testing.T) {
	t.Parallel()

	for _, bal := range []float64{1, 2500.5, 10000} {
		for _, amt := range []float64{0, 10, 12.34, 500} {
			pct := RiskAmountToPercent(amt, bal)
			assert.InDelta(t, amt, RiskPercentToAmount(pct, bal), 1e-9)
		}
	}

	assert.Equal(t, 0.1, RiskAmountToPercent(10, 10000))
	assert.Equal(t, 125.0, RiskPercentToAmount(1.25, 10000))
}

func TestRiskConversionNoBalance(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 25.0, RiskAmountToPercent(25, 0))
	assert.Equal(t, 25.0, RiskPercentToAmount(25, -100))
}
