package risk

// Linear instruments: one lot moves a fixed number of dollars per pip/point,
// so risk = lots * stop distance * unit value.
// USD_MXN style pairs settle in MXN and the dollar P/L depends on the exit
// price, so they are valued from the actual stop/target prices instead.

import (
	"math"

	"github.com/rustyeddy/lotsize/market"
)

const (
	// ReferenceUSDJPY normalizes JPY-quoted values to USD.
	ReferenceUSDJPY = 158.00

	MinLots           = 0.01
	DefaultRiskAmount = 10.0

	// usdBaseFallback is the unit value used for USD-based pairs when no
	// entry price is available to convert with.
	usdBaseFallback = 0.63
)

type Direction string

const (
	Buy  Direction = "BUY"
	Sell Direction = "SELL"
)

// Mode selects which risk input is authoritative.
type Mode string

const (
	ModeRisk Mode = "RISK" // size the position from the dollar risk
	ModeLots Mode = "LOTS" // take the lot size as given
)

// Levels are the trade's prices and their distances from entry in
// pips/points.
type Levels struct {
	Entry              float64
	StopLossPrice      float64
	StopLossDistance   float64
	TakeProfitPrice    float64
	TakeProfitDistance float64
}

type Request struct {
	Instrument market.Instrument
	Direction  Direction
	Mode       Mode

	RiskAmount  float64 // USD
	RiskPercent float64 // display only, derived from RiskAmount
	LotSize     float64

	Levels Levels

	// ContractSize overrides the catalog contract size for instruments with
	// SelectableContract set. Zero means no override.
	ContractSize float64

	// USDJPY is the conversion rate for JPY-quoted instruments. Zero means
	// ReferenceUSDJPY.
	USDJPY float64
}

type Result struct {
	Lots            float64
	RiskUSD         float64
	RewardUSD       float64
	RiskReward      string // "N" meaning 1:N, or "0"
	ValuePerUnitUSD float64
}

// Compute sizes and values a trade. It never fails: missing or degenerate
// inputs fall back to defaults so there is always something to display.
func Compute(req Request) Result {
	inst := req.Instrument
	lv := req.Levels

	usdjpy := req.USDJPY
	if usdjpy <= 0 || math.IsNaN(usdjpy) {
		usdjpy = ReferenceUSDJPY
	}
	lotSize := orDefault(req.LotSize, MinLots)
	riskAmt := orDefault(req.RiskAmount, DefaultRiskAmount)

	var res Result
	if inst.NonLinear {
		res = computeNonLinear(req, lotSize, riskAmt)
	} else {
		unit := UnitValue(inst, req.ContractSize, lv.Entry, usdjpy)

		lots := lotSize
		if req.Mode == ModeRisk {
			lots = SizeLots(riskAmt, lv.StopLossDistance, unit)
		}

		res = Result{
			Lots:            lots,
			RiskUSD:         lots * lv.StopLossDistance * unit,
			RewardUSD:       lots * lv.TakeProfitDistance * unit,
			ValuePerUnitUSD: lots * unit,
		}
	}

	res.RiskReward = RatioString(res.RewardUSD, res.RiskUSD)
	return res
}

func computeNonLinear(req Request, lotSize, riskAmt float64) Result {
	inst := req.Instrument
	lv := req.Levels

	// Sizing uses the entry price as an approximation of the exit price.
	approx := 0.0
	if lv.Entry > 0 {
		approx = inst.ContractSize * inst.PipSize / lv.Entry
	}

	lots := lotSize
	if req.Mode == ModeRisk {
		lots = SizeLots(riskAmt, lv.StopLossDistance, approx)
	}

	units := lots * inst.ContractSize

	var risk, reward float64
	if req.Direction == Buy {
		risk = settle(lv.Entry-lv.StopLossPrice, units, lv.StopLossPrice)
		reward = settle(lv.TakeProfitPrice-lv.Entry, units, lv.TakeProfitPrice)
	} else {
		risk = settle(lv.StopLossPrice-lv.Entry, units, lv.StopLossPrice)
		reward = settle(lv.Entry-lv.TakeProfitPrice, units, lv.TakeProfitPrice)
	}

	return Result{
		Lots:            lots,
		RiskUSD:         risk,
		RewardUSD:       reward,
		ValuePerUnitUSD: lots * approx,
	}
}

// settle converts a quote-currency price move on units into USD at the exit
// price.
func settle(move, units, exit float64) float64 {
	if exit <= 0 {
		return 0
	}
	return abs(move * units / exit)
}

// UnitValue is the USD value of a one pip/point move on 1.0 lot of a linear
// instrument. contractSize replaces the catalog contract size for
// instruments with SelectableContract when it is one of ContractSizes.
func UnitValue(inst market.Instrument, contractSize, entry, usdjpy float64) float64 {
	switch inst.Class {
	case market.Index:
		mult := inst.ContractSize
		if inst.SelectableContract && ValidContractSize(contractSize) {
			mult = contractSize
		}
		v := mult * inst.PipSize
		if inst.QuoteCurrency == "JPY" {
			return v / usdjpy
		}
		return v

	case market.Forex:
		v, ok := market.QuoteToUSD(inst.ContractSize*inst.PipSize, inst, entry, usdjpy)
		if !ok {
			return usdBaseFallback
		}
		return v
	}

	return inst.ContractSize * inst.PipSize
}
