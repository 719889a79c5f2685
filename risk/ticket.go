package risk

import (
	"math"
	"strconv"
	"strings"

	"github.com/rustyeddy/lotsize/market"
)

const (
	defaultStop      = 20.0
	defaultIndexStop = 50.0

	distancePlaces = 1
	moneyPlaces    = 2
)

// Broker contract models for instruments with a selectable contract size.
const (
	ContractMicro    = 1.0
	ContractMini     = 100.0
	ContractStandard = 1000.0
)

var ContractSizes = []float64{ContractMicro, ContractMini, ContractStandard}

func ValidContractSize(c float64) bool {
	for _, v := range ContractSizes {
		if c == v {
			return true
		}
	}
	return false
}

// ParseContractSize accepts "micro", "mini", "standard" or the numeric size.
func ParseContractSize(s string) (float64, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "micro":
		return ContractMicro, true
	case "mini":
		return ContractMini, true
	case "standard", "std":
		return ContractStandard, true
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !ValidContractSize(v) {
		return 0, false
	}
	return v, true
}

func ParseDirection(s string) (Direction, bool) {
	switch Direction(strings.ToUpper(strings.TrimSpace(s))) {
	case Buy:
		return Buy, true
	case Sell:
		return Sell, true
	}
	return "", false
}

func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToUpper(strings.TrimSpace(s))) {
	case ModeRisk:
		return ModeRisk, true
	case ModeLots:
		return ModeLots, true
	}
	return "", false
}

// Ticket is the editable state behind a calculator form. Each setter treats
// the field it edits as the source of truth and recomputes the fields that
// depend on it; nothing is recomputed transitively.
type Ticket struct {
	Instrument market.Instrument
	Direction  Direction
	Balance    float64

	Mode        Mode
	RiskAmount  float64
	RiskPercent float64
	LotSize     float64

	ContractSize float64
	Levels       Levels

	USDJPY float64
}

// NewTicket returns a ticket for inst with the instrument's default levels.
func NewTicket(inst market.Instrument, dir Direction, balance float64) *Ticket {
	t := &Ticket{
		Direction:   dir,
		Balance:     balance,
		Mode:        ModeLots,
		RiskPercent: 0.1,
		LotSize:     0.06,
		USDJPY:      ReferenceUSDJPY,
	}
	t.SetRiskAmount(DefaultRiskAmount)
	t.Mode = ModeLots
	t.SelectInstrument(inst)
	return t
}

// DefaultTicket is the form as first opened: Nikkei 225, SELL, 0.06 lots.
func DefaultTicket(balance float64) *Ticket {
	return NewTicket(market.Get("225JPY"), Sell, balance)
}

// SelectInstrument resets entry, distances and contract size to the
// instrument's defaults and derives both prices.
func (t *Ticket) SelectInstrument(inst market.Instrument) {
	t.Instrument = inst

	stop := defaultStop
	if inst.IsIndex() {
		stop = defaultIndexStop
	}

	t.ContractSize = inst.ContractSize
	if inst.SelectableContract {
		t.ContractSize = ContractMini
	}

	t.Levels = Levels{
		Entry:              inst.DefaultPrice,
		StopLossDistance:   stop,
		TakeProfitDistance: stop * 2,
	}
	t.derivePrices()
}

func (t *Ticket) SetDirection(dir Direction) {
	t.Direction = dir
	t.derivePrices()
}

func (t *Ticket) SetEntry(price float64) {
	t.Levels.Entry = price
	t.derivePrices()
}

func (t *Ticket) SetStopLossDistance(d float64) {
	t.Levels.StopLossDistance = d
	t.Levels.StopLossPrice = t.price(d, StopLoss)
}

func (t *Ticket) SetStopLossPrice(p float64) {
	t.Levels.StopLossPrice = p
	t.Levels.StopLossDistance = t.distance(p)
}

func (t *Ticket) SetTakeProfitDistance(d float64) {
	t.Levels.TakeProfitDistance = d
	t.Levels.TakeProfitPrice = t.price(d, TakeProfit)
}

func (t *Ticket) SetTakeProfitPrice(p float64) {
	t.Levels.TakeProfitPrice = p
	t.Levels.TakeProfitDistance = t.distance(p)
}

// SetRiskAmount switches to RISK mode and keeps the percent in step.
func (t *Ticket) SetRiskAmount(amount float64) {
	t.Mode = ModeRisk
	t.RiskAmount = amount
	if !math.IsNaN(amount) && t.Balance > 0 {
		t.RiskPercent = RoundTo(RiskAmountToPercent(amount, t.Balance), moneyPlaces)
	}
}

// SetRiskPercent switches to RISK mode and keeps the amount in step.
func (t *Ticket) SetRiskPercent(percent float64) {
	t.Mode = ModeRisk
	t.RiskPercent = percent
	if !math.IsNaN(percent) && t.Balance > 0 {
		t.RiskAmount = RoundTo(RiskPercentToAmount(percent, t.Balance), moneyPlaces)
	}
}

func (t *Ticket) SetLotSize(lots float64) {
	t.Mode = ModeLots
	t.LotSize = lots
}

// SetBalance re-derives the risk percent from the dollar amount.
func (t *Ticket) SetBalance(balance float64) {
	t.Balance = balance
	if balance > 0 {
		t.RiskPercent = RoundTo(RiskAmountToPercent(t.RiskAmount, balance), moneyPlaces)
	}
}

// SetContractSize applies a broker contract model. Sizes other than
// ContractSizes are ignored.
func (t *Ticket) SetContractSize(c float64) bool {
	if !ValidContractSize(c) {
		return false
	}
	t.ContractSize = c
	return true
}

func (t *Ticket) Request() Request {
	req := Request{
		Instrument:  t.Instrument,
		Direction:   t.Direction,
		Mode:        t.Mode,
		RiskAmount:  t.RiskAmount,
		RiskPercent: t.RiskPercent,
		LotSize:     t.LotSize,
		Levels:      t.Levels,
		USDJPY:      t.USDJPY,
	}
	if t.Instrument.SelectableContract {
		req.ContractSize = t.ContractSize
	}
	return req
}

func (t *Ticket) Compute() Result {
	return Compute(t.Request())
}

func (t *Ticket) derivePrices() {
	t.Levels.StopLossPrice = t.price(t.Levels.StopLossDistance, StopLoss)
	t.Levels.TakeProfitPrice = t.price(t.Levels.TakeProfitDistance, TakeProfit)
}

func (t *Ticket) price(distance float64, side Side) float64 {
	p := DistanceToPrice(distance, t.Levels.Entry, t.Instrument.PipSize, t.Direction, side)
	return RoundTo(p, t.Instrument.PricePrecision())
}

func (t *Ticket) distance(price float64) float64 {
	return RoundTo(PriceToDistance(price, t.Levels.Entry, t.Instrument.PipSize), distancePlaces)
}
