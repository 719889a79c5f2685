package risk

// Side picks which protective level a distance belongs to.
type Side int

const (
	StopLoss Side = iota
	TakeProfit
)

// DistanceToPrice places a level distance pips/points away from entry. For a
// BUY the stop sits below entry and the target above; a SELL mirrors both.
func DistanceToPrice(distance, entry, pipSize float64, dir Direction, side Side) float64 {
	move := distance * pipSize
	if (dir == Buy) == (side == TakeProfit) {
		return entry + move
	}
	return entry - move
}

// PriceToDistance is the unsigned distance of price from entry in
// pips/points. Which side of entry the price was on is not recoverable.
func PriceToDistance(price, entry, pipSize float64) float64 {
	if pipSize <= 0 {
		return 0
	}
	return abs(entry-price) / pipSize
}

// RiskAmountToPercent returns amount unchanged when balance <= 0.
func RiskAmountToPercent(amount, balance float64) float64 {
	if balance <= 0 {
		return amount
	}
	return amount / balance * 100
}

// RiskPercentToAmount returns percent unchanged when balance <= 0.
func RiskPercentToAmount(percent, balance float64) float64 {
	if balance <= 0 {
		return percent
	}
	return percent / 100 * balance
}
