package risk

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func orDefault(x, def float64) float64 {
	if x == 0 || math.IsNaN(x) {
		return def
	}
	return x
}

// ParseOr parses a numeric text field. Unparsable, NaN or zero input yields
// def, the same way an empty lot size or risk amount would.
func ParseOr(s string, def float64) float64 {
	return orDefault(ParseNumber(s, def), def)
}

// ParseNumber parses a numeric text field, keeping zero. Only text that is
// not a number yields def.
func ParseNumber(s string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) {
		return def
	}
	return v
}

// SizeLots returns the largest lot size, in steps of 0.01, whose loss at the
// stop does not exceed amount. The result is never below MinLots.
func SizeLots(amount, stopDistance, unitValue float64) float64 {
	raw := MinLots
	if stopDistance > 0 && unitValue > 0 {
		raw = amount / (stopDistance * unitValue)
	}
	return math.Max(MinLots, math.Floor(raw*100)/100)
}

// RatioString formats reward/risk with two decimals, or "0" when there is
// no risk.
func RatioString(reward, risk float64) string {
	if risk > 0 {
		rr := reward / risk
		if math.IsNaN(rr) || math.IsInf(rr, 0) {
			return "0"
		}
		return exact(rr).StringFixed(2)
	}
	return "0"
}

// RR is the numeric form of RatioString.
func RR(reward, risk float64) float64 {
	if risk <= 0 {
		return 0
	}
	return reward / risk
}

// RiskPct is planned risk as a percentage of equity.
func RiskPct(plannedRiskUSD, equity float64) float64 {
	if equity <= 0 {
		return math.Inf(1)
	}
	return plannedRiskUSD / equity * 100
}

// RoundTo rounds the stored value of x half away from zero to the given
// number of decimals, so 2.675 (stored as 2.67499...) rounds to 2.67.
func RoundTo(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return exact(x).Round(int32(places)).InexactFloat64()
}

// exact is the full binary expansion of a finite x as a decimal.
func exact(x float64) decimal.Decimal {
	frac, exp := math.Frexp(x)
	mant := big.NewInt(int64(math.Ldexp(frac, 53)))
	exp -= 53

	if exp >= 0 {
		return decimal.NewFromBigInt(mant.Lsh(mant, uint(exp)), 0)
	}
	// m * 2^-k == m * 5^k * 10^-k
	k := int64(-exp)
	pow := new(big.Int).Exp(big.NewInt(5), big.NewInt(k), nil)
	return decimal.NewFromBigInt(mant.Mul(mant, pow), int32(-k))
}
