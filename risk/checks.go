package risk

import "fmt"

func (d *Decision) add(code, msg string) {
	d.Violations = append(d.Violations, Violation{Code: code, Msg: msg})
	d.OK = false
}

// Review checks a computed result against p. It only reports; the result is
// still what gets displayed.
func Review(res Result, balance float64, p Policy) Decision {
	d := Decision{OK: true, RR: RR(res.RewardUSD, res.RiskUSD)}

	if balance > 0 {
		d.RiskPct = RiskPct(res.RiskUSD, balance)
		if p.MaxRiskPct > 0 && d.RiskPct > p.MaxRiskPct {
			d.add("RISK_TOO_HIGH",
				fmt.Sprintf("risk %.2f%% of balance exceeds max %.2f%%", d.RiskPct, p.MaxRiskPct))
		}
	}

	if p.MinRR > 0 && res.RiskUSD > 0 && d.RR < p.MinRR {
		d.add("RR_TOO_LOW",
			fmt.Sprintf("RR %.2f below minimum %.2f", d.RR, p.MinRR))
	}

	return d
}
