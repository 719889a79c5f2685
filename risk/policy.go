package risk

// Policy holds advisory limits. A zero field disables its check.
type Policy struct {
	MaxRiskPct float64 // percent of balance, e.g. 1.0
	MinRR      float64 // e.g. 1.5
}

type Violation struct {
	Code string
	Msg  string
}

type Decision struct {
	OK         bool
	Violations []Violation

	RiskPct float64
	RR      float64
}
