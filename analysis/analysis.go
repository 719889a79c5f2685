// Package analysis reviews the trade journal with a language model and
// always returns something displayable.
package analysis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rustyeddy/lotsize/journal"
)

// Result is the review shown on the dashboard.
type Result struct {
	Summary        string   `json:"summary"`
	Strengths      []string `json:"strengths"`
	Weaknesses     []string `json:"weaknesses"`
	Recommendation string   `json:"recommendation"`
}

// Analyzer never fails; faults are replaced by Fallback.
type Analyzer interface {
	Analyze(ctx context.Context, trades []journal.Trade, balance float64) Result
}

// EmptyJournal is returned when there is nothing to analyze.
func EmptyJournal() Result {
	return Result{
		Summary:        "Your journal is empty.",
		Strengths:      []string{"Ready to start"},
		Weaknesses:     []string{"No data yet"},
		Recommendation: "Log your first trade to get AI-powered insights.",
	}
}

// Fallback is returned when the model could not be reached or answered
// with something unusable.
func Fallback() Result {
	return Result{
		Summary:        "Unable to generate analysis at this time.",
		Strengths:      []string{},
		Weaknesses:     []string{},
		Recommendation: "Please try again later.",
	}
}

const DefaultMaxTrades = 50

// BuildPrompt describes at most max of the most recent trades. trades are
// expected most recent first, as the journal lists them.
func BuildPrompt(trades []journal.Trade, balance float64, max int) string {
	if max <= 0 {
		max = DefaultMaxTrades
	}
	if len(trades) > max {
		trades = trades[:max]
	}

	lines := make([]string, 0, len(trades))
	for _, t := range trades {
		setup := t.Setup
		if setup == "" {
			setup = "N/A"
		}
		lines = append(lines, fmt.Sprintf("Date: %s, Pair: %s, Type: %s, PnL: %s, Result: %s, Setup: %s",
			t.Date, t.Pair, t.Type, num(t.PnL), t.Status, setup))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a professional forex trading mentor. Analyze the following recent trades for a student with a $%s account.\n\n", num(balance))
	b.WriteString("Trades:\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\nProvide a JSON response with performance summary, strengths, risks, and a recommendation.\n")
	return b.String()
}

func num(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
