package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/lotsize/analysis"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "AI review of your recent trades",
	Long: `Analyze sends your most recent trades and balance to a Gemini model and
prints a summary, strengths, weaknesses and a recommendation.

The API key comes from GEMINI_API_KEY (or API_KEY), which may be set in a
.env file. Failures never abort the command; a placeholder review is shown
instead and the cause is logged.`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

var analyzeJSON bool

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the review as JSON")
}

// newAnalyzer is replaced in tests.
var newAnalyzer = func() analysis.Analyzer {
	return analysis.NewClient(cfg.Analysis, logger)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	j, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer j.Close()

	trades, err := j.ListTrades(cmd.Context())
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}
	s, err := j.Settings(cmd.Context())
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}

	res := newAnalyzer().Analyze(cmd.Context(), trades, s.Balance)

	w := cmd.OutOrStdout()
	if analyzeJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Fprintf(w, "%s\n", res.Summary)
	if len(res.Strengths) > 0 {
		fmt.Fprintln(w, "\nStrengths:")
		for _, v := range res.Strengths {
			fmt.Fprintf(w, "  + %s\n", v)
		}
	}
	if len(res.Weaknesses) > 0 {
		fmt.Fprintln(w, "\nWeaknesses:")
		for _, v := range res.Weaknesses {
			fmt.Fprintf(w, "  - %s\n", v)
		}
	}
	fmt.Fprintf(w, "\nRecommendation: %s\n", res.Recommendation)
	return nil
}
