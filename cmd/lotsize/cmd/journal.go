package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/lotsize/journal"
	"github.com/rustyeddy/lotsize/risk"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Record and query closed trades",
	Long: `Record closed trades and query the trade journal.

Subcommands:
  add     - Record a closed trade
  list    - List all trades, most recent first
  show    - Show one trade by ID
  delete  - Delete a trade by ID
  stats   - Totals, win rate and the recent P/L series
  today   - List trades dated today
  day     - List trades dated on a specific day
  export  - Write the journal as CSV or Org

Examples:
  lotsize journal add --pair EURUSD --type BUY --entry 1.0850 --exit 1.0890 --lots 0.5 --pnl 200
  lotsize journal stats
  lotsize journal export --format csv -o trades.csv`,
}

var journalAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a closed trade",
	Long: `Record a closed trade. --pnl is required; everything else has a default
(today, EURUSD, BUY, 0.01 lots).

Without --status the result is taken from the sign of the P/L rather than
defaulting to WIN: positive is WIN, negative is LOSS, zero is BREAKEVEN.`,
	Args: cobra.NoArgs,
	RunE: runJournalAdd,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all trades, most recent first",
	Args:  cobra.NoArgs,
	RunE:  runJournalList,
}

var journalShowCmd = &cobra.Command{
	Use:   "show <trade-id>",
	Short: "Show details of a specific trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalShow,
}

var journalDeleteCmd = &cobra.Command{
	Use:   "delete <trade-id>",
	Short: "Delete a trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDelete,
}

var journalStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show journal statistics",
	Args:  cobra.NoArgs,
	RunE:  runJournalStats,
}

var journalTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "List trades dated today",
	Args:  cobra.NoArgs,
	RunE:  runJournalToday,
}

var journalDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List trades dated on a specific day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDay,
}

var journalExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the journal as CSV or Org",
	Args:  cobra.NoArgs,
	RunE:  runJournalExport,
}

var (
	addDate   string
	addPair   string
	addType   string
	addEntry  float64
	addExit   float64
	addLots   float64
	addPnL    string
	addStatus string
	addSetup  string
	addNotes  string

	exportFormat string
	exportOutput string
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalAddCmd)
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalShowCmd)
	journalCmd.AddCommand(journalDeleteCmd)
	journalCmd.AddCommand(journalStatsCmd)
	journalCmd.AddCommand(journalTodayCmd)
	journalCmd.AddCommand(journalDayCmd)
	journalCmd.AddCommand(journalExportCmd)

	journalAddCmd.Flags().StringVar(&addDate, "date", "", "trade date YYYY-MM-DD (default today)")
	journalAddCmd.Flags().StringVarP(&addPair, "pair", "p", "", "instrument (default EURUSD)")
	journalAddCmd.Flags().StringVarP(&addType, "type", "t", "", "BUY or SELL (default BUY)")
	journalAddCmd.Flags().Float64Var(&addEntry, "entry", 0, "entry price")
	journalAddCmd.Flags().Float64Var(&addExit, "exit", 0, "exit price")
	journalAddCmd.Flags().Float64VarP(&addLots, "lots", "l", 0, "lot size (default 0.01)")
	journalAddCmd.Flags().StringVar(&addPnL, "pnl", "", "realized P/L in USD (required)")
	journalAddCmd.Flags().StringVar(&addStatus, "status", "", "WIN, LOSS or BREAKEVEN (default from P/L)")
	journalAddCmd.Flags().StringVar(&addSetup, "setup", "", "setup name, e.g. Breakout")
	journalAddCmd.Flags().StringVar(&addNotes, "notes", "", "free-form notes")
	journalAddCmd.MarkFlagRequired("pnl")

	journalExportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "export format: csv or org")
	journalExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
}

func runJournalAdd(cmd *cobra.Command, args []string) error {
	pnl, err := strconv.ParseFloat(strings.TrimSpace(addPnL), 64)
	if err != nil {
		return fmt.Errorf("pnl %q: %w", addPnL, journal.ErrIncompleteTrade)
	}

	d := journal.Draft{
		Date:       addDate,
		Pair:       addPair,
		EntryPrice: addEntry,
		ExitPrice:  addExit,
		LotSize:    addLots,
		PnL:        &pnl,
		Setup:      addSetup,
		Notes:      addNotes,
	}
	if addType != "" {
		dir, ok := risk.ParseDirection(addType)
		if !ok {
			return fmt.Errorf("type must be BUY or SELL, got %q", addType)
		}
		d.Type = dir
	}
	if addStatus != "" {
		st, ok := journal.ParseStatus(addStatus)
		if !ok {
			return fmt.Errorf("status must be WIN, LOSS or BREAKEVEN, got %q", addStatus)
		}
		d.Status = st
	}

	t, err := journal.NewTrade(d, time.Now())
	if err != nil {
		return err
	}

	j, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer j.Close()

	if err := j.AppendTrade(cmd.Context(), t); err != nil {
		return err
	}
	logger.Info("trade recorded",
		zap.String("id", t.ID),
		zap.String("pair", t.Pair),
		zap.Float64("pnl", t.PnL))

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Recorded %s %s %s %+.2f (%s)\n", t.Date, t.Type, t.Pair, t.PnL, t.ID)
	return nil
}

func runJournalList(cmd *cobra.Command, args []string) error {
	j, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer j.Close()

	trades, err := j.ListTrades(cmd.Context())
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}
	if len(trades) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No trades yet.")
		return nil
	}

	w := cmd.OutOrStdout()
	for _, t := range trades {
		fmt.Fprintf(w, "%s  %s  %-4s  %-7s  %8.2f  %-9s  %s\n",
			t.ID, t.Date, t.Type, t.Pair, t.PnL, t.Status, t.Setup)
	}
	return nil
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	j, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer j.Close()

	t, err := j.GetTrade(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(t))
	return nil
}

func runJournalDelete(cmd *cobra.Command, args []string) error {
	j, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer j.Close()

	id := args[0]
	if _, err := j.GetTrade(cmd.Context(), id); errors.Is(err, journal.ErrTradeNotFound) {
		logger.Warn("delete of unknown trade", zap.String("id", id))
	}
	if err := j.DeleteTrade(cmd.Context(), id); err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %s\n", id)
	return nil
}

func runJournalStats(cmd *cobra.Command, args []string) error {
	j, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer j.Close()

	trades, err := j.ListTrades(cmd.Context())
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}
	settings, err := j.Settings(cmd.Context())
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}

	s := journal.ComputeStats(trades)
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Balance:    %.2f %s\n", settings.Balance, settings.Currency)
	fmt.Fprintf(w, "Trades:     %d\n", s.Trades)
	fmt.Fprintf(w, "Total P/L:  $%.2f\n", s.TotalPnL)
	fmt.Fprintf(w, "Win Rate:   %.1f%% (%d W / %d L)\n", s.WinRate, s.Wins, s.Losses)

	if len(s.Recent) > 0 {
		fmt.Fprintln(w, "\nRecent:")
		for _, p := range s.Recent {
			fmt.Fprintf(w, "  %s  %8.2f\n", p.Label, p.PnL)
		}
	}
	return nil
}

func runJournalToday(cmd *cobra.Command, args []string) error {
	return listDay(cmd, time.Now().Format("2006-01-02"))
}

func runJournalDay(cmd *cobra.Command, args []string) error {
	return listDay(cmd, args[0])
}

func listDay(cmd *cobra.Command, day string) error {
	start, end, err := dayBounds(time.Local, day)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	j, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer j.Close()

	trades, err := j.ListTradesBetween(cmd.Context(), start, end)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradesOrg(trades))
	return nil
}

func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)
	return start, end, nil
}

func runJournalExport(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(exportFormat)
	if format != "csv" && format != "org" {
		return fmt.Errorf("format must be csv or org, got %q", exportFormat)
	}

	j, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer j.Close()

	trades, err := j.ListTrades(cmd.Context())
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOutput, err)
		}
		defer f.Close()
		w = f
	}

	if format == "org" {
		_, err = fmt.Fprintln(w, journal.FormatTradesOrg(trades))
	} else {
		err = journal.WriteCSV(w, trades)
	}
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if exportOutput != "" {
		logger.Info("journal exported",
			zap.String("format", format),
			zap.String("file", exportOutput),
			zap.Int("trades", len(trades)))
	}
	return nil
}
