package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/lotsize/market"
)

var instrumentsCmd = &cobra.Command{
	Use:   "instruments",
	Short: "List supported instruments",
	Args:  cobra.NoArgs,
	RunE:  runInstruments,
}

func init() {
	rootCmd.AddCommand(instrumentsCmd)
}

func runInstruments(cmd *cobra.Command, args []string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SYMBOL\tCLASS\tQUOTE\tCONTRACT\tPIP/POINT\tDEFAULT PRICE")
	for _, inst := range market.Instruments {
		contract := fmt.Sprintf("%g", inst.ContractSize)
		if inst.SelectableContract {
			contract += " (1/100/1000)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%g %s\t%.*f\n",
			inst.Symbol, inst.Class, inst.QuoteCurrency, contract,
			inst.PipSize, inst.UnitLabel(), inst.PricePrecision(), inst.DefaultPrice)
	}
	return tw.Flush()
}
