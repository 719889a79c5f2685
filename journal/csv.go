package journal

import (
	"encoding/csv"
	"io"
	"strconv"
)

var csvHeader = []string{"id", "date", "pair", "type", "entry_price", "exit_price", "lot_size", "pnl", "status", "setup", "notes"}

// WriteCSV writes trades with a header row.
func WriteCSV(w io.Writer, trades []Trade) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, t := range trades {
		err := cw.Write([]string{
			t.ID,
			t.Date,
			t.Pair,
			string(t.Type),
			f(t.EntryPrice),
			f(t.ExitPrice),
			f(t.LotSize),
			f(t.PnL),
			string(t.Status),
			t.Setup,
			t.Notes,
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
