package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/lotsize/pkg/id"
)

// FormatTradeOrg renders a Trade as an Org-mode block. Structured facts go
// in the PROPERTIES drawer; setup and notes become the body.
func FormatTradeOrg(t Trade) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** %s %s %s (%s)\n", t.Date, t.Type, t.Pair, shortID(t.ID))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":ID: %s\n", t.ID)
	fmt.Fprintf(&b, ":DATE: %s\n", t.Date)
	fmt.Fprintf(&b, ":PAIR: %s\n", t.Pair)
	fmt.Fprintf(&b, ":TYPE: %s\n", t.Type)
	fmt.Fprintf(&b, ":ENTRY_PRICE: %.5f\n", t.EntryPrice)
	fmt.Fprintf(&b, ":EXIT_PRICE: %.5f\n", t.ExitPrice)
	fmt.Fprintf(&b, ":LOT_SIZE: %.2f\n", t.LotSize)
	fmt.Fprintf(&b, ":PNL: %.2f\n", t.PnL)
	fmt.Fprintf(&b, ":STATUS: %s\n", t.Status)
	if at, err := id.Time(t.ID); err == nil {
		fmt.Fprintf(&b, ":RECORDED: %s\n", at.Format(time.RFC3339))
	}
	b.WriteString(":END:\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "*** Setup\n- %s\n\n", t.Setup)
	fmt.Fprintf(&b, "*** Notes\n- %s\n", t.Notes)

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []Trade) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[len(full)-8:]
}
