package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/lotsize/pkg/id"
	"github.com/rustyeddy/lotsize/risk"
)

// Draft is a journal entry as typed in. PnL is required; everything else
// has a default.
type Draft struct {
	Date       string
	Pair       string
	Type       risk.Direction
	EntryPrice float64
	ExitPrice  float64
	LotSize    float64
	PnL        *float64
	Status     Status
	Setup      string
	Notes      string
}

// NewTrade fills in defaults and assigns an ID. A missing status is taken
// from the sign of the PnL.
func NewTrade(d Draft, now time.Time) (Trade, error) {
	if d.PnL == nil {
		return Trade{}, ErrIncompleteTrade
	}

	date := strings.TrimSpace(d.Date)
	if date == "" {
		date = now.Format(dateLayout)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return Trade{}, fmt.Errorf("%w: bad date %q", ErrIncompleteTrade, d.Date)
	}

	t := Trade{
		ID:         id.NewAt(now),
		Date:       date,
		Pair:       strings.ToUpper(strings.TrimSpace(d.Pair)),
		Type:       d.Type,
		EntryPrice: d.EntryPrice,
		ExitPrice:  d.ExitPrice,
		LotSize:    d.LotSize,
		PnL:        *d.PnL,
		Status:     d.Status,
		Setup:      d.Setup,
		Notes:      d.Notes,
	}
	if t.Pair == "" {
		t.Pair = "EURUSD"
	}
	if t.Type == "" {
		t.Type = risk.Buy
	}
	if t.LotSize == 0 {
		t.LotSize = risk.MinLots
	}
	if t.Status == "" {
		t.Status = StatusFor(t.PnL)
	}
	return t, nil
}

func StatusFor(pnl float64) Status {
	switch {
	case pnl > 0:
		return Win
	case pnl < 0:
		return Loss
	}
	return Breakeven
}

func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case Win:
		return Win, true
	case Loss:
		return Loss, true
	case Breakeven, "BE":
		return Breakeven, true
	}
	return "", false
}
