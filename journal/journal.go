// journal/journal.go
package journal

import (
	"context"
	"errors"

	"github.com/rustyeddy/lotsize/risk"
)

var (
	ErrIncompleteTrade = errors.New("trade needs a pnl and a date")
	ErrTradeNotFound   = errors.New("trade not found")
)

type Status string

const (
	Win       Status = "WIN"
	Loss      Status = "LOSS"
	Breakeven Status = "BREAKEVEN"
)

// Trade is one closed trade in the journal.
type Trade struct {
	ID         string         `json:"id"`
	Date       string         `json:"date"` // YYYY-MM-DD
	Pair       string         `json:"pair"`
	Type       risk.Direction `json:"type"`
	EntryPrice float64        `json:"entryPrice"`
	ExitPrice  float64        `json:"exitPrice"`
	LotSize    float64        `json:"lotSize"`
	PnL        float64        `json:"pnl"` // USD
	Status     Status         `json:"status"`
	Notes      string         `json:"notes,omitempty"`
	Setup      string         `json:"setup,omitempty"`
}

type Settings struct {
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
}

func DefaultSettings() Settings {
	return Settings{Balance: 10000, Currency: "USD"}
}

// Store keeps trades most recent first, plus the account settings.
type Store interface {
	ListTrades(ctx context.Context) ([]Trade, error)
	AppendTrade(ctx context.Context, t Trade) error
	DeleteTrade(ctx context.Context, id string) error

	Settings(ctx context.Context) (Settings, error)
	SaveSettings(ctx context.Context, s Settings) error

	Close() error
}
