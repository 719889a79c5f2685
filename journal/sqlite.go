package journal

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/rustyeddy/lotsize/risk"

	_ "github.com/mattn/go-sqlite3"
)

const (
	keyBalance  = "balance"
	keyCurrency = "currency"

	tradeColumns = `id, date, pair, type, entry_price, exit_price, lot_size, pnl, status, notes, setup`
)

type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// ListTrades returns every trade, most recently appended first.
func (j *SQLite) ListTrades(ctx context.Context) ([]Trade, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		ORDER BY seq DESC`)
	if err != nil {
		return nil, err
	}
	return scanTrades(rows)
}

func (j *SQLite) AppendTrade(ctx context.Context, t Trade) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO trades
		(`+tradeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Date, t.Pair, string(t.Type), t.EntryPrice, t.ExitPrice,
		t.LotSize, t.PnL, string(t.Status), t.Notes, t.Setup,
	)
	if err != nil {
		return fmt.Errorf("append trade %s: %w", t.ID, err)
	}
	return nil
}

// DeleteTrade removes the trade with id. Unknown ids are not an error.
func (j *SQLite) DeleteTrade(ctx context.Context, id string) error {
	_, err := j.db.ExecContext(ctx, `DELETE FROM trades WHERE id = ?`, id)
	return err
}

// Settings returns the stored account settings, falling back to
// DefaultSettings for anything not saved yet.
func (j *SQLite) Settings(ctx context.Context) (Settings, error) {
	s := DefaultSettings()

	rows, err := j.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return s, err
	}
	defer rows.Close()

	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return s, err
		}
		switch k {
		case keyBalance:
			b, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return s, fmt.Errorf("settings balance %q: %w", v, err)
			}
			s.Balance = b
		case keyCurrency:
			s.Currency = v
		}
	}
	return s, rows.Err()
}

// SettingsSaved reports whether any setting has been written yet.
func (j *SQLite) SettingsSaved(ctx context.Context) (bool, error) {
	var n int
	if err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM settings`).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (j *SQLite) SaveSettings(ctx context.Context, s Settings) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	kv := [][2]string{
		{keyBalance, strconv.FormatFloat(s.Balance, 'f', -1, 64)},
		{keyCurrency, s.Currency},
	}
	for _, p := range kv {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO settings (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`, p[0], p[1]); err != nil {
			return fmt.Errorf("save setting %s: %w", p[0], err)
		}
	}
	return tx.Commit()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(row scanner) (Trade, error) {
	var (
		t           Trade
		typ, status string
	)
	err := row.Scan(
		&t.ID,
		&t.Date,
		&t.Pair,
		&typ,
		&t.EntryPrice,
		&t.ExitPrice,
		&t.LotSize,
		&t.PnL,
		&status,
		&t.Notes,
		&t.Setup,
	)
	t.Type = risk.Direction(typ)
	t.Status = Status(status)
	return t, err
}

func scanTrades(rows *sql.Rows) ([]Trade, error) {
	defer rows.Close()

	var out []Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
