package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// GetTrade returns a single trade by ID.
func (j *SQLite) GetTrade(ctx context.Context, id string) (Trade, error) {
	row := j.db.QueryRowContext(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE id = ?`, id)

	t, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Trade{}, fmt.Errorf("%w: %q", ErrTradeNotFound, id)
		}
		return Trade{}, err
	}
	return t, nil
}

// ListTradesBetween returns trades dated within [start, end), most recent
// first.
func (j *SQLite) ListTradesBetween(ctx context.Context, start, end time.Time) ([]Trade, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE date >= ? AND date < ?
		ORDER BY seq DESC`, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	return scanTrades(rows)
}
