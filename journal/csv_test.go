package journal

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	trades := []Trade{sampleTrade("T1", "2024-01-02", -12.5)}
	require.NoError(t, WriteCSV(&buf, trades))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{
		"T1", "2024-01-02", "EURUSD", "BUY",
		"1.085000", "1.087000", "0.500000", "-12.500000",
		"LOSS", "breakout", "clean retest",
	}, rows[1])
}

func TestWriteCSVHeaderOnly(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "id,date,pair,type,entry_price,exit_price,lot_size,pnl,status,setup,notes\n", buf.String())
}
