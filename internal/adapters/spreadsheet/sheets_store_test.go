package spreadsheet

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghb72/Ranch-Finance/internal/core/domain"
)

func TestParseRow(t *testing.T) {
	txn, ok := parseRow([]any{"a", "income", "500.50", "2026-08-30", "venta", "livestock-range", "transfer", "Guillermo", "2026-08-30T10:00:00Z"})
	require.True(t, ok)
	assert.Equal(t, "a", txn.GlobalID)
	assert.Equal(t, domain.Income, txn.Kind)
	assert.True(t, txn.Amount.Equal(decimal.NewFromFloat(500.50)))
	assert.Equal(t, "2026-08-30", txn.Date)
	assert.Equal(t, "Guillermo", txn.Author)
	assert.False(t, txn.CreatedAt.IsZero())
}

func TestParseRow_ShortRowStillParses(t *testing.T) {
	txn, ok := parseRow([]any{"a", "expense", "12", "2026-08-30"})
	require.True(t, ok)
	assert.Equal(t, domain.Expense, txn.Kind)
	assert.Empty(t, txn.Description)
	assert.True(t, txn.CreatedAt.IsZero())
}

func TestParseRow_SkipsMalformedRows(t *testing.T) {
	cases := []struct {
		name string
		row  []any
	}{
		{"empty row", []any{}},
		{"blank id", []any{"", "income", "500", "2026-08-30"}},
		{"unparseable amount", []any{"a", "income", "quinientos", "2026-08-30"}},
		{"too few cells", []any{"a", "income"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := parseRow(tc.row)
			assert.False(t, ok)
		})
	}
}
