package amexparser

import (
	"strings"
	"testing"

	"fjacquet/expense-etl/internal/logging"
	"fjacquet/expense-etl/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// amexStatement builds a statement with the eleven preamble lines AMEX
// ships before the header.
func amexStatement(rows ...string) string {
	var b strings.Builder
	for i := 0; i < 11; i++ {
		b.WriteString("Prepared for JOHN DOE\n")
	}
	b.WriteString("Date,Description,Amount\n")
	for _, row := range rows {
		b.WriteString(row + "\n")
	}
	return b.String()
}

func TestParse(t *testing.T) {
	input := amexStatement(
		"01 Mar 2025,UBER EATS TORONTO,\"$1,240.50\"",
		"02 Mar 2025,SPOTIFY,$11.29",
	)

	drafts, rowErrs, err := Parse(strings.NewReader(input), models.AccountAMEXCobalt, logging.NewMockLogger())
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, drafts, 2)
	assert.Equal(t, "UBER EATS TORONTO", drafts[0].RawDescription)
	assert.Equal(t, "1240.50", drafts[0].RawAmount)
	assert.Equal(t, "11.29", drafts[1].RawAmount)
}

func TestMatchAccount(t *testing.T) {
	tests := []struct {
		filename string
		account  models.Account
		ok       bool
	}{
		{"amexgoldstmt.csv", models.AccountAMEXGold, true},
		{"amexcobaltstmt.csv", models.AccountAMEXCobalt, true},
		{"cibcchqstmt.csv", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			account, ok := matchAccount(tt.filename)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.account, account)
		})
	}
}
