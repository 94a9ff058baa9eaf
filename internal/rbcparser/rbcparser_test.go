package rbcparser

import (
	"strings"
	"testing"

	"fjacquet/expense-etl/internal/logging"
	"fjacquet/expense-etl/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		"Date,Description,Debit,Credit",
		`"March 3, 2025",PETRO-CANADA,48.20,`,
		`"March 5, 2025",PAYROLL DEPOSIT,,1500.00`,
		`"March 7, 2025",NETFLIX.COM,18.64,`,
	}, "\n")

	drafts, rowErrs, err := Parse(strings.NewReader(input), logging.NewMockLogger())
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, drafts, 3)

	assert.Equal(t, "March 3, 2025", drafts[0].RawDate)
	assert.Equal(t, "48.2", drafts[0].RawAmount)
	assert.Equal(t, models.AccountRBC, drafts[0].Account)

	// Credits come out negative so the money-out-positive filter can drop them.
	assert.Equal(t, "-1500", drafts[1].RawAmount)
	assert.Equal(t, "18.64", drafts[2].RawAmount)
}

func TestParseRejectsEmptyDebitAndCredit(t *testing.T) {
	input := strings.Join([]string{
		"Date,Description,Debit,Credit",
		`"March 3, 2025",PETRO-CANADA,48.20,`,
		`"March 4, 2025",MYSTERY ROW,,`,
	}, "\n")

	drafts, rowErrs, err := Parse(strings.NewReader(input), logging.NewMockLogger())
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	require.Len(t, rowErrs, 1)
	assert.Equal(t, 3, rowErrs[0].Line)
}

func TestMatchAccount(t *testing.T) {
	account, ok := matchAccount("rbcstmt.csv")
	assert.True(t, ok)
	assert.Equal(t, models.AccountRBC, account)

	_, ok = matchAccount("scotiastmt.csv")
	assert.False(t, ok)
}
