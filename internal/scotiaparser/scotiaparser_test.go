package scotiaparser

import (
	"strings"
	"testing"

	"fjacquet/expense-etl/internal/logging"
	"fjacquet/expense-etl/internal/models"
	"fjacquet/expense-etl/internal/normalizer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	input := "Date,Amount,Description\n" +
		"2025-03-05,-12.99,NETFLIX.COM\n" +
		"2025-03-06,-134.02,SOBEYS #731\n"

	drafts, rowErrs, err := Parse(strings.NewReader(input), logging.NewMockLogger())
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, drafts, 2)
	assert.Equal(t, "NETFLIX.COM", drafts[0].RawDescription)
	assert.Equal(t, "-12.99", drafts[0].RawAmount)
	assert.Equal(t, models.AccountScotiabank, drafts[0].Account)
}

// Scotiabank records money out as negative; after normalization the
// amounts must be positive.
func TestParse_SignFlipsToMoneyOutPositive(t *testing.T) {
	input := "Date,Amount,Description\n" +
		"2025-03-05,-12.99,NETFLIX.COM\n"

	drafts, _, err := Parse(strings.NewReader(input), logging.NewMockLogger())
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	tx, err := normalizer.Normalize(drafts[0], Variant.Profile)
	require.NoError(t, err)
	assert.Equal(t, "12.99", tx.Amount.String())
}

func TestMatchAccount(t *testing.T) {
	account, ok := matchAccount("scotiastmt.csv")
	require.True(t, ok)
	assert.Equal(t, models.AccountScotiabank, account)

	_, ok = matchAccount("rbcstmt.csv")
	assert.False(t, ok)
}
