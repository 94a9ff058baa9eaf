package normalizer

import (
	"testing"
	"time"

	"fjacquet/expense-etl/internal/dateutils"
	"fjacquet/expense-etl/internal/models"
	"fjacquet/expense-etl/internal/parser"
	"fjacquet/expense-etl/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var isoProfile = parser.Profile{
	DateLayouts: []string{dateutils.LayoutISO},
	Sign:        parser.SignAsIs,
}

func TestNormalize(t *testing.T) {
	draft := models.DraftTransaction{
		Account:        models.AccountCIBCChequing,
		RawDate:        "2025-03-14",
		RawAmount:      "42.50",
		RawDescription: "  TIM HORTONS   #2931  ",
	}

	tx, err := Normalize(draft, isoProfile)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC), tx.Date)
	assert.Equal(t, "42.5", tx.Amount.String())
	assert.Equal(t, "TIM HORTONS #2931", tx.Description)
	assert.Equal(t, models.AccountCIBCChequing, tx.Account)
	assert.Equal(t, models.CategoryUncategorized, tx.Category)
	assert.Equal(t, models.Period{Month: time.March, Year: 2025}, tx.Period)
}

func TestNormalizeFlipsSign(t *testing.T) {
	profile := parser.Profile{
		DateLayouts: []string{dateutils.LayoutISO},
		Sign:        parser.SignFlipped,
	}
	draft := models.DraftTransaction{
		Account:        models.AccountScotiabank,
		RawDate:        "2025-03-01",
		RawAmount:      "-12.99",
		RawDescription: "GROCERY STORE",
	}

	tx, err := Normalize(draft, profile)
	require.NoError(t, err)
	assert.Equal(t, "12.99", tx.Amount.String())
	assert.False(t, tx.IsCredit())
}

func TestNormalizeBadDates(t *testing.T) {
	tests := []struct {
		name    string
		rawDate string
	}{
		{"garbage", "not-a-date"},
		{"wrong layout", "14 Mar 2025"},
		{"impossible month", "2025-13-01"},
		{"impossible day", "2025-02-30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := models.DraftTransaction{
				Account:        models.AccountRBC,
				RawDate:        tt.rawDate,
				RawAmount:      "1.00",
				RawDescription: "X",
			}
			_, err := Normalize(draft, isoProfile)
			var dateErr *parsererror.DateParseError
			require.ErrorAs(t, err, &dateErr)
			assert.Equal(t, tt.rawDate, dateErr.Value)
		})
	}
}

func TestNormalizeAllCollectsErrors(t *testing.T) {
	drafts := []models.DraftTransaction{
		{Account: models.AccountRBC, RawDate: "2025-03-01", RawAmount: "5.00", RawDescription: "A"},
		{Account: models.AccountRBC, RawDate: "bogus", RawAmount: "5.00", RawDescription: "B"},
		{Account: models.AccountRBC, RawDate: "2025-03-02", RawAmount: "7.00", RawDescription: "C"},
	}

	transactions, errs := NormalizeAll(drafts, isoProfile)
	assert.Len(t, transactions, 2)
	require.Len(t, errs, 1)
	var dateErr *parsererror.DateParseError
	assert.ErrorAs(t, errs[0], &dateErr)
}
