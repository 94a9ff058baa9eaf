// Package normalizer maps draft transactions onto the canonical schema:
// parsed calendar date, money-out-positive amount, collapsed description,
// account tag and derived statement period. The mapping is pure and total
// over every draft a parser variant can legally emit, except dates the
// source itself mangled, which surface as DateParseError.
package normalizer

import (
	"fmt"
	"regexp"
	"strings"

	"fjacquet/expense-etl/internal/dateutils"
	"fjacquet/expense-etl/internal/models"
	"fjacquet/expense-etl/internal/parser"
	"fjacquet/expense-etl/internal/parsererror"

	"github.com/shopspring/decimal"
)

var whitespace = regexp.MustCompile(`\s+`)

// Normalize converts one draft into a canonical transaction using the
// variant's profile. No side effects.
func Normalize(draft models.DraftTransaction, profile parser.Profile) (models.Transaction, error) {
	date, err := dateutils.ParseStrict(draft.RawDate, profile.DateLayouts)
	if err != nil {
		return models.Transaction{}, &parsererror.DateParseError{Value: draft.RawDate, Err: err}
	}

	amount, err := decimal.NewFromString(draft.RawAmount)
	if err != nil {
		// The parser engine validates RawAmount, so a draft that fails
		// here was constructed outside the engine's contract.
		return models.Transaction{}, fmt.Errorf("draft amount %q is not numeric: %w", draft.RawAmount, err)
	}
	if profile.Sign == parser.SignFlipped {
		amount = amount.Neg()
	}

	return models.Transaction{
		Date:        date,
		Amount:      amount,
		Description: collapseWhitespace(draft.RawDescription),
		Account:     draft.Account,
		Category:    models.CategoryUncategorized,
		Period:      models.PeriodOf(date),
	}, nil
}

// NormalizeAll normalizes a parsed batch, collecting row-level failures
// (bad dates) instead of aborting, per the skip-and-count policy.
func NormalizeAll(drafts []models.DraftTransaction, profile parser.Profile) ([]models.Transaction, []error) {
	transactions := make([]models.Transaction, 0, len(drafts))
	var errs []error
	for _, draft := range drafts {
		tx, err := Normalize(draft, profile)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		transactions = append(transactions, tx)
	}
	return transactions, errs
}

func collapseWhitespace(s string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(s), " ")
}
