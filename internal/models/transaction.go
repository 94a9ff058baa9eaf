// Package models provides the data structures shared by the ingestion,
// categorization, persistence and reporting packages.
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Account identifies the institution account a statement file belongs to.
type Account string

// The eight account exports the pipeline understands. CIBC exposes four
// distinct exports, AMEX two, Scotiabank and RBC one each.
const (
	AccountCIBCChequing   Account = "CIBC Chequing"
	AccountCIBCLOC        Account = "CIBC LOC 67781"
	AccountCIBCIndividual Account = "CIBC Individual"
	AccountCIBCCostco     Account = "CIBC Costco CC"
	AccountScotiabank     Account = "Scotiabank"
	AccountAMEXGold       Account = "AMEX Gold"
	AccountAMEXCobalt     Account = "AMEX Cobalt"
	AccountRBC            Account = "RBC"
)

// DraftTransaction is the raw output of a statement parser: one row with
// its fields still in source form. RawAmount is guaranteed numeric (after
// currency cleanup) by the parser engine; rows where it is not are
// rejected before a draft is ever produced.
type DraftTransaction struct {
	Account        Account
	RawDate        string
	RawAmount      string
	RawDescription string
}

// Transaction is the canonical transaction record. Amounts follow one
// convention across all sources: money out is positive. Period is always
// derived from Date and never set independently.
type Transaction struct {
	ID          string
	Date        time.Time
	Amount      decimal.Decimal
	Description string
	Account     Account
	Category    string
	Period      Period
}

// CategoryUncategorized is the sentinel category for transactions no rule
// matched.
const CategoryUncategorized = "Uncategorized"

// IsCredit reports whether the transaction is money in (refund, payment
// received) under the money-out-positive convention.
func (t Transaction) IsCredit() bool {
	return t.Amount.LessThanOrEqual(decimal.Zero)
}

// StandardizeAmount strips currency symbols, thousands separators and
// surrounding whitespace from a source amount string, and rewrites
// parenthesized negatives. The result is suitable for decimal parsing;
// if the cleaned string is still not numeric the original is returned so
// the caller's error carries the source value.
func StandardizeAmount(amountStr string) string {
	amount := strings.TrimSpace(amountStr)
	amount = strings.ReplaceAll(amount, " ", "")
	amount = strings.ReplaceAll(amount, "$", "")
	amount = strings.ReplaceAll(amount, ",", "")

	// Accounting-style negatives: (12.34) means -12.34
	if strings.HasPrefix(amount, "(") && strings.HasSuffix(amount, ")") {
		amount = "-" + amount[1:len(amount)-1]
	}

	if _, err := decimal.NewFromString(amount); err != nil {
		return amountStr
	}
	return amount
}
