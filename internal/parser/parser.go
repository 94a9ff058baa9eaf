// Package parser provides the shared statement parsing engine. Each
// institution package declares a Variant (column layout plus
// normalization profile); the engine here runs the single row loop for
// all of them so the normalizer sees one uniform draft contract.
package parser

import (
	"path/filepath"
	"strings"

	"fjacquet/expense-etl/internal/models"
)

// SignRule declares how a source encodes money out, so the normalizer can
// rewrite every amount into the money-out-positive convention. The rule is
// explicit per-variant configuration, never inferred from file contents:
// if an institution changes its export format the variant must be
// recalibrated by hand.
type SignRule int

const (
	// SignAsIs means the source already records money out as positive.
	SignAsIs SignRule = iota
	// SignFlipped means the source records money out as negative.
	SignFlipped
)

// Layout describes the fixed column layout of one statement export.
// Column indices are zero-based. When AmountCol is negative the variant
// splits amounts across DebitCol and CreditCol and the engine combines
// them (debit minus credit).
type Layout struct {
	SkipRows  int // preamble lines before the header (AMEX ships 11)
	HasHeader bool
	DateCol   int
	DescCol   int
	AmountCol int
	DebitCol  int
	CreditCol int
	MinFields int
}

// Profile carries the per-variant normalization configuration consumed by
// the normalizer: the date layouts the source uses and its sign rule.
type Profile struct {
	DateLayouts []string
	Sign        SignRule
}

// Variant binds a statement format to its layout, profile and account
// detection. One Variant may cover several account exports that share a
// layout (CIBC ships four, AMEX two).
type Variant struct {
	Name    string
	Layout  Layout
	Profile Profile

	// Match reports the account for a statement file name, or false when
	// the file does not belong to this variant.
	Match func(filename string) (models.Account, bool)
}

// Detect finds the variant and account for a statement file name. The
// file name is the only signal; unknown names are skipped by the caller.
func Detect(filename string, variants []Variant) (Variant, models.Account, bool) {
	base := strings.ToLower(filepath.Base(filename))
	for _, v := range variants {
		if account, ok := v.Match(base); ok {
			return v, account, true
		}
	}
	return Variant{}, "", false
}
