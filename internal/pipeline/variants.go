package pipeline

import (
	"fjacquet/expense-etl/internal/amexparser"
	"fjacquet/expense-etl/internal/cibcparser"
	"fjacquet/expense-etl/internal/parser"
	"fjacquet/expense-etl/internal/rbcparser"
	"fjacquet/expense-etl/internal/scotiaparser"
)

// DefaultVariants returns the statement variants the pipeline understands.
// Detection order is fixed so the same file always resolves to the same
// variant; the filename patterns are mutually exclusive.
func DefaultVariants() []parser.Variant {
	return []parser.Variant{
		cibcparser.Variant,
		scotiaparser.Variant,
		amexparser.Variant,
		rbcparser.Variant,
	}
}
