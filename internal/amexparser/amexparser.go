// Package amexparser declares the statement variant for American Express
// CSV exports (Gold and Cobalt cards). AMEX prefixes the table with eleven
// preamble lines before the header; amounts carry currency formatting
// ("$1,234.56") and dates use the "14 Mar 2025" form.
package amexparser

import (
	"io"
	"os"
	"strings"

	"fjacquet/expense-etl/internal/dateutils"
	"fjacquet/expense-etl/internal/logging"
	"fjacquet/expense-etl/internal/models"
	"fjacquet/expense-etl/internal/parser"
)

// Variant is the AMEX statement variant. AMEX records charges as
// positive, so amounts pass through unchanged.
var Variant = parser.Variant{
	Name: "amex",
	Layout: parser.Layout{
		SkipRows:  11,
		HasHeader: true,
		DateCol:   0,
		DescCol:   1,
		AmountCol: 2,
		DebitCol:  -1,
		CreditCol: -1,
		MinFields: 3,
	},
	Profile: parser.Profile{
		DateLayouts: []string{dateutils.LayoutAMEX},
		Sign:        parser.SignAsIs,
	},
	Match: matchAccount,
}

func matchAccount(filename string) (models.Account, bool) {
	if !strings.Contains(filename, "amex") {
		return "", false
	}
	if strings.Contains(filename, "gold") {
		return models.AccountAMEXGold, true
	}
	return models.AccountAMEXCobalt, true
}

// Parse parses an AMEX CSV statement from a reader.
func Parse(r io.Reader, account models.Account, logger logging.Logger) ([]models.DraftTransaction, []parser.RowError, error) {
	return parser.ParseStatement(r, Variant, account, "amex statement", logger)
}

// ParseFile parses an AMEX CSV statement file, resolving Gold vs Cobalt
// from the file name.
func ParseFile(filePath string, logger logging.Logger) ([]models.DraftTransaction, []parser.RowError, error) {
	account, _ := matchAccount(strings.ToLower(filePath))

	file, err := os.Open(filePath) // #nosec G304 -- statement paths are user supplied
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err := file.Close(); err != nil && logger != nil {
			logger.WithError(err).Warn("Failed to close statement file")
		}
	}()

	return parser.ParseStatement(file, Variant, account, filePath, logger)
}
