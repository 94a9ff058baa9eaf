// Package scotiaparser declares the statement variant for Scotiabank CSV
// exports: a headered layout of date, amount, description. Scotiabank
// records money out as negative, so the normalizer flips every amount.
package scotiaparser

import (
	"io"
	"os"
	"strings"

	"fjacquet/expense-etl/internal/dateutils"
	"fjacquet/expense-etl/internal/logging"
	"fjacquet/expense-etl/internal/models"
	"fjacquet/expense-etl/internal/parser"
)

// Variant is the Scotiabank statement variant.
var Variant = parser.Variant{
	Name: "scotia",
	Layout: parser.Layout{
		HasHeader: true,
		DateCol:   0,
		AmountCol: 1,
		DescCol:   2,
		DebitCol:  -1,
		CreditCol: -1,
		MinFields: 3,
	},
	Profile: parser.Profile{
		DateLayouts: []string{dateutils.LayoutISO},
		Sign:        parser.SignFlipped,
	},
	Match: matchAccount,
}

func matchAccount(filename string) (models.Account, bool) {
	if strings.Contains(filename, "scotia") {
		return models.AccountScotiabank, true
	}
	return "", false
}

// Parse parses a Scotiabank CSV statement from a reader.
func Parse(r io.Reader, logger logging.Logger) ([]models.DraftTransaction, []parser.RowError, error) {
	return parser.ParseStatement(r, Variant, models.AccountScotiabank, "scotia statement", logger)
}

// ParseFile parses a Scotiabank CSV statement file.
func ParseFile(filePath string, logger logging.Logger) ([]models.DraftTransaction, []parser.RowError, error) {
	file, err := os.Open(filePath) // #nosec G304 -- statement paths are user supplied
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err := file.Close(); err != nil && logger != nil {
			logger.WithError(err).Warn("Failed to close statement file")
		}
	}()

	return parser.ParseStatement(file, Variant, models.AccountScotiabank, filePath, logger)
}
