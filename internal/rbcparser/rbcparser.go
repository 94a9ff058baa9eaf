// Package rbcparser declares the statement variant for RBC CSV exports:
// a headered layout with the amount split across debit and credit
// columns. The engine combines them as debit minus credit, which lands
// directly on the money-out-positive convention.
package rbcparser

import (
	"io"
	"os"
	"strings"

	"fjacquet/expense-etl/internal/dateutils"
	"fjacquet/expense-etl/internal/logging"
	"fjacquet/expense-etl/internal/models"
	"fjacquet/expense-etl/internal/parser"
)

// Variant is the RBC statement variant.
var Variant = parser.Variant{
	Name: "rbc",
	Layout: parser.Layout{
		HasHeader: true,
		DateCol:   0,
		DescCol:   1,
		AmountCol: -1,
		DebitCol:  2,
		CreditCol: 3,
		MinFields: 4,
	},
	Profile: parser.Profile{
		DateLayouts: []string{dateutils.LayoutRBC},
		Sign:        parser.SignAsIs,
	},
	Match: matchAccount,
}

func matchAccount(filename string) (models.Account, bool) {
	if strings.Contains(filename, "rbc") {
		return models.AccountRBC, true
	}
	return "", false
}

// Parse parses an RBC CSV statement from a reader.
func Parse(r io.Reader, logger logging.Logger) ([]models.DraftTransaction, []parser.RowError, error) {
	return parser.ParseStatement(r, Variant, models.AccountRBC, "rbc statement", logger)
}

// ParseFile parses an RBC CSV statement file.
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

	return parser.ParseStatement(file, Variant, models.AccountRBC, filePath, logger)
}
