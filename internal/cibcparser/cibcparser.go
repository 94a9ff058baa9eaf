// Package cibcparser declares the statement variant for CIBC CSV exports.
// CIBC ships four account exports (Chequing, LOC 67781, Individual,
// Costco CC) that share one headerless layout: date, description, amount,
// optional CR marker, account number.
package cibcparser

import (
	"io"
	"os"
	"strings"

	"fjacquet/expense-etl/internal/dateutils"
	"fjacquet/expense-etl/internal/logging"
	"fjacquet/expense-etl/internal/models"
	"fjacquet/expense-etl/internal/parser"
)

// Variant is the CIBC statement variant. CIBC records money out as
// positive, so amounts pass through unchanged.
var Variant = parser.Variant{
	Name: "cibc",
	Layout: parser.Layout{
		HasHeader: false,
		DateCol:   0,
		DescCol:   1,
		AmountCol: 2,
		DebitCol:  -1,
		CreditCol: -1,
		MinFields: 3,
	},
	Profile: parser.Profile{
		DateLayouts: []string{dateutils.LayoutISO},
		Sign:        parser.SignAsIs,
	},
	Match: matchAccount,
}

// matchAccount resolves the CIBC account from the file name. Any other
// CIBC export defaults to the Costco card, mirroring how the statements
// are named in practice.
func matchAccount(filename string) (models.Account, bool) {
	if !strings.Contains(filename, "cibc") {
		return "", false
	}
	switch {
	case strings.Contains(filename, "chq"):
		return models.AccountCIBCChequing, true
	case strings.Contains(filename, "67781"):
		return models.AccountCIBCLOC, true
	case strings.Contains(filename, "indvl"):
		return models.AccountCIBCIndividual, true
	default:
		return models.AccountCIBCCostco, true
	}
}

// Parse parses a CIBC CSV statement from a reader.
func Parse(r io.Reader, account models.Account, logger logging.Logger) ([]models.DraftTransaction, []parser.RowError, error) {
	return parser.ParseStatement(r, Variant, account, "cibc statement", logger)
}

// ParseFile parses a CIBC CSV statement file, resolving the account from
// the file name.
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
