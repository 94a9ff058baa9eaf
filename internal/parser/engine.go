package parser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"fjacquet/expense-etl/internal/logging"
	"fjacquet/expense-etl/internal/models"
	"fjacquet/expense-etl/internal/parsererror"

	"github.com/shopspring/decimal"
)

// RowError pairs a skipped statement row with the error that rejected it.
type RowError struct {
	Line int
	Err  error
}

// ParseStatement runs a single forward pass over one statement file and
// produces the variant's draft transactions. Malformed rows are collected
// as RowErrors and skipped; the whole file fails with FileParseError only
// when zero valid rows result. The account for every draft comes from the
// variant's filename match, decided by the caller.
func ParseStatement(r io.Reader, v Variant, account models.Account, filename string, logger logging.Logger) ([]models.DraftTransaction, []RowError, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	log := logger.WithFields(
		logging.Field{Key: "variant", Value: v.Name},
		logging.Field{Key: "file", Value: filename},
	)
	log.Info("Parsing statement file")

	reader := bufio.NewReader(r)
	for i := 0; i < v.Layout.SkipRows; i++ {
		if _, err := reader.ReadString('\n'); err != nil {
			if err == io.EOF {
				return nil, nil, &parsererror.FileParseError{File: filename, Reason: "file shorter than expected preamble"}
			}
			return nil, nil, fmt.Errorf("error skipping preamble: %w", err)
		}
	}

	cr := csv.NewReader(reader)
	cr.FieldsPerRecord = -1

	var drafts []models.DraftTransaction
	var rowErrs []RowError
	line := v.Layout.SkipRows
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: fmt.Errorf("unreadable row: %w", err)})
			continue
		}
		if line == v.Layout.SkipRows+1 && v.Layout.HasHeader {
			continue
		}
		if isBlankRecord(record) {
			continue
		}

		draft, err := draftFromRecord(record, v.Layout, account, filename, line)
		if err != nil {
			log.WithError(err).Warn("Skipping malformed row",
				logging.Field{Key: "line", Value: line})
			rowErrs = append(rowErrs, RowError{Line: line, Err: err})
			continue
		}
		drafts = append(drafts, draft)
	}

	if len(drafts) == 0 {
		return nil, rowErrs, &parsererror.FileParseError{
			File:      filename,
			RowErrors: len(rowErrs),
			Reason:    "no valid rows",
		}
	}

	log.Info("Parsed statement file",
		logging.Field{Key: "rows", Value: len(drafts)},
		logging.Field{Key: "skipped", Value: len(rowErrs)})
	return drafts, rowErrs, nil
}

// draftFromRecord maps one CSV record onto a draft, validating presence
// of the required fields and that the amount is numeric.
func draftFromRecord(record []string, layout Layout, account models.Account, filename string, line int) (models.DraftTransaction, error) {
	if len(record) < layout.MinFields {
		return models.DraftTransaction{}, &parsererror.MalformedRowError{
			File:  filename,
			Line:  line,
			Field: "record",
			Value: strings.Join(record, ","),
			Err:   fmt.Errorf("expected at least %d fields, got %d", layout.MinFields, len(record)),
		}
	}

	rawDate := strings.TrimSpace(record[layout.DateCol])
	if rawDate == "" {
		return models.DraftTransaction{}, &parsererror.MalformedRowError{
			File: filename, Line: line, Field: "date", Value: "",
			Err: fmt.Errorf("date is required"),
		}
	}

	rawDesc := strings.TrimSpace(record[layout.DescCol])
	if rawDesc == "" {
		return models.DraftTransaction{}, &parsererror.MalformedRowError{
			File: filename, Line: line, Field: "description", Value: "",
			Err: fmt.Errorf("description is required"),
		}
	}

	rawAmount, err := extractAmount(record, layout)
	if err != nil {
		return models.DraftTransaction{}, &parsererror.MalformedRowError{
			File: filename, Line: line, Field: "amount", Value: amountValue(record, layout),
			Err: err,
		}
	}

	return models.DraftTransaction{
		Account:        account,
		RawDate:        rawDate,
		RawAmount:      rawAmount,
		RawDescription: rawDesc,
	}, nil
}

// extractAmount returns the row's amount as a cleaned decimal string. For
// single-column layouts the source value is standardized and validated.
// For debit/credit split layouts the two columns (empty means zero) are
// combined as debit minus credit, which is already money-out-positive.
func extractAmount(record []string, layout Layout) (string, error) {
	if layout.AmountCol >= 0 {
		cleaned := models.StandardizeAmount(record[layout.AmountCol])
		if _, err := decimal.NewFromString(cleaned); err != nil {
			return "", fmt.Errorf("amount is not numeric: %w", err)
		}
		return cleaned, nil
	}

	debit, err := parseOptionalAmount(record[layout.DebitCol])
	if err != nil {
		return "", fmt.Errorf("debit is not numeric: %w", err)
	}
	credit, err := parseOptionalAmount(record[layout.CreditCol])
	if err != nil {
		return "", fmt.Errorf("credit is not numeric: %w", err)
	}
	if debit.IsZero() && credit.IsZero() {
		return "", fmt.Errorf("both debit and credit are empty")
	}
	return debit.Sub(credit).String(), nil
}

func parseOptionalAmount(raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(models.StandardizeAmount(raw))
}

func amountValue(record []string, layout Layout) string {
	if layout.AmountCol >= 0 {
		return record[layout.AmountCol]
	}
	return fmt.Sprintf("debit=%s credit=%s", record[layout.DebitCol], record[layout.CreditCol])
}

func isBlankRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
