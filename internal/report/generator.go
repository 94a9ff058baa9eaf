// Package report renders evaluator output for the terminal and exports
// it to CSV files for downstream tooling.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"fjacquet/expense-etl/internal/evaluator"
	"fjacquet/expense-etl/internal/logging"
	"fjacquet/expense-etl/internal/models"

	"github.com/gocarina/gocsv"
)

// Generator renders and exports period reports.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a report Generator.
func NewGenerator(logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Generator{logger: logger}
}

// budgetCSVRow is the CSV export shape of one budget comparison row.
type budgetCSVRow struct {
	Category string `csv:"category"`
	Actual   string `csv:"actual"`
	Budget   string `csv:"budget"`
	Delta    string `csv:"delta"`
}

// uncategorizedCSVRow is the CSV export shape of one uncategorized
// description.
type uncategorizedCSVRow struct {
	Description string `csv:"description"`
}

// violationCSVRow is the CSV export shape of one threshold violation.
type violationCSVRow struct {
	Date        string `csv:"date"`
	Amount      string `csv:"amount"`
	Category    string `csv:"category"`
	Limit       string `csv:"limit"`
	Excess      string `csv:"excess"`
	Account     string `csv:"account"`
	Description string `csv:"description"`
}

// RenderBudget writes the budget comparison as an aligned table.
func (g *Generator) RenderBudget(w io.Writer, period models.Period, report evaluator.BudgetReport) {
	fmt.Fprintf(w, "Budget vs actual for %s\n", period)
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tACTUAL\tBUDGET\tDELTA")
	for _, row := range report.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			row.Category, row.Actual.StringFixed(2), row.Budget.StringFixed(2), row.Delta.StringFixed(2))
	}
	for _, row := range report.Unbudgeted {
		fmt.Fprintf(tw, "%s\t%s\t(unbudgeted)\t\n", row.Category, row.Actual.StringFixed(2))
	}
	if err := tw.Flush(); err != nil {
		g.logger.WithError(err).Warn("Failed to flush budget table")
	}
	fmt.Fprintf(w, "Total spent: %s\n", report.Total.StringFixed(2))
}

// RenderViolations writes the threshold violations as an aligned table.
func (g *Generator) RenderViolations(w io.Writer, violations []evaluator.Violation) {
	if len(violations) == 0 {
		fmt.Fprintln(w, "No transactions exceeded their category thresholds")
		return
	}
	fmt.Fprintf(w, "%d transactions exceed their category thresholds\n", len(violations))
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tAMOUNT\tCATEGORY\tLIMIT\tEXCESS\tACCOUNT\tDESCRIPTION")
	for _, v := range violations {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			v.Transaction.Date.Format("2006-01-02"),
			v.Transaction.Amount.StringFixed(2),
			v.Transaction.Category,
			v.Limit.StringFixed(2),
			v.Excess.StringFixed(2),
			v.Transaction.Account,
			v.Transaction.Description)
	}
	if err := tw.Flush(); err != nil {
		g.logger.WithError(err).Warn("Failed to flush violations table")
	}
}

// RenderUncategorized lists the unique uncategorized descriptions.
func (g *Generator) RenderUncategorized(w io.Writer, descriptions []string) {
	if len(descriptions) == 0 {
		fmt.Fprintln(w, "All transactions categorized")
		return
	}
	fmt.Fprintf(w, "Uncategorized descriptions (%d):\n", len(descriptions))
	for _, d := range descriptions {
		fmt.Fprintf(w, "  %s\n", d)
	}
}

// WriteBudgetCSV exports the budget comparison to a CSV file. Unbudgeted
// categories are included with an empty budget column.
func (g *Generator) WriteBudgetCSV(report evaluator.BudgetReport, csvFile string) error {
	rows := make([]budgetCSVRow, 0, len(report.Rows)+len(report.Unbudgeted))
	for _, row := range report.Rows {
		rows = append(rows, budgetCSVRow{
			Category: row.Category,
			Actual:   row.Actual.StringFixed(2),
			Budget:   row.Budget.StringFixed(2),
			Delta:    row.Delta.StringFixed(2),
		})
	}
	for _, row := range report.Unbudgeted {
		rows = append(rows, budgetCSVRow{
			Category: row.Category,
			Actual:   row.Actual.StringFixed(2),
		})
	}
	return g.writeCSV(rows, csvFile)
}

// WriteViolationsCSV exports the threshold violations to a CSV file.
func (g *Generator) WriteViolationsCSV(violations []evaluator.Violation, csvFile string) error {
	rows := make([]violationCSVRow, 0, len(violations))
	for _, v := range violations {
		rows = append(rows, violationCSVRow{
			Date:        v.Transaction.Date.Format("2006-01-02"),
			Amount:      v.Transaction.Amount.StringFixed(2),
			Category:    v.Transaction.Category,
			Limit:       v.Limit.StringFixed(2),
			Excess:      v.Excess.StringFixed(2),
			Account:     string(v.Transaction.Account),
			Description: v.Transaction.Description,
		})
	}
	return g.writeCSV(rows, csvFile)
}

// WriteUncategorizedCSV exports the uncategorized descriptions to a CSV
// file.
func (g *Generator) WriteUncategorizedCSV(descriptions []string, csvFile string) error {
	rows := make([]uncategorizedCSVRow, 0, len(descriptions))
	for _, d := range descriptions {
		rows = append(rows, uncategorizedCSVRow{Description: d})
	}
	return g.writeCSV(rows, csvFile)
}

// writeCSV marshals report rows to a CSV file via gocsv struct tags.
func (g *Generator) writeCSV(rows interface{}, csvFile string) error {
	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("error creating report directory: %w", err)
	}

	file, err := os.Create(csvFile) // #nosec G304 -- report paths come from the run configuration
	if err != nil {
		return fmt.Errorf("error creating report file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			g.logger.WithError(err).Warn("Failed to close report file")
		}
	}()

	writer := gocsv.NewSafeCSVWriter(csv.NewWriter(file))
	if err := gocsv.MarshalCSV(rows, writer); err != nil {
		return fmt.Errorf("error writing report CSV: %w", err)
	}

	g.logger.Info("Wrote report CSV",
		logging.Field{Key: "file", Value: csvFile})
	return nil
}
