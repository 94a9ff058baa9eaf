// Package report contains the command that evaluates a stored statement
// period against the configured budgets and thresholds.
package report

import (
	"fmt"
	"path/filepath"
	"time"

	"fjacquet/expense-etl/cmd/root"
	"fjacquet/expense-etl/internal/categorizer"
	"fjacquet/expense-etl/internal/config"
	"fjacquet/expense-etl/internal/evaluator"
	"fjacquet/expense-etl/internal/models"
	"fjacquet/expense-etl/internal/report"
	"fjacquet/expense-etl/internal/store"

	"github.com/spf13/cobra"
)

var (
	month     int
	year      int
	exportDir string

	// Cmd is the report command
	Cmd = &cobra.Command{
		Use:   "report",
		Short: "Evaluate a stored period against budgets and thresholds.",
		Long: `report reads the stored transactions for one statement period, compares
per-category totals to the configured budgets, flags transactions over
their category thresholds, and lists what stayed uncategorized.`,
		RunE: run,
	}
)

func init() {
	Cmd.Flags().IntVarP(&month, "month", "m", 0, "statement month (1-12)")
	Cmd.Flags().IntVarP(&year, "year", "y", 0, "statement year, e.g. 2025")
	Cmd.Flags().StringVarP(&exportDir, "export", "e", "", "also write the reports as CSV files into this directory")
	_ = Cmd.MarkFlagRequired("month")
	_ = Cmd.MarkFlagRequired("year")
}

func run(cmd *cobra.Command, args []string) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	if year < 1900 || year > 2100 {
		return fmt.Errorf("year %d is out of range", year)
	}
	period := models.Period{Month: time.Month(month), Year: year}
	logger := root.Logger()

	budgets, err := config.LoadBudgets(root.Cfg.Files.Budgets)
	if err != nil {
		return err
	}
	thresholds, err := config.LoadThresholds(root.Cfg.Files.Thresholds)
	if err != nil {
		return err
	}

	st, err := store.Open(root.Cfg.Database.Path, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close database")
		}
	}()

	transactions, err := st.QueryPeriod(cmd.Context(), period)
	if err != nil {
		return err
	}
	if len(transactions) == 0 {
		stats, err := st.Stats(cmd.Context())
		if err != nil {
			return err
		}
		if stats.Transactions == 0 {
			return fmt.Errorf("no data stored yet, run upload first")
		}
		return fmt.Errorf("no data for %s (stored range %s to %s)",
			period,
			stats.EarliestDate.Format("2006-01-02"),
			stats.LatestDate.Format("2006-01-02"))
	}

	budgetReport := evaluator.CompareBudgets(transactions, budgets)
	violations := evaluator.CheckThresholds(transactions, thresholds)
	uncategorized := categorizer.UncategorizedDescriptions(transactions)

	out := cmd.OutOrStdout()
	gen := report.NewGenerator(logger)
	gen.RenderBudget(out, period, budgetReport)
	fmt.Fprintln(out)
	gen.RenderViolations(out, violations)
	fmt.Fprintln(out)
	gen.RenderUncategorized(out, uncategorized)

	if exportDir != "" {
		prefix := period.Key()
		if err := gen.WriteBudgetCSV(budgetReport, filepath.Join(exportDir, prefix+"-budget.csv")); err != nil {
			return err
		}
		if err := gen.WriteViolationsCSV(violations, filepath.Join(exportDir, prefix+"-violations.csv")); err != nil {
			return err
		}
		if err := gen.WriteUncategorizedCSV(uncategorized, filepath.Join(exportDir, prefix+"-uncategorized.csv")); err != nil {
			return err
		}
	}
	return nil
}
