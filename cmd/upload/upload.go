// Package upload contains the command that ingests statement files for a
// statement period and persists them.
package upload

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fjacquet/expense-etl/cmd/root"
	"fjacquet/expense-etl/internal/categorizer"
	"fjacquet/expense-etl/internal/config"
	"fjacquet/expense-etl/internal/models"
	"fjacquet/expense-etl/internal/pipeline"
	"fjacquet/expense-etl/internal/reconciler"
	"fjacquet/expense-etl/internal/store"

	"github.com/spf13/cobra"
)

var (
	inputDir string
	force    bool

	// Cmd is the upload command
	Cmd = &cobra.Command{
		Use:   "upload [files...]",
		Short: "Parse statement exports and persist them per statement period.",
		Long: `upload reads the given statement CSV files (or every .csv in the import
directory when no files are named), normalizes and categorizes them, and
persists each statement period. A period that already holds data is only
replaced after confirmation, and the replacement is all-or-nothing.`,
		RunE: run,
	}
)

func init() {
	Cmd.Flags().StringVarP(&inputDir, "input", "i", "", "directory of statement files (defaults to the configured import directory)")
	Cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing periods without prompting")
}

func run(cmd *cobra.Command, args []string) error {
	logger := root.Logger()

	paths := args
	if len(paths) == 0 {
		dir := inputDir
		if dir == "" {
			dir = root.Cfg.Import.Directory
		}
		var err error
		paths, err = statementFiles(dir)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no .csv files found in %s", dir)
		}
	}

	rules, err := config.LoadRules(root.Cfg.Files.Rules)
	if err != nil {
		return err
	}
	if len(rules) == 0 {
		logger.Warn("No category rules configured, everything will be uncategorized")
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

	confirm := confirmOverwrite
	if force {
		confirm = func(models.Period, int) bool { return true }
	}

	p := pipeline.New(pipeline.DefaultVariants(), rules, reconciler.New(st, logger), root.Cfg.Import.FilterCredits, logger)
	report, err := p.ImportFiles(cmd.Context(), paths, confirm)
	if err != nil {
		return err
	}

	printReport(cmd, report)
	return nil
}

// statementFiles lists the .csv files in a directory, sorted by name.
func statementFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading import directory: %w", err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// confirmOverwrite asks on stdin before an existing period is replaced.
func confirmOverwrite(p models.Period, existing int) bool {
	fmt.Printf("%s already holds %d transactions. Overwrite? (y/n): ", p, existing)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y")
}

func printReport(cmd *cobra.Command, report pipeline.ImportReport) {
	out := cmd.OutOrStdout()
	for _, fr := range report.Files {
		switch {
		case fr.Err != nil:
			fmt.Fprintf(out, "%s: skipped (%v)\n", fr.File, fr.Err)
		case fr.Skipped > 0:
			fmt.Fprintf(out, "%s: %d transactions (%s), %d rows skipped\n", fr.File, fr.Parsed, fr.Account, fr.Skipped)
		default:
			fmt.Fprintf(out, "%s: %d transactions (%s)\n", fr.File, fr.Parsed, fr.Account)
		}
	}
	if report.CreditsFiltered > 0 {
		fmt.Fprintf(out, "Filtered %d credits/refunds\n", report.CreditsFiltered)
	}
	for _, result := range report.Results {
		if result.Action == reconciler.ActionSkipped {
			fmt.Fprintf(out, "%s: skipped, kept existing %d transactions\n", result.Period, result.Existing)
			continue
		}
		fmt.Fprintf(out, "%s: %s %d transactions\n", result.Period, result.Action, result.Count)
	}
	descriptions := categorizer.UncategorizedDescriptions(report.Uncategorized)
	if len(descriptions) > 0 {
		fmt.Fprintf(out, "Uncategorized descriptions (%d):\n", len(descriptions))
		for _, d := range descriptions {
			fmt.Fprintf(out, "  %s\n", d)
		}
	}
}
