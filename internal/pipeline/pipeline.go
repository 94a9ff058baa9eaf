// Package pipeline wires the upload path end to end: scan statement
// files, parse each with its detected variant, normalize, categorize,
// drop credits, split by statement period and reconcile each period
// batch. Row-level problems are skipped and counted; a file that yields
// nothing is reported and the remaining files continue.
package pipeline

import (
	"context"
	"errors"
	"os"
	"sort"

	"fjacquet/expense-etl/internal/categorizer"
	"fjacquet/expense-etl/internal/logging"
	"fjacquet/expense-etl/internal/models"
	"fjacquet/expense-etl/internal/normalizer"
	"fjacquet/expense-etl/internal/parser"
	"fjacquet/expense-etl/internal/reconciler"
)

// FileReport summarizes what one statement file contributed to an upload.
type FileReport struct {
	File    string
	Account models.Account
	Parsed  int
	Skipped int
	Err     error
}

// ImportReport summarizes one full upload.
type ImportReport struct {
	Files           []FileReport
	Results         []reconciler.Result
	Uncategorized   []models.Transaction
	CreditsFiltered int
}

// ErrUnknownFormat marks a file whose name matches no configured variant.
var ErrUnknownFormat = errors.New("no statement variant matches file")

// Pipeline runs uploads against a fixed set of variants, rules and store.
type Pipeline struct {
	variants      []parser.Variant
	rules         []models.CategoryRule
	rec           *reconciler.Reconciler
	logger        logging.Logger
	filterCredits bool
}

// New creates a Pipeline. When filterCredits is set, refunds and payments
// received (non-positive amounts) are dropped before persistence.
func New(variants []parser.Variant, rules []models.CategoryRule, rec *reconciler.Reconciler, filterCredits bool, logger logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Pipeline{
		variants:      variants,
		rules:         rules,
		rec:           rec,
		logger:        logger,
		filterCredits: filterCredits,
	}
}

// ImportFiles runs the full upload for a set of statement file paths.
// Files that cannot be matched to a variant or that fail outright are
// recorded in the report and do not stop the other files. The returned
// error is reserved for upload-fatal conditions (mixed-period grouping
// bugs, storage failures).
func (p *Pipeline) ImportFiles(ctx context.Context, paths []string, confirm reconciler.ConfirmFunc) (ImportReport, error) {
	var report ImportReport
	var combined []models.Transaction

	for _, path := range paths {
		fr := p.importFile(path, &combined)
		report.Files = append(report.Files, fr)
	}

	if p.filterCredits {
		kept := combined[:0]
		for _, tx := range combined {
			if tx.IsCredit() {
				report.CreditsFiltered++
				continue
			}
			kept = append(kept, tx)
		}
		combined = kept
	}

	cat := categorizer.New(p.rules, p.logger)
	combined = cat.Apply(combined)
	report.Uncategorized = cat.Uncategorized()

	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].Date.Before(combined[j].Date)
	})

	for _, batch := range reconciler.SplitByPeriod(combined) {
		result, err := p.rec.Reconcile(ctx, batch, confirm)
		if err != nil {
			return report, err
		}
		report.Results = append(report.Results, result)
	}

	p.logger.Info("Upload finished",
		logging.Field{Key: "files", Value: len(report.Files)},
		logging.Field{Key: "periods", Value: len(report.Results)},
		logging.Field{Key: "uncategorized", Value: len(report.Uncategorized)},
		logging.Field{Key: "credits_filtered", Value: report.CreditsFiltered})
	return report, nil
}

// importFile parses and normalizes one statement file, appending its
// canonical transactions to combined. All failures are captured in the
// FileReport; none abort the upload.
func (p *Pipeline) importFile(path string, combined *[]models.Transaction) FileReport {
	fr := FileReport{File: path}

	variant, account, ok := parser.Detect(path, p.variants)
	if !ok {
		p.logger.Warn("No variant matches file, skipping",
			logging.Field{Key: "file", Value: path})
		fr.Err = ErrUnknownFormat
		return fr
	}
	fr.Account = account

	file, err := os.Open(path) // #nosec G304 -- statement paths are user supplied
	if err != nil {
		p.logger.WithError(err).Error("Failed to open statement file",
			logging.Field{Key: "file", Value: path})
		fr.Err = err
		return fr
	}
	defer func() {
		if err := file.Close(); err != nil {
			p.logger.WithError(err).Warn("Failed to close statement file")
		}
	}()

	drafts, rowErrs, err := parser.ParseStatement(file, variant, account, path, p.logger)
	fr.Skipped = len(rowErrs)
	if err != nil {
		p.logger.WithError(err).Error("Statement file unusable, continuing with remaining files",
			logging.Field{Key: "file", Value: path})
		fr.Err = err
		return fr
	}

	transactions, normErrs := normalizer.NormalizeAll(drafts, variant.Profile)
	for _, nerr := range normErrs {
		p.logger.WithError(nerr).Warn("Skipping row with unusable date",
			logging.Field{Key: "file", Value: path})
	}
	fr.Skipped += len(normErrs)
	fr.Parsed = len(transactions)

	*combined = append(*combined, transactions...)
	return fr
}
