// Package categorizer assigns spending categories to canonical
// transactions by ordered rule matching: the first rule whose pattern
// appears in the description (case-insensitive) wins, and transactions no
// rule matches land on the Uncategorized sentinel. Matching is
// deterministic for a fixed rule set: rules are ordered by ascending
// priority, then by configuration order, and never combined.
package categorizer

import (
	"sort"
	"strings"

	"fjacquet/expense-etl/internal/logging"
	"fjacquet/expense-etl/internal/models"
)

// Categorizer holds an immutable, pre-sorted rule list and collects the
// transactions that matched no rule for later reporting.
type Categorizer struct {
	rules         []models.CategoryRule
	logger        logging.Logger
	uncategorized []models.Transaction
}

// New creates a Categorizer. The rule slice is copied and stably sorted
// by priority so configuration order breaks ties.
func New(rules []models.CategoryRule, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	sorted := make([]models.CategoryRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})
	return &Categorizer{
		rules:  sorted,
		logger: logger,
	}
}

// Categorize returns the category for a transaction description, or the
// Uncategorized sentinel when no rule matches.
func (c *Categorizer) Categorize(description string) string {
	upper := strings.ToUpper(description)
	for _, rule := range c.rules {
		if strings.Contains(upper, strings.ToUpper(rule.Pattern)) {
			c.logger.Debug("Transaction categorized",
				logging.Field{Key: "pattern", Value: rule.Pattern},
				logging.Field{Key: "category", Value: rule.Category})
			return rule.Category
		}
	}
	return models.CategoryUncategorized
}

// Apply categorizes a batch in place and records the transactions that
// stayed uncategorized.
func (c *Categorizer) Apply(transactions []models.Transaction) []models.Transaction {
	for i := range transactions {
		transactions[i].Category = c.Categorize(transactions[i].Description)
		if transactions[i].Category == models.CategoryUncategorized {
			c.uncategorized = append(c.uncategorized, transactions[i])
		}
	}
	return transactions
}

// Uncategorized returns the transactions collected by Apply that no rule
// matched.
func (c *Categorizer) Uncategorized() []models.Transaction {
	return c.uncategorized
}

// UncategorizedDescriptions returns the sorted unique descriptions of the
// uncategorized transactions in a batch, for surfacing to the user.
func UncategorizedDescriptions(transactions []models.Transaction) []string {
	seen := make(map[string]bool)
	var descriptions []string
	for _, tx := range transactions {
		if tx.Category != models.CategoryUncategorized {
			continue
		}
		if !seen[tx.Description] {
			seen[tx.Description] = true
			descriptions = append(descriptions, tx.Description)
		}
	}
	sort.Strings(descriptions)
	return descriptions
}
