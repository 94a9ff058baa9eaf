package models

import "github.com/shopspring/decimal"

// CategoryRule maps a description pattern to a spending category. Rules
// are totally ordered by ascending Priority, then by configuration file
// order; the first matching rule wins and no rules are combined.
type CategoryRule struct {
	Pattern  string `yaml:"pattern"`
	Category string `yaml:"category"`
	Priority int    `yaml:"priority"`
}

// BudgetLimits maps a category to its monthly budget. One entry per
// category, loaded once per run and immutable for its duration. A missing
// entry means the category is unbudgeted.
type BudgetLimits map[string]decimal.Decimal

// ThresholdLimits maps a category to the per-transaction amount above
// which a single transaction is flagged. A missing entry means no
// violation is possible for that category.
type ThresholdLimits map[string]decimal.Decimal
