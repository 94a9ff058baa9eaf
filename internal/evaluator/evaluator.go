// Package evaluator aggregates persisted transactions for one statement
// period against configured limits. Both evaluations are pure functions
// of the stored transactions and the limits; nothing is mutated.
package evaluator

import (
	"sort"

	"fjacquet/expense-etl/internal/models"

	"github.com/shopspring/decimal"
)

// BudgetRow compares one category's actual spend against its budget.
// Delta is actual minus budget: positive means over budget.
type BudgetRow struct {
	Category string
	Actual   decimal.Decimal
	Budget   decimal.Decimal
	Delta    decimal.Decimal
}

// BudgetReport is the full budget comparison for a period. Categories
// without a configured budget are treated as unlimited and listed
// separately in Unbudgeted. Total covers all categorized spending and
// excludes the Uncategorized sentinel.
type BudgetReport struct {
	Rows       []BudgetRow
	Unbudgeted []BudgetRow
	Total      decimal.Decimal
}

// Violation is a single transaction whose amount exceeds its category's
// per-transaction threshold. Excess is how far over the limit it went.
type Violation struct {
	Transaction models.Transaction
	Limit       decimal.Decimal
	Excess      decimal.Decimal
}

// CompareBudgets sums the period's transactions per category and compares
// the totals to the configured budgets. Rows are sorted by actual spend
// descending.
func CompareBudgets(transactions []models.Transaction, budgets models.BudgetLimits) BudgetReport {
	actuals := make(map[string]decimal.Decimal)
	for _, tx := range transactions {
		actuals[tx.Category] = actuals[tx.Category].Add(tx.Amount)
	}

	var report BudgetReport
	for category, actual := range actuals {
		if category != models.CategoryUncategorized {
			report.Total = report.Total.Add(actual)
		}
		budget, ok := budgets[category]
		row := BudgetRow{Category: category, Actual: actual, Budget: budget}
		if !ok {
			report.Unbudgeted = append(report.Unbudgeted, row)
			continue
		}
		row.Delta = actual.Sub(budget)
		report.Rows = append(report.Rows, row)
	}

	byActualDesc := func(rows []BudgetRow) func(i, j int) bool {
		return func(i, j int) bool {
			if !rows[i].Actual.Equal(rows[j].Actual) {
				return rows[i].Actual.GreaterThan(rows[j].Actual)
			}
			return rows[i].Category < rows[j].Category
		}
	}
	sort.Slice(report.Rows, byActualDesc(report.Rows))
	sort.Slice(report.Unbudgeted, byActualDesc(report.Unbudgeted))
	return report
}

// CheckThresholds flags every transaction whose magnitude exceeds the
// per-transaction limit of its category. Categories without a limit never
// violate. Violations are sorted by amount descending, ties broken by
// date ascending.
func CheckThresholds(transactions []models.Transaction, limits models.ThresholdLimits) []Violation {
	var violations []Violation
	for _, tx := range transactions {
		limit, ok := limits[tx.Category]
		if !ok {
			continue
		}
		magnitude := tx.Amount.Abs()
		if magnitude.GreaterThan(limit) {
			violations = append(violations, Violation{
				Transaction: tx,
				Limit:       limit,
				Excess:      magnitude.Sub(limit),
			})
		}
	}
	sort.Slice(violations, func(i, j int) bool {
		ai := violations[i].Transaction.Amount.Abs()
		aj := violations[j].Transaction.Amount.Abs()
		if !ai.Equal(aj) {
			return ai.GreaterThan(aj)
		}
		return violations[i].Transaction.Date.Before(violations[j].Transaction.Date)
	})
	return violations
}
