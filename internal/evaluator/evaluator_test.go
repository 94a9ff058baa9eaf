package evaluator

import (
	"testing"
	"time"

	"fjacquet/expense-etl/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spend(day int, category, amount string) models.Transaction {
	date := time.Date(2025, time.March, day, 0, 0, 0, 0, time.UTC)
	return models.Transaction{
		Date:        date,
		Amount:      decimal.RequireFromString(amount),
		Description: category + " purchase",
		Account:     models.AccountCIBCCostco,
		Category:    category,
		Period:      models.PeriodOf(date),
	}
}

func limits(pairs map[string]string) map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(pairs))
	for k, v := range pairs {
		m[k] = decimal.RequireFromString(v)
	}
	return m
}

func TestCompareBudgets(t *testing.T) {
	transactions := []models.Transaction{
		spend(1, "Groceries", "300.00"),
		spend(8, "Groceries", "200.00"),
		spend(2, "Dining", "80.00"),
		spend(3, "Hobbies", "45.00"),
		spend(4, models.CategoryUncategorized, "10.00"),
	}
	budgets := models.BudgetLimits(limits(map[string]string{
		"Groceries": "400",
		"Dining":    "150",
	}))

	report := CompareBudgets(transactions, budgets)

	require.Len(t, report.Rows, 2)
	assert.Equal(t, "Groceries", report.Rows[0].Category)
	assert.Equal(t, "500", report.Rows[0].Actual.String())
	assert.Equal(t, "100", report.Rows[0].Delta.String())
	assert.Equal(t, "Dining", report.Rows[1].Category)
	assert.Equal(t, "-70", report.Rows[1].Delta.String())

	require.Len(t, report.Unbudgeted, 2)
	assert.Equal(t, "Hobbies", report.Unbudgeted[0].Category)
	assert.Equal(t, models.CategoryUncategorized, report.Unbudgeted[1].Category)

	// Total excludes the uncategorized bucket.
	assert.Equal(t, "625", report.Total.String())
}

func TestCompareBudgetsSortTies(t *testing.T) {
	transactions := []models.Transaction{
		spend(1, "Zeta", "50.00"),
		spend(2, "Alpha", "50.00"),
	}
	budgets := models.BudgetLimits(limits(map[string]string{
		"Zeta":  "100",
		"Alpha": "100",
	}))

	report := CompareBudgets(transactions, budgets)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, "Alpha", report.Rows[0].Category)
	assert.Equal(t, "Zeta", report.Rows[1].Category)
}

func TestCheckThresholds(t *testing.T) {
	transactions := []models.Transaction{
		spend(5, "Dining", "150.00"),
		spend(1, "Dining", "90.00"),
		spend(2, "Groceries", "500.00"),
		spend(3, "Hobbies", "999.00"),
	}
	thresholds := models.ThresholdLimits(limits(map[string]string{
		"Dining":    "100",
		"Groceries": "600",
	}))

	violations := CheckThresholds(transactions, thresholds)

	// Only the 150 dining charge exceeds a limit; groceries is under its
	// threshold and hobbies has none configured.
	require.Len(t, violations, 1)
	assert.Equal(t, "150", violations[0].Transaction.Amount.String())
	assert.Equal(t, "100", violations[0].Limit.String())
	assert.Equal(t, "50", violations[0].Excess.String())
}

func TestCheckThresholdsUsesMagnitude(t *testing.T) {
	transactions := []models.Transaction{
		spend(1, "Dining", "-150.00"),
	}
	thresholds := models.ThresholdLimits(limits(map[string]string{"Dining": "100"}))

	violations := CheckThresholds(transactions, thresholds)
	require.Len(t, violations, 1)
	assert.Equal(t, "50", violations[0].Excess.String())
}

func TestCheckThresholdsSortOrder(t *testing.T) {
	transactions := []models.Transaction{
		spend(9, "Dining", "200.00"),
		spend(2, "Dining", "200.00"),
		spend(1, "Dining", "350.00"),
	}
	thresholds := models.ThresholdLimits(limits(map[string]string{"Dining": "100"}))

	violations := CheckThresholds(transactions, thresholds)
	require.Len(t, violations, 3)
	assert.Equal(t, "350", violations[0].Transaction.Amount.String())
	// Equal amounts fall back to date ascending.
	assert.Equal(t, 2, violations[1].Transaction.Date.Day())
	assert.Equal(t, 9, violations[2].Transaction.Date.Day())
}

func TestCheckThresholdsExactLimit(t *testing.T) {
	transactions := []models.Transaction{spend(1, "Dining", "100.00")}
	thresholds := models.ThresholdLimits(limits(map[string]string{"Dining": "100"}))

	// Spending exactly the limit is not a violation.
	assert.Empty(t, CheckThresholds(transactions, thresholds))
}

func TestCheckThresholdsNoLimits(t *testing.T) {
	transactions := []models.Transaction{spend(1, "Dining", "9999.00")}
	assert.Empty(t, CheckThresholds(transactions, nil))
}

func TestCompareBudgetsEmpty(t *testing.T) {
	report := CompareBudgets(nil, nil)
	assert.Empty(t, report.Rows)
	assert.Empty(t, report.Unbudgeted)
	assert.True(t, report.Total.IsZero())
}
