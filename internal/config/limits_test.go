package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadRules(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "rules.yaml", `
rules:
  - pattern: TIM HORTONS
    category: Dining
    priority: 10
  - pattern: LOBLAWS
    category: Groceries
    priority: 10
`)

	rules, err := LoadRules(path)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "TIM HORTONS", rules[0].Pattern)
	assert.Equal(t, "Dining", rules[0].Category)
	assert.Equal(t, 10, rules[0].Priority)
}

func TestLoadRulesMissingFile(t *testing.T) {
	rules, err := LoadRules(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Nil(t, rules)
}

func TestLoadRulesIncomplete(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "rules.yaml", `
rules:
  - pattern: TIM HORTONS
`)
	_, err := LoadRules(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs pattern and category")
}

func TestLoadBudgets(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "budgets.yaml", `
limits:
  - category: Groceries
    amount: "400"
  - category: Dining
    amount: "150.50"
`)

	budgets, err := LoadBudgets(path)
	require.NoError(t, err)
	require.Len(t, budgets, 2)
	assert.Equal(t, "400", budgets["Groceries"].String())
	assert.Equal(t, "150.5", budgets["Dining"].String())
}

func TestLoadBudgetsMissingFile(t *testing.T) {
	budgets, err := LoadBudgets(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, budgets)
}

func TestLoadThresholdsBadAmount(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "thresholds.yaml", `
limits:
  - category: Dining
    amount: not-a-number
`)
	_, err := LoadThresholds(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not-a-number")
}

func TestLoadThresholdsDuplicateCategory(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "thresholds.yaml", `
limits:
  - category: Dining
    amount: "100"
  - category: Dining
    amount: "200"
`)
	_, err := LoadThresholds(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate category")
}
