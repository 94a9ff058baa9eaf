package config

import (
	"fmt"
	"os"

	"fjacquet/expense-etl/internal/models"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// rulesFile is the on-disk shape of the category rules configuration.
type rulesFile struct {
	Rules []models.CategoryRule `yaml:"rules"`
}

// limitEntry is one category limit in the budget and threshold files.
// Amounts are strings in YAML so they parse to exact decimals.
type limitEntry struct {
	Category string `yaml:"category"`
	Amount   string `yaml:"amount"`
}

type limitsFile struct {
	Limits []limitEntry `yaml:"limits"`
}

// LoadRules reads the ordered category rules from a YAML file. A missing
// file is not an error: everything stays uncategorized until rules exist.
func LoadRules(path string) ([]models.CategoryRule, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config paths come from the run configuration
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading rules file: %w", err)
	}

	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing rules file %s: %w", path, err)
	}
	for i, rule := range file.Rules {
		if rule.Pattern == "" || rule.Category == "" {
			return nil, fmt.Errorf("rules file %s: rule %d needs pattern and category", path, i+1)
		}
	}
	return file.Rules, nil
}

// LoadBudgets reads per-category monthly budgets from a YAML file.
func LoadBudgets(path string) (models.BudgetLimits, error) {
	entries, err := loadLimits(path)
	if err != nil {
		return nil, err
	}
	return models.BudgetLimits(entries), nil
}

// LoadThresholds reads per-category transaction thresholds from a YAML
// file.
func LoadThresholds(path string) (models.ThresholdLimits, error) {
	entries, err := loadLimits(path)
	if err != nil {
		return nil, err
	}
	return models.ThresholdLimits(entries), nil
}

func loadLimits(path string) (map[string]decimal.Decimal, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config paths come from the run configuration
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]decimal.Decimal{}, nil
		}
		return nil, fmt.Errorf("error reading limits file: %w", err)
	}

	var file limitsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing limits file %s: %w", path, err)
	}

	limits := make(map[string]decimal.Decimal, len(file.Limits))
	for i, entry := range file.Limits {
		if entry.Category == "" {
			return nil, fmt.Errorf("limits file %s: entry %d needs a category", path, i+1)
		}
		amount, err := decimal.NewFromString(entry.Amount)
		if err != nil {
			return nil, fmt.Errorf("limits file %s: entry %d amount %q: %w", path, i+1, entry.Amount, err)
		}
		if _, dup := limits[entry.Category]; dup {
			return nil, fmt.Errorf("limits file %s: duplicate category %q", path, entry.Category)
		}
		limits[entry.Category] = amount
	}
	return limits, nil
}
