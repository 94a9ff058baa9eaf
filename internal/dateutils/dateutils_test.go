package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanDateString(t *testing.T) {
	assert.Equal(t, "March 14, 2025", CleanDateString("  March   14,  2025 "))
	assert.Equal(t, "", CleanDateString("   "))
}

func TestParseStrict(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		layouts  []string
		expected time.Time
	}{
		{"iso", "2025-03-14", []string{LayoutISO}, time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)},
		{"amex", "14 Mar 2025", []string{LayoutAMEX}, time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)},
		{"rbc", "March 14, 2025", []string{LayoutRBC}, time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)},
		{"extra whitespace", " March  14, 2025", []string{LayoutRBC}, time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)},
		{"second layout wins", "2025-03-14", []string{LayoutAMEX, LayoutISO}, time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseStrict(tt.input, tt.layouts)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, parsed)
		})
	}
}

func TestParseStrictRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "  "},
		{"wrong layout", "14 Mar 2025"},
		{"month out of range", "2025-13-01"},
		{"day out of range", "2025-02-30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStrict(tt.input, []string{LayoutISO})
			require.Error(t, err)
		})
	}
}

func TestStartOfMonth(t *testing.T) {
	date := time.Date(2025, time.March, 14, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), StartOfMonth(date))
}

func TestNextMonth(t *testing.T) {
	date := time.Date(2024, time.December, 14, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), NextMonth(date))
}
