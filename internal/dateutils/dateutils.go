// Package dateutils provides the date parsing helpers shared by the
// statement parsers and the normalizer.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date layout constants for the supported statement exports.
const (
	LayoutISO  = "2006-01-02"      // CIBC, Scotiabank
	LayoutAMEX = "02 Jan 2006"     // AMEX: "14 Mar 2025"
	LayoutRBC  = "January 2, 2006" // RBC: "March 14, 2025"
)

var whitespace = regexp.MustCompile(`\s+`)

// CleanDateString trims a date string and collapses runs of whitespace to
// a single space.
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ParseStrict parses a date string against an ordered list of layouts and
// returns the first match. Impossible dates (month 13, February 30) fail
// for every layout because time.Parse rejects them.
func ParseStrict(dateStr string, layouts []string) (time.Time, error) {
	cleaned := CleanDateString(dateStr)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("no layout matches %q", dateStr)
}

// StartOfMonth returns midnight UTC on the first day of the date's month.
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// NextMonth returns midnight UTC on the first day of the following month.
func NextMonth(date time.Time) time.Time {
	return StartOfMonth(date).AddDate(0, 1, 0)
}
