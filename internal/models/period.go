package models

import (
	"fmt"
	"time"
)

// Period identifies one statement period: the calendar month and year a
// transaction's date falls in. It is the unit of atomic persistence and
// replacement.
type Period struct {
	Month time.Month
	Year  int
}

// PeriodOf derives the statement period from a transaction date.
func PeriodOf(date time.Time) Period {
	return Period{Month: date.Month(), Year: date.Year()}
}

// Key returns the sortable "YYYY-MM" form of the period.
func (p Period) Key() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// String returns the human form, e.g. "January 2025".
func (p Period) String() string {
	return fmt.Sprintf("%s %d", p.Month, p.Year)
}

// Before reports whether p is chronologically before other.
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}
