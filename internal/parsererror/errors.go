// Package parsererror defines the typed errors produced by the statement
// ingestion pipeline. Row-level errors are recoverable (skip and count),
// file- and storage-level errors abort the current operation.
package parsererror

import (
	"fmt"
	"time"
)

// MalformedRowError reports a single statement row that is missing a
// required field or carries a non-numeric amount. Recoverable: the caller
// skips the row and counts it.
type MalformedRowError struct {
	File  string
	Line  int
	Field string
	Value string
	Err   error
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("%s line %d: malformed %s=%q: %v", e.File, e.Line, e.Field, e.Value, e.Err)
}

func (e *MalformedRowError) Unwrap() error {
	return e.Err
}

// DateParseError reports a date string that could not be parsed into a
// calendar date, or encodes an impossible date. Same recovery policy as
// MalformedRowError.
type DateParseError struct {
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("unparseable date %q: %v", e.Value, e.Err)
}

func (e *DateParseError) Unwrap() error {
	return e.Err
}

// FileParseError reports a statement file that yielded no usable rows.
// The file is aborted; other files in the same upload continue.
type FileParseError struct {
	File      string
	RowErrors int
	Reason    string
}

func (e *FileParseError) Error() string {
	return fmt.Sprintf("file %s unusable: %s (%d row errors)", e.File, e.Reason, e.RowErrors)
}

// MixedPeriodError reports a batch that spans more than one statement
// period. The upload is aborted; the caller must split by period first.
type MixedPeriodError struct {
	First  time.Time
	Second time.Time
}

func (e *MixedPeriodError) Error() string {
	return fmt.Sprintf("batch spans multiple periods: %s and %s",
		e.First.Format("January 2006"), e.Second.Format("January 2006"))
}

// StorageError reports a failed storage operation. The transaction is
// rolled back, prior state is intact, and the operation is safe to retry.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
