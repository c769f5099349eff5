package leadmerge

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates an input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrMissingInput indicates the spreadsheet or annotation string is absent.
// The merge is not attempted.
var ErrMissingInput = errors.New("missing required input")

// Parse error sources.
const (
	SourceAnnotations = "annotations"
	SourceSpreadsheet = "spreadsheet"
)

// ParseError represents a malformed spreadsheet or annotation string.
type ParseError struct {
	Source string // "annotations", "spreadsheet"
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// AlignmentError reports a row/entry count mismatch under strict alignment.
type AlignmentError struct {
	Rows    int
	Entries int
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("alignment error: spreadsheet has %d rows but annotation string has %d entries", e.Rows, e.Entries)
}

// Reference table names.
const (
	TableAccounts = "accounts"
	TableUsers    = "users"
)

// ReferenceLoadError represents a missing or unreadable reference table.
type ReferenceLoadError struct {
	Table string // "accounts", "users"
	Path  string
	Err   error
}

func (e *ReferenceLoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to load %s table: %v", e.Table, e.Err)
	}
	return fmt.Sprintf("failed to load %s table %q: %v", e.Table, e.Path, e.Err)
}

func (e *ReferenceLoadError) Unwrap() error {
	return e.Err
}
