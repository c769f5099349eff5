// Package parser reads the merge inputs: the source workbook, the
// annotation string, and the CRM reference exports.
package parser

import (
	"errors"
	"fmt"
)

// ErrMalformedEntry indicates an annotation entry without exactly three fields.
var ErrMalformedEntry = errors.New("malformed annotation entry")

// ErrInvalidScore indicates an annotation score that is not an integer.
var ErrInvalidScore = errors.New("score is not an integer")

// ErrMissingColumn indicates a required column is absent from a table.
var ErrMissingColumn = errors.New("missing required column")

// ErrNoSheets indicates a workbook without worksheets.
var ErrNoSheets = errors.New("workbook has no sheets")

// EntryError describes a bad annotation entry.
type EntryError struct {
	// Index is the 0-based position of the entry in the annotation string.
	Index int
	// Entry is the raw entry text.
	Entry string
	Err   error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("entry %d (%q): %v", e.Index+1, e.Entry, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}
