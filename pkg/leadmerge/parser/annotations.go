package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/leadmerge-go/pkg/leadmerge/models"
)

const (
	// EntrySeparator separates annotation entries.
	EntrySeparator = "|"
	// FieldSeparator separates the City, ZIP and Score fields of an entry.
	FieldSeparator = ": "
)

// ParseAnnotations parses a string of the form
// "City1: ZIP1: Score1|City2: ZIP2: Score2|...".
// The whole string fails on the first bad entry; no partial result is returned.
func ParseAnnotations(s string) ([]models.AnnotationEntry, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, EntrySeparator)
	entries := make([]models.AnnotationEntry, 0, len(parts))
	for i, part := range parts {
		entry, err := parseEntry(strings.TrimSpace(part))
		if err != nil {
			return nil, &EntryError{Index: i, Entry: part, Err: err}
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// parseEntry splits one entry into City, ZIP and Score.
// City may contain commas; only the literal ": " is a delimiter.
func parseEntry(entry string) (models.AnnotationEntry, error) {
	fields := strings.Split(entry, FieldSeparator)
	if len(fields) != 3 {
		return models.AnnotationEntry{}, fmt.Errorf("%w: expected 3 fields, got %d", ErrMalformedEntry, len(fields))
	}

	score, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		return models.AnnotationEntry{}, fmt.Errorf("%w: %q", ErrInvalidScore, fields[2])
	}

	return models.AnnotationEntry{
		City:  fields[0],
		ZIP:   fields[1],
		Score: score,
	}, nil
}
