package parser

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ukaji3/leadmerge-go/pkg/leadmerge/models"
)

func TestParseAnnotations(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []models.AnnotationEntry
	}{
		{
			name:  "two entries",
			input: "New York, NY: 10001: 9|Chicago, IL: N/A: 2",
			expected: []models.AnnotationEntry{
				{City: "New York, NY", ZIP: "10001", Score: 9},
				{City: "Chicago, IL", ZIP: "N/A", Score: 2},
			},
		},
		{
			name:  "pasted with line breaks",
			input: "\nDes Moines, Iowa: 50047: 8 |\n International: N/A: 1\n",
			expected: []models.AnnotationEntry{
				{City: "Des Moines, Iowa", ZIP: "50047", Score: 8},
				{City: "International", ZIP: "N/A", Score: 1},
			},
		},
		{
			name:     "empty",
			input:    "   ",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseAnnotations(tt.input)
			if err != nil {
				t.Fatalf("ParseAnnotations(%q) failed: %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.expected, result); diff != "" {
				t.Errorf("ParseAnnotations(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseAnnotationsErrors(t *testing.T) {
	tests := []struct {
		input    string
		expected error
		index    int
	}{
		{"New York, NY 10001: 9", ErrMalformedEntry, 0},
		{"New York, NY: 10001: 9|Chicago: 60601", ErrMalformedEntry, 1},
		{"New York, NY: 10001: 9|", ErrMalformedEntry, 1},
		{"A: B: C: 4", ErrMalformedEntry, 0},
		{"New York, NY: 10001: high", ErrInvalidScore, 0},
		{"New York, NY: 10001: 9.5", ErrInvalidScore, 0},
	}

	for _, tt := range tests {
		result, err := ParseAnnotations(tt.input)
		if !errors.Is(err, tt.expected) {
			t.Errorf("ParseAnnotations(%q) error = %v, expected %v", tt.input, err, tt.expected)
			continue
		}
		if result != nil {
			t.Errorf("ParseAnnotations(%q) returned partial result %v", tt.input, result)
		}
		var entryErr *EntryError
		if !errors.As(err, &entryErr) {
			t.Errorf("ParseAnnotations(%q) error %T is not an EntryError", tt.input, err)
			continue
		}
		if entryErr.Index != tt.index {
			t.Errorf("ParseAnnotations(%q) failed at entry %d, expected %d", tt.input, entryErr.Index, tt.index)
		}
	}
}
