// Package leadmerge merges a social-media export with per-row location
// annotations and CRM ownership data into one filtered table.
package leadmerge

import (
	"fmt"

	"go.uber.org/zap"
)

// Score threshold bounds.
const (
	MinThreshold     = 1
	MaxThreshold     = 10
	DefaultThreshold = 3
)

// Output column names added by the merge.
const (
	ColCity         = "City"
	ColZIP          = "ZIP"
	ColScore        = "Score"
	ColAccountOwner = "Account Owner"
	ColMessage      = "Message"
)

// ExcludedZIP is the ZIP placeholder for rows outside the US and Canada.
const ExcludedZIP = "N/A"

// DefaultDropColumns lists the export columns removed before merging.
var DefaultDropColumns = []string{
	"Network", "Author", "Message ID", "Profile", "Potential Impressions",
	"Comments", "Shares", "Likes", "Sentiment", "Location", "Hashtags",
	"Images", "Language",
}

// Options configures merge behavior.
type Options struct {
	// MinScore is the inclusive score threshold (1-10).
	MinScore int
	// DropColumns lists source columns to remove. Absent columns are ignored.
	DropColumns []string
	// DedupeColumn is the column whose first occurrence is kept.
	DedupeColumn string
	// ExcludeZIP is the ZIP value whose rows are dropped.
	ExcludeZIP string
	// StrictAlignment fails the merge when the annotation entry count
	// differs from the spreadsheet row count instead of padding.
	StrictAlignment bool
	// Logger receives progress logs. If nil, logging is disabled.
	Logger *zap.Logger
}

// DefaultOptions returns default merge options.
func DefaultOptions() Options {
	return Options{
		MinScore:     DefaultThreshold,
		DropColumns:  append([]string(nil), DefaultDropColumns...),
		DedupeColumn: ColMessage,
		ExcludeZIP:   ExcludedZIP,
	}
}

// Validate checks the option values.
func (o Options) Validate() error {
	if o.MinScore < MinThreshold || o.MinScore > MaxThreshold {
		return fmt.Errorf("min score %d out of range %d-%d", o.MinScore, MinThreshold, MaxThreshold)
	}
	if o.DedupeColumn == "" {
		return fmt.Errorf("dedupe column must be set")
	}
	return nil
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}
