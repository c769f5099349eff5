package models

// Stats summarizes one merge run.
type Stats struct {
	// SourceRows is the number of data rows read from the spreadsheet.
	SourceRows int `json:"source_rows"`
	// Entries is the number of parsed annotation entries.
	Entries int `json:"entries"`
	// Combined is the row count after the positional zip.
	Combined int `json:"combined"`
	// BelowThreshold counts rows dropped for a missing or low score.
	BelowThreshold int `json:"below_threshold"`
	// ExcludedZIP counts rows dropped for the excluded ZIP value.
	ExcludedZIP int `json:"excluded_zip"`
	// Duplicates counts rows dropped by message deduplication.
	Duplicates int `json:"duplicates"`
	// Unowned counts output rows without an account owner.
	Unowned int `json:"unowned"`
	// Output is the final row count.
	Output int `json:"output"`
}
