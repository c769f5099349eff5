package leadmerge

import (
	"path/filepath"
	"strings"
)

// ProcessedSuffix is inserted before the output file extension.
const ProcessedSuffix = "_processed"

// OutputPath derives the output file name from the input file name:
// "report.xlsx" becomes "report_processed.xlsx".
func OutputPath(input string) string {
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(input, ext)
	if ext == "" {
		ext = ".xlsx"
	}
	return base + ProcessedSuffix + ext
}
