package leadmerge

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ukaji3/leadmerge-go/pkg/leadmerge/models"
	"github.com/ukaji3/leadmerge-go/pkg/leadmerge/parser"
)

func sourceTable(messages ...string) *models.Table {
	table := models.NewTable("Network", "Message", "Likes")
	for _, m := range messages {
		table.Rows = append(table.Rows, models.Row{
			"Network": "X",
			"Message": m,
			"Likes":   int64(3),
		})
	}
	return table
}

func mustParse(t *testing.T, s string) []models.AnnotationEntry {
	t.Helper()
	entries, err := parser.ParseAnnotations(s)
	if err != nil {
		t.Fatalf("ParseAnnotations(%q) failed: %v", s, err)
	}
	return entries
}

func TestMergeTablesScoreAndZIPFilter(t *testing.T) {
	source := sourceTable("A", "B")
	entries := mustParse(t, "New York, NY: 10001: 9|Chicago, IL: N/A: 2")

	result, err := MergeTables(source, entries, nil, nil, DefaultOptions())
	if err != nil {
		t.Fatalf("MergeTables failed: %v", err)
	}

	expected := &models.Table{
		Columns: []string{"Message", "City", "ZIP", "Score", "Account Owner"},
		Rows: []models.Row{
			{"Message": "A", "City": "New York, NY", "ZIP": "10001", "Score": int64(9)},
		},
	}
	if diff := cmp.Diff(expected, result.Table); diff != "" {
		t.Errorf("MergeTables mismatch (-want +got):\n%s", diff)
	}
	if result.Stats.Combined != 2 || result.Stats.BelowThreshold != 1 || result.Stats.Output != 1 {
		t.Errorf("Unexpected stats: %+v", result.Stats)
	}
}

func TestMergeTablesAccountOwner(t *testing.T) {
	source := sourceTable("A", "B")
	entries := mustParse(t, "New York, NY: 10001: 9|Austin, TX: 73301: 5")
	accounts := []models.Account{
		{BillingPostalCode: "10001", OwnerID: "U1"},
		{BillingPostalCode: "10001", OwnerID: "U2"},
	}
	users := []models.User{
		{ID: "U1", Name: "Alice"},
		{ID: "U2", Name: "Bob"},
	}

	result, err := MergeTables(source, entries, accounts, users, DefaultOptions())
	if err != nil {
		t.Fatalf("MergeTables failed: %v", err)
	}
	if result.Table.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", result.Table.Len())
	}

	// First account for 10001 wins
	if owner := result.Table.Rows[0][ColAccountOwner]; owner != "Alice" {
		t.Errorf("Expected owner Alice, got %v", owner)
	}
	// Unmatched ZIP keeps the row with an empty owner
	if owner, ok := result.Table.Rows[1][ColAccountOwner]; ok {
		t.Errorf("Expected no owner for unmatched ZIP, got %v", owner)
	}
	if result.Stats.Unowned != 1 {
		t.Errorf("Expected 1 unowned row, got %d", result.Stats.Unowned)
	}
}

func TestMergeTablesDedupeMessage(t *testing.T) {
	source := sourceTable("A", "A", "B", "A")
	entries := mustParse(t, "X: 1: 2|Y: 2: 9|Z: 3: 9|W: 4: 9")

	result, err := MergeTables(source, entries, nil, nil, DefaultOptions())
	if err != nil {
		t.Fatalf("MergeTables failed: %v", err)
	}

	var got []string
	for _, row := range result.Table.Rows {
		got = append(got, row[ColMessage].(string)+"/"+row[ColCity].(string))
	}
	// The low-score first "A" is filtered before deduplication
	expected := []string{"A/Y", "B/Z"}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Dedupe mismatch (-want +got):\n%s", diff)
	}
	if result.Stats.Duplicates != 1 {
		t.Errorf("Expected 1 duplicate, got %d", result.Stats.Duplicates)
	}
}

func TestMergeTablesPositionalPadding(t *testing.T) {
	tests := []struct {
		name     string
		messages []string
		entries  string
		combined int
		output   []interface{}
	}{
		{
			name:     "fewer entries than rows",
			messages: []string{"A", "B", "C"},
			entries:  "X: 1: 9",
			combined: 3,
			output:   []interface{}{"A"},
		},
		{
			name:     "more entries than rows",
			messages: []string{"A"},
			entries:  "X: 1: 9|Y: 2: 9|Z: 3: 9",
			combined: 3,
			output:   []interface{}{"A", nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MergeTables(sourceTable(tt.messages...), mustParse(t, tt.entries), nil, nil, DefaultOptions())
			if err != nil {
				t.Fatalf("MergeTables failed: %v", err)
			}
			if result.Stats.Combined != tt.combined {
				t.Errorf("Expected %d combined rows, got %d", tt.combined, result.Stats.Combined)
			}

			var got []interface{}
			for _, row := range result.Table.Rows {
				got = append(got, row[ColMessage])
			}
			if diff := cmp.Diff(tt.output, got); diff != "" {
				t.Errorf("Output messages mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMergeTablesStrictAlignment(t *testing.T) {
	opts := DefaultOptions()
	opts.StrictAlignment = true

	_, err := MergeTables(sourceTable("A", "B"), mustParse(t, "X: 1: 9"), nil, nil, opts)
	var alignErr *AlignmentError
	if !errors.As(err, &alignErr) {
		t.Fatalf("Expected AlignmentError, got %v", err)
	}
	if alignErr.Rows != 2 || alignErr.Entries != 1 {
		t.Errorf("Unexpected alignment error: %+v", alignErr)
	}
}

func TestMergeTablesMissingMessageColumn(t *testing.T) {
	source := models.NewTable("Text")
	source.Rows = []models.Row{{"Text": "A"}}

	_, err := MergeTables(source, mustParse(t, "X: 1: 9"), nil, nil, DefaultOptions())
	var parseErr *ParseError
	if !errors.As(err, &parseErr) || parseErr.Source != SourceSpreadsheet {
		t.Fatalf("Expected spreadsheet ParseError, got %v", err)
	}
	if !errors.Is(err, parser.ErrMissingColumn) {
		t.Errorf("Expected ErrMissingColumn, got %v", err)
	}
}

func TestMergeTablesKeepsSourceUnchanged(t *testing.T) {
	source := sourceTable("A")
	if _, err := MergeTables(source, mustParse(t, "X: 1: 9"), nil, nil, DefaultOptions()); err != nil {
		t.Fatalf("MergeTables failed: %v", err)
	}
	if diff := cmp.Diff(sourceTable("A"), source); diff != "" {
		t.Errorf("Source table modified (-want +got):\n%s", diff)
	}
}

func TestMergeTablesOutputInvariants(t *testing.T) {
	source := sourceTable("A", "B", "C", "D", "A", "E")
	entries := mustParse(t, "P: 10001: 3|Q: N/A: 10|R: 60601: 2|S: 10001: 7|T: 10002: 8|U: International: 5")
	opts := DefaultOptions()
	opts.MinScore = 3

	result, err := MergeTables(source, entries, nil, nil, opts)
	if err != nil {
		t.Fatalf("MergeTables failed: %v", err)
	}

	if result.Table.Len() > source.Len() {
		t.Errorf("Output has %d rows, more than %d input rows", result.Table.Len(), source.Len())
	}
	seen := make(map[interface{}]bool)
	for _, row := range result.Table.Rows {
		if score := row[ColScore].(int64); score < int64(opts.MinScore) {
			t.Errorf("Row %v has score below threshold", row)
		}
		if row[ColZIP] == ExcludedZIP {
			t.Errorf("Row %v has excluded ZIP", row)
		}
		if seen[row[ColMessage]] {
			t.Errorf("Duplicate message %v", row[ColMessage])
		}
		seen[row[ColMessage]] = true
	}
	if result.Table.Len() != 3 {
		t.Errorf("Expected 3 rows, got %d", result.Table.Len())
	}
}

func TestDedupeAccounts(t *testing.T) {
	accounts := []models.Account{
		{BillingPostalCode: "10001", OwnerID: "U1"},
		{BillingPostalCode: "60601", OwnerID: "U2"},
		{BillingPostalCode: "10001", OwnerID: "U3"},
	}

	expected := []models.Account{
		{BillingPostalCode: "10001", OwnerID: "U1"},
		{BillingPostalCode: "60601", OwnerID: "U2"},
	}
	if diff := cmp.Diff(expected, DedupeAccounts(accounts)); diff != "" {
		t.Errorf("DedupeAccounts mismatch (-want +got):\n%s", diff)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		minScore int
		valid    bool
	}{
		{0, false},
		{1, true},
		{3, true},
		{10, true},
		{11, false},
	}

	for _, tt := range tests {
		opts := DefaultOptions()
		opts.MinScore = tt.minScore
		if err := opts.Validate(); (err == nil) != tt.valid {
			t.Errorf("Validate() with MinScore %d = %v, expected valid=%v", tt.minScore, err, tt.valid)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"report.xlsx", "report_processed.xlsx"},
		{"/data/export.v2.xlsx", "/data/export.v2_processed.xlsx"},
		{"export", "export_processed.xlsx"},
	}

	for _, tt := range tests {
		if result := OutputPath(tt.input); result != tt.expected {
			t.Errorf("OutputPath(%q) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}
