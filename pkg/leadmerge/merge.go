package leadmerge

import (
	"fmt"
	"io"
	"strings"

	"github.com/ukaji3/leadmerge-go/pkg/leadmerge/models"
	"github.com/ukaji3/leadmerge-go/pkg/leadmerge/parser"
	"go.uber.org/zap"
)

// Inputs holds the raw merge inputs.
type Inputs struct {
	// Spreadsheet is the xlsx export; only the first sheet is read.
	Spreadsheet io.Reader
	// Annotations is the "City: ZIP: Score|..." string, one entry per row.
	Annotations string
	// Accounts is the CSV account export (BillingPostalCode, OwnerId).
	Accounts io.Reader
	// Users is the CSV user export (Id, Name).
	Users io.Reader
}

// Result is the merged table and its run summary.
type Result struct {
	Table *models.Table
	Stats models.Stats
}

// Merge parses all inputs and merges them. Any parse or load failure
// aborts the whole merge; no partial table is returned.
func Merge(in Inputs, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if in.Spreadsheet == nil {
		return nil, fmt.Errorf("%w: spreadsheet", ErrMissingInput)
	}
	if strings.TrimSpace(in.Annotations) == "" {
		return nil, fmt.Errorf("%w: annotation string", ErrMissingInput)
	}

	source, err := parser.ReadFirstSheet(in.Spreadsheet)
	if err != nil {
		return nil, &ParseError{Source: SourceSpreadsheet, Err: fmt.Errorf("%w: %w", ErrInvalidFormat, err)}
	}

	entries, err := parser.ParseAnnotations(in.Annotations)
	if err != nil {
		return nil, &ParseError{Source: SourceAnnotations, Err: err}
	}

	if in.Accounts == nil {
		return nil, &ReferenceLoadError{Table: TableAccounts, Err: ErrMissingInput}
	}
	accounts, err := parser.ReadAccounts(in.Accounts)
	if err != nil {
		return nil, &ReferenceLoadError{Table: TableAccounts, Err: err}
	}

	if in.Users == nil {
		return nil, &ReferenceLoadError{Table: TableUsers, Err: ErrMissingInput}
	}
	users, err := parser.ReadUsers(in.Users)
	if err != nil {
		return nil, &ReferenceLoadError{Table: TableUsers, Err: err}
	}

	return MergeTables(source, entries, accounts, users, opts)
}

// MergeTables combines parsed inputs: drop denylisted columns, zip the
// annotation entries onto the rows by position, look up the account owner
// by ZIP, filter, and deduplicate. The source table is not modified.
func MergeTables(source *models.Table, entries []models.AnnotationEntry, accounts []models.Account, users []models.User, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	log := opts.logger()

	stats := models.Stats{
		SourceRows: source.Len(),
		Entries:    len(entries),
	}

	if source.Len() != len(entries) {
		if opts.StrictAlignment {
			return nil, &AlignmentError{Rows: source.Len(), Entries: len(entries)}
		}
		log.Warn("annotation entries do not match spreadsheet rows",
			zap.Int("rows", source.Len()),
			zap.Int("entries", len(entries)))
	}

	combined := combine(source, entries, opts.DropColumns)
	if !combined.HasColumn(opts.DedupeColumn) {
		return nil, &ParseError{
			Source: SourceSpreadsheet,
			Err:    fmt.Errorf("%w: %s", parser.ErrMissingColumn, opts.DedupeColumn),
		}
	}
	stats.Combined = combined.Len()
	log.Debug("combined rows", zap.Int("rows", stats.Combined), zap.Strings("columns", combined.Columns))

	attachOwners(combined, DedupeAccounts(accounts), users)

	result := filter(combined, opts, &stats)
	stats.Output = result.Len()

	log.Info("merge complete",
		zap.Int("source_rows", stats.SourceRows),
		zap.Int("entries", stats.Entries),
		zap.Int("below_threshold", stats.BelowThreshold),
		zap.Int("excluded_zip", stats.ExcludedZIP),
		zap.Int("duplicates", stats.Duplicates),
		zap.Int("unowned", stats.Unowned),
		zap.Int("output_rows", stats.Output))

	return &Result{Table: result, Stats: stats}, nil
}

// combine drops the denylisted columns and zips the entries onto the rows
// by index. The shorter side is padded with empty values.
func combine(source *models.Table, entries []models.AnnotationEntry, dropColumns []string) *models.Table {
	table := models.NewTable(source.Columns...)
	table.DropColumns(dropColumns...)
	table.AddColumn(ColCity)
	table.AddColumn(ColZIP)
	table.AddColumn(ColScore)

	n := max(source.Len(), len(entries))
	table.Rows = make([]models.Row, n)
	for i := 0; i < n; i++ {
		row := make(models.Row, len(table.Columns))
		if i < source.Len() {
			for _, col := range table.Columns {
				if v, ok := source.Rows[i][col]; ok {
					row[col] = v
				}
			}
		}

		if i < len(entries) {
			row[ColCity] = entries[i].City
			row[ColZIP] = entries[i].ZIP
			row[ColScore] = int64(entries[i].Score)
		} else {
			delete(row, ColCity)
			delete(row, ColZIP)
			delete(row, ColScore)
		}

		table.Rows[i] = row
	}

	return table
}

// DedupeAccounts keeps the first account for each billing postal code,
// in file order.
func DedupeAccounts(accounts []models.Account) []models.Account {
	seen := make(map[string]bool, len(accounts))
	result := make([]models.Account, 0, len(accounts))
	for _, a := range accounts {
		if seen[a.BillingPostalCode] {
			continue
		}
		seen[a.BillingPostalCode] = true
		result = append(result, a)
	}
	return result
}

// attachOwners left-joins ZIP to account owner and owner to user name.
// Unmatched rows get an empty Account Owner.
func attachOwners(table *models.Table, accounts []models.Account, users []models.User) {
	ownerByZIP := make(map[string]string, len(accounts))
	for _, a := range accounts {
		if a.BillingPostalCode != "" && a.OwnerID != "" {
			ownerByZIP[a.BillingPostalCode] = a.OwnerID
		}
	}

	nameByID := make(map[string]string, len(users))
	for _, u := range users {
		if _, ok := nameByID[u.ID]; !ok && u.ID != "" {
			nameByID[u.ID] = u.Name
		}
	}

	table.AddColumn(ColAccountOwner)
	for _, row := range table.Rows {
		delete(row, ColAccountOwner)

		zip, ok := row[ColZIP].(string)
		if !ok {
			continue
		}
		ownerID, ok := ownerByZIP[strings.TrimSpace(zip)]
		if !ok {
			continue
		}
		if name, ok := nameByID[ownerID]; ok && name != "" {
			row[ColAccountOwner] = name
		}
	}
}

// filter keeps rows with Score >= MinScore and ZIP != ExcludeZIP, then the
// first row for each dedupe column value. An empty ExcludeZIP disables the
// ZIP check.
func filter(table *models.Table, opts Options, stats *models.Stats) *models.Table {
	result := models.NewTable(table.Columns...)
	seen := make(map[string]bool, table.Len())

	for _, row := range table.Rows {
		score, ok := row[ColScore].(int64)
		if !ok || score < int64(opts.MinScore) {
			stats.BelowThreshold++
			continue
		}
		if zip, _ := row[ColZIP].(string); opts.ExcludeZIP != "" && zip == opts.ExcludeZIP {
			stats.ExcludedZIP++
			continue
		}

		key := dedupeKey(row[opts.DedupeColumn])
		if seen[key] {
			stats.Duplicates++
			continue
		}
		seen[key] = true

		if row[ColAccountOwner] == nil {
			stats.Unowned++
		}
		result.Rows = append(result.Rows, row)
	}

	return result
}

// dedupeKey distinguishes values by type so 1 and "1" differ.
// All empty values share one key.
func dedupeKey(v interface{}) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T:%v", v, v)
}
