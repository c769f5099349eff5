package leadmerge

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/ukaji3/leadmerge-go/pkg/leadmerge/output"
	"go.uber.org/zap"
)

// Paths locates the files of one run.
type Paths struct {
	// Input is the xlsx export to process.
	Input string
	// Accounts is the CSV account export.
	Accounts string
	// Users is the CSV user export.
	Users string
	// Output is the destination file. If empty, OutputPath(Input) is used.
	Output string
}

// Process reads the files named by paths, merges them with the annotation
// string and writes the result. It returns the written path. Nothing is
// written when the merge fails.
func Process(paths Paths, annotations string, opts Options) (string, *Result, error) {
	if paths.Input == "" {
		return "", nil, fmt.Errorf("%w: spreadsheet", ErrMissingInput)
	}
	if strings.TrimSpace(annotations) == "" {
		return "", nil, fmt.Errorf("%w: annotation string", ErrMissingInput)
	}

	input, err := os.Open(paths.Input)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, fmt.Errorf("%w: %s", ErrFileNotFound, paths.Input)
		}
		return "", nil, err
	}
	defer input.Close()

	accounts, err := openReference(TableAccounts, paths.Accounts)
	if err != nil {
		return "", nil, err
	}
	defer accounts.Close()

	users, err := openReference(TableUsers, paths.Users)
	if err != nil {
		return "", nil, err
	}
	defer users.Close()

	result, err := Merge(Inputs{
		Spreadsheet: input,
		Annotations: annotations,
		Accounts:    accounts,
		Users:       users,
	}, opts)
	if err != nil {
		var refErr *ReferenceLoadError
		if errors.As(err, &refErr) && refErr.Path == "" {
			switch refErr.Table {
			case TableAccounts:
				refErr.Path = paths.Accounts
			case TableUsers:
				refErr.Path = paths.Users
			}
		}
		return "", nil, err
	}

	outputPath := paths.Output
	if outputPath == "" {
		outputPath = OutputPath(paths.Input)
	}
	if err := output.SaveXLSX(outputPath, result.Table); err != nil {
		return "", nil, fmt.Errorf("failed to write output: %w", err)
	}

	opts.logger().Info("output written",
		zap.String("path", outputPath),
		zap.Int("rows", result.Table.Len()))

	return outputPath, result, nil
}

func openReference(table, path string) (*os.File, error) {
	if path == "" {
		return nil, &ReferenceLoadError{Table: table, Err: ErrMissingInput}
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("%w: %w", ErrFileNotFound, err)
		}
		return nil, &ReferenceLoadError{Table: table, Path: path, Err: err}
	}
	return f, nil
}
