package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ukaji3/leadmerge-go/pkg/leadmerge/models"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Required reference columns.
const (
	ColBillingPostalCode = "BillingPostalCode"
	ColOwnerID           = "OwnerId"
	ColUserID            = "Id"
	ColUserName          = "Name"
)

// ReadAccounts reads the CRM account export in file order.
func ReadAccounts(r io.Reader) ([]models.Account, error) {
	var accounts []models.Account
	err := readCSV(r, []string{ColBillingPostalCode, ColOwnerID}, func(fields []string) {
		accounts = append(accounts, models.Account{
			BillingPostalCode: fields[0],
			OwnerID:           fields[1],
		})
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// ReadUsers reads the CRM user export in file order.
func ReadUsers(r io.Reader) ([]models.User, error) {
	var users []models.User
	err := readCSV(r, []string{ColUserID, ColUserName}, func(fields []string) {
		users = append(users, models.User{
			ID:   fields[0],
			Name: fields[1],
		})
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// readCSV reads a comma-separated export with a header row and passes the
// required columns of each record to fn, in the order given. A leading
// UTF-8 byte order mark is dropped.
func readCSV(r io.Reader, required []string, fn func(fields []string)) error {
	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return fmt.Errorf("%w: empty file", ErrMissingColumn)
	}
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	indexes := make([]int, len(required))
	for i, name := range required {
		indexes[i] = -1
		for j, h := range header {
			if strings.TrimSpace(h) == name {
				indexes[i] = j
				break
			}
		}
		if indexes[i] < 0 {
			return fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return fmt.Errorf("failed to read record %d: %w", line, err)
		}

		fields := make([]string, len(indexes))
		for i, idx := range indexes {
			if idx < len(record) {
				fields[i] = strings.TrimSpace(record[idx])
			}
		}
		fn(fields)
	}

	return nil
}
