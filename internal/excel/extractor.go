// Package excel extracts contact rows from uploaded spreadsheets.
//
// The expected sheet layout is three positional columns: Name, Email Id,
// Role, with a header in the first row.
package excel

import (
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/saloni/coldreach/internal/types"
)

// Extract reads the first sheet of an .xlsx workbook and returns one Contact
// per valid data row. Rows missing the email or role are dropped silently;
// rows that cannot be read are logged and skipped. The whole call fails only
// when the input is not a valid workbook.
func Extract(r io.Reader, log *zap.Logger) ([]types.Contact, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &InvalidWorkbookError{Message: "could not open spreadsheet", Cause: err}
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, &InvalidWorkbookError{Message: "workbook has no sheets"}
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, &InvalidWorkbookError{Message: "could not read sheet " + sheet, Cause: err}
	}
	defer rows.Close()

	var contacts []types.Contact
	rowNumber := 0
	for rows.Next() {
		rowNumber++
		if rowNumber == 1 {
			// Header row.
			continue
		}

		cols, err := rows.Columns()
		if err != nil {
			log.Warn("skipping unreadable row", zap.Int("row", rowNumber), zap.Error(err))
			continue
		}

		contact, ok := contactFromRow(cols)
		if !ok {
			log.Warn("skipping row with missing required fields",
				zap.Int("row", rowNumber),
				zap.String("email", cell(cols, 1)),
				zap.String("role", cell(cols, 2)))
			continue
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Error(); err != nil {
		return nil, &InvalidWorkbookError{Message: "could not iterate sheet " + sheet, Cause: err}
	}

	log.Info("extracted contacts from spreadsheet", zap.Int("contacts", len(contacts)))
	return contacts, nil
}

// contactFromRow maps the three positional cells to a Contact. Email and
// role are mandatory; the name may be blank.
func contactFromRow(cols []string) (types.Contact, bool) {
	email := strings.TrimSpace(cell(cols, 1))
	role := strings.TrimSpace(cell(cols, 2))
	if email == "" || role == "" {
		return types.Contact{}, false
	}
	return types.Contact{
		Name:  strings.TrimSpace(cell(cols, 0)),
		Email: email,
		Role:  role,
	}, true
}

// cell returns the i-th column value, or "" when the row is shorter. Short
// rows happen whenever trailing cells are empty.
func cell(cols []string, i int) string {
	if i >= len(cols) {
		return ""
	}
	return cols[i]
}
