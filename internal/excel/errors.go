package excel

import "fmt"

// InvalidWorkbookError reports input that could not be opened as a
// spreadsheet at all. It is the only wholesale failure extraction produces;
// individual bad rows are skipped instead.
type InvalidWorkbookError struct {
	Message string
	Cause   error
}

func (e *InvalidWorkbookError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid workbook: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid workbook: %s", e.Message)
}

func (e *InvalidWorkbookError) Unwrap() error {
	return e.Cause
}
