package importer

import "fmt"

// ParseError reports one malformed spreadsheet row. Row is the 1-based
// spreadsheet row number; the header occupies row 1, so the first data row
// is row 2.
type ParseError struct {
	Row    int
	Reason string
}

func (e *ParseError) Error() string {
	return e.Reason
}

func parseErrorf(row int, format string, args ...any) *ParseError {
	return &ParseError{Row: row, Reason: fmt.Sprintf(format, args...)}
}

// DuplicateKeyError reports a natural-key collision detected during
// validate-all-then-commit imports.
type DuplicateKeyError struct {
	Row int
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key: %s", e.Key)
}
