// Package workbook reads interview spreadsheets and coerces their untyped
// cells into domain values. The modern zip-based format and the legacy
// binary format are both supported; everything else is rejected at open.
package workbook

import (
	"strconv"
	"time"
)

// CellKind tags a cell with the value class it held in the workbook.
type CellKind int

const (
	CellBlank CellKind = iota
	CellString
	CellNumeric
	CellBool
	CellFormula
)

// Cell is one spreadsheet cell. Raw carries the trimmed string form for
// string and formula cells; Number and Date carry the typed value for
// numeric cells.
type Cell struct {
	Kind   CellKind
	Raw    string
	Number float64
	Bool   bool
	IsDate bool
	Date   time.Time
}

// Text coerces the cell to its string form:
//   - date-formatted numeric: the calendar date as yyyy-MM-dd
//   - plain numeric: the stringified integer value, decimals dropped
//   - string: trimmed text
//   - boolean: "true" or "false"
//   - formula: the raw formula text, never evaluated
//   - blank: the empty string (required-ness is the caller's concern)
func (c Cell) Text() string {
	switch c.Kind {
	case CellString, CellFormula:
		return c.Raw
	case CellNumeric:
		if c.IsDate {
			return c.Date.Format("2006-01-02")
		}
		return strconv.FormatInt(int64(c.Number), 10)
	case CellBool:
		if c.Bool {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// IsBlank reports whether the cell coerces to the empty string.
func (c Cell) IsBlank() bool {
	return c.Text() == ""
}

// CellAt returns the cell at index idx, or a blank cell when the row is
// shorter than the positional layout expects.
func CellAt(row []Cell, idx int) Cell {
	if idx < 0 || idx >= len(row) {
		return Cell{Kind: CellBlank}
	}
	return row[idx]
}
