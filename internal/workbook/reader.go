package workbook

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// FileFormatError reports an unreadable or unsupported workbook file.
// File-level failures abort the whole import with no partial result.
type FileFormatError struct {
	Path   string
	Reason string
}

func (e *FileFormatError) Error() string {
	return fmt.Sprintf("unsupported or unreadable workbook %s: %s", e.Path, e.Reason)
}

// Sheet is the first worksheet of a workbook, fully materialised. Parsing is
// an in-memory pass bounded by workbook size; no streaming.
type Sheet struct {
	Rows [][]Cell
}

// Open reads the first sheet of the workbook at path. The backend is chosen
// by filename extension: .xlsx for the modern format, .xls for the legacy
// binary one. Any other extension fails immediately.
func Open(path string) (*Sheet, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return openXLSX(path)
	case ".xls":
		return openXLS(path)
	default:
		return nil, &FileFormatError{Path: path, Reason: "extension must be .xlsx or .xls"}
	}
}

func openXLSX(path string) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &FileFormatError{Path: path, Reason: err.Error()}
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	grid, err := f.GetRows(sheetName)
	if err != nil {
		return nil, &FileFormatError{Path: path, Reason: err.Error()}
	}

	rows := make([][]Cell, len(grid))
	for r, rawRow := range grid {
		cells := make([]Cell, len(rawRow))
		for c := range rawRow {
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, &FileFormatError{Path: path, Reason: err.Error()}
			}
			cell, err := readXLSXCell(f, sheetName, axis)
			if err != nil {
				return nil, &FileFormatError{Path: path, Reason: err.Error()}
			}
			cells[c] = cell
		}
		rows[r] = cells
	}

	return &Sheet{Rows: rows}, nil
}

func readXLSXCell(f *excelize.File, sheet, axis string) (Cell, error) {
	if formula, err := f.GetCellFormula(sheet, axis); err == nil && formula != "" {
		return Cell{Kind: CellFormula, Raw: formula}, nil
	}

	raw, err := f.GetCellValue(sheet, axis, excelize.Options{RawCellValue: true})
	if err != nil {
		return Cell{}, err
	}
	if strings.TrimSpace(raw) == "" {
		return Cell{Kind: CellBlank}, nil
	}

	cellType, err := f.GetCellType(sheet, axis)
	if err != nil {
		return Cell{}, err
	}

	switch cellType {
	case excelize.CellTypeBool:
		return Cell{Kind: CellBool, Bool: raw == "1" || strings.EqualFold(raw, "true")}, nil
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return Cell{Kind: CellString, Raw: strings.TrimSpace(raw)}, nil
	}

	// Plain numeric cells carry no type attribute in the file, so both
	// CellTypeNumber and CellTypeUnset land here.
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		cell := Cell{Kind: CellNumeric, Number: serial}
		if dateFormatted(f, sheet, axis) {
			if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
				cell.IsDate = true
				cell.Date = t
			}
		}
		return cell, nil
	}

	return Cell{Kind: CellString, Raw: strings.TrimSpace(raw)}, nil
}

// Builtin number formats 14-22 and 45-47 render dates and times.
func dateFormatted(f *excelize.File, sheet, axis string) bool {
	styleID, err := f.GetCellStyle(sheet, axis)
	if err != nil {
		return false
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	if (style.NumFmt >= 14 && style.NumFmt <= 22) || (style.NumFmt >= 45 && style.NumFmt <= 47) {
		return true
	}
	if style.CustomNumFmt != nil {
		fmt := strings.ToLower(*style.CustomNumFmt)
		return strings.Contains(fmt, "yy") || strings.Contains(fmt, "dd")
	}
	return false
}

// The legacy reader exposes formatted strings only, so every non-empty cell
// surfaces as a string cell; date cells arrive pre-formatted and flow
// through the string date patterns.
func openXLS(path string) (*Sheet, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, &FileFormatError{Path: path, Reason: err.Error()}
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, &FileFormatError{Path: path, Reason: "workbook has no sheets"}
	}

	rows := make([][]Cell, 0, int(sheet.MaxRow)+1)
	for r := 0; r <= int(sheet.MaxRow); r++ {
		row := sheet.Row(r)
		if row == nil {
			rows = append(rows, nil)
			continue
		}

		cells := make([]Cell, row.LastCol())
		for c := row.FirstCol(); c < row.LastCol(); c++ {
			text := strings.TrimSpace(row.Col(c))
			if text == "" {
				cells[c] = Cell{Kind: CellBlank}
			} else {
				cells[c] = Cell{Kind: CellString, Raw: text}
			}
		}
		rows = append(rows, cells)
	}

	return &Sheet{Rows: rows}, nil
}
