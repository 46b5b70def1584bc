package excel

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// CellName addresses the cell at 0-based row and col, the indices a sheet
// walk over GetRows yields (0,0 → "A1").
func CellName(row, col int) string {
	return IndexToColumn(col) + strconv.Itoa(row+1)
}

// IndexToColumn names the 0-based column n (0→A, 26→AA). It returns "" past
// the last column a sheet can hold.
func IndexToColumn(n int) string {
	name, err := excelize.ColumnNumberToName(n + 1)
	if err != nil {
		return ""
	}
	return name
}

// RangeName builds an A1 range between two 0-based corners, prefixed with the
// quoted sheet name when sheet is not empty.
//
//	"Sheet1", 0,0 → 4,1  →  'Sheet1'!A1:B5
func RangeName(sheet string, fromRow, fromCol, toRow, toCol int) string {
	r := CellName(fromRow, fromCol) + ":" + CellName(toRow, toCol)
	if sheet == "" {
		return r
	}
	return QuoteSheet(sheet) + "!" + r
}

// QuoteSheet wraps a sheet name in single quotes, doubling embedded quotes.
func QuoteSheet(sheet string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
}
