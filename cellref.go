package xlimport

import (
	"strconv"

	"github.com/xuri/excelize/v2"
)

// CellRef locates a cell by 0-based row and column. An empty Sheet renders
// without the "Sheet!" prefix.
type CellRef struct {
	Sheet string
	Row   int
	Col   int
}

func NewCellRef(sheet string, row, col int) CellRef {
	return CellRef{Sheet: sheet, Row: row, Col: col}
}

// String renders the reference the way error messages and issues cite it,
// e.g. "Sheet1!B7".
func (c CellRef) String() string {
	if c.Sheet == "" {
		return c.CellName()
	}
	return c.Sheet + "!" + c.CellName()
}

// CellName is the A1-style name without the sheet.
func (c CellRef) CellName() string {
	return colName(c.Col) + strconv.Itoa(c.Row+1)
}

// colName returns the letters of a 0-based column. Columns past the xlsx
// limit, which only csv input can reach, render as "[n]" with n 1-based.
func colName(col int) string {
	name, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return "[" + strconv.Itoa(col+1) + "]"
	}
	return name
}

// Region is the rectangle a sheet's used cells span, both corners included.
type Region struct {
	First CellRef
	Last  CellRef
}

// String renders "Sheet1!A1:F4".
func (r Region) String() string {
	return r.First.String() + ":" + r.Last.CellName()
}

func (r Region) Width() int  { return r.Last.Col - r.First.Col + 1 }
func (r Region) Height() int { return r.Last.Row - r.First.Row + 1 }
