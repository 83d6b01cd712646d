package xlimport

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// xlsxWorkbook reads Office Open XML workbooks through excelize.
type xlsxWorkbook struct {
	file *excelize.File
}

func openXLSX(path string) (*xlsxWorkbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return &xlsxWorkbook{file: f}, nil
}

func openXLSXReader(r io.Reader) (*xlsxWorkbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	return &xlsxWorkbook{file: f}, nil
}

// FirstSheet reads raw (unformatted) values of the first sheet and types
// every non-empty cell from its stored cell type.
func (wb *xlsxWorkbook) FirstSheet() (string, [][]Cell, error) {
	sheets := wb.file.GetSheetList()
	if len(sheets) == 0 {
		return "", nil, fmt.Errorf("workbook has no sheets")
	}
	sheet := sheets[0]

	rows, err := wb.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return "", nil, fmt.Errorf("read rows from sheet %q: %w", sheet, err)
	}

	grid := make([][]Cell, len(rows))
	for rowIdx, row := range rows {
		cells := make([]Cell, len(row))
		for colIdx, raw := range row {
			ref := NewCellRef(sheet, rowIdx, colIdx)
			if raw == "" {
				cells[colIdx] = NewCell(ref, nil, CellBlank)
				continue
			}
			kind, err := wb.file.GetCellType(sheet, ref.CellName())
			if err != nil {
				return "", nil, fmt.Errorf("cell type of %s: %w", ref, err)
			}
			cells[colIdx] = xlsxCell(ref, raw, kind)
		}
		grid[rowIdx] = cells
	}
	return sheet, grid, nil
}

// xlsxCell converts a raw value using the stored cell type. Numeric cells
// carry no type attribute, so Unset is a number as well.
func xlsxCell(ref CellRef, raw string, kind excelize.CellType) Cell {
	switch kind {
	case excelize.CellTypeBool:
		return NewCell(ref, raw == "1" || raw == "TRUE" || raw == "true", CellBoolean)
	case excelize.CellTypeDate:
		return NewCell(ref, raw, CellDate)
	case excelize.CellTypeError:
		return NewCell(ref, raw, CellError)
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return NewCell(ref, raw, CellString)
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return NewCell(ref, raw, CellString)
		}
		return NewCell(ref, f, CellNumber)
	}
	return NewCell(ref, raw, CellString)
}

// Close closes the underlying excelize file.
func (wb *xlsxWorkbook) Close() error {
	return wb.file.Close()
}
