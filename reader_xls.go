package xlimport

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/shakinm/xlsReader/xls"
	"github.com/shakinm/xlsReader/xls/record"
	"github.com/shakinm/xlsReader/xls/structure"
)

// xlsWorkbook reads legacy BIFF workbooks. Cells keep their stored value;
// number formats are never applied, so a date-formatted serial stays a
// number exactly like in the xlsx reader.
type xlsWorkbook struct {
	book xls.Workbook
}

func openXLS(path string) (*xlsWorkbook, error) {
	wb := &xlsWorkbook{}
	err := guardBIFF(func() (err error) {
		wb.book, err = xls.OpenFile(path)
		return err
	})
	if err != nil {
		return nil, err
	}
	return wb, nil
}

func openXLSReader(r io.Reader) (*xlsWorkbook, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	wb := &xlsWorkbook{}
	err = guardBIFF(func() (err error) {
		wb.book, err = xls.OpenReader(bytes.NewReader(data))
		return err
	})
	if err != nil {
		return nil, err
	}
	return wb, nil
}

// guardBIFF runs fn and converts a parser panic on a damaged stream into
// an error.
func guardBIFF(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("damaged BIFF stream: %v", r)
		}
	}()
	return fn()
}

func (wb *xlsWorkbook) FirstSheet() (string, [][]Cell, error) {
	var (
		name string
		grid [][]Cell
	)
	err := guardBIFF(func() error {
		if wb.book.GetNumberSheets() == 0 {
			return errors.New("workbook has no sheets")
		}
		sheet, err := wb.book.GetSheet(0)
		if err != nil {
			return err
		}
		name = sheet.GetName()
		for rowIdx, row := range sheet.GetRows() {
			cols := row.GetCols()
			cells := make([]Cell, len(cols))
			for colIdx, data := range cols {
				cells[colIdx] = xlsCell(NewCellRef(name, rowIdx, colIdx), data)
			}
			grid = append(grid, cells)
		}
		return nil
	})
	if err != nil {
		return "", nil, err
	}
	return name, grid, nil
}

// xlsCell types a BIFF cell record. NUMBER and RK records carry the raw
// IEEE or RK value; labels stay strings even when they look numeric.
func xlsCell(ref CellRef, data structure.CellData) Cell {
	switch c := data.(type) {
	case *record.Number, *record.Rk:
		return NewCell(ref, c.GetFloat64(), CellNumber)
	case *record.BoolErr:
		switch s := c.GetString(); s {
		case "TRUE":
			return NewCell(ref, true, CellBoolean)
		case "FALSE":
			return NewCell(ref, false, CellBoolean)
		default:
			return NewCell(ref, s, CellError)
		}
	}
	if s := data.GetString(); s != "" {
		return NewCell(ref, s, CellString)
	}
	return NewCell(ref, nil, CellBlank)
}

// Close is a no-op: the file is read completely and closed while opening.
func (wb *xlsWorkbook) Close() error { return nil }
