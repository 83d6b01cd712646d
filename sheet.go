package xlimport

import (
	"fmt"
	"iter"
)

// Sheet is the used region of the first worksheet of a workbook: a header
// row followed by data rows, all cut to the same columns.
type Sheet struct {
	Name   string
	Region Region

	headers []Cell
	rows    [][]Cell
}

// newSheet trims grid to its used region. grid is indexed [row][col] from
// A1; rows may have different lengths.
func newSheet(name string, grid [][]Cell) (*Sheet, error) {
	top, left, bottom, right := -1, -1, -1, -1
	for r, row := range grid {
		for c, cell := range row {
			if cell.IsBlank() {
				continue
			}
			if top < 0 {
				top = r
			}
			bottom = r
			if left < 0 || c < left {
				left = c
			}
			if c > right {
				right = c
			}
		}
	}
	if top < 0 {
		return nil, fmt.Errorf("sheet %q: %w: no cells", name, ErrEmptySheet)
	}

	s := &Sheet{
		Name:   name,
		Region: Region{First: NewCellRef(name, top, left), Last: NewCellRef(name, bottom, right)},
	}
	s.headers = cutRow(name, grid, top, left, right)
	for r := top + 1; r <= bottom; r++ {
		s.rows = append(s.rows, cutRow(name, grid, r, left, right))
	}
	if len(s.rows) == 0 {
		return nil, fmt.Errorf("sheet %q: %w: header row only (%s)", name, ErrEmptySheet, s.Region)
	}
	return s, nil
}

// cutRow copies columns [left, right] of grid row r, padding blanks.
func cutRow(sheet string, grid [][]Cell, r, left, right int) []Cell {
	out := make([]Cell, 0, right-left+1)
	var row []Cell
	if r < len(grid) {
		row = grid[r]
	}
	for c := left; c <= right; c++ {
		if c < len(row) && !row[c].IsBlank() {
			cell := row[c]
			cell.Ref = NewCellRef(sheet, r, c)
			out = append(out, cell)
			continue
		}
		out = append(out, NewCell(NewCellRef(sheet, r, c), nil, CellBlank))
	}
	return out
}

// Headers returns the header strings, one per used column.
func (s *Sheet) Headers() []string {
	out := make([]string, len(s.headers))
	for i, c := range s.headers {
		out[i] = c.Text()
	}
	return out
}

// HeaderRef returns the cell holding the header at column position pos.
func (s *Sheet) HeaderRef(pos int) CellRef {
	return NewCellRef(s.Name, s.Region.First.Row, s.Region.First.Col+pos)
}

// NumRows returns the number of data rows below the header.
func (s *Sheet) NumRows() int { return len(s.rows) }

// Rows yields every data row in sheet order with its 0-based index.
// Cells are aligned with Headers.
func (s *Sheet) Rows() iter.Seq2[int, []Cell] {
	return func(yield func(int, []Cell) bool) {
		for i, row := range s.rows {
			if !yield(i, row) {
				return
			}
		}
	}
}
