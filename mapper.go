package xlimport

import (
	"fmt"
	"math"
	"time"
)

// HeaderColumn associates one sheet column with a Record field.
type HeaderColumn struct {
	Position int // 0-based position within the header row
	Header   string
	Field    Field
}

// HeaderMap is the position→field association built from a header row.
// It is rebuilt for every import.
type HeaderMap struct {
	width   int
	columns []HeaderColumn
}

// NewHeaderMap builds a HeaderMap from headers in order. The first header
// that is not one of the six recognized strings stops the build, and so
// does a header row that leaves any Record field without a column.
func NewHeaderMap(headers []string) (HeaderMap, error) {
	return buildHeaderMap(headers, func(pos int) CellRef { return NewCellRef("", 0, pos) })
}

func buildHeaderMap(headers []string, refAt func(pos int) CellRef) (HeaderMap, error) {
	hm := HeaderMap{width: len(headers), columns: make([]HeaderColumn, 0, len(headers))}
	for pos, h := range headers {
		f, ok := FieldForHeader(h)
		if !ok {
			return HeaderMap{}, &HeaderError{Ref: refAt(pos), Header: h}
		}
		hm.columns = append(hm.columns, HeaderColumn{Position: pos, Header: h, Field: f})
	}
	if missing := hm.missing(); len(missing) > 0 {
		return HeaderMap{}, &MissingHeaderError{Ref: refAt(0), Headers: missing}
	}
	return hm, nil
}

// missing returns the headers of the fields no column maps to.
func (hm HeaderMap) missing() []string {
	var mapped [len(Fields)]bool
	for _, col := range hm.columns {
		mapped[col.Field] = true
	}
	var out []string
	for _, f := range Fields {
		if !mapped[f] {
			out = append(out, f.Header())
		}
	}
	return out
}

// Columns returns the mapped columns in header order.
func (hm HeaderMap) Columns() []HeaderColumn {
	out := make([]HeaderColumn, len(hm.columns))
	copy(out, hm.columns)
	return out
}

// Width is the number of header cells the map was built from.
func (hm HeaderMap) Width() int { return hm.width }

// Map converts one data row into a Record. When a field appears in more
// than one column the rightmost column wins.
func (hm HeaderMap) Map(row []Cell) (Record, error) {
	var rec Record
	if len(row) < hm.width {
		rowErr := &RowError{Reason: fmt.Sprintf("row has %d cells, header has %d", len(row), hm.width)}
		if len(row) > 0 {
			last := row[len(row)-1].Ref
			rowErr.Row = last.Row + 1
			rowErr.Ref = NewCellRef(last.Sheet, last.Row, last.Col+1)
		}
		return Record{}, rowErr
	}
	for _, col := range hm.columns {
		cell := row[col.Position]
		if err := assign(&rec, col.Field, cell); err != nil {
			return Record{}, &RowError{
				Row:    cell.Ref.Row + 1,
				Ref:    cell.Ref,
				Header: col.Header,
				Reason: err.Error(),
			}
		}
	}
	return rec, nil
}

// assign converts cell into the type of field f and stores it in rec.
func assign(rec *Record, f Field, cell Cell) error {
	if cell.IsBlank() {
		return fmt.Errorf("missing value")
	}
	if f == FieldDate {
		t, err := cellDate(cell)
		if err != nil {
			return err
		}
		rec.Date = t
		return nil
	}
	v, err := cellNumber(cell)
	if err != nil {
		return err
	}
	rec.setFloat(f, v)
	return nil
}

func cellNumber(cell Cell) (float64, error) {
	v, ok := cell.Value.(float64)
	if cell.Type != CellNumber || !ok {
		return 0, fmt.Errorf("expected number, got %s %q", cell.Type, cell.Text())
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("expected finite number, got %v", v)
	}
	return v, nil
}

func cellDate(cell Cell) (t time.Time, err error) {
	switch cell.Type {
	case CellNumber:
		v, _ := cell.Value.(float64)
		return FromOADate(v)
	case CellDate:
		s, _ := cell.Value.(string)
		return parseDateText(s)
	}
	return t, fmt.Errorf("expected date serial, got %s %q", cell.Type, cell.Text())
}

// MapRecords maps every data row of sheet. Under AbortOnMalformedRow the
// first bad row fails the call; under SkipMalformedRow bad rows are left
// out and returned alongside the records. Unrecognized or missing headers
// always fail.
func MapRecords(sheet *Sheet, policy RowPolicy) ([]Record, []*RowError, error) {
	hm, err := buildHeaderMap(sheet.Headers(), sheet.HeaderRef)
	if err != nil {
		return nil, nil, err
	}

	records := make([]Record, 0, sheet.NumRows())
	var skipped []*RowError
	for _, row := range sheet.Rows() {
		rec, err := hm.Map(row)
		if err != nil {
			rowErr := err.(*RowError)
			if policy != SkipMalformedRow {
				return nil, nil, rowErr
			}
			skipped = append(skipped, rowErr)
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}
