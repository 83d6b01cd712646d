package xlimport

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrFileNotFound reports that the source path does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrIO reports that the source exists but could not be opened or read.
	ErrIO = errors.New("read error")
	// ErrUnsupportedFormat reports a file extension no reader handles.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrEmptySheet reports a used region without columns or data rows.
	// Callers usually treat it as a warning.
	ErrEmptySheet = errors.New("empty sheet")
	// ErrUnrecognizedHeader reports a header outside the known schema.
	ErrUnrecognizedHeader = errors.New("unrecognized header")
	// ErrMissingHeader reports that a schema header is absent from the sheet.
	ErrMissingHeader = errors.New("missing header")
	// ErrMalformedRow reports a ragged row or a cell that fails conversion.
	ErrMalformedRow = errors.New("malformed row")
)

// HeaderError names a header cell that does not belong to the schema.
type HeaderError struct {
	Ref    CellRef
	Header string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("%s: %v: %q", e.Ref, ErrUnrecognizedHeader, e.Header)
}

func (e *HeaderError) Unwrap() error { return ErrUnrecognizedHeader }

// MissingHeaderError lists the schema headers a header row lacks, in
// schema order. Ref is the first cell of the header row.
type MissingHeaderError struct {
	Ref     CellRef
	Headers []string
}

func (e *MissingHeaderError) Error() string {
	quoted := make([]string, len(e.Headers))
	for i, h := range e.Headers {
		quoted[i] = strconv.Quote(h)
	}
	return fmt.Sprintf("%s: %v: %s", e.Ref, ErrMissingHeader, strings.Join(quoted, ", "))
}

func (e *MissingHeaderError) Unwrap() error { return ErrMissingHeader }

// RowError describes why one data row could not be mapped.
type RowError struct {
	Row    int     // 1-based sheet row number
	Ref    CellRef // offending cell
	Header string  // header of the offending column
	Reason string
}

func (e *RowError) Error() string {
	if e.Header == "" {
		return fmt.Sprintf("row %d (%s): %v: %s", e.Row, e.Ref, ErrMalformedRow, e.Reason)
	}
	return fmt.Sprintf("row %d (%s, %q): %v: %s", e.Row, e.Ref, e.Header, ErrMalformedRow, e.Reason)
}

func (e *RowError) Unwrap() error { return ErrMalformedRow }
