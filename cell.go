package xlimport

import (
	"strconv"
	"strings"
)

// CellType represents the kind of raw value stored in a cell.
type CellType int

const (
	CellBlank CellType = iota
	CellString
	CellNumber
	CellBoolean
	CellDate
	CellError
)

// String returns a human-readable name for the CellType.
func (ct CellType) String() string {
	switch ct {
	case CellBlank:
		return "Blank"
	case CellString:
		return "String"
	case CellNumber:
		return "Number"
	case CellBoolean:
		return "Boolean"
	case CellDate:
		return "Date"
	case CellError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Cell holds the raw, unformatted value of a single cell.
//
// Value is nil for CellBlank, float64 for CellNumber, bool for CellBoolean
// and string for CellString, CellDate (ISO 8601 text) and CellError.
type Cell struct {
	Ref   CellRef
	Type  CellType
	Value any

	raw string // source text of a cell parsed from text, returned by Text
}

// NewCell creates a Cell with a reference, value, and type.
func NewCell(ref CellRef, value any, cellType CellType) Cell {
	return Cell{Ref: ref, Value: value, Type: cellType}
}

// IsBlank reports whether the cell carries no value.
func (c Cell) IsBlank() bool {
	if c.Type == CellBlank || c.Value == nil {
		return true
	}
	s, ok := c.Value.(string)
	return ok && s == ""
}

// Text renders the raw value the way it is compared against header names.
// Cells parsed from text return that text unchanged.
func (c Cell) Text() string {
	if c.raw != "" {
		return c.raw
	}
	switch v := c.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	}
	return ""
}

// textCell classifies a cell read from a format that stores everything as
// text (csv). Numbers and ISO dates are recognized by parsing; the source
// text is kept for Text.
func textCell(ref CellRef, raw string) Cell {
	if raw == "" {
		return NewCell(ref, nil, CellBlank)
	}
	c := NewCell(ref, raw, CellString)
	trimmed := strings.TrimSpace(raw)
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		c = NewCell(ref, f, CellNumber)
	} else if _, err := parseDateText(trimmed); err == nil {
		c = NewCell(ref, trimmed, CellDate)
	}
	c.raw = raw
	return c
}
