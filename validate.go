package xlimport

import (
	"errors"
	"fmt"
)

// Severity indicates the severity of a validation issue.
type Severity int

const (
	SeverityError   Severity = iota // Import will fail
	SeverityWarning                 // Import succeeds but the result may surprise
)

// ValidationIssue represents a single problem found in a workbook.
type ValidationIssue struct {
	Severity Severity
	CellRef  CellRef
	Message  string
}

// String formats the issue as "[ERROR] Sheet1!A2: message" or "[WARN] ...".
func (v ValidationIssue) String() string {
	sev := "ERROR"
	if v.Severity == SeverityWarning {
		sev = "WARN"
	}
	return fmt.Sprintf("[%s] %s: %s", sev, v.CellRef, v.Message)
}

// Validate checks a workbook against the header schema and converts every
// row without keeping the result. A non-nil error means the file could not
// be read at all.
func Validate(path string, opts ...Option) ([]ValidationIssue, error) {
	allOpts := append([]Option{WithPath(path)}, opts...)
	return NewImporter(allOpts...).Validate()
}

// Validate opens the configured workbook and reports every issue instead of
// stopping at the first one. The record list is not touched.
func (im *Importer) Validate() ([]ValidationIssue, error) {
	var issues []ValidationIssue
	if im.opts.selectExpr != "" {
		if _, err := compileSelect(im.opts.selectExpr); err != nil {
			issues = append(issues, ValidationIssue{Severity: SeverityError, Message: err.Error()})
		}
	}

	sheet, err := im.openSheet()
	if err != nil {
		if errors.Is(err, ErrEmptySheet) {
			return append(issues, ValidationIssue{Severity: SeverityWarning, Message: err.Error()}), nil
		}
		return nil, err
	}

	hm, headerIssues := validateHeaders(sheet)
	issues = append(issues, headerIssues...)

	for _, row := range sheet.Rows() {
		if _, err := hm.Map(row); err != nil {
			var rowErr *RowError
			if errors.As(err, &rowErr) {
				issues = append(issues, ValidationIssue{
					Severity: SeverityError,
					CellRef:  rowErr.Ref,
					Message:  rowErr.Error(),
				})
			}
		}
	}
	return issues, nil
}

// validateHeaders reports unknown, duplicate and missing headers and returns
// a HeaderMap of the recognized columns so rows can still be checked.
func validateHeaders(sheet *Sheet) (HeaderMap, []ValidationIssue) {
	var issues []ValidationIssue
	headers := sheet.Headers()
	hm := HeaderMap{width: len(headers)}
	seen := make(map[Field]int)

	for pos, h := range headers {
		ref := sheet.HeaderRef(pos)
		f, ok := FieldForHeader(h)
		if !ok {
			issues = append(issues, ValidationIssue{
				Severity: SeverityError,
				CellRef:  ref,
				Message:  fmt.Sprintf("%v %q", ErrUnrecognizedHeader, h),
			})
			continue
		}
		if prev, dup := seen[f]; dup {
			issues = append(issues, ValidationIssue{
				Severity: SeverityWarning,
				CellRef:  ref,
				Message:  fmt.Sprintf("header %q repeats column %s; the rightmost column wins", h, colName(sheet.HeaderRef(prev).Col)),
			})
		}
		seen[f] = pos
		hm.columns = append(hm.columns, HeaderColumn{Position: pos, Header: h, Field: f})
	}

	for _, h := range hm.missing() {
		issues = append(issues, ValidationIssue{
			Severity: SeverityError,
			CellRef:  sheet.HeaderRef(0),
			Message:  fmt.Sprintf("%v %q", ErrMissingHeader, h),
		})
	}
	return hm, issues
}
