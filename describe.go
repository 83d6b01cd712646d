package xlimport

import (
	"fmt"
	"strings"
)

// Describe reads a workbook and returns a human-readable summary of its
// used region and of the column → field association.
func Describe(path string, opts ...Option) (string, error) {
	allOpts := append([]Option{WithPath(path)}, opts...)
	return NewImporter(allOpts...).Describe()
}

// Describe reads the configured workbook and describes its layout.
func (im *Importer) Describe() (string, error) {
	sheet, err := im.openSheet()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Workbook: %s\n", im.source())
	fmt.Fprintf(&b, "%s used region (%dx%d)\n", sheet.Region, sheet.Region.Width(), sheet.Region.Height())
	fmt.Fprintf(&b, "  Data rows: %d\n", sheet.NumRows())
	b.WriteString("  Columns:\n")

	for pos, h := range sheet.Headers() {
		ref := sheet.HeaderRef(pos)
		target := "<unrecognized>"
		if f, ok := FieldForHeader(h); ok {
			target = f.Name()
		}
		fmt.Fprintf(&b, "    %s %q -> %s\n", colName(ref.Col), h, target)
	}
	return b.String(), nil
}
