package xlimport

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

const csvSheetName = "Sheet1"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// csvWorkbook holds a delimited text file as a single sheet.
type csvWorkbook struct {
	name    string
	records [][]string
}

func openCSV(path string) (*csvWorkbook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	wb, err := openCSVReader(f)
	if err != nil {
		return nil, err
	}
	wb.name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return wb, nil
}

func openCSVReader(r io.Reader) (*csvWorkbook, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data, err = csvUTF8(data)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return &csvWorkbook{name: csvSheetName, records: records}, nil
}

func (wb *csvWorkbook) FirstSheet() (string, [][]Cell, error) {
	grid := make([][]Cell, len(wb.records))
	for rowIdx, rec := range wb.records {
		cells := make([]Cell, len(rec))
		for colIdx, raw := range rec {
			cells[colIdx] = textCell(NewCellRef(wb.name, rowIdx, colIdx), raw)
		}
		grid[rowIdx] = cells
	}
	return wb.name, grid, nil
}

func (wb *csvWorkbook) Close() error { return nil }

// csvUTF8 strips a UTF-8 byte order mark. Input that is not valid UTF-8 is
// taken to be a Windows-1250 export, the code page of the inverter headers.
func csvUTF8(data []byte) ([]byte, error) {
	if utf8.Valid(data) {
		return bytes.TrimPrefix(data, utf8BOM), nil
	}
	return charmap.Windows1250.NewDecoder().Bytes(data)
}
