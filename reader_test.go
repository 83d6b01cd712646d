package xlimport

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadSheet_XLSX(t *testing.T) {
	path := createInverterLog(t, "reader_basic.xlsx")

	sheet, err := ReadSheet(path)
	require.NoError(t, err)

	assert.Equal(t, "Sheet1", sheet.Name)
	assert.Equal(t, []string{"Datum", "Energia", "AC výkon", "napetie siete", "AC prud", "DC napetie"}, sheet.Headers())
	assert.Equal(t, 3, sheet.NumRows())
	assert.Equal(t, "Sheet1!A1:F4", sheet.Region.String())

	var rows [][]Cell
	for _, row := range sheet.Rows() {
		rows = append(rows, row)
	}
	require.Len(t, rows, 3)
	require.Len(t, rows[0], 6)
	assert.Equal(t, CellNumber, rows[0][0].Type)
	assert.Equal(t, 44562.5, rows[0][0].Value)
	assert.Equal(t, 812.4, rows[0][2].Value)
	assert.Equal(t, "Sheet1!C2", rows[0][2].Ref.String())
}

func TestReadSheet_UsedRegionSkipsLeadingEmptyRowsAndColumns(t *testing.T) {
	path := createWorkbook(t, "reader_offset.xlsx", "C4", [][]any{
		{"Energia", "AC prud"},
		{1.5, 2.5},
		{3.5, nil},
	})

	sheet, err := ReadSheet(path)
	require.NoError(t, err)

	assert.Equal(t, "Sheet1!C4:D6", sheet.Region.String())
	assert.Equal(t, 2, sheet.Region.Width())
	assert.Equal(t, 3, sheet.Region.Height())
	assert.Equal(t, []string{"Energia", "AC prud"}, sheet.Headers())
	assert.Equal(t, "Sheet1!C4", sheet.HeaderRef(0).String())

	var last []Cell
	for i, row := range sheet.Rows() {
		require.Len(t, row, 2, "row %d must be aligned with headers", i)
		last = row
	}
	assert.Equal(t, CellBlank, last[1].Type)
	assert.Equal(t, "Sheet1!D6", last[1].Ref.String())
}

func TestReadSheet_CellTypes(t *testing.T) {
	path := createWorkbook(t, "reader_types.xlsx", "A1", [][]any{
		{"Energia", "AC prud", "DC napetie"},
		{"n/a", true, 12},
	})

	sheet, err := ReadSheet(path)
	require.NoError(t, err)

	for _, row := range sheet.Rows() {
		assert.Equal(t, CellString, row[0].Type)
		assert.Equal(t, "n/a", row[0].Value)
		assert.Equal(t, CellBoolean, row[1].Type)
		assert.Equal(t, true, row[1].Value)
		assert.Equal(t, CellNumber, row[2].Type)
		assert.Equal(t, 12.0, row[2].Value)
	}
}

func TestReadSheet_FileNotFound(t *testing.T) {
	_, err := ReadSheet(filepath.Join("testdata", "does-not-exist.xlsx"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestReadSheet_UnsupportedFormat(t *testing.T) {
	_, err := ReadSheet("inverter.ods")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestReadSheet_CorruptFile(t *testing.T) {
	path := filepath.Join(testdataDir(t), "reader_corrupt.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip archive"), 0o644))
	t.Cleanup(func() { os.Remove(path) })

	_, err := ReadSheet(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)
	assert.NotErrorIs(t, err, ErrFileNotFound)
}

func TestReadSheet_EmptySheet(t *testing.T) {
	t.Run("no cells", func(t *testing.T) {
		path := createWorkbook(t, "reader_empty.xlsx", "A1", nil)
		_, err := ReadSheet(path)
		assert.ErrorIs(t, err, ErrEmptySheet)
	})
	t.Run("header only", func(t *testing.T) {
		path := createWorkbook(t, "reader_header_only.xlsx", "A1", [][]any{standardHeaders})
		_, err := ReadSheet(path)
		assert.ErrorIs(t, err, ErrEmptySheet)
	})
}

func TestReadSheet_FirstSheetOnly(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "Energia")
	f.SetCellValue("Sheet1", "A2", 7.0)
	_, err := f.NewSheet("Other")
	require.NoError(t, err)
	f.SetCellValue("Other", "A1", "ignored")

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	sheet, err := ReadSheetFrom(&buf, FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "Sheet1", sheet.Name)
	assert.Equal(t, []string{"Energia"}, sheet.Headers())
}

func TestReadSheet_CSV(t *testing.T) {
	path := writeCSV(t, "reader_basic.csv",
		"Datum,Energia,AC výkon,napetie siete,AC prud,DC napetie",
		"44562.5,1.25,812.4,231.7,3.51,356.2",
		"2022-01-01T18:00:00,2.5,640,229.9,2.78,341",
	)

	sheet, err := ReadSheet(path)
	require.NoError(t, err)
	assert.Equal(t, "reader_basic", sheet.Name)
	assert.Equal(t, 2, sheet.NumRows())

	var rows [][]Cell
	for _, row := range sheet.Rows() {
		rows = append(rows, row)
	}
	assert.Equal(t, CellNumber, rows[0][0].Type)
	assert.Equal(t, CellDate, rows[1][0].Type)
	assert.Equal(t, 341.0, rows[1][5].Value)
}

func TestReadSheetFrom_CSVReader(t *testing.T) {
	r := strings.NewReader("Energia\n1.5\n")
	sheet, err := ReadSheetFrom(r, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "Sheet1", sheet.Name)
	assert.Equal(t, 1, sheet.NumRows())
}

func TestReadSheetFrom_CSVEncodings(t *testing.T) {
	t.Run("utf-8 with byte order mark", func(t *testing.T) {
		r := strings.NewReader("\xEF\xBB\xBFDatum,AC výkon\n44562,1\n")
		sheet, err := ReadSheetFrom(r, FormatCSV)
		require.NoError(t, err)
		assert.Equal(t, []string{"Datum", "AC výkon"}, sheet.Headers())
	})

	t.Run("windows-1250", func(t *testing.T) {
		r := strings.NewReader("Datum,AC v\xFDkon\n44562,1\n")
		sheet, err := ReadSheetFrom(r, FormatCSV)
		require.NoError(t, err)
		assert.Equal(t, []string{"Datum", "AC výkon"}, sheet.Headers())
	})
}

// inverter_log.xls is a BIFF8 workbook written by testdata/mkxls.py. Its
// Datum cells carry date number formats and the quantities a user "0.00"
// format, stored as a mix of NUMBER, RK and MULRK records.
func TestReadSheet_XLS(t *testing.T) {
	sheet, err := ReadSheet(filepath.Join("testdata", "inverter_log.xls"))
	require.NoError(t, err)

	assert.Equal(t, "Log", sheet.Name)
	assert.Equal(t, []string{"Datum", "Energia", "AC výkon", "napetie siete", "AC prud", "DC napetie"}, sheet.Headers())
	assert.Equal(t, "Log!A1:F3", sheet.Region.String())

	var rows [][]Cell
	for _, row := range sheet.Rows() {
		rows = append(rows, row)
	}
	require.Len(t, rows, 2)
	assert.Equal(t, NewCell(NewCellRef("Log", 1, 0), 44562.5, CellNumber), rows[0][0])
	assert.Equal(t, NewCell(NewCellRef("Log", 2, 0), 44563.0, CellNumber), rows[1][0])
	assert.Equal(t, NewCell(NewCellRef("Log", 1, 1), 1.25, CellNumber), rows[0][1])
	assert.Equal(t, NewCell(NewCellRef("Log", 1, 2), 812.4, CellNumber), rows[0][2])
	assert.Equal(t, NewCell(NewCellRef("Log", 2, 3), 229.9, CellNumber), rows[1][3])
	assert.Equal(t, NewCell(NewCellRef("Log", 2, 5), 341.0, CellNumber), rows[1][5])
}

func TestReadSheetFrom_XLS(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "inverter_log.xls"))
	require.NoError(t, err)

	sheet, err := ReadSheetFrom(bytes.NewReader(data), FormatXLS)
	require.NoError(t, err)
	assert.Equal(t, "Log", sheet.Name)
	assert.Equal(t, 2, sheet.NumRows())
}

func TestReadSheet_CorruptXLS(t *testing.T) {
	path := filepath.Join(testdataDir(t), "reader_corrupt.xls")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("not an ole2 container "), 40), 0o644))
	t.Cleanup(func() { os.Remove(path) })

	_, err := ReadSheet(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"a.xlsx":         FormatXLSX,
		"A.XLSX":         FormatXLSX,
		"a.xlsm":         FormatXLSX,
		"legacy.xls":     FormatXLS,
		"export.csv":     FormatCSV,
		"dir/export.txt": FormatCSV,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := FormatFromPath("noext")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestTextCell(t *testing.T) {
	ref := NewCellRef("Sheet1", 0, 0)
	assert.Equal(t, CellBlank, textCell(ref, "").Type)

	num := textCell(ref, " 230.5 ")
	assert.Equal(t, CellNumber, num.Type)
	assert.Equal(t, 230.5, num.Value)
	assert.Equal(t, " 230.5 ", num.Text())

	date := textCell(ref, "2022-01-01 12:00:00")
	assert.Equal(t, CellDate, date.Type)
	assert.Equal(t, "2022-01-01 12:00:00", date.Text())

	str := textCell(ref, "AC prud")
	assert.Equal(t, CellString, str.Type)
	assert.Equal(t, "AC prud", str.Value)

	for _, raw := range []string{"1e3", "inf", "NaN", "0x10", "007"} {
		assert.Equal(t, raw, textCell(ref, raw).Text(), raw)
	}
}

func TestReadSheet_CSVNumericLookingHeaderKeepsText(t *testing.T) {
	path := writeCSV(t, "reader_numeric_header.csv",
		"Datum,Energia,1e3,inf",
		"44562.5,1.25,1,2",
	)

	sheet, err := ReadSheet(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Datum", "Energia", "1e3", "inf"}, sheet.Headers())

	_, err = Import(path, WithLogger(quietLogger()))
	var herr *HeaderError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, "1e3", herr.Header)
	assert.Equal(t, "reader_numeric_header!C1", herr.Ref.String())
}
