package xlimport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// testdataDir returns the path to testdata directory, creating it if needed.
func testdataDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join("testdata")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	return dir
}

// standardHeaders is the header row in the order the inverter exports it.
var standardHeaders = []any{"Datum", "Energia", "AC výkon", "napetie siete", "AC prud", "DC napetie"}

// createWorkbook writes rows to Sheet1 starting at topLeft and returns the
// file path. nil values leave the cell empty.
func createWorkbook(t *testing.T, name, topLeft string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		col, r, err := excelize.CellNameToCoordinates(topLeft)
		require.NoError(t, err)
		for j, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+j, r+i)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}

	path := filepath.Join(testdataDir(t), name)
	require.NoError(t, f.SaveAs(path))
	t.Cleanup(func() { os.Remove(path) })
	return path
}

// createInverterLog creates a workbook with the standard headers and three rows.
//
//	A1: Datum  B1: Energia  C1: AC výkon  D1: napetie siete  E1: AC prud  F1: DC napetie
//	44562.5    1.25         812.4         231.7              3.51         356.2
//	44562.75   2.5          640           229.9              2.78         341
//	44563      0            0             230.2              0            0
func createInverterLog(t *testing.T, name string) string {
	t.Helper()
	return createWorkbook(t, name, "A1", [][]any{
		standardHeaders,
		{44562.5, 1.25, 812.4, 231.7, 3.51, 356.2},
		{44562.75, 2.5, 640.0, 229.9, 2.78, 341.0},
		{44563.0, 0.0, 0.0, 230.2, 0.0, 0.0},
	})
}

// writeCSV writes content to a csv file in testdata.
func writeCSV(t *testing.T, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(testdataDir(t), name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	t.Cleanup(func() { os.Remove(path) })
	return path
}

// recordingListener captures list notifications as a readable trace.
type recordingListener struct {
	events []string
	added  []Record
}

func (l *recordingListener) RecordsCleared() {
	l.events = append(l.events, "cleared")
}

func (l *recordingListener) RecordAdded(index int, r Record) {
	l.events = append(l.events, "added")
	l.added = append(l.added, r)
}
