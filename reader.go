package xlimport

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies the container a workbook is stored in.
type Format int

const (
	FormatXLSX Format = iota
	FormatXLS
	FormatCSV
)

// String returns the canonical file extension without the dot.
func (f Format) String() string {
	switch f {
	case FormatXLSX:
		return "xlsx"
	case FormatXLS:
		return "xls"
	case FormatCSV:
		return "csv"
	default:
		return "unknown"
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return FormatXLSX, nil
	case ".xls":
		return FormatXLS, nil
	case ".csv", ".txt":
		return FormatCSV, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// workbook is one opened source file. Implementations read the first sheet
// into a grid of raw cells and release their handle on Close.
type workbook interface {
	FirstSheet() (name string, grid [][]Cell, err error)
	Close() error
}

// ReadSheet opens the workbook at path, reads the used region of its first
// sheet and closes the file before returning.
func ReadSheet(path string) (*Sheet, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("stat %q: %w: %w", path, ErrIO, err)
	}

	var wb workbook
	switch format {
	case FormatXLSX:
		wb, err = openXLSX(path)
	case FormatXLS:
		wb, err = openXLS(path)
	case FormatCSV:
		wb, err = openCSV(path)
	}
	if err != nil {
		return nil, fmt.Errorf("open workbook %q: %w: %w", path, ErrIO, err)
	}
	return readFirstSheet(wb)
}

// ReadSheetFrom reads the first sheet of a workbook streamed from r.
func ReadSheetFrom(r io.Reader, format Format) (*Sheet, error) {
	var (
		wb  workbook
		err error
	)
	switch format {
	case FormatXLSX:
		wb, err = openXLSXReader(r)
	case FormatXLS:
		wb, err = openXLSReader(r)
	case FormatCSV:
		wb, err = openCSVReader(r)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("open workbook reader: %w: %w", ErrIO, err)
	}
	return readFirstSheet(wb)
}

func readFirstSheet(wb workbook) (*Sheet, error) {
	defer wb.Close()

	name, grid, err := wb.FirstSheet()
	if err != nil {
		return nil, fmt.Errorf("read first sheet: %w: %w", ErrIO, err)
	}
	return newSheet(name, grid)
}
