package xlimport

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Importer runs the import action: clear the record list, read the first
// sheet of the configured workbook, map every row and fill the list.
type Importer struct {
	opts    *Options
	records *RecordList
	skipped []*RowError
}

// NewImporter creates an Importer with the given options.
func NewImporter(opts ...Option) *Importer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	list := NewRecordList()
	for _, l := range o.listeners {
		list.Subscribe(l)
	}
	return &Importer{opts: o, records: list}
}

// Records returns the list filled by Import.
func (im *Importer) Records() *RecordList { return im.records }

// Skipped returns the rows left out by the last Import under SkipMalformedRow.
func (im *Importer) Skipped() []*RowError { return im.skipped }

// Import replaces the record list with the contents of the workbook. On
// any error the list is left empty; ErrEmptySheet is returned for a sheet
// without data rows and is meant to be shown as a warning.
func (im *Importer) Import() error {
	log := im.opts.logger
	start := time.Now()

	im.records.Clear()
	im.skipped = nil

	records, skipped, err := im.load()
	if err != nil {
		if errors.Is(err, ErrEmptySheet) {
			log.Warn("nothing to import", slog.String("source", im.source()), slog.Any("error", err))
		} else {
			log.Error("import failed", slog.String("source", im.source()), slog.Any("error", err))
		}
		return err
	}

	for _, rowErr := range skipped {
		log.Warn("skipped malformed row", slog.Int("row", rowErr.Row), slog.String("cell", rowErr.Ref.String()), slog.String("reason", rowErr.Reason))
	}
	im.skipped = skipped
	im.records.Append(records...)

	log.Info("import finished",
		slog.String("source", im.source()),
		slog.Int("records", len(records)),
		slog.Int("skipped", len(skipped)),
		slog.Duration("took", time.Since(start)))
	return nil
}

// load reads and maps the workbook without touching the record list.
func (im *Importer) load() ([]Record, []*RowError, error) {
	var filter *recordFilter
	if im.opts.selectExpr != "" {
		f, err := compileSelect(im.opts.selectExpr)
		if err != nil {
			return nil, nil, err
		}
		filter = f
	}

	sheet, err := im.openSheet()
	if err != nil {
		return nil, nil, err
	}
	im.opts.logger.Debug("sheet read",
		slog.String("region", sheet.Region.String()),
		slog.Int("rows", sheet.NumRows()))

	records, skipped, err := MapRecords(sheet, im.opts.rowPolicy)
	if err != nil {
		return nil, nil, err
	}
	if filter != nil {
		if records, err = filter.apply(records); err != nil {
			return nil, nil, err
		}
	}
	return records, skipped, nil
}

// openSheet reads from the configured reader or path.
func (im *Importer) openSheet() (*Sheet, error) {
	if im.opts.reader != nil {
		return ReadSheetFrom(im.opts.reader, im.opts.format)
	}
	if im.opts.path != "" {
		return ReadSheet(im.opts.path)
	}
	return nil, fmt.Errorf("no workbook specified: use WithPath or WithReader")
}

func (im *Importer) source() string {
	if im.opts.reader != nil {
		return "<reader>"
	}
	return im.opts.path
}

// Import reads the workbook at path and returns its records.
func Import(path string, opts ...Option) ([]Record, error) {
	allOpts := append([]Option{WithPath(path)}, opts...)
	im := NewImporter(allOpts...)
	if err := im.Import(); err != nil {
		return nil, err
	}
	return im.Records().Records(), nil
}
