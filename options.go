package xlimport

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// RowPolicy decides what happens to a data row that cannot be mapped.
type RowPolicy int

const (
	AbortOnMalformedRow RowPolicy = iota // fail the whole import
	SkipMalformedRow                     // leave the row out and report it
)

// String returns "abort" or "skip".
func (p RowPolicy) String() string {
	if p == SkipMalformedRow {
		return "skip"
	}
	return "abort"
}

// ParseRowPolicy parses "abort" or "skip" (case-insensitive).
func ParseRowPolicy(s string) (RowPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "abort":
		return AbortOnMalformedRow, nil
	case "skip":
		return SkipMalformedRow, nil
	}
	return 0, fmt.Errorf("unknown row policy %q (want abort or skip)", s)
}

// Options holds configuration for the Importer.
type Options struct {
	path       string
	reader     io.Reader
	format     Format
	rowPolicy  RowPolicy
	selectExpr string
	listeners  []RecordListener
	logger     *slog.Logger
}

func defaultOptions() *Options {
	return &Options{
		rowPolicy: AbortOnMalformedRow,
		logger:    slog.Default(),
	}
}

// Option configures the Importer.
type Option func(*Options)

// WithPath sets the workbook file path.
func WithPath(path string) Option {
	return func(o *Options) { o.path = path }
}

// WithReader sets the workbook as an io.Reader. A reader can be consumed
// only once, so later imports read nothing.
func WithReader(r io.Reader, format Format) Option {
	return func(o *Options) {
		o.reader = r
		o.format = format
	}
}

// WithRowPolicy sets how malformed rows are handled (default: abort).
func WithRowPolicy(p RowPolicy) Option {
	return func(o *Options) { o.rowPolicy = p }
}

// WithSelect keeps only records for which the boolean expression holds,
// e.g. `energy > 0 && dcVoltage >= 200`. Field names are the Record JSON names.
func WithSelect(expression string) Option {
	return func(o *Options) { o.selectExpr = expression }
}

// WithListener adds a listener notified when the record list changes.
func WithListener(l RecordListener) Option {
	return func(o *Options) { o.listeners = append(o.listeners, l) }
}

// WithLogger sets the structured logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}
