// Package summary computes descriptive statistics over imported records.
package summary

import (
	"fmt"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/javajack/xlimport"
)

// FieldSummary holds statistics of one numeric field.
type FieldSummary struct {
	Field  string  `json:"field"`
	Header string  `json:"header"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stdDev"`
	Sum    float64 `json:"sum"`
}

// Summary describes a set of records.
type Summary struct {
	Count  int            `json:"count"`
	From   time.Time      `json:"from"`
	To     time.Time      `json:"to"`
	Fields []FieldSummary `json:"fields"`
}

// Compute summarizes records. An empty input yields a zero Summary.
func Compute(records []xlimport.Record) (Summary, error) {
	s := Summary{Count: len(records)}
	if len(records) == 0 {
		return s, nil
	}

	s.From, s.To = records[0].Date, records[0].Date
	for _, r := range records[1:] {
		if r.Date.Before(s.From) {
			s.From = r.Date
		}
		if r.Date.After(s.To) {
			s.To = r.Date
		}
	}

	for _, f := range xlimport.Fields {
		if !f.IsNumeric() {
			continue
		}
		data := make(stats.Float64Data, 0, len(records))
		for _, r := range records {
			v, _ := r.Float(f)
			data = append(data, v)
		}
		fs, err := describe(data)
		if err != nil {
			return Summary{}, fmt.Errorf("summarize %s: %w", f.Name(), err)
		}
		fs.Field = f.Name()
		fs.Header = f.Header()
		s.Fields = append(s.Fields, fs)
	}
	return s, nil
}

func describe(data stats.Float64Data) (FieldSummary, error) {
	var (
		fs  FieldSummary
		err error
	)
	if fs.Min, err = data.Min(); err != nil {
		return fs, err
	}
	if fs.Max, err = data.Max(); err != nil {
		return fs, err
	}
	if fs.Mean, err = data.Mean(); err != nil {
		return fs, err
	}
	if fs.Median, err = data.Median(); err != nil {
		return fs, err
	}
	if fs.StdDev, err = data.StandardDeviation(); err != nil {
		return fs, err
	}
	if fs.Sum, err = data.Sum(); err != nil {
		return fs, err
	}
	return fs, nil
}
