package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/javajack/xlimport"
	"github.com/javajack/xlimport/internal/summary"
)

const dateLayout = "2006-01-02 15:04:05"

// renderTable prints records as a grid with the sheet headers as column
// titles. Energia keeps every digit, the electrical quantities use two
// decimals.
func renderTable(w io.Writer, records []xlimport.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	titles := make([]string, len(xlimport.Fields))
	for i, f := range xlimport.Fields {
		titles[i] = f.Header()
	}
	fmt.Fprintln(tw, strings.Join(titles, "\t")+"\t")

	for _, r := range records {
		cols := []string{r.Date.Format(dateLayout)}
		for _, f := range xlimport.Fields[1:] {
			v, _ := r.Float(f)
			if f == xlimport.FieldEnergy {
				cols = append(cols, strconv.FormatFloat(v, 'f', -1, 64))
				continue
			}
			cols = append(cols, fmt.Sprintf("%.2f", v))
		}
		fmt.Fprintln(tw, strings.Join(cols, "\t")+"\t")
	}
	return tw.Flush()
}

func renderSummary(w io.Writer, s summary.Summary) error {
	fmt.Fprintf(w, "Records: %d\n", s.Count)
	if s.Count == 0 {
		return nil
	}
	fmt.Fprintf(w, "Period:  %s .. %s\n", s.From.Format(dateLayout), s.To.Format(dateLayout))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "\tmin\tmax\tmean\tmedian\tstddev\tsum\t")
	for _, f := range s.Fields {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t\n", f.Header, f.Min, f.Max, f.Mean, f.Median, f.StdDev, f.Sum)
	}
	return tw.Flush()
}
