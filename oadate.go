package xlimport

import (
	"fmt"
	"math"
	"time"
)

const (
	msPerDay = 24 * 60 * 60 * 1000

	// Exclusive bounds of an OLE Automation date: 0100-01-01 and 10000-01-01.
	oaDateMin = -657435.0
	oaDateMax = 2958466.0
)

// oaEpoch is day 0 of the spreadsheet date system.
var oaEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// FromOADate converts a spreadsheet date serial into a date-time.
//
// The integer part counts days from 1899-12-30, the fractional part is the
// time of day. For negative serials the fraction is still a positive time of
// day, so -1.25 is 1899-12-29 06:00. The result is rounded to the
// millisecond and carries no zone information (UTC).
func FromOADate(serial float64) (time.Time, error) {
	if math.IsNaN(serial) || !(serial > oaDateMin) || !(serial < oaDateMax) {
		return time.Time{}, fmt.Errorf("date serial %v out of range", serial)
	}
	half := 0.5
	if serial < 0 {
		half = -0.5
	}
	ms := int64(serial*msPerDay + half)
	if ms < 0 {
		ms -= (ms % msPerDay) * 2
	}
	days := ms / msPerDay
	rem := ms % msPerDay
	if rem < 0 {
		days--
		rem += msPerDay
	}
	return oaEpoch.AddDate(0, 0, int(days)).Add(time.Duration(rem) * time.Millisecond), nil
}

// ToOADate converts a date-time back into a spreadsheet date serial.
func ToOADate(t time.Time) float64 {
	t = t.UTC()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	days := float64((midnight.Unix() - oaEpoch.Unix()) / (24 * 60 * 60))
	frac := float64(t.Sub(midnight).Milliseconds()) / msPerDay
	if days < 0 {
		return days - frac
	}
	return days + frac
}

// dateLayouts are accepted for ISO typed date cells and text sources.
var dateLayouts = [...]string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseDateText(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
