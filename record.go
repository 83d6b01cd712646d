package xlimport

import "time"

// Field identifies one column of a Record.
type Field int

const (
	FieldDate Field = iota
	FieldEnergy
	FieldACPower
	FieldGridVoltage
	FieldACCurrent
	FieldDCVoltage
)

// Fields lists every Record field in display order.
var Fields = [...]Field{
	FieldDate,
	FieldEnergy,
	FieldACPower,
	FieldGridVoltage,
	FieldACCurrent,
	FieldDCVoltage,
}

// headerFields is the schema contract: the exact header strings a sheet
// must use. Matching is byte-exact, no case folding or trimming.
var headerFields = map[string]Field{
	"Datum":         FieldDate,
	"Energia":       FieldEnergy,
	"AC výkon":      FieldACPower,
	"napetie siete": FieldGridVoltage,
	"AC prud":       FieldACCurrent,
	"DC napetie":    FieldDCVoltage,
}

var fieldNames = [...]string{
	FieldDate:        "date",
	FieldEnergy:      "energy",
	FieldACPower:     "acPower",
	FieldGridVoltage: "gridVoltage",
	FieldACCurrent:   "acCurrent",
	FieldDCVoltage:   "dcVoltage",
}

var fieldHeaders = [...]string{
	FieldDate:        "Datum",
	FieldEnergy:      "Energia",
	FieldACPower:     "AC výkon",
	FieldGridVoltage: "napetie siete",
	FieldACCurrent:   "AC prud",
	FieldDCVoltage:   "DC napetie",
}

// FieldForHeader looks up the field a header string maps to.
func FieldForHeader(header string) (Field, bool) {
	f, ok := headerFields[header]
	return f, ok
}

// Name returns the field identifier used in JSON and select expressions.
func (f Field) Name() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "unknown"
	}
	return fieldNames[f]
}

// Header returns the recognized sheet header for the field.
func (f Field) Header() string {
	if f < 0 || int(f) >= len(fieldHeaders) {
		return ""
	}
	return fieldHeaders[f]
}

// String returns the field name.
func (f Field) String() string { return f.Name() }

// IsNumeric reports whether the field holds a float64 quantity.
func (f Field) IsNumeric() bool { return f != FieldDate }

// Record is one row of the inverter log.
type Record struct {
	Date        time.Time `json:"date"`
	Energy      float64   `json:"energy"`
	ACPower     float64   `json:"acPower"`
	GridVoltage float64   `json:"gridVoltage"`
	ACCurrent   float64   `json:"acCurrent"`
	DCVoltage   float64   `json:"dcVoltage"`
}

// Float returns the value of a numeric field. ok is false for FieldDate.
func (r Record) Float(f Field) (v float64, ok bool) {
	switch f {
	case FieldEnergy:
		return r.Energy, true
	case FieldACPower:
		return r.ACPower, true
	case FieldGridVoltage:
		return r.GridVoltage, true
	case FieldACCurrent:
		return r.ACCurrent, true
	case FieldDCVoltage:
		return r.DCVoltage, true
	}
	return 0, false
}

// setFloat stores a numeric field. Unknown or non-numeric fields are ignored.
func (r *Record) setFloat(f Field, v float64) {
	switch f {
	case FieldEnergy:
		r.Energy = v
	case FieldACPower:
		r.ACPower = v
	case FieldGridVoltage:
		r.GridVoltage = v
	case FieldACCurrent:
		r.ACCurrent = v
	case FieldDCVoltage:
		r.DCVoltage = v
	}
}
