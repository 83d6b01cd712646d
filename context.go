package xlimport

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// recordEnv exposes a record to select expressions under the field names.
func recordEnv(r Record) map[string]any {
	return map[string]any{
		FieldDate.Name():        r.Date,
		FieldEnergy.Name():      r.Energy,
		FieldACPower.Name():     r.ACPower,
		FieldGridVoltage.Name(): r.GridVoltage,
		FieldACCurrent.Name():   r.ACCurrent,
		FieldDCVoltage.Name():   r.DCVoltage,
	}
}

// recordFilter is a compiled select expression.
type recordFilter struct {
	expression string
	program    *vm.Program
}

// compileSelect compiles a boolean select expression against the record
// environment. Unknown identifiers are compile errors.
func compileSelect(expression string) (*recordFilter, error) {
	program, err := expr.Compile(expression, expr.Env(recordEnv(Record{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile select %q: %w", expression, err)
	}
	return &recordFilter{expression: expression, program: program}, nil
}

// Keep evaluates the expression for r.
func (f *recordFilter) Keep(r Record) (bool, error) {
	out, err := expr.Run(f.program, recordEnv(r))
	if err != nil {
		return false, fmt.Errorf("evaluate select %q: %w", f.expression, err)
	}
	keep, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("select %q evaluated to %T, expected bool", f.expression, out)
	}
	return keep, nil
}

// apply returns the records that satisfy the filter, preserving order.
func (f *recordFilter) apply(records []Record) ([]Record, error) {
	kept := make([]Record, 0, len(records))
	for _, r := range records {
		ok, err := f.Keep(r)
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, r)
		}
	}
	return kept, nil
}
