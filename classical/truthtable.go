// Package classical provides truth-table generation and pretty-printing
// for formula.Formula values, built on formula.Formula.EvaluateSkeleton.
// It is glue around the solver: neither the solver nor the other
// packages' tests use it.
package classical

import (
	"fmt"
	"strings"

	"github.com/marrowdale/satsmt/formula"
)

// TruthTableRow is a single row: a variable assignment and f's value
// under it.
type TruthTableRow struct {
	Inputs map[string]bool
	Output bool
}

// TruthTable is the exhaustive enumeration of a formula's truth value
// over every assignment to its propositional variables.
type TruthTable struct {
	Variables []string
	Rows      []TruthTableRow
}

// Generate builds the truth table of f by evaluating it under all 2^n
// assignments to its n variables. Intended for small formulas checked by
// exhaustive enumeration — it is exponential in variable count by
// construction, not a solving strategy.
func Generate(f formula.Formula) (*TruthTable, error) {
	vars := f.Vars()
	n := len(vars)
	numRows := 1 << n

	table := &TruthTable{Variables: vars, Rows: make([]TruthTableRow, numRows)}
	for i := 0; i < numRows; i++ {
		inputs := make(map[string]bool, n)
		for j, v := range vars {
			inputs[v] = (i>>(n-1-j))&1 == 1
		}
		out, err := f.EvaluateSkeleton(inputs)
		if err != nil {
			return nil, err
		}
		table.Rows[i] = TruthTableRow{Inputs: inputs, Output: out}
	}
	return table, nil
}

// IsTautology reports whether f is true under every assignment to its
// variables.
func (tt *TruthTable) IsTautology() bool {
	for _, r := range tt.Rows {
		if !r.Output {
			return false
		}
	}
	return true
}

// IsContradiction reports whether f is false under every assignment to
// its variables.
func (tt *TruthTable) IsContradiction() bool {
	for _, r := range tt.Rows {
		if r.Output {
			return false
		}
	}
	return true
}

// String renders the table as one padded column per variable, then an
// Output column.
func (tt *TruthTable) String() string {
	var b strings.Builder
	for _, v := range tt.Variables {
		fmt.Fprintf(&b, "%-8s", v)
	}
	b.WriteString("Output\n")
	b.WriteString(strings.Repeat("-", len(tt.Variables)*8+6))
	b.WriteByte('\n')

	for _, row := range tt.Rows {
		for _, v := range tt.Variables {
			if row.Inputs[v] {
				b.WriteString("T       ")
			} else {
				b.WriteString("F       ")
			}
		}
		if row.Output {
			b.WriteByte('T')
		} else {
			b.WriteByte('F')
		}
		b.WriteByte('\n')
	}
	return b.String()
}
