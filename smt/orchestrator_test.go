package smt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marrowdale/satsmt/core"
	"github.com/marrowdale/satsmt/formula"
)

func eq(a, b formula.Term) formula.Formula { return formula.Equal(a, b) }

func TestSolveRejectsQuantifiedFormulas(t *testing.T) {
	phi := formula.ForAll("x", formula.Equal(formula.Var("x"), formula.Var("x")))
	_, err := Solve(phi, SolverConfig{})
	require.Error(t, err)
	assert.True(t, core.IsKind(err, core.KindUnsupportedFragment))
}

// ((f(a,c)=b | f(a,g(b))=b) & ~c=g(b)) is T_UF-satisfiable.
func TestSolveScenarioFourIsSatisfiable(t *testing.T) {
	a, b, c := formula.Const("a"), formula.Const("b"), formula.Const("c")
	fac := formula.Func("f", a, c)
	fagb := formula.Func("f", a, formula.Func("g", b))
	gb := formula.Func("g", b)

	phi := formula.And(
		formula.Or(eq(fac, b), eq(fagb, b)),
		formula.Not(eq(c, gb)),
	)

	result, err := Solve(phi, SolverConfig{})
	require.NoError(t, err)
	require.Equal(t, StatusSAT, result.Status)

	ok, err := phi.EvaluateSkeleton(result.Model)
	require.NoError(t, err)
	assert.True(t, ok)
}

// Congruence forces f(a)=a, contradicting the explicit ~f(a)=a — T_UF-UNSAT.
func TestSolveScenarioFiveIsUnsatisfiable(t *testing.T) {
	a := formula.Const("a")
	fa := formula.Func("f", a)
	ffa := formula.Func("f", fa)
	fffa := formula.Func("f", ffa)
	f4a := formula.Func("f", fffa)
	f5a := formula.Func("f", f4a)

	phi := formula.And(
		eq(fffa, a),
		formula.And(eq(f5a, a), formula.Not(eq(fa, a))),
	)

	result, err := Solve(phi, SolverConfig{})
	require.NoError(t, err)
	assert.Equal(t, StatusUNSAT, result.Status)
}

// From g(a)=c, congruence gives f(g(a))=f(c); g(a)=d then conflicts with
// c≠d — T_UF-UNSAT.
func TestSolveScenarioSixIsUnsatisfiable(t *testing.T) {
	a, c, d := formula.Const("a"), formula.Const("c"), formula.Const("d")
	ga := formula.Func("g", a)
	fga := formula.Func("f", ga)
	fc := formula.Func("f", c)

	phi := formula.And(
		eq(ga, c),
		formula.And(
			formula.Or(formula.Not(eq(fga, fc)), eq(ga, d)),
			formula.Not(eq(c, d)),
		),
	)

	result, err := Solve(phi, SolverConfig{})
	require.NoError(t, err)
	assert.Equal(t, StatusUNSAT, result.Status)
}

func TestSolvePurelyPropositionalFormulaSkipsTheory(t *testing.T) {
	phi := formula.Or(formula.Var("p"), formula.Not(formula.Var("p")))
	result, err := Solve(phi, SolverConfig{})
	require.NoError(t, err)
	assert.Equal(t, StatusSAT, result.Status)
}
