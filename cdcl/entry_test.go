package cdcl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marrowdale/satsmt/cnf"
	"github.com/marrowdale/satsmt/formula"
)

func TestSolveBareLiteralIsSatisfiable(t *testing.T) {
	phi := formula.Var("p")
	result := Solve(phi, formula.NewModel(), nil, SolverConfig{})

	require.Equal(t, StatusSAT, result.Status)
	val, ok := result.Model.Get("p")
	require.True(t, ok)
	assert.True(t, val)
}

func TestSolveDirectContradictionIsUnsatisfiable(t *testing.T) {
	phi := formula.And(formula.Var("p"), formula.Not(formula.Var("p")))
	result := Solve(phi, formula.NewModel(), nil, SolverConfig{})

	assert.Equal(t, StatusUNSAT, result.Status)
	assert.Nil(t, result.Model)
}

func TestSolveDisjunctionProducesAModelThatActuallySatisfiesIt(t *testing.T) {
	phi := formula.Or(formula.Var("p"), formula.Var("q"))
	result := Solve(phi, formula.NewModel(), nil, SolverConfig{})
	require.Equal(t, StatusSAT, result.Status)

	complete := map[string]bool{}
	for _, v := range phi.Vars() {
		if val, ok := result.Model.Get(v); ok {
			complete[v] = val
		} else {
			complete[v] = false
		}
	}
	ok, err := phi.EvaluateSkeleton(complete)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSolveSeedsPartialModelAsLevelZeroAssumptions(t *testing.T) {
	phi := formula.Or(formula.Var("p"), formula.Var("q"))
	partial := formula.NewModel()
	partial.Set("p", false)

	result := Solve(phi, partial, nil, SolverConfig{})
	require.Equal(t, StatusSAT, result.Status)

	p, ok := result.Model.Get("p")
	require.True(t, ok)
	assert.False(t, p)
	q, ok := result.Model.Get("q")
	require.True(t, ok)
	assert.True(t, q)
}

func TestSolveWithExtraClauseNarrowsTheModel(t *testing.T) {
	phi := formula.Or(formula.Var("p"), formula.Var("q"))
	extra := cnf.NewClause(cnf.Neg("p"))

	result := Solve(phi, formula.NewModel(), extra, SolverConfig{})
	require.Equal(t, StatusSAT, result.Status)

	p, ok := result.Model.Get("p")
	require.True(t, ok)
	assert.False(t, p)
	q, ok := result.Model.Get("q")
	require.True(t, ok)
	assert.True(t, q)
}

func TestSolveRespectsMaxDecisionsConfig(t *testing.T) {
	phi := formula.Or(formula.Or(formula.Var("p"), formula.Var("q")), formula.Var("r"))
	result := Solve(phi, formula.NewModel(), nil, SolverConfig{MaxDecisions: 1})

	// Only one decision may be made. BCP asserts the root, DLIS's single
	// decision sets the fresh name for (p | q) true, and (p | q) itself is
	// still open when the cap is reached, so this comes back UNKNOWN
	// rather than deciding again. (MaxDecisions 0 would select the default
	// cap instead.)
	assert.Equal(t, StatusUnknown, result.Status)
}
