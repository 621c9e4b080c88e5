package cdcl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marrowdale/satsmt/cnf"
	"github.com/marrowdale/satsmt/formula"
)

func TestDLISPrefersHighestScoringLiteral(t *testing.T) {
	model := formula.NewModel()
	store := cnf.NewFormula(nil)
	store.AddClause(cnf.NewClause(cnf.Pos("p"), cnf.Pos("r")), model)
	store.AddClause(cnf.NewClause(cnf.Pos("p"), cnf.Pos("s")), model)
	store.AddClause(cnf.NewClause(cnf.Pos("q"), cnf.Pos("s")), model)

	// p and s both satisfy two clauses if asserted true; p wins the tie
	// by sorting first alphabetically among the candidates DLIS scans.
	v, val, ok := NewDLIS().Choose(store, model)
	require.True(t, ok)
	assert.Equal(t, "p", v)
	assert.True(t, val)
}

func TestDLISDisqualifiesLastLiteralOfAClauseGoingTheWrongWay(t *testing.T) {
	model := formula.NewModel()
	model.Set("a", false)
	store := cnf.NewFormula(nil)
	store.AddClause(cnf.NewClause(cnf.Pos("a"), cnf.Pos("b")), model)

	// b is the clause's only unassigned variable; b=false would drive the
	// clause UNSAT (a is already false), so that candidate is disqualified
	// and b=true (which satisfies it) must be chosen instead.
	v, val, ok := NewDLIS().Choose(store, model)
	require.True(t, ok)
	assert.Equal(t, "b", v)
	assert.True(t, val)
}

func TestDLISTieBreaksByVariableNameThenPolarity(t *testing.T) {
	model := formula.NewModel()
	store := cnf.NewFormula(nil)
	// a=true satisfies the first clause, a=false satisfies the second:
	// both polarities of a score 1, a tie DLIS must break toward false.
	store.AddClause(cnf.NewClause(cnf.Pos("a"), cnf.Pos("p")), model)
	store.AddClause(cnf.NewClause(cnf.Neg("a"), cnf.Pos("q")), model)

	v, val, ok := NewDLIS().Choose(store, model)
	require.True(t, ok)
	assert.Equal(t, "a", v)
	assert.False(t, val)
}

func TestDLISReturnsNotOKWhenEverythingAssigned(t *testing.T) {
	model := formula.NewModel()
	model.Set("p", true)
	store := cnf.NewFormula(nil)
	store.AddClause(cnf.NewClause(cnf.Pos("p")), model)

	_, _, ok := NewDLIS().Choose(store, model)
	assert.False(t, ok)
}
