package cnf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marrowdale/satsmt/formula"
)

func TestClauseIsTautology(t *testing.T) {
	c := NewClause(Pos("p"), Neg("p"), Pos("q"))
	assert.True(t, c.IsTautology())

	c2 := NewClause(Pos("p"), Pos("q"))
	assert.False(t, c2.IsTautology())
}

func TestClauseRecomputeSatisfied(t *testing.T) {
	c := NewClause(Pos("p"), Neg("q"))
	m := formula.NewModel()
	m.Set("p", true)
	m.Set("q", true)

	c.Recompute(m)
	assert.Equal(t, StatusSAT, c.Status())
	assert.Nil(t, c.Implied())
}

func TestClauseRecomputeUnsat(t *testing.T) {
	c := NewClause(Pos("p"), Neg("q"))
	m := formula.NewModel()
	m.Set("p", false)
	m.Set("q", true)

	c.Recompute(m)
	assert.Equal(t, StatusUNSAT, c.Status())
}

func TestClauseRecomputeUnit(t *testing.T) {
	c := NewClause(Pos("p"), Neg("q"))
	m := formula.NewModel()
	m.Set("q", true)

	c.Recompute(m)
	assert.Equal(t, StatusUnknown, c.Status())
	require.NotNil(t, c.Implied())
	assert.Equal(t, "p", c.Implied().Var)
	assert.True(t, c.Implied().Value)
}

func TestClauseUpdateWithAssignmentShortCircuitsSAT(t *testing.T) {
	c := NewClause(Pos("p"), Neg("q"))
	m := formula.NewModel()
	c.Recompute(m)

	m.Set("p", true)
	c.UpdateWithAssignment("p", true, m)
	assert.Equal(t, StatusSAT, c.Status())
}

func TestClauseUpdateWithAssignmentIgnoredOnceResolved(t *testing.T) {
	c := NewClause(Pos("p"))
	m := formula.NewModel()
	m.Set("p", true)
	c.Recompute(m)
	require.Equal(t, StatusSAT, c.Status())

	// further calls must not disturb a resolved clause.
	c.UpdateWithAssignment("p", false, m)
	assert.Equal(t, StatusSAT, c.Status())
}

func TestClauseEmptyIsBottom(t *testing.T) {
	c := NewClause()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, "⊥", c.String())
}

func TestClauseVarsSorted(t *testing.T) {
	c := NewClause(Pos("z"), Neg("a"), Pos("m"))
	assert.Equal(t, []string{"a", "m", "z"}, c.Vars())
}
