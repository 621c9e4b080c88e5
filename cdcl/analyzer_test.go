package cdcl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marrowdale/satsmt/cnf"
	"github.com/marrowdale/satsmt/formula"
	"github.com/marrowdale/satsmt/graph"
)

func TestAnalyzeAtLevelZeroReturnsNoLearnedClause(t *testing.T) {
	g := graph.New()
	learned, level := NewAnalyzer().Analyze(cnf.NewClause(), g, cnf.NewFormula(nil))
	assert.Nil(t, learned)
	assert.Equal(t, 0, level)
}

func TestAnalyzeStopsImmediatelyWhenOnlyOneCurrentLevelVariableExists(t *testing.T) {
	model := formula.NewModel()
	store := cnf.NewFormula(nil)
	c1 := cnf.NewClause(cnf.Neg("a"), cnf.Pos("b"))
	store.AddClause(c1, model)
	conflict := cnf.NewClause(cnf.Neg("b"), cnf.Neg("d"))
	store.AddClause(conflict, model)

	g := graph.New()
	g.Decide("a", true)
	g.Propagate("b", true, c1.Index)
	g.Decide("d", true) // level 2, decision, no propagation needed for this test

	learned, level := NewAnalyzer().Analyze(conflict, g, store)
	require.NotNil(t, learned)
	assert.ElementsMatch(t, []string{"b", "d"}, learned.Vars())
	assert.Equal(t, 1, level)
}

func TestAnalyzeResolvesOutAllButOneCurrentLevelVariable(t *testing.T) {
	model := formula.NewModel()
	store := cnf.NewFormula(nil)
	c1 := cnf.NewClause(cnf.Neg("a"), cnf.Pos("b")) // level 1: a -> b
	store.AddClause(c1, model)
	c2 := cnf.NewClause(cnf.Neg("c"), cnf.Pos("d")) // level 2: c -> d
	store.AddClause(c2, model)
	c4 := cnf.NewClause(cnf.Neg("c"), cnf.Pos("f")) // level 2: c -> f
	store.AddClause(c4, model)
	conflict := cnf.NewClause(cnf.Neg("d"), cnf.Neg("f"))
	store.AddClause(conflict, model)

	g := graph.New()
	g.Decide("a", true)
	g.Propagate("b", true, c1.Index)
	g.Decide("c", true)
	g.Propagate("d", true, c2.Index)
	g.Propagate("f", true, c4.Index)

	learned, level := NewAnalyzer().Analyze(conflict, g, store)
	require.NotNil(t, learned)

	// d is resolved away against c2 (pulling in ¬c), then f against c4.
	// Both d and f were implied by the level-2 decision c, so c is the
	// First-UIP and the learned clause is the single literal ¬c.
	assert.ElementsMatch(t, []string{"c"}, learned.Vars())
	neg, occurs := learned.Occurs("c")
	require.True(t, occurs)
	assert.True(t, neg)
	_, occurs = learned.Occurs("f")
	assert.False(t, occurs)
	_, occurs = learned.Occurs("d")
	assert.False(t, occurs)
	// Only level 2 appears in the learned clause, so the backjump level is 0.
	assert.Equal(t, 0, level)
}

func TestAnalyzeBackjumpsToZeroWhenOnlyOneDecisionLevelInvolved(t *testing.T) {
	model := formula.NewModel()
	store := cnf.NewFormula(nil)
	conflict := cnf.NewClause(cnf.Neg("p"), cnf.Neg("q"))
	store.AddClause(conflict, model)

	g := graph.New()
	g.Decide("p", true)
	g.Propagate("q", true, conflict.Index)

	learned, level := NewAnalyzer().Analyze(conflict, g, store)
	require.NotNil(t, learned)
	assert.Equal(t, 0, level)
}
