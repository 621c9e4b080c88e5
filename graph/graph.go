// Package graph implements the implication graph: the record of, for
// every assigned variable, whether it was decided or inferred, the
// decision level it was assigned at and, for an inference, the clause
// that forced it. Frames are kept per decision level rather than as a
// flat chronological trail, since the CDCL engine and conflict analyzer
// both need to walk a single level's decisions and inferences directly —
// for backjump reshaping and for First-UIP resolution — rather than slice
// a flat trail by index.
package graph

import (
	"github.com/marrowdale/satsmt/cnf"
	"github.com/marrowdale/satsmt/formula"
)

// Decided is the sentinel ClauseIndex recorded for a variable that was
// decided rather than inferred.
const Decided = -1

// Cause names why a variable holds its current value: Decided (a branch
// choice) or the stable index of the clause that went unit and forced it.
type Cause struct {
	ClauseIndex int
	Level       int
}

// IsDecision reports whether the variable this Cause belongs to was
// decided rather than inferred.
func (c Cause) IsDecision() bool { return c.ClauseIndex == Decided }

// Inference is a single propagated (variable, value) pair, recorded in
// the order BCP produced it within its level.
type Inference struct {
	Var   string
	Value bool
}

// Graph is the implication graph: the current decision level, the
// decision/inference frames per level, the cause of every assigned
// variable, the union model, and the clause (if any) that BCP found
// UNSAT at the current level (cleared on backjump).
//
// Clauses are otherwise referenced only by their stable cnf.Clause.Index,
// never held by pointer across a backjump, so the conflict field is the
// one place a live *cnf.Clause pointer is kept, and only transiently
// until the next backjump clears it.
type Graph struct {
	level      int
	decisions  map[int][]string
	inferences map[int][]Inference
	cause      map[string]Cause
	model      formula.Model
	conflict   *cnf.Clause
}

// New returns an empty implication graph at level 0.
func New() *Graph {
	return &Graph{
		decisions:  make(map[int][]string),
		inferences: make(map[int][]Inference),
		cause:      make(map[string]Cause),
		model:      formula.NewModel(),
	}
}

// Level returns the current decision level.
func (g *Graph) Level() int { return g.level }

// Model returns the graph's live union model: the canonical truth
// assignment. Callers that need a stable snapshot should call
// Model().Clone().
func (g *Graph) Model() formula.Model { return g.model }

// Assume seeds a level-0 assumption: part of an optional partial model
// supplied to the top-level SAT entry point, indistinguishable from a
// decision except that it lives at level 0 and several may coexist.
func (g *Graph) Assume(v string, value bool) {
	g.model.Set(v, value)
	g.decisions[0] = append(g.decisions[0], v)
	g.cause[v] = Cause{ClauseIndex: Decided, Level: 0}
}

// Decide records a new branch: increments the decision level, assigns
// (v, value) as the level's single decision variable.
func (g *Graph) Decide(v string, value bool) {
	g.level++
	g.model.Set(v, value)
	g.decisions[g.level] = []string{v}
	g.cause[v] = Cause{ClauseIndex: Decided, Level: g.level}
}

// Propagate records a BCP-forced assignment at the current level, caused
// by the clause at clauseIndex. Every inferred variable must have a
// causing clause that was unit at the moment of inference.
func (g *Graph) Propagate(v string, value bool, clauseIndex int) {
	g.model.Set(v, value)
	g.inferences[g.level] = append(g.inferences[g.level], Inference{Var: v, Value: value})
	g.cause[v] = Cause{ClauseIndex: clauseIndex, Level: g.level}
}

// CauseOf returns the recorded cause of v, and whether v is assigned at all.
func (g *Graph) CauseOf(v string) (Cause, bool) {
	c, ok := g.cause[v]
	return c, ok
}

// DecisionVar returns the single variable decided at level; callers must
// only invoke this for level ≥ 1, where exactly one decision variable
// exists. Returns "" if level has no decision recorded.
func (g *Graph) DecisionVar(level int) string {
	vs := g.decisions[level]
	if len(vs) == 0 {
		return ""
	}
	return vs[len(vs)-1]
}

// InferencesAt returns the ordered inferences recorded at level.
func (g *Graph) InferencesAt(level int) []Inference { return g.inferences[level] }

// SetConflict records the clause BCP found UNSAT at the current level.
func (g *Graph) SetConflict(c *cnf.Clause) { g.conflict = c }

// Conflict returns the current level's conflict clause, or nil.
func (g *Graph) Conflict() *cnf.Clause { return g.conflict }

// ClearConflict drops the recorded conflict clause without otherwise
// touching graph state. The CDCL engine does not call it; Backjump clears
// the conflict clause itself.
func (g *Graph) ClearConflict() { g.conflict = nil }

// Backjump reshapes the graph to decision level target: every decision
// and inference at a level strictly above target is undone (removed from
// the model and from cause), and the conflict clause is cleared. Afterward
// the model equals the union of decisions and inferences at levels ≤
// target, and cause is restricted to those same variables.
func (g *Graph) Backjump(target int) {
	for l := g.level; l > target; l-- {
		for _, v := range g.decisions[l] {
			delete(g.model, v)
			delete(g.cause, v)
		}
		delete(g.decisions, l)
		for _, inf := range g.inferences[l] {
			delete(g.model, inf.Var)
			delete(g.cause, inf.Var)
		}
		delete(g.inferences, l)
	}
	g.level = target
	g.conflict = nil
}
