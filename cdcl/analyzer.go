package cdcl

import (
	"sort"

	"github.com/marrowdale/satsmt/cnf"
	"github.com/marrowdale/satsmt/graph"
)

// Analyzer performs First-UIP conflict analysis and clause learning:
// repeatedly resolve on the highest-decision-level variable until exactly
// one variable at the current level remains.
type Analyzer struct{}

// NewAnalyzer returns a stateless First-UIP analyzer.
func NewAnalyzer() *Analyzer { return &Analyzer{} }

// resolvent is the clause under construction during resolution: a set of
// variables each with a single occurrence polarity (true = positive). It
// is kept separate from cnf.Clause because the clause being built here is
// not yet normalized or store-resident.
type resolvent map[string]bool

// Analyze resolves the conflict clause down to its First-UIP form against
// store (to resolve causing-clause indices back to clauses) and reports
// the computed backjump level. g must be at decision level ≥1 (the
// trigger condition); callers check this via g.Level() before calling.
// Analyze does not mutate g or store.
func (a *Analyzer) Analyze(conflict *cnf.Clause, g *graph.Graph, store *cnf.Formula) (*cnf.Clause, int) {
	level := g.Level()
	if level == 0 {
		return nil, 0
	}

	cur := resolvent{}
	for v := range conflict.PositiveVars() {
		cur[v] = true
	}
	for v := range conflict.NegativeVars() {
		cur[v] = false
	}

	for countAtLevel(cur, g, level) > 1 {
		v, ok := pickResolveVar(cur, g, level)
		if !ok {
			// Every remaining current-level variable is a decision
			// variable. A level has exactly one, so this only happens if
			// countAtLevel's invariant was somehow violated; stop rather
			// than resolve on a variable with no reason clause.
			break
		}
		cause, _ := g.CauseOf(v)
		reason := store.ClauseAt(cause.ClauseIndex)
		cur = resolveOn(cur, reason, v)
	}

	return buildLearnedClause(cur), backjumpLevel(cur, g)
}

// countAtLevel counts how many variables of cur were assigned at level.
func countAtLevel(cur resolvent, g *graph.Graph, level int) int {
	n := 0
	for v := range cur {
		if c, ok := g.CauseOf(v); ok && c.Level == level {
			n++
		}
	}
	return n
}

// pickResolveVar selects the variable in cur with the highest decision
// level, ties broken by ascending lexicographic variable name (a
// separate tie-break rule from DLIS's).
//
// Resolving a current-level variable can only ever introduce variables at
// its own level or lower (a causing clause's other literals were already
// assigned by the time it went unit), so the maximum level present in cur
// is always exactly level for as long as more than one current-level
// variable remains — "highest decision level" therefore always resolves
// to a level-variable candidate here. Among those, a decision variable
// has no causing clause to resolve against, so it is excluded from
// candidacy (it stays in the clause until, if ever, it is the sole
// current-level variable left and the loop exits on its own).
func pickResolveVar(cur resolvent, g *graph.Graph, level int) (string, bool) {
	best := ""
	found := false
	for v := range cur {
		c, ok := g.CauseOf(v)
		if !ok || c.Level != level || c.IsDecision() {
			continue
		}
		if !found || v < best {
			best = v
			found = true
		}
	}
	return best, found
}

// resolveOn resolves cur (containing v) with reason (containing the
// opposite occurrence of v): given C ∨ x and D ∨ ¬x, the resolvent is
// (C ∪ D) with x removed.
func resolveOn(cur resolvent, reason *cnf.Clause, v string) resolvent {
	out := resolvent{}
	for lv, pol := range cur {
		if lv == v {
			continue
		}
		out[lv] = pol
	}
	for lv := range reason.PositiveVars() {
		if lv == v {
			continue
		}
		out[lv] = true
	}
	for lv := range reason.NegativeVars() {
		if lv == v {
			continue
		}
		out[lv] = false
	}
	return out
}

// buildLearnedClause converts a resolvent into a store-ready *cnf.Clause.
func buildLearnedClause(cur resolvent) *cnf.Clause {
	lits := make([]cnf.Literal, 0, len(cur))
	for v, pol := range cur {
		if pol {
			lits = append(lits, cnf.Pos(v))
		} else {
			lits = append(lits, cnf.Neg(v))
		}
	}
	c := cnf.NewClause(lits...)
	c.Learned = true
	return c
}

// backjumpLevel is the second-highest decision level occurring among the
// learned clause's variables, or 0 if only one decision level appears.
func backjumpLevel(cur resolvent, g *graph.Graph) int {
	levels := map[int]bool{}
	for v := range cur {
		if c, ok := g.CauseOf(v); ok {
			levels[c.Level] = true
		}
	}
	sorted := make([]int, 0, len(levels))
	for l := range levels {
		sorted = append(sorted, l)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	if len(sorted) <= 1 {
		return 0
	}
	return sorted[1]
}
