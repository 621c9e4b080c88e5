package cdcl

import (
	"sort"

	"github.com/marrowdale/satsmt/cnf"
	"github.com/marrowdale/satsmt/formula"
)

// Heuristic chooses the next (variable, value) decision. DLIS is the only
// implementation provided, but the interface is kept small and swappable:
// a VSIDS-style weighted heuristic is a drop-in replacement with the same
// contract.
type Heuristic interface {
	Choose(store *cnf.Formula, model formula.Model) (variable string, value bool, ok bool)
}

// DLIS scores, for every unassigned variable and polarity, the number of
// UNKNOWN clauses that would become SAT if that literal were asserted; a
// candidate that would instead drive some clause to UNSAT is
// disqualified. The highest-scoring candidate wins; ties are broken
// deterministically by ascending lexicographic variable name, then by
// polarity (false before true).
type DLIS struct{}

// NewDLIS returns a DLIS heuristic. It carries no state of its own: every
// candidate's score is recomputed fresh from the current model on every
// call.
func NewDLIS() *DLIS { return &DLIS{} }

// Choose implements Heuristic.
func (DLIS) Choose(store *cnf.Formula, model formula.Model) (string, bool, bool) {
	var unassigned []string
	for _, v := range store.Variables {
		if !model.IsAssigned(v) {
			unassigned = append(unassigned, v)
		}
	}
	sort.Strings(unassigned)

	bestVar := ""
	bestValue := false
	bestScore := -1
	found := false

	for _, v := range unassigned {
		for _, value := range [2]bool{false, true} {
			score, disqualified := scoreCandidate(store, v, value)
			if disqualified {
				continue
			}
			if score > bestScore {
				bestScore = score
				bestVar = v
				bestValue = value
				found = true
			}
		}
	}
	return bestVar, bestValue, found
}

// scoreCandidate counts how many UNKNOWN clauses containing v would
// become SAT if v were set to value, and reports whether doing so would
// instead force some clause to UNSAT (v is that clause's last
// unassigned variable and value does not satisfy it).
func scoreCandidate(store *cnf.Formula, v string, value bool) (score int, disqualified bool) {
	for _, c := range store.Index(v) {
		if c.Status() != cnf.StatusUnknown {
			continue
		}
		negated, occurs := c.Occurs(v)
		if !occurs {
			continue
		}
		satisfies := (!negated && value) || (negated && !value)
		if satisfies {
			score++
			continue
		}
		if implied := c.Implied(); implied != nil && implied.Var == v {
			return 0, true
		}
	}
	return score, false
}
