// Package congruence implements the congruence-closure theory solver for
// T_UF (the theory of equality with uninterpreted functions), built on
// top of the unionfind forest. The decision procedure follows T_UF's
// axioms directly: reflexivity, symmetry and transitivity come for free
// from the union-find forest's equivalence classes; per-function
// congruence is applied explicitly and iterated to a fixed point.
//
// That fixed-point iteration matters for soundness: a single pass over
// the congruence rule can miss a conflict that only appears after an
// earlier merge enables a later one (f(f(f(a)))=a together with
// f^5(a)=a forces f(a)=a only after repeated congruence merges). Close
// below runs applyCongruenceToFixedPoint before ever reporting
// consistency.
package congruence

import (
	"sort"

	"github.com/marrowdale/satsmt/formula"
	"github.com/marrowdale/satsmt/unionfind"
)

// Result is the outcome of a congruence-closure check: whether the
// assigned equalities are T-consistent, and, when so, the equality atoms
// T-propagation can additionally determine (each mapped to the value it
// is forced to take).
type Result struct {
	Consistent bool
	Propagated map[string]bool
}

// Close runs the congruence-closure procedure over atoms (every equality
// atom of the original formula) given assigned
// (the current, possibly partial, atom-level model: atom.String() ->
// Boolean). It seeds a union-find forest with every subterm occurring in
// atoms, unions the sides of every atom assigned true, iterates the
// congruence rule on function applications to a fixed point, then checks
// every atom assigned false for a root collision. If consistent, it also
// computes T-propagation: an unassigned atom whose sides already share a
// root is forced true; an unassigned atom whose sides coincide by root
// with the (opposite) sides of an already-false atom is forced false.
func Close(atoms []formula.Formula, assigned map[string]bool) Result {
	forest := unionfind.New()
	terms := seedAll(forest, atoms)

	for _, atom := range atoms {
		if val, ok := assigned[atom.String()]; ok && val {
			lhs, rhs := atom.Sides()
			forest.Union(lhs, rhs)
		}
	}

	applyCongruenceToFixedPoint(forest, terms)

	for _, atom := range atoms {
		if val, ok := assigned[atom.String()]; ok && !val {
			lhs, rhs := atom.Sides()
			if forest.Connected(lhs, rhs) {
				return Result{Consistent: false}
			}
		}
	}

	propagated := make(map[string]bool)
	for _, atom := range atoms {
		if _, ok := assigned[atom.String()]; ok {
			continue
		}
		lhs, rhs := atom.Sides()
		switch {
		case forest.Connected(lhs, rhs):
			propagated[atom.String()] = true
		case impliedFalse(forest, atoms, assigned, lhs, rhs):
			propagated[atom.String()] = false
		}
	}

	return Result{Consistent: true, Propagated: propagated}
}

// seedAll collects every distinct subterm occurring in atoms' sides,
// seeds the forest with them, and returns the deduplicated, sorted term
// list for applyCongruenceToFixedPoint to scan for function applications.
func seedAll(f *unionfind.Forest, atoms []formula.Formula) []formula.Term {
	seen := make(map[string]formula.Term)
	for _, atom := range atoms {
		lhs, rhs := atom.Sides()
		for _, t := range lhs.Subterms() {
			seen[t.String()] = t
		}
		for _, t := range rhs.Subterms() {
			seen[t.String()] = t
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	terms := make([]formula.Term, 0, len(keys))
	for _, k := range keys {
		terms = append(terms, seen[k])
	}
	f.Seed(terms...)
	return terms
}

// applyCongruenceToFixedPoint merges any two function-application terms
// sharing a function symbol and arity whose corresponding arguments are
// already connected, and repeats until a full pass produces no further
// merge. The rule must be iterated to a fixed point before declaring
// T-consistency or propagating equalities — a single pass can miss
// congruences that only become applicable after an earlier merge.
func applyCongruenceToFixedPoint(f *unionfind.Forest, terms []formula.Term) {
	var funcs []formula.Term
	for _, t := range terms {
		if t.Kind() == formula.TermFunction {
			funcs = append(funcs, t)
		}
	}

	for {
		changed := false
		for i := 0; i < len(funcs); i++ {
			for j := i + 1; j < len(funcs); j++ {
				a, b := funcs[i], funcs[j]
				if a.Name() != b.Name() || len(a.Args()) != len(b.Args()) {
					continue
				}
				if f.Connected(a, b) {
					continue
				}
				if argsConnected(f, a, b) && f.Union(a, b) {
					changed = true
				}
			}
		}
		if !changed {
			return
		}
	}
}

func argsConnected(f *unionfind.Forest, a, b formula.Term) bool {
	for i, arg := range a.Args() {
		if !f.Connected(arg, b.Args()[i]) {
			return false
		}
	}
	return true
}

// impliedFalse reports whether atom (lhs=rhs), still unassigned, is
// forced false because it coincides by root (in either order) with the
// sides of some already-false equality.
func impliedFalse(f *unionfind.Forest, atoms []formula.Formula, assigned map[string]bool, lhs, rhs formula.Term) bool {
	rl, rr := f.Find(lhs), f.Find(rhs)
	for _, atom := range atoms {
		val, ok := assigned[atom.String()]
		if !ok || val {
			continue
		}
		a, b := atom.Sides()
		ra, rb := f.Find(a), f.Find(b)
		if (rl == ra && rr == rb) || (rl == rb && rr == ra) {
			return true
		}
	}
	return false
}
