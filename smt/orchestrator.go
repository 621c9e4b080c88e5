// Package smt implements a lazy DPLL(T) orchestrator: it drives the CDCL
// engine of package cdcl over the propositional skeleton of a
// quantifier-free first-order formula, lifts each complete skeleton
// model to an atom-model, and checks it against the congruence closure
// theory solver of package congruence, feeding T-conflicts and
// T-propagated literals back into the SAT search until the loop
// saturates.
package smt

import (
	"sort"

	"github.com/marrowdale/satsmt/cdcl"
	"github.com/marrowdale/satsmt/cnf"
	"github.com/marrowdale/satsmt/congruence"
	"github.com/marrowdale/satsmt/core"
	"github.com/marrowdale/satsmt/formula"
	"github.com/marrowdale/satsmt/graph"
	"github.com/marrowdale/satsmt/tseitin"
)

// Status is the two-valued SMT verdict: the theory of equality with
// uninterpreted functions decides satisfiability outright, with no
// UNKNOWN — a quantifier-free T_UF formula's propositional skeleton is
// finite, so the DPLL(T) loop always terminates with SAT or UNSAT
// (modulo the decision-depth safety cap, reported as an exhaustion error
// rather than as a third verdict).
type Status int

const (
	StatusUNSAT Status = iota
	StatusSAT
)

func (s Status) String() string {
	if s == StatusSAT {
		return "SAT"
	}
	return "UNSAT"
}

// SolverConfig customizes a single Solve call. MaxDecisions is forwarded
// to each underlying cdcl.Run call (zero selects that package's own
// default). MaxRounds bounds the number of DPLL(T) restarts the loop may
// take before the call reports KindExhaustion instead of a verdict.
type SolverConfig struct {
	MaxDecisions int
	MaxRounds    int
}

// Result is the top-level SMT entry point's output: the verdict and,
// when SAT, a mapping from every equality atom of the input formula to
// the Boolean value that satisfies both its propositional structure and
// T_UF.
type Result struct {
	Status Status
	Model  map[string]bool
}

const defaultMaxRounds = 64

// Solve is the top-level SMT entry point. It rejects a quantified phi
// fast (an "unsupported fragment" error), then runs the DPLL(T) loop:
// Tseitin-encode phi's propositional skeleton (equality atoms pass
// through tseitin.Encode as ordinary literals, keyed by their own
// canonical string — see tseitin.Encode's nameOf case for
// formula.KindEqual — so each equality atom is its own proposition, with
// no separate atom-to-proposition map to maintain), run the SAT engine,
// lift a complete model to an atom-model, and check it against
// congruence closure. A T-conflict adds a T-lemma clause and restarts
// the SAT search from scratch — the learned clauses already in the
// store, including this new lemma, are preserved across the restart, so
// the search never repeats work already ruled out. A SAT-but-partial
// engine result (the decision cap reached with no verdict) instead runs
// T-propagation and carries its consequences forward as level-0
// assumptions for the next round.
func Solve(phi formula.Formula, cfg SolverConfig) (Result, error) {
	if phi.IsQuantified() {
		return Result{}, core.NewLogicError("smt", "Solve", core.KindUnsupportedFragment,
			"the SMT core accepts only quantifier-free formulas")
	}

	atoms := phi.Atoms()
	if len(atoms) == 0 {
		// No equality atoms at all: the formula is purely propositional,
		// so T_UF has nothing to check and SAT on the skeleton is the
		// final verdict.
		r := cdcl.Solve(phi, formula.NewModel(), nil, cdcl.SolverConfig{MaxDecisions: cfg.MaxDecisions})
		switch r.Status {
		case cdcl.StatusUNSAT:
			return Result{Status: StatusUNSAT}, nil
		case cdcl.StatusUnknown:
			return Result{}, core.NewLogicError("smt", "Solve", core.KindExhaustion,
				"the SAT engine reached the decision-depth cap without a verdict")
		}
		return Result{Status: StatusSAT, Model: map[string]bool{}}, nil
	}

	gen := tseitin.NewGenerator()
	seedModel := formula.NewModel()
	store := tseitin.Encode(phi, gen, seedModel)

	if store.IsEmpty() {
		return Result{Status: StatusSAT, Model: map[string]bool{}}, nil
	}
	if store.HasEmptyClause() {
		return Result{Status: StatusUNSAT}, nil
	}

	maxDecisions := cfg.MaxDecisions
	if maxDecisions == 0 {
		maxDecisions = len(store.Variables) * 64
	}
	maxRounds := cfg.MaxRounds
	if maxRounds == 0 {
		maxRounds = defaultMaxRounds
	}

	assumed := formula.NewModel()
	heuristic := cdcl.NewDLIS()
	analyzer := cdcl.NewAnalyzer()

	for round := 0; round < maxRounds; round++ {
		g := graph.New()
		for _, v := range sortedKeys(assumed) {
			val, _ := assumed.Get(v)
			g.Assume(v, val)
		}
		store.OnBackjump(g.Model())

		status := cdcl.Run(store, g, heuristic, analyzer, maxDecisions)
		switch status {
		case cdcl.StatusUNSAT:
			return Result{Status: StatusUNSAT}, nil

		case cdcl.StatusUnknown:
			progressed := propagateTheory(atoms, assumed)
			if !progressed {
				return Result{}, core.NewLogicError("smt", "Solve", core.KindExhaustion,
					"DPLL(T) reached the decision-depth cap with no T-propagation to extend the partial model")
			}

		case cdcl.StatusSAT:
			atomModel := liftAtomModel(atoms, g.Model())
			res := congruence.Close(atoms, atomModel)
			if res.Consistent {
				for atom, v := range res.Propagated {
					atomModel[atom] = v
				}
				// Every clause is already satisfied, so an atom the SAT
				// engine left unassigned is free; its sides are not in the
				// same class (else it was propagated true), so false keeps
				// the model T-consistent.
				for _, atom := range atoms {
					if _, ok := atomModel[atom.String()]; !ok {
						atomModel[atom.String()] = false
					}
				}
				return Result{Status: StatusSAT, Model: atomModel}, nil
			}
			store.AddClause(conflictClause(atomModel), g.Model())
		}
	}

	return Result{}, core.NewLogicError("smt", "Solve", core.KindExhaustion,
		"DPLL(T) exceeded its restart cap without reaching a verdict")
}

// liftAtomModel builds the atom-level model a complete skeleton model
// lifts to: for every equality atom, its assignment under skeleton if
// the atom's own proposition was assigned at all.
func liftAtomModel(atoms []formula.Formula, skeleton formula.Model) map[string]bool {
	out := make(map[string]bool, len(atoms))
	for _, atom := range atoms {
		if v, ok := skeleton.Get(atom.String()); ok {
			out[atom.String()] = v
		}
	}
	return out
}

// conflictClause builds a T-conflict clause: a disjunction that flips
// the sign of every atom in the current (T-inconsistent) atom-model, so
// the SAT search can never again produce exactly this assignment.
func conflictClause(atomModel map[string]bool) *cnf.Clause {
	lits := make([]cnf.Literal, 0, len(atomModel))
	for atom, v := range atomModel {
		if v {
			lits = append(lits, cnf.Neg(atom))
		} else {
			lits = append(lits, cnf.Pos(atom))
		}
	}
	return cnf.NewClause(lits...)
}

// propagateTheory runs congruence closure over whatever atoms are
// already assumed and merges any new T-propagated assignment into
// assumed, reporting whether it made progress. Used when the SAT engine
// stops at its decision cap: run T-propagation, extend the skeleton
// model accordingly, and let the caller loop back to a fresh round.
func propagateTheory(atoms []formula.Formula, assumed formula.Model) bool {
	assignedAtoms := make(map[string]bool, len(atoms))
	for _, atom := range atoms {
		if v, ok := assumed.Get(atom.String()); ok {
			assignedAtoms[atom.String()] = v
		}
	}
	res := congruence.Close(atoms, assignedAtoms)
	if !res.Consistent {
		return false
	}
	progressed := false
	for atom, v := range res.Propagated {
		if !assumed.IsAssigned(atom) {
			assumed.Set(atom, v)
			progressed = true
		}
	}
	return progressed
}

func sortedKeys(m formula.Model) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
