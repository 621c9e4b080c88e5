package cdcl

import (
	"sort"

	"github.com/marrowdale/satsmt/cnf"
	"github.com/marrowdale/satsmt/formula"
	"github.com/marrowdale/satsmt/graph"
	"github.com/marrowdale/satsmt/tseitin"
)

// SolverConfig customizes a single Solve call. MaxDecisions bounds the
// number of branching decisions the engine will make before giving up
// and reporting UNKNOWN; zero selects a default of 64 decisions per
// variable in the encoded formula.
type SolverConfig struct {
	MaxDecisions int
}

// Result is the top-level SAT entry point's output: the verdict, a model
// over phi's own variables only (nil unless SAT), and the extended CNF
// formula actually solved (phi's Tseitin encoding plus any learned
// clauses), useful to a caller building an incremental SMT loop on top.
type Result struct {
	Status Status
	Model  formula.Model
	Store  *cnf.Formula
}

// Solve is the top-level SAT entry point: it Tseitin-encodes phi, seeds
// partial as level-0 assumptions, optionally asserts an extra conflict
// clause (the mechanism the DPLL(T) orchestrator uses to reject a
// theory-inconsistent model and force the search elsewhere), and runs the
// CDCL engine to a verdict.
func Solve(phi formula.Formula, partial formula.Model, extra *cnf.Clause, cfg SolverConfig) Result {
	gen := tseitin.NewGenerator()
	model := formula.NewModel()

	store := tseitin.Encode(phi, gen, model)
	if extra != nil {
		store.AddClause(extra, model)
	}

	g := graph.New()
	assumed := make([]string, 0, len(partial))
	for v := range partial {
		assumed = append(assumed, v)
	}
	sort.Strings(assumed)
	for _, v := range assumed {
		val, _ := partial.Get(v)
		g.Assume(v, val)
		store.NotifyAssignment(v, val, g.Model())
	}

	if store.IsEmpty() {
		return Result{Status: StatusSAT, Model: g.Model().Clone().Restrict(phi.Vars()), Store: store}
	}
	if store.HasEmptyClause() {
		return Result{Status: StatusUNSAT, Store: store}
	}

	maxDecisions := cfg.MaxDecisions
	if maxDecisions == 0 {
		maxDecisions = len(store.Variables) * 64
	}

	status := Run(store, g, NewDLIS(), NewAnalyzer(), maxDecisions)

	result := Result{Status: status, Store: store}
	if status == StatusSAT {
		result.Model = g.Model().Clone().Restrict(phi.Vars())
	}
	return result
}
