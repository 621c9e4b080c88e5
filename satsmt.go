// Package satsmt is the top-level facade over the solver: it parses a
// concrete surface syntax, then hands the resulting formula.Formula to
// the CDCL engine (package cdcl) or the DPLL(T) orchestrator (package
// smt) — one front door over the two entry points callers need.
package satsmt

import (
	"github.com/marrowdale/satsmt/cdcl"
	"github.com/marrowdale/satsmt/formula"
	"github.com/marrowdale/satsmt/parser"
	"github.com/marrowdale/satsmt/smt"
)

// Status is the three-valued SAT verdict, re-exported so callers of this
// package never need to import package cdcl directly.
type Status = cdcl.Status

const (
	StatusUnknown = cdcl.StatusUnknown
	StatusSAT     = cdcl.StatusSAT
	StatusUNSAT   = cdcl.StatusUNSAT
)

// SolveConfig customizes a Solve or SolveSMT call; zero value selects
// every package default (see cdcl.SolverConfig, smt.SolverConfig).
type SolveConfig struct {
	MaxDecisions int
	MaxRounds    int
}

// Result is the outcome of Solve, the propositional top-level SAT entry
// point.
type Result struct {
	Status Status
	Model  formula.Model
}

// Solve parses source as a propositional formula (the fully-parenthesized
// surface syntax package parser accepts) and runs the CDCL engine on it,
// returning a model over exactly source's own variables when SAT.
func Solve(source string, cfg SolveConfig) (Result, error) {
	phi, err := parser.ParsePropositional(source)
	if err != nil {
		return Result{}, err
	}
	r := cdcl.Solve(phi, formula.NewModel(), nil, cdcl.SolverConfig{MaxDecisions: cfg.MaxDecisions})
	return Result{Status: r.Status, Model: r.Model}, nil
}

// SMTResult is the outcome of SolveSMT, the first-order top-level SMT
// entry point.
type SMTResult struct {
	Status smt.Status
	Model  map[string]bool
}

// SolveSMT parses source as a quantifier-free first-order formula and
// decides its satisfiability in T_UF via the DPLL(T) orchestrator,
// returning a model over source's equality atoms when SAT. A quantified
// source formula is rejected with a core.KindUnsupportedFragment error,
// surfaced unwrapped so callers can match on it with core.IsKind.
func SolveSMT(source string, cfg SolveConfig) (SMTResult, error) {
	phi, err := parser.ParseFirstOrder(source)
	if err != nil {
		return SMTResult{}, err
	}
	r, err := smt.Solve(phi, smt.SolverConfig{MaxDecisions: cfg.MaxDecisions, MaxRounds: cfg.MaxRounds})
	if err != nil {
		return SMTResult{}, err
	}
	return SMTResult{Status: r.Status, Model: r.Model}, nil
}
