package cdcl

import (
	"github.com/marrowdale/satsmt/cnf"
	"github.com/marrowdale/satsmt/graph"
)

// Status is the three-valued verdict the CDCL engine reaches per run.
type Status int

const (
	StatusUnknown Status = iota
	StatusSAT
	StatusUNSAT
)

func (s Status) String() string {
	switch s {
	case StatusSAT:
		return "SAT"
	case StatusUNSAT:
		return "UNSAT"
	default:
		return "UNKNOWN"
	}
}

// bcp drains store's pending unit queue into g until a fixed point: no
// more units to propagate, or a definite SAT/UNSAT verdict is reached.
// This is Boolean constraint propagation, expressed as a drain of the
// store's own pending-unit queue rather than a direct watch-list rescan.
func bcp(store *cnf.Formula, g *graph.Graph) Status {
	for {
		res := store.LastResult()
		switch res.Kind {
		case cnf.ResultUnit:
			g.Propagate(res.Var, res.Value, res.ByClause.Index)
			store.NotifyAssignment(res.Var, res.Value, g.Model())
		case cnf.ResultUNSAT:
			g.SetConflict(res.Guilty)
			return StatusUNSAT
		case cnf.ResultSAT:
			return StatusSAT
		default:
			return StatusUnknown
		}
	}
}

// Run drives the CDCL decide/propagate/analyze/backjump loop to
// completion: decide (via heuristic), propagate to a fixed point (bcp),
// and on conflict either fail outright (already at level 0) or learn a
// clause and backjump. maxDecisions bounds the number of Decide calls the
// engine will make before giving up and reporting UNKNOWN — callers
// wanting an exhaustive search size it to the variable count; see the
// top-level entry point.
func Run(store *cnf.Formula, g *graph.Graph, heuristic Heuristic, analyzer *Analyzer, maxDecisions int) Status {
	if st := bcp(store, g); st != StatusUnknown {
		return st
	}

	decisions := 0
	for decisions < maxDecisions {
		v, val, ok := heuristic.Choose(store, g.Model())
		if !ok {
			// No unassigned variable left and bcp already reported
			// neither SAT nor UNSAT: every clause must in fact be
			// resolved, so this is SAT.
			return StatusSAT
		}

		g.Decide(v, val)
		decisions++
		store.NotifyAssignment(v, val, g.Model())

		for {
			st := bcp(store, g)
			if st == StatusSAT {
				return StatusSAT
			}
			if st == StatusUnknown {
				break
			}

			// st == StatusUNSAT: analyze and backjump, or fail if the
			// conflict holds at level 0 already.
			if g.Level() == 0 {
				return StatusUNSAT
			}
			learned, level := analyzer.Analyze(g.Conflict(), g, store)
			g.Backjump(level)
			store.AddClause(learned, g.Model())
			store.OnBackjump(g.Model())
		}
	}
	return StatusUnknown
}
