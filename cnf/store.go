package cnf

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/marrowdale/satsmt/formula"
)

// ResultKind classifies the store's last-result cache: a definite
// SAT/UNSAT verdict, a pending unit implication the engine should
// propagate, or UNKNOWN (neither, with work remaining).
type ResultKind int

const (
	ResultUnknown ResultKind = iota
	ResultSAT
	ResultUNSAT
	ResultUnit
)

// statusNone is not a real clause status; it is passed to track as the
// "previous status" of a clause being tracked for the first time (freshly
// added, or rebuilt from scratch on a backjump), so that track's
// transition logic always treats it as entering its new status rather
// than as a no-op continuation of StatusUnknown.
const statusNone Status = -1

// Result is the store's last_result: whichever of SAT, UNSAT (naming the
// guilty clause), a unit implication (naming the variable, value and
// implying clause), or UNKNOWN currently holds.
type Result struct {
	Kind     ResultKind
	Guilty   *Clause
	Var      string
	Value    bool
	ByClause *Clause
}

// Formula is the CNF store: an ordered list of clauses, a reverse
// variable→clauses index, and the last-propagation shortcut that lets the
// CDCL engine avoid rescanning every clause after each assignment. Status
// transitions are tracked incrementally rather than recomputed by a full
// clause scan on every assignment.
type Formula struct {
	Clauses   []*Clause
	Variables []string

	index      map[string][]*Clause
	varSeen    map[string]bool
	nextIndex  int
	unsat      *Clause
	pending    []*Clause
	unresolved int

	log *logrus.Entry
}

// NewFormula returns an empty CNF store. log may be nil, in which case
// store events are discarded (the solver never requires a logger).
func NewFormula(log *logrus.Entry) *Formula {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
		log.Logger.SetOutput(discard{})
	}
	return &Formula{
		index:   make(map[string][]*Clause),
		varSeen: make(map[string]bool),
		log:     log,
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// AddClause appends c to the store, updates the var→clauses index for
// every variable in c, and initializes its watched/status/implied state
// against model. A tautological clause (pos ∩ neg ≠ ∅) is silently
// dropped — AddClause is the one chokepoint every clause, original or
// learned, passes through.
func (f *Formula) AddClause(c *Clause, model formula.Model) {
	if c.IsTautology() {
		f.log.WithField("clause", c.String()).Debug("AddClause -- DROP tautology")
		return
	}

	c.Index = f.nextIndex
	f.nextIndex++
	f.Clauses = append(f.Clauses, c)

	for _, v := range c.Vars() {
		f.index[v] = append(f.index[v], c)
		if !f.varSeen[v] {
			f.varSeen[v] = true
			f.Variables = append(f.Variables, v)
			sort.Strings(f.Variables)
		}
	}

	c.Recompute(model)
	f.track(c, statusNone)
	f.log.WithFields(logrus.Fields{"clause": c.String(), "status": c.status}).Debug("AddClause -- OK")
}

// track records a freshly (re)computed clause's status in the store's
// incremental aggregates, given the status it held before (prev).
func (f *Formula) track(c *Clause, prev Status) {
	switch c.status {
	case StatusUNSAT:
		if f.unsat == nil {
			f.unsat = c
		}
	case StatusUnknown:
		if prev != StatusUnknown {
			f.unresolved++
		}
		if c.implied != nil {
			f.pending = append(f.pending, c)
		}
	case StatusSAT:
		if prev == StatusUnknown {
			f.unresolved--
		}
	}
}

// NotifyAssignment must be called after every propagation/decision that
// assigns v := value in model. Only the clauses containing v are touched.
func (f *Formula) NotifyAssignment(v string, value bool, model formula.Model) {
	for _, c := range f.index[v] {
		prev := c.status
		c.UpdateWithAssignment(v, value, model)
		f.track(c, prev)
	}
}

// OnBackjump recomputes every clause's status from scratch against the
// reduced model. This is the one operation that must be a full scan:
// backjumping can unassign many variables at once, touching every clause
// that depended on any of them.
func (f *Formula) OnBackjump(model formula.Model) {
	f.unsat = nil
	f.pending = f.pending[:0]
	f.unresolved = 0
	for _, c := range f.Clauses {
		c.Recompute(model)
		f.track(c, statusNone)
	}
}

// LastResult reports the store's current last result: a definite SAT/UNSAT
// verdict, or the next pending unit implication, or UNKNOWN. Popping a
// unit implication off the pending queue is destructive — the caller is
// expected to apply it (via NotifyAssignment) before asking again, which
// drives the BCP fixed-point loop to completion one implication at a time.
func (f *Formula) LastResult() Result {
	if f.unsat != nil {
		return Result{Kind: ResultUNSAT, Guilty: f.unsat}
	}
	for len(f.pending) > 0 {
		c := f.pending[0]
		f.pending = f.pending[1:]
		if c.status == StatusUnknown && c.implied != nil {
			return Result{Kind: ResultUnit, Var: c.implied.Var, Value: c.implied.Value, ByClause: c}
		}
	}
	if f.unresolved == 0 {
		return Result{Kind: ResultSAT}
	}
	return Result{Kind: ResultUnknown}
}

// IsEmpty reports whether the store has no clauses at all: the Tseitin
// early-exit case where the input is trivially SAT.
func (f *Formula) IsEmpty() bool { return len(f.Clauses) == 0 }

// HasEmptyClause reports whether any clause in the store is the empty
// clause: the Tseitin early-exit case where the input is trivially UNSAT.
func (f *Formula) HasEmptyClause() bool {
	for _, c := range f.Clauses {
		if c.IsEmpty() {
			return true
		}
	}
	return false
}

// ClauseAt returns the clause with the given stable index, used by the
// conflict analyzer to resolve a causing-clause index recorded in the
// implication graph back to a clause without holding a pointer across
// backjumps.
func (f *Formula) ClauseAt(idx int) *Clause {
	if idx < 0 || idx >= len(f.Clauses) {
		return nil
	}
	return f.Clauses[idx]
}

// Index returns the clauses containing v, used by the DLIS-style decision
// heuristic.
func (f *Formula) Index(v string) []*Clause { return f.index[v] }

func (f *Formula) String() string {
	if f.IsEmpty() {
		return "⊤"
	}
	s := ""
	for i, c := range f.Clauses {
		if i > 0 {
			s += " ∧ "
		}
		s += c.String()
	}
	return s
}
