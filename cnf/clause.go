// Package cnf implements the CNF clause store: clauses with
// positive/negative literal sets, two-watched-literals state, a
// per-clause SAT-status cache, and a variable→containing-clauses index.
package cnf

import (
	"sort"
	"strings"

	"github.com/marrowdale/satsmt/formula"
)

// Literal is a proposition name together with a polarity.
type Literal struct {
	Name    string
	Negated bool
}

// Negate returns the opposite-polarity literal for the same variable.
func (l Literal) Negate() Literal {
	return Literal{Name: l.Name, Negated: !l.Negated}
}

func (l Literal) String() string {
	if l.Negated {
		return "¬" + l.Name
	}
	return l.Name
}

// Status is the SAT/UNSAT/UNKNOWN cache attached to every clause.
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

// Implied names the single forced assignment a unit clause demands.
type Implied struct {
	Var   string
	Value bool
}

// Clause is a disjunction of literals, represented as two disjoint sets of
// proposition names (pos, neg) plus the cache state the CDCL engine
// relies on: a watched-variable set, an optional implied assignment, and
// a SAT/UNSAT/UNKNOWN status.
//
// Clauses are referred to by the store via their stable Index, never by
// pointer identity, so clause identity survives backjumps and further
// learning; Index is assigned once, when the clause is added to a
// Formula, and never changes afterward.
type Clause struct {
	pos map[string]bool
	neg map[string]bool

	watched map[string]bool
	implied *Implied
	status  Status

	Index   int
	Learned bool
}

// NewClause builds a clause from literals, folding duplicates (a repeated
// literal collapses implicitly since pos/neg are sets).
func NewClause(lits ...Literal) *Clause {
	c := &Clause{pos: map[string]bool{}, neg: map[string]bool{}, status: StatusUnknown}
	for _, l := range lits {
		if l.Negated {
			c.neg[l.Name] = true
		} else {
			c.pos[l.Name] = true
		}
	}
	return c
}

// Pos returns the variable named positively.
func Pos(name string) Literal { return Literal{Name: name} }

// Neg returns the variable named negatively.
func Neg(name string) Literal { return Literal{Name: name, Negated: true} }

// IsTautology reports whether the clause contains both polarities of some
// variable (pos ∩ neg ≠ ∅); such clauses are dropped at the store's
// add_clause boundary rather than represented.
func (c *Clause) IsTautology() bool {
	for v := range c.pos {
		if c.neg[v] {
			return true
		}
	}
	return false
}

// Len reports |pos| + |neg|.
func (c *Clause) Len() int { return len(c.pos) + len(c.neg) }

// IsEmpty reports whether the clause is the empty clause (denotes ⊥).
func (c *Clause) IsEmpty() bool { return c.Len() == 0 }

// IsUnitSyntactically reports whether the clause has exactly one literal,
// independent of any model — useful for the Tseitin early-exit check.
func (c *Clause) IsUnitSyntactically() bool { return c.Len() == 1 }

// Vars returns the clause's variables in sorted order, deterministically.
func (c *Clause) Vars() []string {
	seen := make(map[string]bool, c.Len())
	for v := range c.pos {
		seen[v] = true
	}
	for v := range c.neg {
		seen[v] = true
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// PositiveVars and NegativeVars expose the raw literal sets, used by the
// conflict analyzer to build resolvents.
func (c *Clause) PositiveVars() map[string]bool { return c.pos }
func (c *Clause) NegativeVars() map[string]bool { return c.neg }

// Occurs reports whether v occurs in the clause, and with which polarity
// (polarity is only meaningful when occurs is true and the clause is not a
// dropped tautology; a clause may never legally contain both).
func (c *Clause) Occurs(v string) (negated bool, occurs bool) {
	if c.pos[v] {
		return false, true
	}
	if c.neg[v] {
		return true, true
	}
	return false, false
}

// Status returns the clause's cached SAT/UNSAT/UNKNOWN state.
func (c *Clause) Status() Status { return c.status }

// Watched returns the currently watched variable names: a set of at most
// two variables the clause is keeping track of for unit propagation.
func (c *Clause) Watched() []string {
	out := make([]string, 0, len(c.watched))
	for v := range c.watched {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Implied returns the clause's forced assignment, or nil if the clause is
// not currently unit.
func (c *Clause) Implied() *Implied { return c.implied }

func (c *Clause) literalSatisfies(v string, value bool) bool {
	if value && c.pos[v] {
		return true
	}
	if !value && c.neg[v] {
		return true
	}
	return false
}

func (c *Clause) satisfiedBy(model formula.Model) bool {
	for v := range c.pos {
		if val, ok := model.Get(v); ok && val {
			return true
		}
	}
	for v := range c.neg {
		if val, ok := model.Get(v); ok && !val {
			return true
		}
	}
	return false
}

func (c *Clause) unassignedVars(model formula.Model) []string {
	var out []string
	for _, v := range c.Vars() {
		if !model.IsAssigned(v) {
			out = append(out, v)
		}
	}
	return out
}

// satisfyingValue returns the value that would satisfy the clause's
// occurrence of v (true if v occurs positively, false if negatively).
func (c *Clause) satisfyingValue(v string) bool {
	return c.pos[v]
}

// Recompute rebuilds status, watched and implied from scratch against
// model: a satisfied literal makes the clause SAT; otherwise, if every
// variable is assigned, UNSAT; otherwise UNKNOWN with watches refilled to
// min(2, unassigned_count) and implied set iff exactly one variable
// remains. Called after a backjump, when the model changes out from under
// many clauses at once.
func (c *Clause) Recompute(model formula.Model) {
	if c.satisfiedBy(model) {
		c.status = StatusSAT
		c.watched = nil
		c.implied = nil
		return
	}

	unassigned := c.unassignedVars(model)
	if len(unassigned) == 0 {
		c.status = StatusUNSAT
		c.watched = nil
		c.implied = nil
		return
	}

	c.status = StatusUnknown
	watchCount := len(unassigned)
	if watchCount > 2 {
		watchCount = 2
	}
	c.watched = make(map[string]bool, watchCount)
	for _, v := range unassigned[:watchCount] {
		c.watched[v] = true
	}

	if len(unassigned) == 1 {
		v := unassigned[0]
		c.implied = &Implied{Var: v, Value: c.satisfyingValue(v)}
	} else {
		c.implied = nil
	}
}

// UpdateWithAssignment is called after a single new assignment (v, value)
// lands in model: an already SAT or UNSAT clause is unaffected; an
// UNKNOWN clause whose new assignment satisfies one of its literals
// becomes SAT; otherwise the clause is re-derived from the clause's own
// (bounded) literal set rather than the whole formula.
func (c *Clause) UpdateWithAssignment(v string, value bool, model formula.Model) {
	if c.status != StatusUnknown {
		return
	}
	if c.literalSatisfies(v, value) {
		c.status = StatusSAT
		c.watched = nil
		c.implied = nil
		return
	}
	c.Recompute(model)
}

func (c *Clause) String() string {
	if c.IsEmpty() {
		return "⊥"
	}
	parts := make([]string, 0, c.Len())
	for _, v := range c.Vars() {
		if c.pos[v] {
			parts = append(parts, v)
		} else {
			parts = append(parts, "¬"+v)
		}
	}
	return "(" + strings.Join(parts, " ∨ ") + ")"
}
