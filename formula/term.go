// Package formula provides an immutable tree representation of
// propositional and first-order formulas and of the terms that first-order
// equality atoms are built from. Every tree is a value: construction
// produces a brand-new node, nothing is mutated in place, and structural
// equality and hashing both go through the same canonical serialization,
// exposed as explicit operations on immutable values rather than through
// any polymorphic dispatch mechanism.
package formula

import "strings"

// TermKind distinguishes the three shapes a first-order term can take.
type TermKind int

const (
	// TermVariable is a first-order variable (u-z plus alphanumerics).
	TermVariable TermKind = iota
	// TermConstant is a nullary symbol (digits, a-d, or _ plus alphanumerics).
	TermConstant
	// TermFunction is an uninterpreted function applied to an ordered tuple of child terms.
	TermFunction
)

// Term is an immutable node in a first-order term tree: a variable, a
// constant, or a function application over child terms. Two terms are
// equal iff their serialized forms are equal.
type Term struct {
	kind     TermKind
	name     string
	args     []Term
	rendered string
}

// Var constructs a first-order variable term.
func Var(name string) Term {
	return Term{kind: TermVariable, name: name, rendered: name}
}

// Const constructs a first-order constant term.
func Const(name string) Term {
	return Term{kind: TermConstant, name: name, rendered: name}
}

// Func constructs a function application f(args...). The argument slice is
// copied so the returned Term cannot be mutated through the caller's slice.
func Func(name string, args ...Term) Term {
	owned := make([]Term, len(args))
	copy(owned, args)

	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i, a := range owned {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(a.rendered)
	}
	b.WriteByte(')')

	return Term{kind: TermFunction, name: name, args: owned, rendered: b.String()}
}

// Kind reports whether the term is a variable, constant, or function application.
func (t Term) Kind() TermKind { return t.kind }

// Name returns the variable name, constant name, or function symbol.
func (t Term) Name() string { return t.name }

// Args returns the function's children. Empty for variables and constants.
func (t Term) Args() []Term { return t.args }

// String returns the canonical serialization used for hashing and equality.
func (t Term) String() string { return t.rendered }

// Equal reports whether two terms have identical serialized form.
func (t Term) Equal(other Term) bool { return t.rendered == other.rendered }

// Subterms returns every distinct subterm of t, including t itself, each
// appearing once, in a deterministic post-order (children before parents).
// This is the seed set for the congruence closure's union-find forest.
func (t Term) Subterms() []Term {
	seen := make(map[string]bool)
	var out []Term
	var walk func(Term)
	walk = func(u Term) {
		for _, a := range u.args {
			walk(a)
		}
		if !seen[u.rendered] {
			seen[u.rendered] = true
			out = append(out, u)
		}
	}
	walk(t)
	return out
}

// IsVariable reports whether the term is a first-order variable.
func (t Term) IsVariable() bool { return t.kind == TermVariable }
