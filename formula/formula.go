package formula

import (
	"fmt"
	"sort"
	"strings"

	"github.com/marrowdale/satsmt/core"
)

// Kind identifies the shape of a Formula node.
type Kind int

// The connective set is {¬, ∧, ∨, →, ↔, ⊕, ↑, ↓} plus the constants {⊤, ⊥},
// plus the first-order additions (equality atoms and quantifiers, accepted
// by the parser but rejected by the quantifier-free SMT core).
const (
	KindVar Kind = iota
	KindTrue
	KindFalse
	KindNot
	KindAnd
	KindOr
	KindImplies
	KindIff
	KindXor
	KindNand
	KindNor
	KindEqual
	KindForAll
	KindExists
)

func (k Kind) String() string {
	switch k {
	case KindVar:
		return "var"
	case KindTrue:
		return "T"
	case KindFalse:
		return "F"
	case KindNot:
		return "~"
	case KindAnd:
		return "&"
	case KindOr:
		return "|"
	case KindImplies:
		return "->"
	case KindIff:
		return "<->"
	case KindXor:
		return "+"
	case KindNand:
		return "-&"
	case KindNor:
		return "-|"
	case KindEqual:
		return "="
	case KindForAll:
		return "A"
	case KindExists:
		return "E"
	default:
		return "?"
	}
}

// Formula is an immutable node in a propositional or first-order formula
// tree. Binary/unary connectives carry their operands in Children; KindVar
// carries a proposition name; KindEqual carries the two term operands;
// KindForAll/KindExists carry a bound variable name and a single child
// (the quantifier body).
type Formula struct {
	kind     Kind
	name     string
	children []Formula
	lhs, rhs Term
	rendered string
}

// Var constructs an atomic propositional variable, interned by content:
// two Var("p") values compare equal regardless of where they were built.
func Var(name string) Formula {
	return Formula{kind: KindVar, name: name, rendered: name}
}

// True constructs the constant ⊤.
func True() Formula { return Formula{kind: KindTrue, rendered: "T"} }

// False constructs the constant ⊥.
func False() Formula { return Formula{kind: KindFalse, rendered: "F"} }

func unary(k Kind, sym string, a Formula) Formula {
	return Formula{kind: k, children: []Formula{a}, rendered: sym + "(" + a.rendered + ")"}
}

func binary(k Kind, sym string, a, b Formula) Formula {
	return Formula{
		kind:     k,
		children: []Formula{a, b},
		rendered: "(" + a.rendered + " " + sym + " " + b.rendered + ")",
	}
}

// Not constructs ¬a.
func Not(a Formula) Formula { return unary(KindNot, "~", a) }

// And constructs a∧b.
func And(a, b Formula) Formula { return binary(KindAnd, "&", a, b) }

// Or constructs a∨b.
func Or(a, b Formula) Formula { return binary(KindOr, "|", a, b) }

// Implies constructs a→b.
func Implies(a, b Formula) Formula { return binary(KindImplies, "->", a, b) }

// Iff constructs a↔b.
func Iff(a, b Formula) Formula { return binary(KindIff, "<->", a, b) }

// Xor constructs a⊕b.
func Xor(a, b Formula) Formula { return binary(KindXor, "+", a, b) }

// Nand constructs a↑b.
func Nand(a, b Formula) Formula { return binary(KindNand, "-&", a, b) }

// Nor constructs a↓b.
func Nor(a, b Formula) Formula { return binary(KindNor, "-|", a, b) }

// Equal constructs the first-order equality atom t1=t2.
func Equal(t1, t2 Term) Formula {
	return Formula{kind: KindEqual, lhs: t1, rhs: t2, rendered: t1.String() + "=" + t2.String()}
}

// ForAll constructs the quantified formula A[v] body. Quantifiers are
// accepted by the parser but rejected by the SMT entry point.
func ForAll(v string, body Formula) Formula {
	return Formula{kind: KindForAll, name: v, children: []Formula{body}, rendered: "A[" + v + "](" + body.rendered + ")"}
}

// Exists constructs the quantified formula E[v] body.
func Exists(v string, body Formula) Formula {
	return Formula{kind: KindExists, name: v, children: []Formula{body}, rendered: "E[" + v + "](" + body.rendered + ")"}
}

// Kind reports the node's shape.
func (f Formula) Kind() Kind { return f.kind }

// Name returns the proposition name (KindVar) or bound variable (quantifiers).
func (f Formula) Name() string { return f.name }

// Children returns the operand(s) of a connective or quantifier node. Empty
// for KindVar, KindTrue, KindFalse, and KindEqual.
func (f Formula) Children() []Formula { return f.children }

// Operands returns exactly the two children of a binary connective. Panics
// if f is not binary; callers are expected to switch on Kind first.
func (f Formula) Operands() (Formula, Formula) { return f.children[0], f.children[1] }

// Operand returns the single child of a unary connective or quantifier.
func (f Formula) Operand() Formula { return f.children[0] }

// Sides returns the two term operands of an equality atom.
func (f Formula) Sides() (Term, Term) { return f.lhs, f.rhs }

// String returns the canonical serialization used for hashing and equality.
func (f Formula) String() string { return f.rendered }

// Equal reports whether two formulas have identical serialized form.
func (f Formula) Equal(other Formula) bool { return f.rendered == other.rendered }

// IsAtomic reports whether f is a leaf: a variable, a constant, or an
// equality atom. Atomic nodes are exactly the leaves the Tseitin encoder
// maps to themselves rather than to a fresh name.
func (f Formula) IsAtomic() bool {
	switch f.kind {
	case KindVar, KindTrue, KindFalse, KindEqual:
		return true
	default:
		return false
	}
}

// IsLiteral reports whether f is an atom or the negation of one.
func (f Formula) IsLiteral() bool {
	if f.IsAtomic() {
		return true
	}
	return f.kind == KindNot && f.children[0].IsAtomic()
}

// Negate returns ¬f, collapsing a leading double negation so repeated
// negation never builds up a chain of Not nodes.
func (f Formula) Negate() Formula {
	if f.kind == KindNot {
		return f.children[0]
	}
	return Not(f)
}

// IsQuantified reports whether f or any subformula contains a quantifier.
// The SMT entry point rejects such formulas fast.
func (f Formula) IsQuantified() bool {
	if f.kind == KindForAll || f.kind == KindExists {
		return true
	}
	for _, c := range f.children {
		if c.IsQuantified() {
			return true
		}
	}
	return false
}

// Vars returns the sorted, de-duplicated set of propositional variable
// names (KindVar leaves) occurring in f.
func (f Formula) Vars() []string {
	seen := map[string]bool{}
	var walk func(Formula)
	walk = func(g Formula) {
		if g.kind == KindVar {
			seen[g.name] = true
		}
		for _, c := range g.children {
			walk(c)
		}
	}
	walk(f)
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Atoms returns the sorted, de-duplicated set of equality atoms (KindEqual
// nodes) occurring in f, keyed by their canonical string.
func (f Formula) Atoms() []Formula {
	seen := map[string]Formula{}
	var walk func(Formula)
	walk = func(g Formula) {
		if g.kind == KindEqual {
			seen[g.rendered] = g
		}
		for _, c := range g.children {
			walk(c)
		}
	}
	walk(f)
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Formula, len(keys))
	for i, k := range keys {
		out[i] = seen[k]
	}
	return out
}

// Subformulas returns the closure of f's non-literal subformulas
// (including f itself if it is non-literal), each appearing once, in
// post-order (children before parents). This is the worklist the Tseitin
// encoder assigns fresh names to.
func (f Formula) Subformulas() []Formula {
	seen := map[string]bool{}
	var out []Formula
	var walk func(Formula)
	walk = func(g Formula) {
		for _, c := range g.children {
			walk(c)
		}
		if !g.IsLiteral() && !seen[g.rendered] {
			seen[g.rendered] = true
			out = append(out, g)
		}
	}
	walk(f)
	return out
}

// EvaluateSkeleton evaluates f's Boolean structure under an atom-level
// model: a mapping from a leaf's canonical string (a KindVar's name, or a
// KindEqual atom's rendered form) to a truth value. It is used both to
// check SAT models (every leaf is a KindVar) and, via the DPLL(T)
// orchestrator, to check a lifted first-order model (leaves may also be
// KindEqual atoms). Quantified formulas are rejected: the SMT core is
// quantifier-free only.
func (f Formula) EvaluateSkeleton(model map[string]bool) (bool, error) {
	switch f.kind {
	case KindTrue:
		return true, nil
	case KindFalse:
		return false, nil
	case KindVar, KindEqual:
		v, ok := model[f.rendered]
		if !ok {
			return false, core.NewLogicError("formula", "Formula.EvaluateSkeleton",
				core.KindInternal, fmt.Sprintf("no assignment for atom %q", f.rendered))
		}
		return v, nil
	case KindNot:
		v, err := f.children[0].EvaluateSkeleton(model)
		if err != nil {
			return false, err
		}
		return !v, nil
	case KindAnd, KindOr, KindImplies, KindIff, KindXor, KindNand, KindNor:
		a, err := f.children[0].EvaluateSkeleton(model)
		if err != nil {
			return false, err
		}
		b, err := f.children[1].EvaluateSkeleton(model)
		if err != nil {
			return false, err
		}
		return applyBinary(f.kind, a, b), nil
	default:
		return false, core.NewLogicError("formula", "Formula.EvaluateSkeleton",
			core.KindUnsupportedFragment, "quantified formulas have no Boolean skeleton value")
	}
}

func applyBinary(k Kind, a, b bool) bool {
	switch k {
	case KindAnd:
		return a && b
	case KindOr:
		return a || b
	case KindImplies:
		return !a || b
	case KindIff:
		return a == b
	case KindXor:
		return a != b
	case KindNand:
		return !(a && b)
	case KindNor:
		return !(a || b)
	default:
		panic("formula: applyBinary called with non-binary kind " + k.String())
	}
}

// Pretty renders f using a fully-parenthesized concrete syntax, for use by
// callers building error messages or traces. It is intentionally distinct
// from String, which renders the canonical hash/equality key.
func (f Formula) Pretty() string {
	var b strings.Builder
	writePretty(&b, f)
	return b.String()
}

func writePretty(b *strings.Builder, f Formula) {
	switch f.kind {
	case KindTrue:
		b.WriteByte('T')
	case KindFalse:
		b.WriteByte('F')
	case KindVar:
		b.WriteString(f.name)
	case KindEqual:
		b.WriteString(f.lhs.String())
		b.WriteByte('=')
		b.WriteString(f.rhs.String())
	case KindNot:
		b.WriteByte('~')
		writePretty(b, f.children[0])
	case KindForAll, KindExists:
		b.WriteString(f.kind.String())
		b.WriteByte('[')
		b.WriteString(f.name)
		b.WriteString("](")
		writePretty(b, f.children[0])
		b.WriteByte(')')
	default:
		b.WriteByte('(')
		writePretty(b, f.children[0])
		b.WriteByte(' ')
		b.WriteString(f.kind.String())
		b.WriteByte(' ')
		writePretty(b, f.children[1])
		b.WriteByte(')')
	}
}
