// Package nnf implements a negation-normal-form and clause-distribution
// rewriter as a standalone two-stage rewrite: push negations to the
// leaves, then distribute ∨ over ∧ only where the operand actually
// contains a ∧.
package nnf

import (
	"github.com/marrowdale/satsmt/core"
	"github.com/marrowdale/satsmt/formula"
)

// ToNNF rewrites f into negation normal form: an equivalent formula using
// only ¬, ∧, ∨ (plus the atomic leaves: variables, equality atoms, and the
// constants ⊤/⊥) where every ¬ sits directly over an atom or a constant.
// ↔ is eliminated via (A→B)∧(B→A), → via ¬A∨B, ⊕/↑/↓ via their standard
// ∧/∨/¬ expansions, and double negation collapses as it is produced.
//
// ToNNF panics if f contains a quantifier; the NNF rewriter is only ever
// invoked on quantifier-free formulas — the propositional input to the SAT
// entry point, or a Tseitin binding, or a DPLL(T) skeleton, all of which
// are quantifier-free by construction.
func ToNNF(f formula.Formula) formula.Formula {
	return push(f, false)
}

// push returns the NNF of f if negate is false, or of ¬f if negate is true.
// Threading the pending negation through the recursion, rather than
// building ¬f and rewriting it, applies De Morgan and implies/iff/xor
// elimination in the same pass instead of as separate tree rebuilds.
func push(f formula.Formula, negate bool) formula.Formula {
	switch f.Kind() {
	case formula.KindVar, formula.KindEqual:
		if negate {
			return formula.Not(f)
		}
		return f

	case formula.KindTrue:
		if negate {
			return formula.False()
		}
		return formula.True()

	case formula.KindFalse:
		if negate {
			return formula.True()
		}
		return formula.False()

	case formula.KindNot:
		return push(f.Operand(), !negate)

	case formula.KindAnd:
		a, b := f.Operands()
		if negate {
			return formula.Or(push(a, true), push(b, true))
		}
		return formula.And(push(a, false), push(b, false))

	case formula.KindOr:
		a, b := f.Operands()
		if negate {
			return formula.And(push(a, true), push(b, true))
		}
		return formula.Or(push(a, false), push(b, false))

	case formula.KindImplies:
		// a -> b  ==  ~a | b
		a, b := f.Operands()
		if negate {
			return formula.And(push(a, false), push(b, true))
		}
		return formula.Or(push(a, true), push(b, false))

	case formula.KindIff:
		// a <-> b  ==  (~a|b) & (~b|a)
		a, b := f.Operands()
		if negate {
			return formula.Or(formula.And(push(a, false), push(b, true)), formula.And(push(a, true), push(b, false)))
		}
		return formula.And(formula.Or(push(a, true), push(b, false)), formula.Or(push(b, true), push(a, false)))

	case formula.KindXor:
		// a + b  ==  (a & ~b) | (~a & b)
		a, b := f.Operands()
		if negate {
			return formula.And(formula.Or(push(a, true), push(b, false)), formula.Or(push(b, true), push(a, false)))
		}
		return formula.Or(formula.And(push(a, false), push(b, true)), formula.And(push(a, true), push(b, false)))

	case formula.KindNand:
		// a -& b  ==  ~a | ~b
		a, b := f.Operands()
		if negate {
			return formula.And(push(a, false), push(b, false))
		}
		return formula.Or(push(a, true), push(b, true))

	case formula.KindNor:
		// a -| b  ==  ~a & ~b
		a, b := f.Operands()
		if negate {
			return formula.Or(push(a, false), push(b, false))
		}
		return formula.And(push(a, true), push(b, true))

	default:
		panic(core.NewLogicError("nnf", "push", core.KindUnsupportedFragment,
			"quantified formula reached the NNF rewriter"))
	}
}

// ToClauses rewrites f to CNF and flattens the result into a list of
// clauses, each clause a list of literals (a Var, a negated Var, an
// equality atom, a negated equality atom, or a constant). Distribution of
// ∨ over ∧ happens only for an Or node whose operand actually produced more
// than one clause — i.e. actually contains an ∧ — so a subformula that is
// already clause-shaped is never needlessly re-expanded.
func ToClauses(f formula.Formula) [][]formula.Formula {
	return distribute(ToNNF(f))
}

func distribute(f formula.Formula) [][]formula.Formula {
	if f.IsLiteral() || f.Kind() == formula.KindTrue || f.Kind() == formula.KindFalse {
		return [][]formula.Formula{{f}}
	}

	switch f.Kind() {
	case formula.KindAnd:
		a, b := f.Operands()
		return append(distribute(a), distribute(b)...)

	case formula.KindOr:
		a, b := f.Operands()
		left := distribute(a)
		right := distribute(b)
		out := make([][]formula.Formula, 0, len(left)*len(right))
		for _, lc := range left {
			for _, rc := range right {
				merged := make([]formula.Formula, 0, len(lc)+len(rc))
				merged = append(merged, lc...)
				merged = append(merged, rc...)
				out = append(out, merged)
			}
		}
		return out

	default:
		panic(core.NewLogicError("nnf", "distribute", core.KindInternal,
			"non-NNF node reached clause distribution: "+f.String()))
	}
}
