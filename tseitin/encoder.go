// Package tseitin implements an equisatisfiable CNF encoder: it assigns a
// fresh Boolean name to every non-literal subformula, emits binding
// clauses tying each fresh name to its subformula's connective, and
// asserts the root. Walking the closure of subformulas rather than a
// fixed set of hand-coded gate cases means the encoder needs no special
// case per connective beyond the one-level binding it emits for each.
package tseitin

import (
	"fmt"

	"github.com/marrowdale/satsmt/cnf"
	"github.com/marrowdale/satsmt/core"
	"github.com/marrowdale/satsmt/formula"
	"github.com/marrowdale/satsmt/nnf"
)

// Generator produces fresh proposition names deterministically within a
// single solve. Names are drawn from a namespace ("_g0", "_g1", ...) that
// cannot collide with a parsed proposition name: a propositional variable
// must start with a lowercase letter, and an equality atom's proposition
// name always contains '='.
//
// A Generator's lifetime is bounded by one top-level solve; it carries no
// state beyond its own counter and is never shared across solves.
type Generator struct {
	next int
}

// NewGenerator returns a Generator starting at _g0.
func NewGenerator() *Generator {
	return &Generator{}
}

// Fresh returns the next fresh name and advances the counter.
func (g *Generator) Fresh() string {
	name := fmt.Sprintf("_g%d", g.next)
	g.next++
	return name
}

// Encode compiles phi into an equisatisfiable CNF formula over an
// extended signature (phi's original atoms plus gen's fresh names): the
// closure of phi's subformulas is computed, each non-literal subformula is
// bound to a fresh name via an ↔ constraint rewritten to clauses by the
// nnf package, and a unit clause asserts the root. The returned store has
// already been normalized (tautologies dropped) by cnf.Formula.AddClause.
func Encode(phi formula.Formula, gen *Generator, model formula.Model) *cnf.Formula {
	names := make(map[string]string) // canonical subformula string -> proposition name
	var trueVar, falseVar string

	store := cnf.NewFormula(nil)

	// nameOf returns the literal (name, negated) that stands for f within
	// a binding clause or the root assertion, allocating fresh constant
	// props lazily and resolving Not-of-atomic by direct sign flip rather
	// than by gensym: a literal subformula maps to itself, never to a fresh
	// name.
	var nameOf func(f formula.Formula) cnf.Literal
	nameOf = func(f formula.Formula) cnf.Literal {
		switch f.Kind() {
		case formula.KindVar:
			return cnf.Pos(f.Name())

		case formula.KindEqual:
			return cnf.Pos(f.String())

		case formula.KindTrue:
			if trueVar == "" {
				trueVar = gen.Fresh()
				store.AddClause(cnf.NewClause(cnf.Pos(trueVar)), model)
			}
			return cnf.Pos(trueVar)

		case formula.KindFalse:
			if falseVar == "" {
				falseVar = gen.Fresh()
				store.AddClause(cnf.NewClause(cnf.Neg(falseVar)), model)
			}
			return cnf.Pos(falseVar)

		case formula.KindNot:
			inner := f.Operand()
			if inner.IsAtomic() {
				return nameOf(inner).Negate()
			}
			return cnf.Pos(names[f.String()])

		default:
			return cnf.Pos(names[f.String()])
		}
	}

	// representative returns the formula that should stand for child within
	// a one-level binding: child itself if it is already a literal, or a
	// reference to child's own fresh name otherwise. This stops the binding
	// from re-exposing a nested subformula's internal structure — each
	// child is opaque, spoken for entirely by its own (already emitted)
	// binding clauses, so a binding g <-> (g1 star g2) always refers to its
	// children's fresh names, never to their trees.
	representative := func(child formula.Formula) formula.Formula {
		if child.IsLiteral() {
			return child
		}
		return formula.Var(names[child.String()])
	}

	// shallow rebuilds s with every non-literal child replaced by its
	// representative, so the one-level connective is all that reaches the
	// NNF rewriter for this binding.
	shallow := func(s formula.Formula) formula.Formula {
		switch s.Kind() {
		case formula.KindNot:
			return formula.Not(representative(s.Operand()))
		case formula.KindAnd:
			a, b := s.Operands()
			return formula.And(representative(a), representative(b))
		case formula.KindOr:
			a, b := s.Operands()
			return formula.Or(representative(a), representative(b))
		case formula.KindImplies:
			a, b := s.Operands()
			return formula.Implies(representative(a), representative(b))
		case formula.KindIff:
			a, b := s.Operands()
			return formula.Iff(representative(a), representative(b))
		case formula.KindXor:
			a, b := s.Operands()
			return formula.Xor(representative(a), representative(b))
		case formula.KindNand:
			a, b := s.Operands()
			return formula.Nand(representative(a), representative(b))
		case formula.KindNor:
			a, b := s.Operands()
			return formula.Nor(representative(a), representative(b))
		default:
			panic(core.NewLogicError("tseitin", "shallow", core.KindInternal,
				"non-connective node reached Tseitin binding construction: "+s.String()))
		}
	}

	// emitBinding rewrites g <-> connective(children...) to clauses and
	// adds each to the store.
	emitBinding := func(name string, s formula.Formula) {
		binding := formula.Iff(formula.Var(name), shallow(s))
		for _, clause := range nnf.ToClauses(binding) {
			lits := make([]cnf.Literal, 0, len(clause))
			for _, lit := range clause {
				lits = append(lits, nameOf(lit))
			}
			store.AddClause(cnf.NewClause(lits...), model)
		}
	}

	// phi.Subformulas() already excludes literals (IsLiteral() nodes): the
	// closure it returns is exactly the non-literal worklist this encoder
	// needs, in post-order, so every child is already named by the time its
	// parent is processed.
	for _, s := range phi.Subformulas() {
		name := gen.Fresh()
		names[s.String()] = name
		emitBinding(name, s)
	}

	root := nameOf(phi)
	store.AddClause(cnf.NewClause(root), model)

	return store
}
