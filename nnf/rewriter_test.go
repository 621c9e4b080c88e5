package nnf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marrowdale/satsmt/formula"
)

func TestToNNFEliminatesIff(t *testing.T) {
	f := formula.Iff(formula.Var("p"), formula.Var("q"))
	n := ToNNF(f)

	// (~p|q) & (~q|p)
	assert.Equal(t, formula.KindAnd, n.Kind())
	left, right := n.Operands()
	assert.Equal(t, formula.KindOr, left.Kind())
	assert.Equal(t, formula.KindOr, right.Kind())
}

func TestToNNFPushesNegationThroughAnd(t *testing.T) {
	f := formula.Not(formula.And(formula.Var("p"), formula.Var("q")))
	n := ToNNF(f)

	assert.Equal(t, formula.KindOr, n.Kind())
	left, right := n.Operands()
	assert.True(t, left.Equal(formula.Not(formula.Var("p"))))
	assert.True(t, right.Equal(formula.Not(formula.Var("q"))))
}

func TestToNNFCollapsesDoubleNegation(t *testing.T) {
	f := formula.Not(formula.Not(formula.Var("p")))
	n := ToNNF(f)
	assert.True(t, n.Equal(formula.Var("p")))
}

func TestToNNFIsIdempotent(t *testing.T) {
	f := formula.Iff(formula.Xor(formula.Var("p"), formula.Var("q")), formula.Nand(formula.Var("r"), formula.Var("s")))
	once := ToNNF(f)
	twice := ToNNF(once)
	assert.True(t, once.Equal(twice))
}

func TestToClausesAlreadyClauseShaped(t *testing.T) {
	f := formula.Or(formula.Var("p"), formula.Or(formula.Var("q"), formula.Not(formula.Var("r"))))
	clauses := ToClauses(f)
	require.Len(t, clauses, 1)
	assert.Len(t, clauses[0], 3)
}

func TestToClausesDistributesOnlyWhenNeeded(t *testing.T) {
	// (p&q) | r  requires distribution: (p|r) & (q|r)
	f := formula.Or(formula.And(formula.Var("p"), formula.Var("q")), formula.Var("r"))
	clauses := ToClauses(f)
	require.Len(t, clauses, 2)
	for _, c := range clauses {
		assert.Len(t, c, 2)
	}
}

func TestToClausesNandExpansion(t *testing.T) {
	f := formula.Nand(formula.Var("p"), formula.Var("q"))
	clauses := ToClauses(f)
	require.Len(t, clauses, 1)
	assert.Len(t, clauses[0], 2)
}
