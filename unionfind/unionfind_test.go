package unionfind

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marrowdale/satsmt/formula"
)

func TestSeedStartsEachTermInItsOwnSet(t *testing.T) {
	f := New()
	a, b := formula.Const("a"), formula.Const("b")
	f.Seed(a, b)
	assert.False(t, f.Connected(a, b))
}

func TestUnionMergesTwoSets(t *testing.T) {
	f := New()
	a, b := formula.Const("a"), formula.Const("b")
	f.Seed(a, b)

	merged := f.Union(a, b)
	assert.True(t, merged)
	assert.True(t, f.Connected(a, b))
}

func TestUnionIsTransitive(t *testing.T) {
	f := New()
	a, b, c := formula.Const("a"), formula.Const("b"), formula.Const("c")
	f.Seed(a, b, c)

	f.Union(a, b)
	f.Union(b, c)
	assert.True(t, f.Connected(a, c))
}

func TestUnionOfAlreadyConnectedTermsReportsNoMerge(t *testing.T) {
	f := New()
	a, b := formula.Const("a"), formula.Const("b")
	f.Seed(a, b)
	f.Union(a, b)

	again := f.Union(a, b)
	assert.False(t, again)
}

func TestSeedIsIdempotentAndPreservesExistingUnions(t *testing.T) {
	f := New()
	a, b := formula.Const("a"), formula.Const("b")
	f.Seed(a, b)
	f.Union(a, b)

	f.Seed(a, b) // re-seeding must not reset the set
	assert.True(t, f.Connected(a, b))
}

func TestFindPathCompressesThroughAChain(t *testing.T) {
	f := New()
	terms := []formula.Term{formula.Const("a"), formula.Const("b"), formula.Const("c"), formula.Const("d")}
	f.Seed(terms...)
	f.Union(terms[0], terms[1])
	f.Union(terms[1], terms[2])
	f.Union(terms[2], terms[3])

	root := f.Find(terms[0])
	for _, term := range terms[1:] {
		assert.Equal(t, root, f.Find(term))
	}
}

func TestFindPanicsOnUnseededTerm(t *testing.T) {
	f := New()
	assert.Panics(t, func() {
		f.Find(formula.Const("never-seeded"))
	})
}

func TestFunctionApplicationsAreDistinctTermsByDefault(t *testing.T) {
	f := New()
	a := formula.Const("a")
	b := formula.Const("b")
	fa := formula.Func("f", a)
	fb := formula.Func("f", b)
	f.Seed(a, b, fa, fb)

	assert.False(t, f.Connected(fa, fb))
	f.Union(a, b)
	// Union of arguments alone does not congruence-merge f(a) and f(b);
	// that rule belongs to the congruence package (Module H).
	assert.False(t, f.Connected(fa, fb))
}
