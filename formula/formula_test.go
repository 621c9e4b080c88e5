package formula

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormulaStructuralEquality(t *testing.T) {
	a := And(Var("p"), Not(Var("q")))
	b := And(Var("p"), Not(Var("q")))
	c := And(Var("q"), Not(Var("p")))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestFormulaVars(t *testing.T) {
	f := Implies(And(Var("p"), Var("q")), Or(Var("q"), Var("r")))
	assert.Equal(t, []string{"p", "q", "r"}, f.Vars())
}

func TestFormulaNegateCollapsesDoubleNegation(t *testing.T) {
	f := Var("p")
	require.True(t, f.Negate().Equal(Not(f)))
	require.True(t, f.Negate().Negate().Equal(f))
}

func TestFormulaSubformulasClosure(t *testing.T) {
	f := And(Or(Var("p"), Var("q")), Var("r"))
	subs := f.Subformulas()

	require.Len(t, subs, 2)
	assert.True(t, subs[0].Equal(Or(Var("p"), Var("q"))))
	assert.True(t, subs[1].Equal(f))
}

func TestFormulaEvaluateSkeleton(t *testing.T) {
	f := And(Var("p"), Not(Var("q")))
	v, err := f.EvaluateSkeleton(map[string]bool{"p": true, "q": false})
	require.NoError(t, err)
	assert.True(t, v)

	v, err = f.EvaluateSkeleton(map[string]bool{"p": true, "q": true})
	require.NoError(t, err)
	assert.False(t, v)
}

func TestFormulaEvaluateSkeletonRejectsQuantifiers(t *testing.T) {
	f := ForAll("x", Var("p"))
	_, err := f.EvaluateSkeleton(map[string]bool{"p": true})
	require.Error(t, err)
}

func TestFormulaIsQuantified(t *testing.T) {
	assert.False(t, And(Var("p"), Var("q")).IsQuantified())
	assert.True(t, Exists("x", Equal(Var("x"), Const("a"))).IsQuantified())
}

func TestTermSubterms(t *testing.T) {
	tm := Func("f", Func("g", Const("a")), Var("x"))
	subs := tm.Subterms()

	var rendered []string
	for _, s := range subs {
		rendered = append(rendered, s.String())
	}
	assert.Equal(t, []string{"a", "g(a)", "x", "f(g(a),x)"}, rendered)
}

func TestAtomsDeduplicatedAndSorted(t *testing.T) {
	e1 := Equal(Var("x"), Const("a"))
	e2 := Equal(Var("x"), Const("a"))
	e3 := Equal(Var("y"), Const("b"))

	f := And(e1, Or(e2, e3))
	atoms := f.Atoms()
	require.Len(t, atoms, 2)
	assert.Equal(t, "x=a", atoms[0].String())
	assert.Equal(t, "y=b", atoms[1].String())
}

// Deep-equality check over the whole Vars() slice rather than a single
// field, so a mismatch reports exactly which position and value diverged.
func TestFormulaVarsDeepEquality(t *testing.T) {
	f := Iff(Xor(Var("a"), Var("b")), And(Var("c"), Not(Var("a"))))
	want := []string{"a", "b", "c"}
	if diff := cmp.Diff(want, f.Vars()); diff != "" {
		t.Fatalf("Vars() mismatch (-want +got):\n%s", diff)
	}
}
