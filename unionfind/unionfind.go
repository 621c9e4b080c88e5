// Package unionfind implements a path-compressed, union-by-size
// disjoint-set forest: one node per syntactic subterm of a formula, its
// own parent on creation, scoped to a single congruence-closure check and
// discarded afterward.
package unionfind

import "github.com/marrowdale/satsmt/formula"

// node is one disjoint-set tree node, keyed by its term's canonical string.
type node struct {
	term   formula.Term
	parent string
	size   int
}

// Forest is a union-find structure over formula.Term values, indexed by
// each term's canonical serialization: two terms are equal iff their
// serialized forms are equal.
type Forest struct {
	nodes map[string]*node
}

// New returns an empty forest.
func New() *Forest {
	return &Forest{nodes: make(map[string]*node)}
}

// Seed adds terms to the forest, each starting in its own singleton set
// (parent equal to itself, size 1). A term already present is left
// untouched.
func (f *Forest) Seed(terms ...formula.Term) {
	for _, t := range terms {
		key := t.String()
		if _, ok := f.nodes[key]; ok {
			continue
		}
		f.nodes[key] = &node{term: t, parent: key, size: 1}
	}
}

// Find returns the canonical representative (root key) of t's set, path
// compressing along the way. Find panics if t was never seeded — the
// congruence-closure routine always seeds every subterm, one node each,
// before querying.
func (f *Forest) Find(t formula.Term) string {
	return f.find(t.String())
}

func (f *Forest) find(key string) string {
	n, ok := f.nodes[key]
	if !ok {
		panic("unionfind: Find called on a term that was never seeded: " + key)
	}
	if n.parent == key {
		return key
	}
	root := f.find(n.parent)
	n.parent = root // path compression
	return root
}

// Union merges the sets containing a and b, attaching the smaller tree's
// root under the larger's (union-by-size) and reports whether a merge
// actually occurred (false if a and b were already in the same set).
func (f *Forest) Union(a, b formula.Term) bool {
	ra, rb := f.find(a.String()), f.find(b.String())
	if ra == rb {
		return false
	}

	na, nb := f.nodes[ra], f.nodes[rb]
	if na.size < nb.size {
		na, nb = nb, na
		ra, rb = rb, ra
	}
	nb.parent = ra
	na.size += nb.size
	return true
}

// Connected reports whether a and b share a root, i.e. are known-equal
// under the unions performed so far.
func (f *Forest) Connected(a, b formula.Term) bool {
	return f.Find(a) == f.Find(b)
}
