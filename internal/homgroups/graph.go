package homgroups

import (
	"github.com/bits-and-blooms/bitset"
)

// compatGraph is the compatibility graph over item positions: adj[i] has bit j
// set iff items i and j do not differ. It is built per call and never shared.
type compatGraph struct {
	n   uint
	adj []*bitset.BitSet
}

// newCompatGraph queries rel once in each direction for every unordered pair
// and fails on the first asymmetric answer.
func newCompatGraph[T comparable](items []T, rel Relation[T]) (*compatGraph, error) {
	n := uint(len(items))
	g := &compatGraph{n: n, adj: make([]*bitset.BitSet, n)}
	for i := range g.adj {
		g.adj[i] = bitset.New(n)
	}

	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			ab := rel.Differs(items[i], items[j])
			ba := rel.Differs(items[j], items[i])
			if ab != ba {
				return nil, inconsistentf("differs(%v, %v) = %t but differs(%v, %v) = %t",
					items[i], items[j], ab, items[j], items[i], ba)
			}
			if !ab {
				g.adj[i].Set(uint(j))
				g.adj[j].Set(uint(i))
			}
		}
	}
	return g, nil
}

func (g *compatGraph) compatible(i, j int) bool {
	return g.adj[i].Test(uint(j))
}

// bkFrame is one level of the Bron-Kerbosch search: clique-so-far r,
// candidates p, excluded x, and the pivot-filtered vertices still to expand.
type bkFrame struct {
	r, p, x *bitset.BitSet
	cands   []uint
	next    int
}

// maximalCliques enumerates every maximal clique using Bron-Kerbosch with
// pivoting. The search keeps its own stack so depth is bounded by the heap,
// not the goroutine stack.
func (g *compatGraph) maximalCliques() []*bitset.BitSet {
	all := bitset.New(g.n)
	for i := uint(0); i < g.n; i++ {
		all.Set(i)
	}

	var out []*bitset.BitSet
	stack := []*bkFrame{g.frame(bitset.New(g.n), all, bitset.New(g.n))}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		if f.next == len(f.cands) {
			stack = stack[:len(stack)-1]
			continue
		}

		v := f.cands[f.next]
		f.next++

		nv := g.adj[v]
		r := f.r.Clone().Set(v)
		p := f.p.Intersection(nv)
		x := f.x.Intersection(nv)

		// v is done at this level: later siblings must not re-add it
		f.p.Clear(v)
		f.x.Set(v)

		switch {
		case p.None() && x.None():
			out = append(out, r)
		case p.None():
			// r extends only into already explored vertices, not maximal here
		default:
			stack = append(stack, g.frame(r, p, x))
		}
	}
	return out
}

// frame picks the pivot u in p∪x with the most neighbours in p (lowest index
// on ties) and schedules p minus N(u) for expansion.
func (g *compatGraph) frame(r, p, x *bitset.BitSet) *bkFrame {
	var pivot uint
	best := -1
	px := p.Union(x)
	for u, ok := px.NextSet(0); ok; u, ok = px.NextSet(u + 1) {
		if c := int(p.IntersectionCardinality(g.adj[u])); c > best {
			pivot, best = u, c
		}
	}

	ext := p.Difference(g.adj[pivot])
	cands := make([]uint, 0, ext.Count())
	for v, ok := ext.NextSet(0); ok; v, ok = ext.NextSet(v + 1) {
		cands = append(cands, v)
	}
	return &bkFrame{r: r, p: p, x: x, cands: cands}
}

// members returns the set bits of b as ascending item positions.
func members(b *bitset.BitSet) []int {
	out := make([]int, 0, b.Count())
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}
