package homgroups

import (
	"cmp"
	"slices"
)

// Group is a homogeneous group: no two members differ.
type Group[T comparable] struct {
	// Indices are member positions in the caller's item order, ascending.
	Indices []int
	Members []T
}

// Len returns the number of members.
func (g Group[T]) Len() int { return len(g.Indices) }

// Contains reports whether the item at position i is a member.
func (g Group[T]) Contains(i int) bool {
	_, ok := slices.BinarySearch(g.Indices, i)
	return ok
}

// Cover is the ordered, irredundant set of homogeneous groups for one call.
type Cover[T comparable] struct {
	Items  []T
	Groups []Group[T]

	// MaximalCliques is the number of maximal cliques found before redundant
	// ones were dropped. len(Groups) never exceeds it.
	MaximalCliques int
}

// Covers reports whether some group contains both positions i and j.
func (c *Cover[T]) Covers(i, j int) bool {
	for _, g := range c.Groups {
		if g.Contains(i) && g.Contains(j) {
			return true
		}
	}
	return false
}

// GroupsOf returns the positions in c.Groups of every group containing item i.
func (c *Cover[T]) GroupsOf(i int) []int {
	var out []int
	for k, g := range c.Groups {
		if g.Contains(i) {
			out = append(out, k)
		}
	}
	return out
}

// compareGroups orders groups by smallest member, then larger first, then by
// member sequence.
func compareGroups(a, b []int) int {
	if c := cmp.Compare(a[0], b[0]); c != 0 {
		return c
	}
	if c := cmp.Compare(len(b), len(a)); c != 0 {
		return c
	}
	return slices.Compare(a, b)
}

// reduceCover drops cliques whose members and member pairs are all covered by
// other retained cliques. groups must already be in final order; the result
// keeps that order.
//
// Candidates are tried smallest first and, within a size, last in order
// first. A single pass is enough: counts only go down, so a clique that was
// needed when examined stays needed.
func reduceCover(n int, groups [][]int) [][]int {
	// pair counts are keyed a*n+b and hold only pairs that share a clique
	itemCount := make([]int, n)
	pairCount := make(map[int]int)
	adjust := func(g []int, delta int) {
		for x, a := range g {
			itemCount[a] += delta
			for _, b := range g[x+1:] {
				pairCount[a*n+b] += delta
			}
		}
	}
	for _, g := range groups {
		adjust(g, 1)
	}

	order := make([]int, len(groups))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		if c := cmp.Compare(len(groups[a]), len(groups[b])); c != 0 {
			return c
		}
		return cmp.Compare(b, a)
	})

	removed := make([]bool, len(groups))
	for _, k := range order {
		if !redundant(groups[k], n, itemCount, pairCount) {
			continue
		}
		removed[k] = true
		adjust(groups[k], -1)
	}

	out := make([][]int, 0, len(groups))
	for k, g := range groups {
		if !removed[k] {
			out = append(out, g)
		}
	}
	return out
}

func redundant(g []int, n int, itemCount []int, pairCount map[int]int) bool {
	for x, a := range g {
		if itemCount[a] < 2 {
			return false
		}
		for _, b := range g[x+1:] {
			if pairCount[a*n+b] < 2 {
				return false
			}
		}
	}
	return true
}
