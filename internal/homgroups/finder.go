package homgroups

import (
	"slices"
)

// FindHomogeneousGroups returns the irredundant cover of homogeneous groups
// for items under rel.
//
// Every group is a maximal clique of the compatibility graph. Every pair that
// does not differ shares at least one group, every item appears in at least
// one group (an item that differs from all others gets a singleton group), and
// no group can be removed without losing one of those guarantees.
//
// Groups are ordered by smallest member position, then size descending, then
// member positions lexicographically, so identical input yields identical
// output.
//
// All validation happens before enumeration. Bad items or relation shape
// yield an *InvalidInputError, asymmetric or reflexive verdicts an
// *InconsistentRelationError.
func FindHomogeneousGroups[T comparable](items []T, rel Relation[T]) (*Cover[T], error) {
	if err := validate(items, rel); err != nil {
		return nil, err
	}

	g, err := newCompatGraph(items, rel)
	if err != nil {
		return nil, err
	}

	cliques := g.maximalCliques()
	groups := make([][]int, 0, len(cliques))
	for _, c := range cliques {
		groups = append(groups, members(c))
	}
	slices.SortFunc(groups, compareGroups)

	kept := reduceCover(len(items), groups)

	cover := &Cover[T]{
		Items:          slices.Clone(items),
		Groups:         make([]Group[T], 0, len(kept)),
		MaximalCliques: len(groups),
	}
	for _, idx := range kept {
		m := make([]T, len(idx))
		for k, i := range idx {
			m[k] = items[i]
		}
		cover.Groups = append(cover.Groups, Group[T]{Indices: idx, Members: m})
	}
	return cover, nil
}

func validate[T comparable](items []T, rel Relation[T]) error {
	if len(items) == 0 {
		return invalidf("no items")
	}
	if rel == nil {
		return invalidf("relation is nil")
	}
	if f, ok := rel.(RelationFunc[T]); ok && f == nil {
		return invalidf("relation is nil")
	}

	index := make(map[T]int, len(items))
	for i, it := range items {
		if prev, ok := index[it]; ok {
			return invalidf("duplicate item %v at positions %d and %d", it, prev, i)
		}
		index[it] = i
	}

	if sc, ok := rel.(shapeChecker[T]); ok {
		return sc.checkShape(items, index)
	}
	return nil
}
