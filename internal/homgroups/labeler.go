package homgroups

// Labeling maps each item to the labels of the groups it belongs to. Group k
// of the cover (0-based) carries label k+1.
type Labeling[T comparable] struct {
	Items []T

	// Labels[i] holds the ascending labels of Items[i].
	Labels [][]int

	// Groups is the number of distinct labels.
	Groups int
}

// LabelHomogeneousGroups finds the homogeneous groups of items and labels
// them. Errors are those of FindHomogeneousGroups.
func LabelHomogeneousGroups[T comparable](items []T, rel Relation[T]) (*Labeling[T], error) {
	cover, err := FindHomogeneousGroups(items, rel)
	if err != nil {
		return nil, err
	}
	return LabelCover(cover), nil
}

// LabelCover labels an existing cover in group order.
func LabelCover[T comparable](c *Cover[T]) *Labeling[T] {
	l := &Labeling[T]{
		Items:  c.Items,
		Labels: make([][]int, len(c.Items)),
		Groups: len(c.Groups),
	}
	for k, g := range c.Groups {
		for _, i := range g.Indices {
			l.Labels[i] = append(l.Labels[i], k+1)
		}
	}
	return l
}

// Memberships returns, for each label in order, the item positions carrying
// it.
func (l *Labeling[T]) Memberships() [][]int {
	out := make([][]int, l.Groups)
	for i, labels := range l.Labels {
		for _, label := range labels {
			out[label-1] = append(out[label-1], i)
		}
	}
	return out
}

// LabelsOf returns the labels of item, or false if item is not in the
// labeling.
func (l *Labeling[T]) LabelsOf(item T) ([]int, bool) {
	for i, it := range l.Items {
		if it == item {
			return l.Labels[i], true
		}
	}
	return nil, false
}
