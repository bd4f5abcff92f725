package homgroups

// Relation answers whether two distinct items were found significantly
// different. Implementations must be symmetric; Differs is never called with
// the same item twice.
type Relation[T comparable] interface {
	Differs(a, b T) bool
}

// RelationFunc adapts an ordinary function to a Relation.
type RelationFunc[T comparable] func(a, b T) bool

// Differs implements Relation.
func (f RelationFunc[T]) Differs(a, b T) bool { return f(a, b) }

// shapeChecker is implemented by relations that carry their own data and can
// reject it before the finder starts querying.
type shapeChecker[T comparable] interface {
	checkShape(items []T, index map[T]int) error
}

// PairRelation is built from the list of pairs that differ. A listed pair
// differs in both directions; every other pair does not.
type PairRelation[T comparable] struct {
	pairs map[[2]T]struct{}
	order [][2]T
}

// NewPairRelation returns a relation in which exactly the given pairs differ.
// The slice is copied.
func NewPairRelation[T comparable](pairs [][2]T) *PairRelation[T] {
	r := &PairRelation[T]{
		pairs: make(map[[2]T]struct{}, len(pairs)),
		order: make([][2]T, len(pairs)),
	}
	copy(r.order, pairs)
	for _, p := range pairs {
		r.pairs[p] = struct{}{}
	}
	return r
}

// Differs implements Relation.
func (r *PairRelation[T]) Differs(a, b T) bool {
	if _, ok := r.pairs[[2]T{a, b}]; ok {
		return true
	}
	_, ok := r.pairs[[2]T{b, a}]
	return ok
}

// Len returns the number of pairs the relation was built from.
func (r *PairRelation[T]) Len() int { return len(r.order) }

func (r *PairRelation[T]) checkShape(_ []T, index map[T]int) error {
	if r == nil {
		return invalidf("relation is nil")
	}
	for i, p := range r.order {
		if _, ok := index[p[0]]; !ok {
			return invalidf("difference pair %d references unknown item %v", i, p[0])
		}
		if _, ok := index[p[1]]; !ok {
			return invalidf("difference pair %d references unknown item %v", i, p[1])
		}
		if p[0] == p[1] {
			return inconsistentf("item %v is marked as different from itself", p[0])
		}
	}
	return nil
}

// MatrixRelation is a square boolean matrix over a list of items where
// m[i][j] reports whether items[i] and items[j] differ.
type MatrixRelation[T comparable] struct {
	items []T
	pos   map[T]int
	m     [][]bool
}

// NewMatrixRelation returns a relation backed by m, indexed by the positions
// of items. Shape problems are reported when the relation is used.
func NewMatrixRelation[T comparable](items []T, m [][]bool) *MatrixRelation[T] {
	pos := make(map[T]int, len(items))
	for i, it := range items {
		pos[it] = i
	}
	return &MatrixRelation[T]{items: items, pos: pos, m: m}
}

// Differs implements Relation. Unknown items and out-of-range cells never
// differ; checkShape rejects those before any query is made.
func (r *MatrixRelation[T]) Differs(a, b T) bool {
	i, ok := r.pos[a]
	if !ok {
		return false
	}
	j, ok := r.pos[b]
	if !ok {
		return false
	}
	if i >= len(r.m) || j >= len(r.m[i]) {
		return false
	}
	return r.m[i][j]
}

func (r *MatrixRelation[T]) checkShape(items []T, _ map[T]int) error {
	if r == nil {
		return invalidf("relation is nil")
	}
	if len(r.pos) != len(r.items) {
		return invalidf("matrix items contain duplicates")
	}
	if len(r.m) != len(r.items) {
		return invalidf("matrix has %d rows for %d items", len(r.m), len(r.items))
	}
	for i, row := range r.m {
		if len(row) != len(r.items) {
			return invalidf("matrix row %d has %d columns, want %d", i, len(row), len(r.items))
		}
	}
	for _, it := range items {
		p, ok := r.pos[it]
		if !ok {
			return invalidf("item %v is not part of the matrix", it)
		}
		if r.m[p][p] {
			return inconsistentf("item %v is marked as different from itself", it)
		}
	}
	return nil
}
