package homgroups

import (
	"errors"
	"reflect"
	"sync"
	"testing"
)

func TestLabelHomogeneousGroups(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		items      []string
		rel        Relation[string]
		wantLabels [][]int
		wantGroups int
	}{
		{
			name:       "nothing differs",
			items:      []string{"A", "B", "C"},
			rel:        pairs(),
			wantLabels: [][]int{{1}, {1}, {1}},
			wantGroups: 1,
		},
		{
			name:       "one differing pair",
			items:      []string{"A", "B", "C"},
			rel:        pairs("A-B"),
			wantLabels: [][]int{{1}, {2}, {1, 2}},
			wantGroups: 2,
		},
		{
			name:       "four cycle",
			items:      []string{"A", "B", "C", "D"},
			rel:        pairs("A-D", "B-C"),
			wantLabels: [][]int{{1, 2}, {1, 3}, {2, 4}, {3, 4}},
			wantGroups: 4,
		},
		{
			name:       "single item",
			items:      []string{"A"},
			rel:        pairs(),
			wantLabels: [][]int{{1}},
			wantGroups: 1,
		},
		{
			name:       "central triangle dropped",
			items:      []string{"a", "b", "c", "x", "y", "z"},
			rel:        pairs("x-c", "x-y", "x-z", "y-a", "y-z", "z-b"),
			wantLabels: [][]int{{1, 2}, {1, 3}, {2, 3}, {1}, {3}, {2}},
			wantGroups: 3,
		},
		{
			name:  "matrix input",
			items: []string{"A", "B", "C"},
			rel: NewMatrixRelation([]string{"A", "B", "C"}, [][]bool{
				{false, true, false},
				{true, false, false},
				{false, false, false},
			}),
			wantLabels: [][]int{{1}, {2}, {1, 2}},
			wantGroups: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l, err := LabelHomogeneousGroups(tt.items, tt.rel)
			if err != nil {
				t.Fatalf("LabelHomogeneousGroups: %v", err)
			}
			if !reflect.DeepEqual(l.Labels, tt.wantLabels) {
				t.Errorf("labels = %v, want %v", l.Labels, tt.wantLabels)
			}
			if l.Groups != tt.wantGroups {
				t.Errorf("groups = %d, want %d", l.Groups, tt.wantGroups)
			}
			if !reflect.DeepEqual(l.Items, tt.items) {
				t.Errorf("items = %v, want %v", l.Items, tt.items)
			}

			distinct := make(map[int]bool)
			for _, labels := range l.Labels {
				for _, label := range labels {
					distinct[label] = true
				}
			}
			if len(distinct) != l.Groups {
				t.Errorf("distinct labels = %d, want %d", len(distinct), l.Groups)
			}
		})
	}
}

func TestLabelHomogeneousGroups_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		items   []string
		rel     Relation[string]
		wantErr error
	}{
		{"duplicate items", []string{"A", "A"}, pairs(), ErrInvalidInput},
		{"empty items", []string{}, pairs(), ErrInvalidInput},
		{
			"asymmetric",
			[]string{"A", "B"},
			RelationFunc[string](func(a, _ string) bool { return a == "A" }),
			ErrInconsistentRelation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l, err := LabelHomogeneousGroups(tt.items, tt.rel)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if l != nil {
				t.Error("expected nil labeling on error")
			}
		})
	}
}

func TestLabelCover_MatchesFinderOrder(t *testing.T) {
	t.Parallel()

	items := []string{"0", "1", "2", "3", "4"}
	c, err := FindHomogeneousGroups(items, pairs("0-2", "0-3", "2-3"))
	if err != nil {
		t.Fatalf("FindHomogeneousGroups: %v", err)
	}
	l := LabelCover(c)

	for i := range items {
		var want []int
		for _, k := range c.GroupsOf(i) {
			want = append(want, k+1)
		}
		if !reflect.DeepEqual(l.Labels[i], want) {
			t.Errorf("labels[%d] = %v, want %v", i, l.Labels[i], want)
		}
	}

	memberships := l.Memberships()
	for k, g := range c.Groups {
		if !reflect.DeepEqual(memberships[k], g.Indices) {
			t.Errorf("memberships[%d] = %v, want %v", k, memberships[k], g.Indices)
		}
	}
}

func TestLabeling_LabelsOf(t *testing.T) {
	t.Parallel()

	l, err := LabelHomogeneousGroups([]string{"A", "B", "C"}, pairs("A-B"))
	if err != nil {
		t.Fatalf("LabelHomogeneousGroups: %v", err)
	}

	got, ok := l.LabelsOf("C")
	if !ok {
		t.Fatal("LabelsOf(C) not found")
	}
	if !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("LabelsOf(C) = %v, want [1 2]", got)
	}
	if _, ok := l.LabelsOf("Z"); ok {
		t.Error("LabelsOf(Z) found, want missing")
	}
}

func TestLabelHomogeneousGroups_ConcurrentCallsAgree(t *testing.T) {
	t.Parallel()

	items := []string{"a", "b", "c", "x", "y", "z"}
	rel := pairs("x-c", "x-y", "x-z", "y-a", "y-z", "z-b")

	want, err := LabelHomogeneousGroups(items, rel)
	if err != nil {
		t.Fatalf("LabelHomogeneousGroups: %v", err)
	}

	var wg sync.WaitGroup
	results := make([]*Labeling[string], 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l, err := LabelHomogeneousGroups(items, rel)
			if err != nil {
				t.Errorf("goroutine %d: %v", i, err)
				return
			}
			results[i] = l
		}()
	}
	wg.Wait()

	for i, got := range results {
		if !reflect.DeepEqual(got, want) {
			t.Errorf("goroutine %d labeling = %v, want %v", i, got, want)
		}
	}
}
