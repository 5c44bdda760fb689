package bst

import (
	"math/rand"
	"slices"
	"testing"
)

// actions extracts the action sequence from a trace.
func actions(steps []Step) []Action {
	out := make([]Action, len(steps))
	for i, s := range steps {
		out[i] = s.Action
	}
	return out
}

func TestInsertEmptyTree(t *testing.T) {
	tr := &Tree{}
	steps := tr.Insert(50)

	want := []Step{{Action: ActionInserted, Value: 50, HasValue: true, Description: "inserted 50"}}
	if len(steps) != 1 || steps[0].Action != want[0].Action || steps[0].Value != 50 || !steps[0].HasValue {
		t.Fatalf("Insert(50) steps = %+v, want single INSERTED step", steps)
	}
	if tr.Root() == nil || tr.Root().Value != 50 {
		t.Fatalf("root = %+v, want node 50", tr.Root())
	}
}

func TestInsertTrace(t *testing.T) {
	tests := []struct {
		name    string
		prior   []int
		value   int
		want    []Action
		size    int
		changed bool
	}{
		{
			name:    "LeftOfRoot",
			prior:   []int{50},
			value:   30,
			want:    []Action{ActionVisited, ActionCompared, ActionMovedLeft, ActionInserted},
			size:    2,
			changed: true,
		},
		{
			name:    "RightOfRoot",
			prior:   []int{50},
			value:   70,
			want:    []Action{ActionVisited, ActionCompared, ActionMovedRight, ActionInserted},
			size:    2,
			changed: true,
		},
		{
			name:  "DepthTwo",
			prior: []int{50, 30},
			value: 40,
			want: []Action{
				ActionVisited, ActionCompared, ActionMovedLeft,
				ActionVisited, ActionCompared, ActionMovedRight,
				ActionInserted,
			},
			size:    3,
			changed: true,
		},
		{
			name:    "DuplicateAtRoot",
			prior:   []int{30},
			value:   30,
			want:    []Action{ActionVisited, ActionCompared, ActionFound},
			size:    1,
			changed: false,
		},
		{
			name:  "DuplicateDeeper",
			prior: []int{50, 30, 70},
			value: 70,
			want: []Action{
				ActionVisited, ActionCompared, ActionMovedRight,
				ActionVisited, ActionCompared, ActionFound,
			},
			size:    3,
			changed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(tt.prior...)
			steps := tr.Insert(tt.value)

			if got := actions(steps); !slices.Equal(got, tt.want) {
				t.Errorf("actions = %v, want %v", got, tt.want)
			}
			if got := tr.Size(); got != tt.size {
				t.Errorf("size = %d, want %d", got, tt.size)
			}
			if tt.changed {
				last := steps[len(steps)-1]
				if last.Action != ActionInserted || last.Value != tt.value {
					t.Errorf("last step = %+v, want INSERTED %d", last, tt.value)
				}
			}
		})
	}
}

func TestInsertDuplicateLeavesTreeUnchanged(t *testing.T) {
	tr := New(30)
	steps := tr.Insert(30)

	last := steps[len(steps)-1]
	if last.Action != ActionFound || last.Value != 30 {
		t.Errorf("last step = %+v, want FOUND 30", last)
	}
	if tr.Size() != 1 || tr.Root().Left != nil || tr.Root().Right != nil {
		t.Errorf("tree changed by duplicate insert: size=%d root=%+v", tr.Size(), tr.Root())
	}
}

func TestSearchTrace(t *testing.T) {
	tests := []struct {
		name  string
		prior []int
		value int
		want  []Action
	}{
		{
			name:  "EmptyTree",
			value: 5,
			want:  []Action{ActionNotFound},
		},
		{
			name:  "HitRoot",
			prior: []int{50, 30, 70},
			value: 50,
			want:  []Action{ActionVisited, ActionCompared, ActionFound},
		},
		{
			name:  "HitLeaf",
			prior: []int{50, 30, 70},
			value: 70,
			want: []Action{
				ActionVisited, ActionCompared, ActionMovedRight,
				ActionVisited, ActionCompared, ActionFound,
			},
		},
		{
			name:  "MissFallsOffRight",
			prior: []int{50, 30, 70},
			value: 99,
			want: []Action{
				ActionVisited, ActionCompared, ActionMovedRight,
				ActionVisited, ActionCompared, ActionMovedRight,
				ActionNotFound,
			},
		},
		{
			name:  "MissFallsOffLeft",
			prior: []int{50, 30, 70},
			value: 20,
			want: []Action{
				ActionVisited, ActionCompared, ActionMovedLeft,
				ActionVisited, ActionCompared, ActionMovedLeft,
				ActionNotFound,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(tt.prior...)
			steps := tr.Search(tt.value)

			if got := actions(steps); !slices.Equal(got, tt.want) {
				t.Errorf("actions = %v, want %v", got, tt.want)
			}

			last := steps[len(steps)-1]
			if last.Action == ActionNotFound && last.HasValue {
				t.Errorf("NOT_FOUND step carries a node: %+v", last)
			}
		})
	}
}

func TestSearchInsertConsistency(t *testing.T) {
	values := []int{50, 30, 70, 20, 40, 60, 80, 10, 45}
	tr := New(values...)

	for _, v := range values {
		steps := tr.Search(v)
		last := steps[len(steps)-1]
		if last.Action != ActionFound || last.Value != v {
			t.Errorf("Search(%d) last step = %+v, want FOUND", v, last)
		}
	}
	for _, v := range []int{-1, 25, 55, 99} {
		steps := tr.Search(v)
		if last := steps[len(steps)-1]; last.Action != ActionNotFound {
			t.Errorf("Search(%d) last step = %+v, want NOT_FOUND", v, last)
		}
	}
}

func TestSearchDoesNotMutate(t *testing.T) {
	tr := New(50, 30, 70)
	before := tr.Values()
	tr.Search(99)
	tr.Search(30)
	if after := tr.Values(); !slices.Equal(before, after) {
		t.Errorf("values changed by search: %v -> %v", before, after)
	}
}

func TestClear(t *testing.T) {
	tr := New(50, 30, 70, 20, 40)
	tr.Clear()
	if !tr.Empty() {
		t.Fatal("tree not empty after Clear")
	}

	// Idempotent on an empty tree.
	tr.Clear()
	if !tr.Empty() {
		t.Fatal("tree not empty after second Clear")
	}

	steps := tr.Insert(99)
	if len(steps) != 1 || steps[0].Action != ActionInserted {
		t.Fatalf("Insert(99) after Clear = %+v, want single INSERTED", steps)
	}
	if got := tr.Values(); !slices.Equal(got, []int{99}) {
		t.Errorf("values = %v, want [99]", got)
	}
}

func TestInvariantHoldsAfterEveryInsert(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tr := &Tree{}
	for i := 0; i < 500; i++ {
		tr.Insert(rng.Intn(200))
		if err := tr.Validate(); err != nil {
			t.Fatalf("invariant broken after %d inserts: %v", i+1, err)
		}
	}
	if got := tr.Values(); !slices.IsSorted(got) {
		t.Fatalf("Values() not sorted: %v", got)
	}
}

func TestStepDeterminism(t *testing.T) {
	tr := New(50, 30, 70, 20, 40, 60, 80)

	ops := map[string]func() []Step{
		"search":    func() []Step { return tr.Search(40) },
		"inorder":   tr.InorderTraversal,
		"preorder":  tr.PreorderTraversal,
		"postorder": tr.PostorderTraversal,
	}
	for name, op := range ops {
		first := op()
		for i := 0; i < 3; i++ {
			if again := op(); !slices.Equal(actions(first), actions(again)) {
				t.Errorf("%s trace not deterministic: %v vs %v", name, actions(first), actions(again))
			}
		}
	}
}

func TestSizeHeightContains(t *testing.T) {
	tr := New(50, 30, 70, 20)

	if got := tr.Size(); got != 4 {
		t.Errorf("Size = %d, want 4", got)
	}
	if got := tr.Height(); got != 3 {
		t.Errorf("Height = %d, want 3", got)
	}
	if !tr.Contains(20) || tr.Contains(21) {
		t.Errorf("Contains gave wrong answer")
	}

	empty := &Tree{}
	if empty.Size() != 0 || empty.Height() != 0 {
		t.Errorf("empty tree: size=%d height=%d, want 0/0", empty.Size(), empty.Height())
	}
}

func TestValidateRejectsCorruptTree(t *testing.T) {
	tr := New(50, 30)
	tr.Root().Left.Value = 60 // corrupt by hand
	if err := tr.Validate(); err != ErrInvariantViolated {
		t.Fatalf("Validate = %v, want ErrInvariantViolated", err)
	}
}
