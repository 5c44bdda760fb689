package layout

import (
	"math/rand"
	"testing"

	"github.com/matzehuels/treetrace/pkg/bst"
)

func TestBuildEmptyTree(t *testing.T) {
	l := Build(&bst.Tree{})
	if len(l.Positions) != 0 || len(l.Edges) != 0 {
		t.Errorf("empty tree layout = %+v, want empty", l)
	}
	if l.Width != 0 || l.Height != 0 {
		t.Errorf("empty tree bounding box = %gx%g, want 0x0", l.Width, l.Height)
	}
}

func TestBuildSingleNode(t *testing.T) {
	l := Build(bst.New(50))

	p, ok := l.Positions[50]
	if !ok {
		t.Fatal("no position for node 50")
	}
	if p.X != DefaultPadding || p.Y != DefaultPadding {
		t.Errorf("root at %+v, want (%g, %g)", p, DefaultPadding, DefaultPadding)
	}
	if len(l.Edges) != 0 {
		t.Errorf("edges = %v, want none", l.Edges)
	}
	wantW := DefaultPadding + DefaultNodeRadius + DefaultPadding
	if l.Width != wantW || l.Height != wantW {
		t.Errorf("bounding box = %gx%g, want %gx%g", l.Width, l.Height, wantW, wantW)
	}
}

func TestColumnsFollowInorderRank(t *testing.T) {
	tr := bst.New(50, 30, 70, 20, 40, 60, 80)
	l := Build(tr)

	// In-order values must appear at strictly increasing x positions.
	values := tr.Values()
	for i := 1; i < len(values); i++ {
		prev, cur := l.Positions[values[i-1]], l.Positions[values[i]]
		if prev.X >= cur.X {
			t.Errorf("x(%d)=%g not left of x(%d)=%g", values[i-1], prev.X, values[i], cur.X)
		}
	}
}

func TestDepthSetsY(t *testing.T) {
	l := Build(bst.New(50, 30, 70, 20))

	wantY := map[int]float64{
		50: DefaultPadding,
		30: DefaultPadding + DefaultVSpacing,
		70: DefaultPadding + DefaultVSpacing,
		20: DefaultPadding + 2*DefaultVSpacing,
	}
	for v, y := range wantY {
		if got := l.Positions[v].Y; got != y {
			t.Errorf("y(%d) = %g, want %g", v, got, y)
		}
	}
}

func TestEdgesTagDirection(t *testing.T) {
	l := Build(bst.New(50, 30, 70))

	if len(l.Edges) != 2 {
		t.Fatalf("edges = %d, want 2", len(l.Edges))
	}
	dirs := make(map[int]Direction)
	for _, e := range l.Edges {
		if e.Parent != 50 {
			t.Errorf("edge parent = %d, want 50", e.Parent)
		}
		if e.From != l.Positions[e.Parent] || e.To != l.Positions[e.Child] {
			t.Errorf("edge %d->%d endpoints do not match positions", e.Parent, e.Child)
		}
		dirs[e.Child] = e.Dir
	}
	if dirs[30] != DirLeft || dirs[70] != DirRight {
		t.Errorf("directions = %v, want 30:left 70:right", dirs)
	}
}

func TestNoColumnCollisions(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 20; trial++ {
		tr := &bst.Tree{}
		for i := 0; i < 60; i++ {
			tr.Insert(rng.Intn(500))
		}
		l := Build(tr)

		seen := make(map[float64]int)
		for v, p := range l.Positions {
			if prev, ok := seen[p.X]; ok {
				t.Fatalf("trial %d: nodes %d and %d share column x=%g", trial, prev, v, p.X)
			}
			seen[p.X] = v
		}
	}
}

func TestDegenerateChainLayout(t *testing.T) {
	// Right-leaning chain: every node one column right, one level down.
	tr := bst.New(1, 2, 3, 4, 5)
	l := Build(tr)

	for i, v := range []int{1, 2, 3, 4, 5} {
		p := l.Positions[v]
		wantX := DefaultPadding + float64(i)*DefaultHSpacing
		wantY := DefaultPadding + float64(i)*DefaultVSpacing
		if p.X != wantX || p.Y != wantY {
			t.Errorf("node %d at (%g,%g), want (%g,%g)", v, p.X, p.Y, wantX, wantY)
		}
	}
}

func TestOptionsOverrideGeometry(t *testing.T) {
	tr := bst.New(50, 30, 70)
	l := Build(tr, WithSpacing(10, 5), WithPadding(2), WithNodeRadius(1))

	if got := l.Positions[30]; got.X != 2 || got.Y != 7 {
		t.Errorf("node 30 at %+v, want (2, 7)", got)
	}
	if got := l.Positions[50]; got.X != 12 || got.Y != 2 {
		t.Errorf("node 50 at %+v, want (12, 2)", got)
	}
	if l.NodeRadius != 1 {
		t.Errorf("NodeRadius = %g, want 1", l.NodeRadius)
	}
}

func TestRebuildReflectsMutation(t *testing.T) {
	tr := bst.New(50)
	before := Build(tr)
	tr.Insert(30)
	after := Build(tr)

	if _, ok := before.Positions[30]; ok {
		t.Error("stale layout gained a node")
	}
	if _, ok := after.Positions[30]; !ok {
		t.Error("rebuilt layout missing new node")
	}
	// Root shifts right once it has a left subtree.
	if after.Positions[50].X <= before.Positions[50].X {
		t.Errorf("root x %g -> %g, want increase", before.Positions[50].X, after.Positions[50].X)
	}
}

func TestSubtreeWidths(t *testing.T) {
	tr := bst.New(50, 30, 70, 20, 40)
	widths := subtreeWidths(tr.Root())

	want := map[int]int{20: 1, 40: 1, 30: 3, 70: 1, 50: 5}
	for v, w := range want {
		if widths[v] != w {
			t.Errorf("width(%d) = %d, want %d", v, widths[v], w)
		}
	}
}
