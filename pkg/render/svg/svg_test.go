package svg

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/matzehuels/treetrace/pkg/bst"
	"github.com/matzehuels/treetrace/pkg/layout"
)

func TestRenderContainsAllNodes(t *testing.T) {
	tr := bst.New(50, 30, 70, 20, 40)
	data := Render(layout.Build(tr))

	for _, v := range tr.Values() {
		id := fmt.Sprintf(`id="node-%d"`, v)
		if !bytes.Contains(data, []byte(id)) {
			t.Errorf("missing %s", id)
		}
	}
	// One line per edge.
	if got := bytes.Count(data, []byte("<line")); got != 4 {
		t.Errorf("edge lines = %d, want 4", got)
	}
}

func TestRenderEmptyTree(t *testing.T) {
	data := Render(layout.Build(&bst.Tree{}))

	if !bytes.Contains(data, []byte("empty tree")) {
		t.Error("empty layout should render the empty indicator")
	}
	if bytes.Contains(data, []byte("<circle")) {
		t.Error("empty layout should render no nodes")
	}
}

func TestRenderDeterministic(t *testing.T) {
	l := layout.Build(bst.New(50, 30, 70, 20, 40, 60, 80))

	first := Render(l)
	for i := 0; i < 3; i++ {
		if again := Render(l); !bytes.Equal(first, again) {
			t.Fatal("render output differs across calls")
		}
	}
}

func TestRenderStyles(t *testing.T) {
	l := layout.Build(bst.New(50))

	simple := Render(l, WithStyle(StyleSimple))
	chalk := Render(l, WithStyle(StyleChalkboard))
	if bytes.Equal(simple, chalk) {
		t.Error("styles produced identical output")
	}

	// Unknown style falls back to simple.
	fallback := Render(l, WithStyle("neon"))
	if !bytes.Equal(simple, fallback) {
		t.Error("unknown style should fall back to simple")
	}
}

func TestRenderTitleAndHighlight(t *testing.T) {
	l := layout.Build(bst.New(50, 30))
	data := Render(l, WithTitle("insert 30"), WithHighlight(30))

	if !bytes.Contains(data, []byte("insert 30")) {
		t.Error("title missing")
	}
	if !bytes.Contains(data, []byte(`class="node highlight"`)) {
		t.Error("highlight class missing")
	}
}

func TestRenderViewBoxMatchesLayout(t *testing.T) {
	l := layout.Build(bst.New(50, 30, 70))
	data := Render(l)

	want := fmt.Sprintf(`viewBox="0 0 %.1f %.1f"`, l.Width, l.Height)
	if !bytes.Contains(data, []byte(want)) {
		t.Errorf("missing %s in output", want)
	}
}
