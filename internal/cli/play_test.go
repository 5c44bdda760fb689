package cli

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/treetrace/pkg/bst"
)

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPlayModelStepping(t *testing.T) {
	tree := bst.New(50, 30, 70)
	steps := tree.Search(70)
	m := newPlayModel("search 70", tree, steps, time.Millisecond)

	if m.player.Pos() != 0 {
		t.Fatalf("fresh model pos = %d", m.player.Pos())
	}

	next, _ := m.Update(key("l"))
	m = next.(playModel)
	if m.player.Pos() != 1 {
		t.Errorf("pos after step = %d", m.player.Pos())
	}

	next, _ = m.Update(key("h"))
	m = next.(playModel)
	if m.player.Pos() != 0 {
		t.Errorf("pos after back = %d", m.player.Pos())
	}
}

func TestPlayModelAutoplay(t *testing.T) {
	tree := bst.New(50, 30)
	m := newPlayModel("inorder traversal", tree, tree.InorderTraversal(), time.Millisecond)

	next, cmd := m.Update(key(" "))
	m = next.(playModel)
	if !m.playing || cmd == nil {
		t.Fatal("space should start autoplay and schedule a tick")
	}

	// Ticks advance until the trace ends
	for i := 0; i < m.player.Len()+2; i++ {
		next, _ = m.Update(tickMsg(time.Now()))
		m = next.(playModel)
	}
	if m.playing {
		t.Error("autoplay should stop at the end of the trace")
	}
	if !m.player.Done() {
		t.Errorf("player not done after autoplay: pos %d/%d", m.player.Pos(), m.player.Len())
	}
}

func TestPlayModelViewShowsProgress(t *testing.T) {
	tree := bst.New(50, 30, 70)
	m := newPlayModel("search 70", tree, tree.Search(70), time.Millisecond)

	view := m.View()
	if !strings.Contains(view, "search 70") {
		t.Error("view should contain the title")
	}
	if !strings.Contains(view, "[0/") {
		t.Error("view should show progress at position 0")
	}
}

func TestRenderTreePlacesNodesByDepth(t *testing.T) {
	tree := bst.New(50, 30, 70)
	out := renderTree(tree, nil, "")
	lines := strings.Split(out, "\n")

	rowOf := func(value string) int {
		for i, line := range lines {
			if strings.Contains(line, value) {
				return i
			}
		}
		return -1
	}

	if rowOf("50") != 0 {
		t.Errorf("root should be on the first row, got %d", rowOf("50"))
	}
	if rowOf("30") != 2 || rowOf("70") != 2 {
		t.Errorf("children rows = %d, %d, want 2", rowOf("30"), rowOf("70"))
	}

	// Inorder x ordering holds on the grid
	childLine := lines[2]
	if strings.Index(childLine, "30") > strings.Index(childLine, "70") {
		t.Error("left child should be left of right child")
	}

	// Connector row carries both edge directions
	if !strings.Contains(lines[1], "/") || !strings.Contains(lines[1], "\\") {
		t.Errorf("connector row = %q", lines[1])
	}
}

func TestRenderTreeEmpty(t *testing.T) {
	out := renderTree(bst.New(), nil, "")
	if !strings.Contains(out, "empty") {
		t.Errorf("empty tree rendering = %q", out)
	}
}
