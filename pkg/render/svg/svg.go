// Package svg renders a computed tree layout as a standalone SVG document.
//
// The drawing is deliberately simple: edges first, then node circles, then
// value labels. Every node element carries an id derived from its value
// ("node-50"), which is what the hover script and any external playback
// layer use to address nodes for highlighting.
package svg

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"

	"github.com/matzehuels/treetrace/pkg/layout"
)

// Style names accepted by WithStyle.
const (
	StyleSimple     = "simple"     // white background, dark strokes
	StyleChalkboard = "chalkboard" // dark background, chalk strokes
)

const nodeInteractionCSS = `
    .node { transition: stroke-width 0.2s ease; }
    .node.highlight { stroke-width: 5; }
    .node-label { transition: transform 0.2s ease; transform-origin: center; transform-box: fill-box; }
    .node-label.highlight { transform: scale(1.1); font-weight: bold; }`

const nodeInteractionJS = `
    function highlight(values) {
      document.querySelectorAll('.node').forEach(n => n.classList.toggle('highlight', values.includes(n.id.replace('node-', ''))));
      document.querySelectorAll('.node-label').forEach(t => t.classList.toggle('highlight', values.includes(t.dataset.node)));
    }
    function clearHighlight() {
      document.querySelectorAll('.node, .node-label').forEach(el => el.classList.remove('highlight'));
    }
    document.querySelectorAll('.node').forEach(el => {
      el.addEventListener('mouseenter', () => highlight([el.id.replace('node-', '')]));
      el.addEventListener('mouseleave', clearHighlight);
    });`

// palette holds the colors and typography for one visual style.
type palette struct {
	background string
	edge       string
	nodeFill   string
	nodeStroke string
	label      string
	empty      string
	fontFamily string
}

var palettes = map[string]palette{
	StyleSimple: {
		background: "#ffffff",
		edge:       "#555555",
		nodeFill:   "#f5f5f5",
		nodeStroke: "#333333",
		label:      "#111111",
		empty:      "#999999",
		fontFamily: "sans-serif",
	},
	StyleChalkboard: {
		background: "#2e3d33",
		edge:       "#d8e4dc",
		nodeFill:   "#3a4d41",
		nodeStroke: "#e8f0ea",
		label:      "#f4f9f5",
		empty:      "#a8baae",
		fontFamily: `'Comic Sans MS', 'Bradley Hand', 'Segoe Script', cursive`,
	},
}

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	style     string
	title     string
	highlight []int // values pre-marked with the highlight class
}

// WithStyle selects a visual style (StyleSimple or StyleChalkboard).
// Unknown styles fall back to simple.
func WithStyle(style string) Option {
	return func(r *renderer) { r.style = style }
}

// WithTitle draws a title above the tree.
func WithTitle(title string) Option {
	return func(r *renderer) { r.title = title }
}

// WithHighlight pre-marks the given node values with the highlight class,
// e.g. to show a search path in a static export.
func WithHighlight(values ...int) Option {
	return func(r *renderer) { r.highlight = values }
}

// Render draws the layout as a complete SVG document.
// An empty layout yields a small placeholder frame with an "empty tree"
// indicator rather than a zero-sized document.
func Render(l layout.Layout, opts ...Option) []byte {
	r := renderer{style: StyleSimple}
	for _, opt := range opts {
		opt(&r)
	}
	pal, ok := palettes[r.style]
	if !ok {
		pal = palettes[StyleSimple]
	}

	width, height := l.Width, l.Height
	if len(l.Positions) == 0 {
		width, height = 320, 120
	}
	titleOffset := 0.0
	if r.title != "" {
		titleOffset = 36
		height += titleOffset
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", pal.background)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", nodeInteractionCSS)

	if r.title != "" {
		fmt.Fprintf(&buf, `  <text x="%.1f" y="24" text-anchor="middle" font-family="%s" font-size="18" fill="%s">%s</text>`+"\n",
			width/2, pal.fontFamily, pal.label, r.title)
	}

	if len(l.Positions) == 0 {
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-family="%s" font-size="16" fill="%s">empty tree</text>`+"\n",
			width/2, titleOffset+(height-titleOffset)/2, pal.fontFamily, pal.empty)
		buf.WriteString("</svg>\n")
		return buf.Bytes()
	}

	renderEdges(&buf, l, pal, titleOffset)
	renderNodes(&buf, l, pal, titleOffset, r.highlight)

	fmt.Fprintf(&buf, "  <script><![CDATA[%s\n  ]]></script>\n", nodeInteractionJS)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderEdges(buf *bytes.Buffer, l layout.Layout, pal palette, dy float64) {
	edges := slices.Clone(l.Edges)
	slices.SortFunc(edges, func(a, b layout.Edge) int {
		if c := cmp.Compare(a.Parent, b.Parent); c != 0 {
			return c
		}
		return cmp.Compare(a.Child, b.Child)
	})

	for _, e := range edges {
		fmt.Fprintf(buf, `  <line class="edge edge-%s" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"/>`+"\n",
			e.Dir, e.From.X, e.From.Y+dy, e.To.X, e.To.Y+dy, pal.edge)
	}
}

func renderNodes(buf *bytes.Buffer, l layout.Layout, pal palette, dy float64, highlight []int) {
	values := slices.Sorted(mapKeys(l.Positions))

	for _, v := range values {
		p := l.Positions[v]
		class := "node"
		if slices.Contains(highlight, v) {
			class = "node highlight"
		}
		fmt.Fprintf(buf, `  <circle id="node-%d" class="%s" cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="%s" stroke-width="2"/>`+"\n",
			v, class, p.X, p.Y+dy, l.NodeRadius, pal.nodeFill, pal.nodeStroke)
	}
	for _, v := range values {
		p := l.Positions[v]
		fmt.Fprintf(buf, `  <text class="node-label" data-node="%d" x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="central" font-family="%s" font-size="%.0f" fill="%s">%d</text>`+"\n",
			v, p.X, p.Y+dy, pal.fontFamily, l.NodeRadius*0.66, pal.label, v)
	}
}

func mapKeys(m map[int]layout.Point) func(yield func(int) bool) {
	return func(yield func(int) bool) {
		for k := range m {
			if !yield(k) {
				return
			}
		}
	}
}
