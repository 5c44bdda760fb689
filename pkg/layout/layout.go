// Package layout turns a tree snapshot into stable 2D coordinates.
//
// The algorithm is a classic two-pass column layout: a post-order pass
// assigns every subtree a width in columns (one column per node), then a
// pre-order pass places each node at the column just right of its left
// subtree, keeping a running left bound so sibling subtrees never overlap.
// Columns end up ordered left to right by in-order rank, which is exactly
// the visual intuition a BST animation wants.
//
// Build is a pure function of the tree shape. There is no incremental
// update: after any mutation the caller recomputes from scratch, which keeps
// stale positions impossible by construction.
package layout

import "github.com/matzehuels/treetrace/pkg/bst"

// Default geometry in user units (pixels in the SVG sink).
const (
	DefaultHSpacing   = 80.0
	DefaultVSpacing   = 80.0
	DefaultPadding    = 40.0
	DefaultNodeRadius = 24.0
)

// Direction tags a parent→child edge.
type Direction string

const (
	// DirLeft marks an edge to a left child.
	DirLeft Direction = "left"
	// DirRight marks an edge to a right child.
	DirRight Direction = "right"
)

// Point is a node position in user units.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Edge is a positioned parent→child connection.
type Edge struct {
	Parent int       `json:"parent" bson:"parent"`
	Child  int       `json:"child" bson:"child"`
	From   Point     `json:"from" bson:"from"`
	To     Point     `json:"to" bson:"to"`
	Dir    Direction `json:"dir" bson:"dir"`
}

// Layout holds the computed geometry for one tree snapshot. Positions maps
// node value to its center point; values are unique, so the value doubles
// as the node's identity. Width and Height describe the bounding box a
// renderer should size its surface to.
type Layout struct {
	Positions map[int]Point `json:"positions" bson:"positions"`
	Edges     []Edge        `json:"edges" bson:"edges"`
	Width     float64       `json:"width" bson:"width"`
	Height    float64       `json:"height" bson:"height"`

	// NodeRadius is carried along so renderers agree with the margins
	// already baked into the bounding box.
	NodeRadius float64 `json:"node_radius" bson:"node_radius"`
}

// Option configures Build.
type Option func(*config)

type config struct {
	hspacing float64
	vspacing float64
	padding  float64
	radius   float64
}

// WithSpacing overrides the horizontal and vertical distance between
// neighboring columns and depth levels.
func WithSpacing(h, v float64) Option {
	return func(c *config) { c.hspacing, c.vspacing = h, v }
}

// WithPadding overrides the margin around the whole drawing.
func WithPadding(p float64) Option {
	return func(c *config) { c.padding = p }
}

// WithNodeRadius overrides the node radius used for bounding-box margins.
func WithNodeRadius(r float64) Option {
	return func(c *config) { c.radius = r }
}

// Build computes positions and edges for the current shape of t.
// An empty tree yields an empty layout with zero dimensions.
func Build(t *bst.Tree, opts ...Option) Layout {
	cfg := config{
		hspacing: DefaultHSpacing,
		vspacing: DefaultVSpacing,
		padding:  DefaultPadding,
		radius:   DefaultNodeRadius,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	l := Layout{Positions: make(map[int]Point), NodeRadius: cfg.radius}
	root := t.Root()
	if root == nil {
		return l
	}

	widths := subtreeWidths(root)

	var place func(n *bst.Node, depth, leftBound int)
	place = func(n *bst.Node, depth, leftBound int) {
		leftWidth := 0
		if n.Left != nil {
			leftWidth = widths[n.Left.Value]
		}
		l.Positions[n.Value] = Point{
			X: cfg.padding + float64(leftBound+leftWidth)*cfg.hspacing,
			Y: cfg.padding + float64(depth)*cfg.vspacing,
		}
		if n.Left != nil {
			place(n.Left, depth+1, leftBound)
		}
		if n.Right != nil {
			place(n.Right, depth+1, leftBound+leftWidth+1)
		}
	}
	place(root, 0, 0)

	var collect func(n *bst.Node)
	collect = func(n *bst.Node) {
		if n == nil {
			return
		}
		if n.Left != nil {
			l.Edges = append(l.Edges, Edge{
				Parent: n.Value, Child: n.Left.Value,
				From: l.Positions[n.Value], To: l.Positions[n.Left.Value],
				Dir: DirLeft,
			})
		}
		if n.Right != nil {
			l.Edges = append(l.Edges, Edge{
				Parent: n.Value, Child: n.Right.Value,
				From: l.Positions[n.Value], To: l.Positions[n.Right.Value],
				Dir: DirRight,
			})
		}
		collect(n.Left)
		collect(n.Right)
	}
	collect(root)

	var maxX, maxY float64
	for _, p := range l.Positions {
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	l.Width = maxX + cfg.radius + cfg.padding
	l.Height = maxY + cfg.radius + cfg.padding

	return l
}
