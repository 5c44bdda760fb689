package pipeline

import (
	"github.com/matzehuels/treetrace/pkg/bst"
	"github.com/matzehuels/treetrace/pkg/layout"
)

// =============================================================================
// Build and Trace
// =============================================================================

// BuildTree constructs a search tree by inserting opts.Values in order.
// Duplicates are silently rejected by the engine, so the result is the same
// tree a user would get typing the values one by one.
func BuildTree(opts Options) *bst.Tree {
	return bst.New(opts.Values...)
}

// Trace runs the requested operation against the tree and returns its step
// trace. A nil trace means no operation was requested. Insert mutates the
// tree; the other operations are read-only.
func Trace(t *bst.Tree, opts Options) []bst.Step {
	switch opts.Op {
	case OpInsert:
		return t.Insert(opts.OpValue)
	case OpSearch:
		return t.Search(opts.OpValue)
	case OpTraverse:
		order, _ := bst.ParseOrder(opts.Order)
		return t.Traverse(order)
	default:
		return nil
	}
}

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout computes node positions for the tree with the subtree-width
// algorithm. Graphviz visualizations position nodes themselves, but the
// layout is still computed so the JSON format and the API always carry
// geometry.
func GenerateLayout(t *bst.Tree, opts Options) layout.Layout {
	return layout.Build(t, opts.LayoutOptions()...)
}
