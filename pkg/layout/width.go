package layout

import "github.com/matzehuels/treetrace/pkg/bst"

// subtreeWidths computes, post-order, the number of layout columns each
// subtree occupies: width(n) = width(left) + 1 + width(right). The column
// count equals the node count, so every node gets a column of its own and
// sibling subtrees can never share one.
func subtreeWidths(root *bst.Node) map[int]int {
	widths := make(map[int]int)
	var walk func(n *bst.Node) int
	walk = func(n *bst.Node) int {
		if n == nil {
			return 0
		}
		w := walk(n.Left) + 1 + walk(n.Right)
		widths[n.Value] = w
		return w
	}
	walk(root)
	return widths
}
