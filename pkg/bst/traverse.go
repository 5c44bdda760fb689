package bst

// Order selects a traversal order for [Tree.Traverse].
type Order int

const (
	// OrderIn visits left subtree, node, right subtree (ascending values).
	OrderIn Order = iota
	// OrderPre visits node, left subtree, right subtree.
	OrderPre
	// OrderPost visits left subtree, right subtree, node.
	OrderPost
)

// orderNames maps orders to their flag/wire names.
var orderNames = [...]string{
	OrderIn:   "inorder",
	OrderPre:  "preorder",
	OrderPost: "postorder",
}

// String returns the order's name as used in flags and URLs.
func (o Order) String() string {
	if int(o) < 0 || int(o) >= len(orderNames) {
		return "unknown"
	}
	return orderNames[o]
}

// ParseOrder converts a name ("inorder", "preorder", "postorder") into an
// Order. It is the inverse of [Order.String].
func ParseOrder(s string) (Order, bool) {
	for o, name := range orderNames {
		if s == name {
			return Order(o), true
		}
	}
	return 0, false
}

// InorderTraversal walks the whole tree left-node-right, emitting one
// VISITED step per node at the moment it is processed and a MOVED_LEFT or
// MOVED_RIGHT step (tagged with the node being departed) immediately before
// descending into a present child. For a tree of N nodes the trace has
// exactly N visited steps and N-1 movement steps. An empty tree yields an
// empty trace.
func (t *Tree) InorderTraversal() []Step {
	var steps []Step
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.Left != nil {
			steps = append(steps, movedLeft(n.Value))
			walk(n.Left)
		}
		steps = append(steps, visited(n.Value))
		if n.Right != nil {
			steps = append(steps, movedRight(n.Value))
			walk(n.Right)
		}
	}
	if t.root != nil {
		walk(t.root)
	}
	return steps
}

// PreorderTraversal walks node-left-right. Step emission rules match
// [Tree.InorderTraversal].
func (t *Tree) PreorderTraversal() []Step {
	var steps []Step
	var walk func(n *Node)
	walk = func(n *Node) {
		steps = append(steps, visited(n.Value))
		if n.Left != nil {
			steps = append(steps, movedLeft(n.Value))
			walk(n.Left)
		}
		if n.Right != nil {
			steps = append(steps, movedRight(n.Value))
			walk(n.Right)
		}
	}
	if t.root != nil {
		walk(t.root)
	}
	return steps
}

// PostorderTraversal walks left-right-node. Step emission rules match
// [Tree.InorderTraversal].
func (t *Tree) PostorderTraversal() []Step {
	var steps []Step
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.Left != nil {
			steps = append(steps, movedLeft(n.Value))
			walk(n.Left)
		}
		if n.Right != nil {
			steps = append(steps, movedRight(n.Value))
			walk(n.Right)
		}
		steps = append(steps, visited(n.Value))
	}
	if t.root != nil {
		walk(t.root)
	}
	return steps
}

// Traverse dispatches to the traversal matching order.
func (t *Tree) Traverse(order Order) []Step {
	switch order {
	case OrderPre:
		return t.PreorderTraversal()
	case OrderPost:
		return t.PostorderTraversal()
	default:
		return t.InorderTraversal()
	}
}

// VisitedValues extracts, in order, the node values of all VISITED steps in
// a trace. It is the projection playback layers use to show the traversal
// result list.
func VisitedValues(steps []Step) []int {
	var values []int
	for _, s := range steps {
		if s.Action == ActionVisited && s.HasValue {
			values = append(values, s.Value)
		}
	}
	return values
}
