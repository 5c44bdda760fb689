// Package bst implements an instrumented binary search tree for step-by-step
// visualization.
//
// Every mutating or querying operation returns the ordered trace of what the
// algorithm examined and decided, as a sequence of [Step] records. The trace
// is deterministic: the same tree shape and input always produce the same
// steps, which is what allows a playback layer to animate operations
// reproducibly.
//
// # Invariant
//
// For every node, all values in its left subtree are strictly less than the
// node's value and all values in its right subtree are strictly greater.
// Values are unique; inserting a duplicate leaves the tree untouched and
// terminates the trace with [ActionFound].
//
// # Ownership
//
// A Tree is owned by a single logical caller. Operations are synchronous and
// run to completion; the package does no locking. Callers that share a tree
// across goroutines (e.g. an HTTP handler) must serialize access themselves.
package bst

import "errors"

// ErrInvariantViolated is returned by [Tree.Validate] when a node's value
// falls outside the range permitted by its ancestors. It indicates a
// corrupted tree, which no sequence of Insert calls can produce.
var ErrInvariantViolated = errors.New("bst invariant violated")

// Node is a single tree vertex. Children are owned exclusively by their
// parent; a nil child means the slot is empty. Nodes are created by Insert
// and never mutated afterwards except to attach a child.
type Node struct {
	Value int
	Left  *Node
	Right *Node
}

// Tree is a binary search tree over unique int keys. The zero value is an
// empty tree, ready to use.
type Tree struct {
	root *Node
}

// New creates an empty tree and inserts the given values in order.
// Duplicates are silently dropped, matching Insert semantics.
func New(values ...int) *Tree {
	t := &Tree{}
	for _, v := range values {
		t.Insert(v)
	}
	return t
}

// Root returns the root node, or nil for an empty tree. The returned node
// graph must be treated as read-only; it is a live view, not a copy.
func (t *Tree) Root() *Node { return t.root }

// Empty reports whether the tree has no nodes.
func (t *Tree) Empty() bool { return t.root == nil }

// Insert adds value to the tree and returns the trace of the descent.
//
// Per examined node the trace contains VISITED and COMPARED, followed by
// MOVED_LEFT or MOVED_RIGHT for the branch taken. The trace ends with
// INSERTED (tagged with the new value) once the value is attached, or with
// FOUND if the value was already present, in which case the tree is
// unchanged. Inserting into an empty tree emits a single INSERTED step.
func (t *Tree) Insert(value int) []Step {
	if t.root == nil {
		t.root = &Node{Value: value}
		return []Step{inserted(value)}
	}

	var steps []Step
	cur := t.root
	for {
		steps = append(steps, visited(cur.Value), compared(value, cur.Value))
		switch {
		case value < cur.Value:
			steps = append(steps, movedLeft(cur.Value))
			if cur.Left == nil {
				cur.Left = &Node{Value: value}
				return append(steps, inserted(value))
			}
			cur = cur.Left
		case value > cur.Value:
			steps = append(steps, movedRight(cur.Value))
			if cur.Right == nil {
				cur.Right = &Node{Value: value}
				return append(steps, inserted(value))
			}
			cur = cur.Right
		default:
			// Duplicate: rejected without error, tree untouched.
			return append(steps, foundDuplicate(value))
		}
	}
}

// Search looks up value and returns the trace of the descent.
//
// The trace ends with FOUND on a match or NOT_FOUND (no node attached) when
// the walk falls off the tree. Searching an empty tree emits a single
// NOT_FOUND step. The tree is never modified.
func (t *Tree) Search(value int) []Step {
	if t.root == nil {
		return []Step{notFound(value)}
	}

	var steps []Step
	for cur := t.root; cur != nil; {
		steps = append(steps, visited(cur.Value), compared(value, cur.Value))
		switch {
		case value < cur.Value:
			steps = append(steps, movedLeft(cur.Value))
			cur = cur.Left
		case value > cur.Value:
			steps = append(steps, movedRight(cur.Value))
			cur = cur.Right
		default:
			return append(steps, found(value))
		}
	}
	return append(steps, notFound(value))
}

// Contains reports whether value is present, without producing a trace.
func (t *Tree) Contains(value int) bool {
	for cur := t.root; cur != nil; {
		switch {
		case value < cur.Value:
			cur = cur.Left
		case value > cur.Value:
			cur = cur.Right
		default:
			return true
		}
	}
	return false
}

// Clear discards the entire tree. Clearing an empty tree is a no-op.
func (t *Tree) Clear() { t.root = nil }

// Size returns the number of nodes.
func (t *Tree) Size() int {
	var count func(n *Node) int
	count = func(n *Node) int {
		if n == nil {
			return 0
		}
		return count(n.Left) + 1 + count(n.Right)
	}
	return count(t.root)
}

// Height returns the number of nodes on the longest root-to-leaf path.
// An empty tree has height 0.
func (t *Tree) Height() int {
	var height func(n *Node) int
	height = func(n *Node) int {
		if n == nil {
			return 0
		}
		return 1 + max(height(n.Left), height(n.Right))
	}
	return height(t.root)
}

// Values returns all values in ascending order.
func (t *Tree) Values() []int {
	var values []int
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		walk(n.Left)
		values = append(values, n.Value)
		walk(n.Right)
	}
	walk(t.root)
	return values
}

// Validate checks the ordering invariant over the whole tree and returns
// ErrInvariantViolated if any node is out of range. A tree built purely
// through Insert always validates; this exists for snapshots loaded from
// external data.
func (t *Tree) Validate() error {
	var check func(n *Node, lo, hi *int) error
	check = func(n *Node, lo, hi *int) error {
		if n == nil {
			return nil
		}
		if lo != nil && n.Value <= *lo {
			return ErrInvariantViolated
		}
		if hi != nil && n.Value >= *hi {
			return ErrInvariantViolated
		}
		if err := check(n.Left, lo, &n.Value); err != nil {
			return err
		}
		return check(n.Right, &n.Value, hi)
	}
	return check(t.root, nil, nil)
}
