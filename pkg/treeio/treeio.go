// Package treeio provides JSON import and export for tree snapshots.
//
// # Format
//
// A snapshot stores the tree's values in preorder:
//
//	{
//	  "values": [50, 30, 20, 40, 70]
//	}
//
// Reinserting a preorder sequence into an empty BST reproduces the exact
// shape it was taken from, so this one array is a complete, human-editable
// description of the tree. Values must be unique; a snapshot containing
// duplicates or violating the ordering invariant is rejected on import.
//
// The package also serializes computed layouts for the "json" render format
// and for document storage.
package treeio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/treetrace/pkg/bst"
	"github.com/matzehuels/treetrace/pkg/layout"
)

// Snapshot is the serialized form of a tree: its values in preorder.
type Snapshot struct {
	Values []int `json:"values" bson:"values"`
}

// FromTree takes a snapshot of the tree's current shape.
func FromTree(t *bst.Tree) Snapshot {
	var values []int
	var walk func(n *bst.Node)
	walk = func(n *bst.Node) {
		if n == nil {
			return
		}
		values = append(values, n.Value)
		walk(n.Left)
		walk(n.Right)
	}
	walk(t.Root())
	return Snapshot{Values: values}
}

// ToTree rebuilds a tree from a snapshot by reinserting the preorder
// sequence. Duplicate values are rejected rather than silently dropped: a
// snapshot is supposed to describe a valid tree, not a stream of user input.
func ToTree(s Snapshot) (*bst.Tree, error) {
	t := &bst.Tree{}
	for _, v := range s.Values {
		steps := t.Insert(v)
		if last := steps[len(steps)-1]; last.Action == bst.ActionFound {
			return nil, fmt.Errorf("snapshot contains duplicate value %d", v)
		}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// =============================================================================
// Tree Serialization API
// =============================================================================

// MarshalTree converts a tree to pretty-printed JSON bytes.
func MarshalTree(t *bst.Tree) ([]byte, error) {
	return json.MarshalIndent(FromTree(t), "", "  ")
}

// WriteTree writes a tree snapshot as JSON to an io.Writer.
func WriteTree(t *bst.Tree, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromTree(t)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteTreeFile writes a tree snapshot to a JSON file.
// The file is created with 0644 permissions.
func WriteTreeFile(t *bst.Tree, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteTree(t, f)
}

// ReadTree decodes a snapshot from an io.Reader and rebuilds the tree.
func ReadTree(r io.Reader) (*bst.Tree, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToTree(s)
}

// ReadTreeFile reads a JSON snapshot file and rebuilds the tree.
// A missing file is an error; callers that want "missing means empty"
// semantics should check with os.IsNotExist.
func ReadTreeFile(path string) (*bst.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadTree(f)
}

// ReadTreeFileOrEmpty reads a snapshot file, returning an empty tree when
// the file does not exist yet. This is the common path for CLI commands
// that create the tree file on first insert.
func ReadTreeFileOrEmpty(path string) (*bst.Tree, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return &bst.Tree{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadTree(f)
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a computed layout to pretty-printed JSON bytes.
func MarshalLayout(l layout.Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a layout.
func UnmarshalLayout(data []byte) (layout.Layout, error) {
	var l layout.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return layout.Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	return l, nil
}

// WriteLayoutFile writes a layout to a JSON file.
func WriteLayoutFile(l layout.Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a layout from a JSON file.
func ReadLayoutFile(path string) (layout.Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return layout.Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
