// Package pkg provides the core libraries for Treetrace BST visualization.
//
// # Overview
//
// Treetrace builds binary search trees from value sequences, records every
// comparison and pointer move as an explainable step trace, and renders the
// resulting tree as SVG, PNG, PDF, DOT, or JSON. The pkg directory is
// organized into four main areas:
//
//  1. [bst] - Domain logic (instrumented tree operations and traces)
//  2. [layout] - Subtree-width coordinate assignment
//  3. [render] - Output generation (canvas SVG, Graphviz DOT)
//  4. [pipeline] - Orchestration (build → trace → layout → render)
//
// # Architecture
//
// The typical data flow through Treetrace:
//
//	Value sequence / tree file
//	         ↓
//	    [bst] package (build the tree, record step traces)
//	         ↓
//	    [layout] package (assign node coordinates)
//	         ↓
//	    [render] package (SVG, DOT, raster conversion)
//	         ↓
//	    SVG/PNG/PDF/DOT/JSON output
//
// # Quick Start
//
// Build a tree, trace a search, and render it:
//
//	import (
//	    "github.com/matzehuels/treetrace/pkg/bst"
//	    "github.com/matzehuels/treetrace/pkg/layout"
//	    "github.com/matzehuels/treetrace/pkg/render/svg"
//	)
//
//	// 1. Build a tree
//	t := bst.New(50, 30, 70, 20, 40)
//
//	// 2. Trace an operation
//	steps := t.Search(40)
//
//	// 3. Compute layout
//	l := layout.Build(t)
//
//	// 4. Render to SVG
//	doc := svg.Render(l, svg.WithStyle(svg.StyleChalkboard))
//
// # Main Packages
//
// ## Core Domain Logic
//
// [bst] - Binary search tree with instrumented insert, search, and the three
// depth-first traversals. Every operation returns an ordered step trace
// describing what was visited, compared, and moved.
//
// [layout] - Subtree-width layout: each node's x coordinate comes from the
// width of its left subtree, so siblings never overlap regardless of tree
// shape. Produces positions, edges, and canvas dimensions.
//
// [render] - Visualization rendering with two backends: canvas (hand-rolled
// SVG with hover highlighting) and Graphviz (DOT generation plus SVG, PNG,
// and PDF rasterization through go-graphviz).
//
// ## Infrastructure
//
// [cache] - Content-addressed caching of layouts and rendered artifacts.
// FileCache for the CLI, RedisCache for the server, NullCache for tests.
//
// [store] - Persistent tree gallery. FileStore for local use, MongoStore for
// the server.
//
// [session] - Lightweight per-user CLI state (tutorial progress, playback
// preferences).
//
// ## Orchestration
//
// [pipeline] - Shared build/trace/layout/render runner used by both the CLI
// and the HTTP API, with per-stage caching and cache-hit reporting.
//
// [playback] - Step-by-step cursor over a trace, used by the interactive
// TUI and available to API consumers.
//
// [treeio] - Insertion-order snapshots: the serialization format that lets a
// tree be persisted and rebuilt with identical shape.
package pkg
