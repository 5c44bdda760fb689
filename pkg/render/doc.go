// Package render provides visualization rendering for tree layouts.
//
// # Overview
//
// This package contains the rendering pipeline that turns a computed tree
// layout into visual outputs. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Canvas-style SVG drawing (in [svg] subpackage)
//   - Graphviz node-link diagrams (in [dot] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). These are used by both
// renderers.
//
//	data := svg.Render(l, opts...)
//	pdf, err := render.ToPDF(data)
//	png, err := render.ToPNG(data, 2.0)  // 2x scale
//
// # Canvas SVG
//
// The [svg] subpackage draws the layout directly: edges as lines, nodes as
// circles with value labels, with a small hover-highlight script so step
// playback in a browser can address nodes by value.
//
// # Node-Link Diagrams
//
// The [dot] subpackage emits Graphviz DOT for the tree and renders it via
// goccy/go-graphviz. This gives an alternative look driven by Graphviz's
// own layout rather than the column layout in pkg/layout.
package render
