package pipeline

import (
	"fmt"

	"github.com/matzehuels/treetrace/pkg/bst"
	"github.com/matzehuels/treetrace/pkg/layout"
	"github.com/matzehuels/treetrace/pkg/render"
	"github.com/matzehuels/treetrace/pkg/render/dot"
	"github.com/matzehuels/treetrace/pkg/render/svg"
	"github.com/matzehuels/treetrace/pkg/treeio"
)

// RenderFromLayout generates output artifacts in the requested formats.
// Canvas formats are rendered from the layout; graphviz formats from a DOT
// rendering of the tree. The JSON format is the serialized layout either way.
func RenderFromLayout(l layout.Layout, t *bst.Tree, opts Options) (map[string][]byte, error) {
	if opts.IsGraphviz() {
		return renderGraphviz(l, t, opts)
	}
	return renderCanvas(l, t, opts)
}

// renderCanvas generates canvas outputs from the computed layout.
func renderCanvas(l layout.Layout, t *bst.Tree, opts Options) (map[string][]byte, error) {
	svgData := svg.Render(l, svg.WithStyle(opts.Style))
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = svgData
		case FormatPNG:
			data, err = render.ToPNG(svgData, 2.0)
		case FormatPDF:
			data, err = render.ToPDF(svgData)
		case FormatDOT:
			data = []byte(dot.ToDOT(t, dot.Options{ShowNulls: opts.ShowNulls}))
		case FormatJSON:
			data, err = treeio.MarshalLayout(l)
		default:
			return nil, fmt.Errorf("unsupported canvas format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderGraphviz generates graphviz outputs from a DOT rendering of the tree.
func renderGraphviz(l layout.Layout, t *bst.Tree, opts Options) (map[string][]byte, error) {
	dotStr := dot.ToDOT(t, dot.Options{ShowNulls: opts.ShowNulls})
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = dot.RenderSVG(dotStr)
		case FormatPNG:
			data, err = dot.RenderPNG(dotStr, 2.0)
		case FormatPDF:
			data, err = dot.RenderPDF(dotStr)
		case FormatDOT:
			data = []byte(dotStr)
		case FormatJSON:
			data, err = treeio.MarshalLayout(l)
		default:
			return nil, fmt.Errorf("unsupported graphviz format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
