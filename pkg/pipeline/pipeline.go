// Package pipeline provides the build → trace → layout → render pipeline.
//
// The same pipeline backs the CLI and the HTTP API, so option validation,
// defaulting, and caching behavior live here once. Stages:
//
//  1. Build: construct the search tree from an ordered value list
//  2. Trace: run the requested operation and capture its step trace
//  3. Layout: compute node positions with the subtree-width algorithm
//  4. Render: generate output in the requested formats
//
// Each stage can be run independently or as part of the complete pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Values:  []int{50, 30, 70},
//	    Op:      pipeline.OpSearch,
//	    OpValue: 70,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treetrace/pkg/bst"
	"github.com/matzehuels/treetrace/pkg/cache"
	"github.com/matzehuels/treetrace/pkg/errors"
	"github.com/matzehuels/treetrace/pkg/layout"
	"github.com/matzehuels/treetrace/pkg/render/svg"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Visualization types.
const (
	// VizTypeCanvas positions nodes with the subtree-width layout engine and
	// renders them directly.
	VizTypeCanvas = "canvas"

	// VizTypeGraphviz delegates positioning to Graphviz via a DOT rendering.
	VizTypeGraphviz = "graphviz"
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizTypeCanvas

// DefaultStyle is the default visual style.
const DefaultStyle = svg.StyleSimple

// Operations a pipeline run can trace.
const (
	OpInsert   = "insert"
	OpSearch   = "search"
	OpTraverse = "traverse"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	svg.StyleSimple:     true,
	svg.StyleChalkboard: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeCanvas:   true,
	VizTypeGraphviz: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Build options
	Values []int `json:"values"`

	// Trace options
	Op      string `json:"op,omitempty"`
	OpValue int    `json:"op_value,omitempty"`
	Order   string `json:"order,omitempty"` // traversal order when Op is "traverse"

	// Layout options
	HSpacing   float64 `json:"h_spacing,omitempty"`
	VSpacing   float64 `json:"v_spacing,omitempty"`
	Padding    float64 `json:"padding,omitempty"`
	NodeRadius float64 `json:"node_radius,omitempty"`

	// Render options
	VizType   string   `json:"viz_type,omitempty"`
	Formats   []string `json:"formats,omitempty"`
	Style     string   `json:"style,omitempty"`
	ShowNulls bool     `json:"show_nulls,omitempty"` // Graphviz: draw invisible placeholders for absent children
	Refresh   bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the built search tree.
	Tree *bst.Tree

	// TreeHash is the content hash of the tree snapshot.
	TreeHash string

	// Steps is the trace of the requested operation, nil when Op is empty.
	Steps []bst.Step

	// Layout contains the computed node positions.
	Layout layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	Height     int
	StepCount  int
	BuildTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: simple, chalkboard)", style)
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidVizType,
			"invalid viz_type: %q (must be one of: canvas, graphviz)", vizType)
	}
	return nil
}

// ValidateOp checks the operation and its arguments.
func ValidateOp(op, order string) error {
	switch op {
	case "", OpInsert, OpSearch:
		return nil
	case OpTraverse:
		if _, ok := bst.ParseOrder(order); !ok {
			return errors.New(errors.ErrCodeInvalidOrder,
				"invalid order: %q (must be one of: inorder, preorder, postorder)", order)
		}
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid op: %q (must be one of: insert, search, traverse)", op)
	}
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := ValidateOp(o.Op, o.Order); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.HSpacing == 0 {
		o.HSpacing = layout.DefaultHSpacing
	}
	if o.VSpacing == 0 {
		o.VSpacing = layout.DefaultVSpacing
	}
	if o.Padding == 0 {
		o.Padding = layout.DefaultPadding
	}
	if o.NodeRadius == 0 {
		o.NodeRadius = layout.DefaultNodeRadius
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// IsCanvas returns true if this is a canvas visualization.
func (o *Options) IsCanvas() bool {
	return o.VizType == "" || o.VizType == VizTypeCanvas
}

// IsGraphviz returns true if this is a graphviz visualization.
func (o *Options) IsGraphviz() bool {
	return o.VizType == VizTypeGraphviz
}

// LayoutOptions returns the layout engine options for these pipeline options.
func (o *Options) LayoutOptions() []layout.Option {
	return []layout.Option{
		layout.WithSpacing(o.HSpacing, o.VSpacing),
		layout.WithPadding(o.Padding),
		layout.WithNodeRadius(o.NodeRadius),
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		HSpacing: o.HSpacing,
		VSpacing: o.VSpacing,
		Padding:  o.Padding,
		Radius:   o.NodeRadius,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		VizType:   o.VizType,
		Format:    format,
		Style:     o.Style,
		ShowNulls: o.ShowNulls,
	}
}
