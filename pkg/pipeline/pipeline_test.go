package pipeline

import (
	"context"
	"testing"

	"github.com/matzehuels/treetrace/pkg/cache"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"dot", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		style   string
		wantErr bool
	}{
		{"simple", false},
		{"chalkboard", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateStyle(tt.style)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStyle(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
		}
	}
}

func TestValidateVizType(t *testing.T) {
	tests := []struct {
		vizType string
		wantErr bool
	}{
		{"canvas", false},
		{"graphviz", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateVizType(tt.vizType)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateVizType(%q) error = %v, wantErr %v", tt.vizType, err, tt.wantErr)
		}
	}
}

func TestValidateOp(t *testing.T) {
	tests := []struct {
		op      string
		order   string
		wantErr bool
	}{
		{"", "", false},
		{"insert", "", false},
		{"search", "", false},
		{"traverse", "inorder", false},
		{"traverse", "preorder", false},
		{"traverse", "postorder", false},
		{"traverse", "sideways", true},
		{"traverse", "", true},
		{"delete", "", true},
	}

	for _, tt := range tests {
		err := ValidateOp(tt.op, tt.order)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateOp(%q, %q) error = %v, wantErr %v", tt.op, tt.order, err, tt.wantErr)
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Values: []int{50, 30, 70}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.VizType != VizTypeCanvas {
		t.Errorf("VizType default = %q", opts.VizType)
	}
	if opts.Style != DefaultStyle {
		t.Errorf("Style default = %q", opts.Style)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats default = %v", opts.Formats)
	}
	if opts.HSpacing == 0 || opts.VSpacing == 0 || opts.Padding == 0 || opts.NodeRadius == 0 {
		t.Errorf("layout defaults not applied: %+v", opts)
	}

	// Idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call: %v", err)
	}
}

func TestBuildAndTrace(t *testing.T) {
	opts := Options{Values: []int{50, 30, 70}, Op: OpSearch, OpValue: 70}
	tree := BuildTree(opts)
	if tree.Size() != 3 {
		t.Fatalf("tree size = %d", tree.Size())
	}

	steps := Trace(tree, opts)
	if len(steps) == 0 {
		t.Fatal("search trace is empty")
	}
	last := steps[len(steps)-1]
	if last.Action.String() != "FOUND" {
		t.Errorf("last action = %v", last.Action)
	}

	// No op means no trace
	if got := Trace(tree, Options{}); got != nil {
		t.Errorf("Trace without op = %v", got)
	}
}

func TestExecuteCanvasSVG(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Values:  []int{50, 30, 70, 20},
		Op:      OpInsert,
		OpValue: 60,
		Formats: []string{FormatSVG, FormatJSON, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.NodeCount != 5 {
		t.Errorf("node count = %d, want 5 (insert applied)", result.Stats.NodeCount)
	}
	if result.Stats.StepCount == 0 {
		t.Error("insert trace is empty")
	}
	if result.TreeHash == "" {
		t.Error("tree hash not set")
	}
	for _, format := range []string{FormatSVG, FormatJSON, FormatDOT} {
		if len(result.Artifacts[format]) == 0 {
			t.Errorf("missing %s artifact", format)
		}
	}
	if len(result.Layout.Positions) != 5 {
		t.Errorf("layout has %d positions", len(result.Layout.Positions))
	}
}

func TestExecuteCachesLayoutAndArtifacts(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	opts := Options{Values: []int{50, 30, 70}, Formats: []string{FormatSVG}}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should miss: %+v", first.CacheInfo)
	}

	second, err := runner.Execute(context.Background(), Options{Values: []int{50, 30, 70}, Formats: []string{FormatSVG}})
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit: %+v", second.CacheInfo)
	}
	if string(first.Artifacts[FormatSVG]) != string(second.Artifacts[FormatSVG]) {
		t.Error("cached artifact differs from rendered artifact")
	}

	// Refresh bypasses the cache
	third, err := runner.Execute(context.Background(), Options{Values: []int{50, 30, 70}, Formats: []string{FormatSVG}, Refresh: true})
	if err != nil {
		t.Fatalf("third Execute: %v", err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Errorf("refresh run should miss: %+v", third.CacheInfo)
	}
}

func TestExecuteRejectsInvalidOptions(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	cases := []Options{
		{Values: []int{1}, Formats: []string{"bmp"}},
		{Values: []int{1}, Style: "neon"},
		{Values: []int{1}, VizType: "orbit"},
		{Values: []int{1}, Op: OpTraverse, Order: "sideways"},
	}
	for i, opts := range cases {
		if _, err := runner.Execute(context.Background(), opts); err == nil {
			t.Errorf("case %d: Execute should fail", i)
		}
	}
}
