package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treetrace/internal/config"
	"github.com/matzehuels/treetrace/pkg/cache"
	"github.com/matzehuels/treetrace/pkg/pipeline"
	"github.com/matzehuels/treetrace/pkg/treeio"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string   // output file path (or base path for multiple formats)
	vizType   string   // visualization type: "canvas" or "graphviz"
	formats   []string // output formats: "svg", "png", "pdf", "dot", "json"
	style     string   // visual style: "simple" or "chalkboard"
	showNulls bool     // graphviz: draw invisible placeholders for absent children
	refresh   bool     // bypass the cache
}

// newRenderCmd creates the render command for generating visualizations.
func newRenderCmd(cfg *config.Config) *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a tree file to SVG, PNG, PDF, DOT, or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if opts.vizType == "" {
				opts.vizType = cfg.Render.VizType
			}
			if opts.style == "" {
				opts.style = cfg.Render.Style
			}
			return runRender(cmd.Context(), args[0], &opts, cfg)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.vizType, "type", "t", "", "visualization type: canvas (default), graphviz")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json (comma-separated)")
	cmd.Flags().StringVar(&opts.style, "style", "", "visual style: simple (default), chalkboard")
	cmd.Flags().BoolVar(&opts.showNulls, "nulls", false, "graphviz: reserve space for absent children")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// runRender loads the tree from input and renders it through the pipeline.
func runRender(ctx context.Context, input string, opts *renderOpts, cfg *config.Config) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	tree, err := treeio.ReadTreeFile(input)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded tree: %d nodes, height %d", tree.Size(), tree.Height())

	runner, err := newRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer runner.Close()

	snap := treeio.FromTree(tree)
	result, err := runner.Execute(ctx, pipeline.Options{
		Values:     snap.Values,
		VizType:    opts.vizType,
		Formats:    opts.formats,
		Style:      opts.style,
		ShowNulls:  opts.showNulls,
		Refresh:    opts.refresh,
		HSpacing:   cfg.Layout.HSpacing,
		VSpacing:   cfg.Layout.VSpacing,
		Padding:    cfg.Layout.Padding,
		NodeRadius: cfg.Layout.NodeRadius,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		path := base + "." + format
		if opts.output != "" && len(opts.formats) == 1 {
			path = opts.output
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	printStats(result.Stats.NodeCount, result.Stats.Height, 0, result.CacheInfo.RenderHit)
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(opts.formats)))
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. If output has a
// format extension, it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// newRunner builds a pipeline runner with the configured cache backend.
func newRunner(ctx context.Context, cfg *config.Config) (*pipeline.Runner, error) {
	c, err := newCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(c, nil, loggerFromContext(ctx)), nil
}

// newCache builds the configured cache backend. Backend failures fall back
// to a null cache so rendering still works without Redis.
func newCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		c, err := cache.NewRedisCache(ctx, cfg.Cache.RedisAddr)
		if err != nil {
			loggerFromContext(ctx).Warnf("redis unavailable, caching disabled: %v", err)
			return cache.NewNullCache(), nil
		}
		return c, nil
	default:
		dir, err := cfg.CacheDir()
		if err != nil {
			return nil, err
		}
		return cache.NewFileCache(dir)
	}
}
