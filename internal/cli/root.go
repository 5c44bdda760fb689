package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treetrace/internal/config"
	"github.com/matzehuels/treetrace/pkg/buildinfo"
)

// Execute runs the treetrace CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands, loads the
// config file, configures logging based on the --verbose flag, and executes
// the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)
	cfg := config.Default()

	root := &cobra.Command{
		Use:          "treetrace",
		Short:        "TreeTrace visualizes binary search tree operations step by step",
		Long:         `TreeTrace is a CLI tool for learning binary search trees: every insert, search, and traversal produces a step trace that can be printed, played back interactively, or rendered as a visualization.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = loaded

			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/treetrace/config.toml)")

	root.AddCommand(newInsertCmd(&cfg))
	root.AddCommand(newSearchCmd(&cfg))
	root.AddCommand(newTraverseCmd(&cfg))
	root.AddCommand(newClearCmd())
	root.AddCommand(newRenderCmd(&cfg))
	root.AddCommand(newPlayCmd(&cfg))
	root.AddCommand(newServeCmd(&cfg))
	root.AddCommand(newTutorialCmd())
	root.AddCommand(newCacheCmd(&cfg))
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
