package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/treetrace/internal/config"
	"github.com/matzehuels/treetrace/internal/server"
	"github.com/matzehuels/treetrace/pkg/pipeline"
	"github.com/matzehuels/treetrace/pkg/store"
)

// newServeCmd creates the serve command exposing the pipeline over HTTP.
func newServeCmd(cfg *config.Config) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tree API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			if addr == "" {
				addr = cfg.Server.Addr
			}

			runner, err := newRunner(ctx, cfg)
			if err != nil {
				return err
			}
			defer runner.Close()

			gallery, err := newGallery(cmd, cfg)
			if err != nil {
				return err
			}
			defer gallery.Close(ctx)

			defaults := pipeline.Options{
				VizType:    cfg.Render.VizType,
				Style:      cfg.Render.Style,
				HSpacing:   cfg.Layout.HSpacing,
				VSpacing:   cfg.Layout.VSpacing,
				Padding:    cfg.Layout.Padding,
				NodeRadius: cfg.Layout.NodeRadius,
			}

			srv := server.New(runner, gallery, defaults, logger)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}

// newGallery builds the configured gallery store: MongoDB when a URI is
// configured, a local file store otherwise. The Mongo connect pings with
// retries, so it gets a spinner.
func newGallery(cmd *cobra.Command, cfg *config.Config) (store.Store, error) {
	if cfg.Server.MongoURI != "" {
		sp := newSpinnerWithContext(cmd.Context(), "Connecting to MongoDB")
		sp.Start()
		gallery, err := store.NewMongoStore(cmd.Context(), cfg.Server.MongoURI, cfg.Server.MongoDB)
		if err != nil {
			sp.StopWithError("MongoDB unavailable")
			return nil, err
		}
		sp.StopWithSuccess("Connected to MongoDB")
		return gallery, nil
	}
	return store.NewFileStore("")
}
