// Package server exposes the pipeline over HTTP.
//
// The server owns one live tree guarded by a mutex; the engine itself stays
// single-threaded. Mutating endpoints (insert, clear) change the live tree
// and return the operation's step trace, so a frontend can animate exactly
// what happened. The gallery endpoints persist named snapshots through a
// store backend.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/treetrace/pkg/bst"
	"github.com/matzehuels/treetrace/pkg/pipeline"
	"github.com/matzehuels/treetrace/pkg/store"
)

// Server holds the live tree and its collaborators.
type Server struct {
	mu      sync.Mutex
	tree    *bst.Tree
	runner  *pipeline.Runner
	gallery store.Store
	logger  *log.Logger

	// Render defaults applied when a request doesn't specify them.
	defaults pipeline.Options
}

// New creates a server around an empty tree.
// If gallery is nil, the gallery endpoints return 503.
func New(runner *pipeline.Runner, gallery store.Store, defaults pipeline.Options, logger *log.Logger) *Server {
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		tree:     bst.New(),
		runner:   runner,
		gallery:  gallery,
		defaults: defaults,
		logger:   logger,
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Get("/tree", s.handleGetTree)
		r.Delete("/tree", s.handleClearTree)
		r.Post("/insert", s.handleInsert)
		r.Post("/search", s.handleSearch)
		r.Get("/traverse/{order}", s.handleTraverse)
		r.Get("/layout", s.handleLayout)
		r.Get("/render.svg", s.handleRenderSVG)

		r.Get("/trees", s.handleListTrees)
		r.Post("/trees", s.handleSaveTree)
		r.Get("/trees/{id}", s.handleGetSavedTree)
		r.Delete("/trees/{id}", s.handleDeleteSavedTree)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
