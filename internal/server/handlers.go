package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/treetrace/pkg/bst"
	xerrors "github.com/matzehuels/treetrace/pkg/errors"
	"github.com/matzehuels/treetrace/pkg/pipeline"
	"github.com/matzehuels/treetrace/pkg/store"
	"github.com/matzehuels/treetrace/pkg/treeio"
)

// treeResponse describes the live tree.
type treeResponse struct {
	Snapshot treeio.Snapshot `json:"snapshot"`
	Size     int             `json:"size"`
	Height   int             `json:"height"`
}

// traceResponse carries an operation's step trace plus the resulting tree.
type traceResponse struct {
	Steps []bst.Step   `json:"steps"`
	Tree  treeResponse `json:"tree"`
}

// newTraceResponse normalizes a nil trace (traversal of an empty tree) to an
// empty slice so the JSON field is [] rather than null.
func newTraceResponse(steps []bst.Step, tree treeResponse) traceResponse {
	if steps == nil {
		steps = []bst.Step{}
	}
	return traceResponse{Steps: steps, Tree: tree}
}

// valueRequest is the body for insert and search.
type valueRequest struct {
	Value int `json:"value"`
}

// saveRequest is the body for saving the live tree to the gallery.
type saveRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleGetTree(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := s.describeTree()
	s.mu.Unlock()
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleClearTree(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.tree.Clear()
	resp := s.describeTree()
	s.mu.Unlock()

	s.logger.Info("cleared tree")
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	var req valueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, xerrors.New(xerrors.ErrCodeInvalidInput, "invalid request body"))
		return
	}

	s.mu.Lock()
	steps := s.tree.Insert(req.Value)
	resp := newTraceResponse(steps, s.describeTree())
	s.mu.Unlock()

	s.logger.Info("insert", "value", req.Value, "steps", len(steps))
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req valueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, xerrors.New(xerrors.ErrCodeInvalidInput, "invalid request body"))
		return
	}

	s.mu.Lock()
	steps := s.tree.Search(req.Value)
	resp := newTraceResponse(steps, s.describeTree())
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTraverse(w http.ResponseWriter, r *http.Request) {
	order, ok := bst.ParseOrder(chi.URLParam(r, "order"))
	if !ok {
		respondError(w, xerrors.New(xerrors.ErrCodeInvalidOrder,
			"invalid order: %q (must be one of: inorder, preorder, postorder)", chi.URLParam(r, "order")))
		return
	}

	s.mu.Lock()
	steps := s.tree.Traverse(order)
	resp := newTraceResponse(steps, s.describeTree())
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts := s.renderOptions(r)

	s.mu.Lock()
	l, _, err := s.runner.ComputeLayoutWithCacheInfo(r.Context(), s.tree, opts)
	s.mu.Unlock()
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, l)
}

func (s *Server) handleRenderSVG(w http.ResponseWriter, r *http.Request) {
	opts := s.renderOptions(r)
	opts.Formats = []string{pipeline.FormatSVG}

	s.mu.Lock()
	l, _, err := s.runner.ComputeLayoutWithCacheInfo(r.Context(), s.tree, opts)
	if err != nil {
		s.mu.Unlock()
		respondError(w, err)
		return
	}
	artifacts, _, err := s.runner.RenderWithCacheInfo(r.Context(), l, s.tree, opts)
	s.mu.Unlock()
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(artifacts[pipeline.FormatSVG])
}

// renderOptions builds pipeline options from query parameters layered over
// the server defaults.
func (s *Server) renderOptions(r *http.Request) pipeline.Options {
	opts := s.defaults
	if style := r.URL.Query().Get("style"); style != "" {
		opts.Style = style
	}
	if viz := r.URL.Query().Get("viz"); viz != "" {
		opts.VizType = viz
	}
	return opts
}

// =============================================================================
// Gallery
// =============================================================================

func (s *Server) handleListTrees(w http.ResponseWriter, r *http.Request) {
	if s.gallery == nil {
		respondError(w, xerrors.New(xerrors.ErrCodeUnsupported, "gallery is not configured"))
		return
	}
	docs, err := s.gallery.List(r.Context())
	if err != nil {
		respondError(w, xerrors.Wrap(xerrors.ErrCodeStore, err, "list documents"))
		return
	}
	if docs == nil {
		docs = []*store.Document{}
	}
	respondJSON(w, http.StatusOK, docs)
}

func (s *Server) handleSaveTree(w http.ResponseWriter, r *http.Request) {
	if s.gallery == nil {
		respondError(w, xerrors.New(xerrors.ErrCodeUnsupported, "gallery is not configured"))
		return
	}

	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, xerrors.New(xerrors.ErrCodeInvalidInput, "invalid request body"))
		return
	}
	if err := xerrors.ValidateDocumentName(req.Name); err != nil {
		respondError(w, err)
		return
	}

	s.mu.Lock()
	snap := treeio.FromTree(s.tree)
	s.mu.Unlock()

	doc := store.NewDocument(req.Name, snap)
	if err := s.gallery.Save(r.Context(), doc); err != nil {
		respondError(w, err)
		return
	}

	s.logger.Info("saved tree", "name", req.Name, "id", doc.ID)
	respondJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleGetSavedTree(w http.ResponseWriter, r *http.Request) {
	if s.gallery == nil {
		respondError(w, xerrors.New(xerrors.ErrCodeUnsupported, "gallery is not configured"))
		return
	}

	doc, err := s.gallery.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	// ?load=true replaces the live tree with the saved snapshot.
	if r.URL.Query().Get("load") == "true" {
		tree, err := treeio.ToTree(doc.Snapshot)
		if err != nil {
			respondError(w, xerrors.Wrap(xerrors.ErrCodeInvalidSnapshot, err, "load snapshot"))
			return
		}
		s.mu.Lock()
		s.tree = tree
		s.mu.Unlock()
		s.logger.Info("loaded tree", "name", doc.Name, "nodes", tree.Size())
	}

	respondJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteSavedTree(w http.ResponseWriter, r *http.Request) {
	if s.gallery == nil {
		respondError(w, xerrors.New(xerrors.ErrCodeUnsupported, "gallery is not configured"))
		return
	}
	if err := s.gallery.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// describeTree summarizes the live tree. Caller must hold s.mu.
func (s *Server) describeTree() treeResponse {
	return treeResponse{
		Snapshot: treeio.FromTree(s.tree),
		Size:     s.tree.Size(),
		Height:   s.tree.Height(),
	}
}

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Error string       `json:"error"`
	Code  xerrors.Code `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, err error) {
	respondJSON(w, statusFor(err), errorResponse{
		Error: xerrors.UserMessage(err),
		Code:  xerrors.GetCode(err),
	})
}

// statusFor maps application errors to HTTP status codes.
func statusFor(err error) int {
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, store.ErrDuplicateName) {
		return http.StatusConflict
	}
	switch xerrors.GetCode(err) {
	case xerrors.ErrCodeInvalidInput, xerrors.ErrCodeInvalidValue, xerrors.ErrCodeInvalidFormat,
		xerrors.ErrCodeInvalidStyle, xerrors.ErrCodeInvalidVizType, xerrors.ErrCodeInvalidOrder,
		xerrors.ErrCodeInvalidSnapshot, xerrors.ErrCodeInvalidName:
		return http.StatusBadRequest
	case xerrors.ErrCodeNotFound, xerrors.ErrCodeTreeNotFound, xerrors.ErrCodeDocumentNotFound:
		return http.StatusNotFound
	case xerrors.ErrCodeUnsupported:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
