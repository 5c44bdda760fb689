// Package store persists named tree snapshots (the gallery).
//
// A Document pairs a user-chosen name with a tree snapshot. Snapshots are
// preorder value lists, so a document is small and reproduces the exact tree
// shape on load. Two backends exist:
//
//   - FileStore: directory-backed, one JSON file per document
//   - MongoStore: shared storage for multi-instance serve deployments
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/treetrace/pkg/treeio"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrDuplicateName is returned when a document name is already taken.
	ErrDuplicateName = errors.New("document name already exists")
)

// Document is a named saved tree.
type Document struct {
	ID        string          `json:"id" bson:"_id"`
	Name      string          `json:"name" bson:"name"`
	Snapshot  treeio.Snapshot `json:"snapshot" bson:"snapshot"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
}

// NewDocument creates a document with a fresh ID and creation timestamp.
func NewDocument(name string, snap treeio.Snapshot) *Document {
	return &Document{
		ID:        uuid.NewString(),
		Name:      name,
		Snapshot:  snap,
		CreatedAt: time.Now().UTC(),
	}
}

// Store is the interface for gallery storage backends.
type Store interface {
	// List returns all documents, newest first.
	List(ctx context.Context) ([]*Document, error)

	// Get retrieves a document by ID. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*Document, error)

	// Save stores a document. Returns ErrDuplicateName if another document
	// already uses the same name.
	Save(ctx context.Context, doc *Document) error

	// Delete removes a document. Returns ErrNotFound if it doesn't exist.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
