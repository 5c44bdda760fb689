// Package session persists per-user CLI state.
//
// A session remembers what the learner has already done: whether the tutorial
// was shown, which tree file was last worked on, and preferred playback
// settings. The engine itself stays stateless; anything that must survive
// between invocations lives here.
//
// Two layers are provided:
//   - Store: the storage interface, with a file-backed implementation
//   - CLIStore: a convenience wrapper that manages the single local session
//     the CLI uses
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a session does not exist.
var ErrNotFound = errors.New("session not found")

// Session stores local CLI state between invocations.
type Session struct {
	ID           string    `json:"id"`
	TutorialSeen bool      `json:"tutorial_seen"`
	LastTree     string    `json:"last_tree,omitempty"`
	PlayInterval int       `json:"play_interval_ms,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// New creates a session with a fresh ID and creation timestamp.
func New() *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates the modification timestamp.
func (s *Session) Touch() {
	s.UpdatedAt = time.Now().UTC()
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID. Returns nil, nil if it doesn't exist.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, sessionID string) error
}
