package session

import (
	"context"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	// Missing session is nil, nil
	got, err := store.Get(ctx, "nope")
	if err != nil || got != nil {
		t.Fatalf("Get missing: %v, %v", got, err)
	}

	sess := New()
	sess.TutorialSeen = true
	sess.LastTree = "mytree.json"
	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err = store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.ID != sess.ID || !got.TutorialSeen || got.LastTree != "mytree.json" {
		t.Errorf("Get = %+v", got)
	}

	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, _ = store.Get(ctx, sess.ID)
	if got != nil {
		t.Error("session should be gone after Delete")
	}

	// Deleting again is not an error
	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Errorf("Delete missing: %v", err)
	}
}

func TestNewSessionHasIdentity(t *testing.T) {
	a, b := New(), New()
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("session IDs not unique: %q vs %q", a.ID, b.ID)
	}
	if a.CreatedAt.IsZero() || a.UpdatedAt.IsZero() {
		t.Error("timestamps should be set")
	}
}

func TestCLIStoreUsesFixedID(t *testing.T) {
	ctx := context.Background()
	inner, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	c := &CLIStore{store: inner, sessionID: defaultCLISessionID}

	sess, err := c.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sess.ID != defaultCLISessionID {
		t.Errorf("fresh session ID = %q", sess.ID)
	}

	sess.TutorialSeen = true
	if err := c.Save(ctx, sess); err != nil {
		t.Fatalf("Save: %v", err)
	}

	again, err := c.Load(ctx)
	if err != nil {
		t.Fatalf("Load again: %v", err)
	}
	if !again.TutorialSeen {
		t.Error("TutorialSeen should persist")
	}
	if again.UpdatedAt.Before(again.CreatedAt) {
		t.Error("UpdatedAt should not precede CreatedAt")
	}
}
