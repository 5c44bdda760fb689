// Package cache provides caching for pipeline stages.
//
// Rendering a tree is cheap, but Graphviz and rsvg-convert invocations are
// not, so the pipeline caches computed layouts and rendered artifacts keyed
// by content hashes. Three backends exist:
//
//   - FileCache: directory-backed, for the CLI
//   - RedisCache: shared cache for the serve command
//   - NullCache: caching disabled
//
// Keys are produced by a [Keyer] so CLI and server agree on the scheme, and
// a [ScopedKeyer] can prefix keys for namespace isolation on shared Redis.
package cache

import (
	"context"
	"time"
)

// TTLs for the different cached object kinds.
const (
	// TTLLayout is how long computed layouts are kept.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact is how long rendered artifacts (SVG, PNG, ...) are kept.
	TTLArtifact = 30 * 24 * time.Hour
)

// Cache is the interface all cache backends implement.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the layout parameters that affect cached geometry.
type LayoutKeyOpts struct {
	HSpacing float64
	VSpacing float64
	Padding  float64
	Radius   float64
}

// ArtifactKeyOpts are the render parameters that affect cached artifacts.
type ArtifactKeyOpts struct {
	VizType   string
	Format    string
	Style     string
	ShowNulls bool
}

// Keyer generates cache keys. Implementations must be deterministic so that
// identical inputs always map to the same key.
type Keyer interface {
	// TreeKey generates a key for a tree snapshot hash.
	TreeKey(snapshotHash string) string

	// LayoutKey generates a key for a computed layout.
	LayoutKey(treeHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// TreeKey generates a key for a tree snapshot hash.
func (k *DefaultKeyer) TreeKey(snapshotHash string) string {
	return hashKey("tree", snapshotHash)
}

// LayoutKey generates a key for a computed layout.
func (k *DefaultKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", treeHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
