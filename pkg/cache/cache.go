// Package cache provides pluggable result caching for treeamps.
//
// Basis generation is pure and deterministic, so caching is purely an
// optimization: it saves recomputing large searches and re-rendering
// artifacts (SVG in particular) for inputs that were already seen. Three
// backends are provided:
//
//   - FileCache: JSON entries under a directory (XDG cache dir in the CLI)
//   - RedisCache: shared cache for server deployments
//   - NullCache: caching disabled
//
// Keys are derived by a Keyer from the full generation configuration, so
// two configurations that differ in any constraint never collide.
package cache

import (
	"context"
	"time"
)

// TTLs for the different entry types. Generated bases never go stale, but
// bounded lifetimes keep cache directories from growing without limit.
const (
	// TTLBasis is the lifetime of cached generation results.
	TTLBasis = 30 * 24 * time.Hour

	// TTLArtifact is the lifetime of cached rendered artifacts.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
//
// Get returns (data, true, nil) on a hit and (nil, false, nil) on a miss;
// errors are reserved for backend failures. Implementations must be safe
// for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// BasisKeyOpts identifies a generation configuration for cache keying.
// String fields use the canonical flag spellings so that keys are stable
// across processes.
type BasisKeyOpts struct {
	Legs           int    `json:"legs"`
	Transversality string `json:"transversality"`
	PolPattern     string `json:"pol_pattern"`
	Degree         int    `json:"degree"`
	EE             int    `json:"ee"`
}

// ArtifactKeyOpts identifies a rendered artifact for cache keying.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// Keyer generates cache keys for the generation pipeline.
type Keyer interface {
	// BasisKey returns the key for a generated basis.
	BasisKey(opts BasisKeyOpts) string

	// ArtifactKey returns the key for an artifact rendered from the basis
	// with the given content hash.
	ArtifactKey(basisHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard Keyer implementation using hashed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// BasisKey generates a key of the form "basis:<sha256>".
func (k *DefaultKeyer) BasisKey(opts BasisKeyOpts) string {
	return hashKey("basis", opts)
}

// ArtifactKey generates a key of the form "artifact:<sha256>".
func (k *DefaultKeyer) ArtifactKey(basisHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", basisHash, opts)
}
