package cache

import "github.com/matzehuels/gridboard/pkg/grid"

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// Several gridboard servers can share one Redis instance by giving each its
// own prefix.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "gridboard:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// PlacementKey generates a prefixed key for placement caching.
func (k *ScopedKeyer) PlacementKey(sizes []grid.Size, columns int) string {
	return k.prefix + k.inner.PlacementKey(sizes, columns)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
