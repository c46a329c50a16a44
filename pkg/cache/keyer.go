package cache

import (
	"github.com/matzehuels/gridboard/pkg/grid"
)

// Keyer generates cache keys for each entry type.
type Keyer interface {
	// PlacementKey identifies the placement of an ordered size sequence on a
	// grid with the given column count.
	PlacementKey(sizes []grid.Size, columns int) string

	// ArtifactKey identifies a rendered artifact of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds the render options that affect artifact output.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Style  string `json:"style,omitempty"`
	Labels bool   `json:"labels,omitempty"`
}

// DefaultKeyer hashes key inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// PlacementKey returns "placement:<hash>" over the column count and sizes.
func (k *DefaultKeyer) PlacementKey(sizes []grid.Size, columns int) string {
	return hashKey("placement", columns, sizes)
}

// ArtifactKey returns "artifact:<hash>" over the layout hash and options.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = (*DefaultKeyer)(nil)
