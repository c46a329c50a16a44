package render

import (
	"github.com/matzehuels/gridboard/pkg/grid"
)

// Option configures rendering.
type Option func(*options)

type options struct {
	columns  int
	labels   bool
	dragging string
	offsets  []grid.Offset
	scale    float64
}

func newOptions(opts []Option) options {
	o := options{columns: grid.Columns, scale: 1}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithColumns sets the grid width the canvas is sized for (default
// [grid.Columns]).
func WithColumns(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.columns = n
		}
	}
}

// WithLabels prints each component's ID and span inside its rectangle.
func WithLabels() Option { return func(o *options) { o.labels = true } }

// WithDragging highlights the component with the given ID.
func WithDragging(id string) Option { return func(o *options) { o.dragging = id } }

// WithPreview draws each component translated by offsets[i] (as returned by
// board.PreviewAll), with its committed position as a dashed outline.
func WithPreview(offsets []grid.Offset) Option {
	return func(o *options) { o.offsets = offsets }
}

// WithScale sets the PNG scale factor.
func WithScale(s float64) Option { return func(o *options) { o.scale = s } }
