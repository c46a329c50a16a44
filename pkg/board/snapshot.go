package board

import (
	"slices"

	errs "github.com/matzehuels/gridboard/pkg/errors"
)

// Snapshot is the serializable state of a board.
type Snapshot struct {
	Columns    int         `json:"columns"`
	Components []Component `json:"components"`
	Dragging   string      `json:"dragging,omitempty"`
}

// Snapshot captures the board's order, layout and drag state.
func (b *Board) Snapshot() Snapshot {
	return Snapshot{
		Columns:    b.columns,
		Components: slices.Clone(b.components),
		Dragging:   b.dragging,
	}
}

// Restore rebuilds a board from a snapshot. Positions are re-derived from the
// stored order rather than trusted, so a restored board always satisfies the
// no-overlap invariant. A zero Columns means [grid.Columns].
func Restore(s Snapshot, opts ...Option) (*Board, error) {
	if s.Columns > 0 {
		opts = append([]Option{WithColumns(s.Columns)}, opts...)
	}
	b, err := New(s.Components, opts...)
	if err != nil {
		return nil, err
	}
	if s.Dragging != "" {
		if b.Index(s.Dragging) < 0 {
			return nil, errs.New(errs.ErrCodeUnknownComponent, "snapshot drags unknown component %q", s.Dragging)
		}
		b.dragging = s.Dragging
	}
	return b, nil
}
