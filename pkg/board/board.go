package board

import (
	"math"
	"math/rand/v2"
	"slices"

	errs "github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/grid"
)

// ActivationDistance is how far, in screen units, a pointer must travel
// before a press becomes a drag. Shorter movements are clicks.
const ActivationDistance = 8

// Activated reports whether a pointer delta is long enough to start a drag.
func Activated(delta grid.Offset) bool {
	return math.Hypot(delta.X, delta.Y) > ActivationDistance
}

// State is the externally visible drag state of a board.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Placer computes placements for an ordered size sequence.
// [grid.PlaceAll] is the default; callers may substitute a memoizing wrapper.
type Placer func(sizes []grid.Size, opts ...grid.Option) ([]grid.Cell, error)

// Option configures a Board.
type Option func(*Board)

// WithColumns sets the grid width (default [grid.Columns]).
func WithColumns(n int) Option { return func(b *Board) { b.columns = n } }

// WithPlacer replaces the placement function.
func WithPlacer(p Placer) Option {
	return func(b *Board) {
		if p != nil {
			b.place = p
		}
	}
}

// Board owns an ordered component sequence and its committed layout.
type Board struct {
	columns    int
	place      Placer
	components []Component
	dragging   string
}

// New creates a board from components in the given order and runs the
// initial layout. Incoming Row and Col values are ignored.
func New(components []Component, opts ...Option) (*Board, error) {
	b := &Board{columns: grid.Columns, place: grid.PlaceAll}
	for _, opt := range opts {
		opt(b)
	}
	if err := validate(components, b.columns); err != nil {
		return nil, err
	}

	placed, err := b.layout(components)
	if err != nil {
		return nil, err
	}
	b.components = placed
	return b, nil
}

// NewRandom creates a board of n random components (see [Random]) and runs
// the initial layout in generation order.
func NewRandom(n int, rng *rand.Rand, opts ...Option) (*Board, error) {
	return New(Random(n, rng), opts...)
}

func validate(components []Component, columns int) error {
	if columns <= 0 || columns > grid.MaxColumns {
		return errs.New(errs.ErrCodeInvalidInput, "grid width must be between 1 and %d columns, got %d", grid.MaxColumns, columns)
	}
	seen := make(map[string]struct{}, len(components))
	for _, c := range components {
		if err := errs.ValidateID(c.ID); err != nil {
			return err
		}
		if _, dup := seen[c.ID]; dup {
			return errs.New(errs.ErrCodeDuplicateID, "duplicate component id %q", c.ID)
		}
		seen[c.ID] = struct{}{}
		if err := errs.ValidateSpan(c.RowSpan, c.ColSpan, columns); err != nil {
			return errs.Wrap(errs.GetCode(err), err, "component %q", c.ID)
		}
	}
	return nil
}

// layout places a copy of order and returns it with cells assigned by
// position. order itself is not modified.
func (b *Board) layout(order []Component) ([]Component, error) {
	sizes := make([]grid.Size, len(order))
	for i, c := range order {
		sizes[i] = c.Size()
	}
	cells, err := b.place(sizes, grid.WithColumns(b.columns))
	if err != nil {
		return nil, err
	}
	if len(cells) != len(order) {
		return nil, errs.New(errs.ErrCodeInternal, "placer returned %d cells for %d components", len(cells), len(order))
	}

	placed := slices.Clone(order)
	for i := range placed {
		placed[i].Row = cells[i].Row
		placed[i].Col = cells[i].Col
	}
	return placed, nil
}

// =============================================================================
// Accessors
// =============================================================================

// Components returns a copy of the ordered, placed components.
func (b *Board) Components() []Component { return slices.Clone(b.components) }

// Len returns the number of components.
func (b *Board) Len() int { return len(b.components) }

// Columns returns the grid width.
func (b *Board) Columns() int { return b.columns }

// Index returns the position of the component with the given ID, or -1.
func (b *Board) Index(id string) int {
	return slices.IndexFunc(b.components, func(c Component) bool { return c.ID == id })
}

// Component returns the component with the given ID.
func (b *Board) Component(id string) (Component, bool) {
	if i := b.Index(id); i >= 0 {
		return b.components[i], true
	}
	return Component{}, false
}

// Rows returns the number of grid rows the rendering container should
// declare: one more than the largest assigned row, or 0 for an empty board.
func (b *Board) Rows() int {
	if len(b.components) == 0 {
		return 0
	}
	top := 0
	for _, c := range b.components {
		top = max(top, c.Row)
	}
	return top + 1
}

// Height returns the number of rows actually covered, counting the full
// span of the lowest components.
func (b *Board) Height() int {
	h := 0
	for _, c := range b.components {
		h = max(h, c.Row+c.RowSpan)
	}
	return h
}

// State returns the current drag state.
func (b *Board) State() State {
	if b.dragging != "" {
		return Dragging
	}
	return Idle
}

// Dragging returns the ID of the component being dragged, if any.
func (b *Board) Dragging() (string, bool) {
	return b.dragging, b.dragging != ""
}

// =============================================================================
// Drag State Machine
// =============================================================================

// DragStart moves the board from Idle to Dragging with id as the dragged
// component.
func (b *Board) DragStart(id string) error {
	if b.dragging != "" {
		return errs.New(errs.ErrCodeDragInProgress, "component %q is already being dragged", b.dragging)
	}
	if b.Index(id) < 0 {
		return errs.New(errs.ErrCodeUnknownComponent, "unknown component %q", id)
	}
	b.dragging = id
	return nil
}

// DragEnd finishes the drag of activeID released over overID ("" when
// released outside any target) and reports whether the layout changed.
//
// When overID names a different component, the dragged component is moved to
// overID's index and the board is re-placed. On error the board keeps its
// drag state so the caller can retry or cancel.
func (b *Board) DragEnd(activeID, overID string) (bool, error) {
	if b.dragging == "" {
		return false, errs.New(errs.ErrCodeNotDragging, "no drag in progress")
	}
	if activeID != b.dragging {
		return false, errs.New(errs.ErrCodeInvalidInput, "drag ended for %q but %q is being dragged", activeID, b.dragging)
	}
	to := -1
	if overID != "" {
		if to = b.Index(overID); to < 0 {
			return false, errs.New(errs.ErrCodeUnknownComponent, "unknown drop target %q", overID)
		}
	}

	b.dragging = ""
	if to < 0 || overID == activeID {
		return false, nil
	}

	from := b.Index(activeID)
	placed, err := b.layout(Move(slices.Clone(b.components), from, to))
	if err != nil {
		return false, err
	}
	b.components = placed
	return true, nil
}

// DragCancel abandons any drag in progress without committing anything.
func (b *Board) DragCancel() {
	b.dragging = ""
}
