package grid

import (
	errs "github.com/matzehuels/gridboard/pkg/errors"
)

// ErrNoSpace is returned when a fixed-size grid has no free rectangle for an
// item. Check with errors.Is.
var ErrNoSpace = errs.New(errs.ErrCodeNoSpace, "no free rectangle in grid")

// Option configures a placement pass.
type Option func(*packer)

type packer struct {
	columns int
	rows    int
	fixed   bool
}

// WithColumns overrides the grid width (default [Columns]).
func WithColumns(n int) Option { return func(p *packer) { p.columns = n } }

// WithRows sets the initial row capacity of the scratch grid.
// The default is twice the number of sizes.
func WithRows(n int) Option { return func(p *packer) { p.rows = n } }

// WithFixedRows stops the scratch grid from growing. An item that does not
// fit fails the pass with [ErrNoSpace].
func WithFixedRows() Option { return func(p *packer) { p.fixed = true } }

// Place runs one first-fit step on g: it scans anchors row-major and marks the
// first free rectangle for s. It reports false when nothing fits; g is then
// left unchanged.
func Place(g *Grid, s Size) (Cell, bool) {
	for r := 0; r <= g.rows-s.Height; r++ {
		for c := 0; c <= g.cols-s.Width; c++ {
			at := Cell{Row: r, Col: c}
			if g.Fits(at, s) {
				g.Mark(at, s)
				return at, true
			}
		}
	}
	return Cell{}, false
}

// PlaceAll assigns a top-left cell to every size, in input order, on a fresh
// scratch grid. The result has the same length and order as sizes.
//
// A width outside 1..[MaxColumns] fails with INVALID_INPUT. Sizes with a
// non-positive span fail with INVALID_SIZE and sizes wider than the grid fail
// with TOO_WIDE, before anything is placed.
func PlaceAll(sizes []Size, opts ...Option) ([]Cell, error) {
	p := packer{columns: Columns, rows: 2 * len(sizes)}
	for _, opt := range opts {
		opt(&p)
	}
	if p.columns <= 0 || p.columns > MaxColumns {
		return nil, errs.New(errs.ErrCodeInvalidInput, "grid width must be between 1 and %d columns, got %d", MaxColumns, p.columns)
	}
	for i, s := range sizes {
		if err := errs.ValidateSpan(s.Height, s.Width, p.columns); err != nil {
			return nil, errs.Wrap(errs.GetCode(err), err, "size %d", i)
		}
	}

	g := NewGrid(p.rows, p.columns)
	cells := make([]Cell, len(sizes))
	for i, s := range sizes {
		at, ok := Place(g, s)
		for !ok {
			if p.fixed {
				return nil, errs.Wrap(errs.ErrCodeNoSpace, ErrNoSpace, "size %d (%dx%d) in %d rows", i, s.Height, s.Width, g.Rows())
			}
			g.Grow(s.Height)
			at, ok = Place(g, s)
		}
		cells[i] = at
	}
	return cells, nil
}
