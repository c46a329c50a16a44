package board

import (
	"math/rand/v2"
	"strconv"

	"github.com/matzehuels/gridboard/pkg/grid"
)

// DefaultSize is the number of components on a freshly generated board.
const DefaultSize = 9

// Component is a rectangle on the board. RowSpan and ColSpan are fixed for the
// component's lifetime; Row and Col are assigned by layout passes only.
type Component struct {
	ID      string `json:"id"`
	RowSpan int    `json:"row_span"`
	ColSpan int    `json:"col_span"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
}

// Size returns the component's extent in cells.
func (c Component) Size() grid.Size { return grid.Size{Width: c.ColSpan, Height: c.RowSpan} }

// Cell returns the assigned top-left cell.
func (c Component) Cell() grid.Cell { return grid.Cell{Row: c.Row, Col: c.Col} }

// Rect returns the cell range the component covers.
func (c Component) Rect() grid.Rect { return grid.Rect{Cell: c.Cell(), Size: c.Size()} }

// Bounds returns the component's rendered box relative to the grid origin.
func (c Component) Bounds() grid.Box { return grid.Bounds(c.Cell(), c.Size()) }

// Random generates n unplaced components with IDs "0".."n-1" and row and
// column spans drawn from {1, 2}.
func Random(n int, rng *rand.Rand) []Component {
	cs := make([]Component, max(n, 0))
	for i := range cs {
		cs[i] = Component{
			ID:      strconv.Itoa(i),
			RowSpan: 1 + rng.IntN(2),
			ColSpan: 1 + rng.IntN(2),
		}
	}
	return cs
}

// Move returns s with the element at from relocated to index to: it is
// removed first and then inserted, shifting the elements in between. s is
// modified in place. Out-of-range indices return s unchanged.
func Move[T any](s []T, from, to int) []T {
	if from < 0 || from >= len(s) || to < 0 || to >= len(s) || from == to {
		return s
	}
	v := s[from]
	if from < to {
		copy(s[from:to], s[from+1:to+1])
	} else {
		copy(s[to+1:from+1], s[to:from])
	}
	s[to] = v
	return s
}
