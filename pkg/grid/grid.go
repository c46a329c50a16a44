package grid

import "fmt"

// Columns is the fixed width of the board grid in cells.
const Columns = 8

// MaxColumns bounds the grid width a caller may request.
const MaxColumns = 64

// Size is the extent of a component in grid cells.
type Size struct {
	Width  int `json:"width"`  // columns spanned
	Height int `json:"height"` // rows spanned
}

// Cell is a grid coordinate. For a placement it is the top-left anchor.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.Row, c.Col) }

// Rect is the cell range covered by a size anchored at a cell.
type Rect struct {
	Cell
	Size
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d@%s", r.Height, r.Width, r.Cell)
}

// Overlaps reports whether two cell ranges share at least one cell.
func (r Rect) Overlaps(o Rect) bool {
	return r.Row < o.Row+o.Height && o.Row < r.Row+r.Height &&
		r.Col < o.Col+o.Width && o.Col < r.Col+r.Width
}

// Grid is a scratch occupancy array. It is built fresh for every placement
// pass and discarded afterwards. Cells, once occupied, stay occupied.
type Grid struct {
	cols  int
	rows  int
	cells []bool
}

// NewGrid creates an empty grid of the given dimensions.
func NewGrid(rows, cols int) *Grid {
	rows = max(rows, 0)
	cols = max(cols, 0)
	return &Grid{cols: cols, rows: rows, cells: make([]bool, rows*cols)}
}

// Rows returns the current row capacity.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the grid width.
func (g *Grid) Cols() int { return g.cols }

// Occupied reports whether the cell at (row, col) is taken. Cells outside the
// grid report false.
func (g *Grid) Occupied(row, col int) bool {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return false
	}
	return g.cells[row*g.cols+col]
}

// Fits reports whether s anchored at c lies inside the grid on free cells only.
func (g *Grid) Fits(c Cell, s Size) bool {
	if c.Row < 0 || c.Col < 0 || c.Row+s.Height > g.rows || c.Col+s.Width > g.cols {
		return false
	}
	for r := c.Row; r < c.Row+s.Height; r++ {
		row := g.cells[r*g.cols : (r+1)*g.cols]
		for col := c.Col; col < c.Col+s.Width; col++ {
			if row[col] {
				return false
			}
		}
	}
	return true
}

// Mark occupies every cell of s anchored at c. The caller must have checked
// Fits; out-of-range cells are ignored.
func (g *Grid) Mark(c Cell, s Size) {
	for r := max(c.Row, 0); r < min(c.Row+s.Height, g.rows); r++ {
		for col := max(c.Col, 0); col < min(c.Col+s.Width, g.cols); col++ {
			g.cells[r*g.cols+col] = true
		}
	}
}

// Grow appends n empty rows.
func (g *Grid) Grow(n int) {
	if n <= 0 {
		return
	}
	g.cells = append(g.cells, make([]bool, n*g.cols)...)
	g.rows += n
}
