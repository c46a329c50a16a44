package grid

// Rendered cell metrics, in the same unit as the rendered layout.
const (
	CellSize = 136
	CellGap  = 16

	// Pitch is the distance between the origins of two adjacent cells.
	Pitch = CellSize + CellGap
)

// Offset is a screen-space translation.
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Box is an axis-aligned screen rectangle.
type Box struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (b Box) Right() float64 { return b.Left + b.Width }

// Bottom returns the y coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Top + b.Height }

// Translate returns b moved by o.
func (b Box) Translate(o Offset) Box {
	b.Left += o.X
	b.Top += o.Y
	return b
}

// ScreenOffset converts the move of a component from one anchor cell to
// another into a screen translation. This is the only place grid axes meet
// screen axes: the column delta drives X and the row delta drives Y.
func ScreenOffset(from, to Cell) Offset {
	return Offset{
		X: float64((to.Col - from.Col) * Pitch),
		Y: float64((to.Row - from.Row) * Pitch),
	}
}

// Origin returns the screen position of the top-left corner of c.
func Origin(c Cell) Offset {
	return ScreenOffset(Cell{}, c)
}

// Span returns the rendered length of n consecutive cells including the gaps
// between them. Span(0) is 0.
func Span(n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(n*CellSize + (n-1)*CellGap)
}

// Bounds returns the screen box of s anchored at c.
func Bounds(c Cell, s Size) Box {
	o := Origin(c)
	return Box{Left: o.X, Top: o.Y, Width: Span(s.Width), Height: Span(s.Height)}
}

// ClampOffset restricts a proposed drag offset so that box, moved by it, stays
// within container. Each axis is clamped independently. An axis whose moved
// edges stay inside keeps its proposed value; otherwise the offset that puts
// the crossing edge flush with the container is substituted. The leading
// (left, top) edge wins when the box is larger than the container.
func ClampOffset(offset Offset, box, container Box) Offset {
	out := offset

	switch {
	case box.Top+offset.Y <= container.Top:
		out.Y = container.Top - box.Top
	case box.Bottom()+offset.Y >= container.Bottom():
		out.Y = container.Bottom() - box.Bottom()
	}

	switch {
	case box.Left+offset.X <= container.Left:
		out.X = container.Left - box.Left
	case box.Right()+offset.X >= container.Right():
		out.X = container.Right() - box.Right()
	}

	return out
}
