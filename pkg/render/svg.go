package render

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"html"
	"slices"

	"github.com/matzehuels/gridboard/pkg/board"
	"github.com/matzehuels/gridboard/pkg/grid"
)

// Margin is the space around the grid on the rendered canvas.
const Margin = 24.0

var palette = []string{
	"#8ecae6", "#ffb703", "#90be6d", "#f28482",
	"#b8b8ff", "#f6bd60", "#84a59d", "#cdb4db",
}

// Fill returns the fill color for a component ID. Colors are stable across
// renders so a component keeps its color when it moves.
func Fill(id string) string {
	h := fnv.New32a()
	h.Write([]byte(id))
	return palette[h.Sum32()%uint32(len(palette))]
}

// Canvas returns the rendered width and height for a grid with the given
// column count and covered row count. An empty grid still gets one row.
func Canvas(columns, rows int) (width, height float64) {
	return grid.Span(columns) + 2*Margin, grid.Span(max(rows, 1)) + 2*Margin
}

// RenderSVG draws the components at their assigned cells.
func RenderSVG(components []board.Component, opts ...Option) []byte {
	o := newOptions(opts)

	rows := 0
	for _, c := range components {
		rows = max(rows, c.Row+c.RowSpan)
	}
	width, height := Canvas(o.columns, rows)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	buf.WriteString(`  <rect class="canvas" width="100%" height="100%" fill="#fafafa"/>` + "\n")
	fmt.Fprintf(&buf, `  <g transform="translate(%.1f, %.1f)">`+"\n", Margin, Margin)

	renderSlots(&buf, o.columns, max(rows, 1))

	// The dragged component goes last so it is drawn on top.
	order := make([]int, len(components))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return boolRank(components[a].ID == o.dragging) - boolRank(components[b].ID == o.dragging)
	})

	for _, i := range order {
		c := components[i]
		box := c.Bounds()
		if i < len(o.offsets) && o.offsets[i] != (grid.Offset{}) {
			renderGhost(&buf, box)
			box = box.Translate(o.offsets[i])
		}
		renderComponent(&buf, c, box, c.ID == o.dragging, o.labels)
	}

	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func renderSlots(buf *bytes.Buffer, columns, rows int) {
	for r := 0; r < rows; r++ {
		for c := 0; c < columns; c++ {
			o := grid.Origin(grid.Cell{Row: r, Col: c})
			fmt.Fprintf(buf, `    <rect class="slot" x="%.1f" y="%.1f" width="%d" height="%d" rx="12" fill="#eeeeee"/>`+"\n",
				o.X, o.Y, grid.CellSize, grid.CellSize)
		}
	}
}

func renderGhost(buf *bytes.Buffer, box grid.Box) {
	fmt.Fprintf(buf, `    <rect class="ghost" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="12" fill="none" stroke="#999999" stroke-dasharray="6 4"/>`+"\n",
		box.Left, box.Top, box.Width, box.Height)
}

func renderComponent(buf *bytes.Buffer, c board.Component, box grid.Box, dragging, labels bool) {
	id := html.EscapeString(c.ID)
	stroke, strokeWidth := "#333333", 1.5
	if dragging {
		stroke, strokeWidth = "#d62828", 4
	}

	fmt.Fprintf(buf, `    <rect id="component-%s" class="component" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="12" fill="%s" stroke="%s" stroke-width="%.1f"/>`+"\n",
		id, box.Left, box.Top, box.Width, box.Height, Fill(c.ID), stroke, strokeWidth)

	if !labels {
		return
	}
	cx, cy := box.Left+box.Width/2, box.Top+box.Height/2
	fmt.Fprintf(buf, `    <text class="label" x="%.1f" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="20">%s</text>`+"\n",
		cx, cy, id)
	fmt.Fprintf(buf, `    <text class="span" x="%.1f" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="14" fill="#555555">%dx%d</text>`+"\n",
		cx, cy+22, c.RowSpan, c.ColSpan)
}
