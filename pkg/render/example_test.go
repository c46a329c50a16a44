package render_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/gridboard/pkg/board"
	"github.com/matzehuels/gridboard/pkg/render"
)

func ExampleRenderSVG() {
	b, _ := board.New([]board.Component{
		{ID: "clock", RowSpan: 1, ColSpan: 1},
		{ID: "photo", RowSpan: 2, ColSpan: 2},
	})

	svg := string(render.RenderSVG(b.Components(), render.WithLabels()))

	fmt.Println("SVG starts with:", svg[:4])
	fmt.Println("components:", strings.Count(svg, `class="component"`))
	// Output:
	// SVG starts with: <svg
	// components: 2
}

func ExampleToDOT() {
	dot := render.ToDOT([]board.Component{{ID: "clock", RowSpan: 1, ColSpan: 1}})
	fmt.Println(strings.Contains(dot, `pos="68.0,-68.0!"`))
	// Output:
	// true
}
