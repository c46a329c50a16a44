package board_test

import (
	"fmt"

	"github.com/matzehuels/gridboard/pkg/board"
)

func Example() {
	b, err := board.New([]board.Component{
		{ID: "clock", RowSpan: 1, ColSpan: 1},
		{ID: "notes", RowSpan: 1, ColSpan: 1},
		{ID: "photo", RowSpan: 2, ColSpan: 2},
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	// Frame hook: where would "photo" sit if it were dropped on "clock" now?
	o, _ := b.Preview(2, 0, 2)
	fmt.Printf("preview photo: x=%.0f y=%.0f\n", o.X, o.Y)

	_ = b.DragStart("photo")
	changed, _ := b.DragEnd("photo", "clock")
	fmt.Println("changed:", changed)

	for _, c := range b.Components() {
		fmt.Printf("%s %v\n", c.ID, c.Cell())
	}
	fmt.Println("rows:", b.Rows())
	// Output:
	// preview photo: x=-304 y=0
	// changed: true
	// photo (0,0)
	// clock (0,2)
	// notes (0,3)
	// rows: 1
}
