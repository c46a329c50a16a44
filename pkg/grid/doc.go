// Package grid places rectangles onto a fixed-width, dynamically tall grid.
//
// # Overview
//
// A grid is [Columns] cells wide and grows downward as needed. Components are
// described only by their [Size] in cells; the packer assigns each one a
// top-left [Cell]. Placement is a deterministic first-fit scan:
//
//  1. Sizes are processed strictly in input order. Order is the tie-break and
//     the sole determinant of the final layout.
//  2. For each size the scratch grid is scanned row-major (top row first, then
//     left column) and the first anchor whose whole rectangle is free wins.
//  3. The chosen rectangle is marked occupied before the next size is placed,
//     so later components can never overlap earlier ones.
//
// No attempt is made to minimise total height or wasted space beyond this
// greedy scan. Because the result depends only on the ordered size sequence,
// reordering the input and re-running [PlaceAll] is a complete re-layout.
//
// # Exhaustion
//
// The scratch grid starts with twice as many rows as there are sizes. When no
// anchor fits, the grid grows by the item's height and the scan restarts,
// which gives exactly the result an unbounded grid would. [WithFixedRows]
// disables growth; exhaustion is then reported as [ErrNoSpace] rather than
// placing anything on top of an existing component.
//
// # Screen Geometry
//
// Rendering uses square cells of [CellSize] separated by [CellGap]. The grid
// is row-major while the screen is x/y, so the mapping is made explicit in one
// place: [ScreenOffset] turns a column delta into screen X and a row delta into
// screen Y. [ClampOffset] keeps a dragged box inside its container.
//
//	cells, err := grid.PlaceAll([]grid.Size{
//	    {Width: 1, Height: 1},
//	    {Width: 1, Height: 1},
//	    {Width: 2, Height: 1},
//	})
//	// cells: (0,0) (0,1) (0,2)
package grid
