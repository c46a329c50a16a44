// Package board orchestrates an ordered set of grid components through drag
// and drop reordering.
//
// # Overview
//
// A [Board] owns the ordered sequence of [Component] values. The order is the
// layout: every commit runs [grid.PlaceAll] over the component sizes in order
// and writes the returned cells back by position. Positions are never patched
// partially.
//
// Commits happen at exactly two points:
//
//   - Initial layout, in [New] and [NewRandom].
//   - Drag end over a different component, in [Board.DragEnd]. The dragged
//     component is moved to the drop target's index (remove, then insert) and
//     the whole board is re-placed.
//
// # Drag State
//
// A board is either [Idle] or [Dragging]. [Board.DragStart] records the
// dragged component; [Board.DragEnd] and [Board.DragCancel] clear it. Dropping
// a component on itself or outside any target commits nothing.
//
// # Live Preview
//
// While a drag is in flight the drag library asks, once per frame and per
// component, where that component would sit if the drag ended now.
// [Board.Preview] answers by placing a hypothetically reordered copy of the
// sequence and returning the screen translation between the committed and
// the candidate cell. Nothing is cached between frames; each call is a full,
// independent placement. [Board.PreviewAll] answers for every component from a
// single placement.
//
// [Board.Modify] is the per-frame modifier hook that keeps the dragged box
// inside its container via [grid.ClampOffset].
//
// # Concurrency
//
// A Board is not safe for concurrent use. Callers that share one across
// goroutines must serialise access.
package board
