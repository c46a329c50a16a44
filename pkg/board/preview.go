package board

import (
	"slices"

	errs "github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/grid"
)

// candidate places the sequence as it would be if the component at
// activeIndex were dropped on overIndex.
func (b *Board) candidate(activeIndex, overIndex int) ([]Component, error) {
	n := len(b.components)
	if err := errs.ValidateIndex("active", activeIndex, n); err != nil {
		return nil, err
	}
	if err := errs.ValidateIndex("over", overIndex, n); err != nil {
		return nil, err
	}
	return b.layout(Move(slices.Clone(b.components), activeIndex, overIndex))
}

// Preview returns the translation that shows the component at index (in the
// committed order) where it would land if the component at activeIndex were
// dropped on overIndex now. It is the sorting-strategy hook of the drag
// library and depends only on the committed order and the three indices.
func (b *Board) Preview(activeIndex, overIndex, index int) (grid.Offset, error) {
	if err := errs.ValidateIndex("item", index, len(b.components)); err != nil {
		return grid.Offset{}, err
	}
	next, err := b.candidate(activeIndex, overIndex)
	if err != nil {
		return grid.Offset{}, err
	}

	old := b.components[index]
	for _, c := range next {
		if c.ID == old.ID {
			return grid.ScreenOffset(old.Cell(), c.Cell()), nil
		}
	}
	return grid.Offset{}, errs.New(errs.ErrCodeInternal, "component %q missing from candidate order", old.ID)
}

// PreviewAll returns Preview for every component, indexed like the committed
// order, from a single placement.
func (b *Board) PreviewAll(activeIndex, overIndex int) ([]grid.Offset, error) {
	next, err := b.candidate(activeIndex, overIndex)
	if err != nil {
		return nil, err
	}

	at := make(map[string]grid.Cell, len(next))
	for _, c := range next {
		at[c.ID] = c.Cell()
	}
	out := make([]grid.Offset, len(b.components))
	for i, c := range b.components {
		out[i] = grid.ScreenOffset(c.Cell(), at[c.ID])
	}
	return out, nil
}

// Modify is the per-frame drag modifier: it keeps the dragged box inside the
// container. Without both measurements the transform passes through.
func (b *Board) Modify(transform grid.Offset, dragged, container *grid.Box) grid.Offset {
	if dragged == nil || container == nil {
		return transform
	}
	return grid.ClampOffset(transform, *dragged, *container)
}
