package service

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/matzehuels/gridboard/pkg/board"
	errs "github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/grid"
	"github.com/matzehuels/gridboard/pkg/observability"
	"github.com/matzehuels/gridboard/pkg/session"
)

// CreateRequest describes a new board. When Components is empty, Size
// random components are generated (default [Service.BoardSize]).
type CreateRequest struct {
	Components []board.Component `json:"components,omitempty"`
	Size       int               `json:"size,omitempty"`
	Seed       *uint64           `json:"seed,omitempty"`
	Columns    int               `json:"columns,omitempty"`
}

// MaxComponents bounds the size of a single board.
const MaxComponents = 1024

// Create lays out a new board and stores it in a fresh session.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*View, error) {
	if len(req.Components) > MaxComponents || req.Size > MaxComponents {
		return nil, errs.New(errs.ErrCodeInvalidInput, "a board holds at most %d components", MaxComponents)
	}
	columns, err := requestColumns(req.Columns)
	if err != nil {
		return nil, err
	}
	components := req.Components
	if len(components) == 0 {
		n := req.Size
		if n <= 0 {
			n = s.BoardSize
		}
		if n <= 0 {
			n = board.DefaultSize
		}
		components = board.Random(n, newRand(req.Seed))
	}

	opts := []board.Option{board.WithPlacer(s.placer(ctx, columns)), board.WithColumns(columns)}

	start := time.Now()
	b, err := board.New(components, opts...)
	if err != nil {
		observability.Board().OnLayout(ctx, "", len(components), 0, time.Since(start), err)
		return nil, err
	}

	sess := session.New(b.Snapshot(), s.TTL)
	observability.Board().OnLayout(ctx, sess.ID, b.Len(), b.Rows(), time.Since(start), nil)
	if err := s.Store.Set(ctx, sess); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "save board")
	}

	s.Logger.Info("created board", "id", sess.ID, "components", b.Len(), "rows", b.Rows())
	return newView(sess, b), nil
}

func newRand(seed *uint64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewPCG(*seed, *seed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Get returns the current state of a board.
func (s *Service) Get(ctx context.Context, id string) (*View, error) {
	sess, b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return newView(sess, b), nil
}

// Delete removes a board.
func (s *Service) Delete(ctx context.Context, id string) error {
	unlock, err := s.lock(id)
	if err != nil {
		return err
	}
	defer unlock()
	defer s.locks.Delete(id)

	if _, _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, id); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "delete board %s", id)
	}
	s.Logger.Info("deleted board", "id", id)
	return nil
}

// =============================================================================
// Drag Lifecycle
// =============================================================================

// DragStartRequest starts a drag. When Delta is set, the drag only starts if
// the pointer has moved past [board.ActivationDistance]; shorter movements
// are clicks and leave the board idle.
type DragStartRequest struct {
	Component string       `json:"component"`
	Delta     *grid.Offset `json:"delta,omitempty"`
}

// DragStart begins dragging a component and reports whether the drag
// started.
func (s *Service) DragStart(ctx context.Context, id string, req DragStartRequest) (*View, bool, error) {
	if req.Delta != nil && !board.Activated(*req.Delta) {
		v, err := s.Get(ctx, id)
		return v, false, err
	}

	v, err := s.update(ctx, id, func(b *board.Board) (bool, error) {
		if err := b.DragStart(req.Component); err != nil {
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return nil, false, err
	}

	observability.Board().OnDragStart(ctx, id, req.Component)
	s.Logger.Debug("drag started", "board", id, "component", req.Component)
	return v, true, nil
}

// DragEnd drops the dragged component over another ("" for no target) and
// reports whether the layout changed.
func (s *Service) DragEnd(ctx context.Context, id, activeID, overID string) (*View, bool, error) {
	var changed bool
	start := time.Now()

	v, err := s.update(ctx, id, func(b *board.Board) (bool, error) {
		var err error
		changed, err = b.DragEnd(activeID, overID)
		if err != nil {
			return false, err
		}
		// The drag marker was cleared even when the order is unchanged.
		return true, nil
	})
	if err != nil {
		return nil, false, err
	}

	observability.Board().OnDragEnd(ctx, id, activeID, overID, changed)
	if changed {
		observability.Board().OnLayout(ctx, id, len(v.Components), v.Rows, time.Since(start), nil)
	}
	s.Logger.Debug("drag ended", "board", id, "component", activeID, "over", overID, "changed", changed)
	return v, changed, nil
}

// DragCancel abandons the drag in progress, if any.
func (s *Service) DragCancel(ctx context.Context, id string) (*View, error) {
	return s.update(ctx, id, func(b *board.Board) (bool, error) {
		wasDragging := b.State() == board.Dragging
		b.DragCancel()
		return wasDragging, nil
	})
}

// =============================================================================
// Per-frame Hooks
// =============================================================================

// Preview returns, for every component in committed order, the translation
// that shows where it would land if the component at activeIndex were
// dropped on overIndex. Nothing is stored.
func (s *Service) Preview(ctx context.Context, id string, activeIndex, overIndex int) ([]grid.Offset, error) {
	_, b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	offsets, err := b.PreviewAll(activeIndex, overIndex)
	observability.Board().OnPreview(ctx, id, time.Since(start), err)
	return offsets, err
}

// PreviewOne is Preview for a single component index.
func (s *Service) PreviewOne(ctx context.Context, id string, activeIndex, overIndex, index int) (grid.Offset, error) {
	_, b, err := s.load(ctx, id)
	if err != nil {
		return grid.Offset{}, err
	}

	start := time.Now()
	o, err := b.Preview(activeIndex, overIndex, index)
	observability.Board().OnPreview(ctx, id, time.Since(start), err)
	return o, err
}

// ModifyRequest carries one frame of drag-modifier input. Missing boxes
// mean the measurement is not available yet.
type ModifyRequest struct {
	Transform grid.Offset `json:"transform"`
	Dragged   *grid.Box   `json:"dragged,omitempty"`
	Container *grid.Box   `json:"container,omitempty"`
}

// Modify clamps a drag transform so the dragged box stays in its container.
func (s *Service) Modify(ctx context.Context, id string, req ModifyRequest) (grid.Offset, error) {
	_, b, err := s.load(ctx, id)
	if err != nil {
		return grid.Offset{}, err
	}
	return b.Modify(req.Transform, req.Dragged, req.Container), nil
}
