package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/gridboard/pkg/board"
	"github.com/matzehuels/gridboard/pkg/cache"
	errs "github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/grid"
)

// PackRequest is a stateless placement request.
type PackRequest struct {
	Sizes   []grid.Size `json:"sizes"`
	Columns int         `json:"columns,omitempty"`

	// Fixed reports NO_SPACE instead of growing the scratch grid when the
	// initial 2n rows are exhausted. Fixed requests bypass the cache.
	Fixed bool `json:"fixed,omitempty"`
}

// PackResult holds the placement of a PackRequest.
type PackResult struct {
	Cells []grid.Cell `json:"cells"`
	Rows  int         `json:"rows"`

	CacheHit bool          `json:"cache_hit"`
	Duration time.Duration `json:"duration_ns"`
}

// Pack places sizes without touching any board.
func (s *Service) Pack(ctx context.Context, req PackRequest) (*PackResult, error) {
	if len(req.Sizes) > MaxComponents {
		return nil, errs.New(errs.ErrCodeInvalidInput, "at most %d sizes per request", MaxComponents)
	}
	columns, err := requestColumns(req.Columns)
	if err != nil {
		return nil, err
	}
	start := time.Now()

	var (
		cells []grid.Cell
		hit   bool
	)
	if req.Fixed {
		cells, err = grid.PlaceAll(req.Sizes, grid.WithColumns(columns), grid.WithFixedRows())
	} else {
		cells, hit, err = s.place(ctx, req.Sizes, columns)
	}
	if err != nil {
		return nil, err
	}

	rows := 0
	for _, c := range cells {
		rows = max(rows, c.Row+1)
	}
	res := &PackResult{Cells: cells, Rows: rows, CacheHit: hit, Duration: time.Since(start)}
	s.Logger.Debug("packed sizes", "count", len(req.Sizes), "columns", columns, "rows", rows, "cache_hit", hit)
	return res, nil
}

// requestColumns resolves a requested grid width. Zero means [grid.Columns].
func requestColumns(n int) (int, error) {
	if n == 0 {
		return grid.Columns, nil
	}
	if n < 0 || n > grid.MaxColumns {
		return 0, errs.New(errs.ErrCodeInvalidInput, "columns must be between 1 and %d, got %d", grid.MaxColumns, n)
	}
	return n, nil
}

// place returns the placement of sizes, from the cache when possible.
// Cache failures are logged and fall back to computing.
func (s *Service) place(ctx context.Context, sizes []grid.Size, columns int) ([]grid.Cell, bool, error) {
	key := s.Keyer.PlacementKey(sizes, columns)

	data, hit, err := s.Cache.Get(ctx, key)
	if err != nil {
		s.Logger.Warn("placement cache read failed", "error", err)
	}
	if hit {
		var cells []grid.Cell
		if err := json.Unmarshal(data, &cells); err == nil && len(cells) == len(sizes) {
			return cells, true, nil
		}
	}

	cells, err := grid.PlaceAll(sizes, grid.WithColumns(columns))
	if err != nil {
		return nil, false, err
	}
	if data, err := json.Marshal(cells); err == nil {
		if err := s.Cache.Set(ctx, key, data, cache.TTLPlacement); err != nil {
			s.Logger.Warn("placement cache write failed", "error", err)
		}
	}
	return cells, false, nil
}

// placer adapts place to a board. The board always passes its own column
// count, which is the one given here.
func (s *Service) placer(ctx context.Context, columns int) board.Placer {
	if columns <= 0 {
		columns = grid.Columns
	}
	return func(sizes []grid.Size, _ ...grid.Option) ([]grid.Cell, error) {
		cells, _, err := s.place(ctx, sizes, columns)
		return cells, err
	}
}
