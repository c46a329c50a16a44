package service

import (
	"context"
	"encoding/json"

	"github.com/matzehuels/gridboard/pkg/cache"
	errs "github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/render"
)

// RenderRequest selects the output of Render.
type RenderRequest struct {
	Format render.Format
	Labels bool

	// Preview, when set, draws the live preview of dropping the component
	// at Preview[0] on Preview[1].
	Preview *[2]int
}

// Render draws a board. Artifacts are cached by board content and options.
func (s *Service) Render(ctx context.Context, id string, req RenderRequest) ([]byte, error) {
	_, b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Format == "" {
		req.Format = render.FormatSVG
	}

	opts := []render.Option{render.WithColumns(b.Columns())}
	if req.Labels {
		opts = append(opts, render.WithLabels())
	}
	if dragging, ok := b.Dragging(); ok {
		opts = append(opts, render.WithDragging(dragging))
	}
	style := "static"
	if req.Preview != nil {
		offsets, err := b.PreviewAll(req.Preview[0], req.Preview[1])
		if err != nil {
			return nil, err
		}
		opts = append(opts, render.WithPreview(offsets))
		style = "preview"
	}

	snap, err := json.Marshal(struct {
		Board   any     `json:"board"`
		Preview *[2]int `json:"preview,omitempty"`
	}{b.Snapshot(), req.Preview})
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "hash board %s", id)
	}
	key := s.Keyer.ArtifactKey(cache.Hash(snap), cache.ArtifactKeyOpts{
		Format: string(req.Format),
		Style:  style,
		Labels: req.Labels,
	})

	if data, hit, err := s.Cache.Get(ctx, key); err == nil && hit {
		return data, nil
	}

	out, err := render.Render(ctx, req.Format, b.Components(), opts...)
	if err != nil {
		return nil, err
	}
	if err := s.Cache.Set(ctx, key, out, cache.TTLArtifact); err != nil {
		s.Logger.Warn("artifact cache write failed", "error", err)
	}
	return out, nil
}
