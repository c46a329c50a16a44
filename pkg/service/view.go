package service

import (
	"time"

	"github.com/matzehuels/gridboard/pkg/board"
	"github.com/matzehuels/gridboard/pkg/grid"
	"github.com/matzehuels/gridboard/pkg/session"
)

// View is the client-facing state of a board.
type View struct {
	ID         string            `json:"id"`
	Columns    int               `json:"columns"`
	Rows       int               `json:"rows"`
	Height     int               `json:"height"`
	State      string            `json:"state"`
	Dragging   string            `json:"dragging,omitempty"`
	Components []board.Component `json:"components"`
	CellSize   int               `json:"cell_size"`
	CellGap    int               `json:"cell_gap"`
	ExpiresAt  time.Time         `json:"expires_at"`
}

func newView(sess *session.Session, b *board.Board) *View {
	dragging, _ := b.Dragging()
	return &View{
		ID:         sess.ID,
		Columns:    b.Columns(),
		Rows:       b.Rows(),
		Height:     b.Height(),
		State:      b.State().String(),
		Dragging:   dragging,
		Components: b.Components(),
		CellSize:   grid.CellSize,
		CellGap:    grid.CellGap,
		ExpiresAt:  sess.ExpiresAt,
	}
}
