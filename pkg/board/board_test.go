package board

import (
	"math/rand/v2"
	"reflect"
	"testing"

	errs "github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/grid"
)

func abc() []Component {
	return []Component{
		{ID: "A", RowSpan: 1, ColSpan: 1},
		{ID: "B", RowSpan: 1, ColSpan: 1},
		{ID: "C", RowSpan: 2, ColSpan: 2},
	}
}

func mustNew(t *testing.T, cs []Component, opts ...Option) *Board {
	t.Helper()
	b, err := New(cs, opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return b
}

func cells(b *Board) map[string]grid.Cell {
	out := make(map[string]grid.Cell, b.Len())
	for _, c := range b.Components() {
		out[c.ID] = c.Cell()
	}
	return out
}

func ids(b *Board) []string {
	var out []string
	for _, c := range b.Components() {
		out = append(out, c.ID)
	}
	return out
}

func assertNoOverlap(t *testing.T, b *Board) {
	t.Helper()
	cs := b.Components()
	for i := range cs {
		if cs[i].Col+cs[i].ColSpan > b.Columns() {
			t.Errorf("%s at %v exceeds %d columns", cs[i].ID, cs[i].Cell(), b.Columns())
		}
		for j := i + 1; j < len(cs); j++ {
			if cs[i].Rect().Overlaps(cs[j].Rect()) {
				t.Errorf("%s %v overlaps %s %v", cs[i].ID, cs[i].Rect(), cs[j].ID, cs[j].Rect())
			}
		}
	}
}

func TestNewInitialLayout(t *testing.T) {
	b := mustNew(t, abc())

	want := map[string]grid.Cell{"A": {Row: 0, Col: 0}, "B": {Row: 0, Col: 1}, "C": {Row: 0, Col: 2}}
	if got := cells(b); !reflect.DeepEqual(got, want) {
		t.Errorf("cells = %v, want %v", got, want)
	}
	if b.State() != Idle {
		t.Errorf("State() = %v, want idle", b.State())
	}
	if b.Rows() != 1 {
		t.Errorf("Rows() = %d, want 1", b.Rows())
	}
	if b.Height() != 2 {
		t.Errorf("Height() = %d, want 2", b.Height())
	}
}

func TestNewIgnoresIncomingPositions(t *testing.T) {
	cs := abc()
	cs[0].Row, cs[0].Col = 5, 5
	b := mustNew(t, cs)
	if c, _ := b.Component("A"); c.Cell() != (grid.Cell{}) {
		t.Errorf("A = %v, want (0,0)", c.Cell())
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		cs   []Component
		opts []Option
		code errs.Code
	}{
		{"empty id", []Component{{ID: "", RowSpan: 1, ColSpan: 1}}, nil, errs.ErrCodeInvalidInput},
		{"duplicate id", []Component{{ID: "a", RowSpan: 1, ColSpan: 1}, {ID: "a", RowSpan: 1, ColSpan: 1}}, nil, errs.ErrCodeDuplicateID},
		{"zero span", []Component{{ID: "a", RowSpan: 0, ColSpan: 1}}, nil, errs.ErrCodeInvalidSize},
		{"too wide", []Component{{ID: "a", RowSpan: 1, ColSpan: 9}}, nil, errs.ErrCodeTooWide},
		{"too wide for narrow board", []Component{{ID: "a", RowSpan: 1, ColSpan: 3}}, []Option{WithColumns(2)}, errs.ErrCodeTooWide},
		{"no columns", nil, []Option{WithColumns(0)}, errs.ErrCodeInvalidInput},
		{"too many columns", nil, []Option{WithColumns(grid.MaxColumns + 1)}, errs.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cs, tt.opts...)
			if !errs.Is(err, tt.code) {
				t.Errorf("New() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestEmptyBoard(t *testing.T) {
	b := mustNew(t, nil)
	if b.Rows() != 0 || b.Height() != 0 || b.Len() != 0 {
		t.Errorf("empty board: Rows=%d Height=%d Len=%d", b.Rows(), b.Height(), b.Len())
	}
}

func TestNewRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 42))
	b, err := NewRandom(DefaultSize, rng)
	if err != nil {
		t.Fatalf("NewRandom() error: %v", err)
	}
	if b.Len() != DefaultSize {
		t.Fatalf("Len() = %d, want %d", b.Len(), DefaultSize)
	}
	for _, c := range b.Components() {
		if c.RowSpan < 1 || c.RowSpan > 2 || c.ColSpan < 1 || c.ColSpan > 2 {
			t.Errorf("%s spans %dx%d, want within {1,2}", c.ID, c.RowSpan, c.ColSpan)
		}
	}
	if got := ids(b); got[0] != "0" || got[DefaultSize-1] != "8" {
		t.Errorf("ids = %v, want 0..8", got)
	}
	assertNoOverlap(t, b)
}

func TestDragCommit(t *testing.T) {
	b := mustNew(t, abc())

	if err := b.DragStart("A"); err != nil {
		t.Fatalf("DragStart() error: %v", err)
	}
	if id, ok := b.Dragging(); !ok || id != "A" || b.State() != Dragging {
		t.Fatalf("Dragging() = %q, %v; State() = %v", id, ok, b.State())
	}

	changed, err := b.DragEnd("A", "B")
	if err != nil {
		t.Fatalf("DragEnd() error: %v", err)
	}
	if !changed {
		t.Error("DragEnd() changed = false, want true")
	}
	if b.State() != Idle {
		t.Errorf("State() = %v after DragEnd, want idle", b.State())
	}
	if got, want := ids(b), []string{"B", "A", "C"}; !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	want := map[string]grid.Cell{"B": {Row: 0, Col: 0}, "A": {Row: 0, Col: 1}, "C": {Row: 0, Col: 2}}
	if got := cells(b); !reflect.DeepEqual(got, want) {
		t.Errorf("cells = %v, want %v", got, want)
	}
}

func TestDragMoveDownTheList(t *testing.T) {
	cs := []Component{
		{ID: "wide", RowSpan: 1, ColSpan: 7},
		{ID: "pair", RowSpan: 1, ColSpan: 2},
		{ID: "unit", RowSpan: 1, ColSpan: 1},
	}
	b := mustNew(t, cs)
	// wide (0,0); pair (1,0); unit (0,7)

	if err := b.DragStart("wide"); err != nil {
		t.Fatal(err)
	}
	if _, err := b.DragEnd("wide", "unit"); err != nil {
		t.Fatal(err)
	}

	// [pair, unit, wide]: pair (0,0); unit (0,2); wide (1,0)
	want := map[string]grid.Cell{"pair": {Row: 0, Col: 0}, "unit": {Row: 0, Col: 2}, "wide": {Row: 1, Col: 0}}
	if got := cells(b); !reflect.DeepEqual(got, want) {
		t.Errorf("cells = %v, want %v", got, want)
	}
	if b.Rows() != 2 {
		t.Errorf("Rows() = %d, want 2", b.Rows())
	}
}

func TestDragEndWithoutChange(t *testing.T) {
	tests := []struct {
		name string
		over string
	}{
		{"dropped on itself", "B"},
		{"dropped outside", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustNew(t, abc())
			before := b.Components()

			if err := b.DragStart("B"); err != nil {
				t.Fatal(err)
			}
			changed, err := b.DragEnd("B", tt.over)
			if err != nil {
				t.Fatalf("DragEnd() error: %v", err)
			}
			if changed {
				t.Error("DragEnd() changed = true, want false")
			}
			if !reflect.DeepEqual(b.Components(), before) {
				t.Errorf("components = %v, want unchanged %v", b.Components(), before)
			}
			if b.State() != Idle {
				t.Errorf("State() = %v, want idle", b.State())
			}
		})
	}
}

func TestDragErrors(t *testing.T) {
	t.Run("start unknown", func(t *testing.T) {
		b := mustNew(t, abc())
		if err := b.DragStart("Z"); !errs.Is(err, errs.ErrCodeUnknownComponent) {
			t.Errorf("DragStart(Z) = %v, want UNKNOWN_COMPONENT", err)
		}
		if b.State() != Idle {
			t.Error("failed DragStart changed state")
		}
	})

	t.Run("start twice", func(t *testing.T) {
		b := mustNew(t, abc())
		_ = b.DragStart("A")
		if err := b.DragStart("B"); !errs.Is(err, errs.ErrCodeDragInProgress) {
			t.Errorf("second DragStart = %v, want DRAG_IN_PROGRESS", err)
		}
		if id, _ := b.Dragging(); id != "A" {
			t.Errorf("Dragging() = %q, want A", id)
		}
	})

	t.Run("end while idle", func(t *testing.T) {
		b := mustNew(t, abc())
		if _, err := b.DragEnd("A", "B"); !errs.Is(err, errs.ErrCodeNotDragging) {
			t.Errorf("DragEnd() = %v, want NOT_DRAGGING", err)
		}
	})

	t.Run("end for another component", func(t *testing.T) {
		b := mustNew(t, abc())
		_ = b.DragStart("A")
		if _, err := b.DragEnd("B", "C"); !errs.Is(err, errs.ErrCodeInvalidInput) {
			t.Errorf("DragEnd() = %v, want INVALID_INPUT", err)
		}
		if b.State() != Dragging {
			t.Error("failed DragEnd cleared the drag")
		}
	})

	t.Run("end over unknown target", func(t *testing.T) {
		b := mustNew(t, abc())
		_ = b.DragStart("A")
		if _, err := b.DragEnd("A", "Z"); !errs.Is(err, errs.ErrCodeUnknownComponent) {
			t.Errorf("DragEnd() = %v, want UNKNOWN_COMPONENT", err)
		}
		if b.State() != Dragging {
			t.Error("failed DragEnd cleared the drag")
		}
	})
}

func TestDragCancel(t *testing.T) {
	b := mustNew(t, abc())
	before := b.Components()

	_ = b.DragStart("C")
	b.DragCancel()

	if b.State() != Idle {
		t.Errorf("State() = %v, want idle", b.State())
	}
	if !reflect.DeepEqual(b.Components(), before) {
		t.Error("DragCancel changed the layout")
	}
	if err := b.DragStart("A"); err != nil {
		t.Errorf("DragStart after cancel: %v", err)
	}
}

func TestRowsInvariant(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	b, err := NewRandom(20, rng)
	if err != nil {
		t.Fatal(err)
	}

	for step := 0; step < 50; step++ {
		cs := b.Components()
		active := cs[rng.IntN(len(cs))].ID
		over := cs[rng.IntN(len(cs))].ID
		if err := b.DragStart(active); err != nil {
			t.Fatal(err)
		}
		if _, err := b.DragEnd(active, over); err != nil {
			t.Fatal(err)
		}

		top := 0
		for _, c := range b.Components() {
			top = max(top, c.Row)
		}
		if b.Rows() != top+1 {
			t.Fatalf("step %d: Rows() = %d, want %d", step, b.Rows(), top+1)
		}
		assertNoOverlap(t, b)
	}
}

func TestComponentsIsACopy(t *testing.T) {
	b := mustNew(t, abc())
	cs := b.Components()
	cs[0].Row = 99
	if c, _ := b.Component("A"); c.Row == 99 {
		t.Error("mutating Components() result changed the board")
	}
}

func TestActivated(t *testing.T) {
	tests := []struct {
		delta grid.Offset
		want  bool
	}{
		{grid.Offset{}, false},
		{grid.Offset{X: 8}, false},
		{grid.Offset{X: 6, Y: 6}, true},
		{grid.Offset{Y: -20}, true},
	}
	for _, tt := range tests {
		if got := Activated(tt.delta); got != tt.want {
			t.Errorf("Activated(%v) = %v, want %v", tt.delta, got, tt.want)
		}
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"forward", 0, 2, []string{"b", "c", "a", "d"}},
		{"backward", 3, 1, []string{"a", "d", "b", "c"}},
		{"same", 1, 1, []string{"a", "b", "c", "d"}},
		{"adjacent", 1, 2, []string{"a", "c", "b", "d"}},
		{"out of range", 0, 4, []string{"a", "b", "c", "d"}},
		{"negative", -1, 0, []string{"a", "b", "c", "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Move([]string{"a", "b", "c", "d"}, tt.from, tt.to)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Move(%d, %d) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestStateString(t *testing.T) {
	if Idle.String() != "idle" || Dragging.String() != "dragging" || State(7).String() != "unknown" {
		t.Error("unexpected State strings")
	}
}
