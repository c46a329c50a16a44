package cli

import (
	"math/rand/v2"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/gridboard/pkg/board"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
)

func press(t *testing.T, m PlayModel, keys ...tea.KeyMsg) PlayModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(PlayModel)
	}
	return m
}

func newTestModel(t *testing.T) PlayModel {
	t.Helper()
	b, err := board.New([]board.Component{
		{ID: "clock", RowSpan: 1, ColSpan: 1},
		{ID: "notes", RowSpan: 1, ColSpan: 1},
		{ID: "photo", RowSpan: 2, ColSpan: 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	return NewPlayModel(b, rand.New(rand.NewPCG(1, 2)), 5)
}

func TestPlayPickAndDrop(t *testing.T) {
	m := newTestModel(t)

	// Pick up photo and drop it on clock.
	m = press(t, m, runes("l"), runes("l"), keySpace)
	if id, ok := m.Board.Dragging(); !ok || id != "photo" {
		t.Fatalf("Dragging() = %q, %v, want photo", id, ok)
	}

	m = press(t, m, runes("h"), runes("h"))
	if m.preview == nil {
		t.Fatal("moving while holding should compute a preview")
	}
	if got := m.cells()[2]; got.Row != 0 || got.Col != 0 {
		t.Errorf("photo previewed at %v, want (0,0)", got)
	}
	if c, _ := m.Board.Component("photo"); c.Col != 2 {
		t.Error("preview must not move the committed layout")
	}

	m = press(t, m, keySpace)
	if m.Board.State() != board.Idle {
		t.Error("drop should end the drag")
	}
	if m.Moves != 1 {
		t.Errorf("Moves = %d, want 1", m.Moves)
	}
	if got := m.Board.Components()[0].ID; got != "photo" {
		t.Errorf("first component = %s, want photo", got)
	}
}

func TestPlayCancel(t *testing.T) {
	m := newTestModel(t)
	before := m.Board.Snapshot()

	m = press(t, m, keySpace, runes("l"), keyEsc)
	if m.Board.State() != board.Idle || m.preview != nil {
		t.Error("esc should cancel the drag")
	}
	if m.Moves != 0 || m.Board.Components()[0].ID != before.Components[0].ID {
		t.Error("cancel should leave the order unchanged")
	}
}

func TestPlayCursorBounds(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, runes("h"), runes("h"))
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", m.Cursor)
	}
	m = press(t, m, runes("l"), runes("l"), runes("l"), runes("l"))
	if m.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2", m.Cursor)
	}
}

func TestPlayVertical(t *testing.T) {
	b, err := board.New([]board.Component{
		{ID: "wide", RowSpan: 1, ColSpan: 8},
		{ID: "unit", RowSpan: 1, ColSpan: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	m := press(t, NewPlayModel(b, nil, 2), keyDown)
	if m.Cursor != 1 {
		t.Errorf("down from wide: Cursor = %d, want 1", m.Cursor)
	}
	m = press(t, m, runes("k"))
	if m.Cursor != 0 {
		t.Errorf("up from unit: Cursor = %d, want 0", m.Cursor)
	}
}

func TestPlayReshuffle(t *testing.T) {
	m := press(t, newTestModel(t), runes("r"))
	if m.Board.Len() != 5 {
		t.Errorf("reshuffled board has %d components, want 5", m.Board.Len())
	}
}

func TestPlayQuit(t *testing.T) {
	m := newTestModel(t)
	if _, cmd := m.Update(runes("q")); cmd == nil {
		t.Error("q should return a quit command")
	}
}

func TestPlayView(t *testing.T) {
	m := press(t, newTestModel(t), keySpace)
	view := m.View()
	for _, want := range []string{"clock*", "notes", "photo", "3 components", "holding clock"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() should contain %q:\n%s", want, view)
		}
	}
}

func TestPlayEmptyBoard(t *testing.T) {
	b, err := board.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	m := NewPlayModel(b, rand.New(rand.NewPCG(1, 2)), 3)

	m = press(t, m, keySpace, tea.KeyMsg{Type: tea.KeyUp}, keyDown, runes("h"), runes("l"), keyEsc, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Board.State() != board.Idle || m.Cursor != 0 {
		t.Errorf("empty board should ignore moves, got state %v cursor %d", m.Board.State(), m.Cursor)
	}
	if view := m.View(); !strings.Contains(view, "0 components") {
		t.Errorf("View() = %q, want component count", view)
	}

	m = press(t, m, runes("r"))
	if m.Board.Len() != 3 {
		t.Errorf("reshuffle from empty board gave %d components, want 3", m.Board.Len())
	}
}
