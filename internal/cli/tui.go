package cli

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/gridboard/pkg/board"
	"github.com/matzehuels/gridboard/pkg/grid"
	"github.com/matzehuels/gridboard/pkg/render"
)

// Terminal footprint of one grid cell.
const (
	cellWidth  = 7
	cellHeight = 2
)

var (
	playHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	playStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	playEmptyStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PlayModel - Interactive board
// =============================================================================

// PlayModel is the bubbletea model for "gridboard play". The cursor walks
// the board order; space picks up the component under it and drops it on
// the component the cursor moves to, with the reflow previewed live.
type PlayModel struct {
	Board *board.Board

	// Cursor is the index the next pick or drop applies to.
	Cursor int

	// Moves counts committed drops that changed the layout.
	Moves int

	rng     *rand.Rand
	size    int
	active  int
	preview []grid.Offset
	status  string
}

// NewPlayModel creates a model for b. rng and size are used by the
// reshuffle key.
func NewPlayModel(b *board.Board, rng *rand.Rand, size int) PlayModel {
	return PlayModel{Board: b, rng: rng, size: size, active: -1}
}

func (m PlayModel) Init() tea.Cmd {
	return nil
}

func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	k := key.String()
	if k == "q" || k == "ctrl+c" {
		return m, tea.Quit
	}
	if m.Board.Len() == 0 {
		m.status = "empty board"
		if k == "r" {
			m.reshuffle()
		}
		return m, nil
	}

	switch k {
	case "left", "h":
		m.moveCursor(m.Cursor - 1)
	case "right", "l":
		m.moveCursor(m.Cursor + 1)
	case "up", "k":
		m.moveCursor(m.vertical(-1))
	case "down", "j":
		m.moveCursor(m.vertical(1))
	case " ", "enter":
		if m.active < 0 {
			m.pick()
		} else {
			m.drop()
		}
	case "esc":
		if m.active >= 0 {
			m.Board.DragCancel()
			m.active, m.preview = -1, nil
			m.status = "cancelled"
		}
	case "r":
		if m.active < 0 {
			m.reshuffle()
		}
	}
	return m, nil
}

func (m *PlayModel) reshuffle() {
	if m.rng == nil {
		return
	}
	b, err := board.NewRandom(m.size, m.rng, board.WithColumns(m.Board.Columns()))
	if err != nil {
		m.status = err.Error()
		return
	}
	m.Board, m.Cursor, m.Moves = b, 0, 0
	m.status = "reshuffled"
}

func (m *PlayModel) moveCursor(i int) {
	if n := m.Board.Len(); n > 0 {
		m.Cursor = min(max(i, 0), n-1)
	}
	if m.active >= 0 {
		m.updatePreview()
	}
}

func (m *PlayModel) pick() {
	c := m.Board.Components()[m.Cursor]
	if err := m.Board.DragStart(c.ID); err != nil {
		m.status = err.Error()
		return
	}
	m.active = m.Cursor
	m.status = "holding " + c.ID
	m.updatePreview()
}

func (m *PlayModel) drop() {
	cs := m.Board.Components()
	changed, err := m.Board.DragEnd(cs[m.active].ID, cs[m.Cursor].ID)
	if err != nil {
		m.status = err.Error()
		return
	}
	if changed {
		m.Moves++
		m.status = fmt.Sprintf("moved %s", cs[m.active].ID)
	} else {
		m.status = "no change"
	}
	// The dropped component now sits at the cursor index.
	m.active, m.preview = -1, nil
}

func (m *PlayModel) updatePreview() {
	offsets, err := m.Board.PreviewAll(m.active, m.Cursor)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.preview = offsets
}

// vertical returns the index of the component covering the cell one row
// above (dir -1) or below (dir 1) the cursor, or the cursor itself.
func (m *PlayModel) vertical(dir int) int {
	cells := m.cells()
	from := cells[m.Cursor]
	row := from.Row + dir
	if dir > 0 {
		row = from.Row + m.Board.Components()[m.Cursor].RowSpan
	}

	best, bestDist := m.Cursor, math.MaxInt
	for i, c := range m.Board.Components() {
		at := cells[i]
		if row < at.Row || row >= at.Row+c.RowSpan {
			continue
		}
		dist := 0
		switch {
		case from.Col < at.Col:
			dist = at.Col - from.Col
		case from.Col >= at.Col+c.ColSpan:
			dist = from.Col - (at.Col + c.ColSpan - 1)
		}
		if dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

// cells returns where each component is drawn: its committed cell, or its
// previewed cell while a drag is in progress.
func (m *PlayModel) cells() []grid.Cell {
	cs := m.Board.Components()
	out := make([]grid.Cell, len(cs))
	for i, c := range cs {
		out[i] = c.Cell()
		if m.preview != nil {
			out[i].Col += int(math.Round(m.preview[i].X / grid.Pitch))
			out[i].Row += int(math.Round(m.preview[i].Y / grid.Pitch))
		}
	}
	return out
}

func (m PlayModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("gridboard"))
	b.WriteString("\n")
	b.WriteString(playHelpStyle.Render("←/→/↑/↓ move  space pick/drop  esc cancel  r reshuffle  q quit"))
	b.WriteString("\n\n")
	b.WriteString(m.grid())
	b.WriteString("\n")

	status := fmt.Sprintf("%d components · %d rows · %d moves", m.Board.Len(), m.Board.Rows(), m.Moves)
	if m.status != "" {
		status += " · " + m.status
	}
	b.WriteString(playStatusStyle.Render(status))
	b.WriteString("\n")
	return b.String()
}

// grid draws the board as a block of styled cells.
func (m PlayModel) grid() string {
	cs := m.Board.Components()
	cells := m.cells()

	height := 0
	for i, c := range cs {
		height = max(height, cells[i].Row+c.RowSpan)
	}
	owner := make([][]int, height)
	for r := range owner {
		owner[r] = make([]int, m.Board.Columns())
		for col := range owner[r] {
			owner[r][col] = -1
		}
	}
	for i, c := range cs {
		for r := cells[i].Row; r < cells[i].Row+c.RowSpan; r++ {
			for col := cells[i].Col; col < cells[i].Col+c.ColSpan && col < len(owner[r]); col++ {
				owner[r][col] = i
			}
		}
	}

	var lines []string
	for r := range owner {
		for line := 0; line < cellHeight; line++ {
			var row strings.Builder
			for col, i := range owner[r] {
				row.WriteString(m.cell(i, cs, cells, r, col, line))
			}
			lines = append(lines, row.String())
		}
	}
	return strings.Join(lines, "\n")
}

func (m PlayModel) cell(i int, cs []board.Component, cells []grid.Cell, r, col, line int) string {
	if i < 0 {
		if line == 0 {
			return playEmptyStyle.Render(fmt.Sprintf("%-*s", cellWidth, "  ·"))
		}
		return strings.Repeat(" ", cellWidth)
	}

	c := cs[i]
	style := lipgloss.NewStyle().
		Width(cellWidth).
		Background(componentColor(c.ID)).
		Foreground(colorInk)
	if i == m.Cursor {
		style = style.Bold(true).Underline(true)
	}
	if i == m.active {
		style = style.Reverse(true)
	}

	text := ""
	if line == 0 && r == cells[i].Row && col == cells[i].Col {
		text = " " + c.ID
		if i == m.active {
			text += "*"
		}
	}
	return style.Render(text)
}

// componentColor returns the SVG fill of id; lipgloss degrades it to the
// terminal's color profile.
func componentColor(id string) lipgloss.Color {
	return lipgloss.Color(render.Fill(id))
}
