package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/gridboard/pkg/board"
	errs "github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/grid"
)

// Format names a layout file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath returns the format implied by a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errs.New(errs.ErrCodeInvalidFormat, "unsupported layout file %q (want .json, .toml, .yaml or .yml)", path)
	}
}

// Layout is the decoded content of a layout file.
type Layout struct {
	// Columns is the grid width; 0 means [grid.Columns].
	Columns    int
	Components []board.Component
}

// Board lays out the components in file order.
func (l *Layout) Board(opts ...board.Option) (*board.Board, error) {
	if l.Columns > 0 {
		opts = append([]board.Option{board.WithColumns(l.Columns)}, opts...)
	}
	return board.New(l.Components, opts...)
}

// Sizes returns the component sizes in file order.
func (l *Layout) Sizes() []grid.Size {
	out := make([]grid.Size, len(l.Components))
	for i, c := range l.Components {
		out[i] = c.Size()
	}
	return out
}

// file is the on-disk shape shared by all encodings.
type file struct {
	Columns    int         `json:"columns,omitempty" toml:"columns,omitempty" yaml:"columns,omitempty"`
	Rows       int         `json:"rows,omitempty" toml:"rows,omitempty" yaml:"rows,omitempty"`
	Height     int         `json:"height,omitempty" toml:"height,omitempty" yaml:"height,omitempty"`
	CellSize   int         `json:"cell_size,omitempty" toml:"cell_size,omitempty" yaml:"cell_size,omitempty"`
	CellGap    int         `json:"cell_gap,omitempty" toml:"cell_gap,omitempty" yaml:"cell_gap,omitempty"`
	Components []component `json:"components" toml:"components" yaml:"components"`
}

type component struct {
	ID   string `json:"id" toml:"id" yaml:"id"`
	Rows int    `json:"rows" toml:"rows" yaml:"rows"`
	Cols int    `json:"cols" toml:"cols" yaml:"cols"`
	Row  *int   `json:"row,omitempty" toml:"row,omitempty" yaml:"row,omitempty"`
	Col  *int   `json:"col,omitempty" toml:"col,omitempty" yaml:"col,omitempty"`
}

func (f *file) layout() (*Layout, error) {
	if f.Columns < 0 || f.Columns > grid.MaxColumns {
		return nil, errs.New(errs.ErrCodeInvalidInput, "columns must be between 0 and %d, got %d", grid.MaxColumns, f.Columns)
	}
	l := &Layout{Columns: f.Columns, Components: make([]board.Component, len(f.Components))}
	for i, c := range f.Components {
		if c.ID == "" {
			return nil, errs.New(errs.ErrCodeInvalidInput, "component %d: missing id", i)
		}
		l.Components[i] = board.Component{ID: c.ID, RowSpan: c.Rows, ColSpan: c.Cols}
	}
	return l, nil
}

func fromComponents(columns int, cs []board.Component, placed bool) file {
	f := file{Columns: columns, Components: make([]component, len(cs))}
	for i, c := range cs {
		f.Components[i] = component{ID: c.ID, Rows: c.RowSpan, Cols: c.ColSpan}
		if placed {
			row, col := c.Row, c.Col
			f.Components[i].Row, f.Components[i].Col = &row, &col
		}
	}
	return f
}

func wrapDecode(format Format, err error) error {
	return errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode %s", format)
}
