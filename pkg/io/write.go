package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/gridboard/pkg/board"
	errs "github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/grid"
)

// Write encodes a layout (order and spans, no positions) in the given format.
// The output can be read back with [Read].
func Write(l *Layout, w io.Writer, format Format) error {
	return encode(fromComponents(l.Columns, l.Components, false), w, format)
}

// WriteJSON exports a placed board as JSON: the components with their
// assigned cells, the row count, the covered height and the cell metrics.
func WriteJSON(b *board.Board, w io.Writer) error {
	f := fromComponents(b.Columns(), b.Components(), true)
	f.Rows = b.Rows()
	f.Height = b.Height()
	f.CellSize = grid.CellSize
	f.CellGap = grid.CellGap
	return encode(f, w, FormatJSON)
}

// ExportJSON writes a placed board to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(b *board.Board, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(b, f)
}

func encode(f file, w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(f); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	default:
		return errs.New(errs.ErrCodeInvalidFormat, "unknown layout format %q", format)
	}
}
