package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/gridboard/pkg/board"
	errs "github.com/matzehuels/gridboard/pkg/errors"
)

// Format names an output format.
type Format string

const (
	FormatSVG   Format = "svg"
	FormatDOT   Format = "dot"
	FormatNeato Format = "neato" // SVG laid out by Graphviz
	FormatPNG   Format = "png"
	FormatPDF   Format = "pdf"
)

// Formats lists every supported format.
var Formats = []Format{FormatSVG, FormatDOT, FormatNeato, FormatPNG, FormatPDF}

// ParseFormat parses a case-insensitive format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errs.New(errs.ErrCodeInvalidFormat, "unknown format %q", s)
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG, FormatNeato:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatDOT:
		return "text/vnd.graphviz"
	default:
		return "application/octet-stream"
	}
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	if f == FormatNeato {
		return ".svg"
	}
	return "." + string(f)
}

// Render draws components in format f.
func Render(ctx context.Context, f Format, components []board.Component, opts ...Option) ([]byte, error) {
	switch f {
	case FormatSVG:
		return RenderSVG(components, opts...), nil
	case FormatDOT:
		return []byte(ToDOT(components, opts...)), nil
	case FormatNeato:
		return RenderDOT(ctx, ToDOT(components, opts...))
	case FormatPNG:
		return ToPNG(ctx, RenderSVG(components, opts...), newOptions(opts).scale)
	case FormatPDF:
		return ToPDF(ctx, RenderSVG(components, opts...))
	default:
		return nil, fmt.Errorf("render: %w", errs.New(errs.ErrCodeInvalidFormat, "unknown format %q", f))
	}
}
