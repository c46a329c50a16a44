// Package render draws board layouts.
//
// # Formats
//
//   - SVG: [RenderSVG] writes the grid directly, one rounded rectangle per
//     component, optionally with the live-preview translations of a drag.
//   - DOT: [ToDOT] emits a Graphviz graph with every component pinned at its
//     screen position; [RenderDOT] lays it out with the embedded Graphviz
//     (neato, no external binary) as SVG.
//   - PNG and PDF: [ToPNG] and [ToPDF] convert any SVG using the external
//     rsvg-convert tool (from librsvg).
//
// [Render] dispatches on a [Format] name:
//
//	out, err := render.Render(ctx, render.FormatPNG, b.Components(),
//	    render.WithColumns(b.Columns()), render.WithLabels())
package render
