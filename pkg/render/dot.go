package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/gridboard/pkg/board"
)

// pointsPerInch converts screen units to Graphviz inches.
const pointsPerInch = 72.0

// ToDOT converts a layout to Graphviz DOT for the neato engine. Every
// component becomes a fixed-size box pinned at its screen position, so the
// engine draws the layout rather than computing one. Positions are in screen
// units (inputscale=72) and Y is negated because Graphviz's Y axis points up.
// The padding matches [Margin], so the drawing spans [Canvas].
func ToDOT(components []board.Component, opts ...Option) string {
	o := newOptions(opts)

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	fmt.Fprintf(&buf, "  inputscale=%.0f;\n", pointsPerInch)
	fmt.Fprintf(&buf, "  pad=%.3f;\n", Margin/pointsPerInch)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fixedsize=true, fontsize=20, fontname=\"sans-serif\"];\n")
	buf.WriteString("\n")

	for _, c := range components {
		box := c.Bounds()
		label := c.ID
		if o.labels {
			label = fmt.Sprintf("%s\n%dx%d", c.ID, c.RowSpan, c.ColSpan)
		}
		attrs := fmt.Sprintf(`label=%q, pos="%.1f,%.1f!", width=%.3f, height=%.3f, fillcolor=%q`,
			label,
			box.Left+box.Width/2, -(box.Top + box.Height/2),
			box.Width/pointsPerInch, box.Height/pointsPerInch,
			Fill(c.ID))
		if c.ID == o.dragging {
			attrs += `, color="#d62828", penwidth=4`
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", c.ID, attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderDOT renders a DOT graph to SVG using the embedded Graphviz.
func RenderDOT(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-based svg element with a plain
// one sized to its viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
