package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/dfpa/pkg/errors"
	"github.com/matzehuels/dfpa/pkg/graph"
)

// Format is an output format of [Render].
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
	DOT Format = "dot"
)

// ParseFormat maps a file extension or name ("svg", ".png") to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case SVG, PNG, DOT:
		return f, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupported, "unsupported render format %q (valid: svg, png, dot)", s)
	}
}

// Options configures DOT generation.
type Options struct {
	Layout      string // Graphviz engine (default: neato)
	ShowColors  bool   // Append the color number to vertex labels
	OneBased    bool   // Label vertices 1..n as in DIMACS files
	HideLabels  bool   // Draw unlabeled points instead of numbered circles
	NoConflicts bool   // Draw conflicting edges like every other edge
}

// palette holds fill colors for color classes 1..len(palette); larger
// classes wrap around.
var palette = []string{
	"#e6194b", "#3cb44b", "#ffe119", "#4363d8", "#f58231",
	"#911eb4", "#46f0f0", "#f032e6", "#bcf60c", "#fabebe",
	"#008080", "#e6beff", "#9a6324", "#fffac8", "#800000",
	"#aaffc3", "#808000", "#ffd8b1", "#000075", "#808080",
}

// FillColor returns the palette entry for color c; 0 (uncolored) is white.
func FillColor(c int) string {
	if c <= 0 {
		return "#ffffff"
	}
	return palette[(c-1)%len(palette)]
}

// ToDOT converts a colored graph to Graphviz DOT source.
// colors holds one entry per vertex; a nil slice draws the graph uncolored.
func ToDOT(g *graph.Graph, colors []int, opts Options) string {
	layout := opts.Layout
	if layout == "" {
		layout = "neato"
	}
	color := func(v int) int {
		if colors == nil {
			return 0
		}
		return colors[v]
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	fmt.Fprintf(&buf, "  layout=%s;\n", layout)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  splines=true;\n")
	if opts.HideLabels {
		buf.WriteString("  node [shape=point, width=0.15];\n")
	} else {
		buf.WriteString("  node [shape=circle, style=filled, fontsize=10, width=0.3, fixedsize=true];\n")
	}
	buf.WriteString("  edge [color=\"#00000060\"];\n")
	buf.WriteString("\n")

	for v := 0; v < g.Len(); v++ {
		id := v
		if opts.OneBased {
			id++
		}
		label := strconv.Itoa(id)
		if opts.ShowColors && colors != nil {
			label = fmt.Sprintf("%d:%d", id, color(v))
		}
		attrs := []string{fmt.Sprintf("fillcolor=%q", FillColor(color(v)))}
		if opts.HideLabels {
			attrs = append(attrs, fmt.Sprintf("color=%q", FillColor(color(v))))
		} else {
			attrs = append([]string{fmt.Sprintf("label=%q", label)}, attrs...)
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", v, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if !opts.NoConflicts && colors != nil && color(e.U) != 0 && color(e.U) == color(e.V) {
			fmt.Fprintf(&buf, "  n%d -- n%d [color=red, penwidth=3];\n", e.U, e.V)
			continue
		}
		fmt.Fprintf(&buf, "  n%d -- n%d;\n", e.U, e.V)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// Render lays out DOT source with Graphviz and returns the encoded output.
// The DOT format returns the source unchanged.
func Render(ctx context.Context, dot string, format Format) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case DOT:
		return []byte(dot), nil
	case SVG:
		gvFormat = graphviz.SVG
	case PNG:
		gvFormat = graphviz.PNG
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported render format %q", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if format == SVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-based svg header with a plain
// pixel one so browsers scale the drawing.
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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
