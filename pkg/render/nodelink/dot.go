package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/gaugekit/pkg/gfx"
	"github.com/matzehuels/gaugekit/pkg/gfx/scene"
)

// Options configures scene diagram generation.
type Options struct {
	// Detailed includes geometry and style in node labels.
	// When false, only the label (or kind and id) is shown.
	Detailed bool

	// GroupsOnly omits primitive shapes, leaving the group structure.
	GroupsOnly bool
}

// ToDOT converts the live nodes of a scene to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
//
// Groups are drawn as rounded boxes, primitives as plain ellipses. Edges run
// from a group to its children in paint order.
func ToDOT(s *scene.Scene, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	var edges []string
	s.Walk(func(n *scene.Node, _ int, _ gfx.Matrix) bool {
		if opts.GroupsOnly && n.Kind() != scene.KindGroup {
			return false
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", n.ID(), strings.Join(fmtAttrs(n, fmtLabel(n, opts.Detailed)), ", "))
		if p := n.Parent(); p != nil {
			edges = append(edges, fmt.Sprintf("  n%d -> n%d;\n", p.ID(), n.ID()))
		}
		return true
	})

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *scene.Node, detailed bool) string {
	name := n.Label()
	if name == "" {
		name = fmt.Sprintf("%s #%d", n.Kind(), n.ID())
	}
	if !detailed {
		return name
	}

	var parts []string
	switch n.Kind() {
	case scene.KindGroup:
		parts = append(parts, fmt.Sprintf("children: %d", len(n.Children())))
	case scene.KindLine:
		l := n.Line()
		parts = append(parts, fmt.Sprintf("(%g,%g)-(%g,%g)", l.X1, l.Y1, l.X2, l.Y2))
	case scene.KindRect:
		r := n.Rect()
		parts = append(parts, fmt.Sprintf("%gx%g at (%g,%g)", r.Width, r.Height, r.X, r.Y))
	case scene.KindPolygon:
		parts = append(parts, fmt.Sprintf("points: %d", len(n.Polygon().Points)))
	case scene.KindText:
		parts = append(parts, fmt.Sprintf("text: %s", n.Text().Text))
	}
	if m := n.Transform(); !m.IsIdentity() {
		parts = append(parts, m.String())
	}
	if st, ok := n.Stroke(); ok {
		parts = append(parts, fmt.Sprintf("stroke: %s %g", st.Color, st.Width))
	}
	if f := n.Fill(); f != "" {
		parts = append(parts, "fill: "+f)
	}
	return name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n *scene.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.Kind() != scene.KindGroup {
		attrs = append(attrs, "shape=ellipse", "style=filled", "fillcolor=lightgrey")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	out, err := render(dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
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
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

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
