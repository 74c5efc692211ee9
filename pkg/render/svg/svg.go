// Package svg encodes a scene as an SVG document.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/gaugekit/pkg/fonts"
	"github.com/matzehuels/gaugekit/pkg/gfx"
	"github.com/matzehuels/gaugekit/pkg/gfx/scene"
)

// Option configures SVG encoding.
type Option func(*encoder)

type encoder struct {
	background string
	title      string
	ids        bool
}

// WithBackground fills the canvas with color.
func WithBackground(color string) Option { return func(e *encoder) { e.background = color } }

// WithTitle adds a <title> element.
func WithTitle(title string) Option { return func(e *encoder) { e.title = title } }

// WithNodeIDs writes scene node ids and labels as data attributes.
func WithNodeIDs() Option { return func(e *encoder) { e.ids = true } }

// Encode renders the live nodes of s.
func Encode(s *scene.Scene, opts ...Option) []byte {
	var e encoder
	for _, opt := range opts {
		opt(&e)
	}

	w, h := s.Size()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	if e.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escape(e.title))
	}
	if e.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escape(e.background))
	}
	if root := s.Root(); !root.Removed() {
		e.node(&buf, root, 1)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (e *encoder) node(buf *bytes.Buffer, n *scene.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	attrs := e.attrs(n)

	switch n.Kind() {
	case scene.KindGroup:
		fmt.Fprintf(buf, "%s<g%s>\n", indent, attrs)
		for _, c := range n.Children() {
			e.node(buf, c, depth+1)
		}
		fmt.Fprintf(buf, "%s</g>\n", indent)
	case scene.KindLine:
		l := n.Line()
		fmt.Fprintf(buf, `%s<line x1="%g" y1="%g" x2="%g" y2="%g"%s/>`+"\n", indent, l.X1, l.Y1, l.X2, l.Y2, attrs)
	case scene.KindRect:
		r := n.Rect()
		fmt.Fprintf(buf, `%s<rect x="%g" y="%g" width="%g" height="%g"%s/>`+"\n", indent, r.X, r.Y, r.Width, r.Height, attrs)
	case scene.KindPolygon:
		pts := make([]string, len(n.Polygon().Points))
		for i, p := range n.Polygon().Points {
			pts[i] = fmt.Sprintf("%g,%g", p.X, p.Y)
		}
		fmt.Fprintf(buf, `%s<polygon points="%s"%s/>`+"\n", indent, strings.Join(pts, " "), attrs)
	case scene.KindText:
		t := n.Text()
		fmt.Fprintf(buf, `%s<text x="%g" y="%g"%s%s>%s</text>`+"\n", indent, t.X, t.Y, textAttrs(t), attrs, escape(t.Text))
	}
}

func (e *encoder) attrs(n *scene.Node) string {
	var b strings.Builder
	if e.ids {
		fmt.Fprintf(&b, ` data-node="%d"`, n.ID())
		if n.Label() != "" {
			fmt.Fprintf(&b, ` data-label="%s"`, escape(n.Label()))
		}
	}
	if m := n.Transform(); !m.IsIdentity() {
		fmt.Fprintf(&b, ` transform="%s"`, m.String())
	}
	if st, ok := n.Stroke(); ok {
		fmt.Fprintf(&b, ` stroke="%s" stroke-width="%g"`, escape(st.Color), st.Width)
	}
	switch {
	case n.Fill() != "":
		fmt.Fprintf(&b, ` fill="%s"`, escape(n.Fill()))
	case n.Kind() == scene.KindLine || n.Kind() == scene.KindRect || n.Kind() == scene.KindPolygon:
		b.WriteString(` fill="none"`)
	}
	return b.String()
}

func textAttrs(t gfx.Text) string {
	var b strings.Builder
	anchor := t.Anchor
	if anchor == "" {
		anchor = gfx.AnchorStart
	}
	fmt.Fprintf(&b, ` text-anchor="%s" font-family="%s"`, anchor, escape(fonts.CSSFamily(t.Font.Family)))
	if t.Font.Size > 0 {
		fmt.Fprintf(&b, ` font-size="%g"`, t.Font.Size)
	}
	if t.Font.Weight != "" && t.Font.Weight != "normal" {
		fmt.Fprintf(&b, ` font-weight="%s"`, escape(t.Font.Weight))
	}
	if t.Font.Color != "" {
		fmt.Fprintf(&b, ` fill="%s"`, escape(t.Font.Color))
	}
	return b.String()
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
