// Package raster encodes a scene as a PNG image using fogleman/gg.
//
// Shapes are transformed to device space before drawing, so any affine
// transform in the scene is honored for geometry. Text is placed at its
// transformed anchor point and drawn upright.
package raster

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/gaugekit/pkg/gfx"
	"github.com/matzehuels/gaugekit/pkg/gfx/scene"
)

// MaxPixels bounds the canvas area of an encoded image.
const MaxPixels = 64 << 20

// Option configures PNG encoding.
type Option func(*encoder)

type encoder struct {
	scale      float64
	background string
	fontFile   string
}

// WithScale sets the resolution multiplier (default 2.0 for 2x resolution).
func WithScale(s float64) Option {
	return func(e *encoder) {
		if s > 0 {
			e.scale = s
		}
	}
}

// WithBackground fills the canvas before drawing.
func WithBackground(color string) Option { return func(e *encoder) { e.background = color } }

// WithFontFile loads a TrueType font for labels. Without it the built-in
// bitmap face of gg is used.
func WithFontFile(path string) Option { return func(e *encoder) { e.fontFile = path } }

// Encode renders the live nodes of s as PNG.
func Encode(s *scene.Scene, opts ...Option) ([]byte, error) {
	e := encoder{scale: 2.0}
	for _, opt := range opts {
		opt(&e)
	}

	w, h := s.Size()
	pw, ph := math.Ceil(w*e.scale), math.Ceil(h*e.scale)
	if !(pw*ph <= MaxPixels) {
		return nil, fmt.Errorf("png canvas %vx%v exceeds %d pixels", pw, ph, MaxPixels)
	}
	dc := gg.NewContext(int(pw), int(ph))
	if c, ok := ParseColor(e.background); ok {
		dc.SetColor(c)
		dc.Clear()
	}

	device := gfx.Matrix{A: e.scale, D: e.scale}
	loaded := map[float64]bool{}
	var drawErr error
	s.Walk(func(n *scene.Node, _ int, world gfx.Matrix) bool {
		m := device.Multiply(world)
		switch n.Kind() {
		case scene.KindLine:
			l := n.Line()
			p1, p2 := m.Apply(gfx.Point{X: l.X1, Y: l.Y1}), m.Apply(gfx.Point{X: l.X2, Y: l.Y2})
			dc.DrawLine(p1.X, p1.Y, p2.X, p2.Y)
			paint(dc, n, m, false)
		case scene.KindRect:
			r := n.Rect()
			path(dc, m, []gfx.Point{{X: r.X, Y: r.Y}, {X: r.X + r.Width, Y: r.Y}, {X: r.X + r.Width, Y: r.Y + r.Height}, {X: r.X, Y: r.Y + r.Height}})
			paint(dc, n, m, true)
		case scene.KindPolygon:
			path(dc, m, n.Polygon().Points)
			paint(dc, n, m, true)
		case scene.KindText:
			if err := e.text(dc, n.Text(), m, loaded); err != nil && drawErr == nil {
				drawErr = err
			}
		}
		return true
	})
	if drawErr != nil {
		return nil, drawErr
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func path(dc *gg.Context, m gfx.Matrix, pts []gfx.Point) {
	if len(pts) == 0 {
		return
	}
	dc.NewSubPath()
	for i, p := range pts {
		q := m.Apply(p)
		if i == 0 {
			dc.MoveTo(q.X, q.Y)
		} else {
			dc.LineTo(q.X, q.Y)
		}
	}
	dc.ClosePath()
}

// paint fills and strokes the current path, then clears it.
func paint(dc *gg.Context, n *scene.Node, m gfx.Matrix, closed bool) {
	fill, hasFill := ParseColor(n.Fill())
	st, hasStroke := n.Stroke()
	stroke, strokeOK := ParseColor(st.Color)
	hasStroke = hasStroke && strokeOK && st.Width > 0

	if closed && hasFill {
		dc.SetColor(fill)
		if hasStroke {
			dc.FillPreserve()
		} else {
			dc.Fill()
		}
	}
	if hasStroke {
		dc.SetColor(stroke)
		dc.SetLineWidth(st.Width * math.Sqrt(math.Abs(m.A*m.D-m.B*m.C)))
		dc.Stroke()
		return
	}
	dc.ClearPath()
}

func (e *encoder) text(dc *gg.Context, t gfx.Text, m gfx.Matrix, loaded map[float64]bool) error {
	if e.fontFile != "" && t.Font.Size > 0 {
		size := t.Font.Size * e.scale
		if !loaded[size] {
			if err := dc.LoadFontFace(e.fontFile, size); err != nil {
				return fmt.Errorf("load font %s: %w", e.fontFile, err)
			}
			for k := range loaded {
				delete(loaded, k)
			}
			loaded[size] = true
		}
	}
	c, ok := ParseColor(t.Font.Color)
	if !ok {
		c = color.Black
	}
	dc.SetColor(c)

	p := m.Apply(gfx.Point{X: t.X, Y: t.Y})
	ax := 0.0
	switch t.Anchor {
	case gfx.AnchorMiddle:
		ax = 0.5
	case gfx.AnchorEnd:
		ax = 1
	}
	dc.DrawStringAnchored(t.Text, p.X, p.Y, ax, 0)
	return nil
}

var named = map[string]string{
	"black":  "#000000",
	"white":  "#ffffff",
	"red":    "#ff0000",
	"green":  "#008000",
	"blue":   "#0000ff",
	"gray":   "#808080",
	"grey":   "#808080",
	"orange": "#ffa500",
	"yellow": "#ffff00",
}

// ParseColor converts a hex or basic named color. It reports false for the
// empty string, "none" and anything it cannot parse.
func ParseColor(s string) (color.Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" || s == "transparent" {
		return nil, false
	}
	if hex, ok := named[s]; ok {
		s = hex
	}
	if len(s) == 4 && s[0] == '#' {
		s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, false
	}
	return c, true
}
