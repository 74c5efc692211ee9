// Package gfx defines the rendering-group capability that scales draw into.
//
// The scale core never paints pixels. It creates groups and shapes through
// the [Group] and [Shape] interfaces and leaves their semantics to a
// backend; package scene provides the retained implementation used by the
// encoders in package render.
package gfx

import (
	"fmt"
	"math"
)

// Shape is a drawable node owned by a group.
type Shape interface {
	// SetStroke sets the outline style and returns the shape for chaining.
	SetStroke(s Stroke) Shape
	// SetFill sets the fill color and returns the shape for chaining.
	SetFill(color string) Shape
	// SetTransform replaces the shape's transform.
	SetTransform(m Matrix) Shape
	// RemoveShape detaches the shape from its parent immediately.
	RemoveShape()
}

// Group is a shape that contains other shapes.
type Group interface {
	Shape

	CreateGroup() Group
	CreateLine(l Line) Shape
	CreateRect(r Rect) Shape
	CreatePolygon(p Polygon) Shape
	CreateText(t Text) Shape

	// Clear removes every child.
	Clear()
}

// Labeler is implemented by backends that can name a shape for inspection.
// Callers test for it; it is not part of the required capability.
type Labeler interface {
	SetLabel(label string)
}

// SetLabel names s when its backend supports labels.
func SetLabel(s Shape, label string) {
	if l, ok := s.(Labeler); ok {
		l.SetLabel(label)
	}
}

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Line is a segment from (X1, Y1) to (X2, Y2).
type Line struct {
	X1, Y1, X2, Y2 float64
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// Polygon is a closed path through Points.
type Polygon struct {
	Points []Point
}

// Anchor is the horizontal alignment of text relative to its position.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Text is a single line of text drawn at (X, Y).
type Text struct {
	X, Y   float64
	Text   string
	Anchor Anchor
	Font   Font
}

// Stroke is an outline style.
type Stroke struct {
	Color string
	Width float64
}

// Font describes label typography.
type Font struct {
	Family string  `json:"family" toml:"family" yaml:"family"`
	Size   float64 `json:"size" toml:"size" yaml:"size"`
	Weight string  `json:"weight,omitempty" toml:"weight" yaml:"weight"`
	Color  string  `json:"color,omitempty" toml:"color" yaml:"color"`
}

// IsZero reports whether f carries no information.
func (f Font) IsZero() bool { return f == Font{} }

// Matrix is a 2D affine transform
//
//	| A C E |
//	| B D F |
//	| 0 0 1 |
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Matrix{A: 1, D: 1}

// Translate returns a translation by (x, y).
func Translate(x, y float64) Matrix { return Matrix{A: 1, D: 1, E: x, F: y} }

// Rotate returns a rotation by deg degrees around the origin.
func Rotate(deg float64) Matrix {
	r := deg * math.Pi / 180
	sin, cos := math.Sincos(r)
	return Matrix{A: cos, B: sin, C: -sin, D: cos}
}

// Multiply returns m·n, the transform applying n first, then m.
func (m Matrix) Multiply(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Apply transforms p.
func (m Matrix) Apply(p Point) Point {
	return Point{m.A*p.X + m.C*p.Y + m.E, m.B*p.X + m.D*p.Y + m.F}
}

// IsIdentity reports whether m is the identity transform.
func (m Matrix) IsIdentity() bool { return m == Identity }

// String formats m as an SVG matrix() transform.
func (m Matrix) String() string {
	return fmt.Sprintf("matrix(%g %g %g %g %g %g)", m.A, m.B, m.C, m.D, m.E, m.F)
}
