// Package rectangular draws a scale along a straight line.
//
// A [Scale] embeds *scale.Scale and adds the geometry: an origin, a length and
// an orientation. Values grow to the right on a horizontal scale and upwards
// on a vertical one. Ticks are drawn perpendicular to the line, on the label
// side, followed by their labels; indicators implementing scale.Painter then
// paint into their own groups.
package rectangular

import (
	"math"

	"github.com/matzehuels/gaugekit/pkg/errors"
	"github.com/matzehuels/gaugekit/pkg/gfx"
	"github.com/matzehuels/gaugekit/pkg/scale"
)

// Orientation of the scale line.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// Label positions understood by the geometry. Any other value is treated as
// LabelsTrailing.
const (
	LabelsTrailing = "trailing" // below a horizontal scale, right of a vertical one
	LabelsLeading  = "leading"  // above a horizontal scale, left of a vertical one
)

// ParseOrientation maps a configuration string to an Orientation.
func ParseOrientation(s string) (Orientation, error) {
	switch Orientation(s) {
	case "", Horizontal:
		return Horizontal, nil
	case Vertical:
		return Vertical, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown orientation %q", s)
	}
}

// Geometry places the scale line.
type Geometry struct {
	Origin      gfx.Point
	Length      float64
	Orientation Orientation
}

// Scale is a straight-line scale.
type Scale struct {
	*scale.Scale
	geom Geometry
}

var _ scale.Locator = (*Scale)(nil)

// New creates a straight-line scale over sc.
func New(sc scale.Scaler, geom Geometry, opts ...scale.Option) *Scale {
	if geom.Orientation == "" {
		geom.Orientation = Horizontal
	}
	return &Scale{Scale: scale.New(sc, opts...), geom: geom}
}

// Geometry returns the line placement.
func (r *Scale) Geometry() Geometry { return r.geom }

// SetGeometry moves the line and invalidates the rendering.
func (r *Scale) SetGeometry(g Geometry) *Scale {
	if g.Orientation == "" {
		g.Orientation = Horizontal
	}
	if g == r.geom {
		return r
	}
	r.geom = g
	r.InvalidateRendering()
	return r
}

// PointForValue returns the point of v on the line. Values outside the domain
// clamp to the line ends.
func (r *Scale) PointForValue(v float64) gfx.Point {
	pos, err := r.PositionForValue(v)
	if err != nil {
		return r.geom.Origin
	}
	d := r.Direction()
	return r.geom.Origin.Add(gfx.Point{X: d.X * pos * r.geom.Length, Y: d.Y * pos * r.geom.Length})
}

// ValueForPoint projects p on the line and maps it back to a value.
func (r *Scale) ValueForPoint(p gfx.Point) (float64, error) {
	if r.geom.Length <= 0 {
		return r.ValueForPosition(0)
	}
	d := r.Direction()
	rel := gfx.Point{X: p.X - r.geom.Origin.X, Y: p.Y - r.geom.Origin.Y}
	pos := (rel.X*d.X + rel.Y*d.Y) / r.geom.Length
	return r.ValueForPosition(math.Max(0, math.Min(1, pos)))
}

// Direction implements scale.Locator.
func (r *Scale) Direction() gfx.Point {
	if r.geom.Orientation == Vertical {
		return gfx.Point{Y: -1}
	}
	return gfx.Point{X: 1}
}

// Normal implements scale.Locator.
func (r *Scale) Normal() gfx.Point {
	n := gfx.Point{Y: 1}
	if r.geom.Orientation == Vertical {
		n = gfx.Point{X: 1}
	}
	if r.LabelPosition() == LabelsLeading {
		n = gfx.Point{X: -n.X, Y: -n.Y}
	}
	return n
}

// NextValidValue delegates to the scaler.
func (r *Scale) NextValidValue(v float64) (float64, bool) {
	if sc := r.Scaler(); sc != nil {
		return sc.NextValidValue(v), true
	}
	return 0, false
}

// PreviousValidValue delegates to the scaler.
func (r *Scale) PreviousValidValue(v float64) (float64, bool) {
	if sc := r.Scaler(); sc != nil {
		return sc.PreviousValidValue(v), true
	}
	return 0, false
}

// FirstValidValue delegates to the scaler.
func (r *Scale) FirstValidValue() (float64, bool) {
	if sc := r.Scaler(); sc != nil {
		return sc.FirstValidValue(), true
	}
	return 0, false
}

// LastValidValue delegates to the scaler.
func (r *Scale) LastValidValue() (float64, bool) {
	if sc := r.Scaler(); sc != nil {
		return sc.LastValidValue(), true
	}
	return 0, false
}

// RefreshRendering redraws ticks, labels and indicators.
func (r *Scale) RefreshRendering() error {
	if r.Group() == nil {
		return errors.New(errors.ErrCodeConfiguration, "scale %q is not attached", r.Name())
	}
	ticks, err := r.ComputeTicks()
	if err != nil {
		return err
	}
	r.Scale.RefreshRendering()

	tg := r.Ticks()
	tg.Clear()

	n := r.Normal()
	angle := math.Atan2(n.Y, n.X) * 180 / math.Pi
	font := r.Font()
	shape, label := r.TickShapeFunc(), r.TickLabelFunc()
	anchor := gfx.AnchorMiddle
	if r.geom.Orientation == Vertical {
		anchor = gfx.AnchorStart
		if r.LabelPosition() == LabelsLeading {
			anchor = gfx.AnchorEnd
		}
	}

	for _, t := range ticks {
		p := r.PointForValue(t.Value)
		g := tg.CreateGroup()
		g.SetTransform(gfx.Translate(p.X, p.Y).Multiply(gfx.Rotate(angle)))
		shape(g, r.Scale, t)

		text, ok := label(t)
		if !ok {
			continue
		}
		off := scale.DefaultMajorTickSize + r.LabelGap()
		lp := p.Add(gfx.Point{X: n.X * off, Y: n.Y * off})
		if r.geom.Orientation == Horizontal && n.Y > 0 {
			lp.Y += font.Size
		}
		tg.CreateText(gfx.Text{X: lp.X, Y: lp.Y, Text: text, Anchor: anchor, Font: font})
	}

	r.PaintIndicators(r)
	return nil
}
