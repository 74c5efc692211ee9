// Package indicator provides value indicators for scales.
//
// [Marker] points at a value with a line and a triangular head; [Bar] fills
// the range from the scale's first valid value to its value. Both expose a
// watchable value property. While attached, a change of the value invalidates
// the owning scale; the subscription is dropped when the indicator is
// removed.
package indicator

import (
	"github.com/matzehuels/gaugekit/pkg/gfx"
	"github.com/matzehuels/gaugekit/pkg/scale"
	"github.com/matzehuels/gaugekit/pkg/scaler"
	"github.com/matzehuels/gaugekit/pkg/watch"
)

// PropValue is the observable value of an indicator.
const PropValue watch.Property = "value"

// Defaults.
const (
	DefaultColor      = "#c0392b"
	DefaultMarkerSize = 15.0
	DefaultBarSize    = 6.0
)

// Option configures an indicator.
type Option func(*valued)

// WithValue sets the initial value.
func WithValue(v float64) Option {
	return func(i *valued) { i.value = v }
}

// WithColor sets the stroke and fill color.
func WithColor(c string) Option {
	return func(i *valued) {
		if c != "" {
			i.color = c
		}
	}
}

// WithSize sets the marker length or the bar thickness.
func WithSize(size float64) Option {
	return func(i *valued) {
		if size > 0 {
			i.size = size
		}
	}
}

// WithSnap snaps assigned values through the owning scale.
func WithSnap() Option {
	return func(i *valued) { i.snap = true }
}

// valued is the state shared by the value indicators.
type valued struct {
	scale.IndicatorBase
	props *watch.Set
	value float64
	color string
	size  float64
	snap  bool
}

func newValued(size float64, opts []Option) valued {
	v := valued{props: watch.NewSet(PropValue), color: DefaultColor, size: size}
	for _, opt := range opts {
		opt(&v)
	}
	return v
}

// Attach subscribes the owning scale to value changes.
func (i *valued) Attach(s *scale.Scale, name string, g gfx.Group) {
	i.IndicatorBase.Attach(s, name, g)
	h, err := i.props.Watch(PropValue, func(watch.Change) { s.InvalidateRendering() })
	if err == nil {
		i.Track(h)
	}
}

// Watch subscribes h to a property of the indicator.
func (i *valued) Watch(p watch.Property, h watch.Handler) (*watch.Handle, error) {
	return i.props.Watch(p, h)
}

// Value returns the current value.
func (i *valued) Value() float64 { return i.value }

// SetValue assigns the value, snapped through the owning scale when the
// indicator snaps and is attached.
func (i *valued) SetValue(v float64) {
	if s := i.Scale(); i.snap && s != nil {
		if p, err := s.PositionForValue(v); err == nil {
			if snapped, err := s.ValueForPosition(p); err == nil {
				v = snapped
			}
		}
	}
	if v == i.value {
		return
	}
	old := i.value
	i.value = v
	i.props.Notify(PropValue, old, v)
}

// SetValueAny assigns loosely typed input, such as a query parameter.
// Input that is not numeric becomes NaN, which the scale maps to its start.
func (i *valued) SetValueAny(v any) { i.SetValue(scaler.Coerce(v)) }

// Color returns the indicator color.
func (i *valued) Color() string { return i.color }

// Marker points at a value.
type Marker struct {
	valued
}

var (
	_ scale.Indicator = (*Marker)(nil)
	_ scale.Painter   = (*Marker)(nil)
)

// NewMarker creates a marker.
func NewMarker(opts ...Option) *Marker {
	return &Marker{valued: newValued(DefaultMarkerSize, opts)}
}

// Paint draws the marker on the side of the line opposite to the labels and
// returns the needle.
func (m *Marker) Paint(l scale.Locator) gfx.Shape {
	g := m.Group()
	p := l.PointForValue(m.value)
	n, d := l.Normal(), l.Direction()
	tail := p.Add(gfx.Point{X: -n.X * m.size, Y: -n.Y * m.size})
	head := m.size / 3

	needle := g.CreateLine(gfx.Line{X1: p.X, Y1: p.Y, X2: tail.X, Y2: tail.Y}).
		SetStroke(gfx.Stroke{Color: m.color, Width: 1.5})
	g.CreatePolygon(gfx.Polygon{Points: []gfx.Point{
		p,
		p.Add(gfx.Point{X: -n.X*head + d.X*head/2, Y: -n.Y*head + d.Y*head/2}),
		p.Add(gfx.Point{X: -n.X*head - d.X*head/2, Y: -n.Y*head - d.Y*head/2}),
	}}).SetFill(m.color)
	return needle
}

// Bar fills the range from the first valid value to its value.
type Bar struct {
	valued
}

var (
	_ scale.Indicator = (*Bar)(nil)
	_ scale.Painter   = (*Bar)(nil)
)

// NewBar creates a bar.
func NewBar(opts ...Option) *Bar {
	return &Bar{valued: newValued(DefaultBarSize, opts)}
}

// Paint draws the bar on the side of the line opposite to the labels.
func (b *Bar) Paint(l scale.Locator) gfx.Shape {
	start, ok := l.FirstValidValue()
	if !ok {
		return nil
	}
	p0, p1 := l.PointForValue(start), l.PointForValue(b.value)
	n := l.Normal()
	off := gfx.Point{X: -n.X * b.size, Y: -n.Y * b.size}
	return b.Group().CreatePolygon(gfx.Polygon{Points: []gfx.Point{
		p0, p1, p1.Add(off), p0.Add(off),
	}}).SetFill(b.color)
}
