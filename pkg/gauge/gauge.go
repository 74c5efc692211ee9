// Package gauge is the container scales are attached to.
//
// A [Gauge] owns the root rendering group, an optional font shared by its
// scales and the default font injected by the rendering backend. Elements are
// named scales; each gets its own child group. Any element invalidation marks
// the gauge dirty, and [Gauge.Refresh] redraws the dirty elements in the order
// they were added.
package gauge

import (
	"fmt"

	"github.com/matzehuels/gaugekit/pkg/errors"
	"github.com/matzehuels/gaugekit/pkg/gfx"
	"github.com/matzehuels/gaugekit/pkg/scale"
	"github.com/matzehuels/gaugekit/pkg/watch"
)

// Element is a scale geometry a gauge can hold.
type Element interface {
	Name() string
	SetName(name string)
	Attach(c scale.Container, g gfx.Group) *scale.Scale
	OnInvalidate(fn func()) *watch.Handle
	InvalidateRendering() *scale.Scale
	Dirty() bool
	RefreshRendering() error
}

type entry struct {
	name  string
	el    Element
	group gfx.Group
	inval *watch.Handle
}

// Gauge aggregates scales and resolves their fonts.
type Gauge struct {
	name        string
	root        gfx.Group
	font        *gfx.Font
	defaultFont gfx.Font
	elements    []*entry
	dirty       bool
}

var _ scale.Container = (*Gauge)(nil)

// New creates a gauge drawing into root. defaultFont is the backend library
// default used when neither a scale nor the gauge set a font.
func New(name string, root gfx.Group, defaultFont gfx.Font) *Gauge {
	gfx.SetLabel(root, "gauge:"+name)
	return &Gauge{name: name, root: root, defaultFont: defaultFont}
}

// Name returns the gauge name.
func (g *Gauge) Name() string { return g.name }

// Font implements scale.Container.
func (g *Gauge) Font() *gfx.Font { return g.font }

// DefaultFont implements scale.Container.
func (g *Gauge) DefaultFont() gfx.Font { return g.defaultFont }

// SetFont sets the gauge font and invalidates every element, since their
// resolved fonts may change.
func (g *Gauge) SetFont(f *gfx.Font) {
	if f != nil {
		c := *f
		f = &c
	}
	g.font = f
	for _, e := range g.elements {
		e.el.InvalidateRendering()
	}
}

// AddElement attaches el under name in a new child group.
func (g *Gauge) AddElement(name string, el Element) error {
	if err := errors.ValidateName(name); err != nil {
		return err
	}
	if _, ok := g.Element(name); ok {
		return errors.New(errors.ErrCodeInvalidInput, "element %q already exists", name)
	}
	grp := g.root.CreateGroup()
	gfx.SetLabel(grp, "scale:"+name)
	el.SetName(name)

	e := &entry{name: name, el: el, group: grp}
	e.inval = el.OnInvalidate(func() { g.dirty = true })
	g.elements = append(g.elements, e)
	el.Attach(g, grp)
	return nil
}

// RemoveElement detaches the element under name and removes its group.
func (g *Gauge) RemoveElement(name string) (Element, bool) {
	for i, e := range g.elements {
		if e.name != name {
			continue
		}
		e.inval.Remove()
		e.group.RemoveShape()
		g.elements = append(g.elements[:i], g.elements[i+1:]...)
		g.dirty = true
		return e.el, true
	}
	return nil, false
}

// Element returns the element under name.
func (g *Gauge) Element(name string) (Element, bool) {
	for _, e := range g.elements {
		if e.name == name {
			return e.el, true
		}
	}
	return nil, false
}

// Elements returns the elements in insertion order.
func (g *Gauge) Elements() []Element {
	out := make([]Element, len(g.elements))
	for i, e := range g.elements {
		out[i] = e.el
	}
	return out
}

// Dirty reports whether an element was invalidated since the last refresh.
func (g *Gauge) Dirty() bool { return g.dirty }

// Refresh redraws every dirty element. It returns the number of elements
// redrawn.
func (g *Gauge) Refresh() (int, error) {
	n := 0
	for _, e := range g.elements {
		if !e.el.Dirty() {
			continue
		}
		if err := e.el.RefreshRendering(); err != nil {
			return n, fmt.Errorf("refresh %s: %w", e.name, err)
		}
		n++
	}
	g.dirty = false
	return n, nil
}
