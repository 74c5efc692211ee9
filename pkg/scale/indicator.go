package scale

import (
	"github.com/matzehuels/gaugekit/pkg/gfx"
	"github.com/matzehuels/gaugekit/pkg/observability"
	"github.com/matzehuels/gaugekit/pkg/watch"
)

// Indicator is a named object attached to a scale and drawn in a group the
// scale owns.
type Indicator interface {
	// Name returns the name the indicator is attached under.
	Name() string
	// Scale returns the owning scale, nil when detached.
	Scale() *Scale
	// Group returns the indicator group, nil when detached or when the scale
	// has no group yet.
	Group() gfx.Group
	// Attach is called by the scale when the indicator goes live.
	Attach(s *Scale, name string, g gfx.Group)
	// Detach is called by the scale after the group was removed. It must
	// disconnect every listener the indicator registered.
	Detach()
}

// Locator resolves values to points in the coordinate space of a scale
// geometry.
type Locator interface {
	PointForValue(v float64) gfx.Point
	// Direction is the unit vector of increasing values.
	Direction() gfx.Point
	// Normal is the unit vector pointing from the scale line to its labels.
	Normal() gfx.Point
	// FirstValidValue is the geometry's first valid value, where range
	// indicators start.
	FirstValidValue() (float64, bool)
}

// Painter is implemented by indicators that draw themselves. Paint draws into
// the indicator group and returns the main shape.
type Painter interface {
	Paint(l Locator) gfx.Shape
}

// IndicatorBase implements the lifecycle part of [Indicator]. Embed it and
// register listeners with Track so that detaching disconnects them.
type IndicatorBase struct {
	name    string
	scale   *Scale
	group   gfx.Group
	handles watch.Handles
}

// Name implements Indicator.
func (b *IndicatorBase) Name() string { return b.name }

// Scale implements Indicator.
func (b *IndicatorBase) Scale() *Scale { return b.scale }

// Group implements Indicator.
func (b *IndicatorBase) Group() gfx.Group { return b.group }

// Attach implements Indicator. Listeners tracked during a previous attach
// are removed, so an indicator rebound to a new group holds only the ones it
// registers now.
func (b *IndicatorBase) Attach(s *Scale, name string, g gfx.Group) {
	b.handles.RemoveAll()
	b.scale, b.name, b.group = s, name, g
}

// Detach implements Indicator.
func (b *IndicatorBase) Detach() {
	b.handles.RemoveAll()
	b.scale, b.group = nil, nil
}

// Track records a listener handle to remove on detach.
func (b *IndicatorBase) Track(h *watch.Handle) { b.handles.Add(h) }

// Listeners returns the number of tracked listener handles.
func (b *IndicatorBase) Listeners() int { return b.handles.Len() }

// AddIndicator attaches ind under name, in front of the ticks or behind them.
// A different indicator already under name is removed first. Attaching an
// indicator that is already live, here or on another scale, detaches it from
// there and disposes its previous group; it moves to the end of the paint
// order.
func (s *Scale) AddIndicator(name string, ind Indicator, behindScale bool) *Scale {
	if ind == nil {
		return s
	}
	if prev, ok := s.byName[name]; ok && prev != ind {
		s.RemoveIndicator(name)
	}
	if owner := ind.Scale(); owner != nil {
		owner.release(owner.keyOf(ind), ind)
		if owner != s {
			owner.InvalidateRendering()
		}
	}

	sl := slot{name: name, ind: ind, behind: behindScale}
	s.indicators = append(s.indicators, sl)
	s.byName[name] = ind
	s.bind(sl)
	observability.Scale().OnIndicatorAttach(s.name, name)
	return s.InvalidateRendering()
}

// RemoveIndicator detaches the indicator under name and returns it. Its group
// is removed immediately. An unknown name returns false and changes nothing.
func (s *Scale) RemoveIndicator(name string) (Indicator, bool) {
	ind, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	s.release(name, ind)
	observability.Scale().OnIndicatorDetach(s.name, name)
	s.InvalidateRendering()
	return ind, true
}

// keyOf returns the name ind is registered under.
func (s *Scale) keyOf(ind Indicator) string {
	for _, sl := range s.indicators {
		if sl.ind == ind {
			return sl.name
		}
	}
	return ind.Name()
}

// release drops ind, registered under name, from both views, removes its
// group and detaches it.
func (s *Scale) release(name string, ind Indicator) {
	if s.byName[name] != ind {
		return
	}
	if g := ind.Group(); g != nil {
		g.RemoveShape()
	}
	for i, sl := range s.indicators {
		if sl.ind == ind {
			s.indicators = append(s.indicators[:i], s.indicators[i+1:]...)
			break
		}
	}
	delete(s.byName, name)
	delete(s.renderers, name)
	ind.Detach()
}

// bind gives the indicator a fresh group under the matching sub-group, or
// none while the scale itself has no group.
func (s *Scale) bind(sl slot) {
	if old := sl.ind.Group(); old != nil {
		old.RemoveShape()
	}
	var g gfx.Group
	if s.group != nil {
		s.ensureSubGroups()
		parent := s.fg
		if sl.behind {
			parent = s.bg
		}
		g = parent.CreateGroup()
		gfx.SetLabel(g, "indicator:"+sl.name)
	}
	sl.ind.Attach(s, sl.name, g)
}

// Indicator returns the indicator attached under name.
func (s *Scale) Indicator(name string) (Indicator, bool) {
	ind, ok := s.byName[name]
	return ind, ok
}

// IndicatorRenderer returns the shape last painted by the indicator under
// name.
func (s *Scale) IndicatorRenderer(name string) (gfx.Shape, bool) {
	sh, ok := s.renderers[name]
	return sh, ok
}

// Indicators returns the attached indicators in paint order.
func (s *Scale) Indicators() []Indicator {
	out := make([]Indicator, len(s.indicators))
	for i, sl := range s.indicators {
		out[i] = sl.ind
	}
	return out
}

// PaintIndicators lets every attached [Painter] draw itself through l and
// records the returned shapes as the indicator renderers.
func (s *Scale) PaintIndicators(l Locator) {
	for _, sl := range s.indicators {
		p, ok := sl.ind.(Painter)
		if !ok || sl.ind.Group() == nil {
			continue
		}
		sl.ind.Group().Clear()
		name := sl.name
		if sh := p.Paint(l); sh != nil {
			s.renderers[name] = sh
		} else {
			delete(s.renderers, name)
		}
	}
}
