package scale

import (
	"math"

	"github.com/spf13/cast"

	"github.com/matzehuels/gaugekit/pkg/errors"
	"github.com/matzehuels/gaugekit/pkg/gfx"
	"github.com/matzehuels/gaugekit/pkg/observability"
	"github.com/matzehuels/gaugekit/pkg/scaler"
	"github.com/matzehuels/gaugekit/pkg/watch"
)

// Observable properties of a [Scale]. Assigning any of them invalidates the
// rendering.
const (
	PropScaler        watch.Property = "scaler"
	PropFont          watch.Property = "font"
	PropLabelGap      watch.Property = "labelGap"
	PropLabelPosition watch.Property = "labelPosition"
	PropTickShapeFunc watch.Property = "tickShapeFunc"
	PropTickLabelFunc watch.Property = "tickLabelFunc"
)

// propRendering is the single property of the invalidation signal.
const propRendering watch.Property = "rendering"

// Defaults.
const (
	DefaultLabelGap       = 1.0
	DefaultMajorTickSize  = 10.0
	DefaultMinorTickSize  = 6.0
	DefaultTickStroke     = "black"
	DefaultTickStrokeSize = 0.5
)

// Scaler maps a numeric domain to ticks and normalized positions.
// *scaler.Linear is the implementation shipped with this module.
type Scaler interface {
	ComputeTicks() []scaler.TickItem
	PositionForValue(v float64) float64
	ValueForPosition(p float64) float64
	NextValidValue(v float64) float64
	PreviousValidValue(v float64) float64
	FirstValidValue() float64
	LastValidValue() float64
	WatchedProperties() []watch.Property
	Watch(p watch.Property, h watch.Handler) (*watch.Handle, error)
}

// Container is the gauge a scale is attached to.
type Container interface {
	// Font is the container font, nil when unset.
	Font() *gfx.Font
	// DefaultFont is the rendering backend's library default.
	DefaultFont() gfx.Font
}

// TickLabelFunc returns the label of a tick; false means no label.
type TickLabelFunc func(t scaler.TickItem) (string, bool)

// TickShapeFunc draws a tick into g and returns its shape.
type TickShapeFunc func(g gfx.Group, s *Scale, t scaler.TickItem) gfx.Shape

// DefaultTickLabel labels major ticks with their value and leaves minor ticks
// blank.
func DefaultTickLabel(t scaler.TickItem) (string, bool) {
	if t.IsMinor {
		return "", false
	}
	return cast.ToString(t.Value), true
}

// DefaultTickShape draws a black line of length 10 for major ticks and 6 for
// minor ticks, along the x axis of g.
func DefaultTickShape(g gfx.Group, _ *Scale, t scaler.TickItem) gfx.Shape {
	size := DefaultMajorTickSize
	if t.IsMinor {
		size = DefaultMinorTickSize
	}
	return g.CreateLine(gfx.Line{X2: size}).
		SetStroke(gfx.Stroke{Color: DefaultTickStroke, Width: DefaultTickStrokeSize})
}

// Option configures a Scale at construction.
type Option func(*Scale)

// WithName names the scale for hooks and inspection.
func WithName(name string) Option {
	return func(s *Scale) { s.name = name }
}

// WithFont sets the scale font.
func WithFont(f gfx.Font) Option {
	return func(s *Scale) { s.font = &f }
}

// WithLabelGap sets the distance between a tick and its label.
func WithLabelGap(gap float64) Option {
	return func(s *Scale) { s.labelGap = gap }
}

// WithLabelPosition sets the label placement hint of the geometry.
func WithLabelPosition(pos string) Option {
	return func(s *Scale) { s.labelPosition = pos }
}

type slot struct {
	name   string
	ind    Indicator
	behind bool
}

// Scale owns a scaler, named indicators and the rendering sub-groups.
type Scale struct {
	name  string
	props *watch.Set

	sc            Scaler
	font          *gfx.Font
	labelGap      float64
	labelPosition string
	tickShape     TickShapeFunc
	tickLabel     TickLabelFunc

	container Container
	group     gfx.Group
	bg        gfx.Group
	ticks     gfx.Group
	fg        gfx.Group

	indicators []slot
	byName     map[string]Indicator
	renderers  map[string]gfx.Shape

	scalerHandles watch.Handles
	invalidation  *watch.Set
	dirty         bool
}

// New creates a scale using sc, which may be nil until [Scale.SetScaler].
func New(sc Scaler, opts ...Option) *Scale {
	s := &Scale{
		props: watch.NewSet(
			PropScaler, PropFont, PropLabelGap,
			PropLabelPosition, PropTickShapeFunc, PropTickLabelFunc,
		),
		labelGap:     DefaultLabelGap,
		tickShape:    DefaultTickShape,
		tickLabel:    DefaultTickLabel,
		byName:       make(map[string]Indicator),
		renderers:    make(map[string]gfx.Shape),
		invalidation: watch.NewSet(propRendering),
		dirty:        true,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Every declared property invalidates; a new scaler is rewired first so
	// that its changes are seen from now on.
	_, _ = s.props.Watch(watch.Any, func(c watch.Change) {
		if c.Name == PropScaler {
			next, _ := c.New.(Scaler)
			s.watchScaler(next)
		}
		s.InvalidateRendering()
	})

	if sc != nil {
		s.sc = sc
		s.watchScaler(sc)
	}
	return s
}

// Name returns the scale name.
func (s *Scale) Name() string { return s.name }

// SetName renames the scale. The name is not observable.
func (s *Scale) SetName(name string) { s.name = name }

// Watch subscribes h to a property of the scale.
func (s *Scale) Watch(p watch.Property, h watch.Handler) (*watch.Handle, error) {
	return s.props.Watch(p, h)
}

// watchScaler drops every subscription held on the previous scaler and
// subscribes to the watched properties of next.
func (s *Scale) watchScaler(next Scaler) {
	s.scalerHandles.RemoveAll()
	if next == nil {
		return
	}
	for _, p := range next.WatchedProperties() {
		h, err := next.Watch(p, func(watch.Change) { s.InvalidateRendering() })
		if err != nil {
			continue
		}
		s.scalerHandles.Add(h)
	}
}

// ScalerSubscriptions returns the number of live subscriptions the scale holds
// on its scaler.
func (s *Scale) ScalerSubscriptions() int { return s.scalerHandles.Len() }

// Scaler returns the scaler, nil when unset.
func (s *Scale) Scaler() Scaler { return s.sc }

// SetScaler assigns the scaler and rewires the subscriptions.
func (s *Scale) SetScaler(sc Scaler) *Scale {
	if sc == s.sc {
		return s
	}
	old := s.sc
	s.sc = sc
	s.props.Notify(PropScaler, old, sc)
	return s
}

// SetFont sets the scale font; nil falls back to the container.
func (s *Scale) SetFont(f *gfx.Font) *Scale {
	old := s.font
	if sameFont(old, f) {
		return s
	}
	if f != nil {
		c := *f
		f = &c
	}
	s.font = f
	s.props.Notify(PropFont, old, f)
	return s
}

func sameFont(a, b *gfx.Font) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// LabelGap returns the distance between a tick and its label.
func (s *Scale) LabelGap() float64 { return s.labelGap }

// SetLabelGap sets the label gap.
func (s *Scale) SetLabelGap(gap float64) *Scale {
	if gap == s.labelGap {
		return s
	}
	old := s.labelGap
	s.labelGap = gap
	s.props.Notify(PropLabelGap, old, gap)
	return s
}

// LabelPosition returns the label placement hint.
func (s *Scale) LabelPosition() string { return s.labelPosition }

// SetLabelPosition sets the label placement hint.
func (s *Scale) SetLabelPosition(pos string) *Scale {
	if pos == s.labelPosition {
		return s
	}
	old := s.labelPosition
	s.labelPosition = pos
	s.props.Notify(PropLabelPosition, old, pos)
	return s
}

// TickShapeFunc returns the tick shape policy.
func (s *Scale) TickShapeFunc() TickShapeFunc { return s.tickShape }

// SetTickShapeFunc replaces the tick shape policy; nil restores the default.
func (s *Scale) SetTickShapeFunc(f TickShapeFunc) *Scale {
	if f == nil {
		f = DefaultTickShape
	}
	old := s.tickShape
	s.tickShape = f
	s.props.Notify(PropTickShapeFunc, old, f)
	return s
}

// TickLabelFunc returns the tick label policy.
func (s *Scale) TickLabelFunc() TickLabelFunc { return s.tickLabel }

// SetTickLabelFunc replaces the tick label policy; nil restores the default.
func (s *Scale) SetTickLabelFunc(f TickLabelFunc) *Scale {
	if f == nil {
		f = DefaultTickLabel
	}
	old := s.tickLabel
	s.tickLabel = f
	s.props.Notify(PropTickLabelFunc, old, f)
	return s
}

// Font resolves the font: the scale's own, then the container's, then the
// container's default. Without a container the zero font is returned.
func (s *Scale) Font() gfx.Font {
	if s.font != nil {
		return *s.font
	}
	if s.container == nil {
		return gfx.Font{}
	}
	if f := s.container.Font(); f != nil {
		return *f
	}
	return s.container.DefaultFont()
}

func (s *Scale) requireScaler(op string) error {
	if s.sc == nil {
		return errors.New(errors.ErrCodeConfiguration, "scale %q: %s without a scaler", s.name, op)
	}
	return nil
}

// PositionForValue maps a value to [0, 1] through the scaler.
func (s *Scale) PositionForValue(v float64) (float64, error) {
	if err := s.requireScaler("position for value"); err != nil {
		return math.NaN(), err
	}
	return s.sc.PositionForValue(v), nil
}

// ValueForPosition maps a position in [0, 1] to a value through the scaler.
func (s *Scale) ValueForPosition(p float64) (float64, error) {
	if err := s.requireScaler("value for position"); err != nil {
		return math.NaN(), err
	}
	return s.sc.ValueForPosition(p), nil
}

// ComputeTicks regenerates the scaler ticks.
func (s *Scale) ComputeTicks() ([]scaler.TickItem, error) {
	if err := s.requireScaler("compute ticks"); err != nil {
		return nil, err
	}
	return s.sc.ComputeTicks(), nil
}

// NextValidValue is absent on the base scale; geometries override it.
func (s *Scale) NextValidValue(float64) (float64, bool) { return 0, false }

// PreviousValidValue is absent on the base scale; geometries override it.
func (s *Scale) PreviousValidValue(float64) (float64, bool) { return 0, false }

// FirstValidValue is absent on the base scale; geometries override it.
func (s *Scale) FirstValidValue() (float64, bool) { return 0, false }

// LastValidValue is absent on the base scale; geometries override it.
func (s *Scale) LastValidValue() (float64, bool) { return 0, false }

// OnInvalidate subscribes fn to the invalidation signal.
func (s *Scale) OnInvalidate(fn func()) *watch.Handle {
	if fn == nil {
		return nil
	}
	h, _ := s.invalidation.Watch(propRendering, func(watch.Change) { fn() })
	return h
}

// InvalidateRendering marks the geometry stale and notifies subscribers.
func (s *Scale) InvalidateRendering() *Scale {
	s.dirty = true
	observability.Scale().OnInvalidate(s.name)
	s.invalidation.Notify(propRendering, nil, nil)
	return s
}

// Dirty reports whether the rendering is stale.
func (s *Scale) Dirty() bool { return s.dirty }

// Container returns the container, nil when detached.
func (s *Scale) Container() Container { return s.container }

// Group returns the scale's rendering group, nil when detached.
func (s *Scale) Group() gfx.Group { return s.group }

// Background returns the sub-group painted behind the ticks.
func (s *Scale) Background() gfx.Group { return s.bg }

// Ticks returns the sub-group holding the ticks.
func (s *Scale) Ticks() gfx.Group { return s.ticks }

// Foreground returns the sub-group painted above the ticks.
func (s *Scale) Foreground() gfx.Group { return s.fg }

// Grouped reports whether the sub-groups exist.
func (s *Scale) Grouped() bool { return s.ticks != nil }

// Attach places the scale in container c, drawing into g. Attaching to a
// different group moves the sub-groups and every indicator group there. Once
// the scale is grouped a nil g only updates the container; the sub-groups are
// kept.
func (s *Scale) Attach(c Container, g gfx.Group) *Scale {
	s.container = c
	if g == nil && s.Grouped() {
		return s.InvalidateRendering()
	}
	if g == s.group {
		s.ensureSubGroups()
		return s.InvalidateRendering()
	}
	if s.Grouped() {
		s.bg.RemoveShape()
		s.ticks.RemoveShape()
		s.fg.RemoveShape()
		s.bg, s.ticks, s.fg = nil, nil, nil
	}
	s.group = g
	s.ensureSubGroups()
	for _, sl := range s.indicators {
		s.bind(sl)
	}
	return s.InvalidateRendering()
}

func (s *Scale) ensureSubGroups() {
	if s.group == nil || s.ticks != nil {
		return
	}
	s.bg = s.group.CreateGroup()
	s.ticks = s.group.CreateGroup()
	s.fg = s.group.CreateGroup()
	gfx.SetLabel(s.bg, "background")
	gfx.SetLabel(s.ticks, "ticks")
	gfx.SetLabel(s.fg, "foreground")
}

// RefreshRendering ensures the sub-groups exist and clears the dirty flag.
// Geometries draw and then call it.
func (s *Scale) RefreshRendering() {
	s.ensureSubGroups()
	s.dirty = false
}
