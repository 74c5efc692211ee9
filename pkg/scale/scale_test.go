package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/gaugekit/pkg/errors"
	"github.com/matzehuels/gaugekit/pkg/gfx"
	"github.com/matzehuels/gaugekit/pkg/gfx/scene"
	"github.com/matzehuels/gaugekit/pkg/scaler"
	"github.com/matzehuels/gaugekit/pkg/watch"
)

type testContainer struct {
	font *gfx.Font
	def  gfx.Font
}

func (c *testContainer) Font() *gfx.Font       { return c.font }
func (c *testContainer) DefaultFont() gfx.Font { return c.def }

func attached(t *testing.T, sc Scaler) (*Scale, *scene.Scene) {
	t.Helper()
	sn := scene.New(100, 100)
	s := New(sc, WithName("main"))
	s.Attach(&testContainer{}, sn.Root().CreateGroup())
	return s, sn
}

func counter(s *Scale) *int {
	n := 0
	s.OnInvalidate(func() { n++ })
	return &n
}

func TestMappingWithoutScaler(t *testing.T) {
	s := New(nil)

	_, err := s.PositionForValue(5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfiguration))

	_, err = s.ValueForPosition(0.5)
	assert.True(t, errors.Is(err, errors.ErrCodeConfiguration))

	_, err = s.ComputeTicks()
	assert.True(t, errors.Is(err, errors.ErrCodeConfiguration))
}

func TestMappingDelegates(t *testing.T) {
	s := New(scaler.New(scaler.WithRange(0, 50)))

	p, err := s.PositionForValue(25)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p, 1e-12)

	v, err := s.ValueForPosition(0.5)
	require.NoError(t, err)
	assert.InDelta(t, 25, v, 1e-12)

	ticks, err := s.ComputeTicks()
	require.NoError(t, err)
	assert.NotEmpty(t, ticks)
}

func TestBaseValidValuesAbsent(t *testing.T) {
	s := New(scaler.New())
	_, ok := s.NextValidValue(1)
	assert.False(t, ok)
	_, ok = s.PreviousValidValue(1)
	assert.False(t, ok)
	_, ok = s.FirstValidValue()
	assert.False(t, ok)
	_, ok = s.LastValidValue()
	assert.False(t, ok)
}

func TestNewScalerInvalidatesOnce(t *testing.T) {
	old := scaler.New()
	s := New(old)
	next := scaler.New()

	s.SetScaler(next)
	n := counter(s)

	next.SetMaximum(200)
	assert.Equal(t, 1, *n, "one change on the new scaler, one signal")

	old.SetMaximum(300)
	assert.Equal(t, 1, *n, "the previous scaler is no longer watched")

	assert.Equal(t, len(next.WatchedProperties()), s.ScalerSubscriptions())
}

func TestScalerReassignmentDoesNotCompound(t *testing.T) {
	a, b := scaler.New(), scaler.New()
	s := New(a)
	for i := 0; i < 3; i++ {
		s.SetScaler(b)
		s.SetScaler(a)
	}
	n := counter(s)

	a.SetMinimum(-10)
	assert.Equal(t, 1, *n)
	assert.Equal(t, 5, s.ScalerSubscriptions())
}

func TestSetScalerInvalidates(t *testing.T) {
	s := New(nil)
	n := counter(s)

	s.SetScaler(scaler.New())
	assert.Equal(t, 1, *n)
	assert.True(t, s.Dirty())

	s.SetScaler(s.Scaler())
	assert.Equal(t, 1, *n, "same scaler is not an assignment")

	s.SetScaler(nil)
	assert.Equal(t, 2, *n)
	assert.Zero(t, s.ScalerSubscriptions())
}

func TestPropertySettersInvalidate(t *testing.T) {
	s := New(scaler.New())
	n := counter(s)
	var seen []watch.Property
	_, err := s.Watch(watch.Any, func(c watch.Change) { seen = append(seen, c.Name) })
	require.NoError(t, err)

	s.SetFont(&gfx.Font{Family: "serif", Size: 10})
	s.SetLabelGap(4)
	s.SetLabelPosition("inside")
	s.SetTickShapeFunc(DefaultTickShape)
	s.SetTickLabelFunc(func(scaler.TickItem) (string, bool) { return "", false })

	assert.Equal(t, 5, *n)
	assert.Equal(t, []watch.Property{
		PropFont, PropLabelGap, PropLabelPosition, PropTickShapeFunc, PropTickLabelFunc,
	}, seen)

	s.SetLabelGap(4)
	s.SetLabelPosition("inside")
	s.SetFont(&gfx.Font{Family: "serif", Size: 10})
	assert.Equal(t, 5, *n, "unchanged values do not invalidate")
}

func TestRefreshClearsDirty(t *testing.T) {
	s := New(scaler.New())
	assert.True(t, s.Dirty())
	s.RefreshRendering()
	assert.False(t, s.Dirty())
	s.InvalidateRendering()
	assert.True(t, s.Dirty())
}

func TestSubGroupsOrderedOnce(t *testing.T) {
	sn := scene.New(10, 10)
	g := sn.Root().CreateGroup().(*scene.Node)
	s := New(scaler.New())
	assert.False(t, s.Grouped())

	s.Attach(&testContainer{}, g)
	require.True(t, s.Grouped())
	s.RefreshRendering()
	s.Attach(&testContainer{}, g)

	children := g.Children()
	require.Len(t, children, 3)
	assert.Equal(t, "background", children[0].Label())
	assert.Equal(t, "ticks", children[1].Label())
	assert.Equal(t, "foreground", children[2].Label())
	assert.Same(t, children[1], s.Ticks())
}

func TestAttachElsewhereMovesGroups(t *testing.T) {
	sn := scene.New(10, 10)
	first := sn.Root().CreateGroup().(*scene.Node)
	second := sn.Root().CreateGroup().(*scene.Node)
	s := New(scaler.New())
	s.Attach(&testContainer{}, first)
	ind := &testIndicator{}
	s.AddIndicator("a", ind, false)

	s.Attach(&testContainer{}, second)

	assert.Empty(t, first.Children())
	assert.Len(t, second.Children(), 3)
	require.NotNil(t, ind.Group())
	assert.Equal(t, s.Foreground(), ind.Group().(*scene.Node).Parent())
}

func TestAttachNilGroupKeepsSubGroups(t *testing.T) {
	sn := scene.New(10, 10)
	g := sn.Root().CreateGroup()
	s := New(scaler.New())
	s.Attach(&testContainer{}, g)
	ticks := s.Ticks()

	c := &testContainer{}
	s.Attach(c, nil)

	assert.True(t, s.Grouped())
	assert.Same(t, g, s.Group())
	assert.Same(t, ticks, s.Ticks())
	assert.Same(t, c, s.Container())
}

func TestFontResolution(t *testing.T) {
	def := gfx.Font{Family: "sans-serif", Size: 12}
	c := &testContainer{def: def}
	s := New(scaler.New())

	assert.True(t, s.Font().IsZero(), "no container, no font")

	s.Attach(c, nil)
	assert.Equal(t, def, s.Font())

	gaugeFont := gfx.Font{Family: "serif", Size: 14}
	c.font = &gaugeFont
	assert.Equal(t, gaugeFont, s.Font())

	own := gfx.Font{Family: "monospace", Size: 9}
	s.SetFont(&own)
	assert.Equal(t, own, s.Font())

	s.SetFont(nil)
	assert.Equal(t, gaugeFont, s.Font())
}

func TestDefaultTickPolicies(t *testing.T) {
	label, ok := DefaultTickLabel(scaler.TickItem{Value: 12.5})
	assert.True(t, ok)
	assert.Equal(t, "12.5", label)

	_, ok = DefaultTickLabel(scaler.TickItem{Value: 2, IsMinor: true})
	assert.False(t, ok)

	sn := scene.New(10, 10)
	major := DefaultTickShape(sn.Root(), nil, scaler.TickItem{}).(*scene.Node)
	minor := DefaultTickShape(sn.Root(), nil, scaler.TickItem{IsMinor: true}).(*scene.Node)
	assert.Equal(t, 10.0, major.Line().X2)
	assert.Equal(t, 6.0, minor.Line().X2)
	st, ok := major.Stroke()
	require.True(t, ok)
	assert.Equal(t, gfx.Stroke{Color: "black", Width: 0.5}, st)
}

func TestNilFuncsRestoreDefaults(t *testing.T) {
	s := New(scaler.New())
	s.SetTickLabelFunc(nil)
	s.SetTickShapeFunc(nil)

	label, ok := s.TickLabelFunc()(scaler.TickItem{Value: 3})
	assert.True(t, ok)
	assert.Equal(t, "3", label)
	assert.NotNil(t, s.TickShapeFunc())
}
