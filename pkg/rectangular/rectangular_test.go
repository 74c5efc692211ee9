package rectangular

import (
	"math"
	"testing"

	"github.com/matzehuels/gaugekit/pkg/errors"
	"github.com/matzehuels/gaugekit/pkg/gfx"
	"github.com/matzehuels/gaugekit/pkg/gfx/scene"
	"github.com/matzehuels/gaugekit/pkg/scale"
	"github.com/matzehuels/gaugekit/pkg/scaler"
)

type container struct{}

func (container) Font() *gfx.Font       { return nil }
func (container) DefaultFont() gfx.Font { return gfx.Font{Family: "sans-serif", Size: 10} }

func newAttached(t *testing.T, geom Geometry) (*Scale, *scene.Scene) {
	t.Helper()
	sn := scene.New(300, 100)
	r := New(scaler.New(scaler.WithRange(0, 100)), geom, scale.WithName("main"))
	r.Attach(container{}, sn.Root().CreateGroup())
	return r, sn
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestPointForValue(t *testing.T) {
	tests := []struct {
		name string
		geom Geometry
		v    float64
		want gfx.Point
	}{
		{"horizontal start", Geometry{Origin: gfx.Point{X: 10, Y: 20}, Length: 200}, 0, gfx.Point{X: 10, Y: 20}},
		{"horizontal middle", Geometry{Origin: gfx.Point{X: 10, Y: 20}, Length: 200}, 50, gfx.Point{X: 110, Y: 20}},
		{"horizontal clamp", Geometry{Origin: gfx.Point{X: 10, Y: 20}, Length: 200}, 500, gfx.Point{X: 210, Y: 20}},
		{"vertical grows up", Geometry{Origin: gfx.Point{X: 5, Y: 100}, Length: 80, Orientation: Vertical}, 25, gfx.Point{X: 5, Y: 80}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(scaler.New(), tt.geom)
			got := r.PointForValue(tt.v)
			if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
				t.Errorf("PointForValue(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestValueForPoint(t *testing.T) {
	r := New(scaler.New(), Geometry{Origin: gfx.Point{X: 0, Y: 0}, Length: 100})
	v, err := r.ValueForPoint(gfx.Point{X: 42.4, Y: 30})
	if err != nil {
		t.Fatal(err)
	}
	if v != 42 {
		t.Errorf("ValueForPoint = %v, want 42 (snapped)", v)
	}
	v, _ = r.ValueForPoint(gfx.Point{X: -50})
	if v != 0 {
		t.Errorf("ValueForPoint before origin = %v, want 0", v)
	}
}

func TestValidValuesDelegate(t *testing.T) {
	r := New(scaler.New(scaler.WithRange(0, 10), scaler.WithSnapInterval(2)), Geometry{Length: 100})

	if v, ok := r.NextValidValue(4); !ok || v != 6 {
		t.Errorf("NextValidValue(4) = %v, %v", v, ok)
	}
	if v, ok := r.PreviousValidValue(1); !ok || v != 0 {
		t.Errorf("PreviousValidValue(1) = %v, %v", v, ok)
	}
	if v, ok := r.FirstValidValue(); !ok || v != 0 {
		t.Errorf("FirstValidValue() = %v, %v", v, ok)
	}
	if v, ok := r.LastValidValue(); !ok || v != 10 {
		t.Errorf("LastValidValue() = %v, %v", v, ok)
	}

	empty := New(nil, Geometry{})
	if _, ok := empty.NextValidValue(1); ok {
		t.Error("no scaler should report absent")
	}
}

func TestRefreshDrawsTicksAndLabels(t *testing.T) {
	r, _ := newAttached(t, Geometry{Origin: gfx.Point{X: 10, Y: 10}, Length: 200})

	if err := r.RefreshRendering(); err != nil {
		t.Fatalf("RefreshRendering: %v", err)
	}
	if r.Dirty() {
		t.Error("refresh should clear the dirty flag")
	}

	var groups, texts, lines int
	for _, c := range r.Ticks().(*scene.Node).Children() {
		switch c.Kind() {
		case scene.KindGroup:
			groups++
			lines += len(c.Children())
		case scene.KindText:
			texts++
		}
	}
	if groups != 11+40 {
		t.Errorf("tick groups = %d, want 51", groups)
	}
	if lines != groups {
		t.Errorf("tick lines = %d, want one per tick", lines)
	}
	if texts != 11 {
		t.Errorf("labels = %d, want 11 (majors only)", texts)
	}
}

func TestRefreshIsRepeatable(t *testing.T) {
	r, sn := newAttached(t, Geometry{Length: 100})
	if err := r.RefreshRendering(); err != nil {
		t.Fatal(err)
	}
	first := sn.Count()
	if err := r.RefreshRendering(); err != nil {
		t.Fatal(err)
	}
	if sn.Count() != first {
		t.Errorf("second refresh changed node count: %d -> %d", first, sn.Count())
	}
}

func TestRefreshUsesCustomTickFuncs(t *testing.T) {
	r, _ := newAttached(t, Geometry{Length: 100})
	r.SetTickLabelFunc(func(scaler.TickItem) (string, bool) { return "", false })
	r.SetTickShapeFunc(func(g gfx.Group, _ *scale.Scale, _ scaler.TickItem) gfx.Shape {
		return g.CreateRect(gfx.Rect{Width: 1, Height: 1})
	})
	if err := r.RefreshRendering(); err != nil {
		t.Fatal(err)
	}
	for _, c := range r.Ticks().(*scene.Node).Children() {
		if c.Kind() == scene.KindText {
			t.Fatal("labels should be suppressed")
		}
		if k := c.Children()[0].Kind(); k != scene.KindRect {
			t.Fatalf("tick shape kind = %s, want rect", k)
		}
	}
}

func TestRefreshErrors(t *testing.T) {
	r := New(scaler.New(), Geometry{Length: 100})
	if err := r.RefreshRendering(); !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("detached refresh err = %v, want configuration error", err)
	}

	sn := scene.New(10, 10)
	noScaler := New(nil, Geometry{Length: 100})
	noScaler.Attach(container{}, sn.Root().CreateGroup())
	if err := noScaler.RefreshRendering(); !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("refresh without scaler err = %v, want configuration error", err)
	}
}

func TestSetGeometryInvalidates(t *testing.T) {
	r, _ := newAttached(t, Geometry{Length: 100})
	_ = r.RefreshRendering()
	calls := 0
	r.OnInvalidate(func() { calls++ })

	r.SetGeometry(Geometry{Length: 100})
	if calls != 0 {
		t.Error("same geometry should not invalidate")
	}
	r.SetGeometry(Geometry{Length: 120})
	if calls != 1 || !r.Dirty() {
		t.Errorf("calls = %d, dirty = %v", calls, r.Dirty())
	}
}

func TestNormalFollowsLabelPosition(t *testing.T) {
	r := New(scaler.New(), Geometry{Length: 10})
	if n := r.Normal(); n != (gfx.Point{Y: 1}) {
		t.Errorf("Normal() = %v", n)
	}
	r.SetLabelPosition(LabelsLeading)
	if n := r.Normal(); n != (gfx.Point{Y: -1}) {
		t.Errorf("leading Normal() = %v", n)
	}
}

func TestParseOrientation(t *testing.T) {
	for in, want := range map[string]Orientation{"": Horizontal, "horizontal": Horizontal, "vertical": Vertical} {
		got, err := ParseOrientation(in)
		if err != nil || got != want {
			t.Errorf("ParseOrientation(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseOrientation("diagonal"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ParseOrientation(diagonal) err = %v", err)
	}
}
