package gauge

import (
	"testing"

	"github.com/matzehuels/gaugekit/pkg/errors"
	"github.com/matzehuels/gaugekit/pkg/gfx"
	"github.com/matzehuels/gaugekit/pkg/gfx/scene"
	"github.com/matzehuels/gaugekit/pkg/rectangular"
	"github.com/matzehuels/gaugekit/pkg/scaler"
)

var defaultFont = gfx.Font{Family: "sans-serif", Size: 11}

func newGauge() (*Gauge, *scene.Scene) {
	sn := scene.New(200, 100)
	return New("test", sn.Root(), defaultFont), sn
}

func newScale() *rectangular.Scale {
	return rectangular.New(scaler.New(), rectangular.Geometry{Length: 100})
}

func TestAddElementAttaches(t *testing.T) {
	g, sn := newGauge()
	s := newScale()

	if err := g.AddElement("main", s); err != nil {
		t.Fatalf("AddElement: %v", err)
	}
	if s.Name() != "main" {
		t.Errorf("element name = %q", s.Name())
	}
	if s.Container() != g {
		t.Error("scale should be attached to the gauge")
	}
	if !g.Dirty() {
		t.Error("new element should dirty the gauge")
	}
	kids := sn.Root().Children()
	if len(kids) != 1 || kids[0].Label() != "scale:main" {
		t.Errorf("root children = %v", kids)
	}
}

func TestAddElementErrors(t *testing.T) {
	g, _ := newGauge()
	if err := g.AddElement("", newScale()); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty name err = %v", err)
	}
	_ = g.AddElement("a", newScale())
	if err := g.AddElement("a", newScale()); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("duplicate name err = %v", err)
	}
}

func TestFontFallback(t *testing.T) {
	g, _ := newGauge()
	s := newScale()
	_ = g.AddElement("main", s)

	if got := s.Font(); got != defaultFont {
		t.Errorf("Font() = %+v, want backend default", got)
	}

	serif := gfx.Font{Family: "serif", Size: 14}
	_, _ = g.Refresh()
	g.SetFont(&serif)
	if got := s.Font(); got != serif {
		t.Errorf("Font() = %+v, want gauge font", got)
	}
	if !s.Dirty() || !g.Dirty() {
		t.Error("gauge font change should invalidate elements")
	}
}

func TestRefreshOnlyDirty(t *testing.T) {
	g, _ := newGauge()
	a, b := newScale(), newScale()
	_ = g.AddElement("a", a)
	_ = g.AddElement("b", b)

	n, err := g.Refresh()
	if err != nil || n != 2 {
		t.Fatalf("first Refresh() = %d, %v", n, err)
	}
	if g.Dirty() {
		t.Error("gauge should be clean after refresh")
	}

	b.SetLabelGap(3)
	n, err = g.Refresh()
	if err != nil || n != 1 {
		t.Fatalf("second Refresh() = %d, %v, want 1", n, err)
	}
}

func TestRefreshError(t *testing.T) {
	g, _ := newGauge()
	_ = g.AddElement("broken", rectangular.New(nil, rectangular.Geometry{Length: 10}))
	if _, err := g.Refresh(); !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("Refresh err = %v, want configuration error", err)
	}
}

func TestRemoveElement(t *testing.T) {
	g, sn := newGauge()
	s := newScale()
	_ = g.AddElement("main", s)
	_, _ = g.Refresh()

	el, ok := g.RemoveElement("main")
	if !ok || el != s {
		t.Fatalf("RemoveElement = %v, %v", el, ok)
	}
	if len(sn.Root().Children()) != 0 {
		t.Error("element group should be removed")
	}

	s.SetLabelGap(5)
	_, _ = g.Refresh()
	s.SetLabelGap(6)
	if g.Dirty() {
		t.Error("removed element should not dirty the gauge")
	}
	if _, ok := g.RemoveElement("main"); ok {
		t.Error("second remove should report false")
	}
}
