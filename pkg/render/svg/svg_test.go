package svg

import (
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/gaugekit/pkg/gfx"
	"github.com/matzehuels/gaugekit/pkg/gfx/scene"
)

func sample() *scene.Scene {
	s := scene.New(120, 40)
	g := s.Root().CreateGroup()
	gfx.SetLabel(g, "ticks")
	g.SetTransform(gfx.Translate(10, 5))
	g.CreateLine(gfx.Line{X2: 10}).SetStroke(gfx.Stroke{Color: "black", Width: 0.5})
	s.Root().CreateText(gfx.Text{X: 10, Y: 30, Text: "a<b", Anchor: gfx.AnchorMiddle, Font: gfx.Font{Family: "serif", Size: 9}})
	s.Root().CreatePolygon(gfx.Polygon{Points: []gfx.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}}).SetFill("#ff0000")
	removed := s.Root().CreateRect(gfx.Rect{Width: 5, Height: 5})
	removed.RemoveShape()
	return s
}

func TestEncodeWellFormed(t *testing.T) {
	out := Encode(sample(), WithTitle("demo"), WithBackground("white"))

	dec := xml.NewDecoder(strings.NewReader(string(out)))
	for {
		_, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			t.Fatalf("invalid XML: %v\n%s", err, out)
		}
	}

	doc := string(out)
	for _, want := range []string{
		`viewBox="0 0 120.0 40.0"`,
		`<title>demo</title>`,
		`transform="matrix(1 0 0 1 10 5)"`,
		`<line x1="0" y1="0" x2="10" y2="0" stroke="black" stroke-width="0.5" fill="none"/>`,
		`text-anchor="middle"`,
		`a&lt;b`,
		`points="0,0 1,0 0,1" fill="#ff0000"`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("output missing %q\n%s", want, doc)
		}
	}
	if strings.Contains(doc, "<rect x=") {
		t.Error("removed shapes must not be encoded")
	}
}

func TestEncodeNodeIDs(t *testing.T) {
	out := string(Encode(sample(), WithNodeIDs()))
	if !strings.Contains(out, `data-label="ticks"`) {
		t.Errorf("missing label attribute:\n%s", out)
	}
	if strings.Contains(string(Encode(sample())), "data-node") {
		t.Error("ids should be opt-in")
	}
}
