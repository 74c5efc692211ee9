package raster

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/matzehuels/gaugekit/pkg/gfx"
	"github.com/matzehuels/gaugekit/pkg/gfx/scene"
)

func TestEncodePNG(t *testing.T) {
	s := scene.New(50, 20)
	g := s.Root().CreateGroup()
	g.SetTransform(gfx.Translate(5, 5))
	g.CreateLine(gfx.Line{X2: 10}).SetStroke(gfx.Stroke{Color: "black", Width: 1})
	g.CreateRect(gfx.Rect{Width: 4, Height: 4}).SetFill("#336699")
	s.Root().CreateText(gfx.Text{X: 25, Y: 15, Text: "50", Anchor: gfx.AnchorMiddle})

	out, err := Encode(s, WithScale(2), WithBackground("white"))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 40 {
		t.Errorf("bounds = %v, want 100x40", b)
	}

	r, gr, bl, _ := img.At(14, 14).RGBA()
	if r>>8 != 0x33 || gr>>8 != 0x66 || bl>>8 != 0x99 {
		t.Errorf("rect pixel = %x %x %x, want 33 66 99", r>>8, gr>>8, bl>>8)
	}
}

func TestEncodeRejectsOversizedCanvas(t *testing.T) {
	s := scene.New(60000, 60000)
	if _, err := Encode(s, WithScale(2)); err == nil {
		t.Fatal("expected an error for a 120000x120000 canvas")
	}
}

func TestEncodeMissingFont(t *testing.T) {
	s := scene.New(10, 10)
	s.Root().CreateText(gfx.Text{Text: "x", Font: gfx.Font{Size: 10}})
	if _, err := Encode(s, WithFontFile("/nonexistent/font.ttf")); err == nil {
		t.Error("missing font file should fail")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"", false},
		{"none", false},
		{"black", true},
		{"#fff", true},
		{"#c0392b", true},
		{"nope", false},
	}
	for _, tt := range tests {
		if _, ok := ParseColor(tt.in); ok != tt.ok {
			t.Errorf("ParseColor(%q) ok = %v, want %v", tt.in, ok, tt.ok)
		}
	}
}
